package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/kdudkov/projtrack/internal/database"
	"github.com/kdudkov/projtrack/internal/model"
)

// CreateProject stores a new project and makes the caller its Admin in one
// transaction. The caller must already be a known user.
func (t *Tracker) CreateProject(ctx context.Context, email string, p *model.Project) error {
	if p == nil || strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}

	if email == "" {
		return ErrUserNotFound
	}

	err := t.dbm.Transaction(ctx, func(tx *database.DatabaseManager) error {
		u, err := tx.UserQuery(ctx).Email(email).One()
		if err != nil {
			return err
		}

		if u == nil {
			return ErrUserNotFound
		}

		if err := tx.Create(ctx, p); err != nil {
			return fmt.Errorf("create project: %w", err)
		}

		if err := tx.Create(ctx, &model.Member{UserID: u.ID, ProjectID: p.ID, Role: model.RoleAdmin}); err != nil {
			return fmt.Errorf("create admin member: %w", err)
		}

		return nil
	})

	if err != nil {
		p.ID = uuid.Nil

		return err
	}

	projectsCreated.Inc()
	t.logger.Info("new project", slog.String("project", p.ID.String()), slog.String("name", p.Name), slog.String("email", email))

	return nil
}

func (t *Tracker) AddMilestone(ctx context.Context, email string, projectID uuid.UUID, m *model.Milestone) error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrEmptyName
	}

	s, err := t.scope(ctx, email, projectID)
	if err != nil {
		return err
	}

	m.ProjectID = s.ProjectID()

	return s.Manager().Create(ctx, m)
}

func (t *Tracker) AddLink(ctx context.Context, email string, projectID uuid.UUID, l *model.Link) error {
	if strings.TrimSpace(l.InfoLink) == "" {
		return ErrEmptyName
	}

	s, err := t.scope(ctx, email, projectID)
	if err != nil {
		return err
	}

	l.ProjectID = s.ProjectID()

	return s.Manager().Create(ctx, l)
}

// AddIssue stores an issue. Milestone and parent issue, when set, must belong
// to the same project.
func (t *Tracker) AddIssue(ctx context.Context, email string, projectID uuid.UUID, i *model.Issue) error {
	if strings.TrimSpace(i.Name) == "" {
		return ErrEmptyName
	}

	s, err := t.scope(ctx, email, projectID)
	if err != nil {
		return err
	}

	i.ProjectID = s.ProjectID()

	if i.MilestoneID != nil {
		m, err := s.Manager().MilestoneQuery(ctx).Id(*i.MilestoneID).Project(i.ProjectID).One()
		if err != nil {
			return err
		}

		if m == nil {
			return fmt.Errorf("milestone %s: %w", i.MilestoneID, ErrInvalidReference)
		}
	}

	if i.SubIssueOf != nil {
		parent, err := s.Manager().IssueQuery(ctx).Id(*i.SubIssueOf).Project(i.ProjectID).One()
		if err != nil {
			return err
		}

		if parent == nil {
			return fmt.Errorf("parent issue %s: %w", i.SubIssueOf, ErrInvalidReference)
		}
	}

	return s.Manager().Create(ctx, i)
}

// PostActivity adds a comment to an issue authored by the caller's membership.
// A reply must point to an activity of the same issue.
func (t *Tracker) PostActivity(ctx context.Context, email string, projectID, issueID uuid.UUID, a *model.Activity) error {
	if strings.TrimSpace(a.Description) == "" {
		return ErrEmptyName
	}

	s, err := t.scope(ctx, email, projectID)
	if err != nil {
		return err
	}

	issue, err := s.Manager().IssueQuery(ctx).Id(issueID).Project(s.ProjectID()).One()
	if err != nil {
		return err
	}

	if issue == nil {
		return ErrNotFound
	}

	if a.ReplyTo != nil {
		parent, err := s.Manager().ActivityQuery(ctx).Id(*a.ReplyTo).Issue(issue.ID).One()
		if err != nil {
			return err
		}

		if parent == nil {
			return fmt.Errorf("reply to %s: %w", a.ReplyTo, ErrInvalidReference)
		}
	}

	a.IssueID = issue.ID
	a.MemberID = s.MemberID()
	a.PostedAt = t.now()

	return s.Manager().Create(ctx, a)
}
