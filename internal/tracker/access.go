package tracker

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/kdudkov/projtrack/internal/membership"
	"github.com/kdudkov/projtrack/internal/model"
)

const (
	issueColumns = "i.id AS issue_id, i.name AS issue_name, i.status AS issue_status, i.label AS issue_label, " +
		"ms.name AS milestone_name, ms.id AS milestone_id, i.assigned AS assigned, i.sub_issue_of AS sub_issue_of"

	overviewColumns = "p.id AS project_id, p.name AS project_name, p.description AS project_description, " +
		"p.status AS project_status, p.target AS project_target, p.start AS project_start, " +
		"ms.id AS milestone_id, ms.name AS milestone_name, ms.target AS milestone_target, " +
		"l.id AS link_id, l.info_link AS info_link"

	activityColumns = "a.id AS activity_id, a.description AS activity_desc, a.reply_to AS reply_to, " +
		"a.member_id AS member_id, a.posted_at AS activity_time, au.name AS activity_user_name"
)

// ListProjects returns the names of all projects email is a member of.
func (t *Tracker) ListProjects(ctx context.Context, email string) ([]*model.ProjectNameRow, error) {
	rows := make([]*model.ProjectNameRow, 0)

	if email == "" {
		return rows, nil
	}

	err := membership.Projects(t.dbm.DB(ctx), email).
		Select("p.name AS project_name").
		Order("p.created_at").
		Scan(&rows).Error

	return rows, err
}

// Overview returns the project with its milestones and links as a flat row
// set. Non members get an empty set.
func (t *Tracker) Overview(ctx context.Context, email string, projectID uuid.UUID) ([]*model.OverviewRow, error) {
	rows := make([]*model.OverviewRow, 0)

	s, err := t.scope(ctx, email, projectID)
	if err != nil {
		return emptyOnNotMember(rows, err)
	}

	err = s.Query(ctx).
		Select(overviewColumns).
		Joins("LEFT JOIN milestones AS ms ON ms.project_id = p.id").
		Joins("LEFT JOIN links AS l ON l.project_id = p.id").
		Order("ms.created_at, l.created_at").
		Scan(&rows).Error

	return rows, err
}

// Issues lists every issue of the project with its milestone, if any.
func (t *Tracker) Issues(ctx context.Context, email string, projectID uuid.UUID) ([]*model.IssueRow, error) {
	rows := make([]*model.IssueRow, 0)

	s, err := t.scope(ctx, email, projectID)
	if err != nil {
		return emptyOnNotMember(rows, err)
	}

	err = s.Query(ctx).
		Select(issueColumns).
		Joins("JOIN issues AS i ON i.project_id = p.id").
		Joins("LEFT JOIN milestones AS ms ON ms.id = i.milestone_id").
		Order("i.created_at").
		Scan(&rows).Error

	return rows, err
}

// IssueDetail returns one row per activity of the issue. Activity is an inner
// join, so an issue nobody commented on yields no rows.
func (t *Tracker) IssueDetail(ctx context.Context, email string, projectID, issueID uuid.UUID) ([]*model.IssueDetailRow, error) {
	rows := make([]*model.IssueDetailRow, 0)

	s, err := t.scope(ctx, email, projectID)
	if err != nil {
		return emptyOnNotMember(rows, err)
	}

	err = s.Query(ctx).
		Select(issueColumns+", "+activityColumns).
		Joins("JOIN issues AS i ON i.project_id = p.id").
		Joins("LEFT JOIN milestones AS ms ON ms.id = i.milestone_id").
		Joins("JOIN activities AS a ON a.issue_id = i.id").
		Joins("JOIN members AS am ON am.id = a.member_id").
		Joins("JOIN users AS au ON au.id = am.user_id").
		Where("i.id = ?", issueID).
		Order("a.posted_at").
		Scan(&rows).Error

	return rows, err
}

func emptyOnNotMember[T any](rows []T, err error) ([]T, error) {
	if errors.Is(err, membership.ErrNotMember) {
		return rows, nil
	}

	return nil, err
}
