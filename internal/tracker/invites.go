package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/kdudkov/projtrack/internal/database"
	"github.com/kdudkov/projtrack/internal/model"
)

// InviteOutcome is the result of an invite consumption. A rejected outcome
// looks the same whether the invite is unknown, addressed to someone else,
// expired or already used.
type InviteOutcome struct {
	Accepted      bool
	ProjectID     uuid.UUID
	AlreadyMember bool
}

// IssueInvite lets a member of projectID invite inviteeEmail with role. An
// empty role means Guest.
func (t *Tracker) IssueInvite(ctx context.Context, email string, projectID uuid.UUID, inviteeEmail, role string) (*model.Invite, error) {
	if inviteeEmail == "" {
		return nil, ErrEmptyEmail
	}

	if role == "" {
		role = model.RoleGuest
	}

	s, err := t.scope(ctx, email, projectID)
	if err != nil {
		return nil, err
	}

	inv := &model.Invite{
		InvitedBy: s.MemberID(),
		ProjectID: s.ProjectID(),
		Email:     inviteeEmail,
		Role:      role,
	}

	if t.inviteTTL > 0 {
		exp := t.now().Add(t.inviteTTL)
		inv.ExpiresAt = &exp
	}

	if err := s.Manager().Create(ctx, inv); err != nil {
		return nil, fmt.Errorf("create invite: %w", err)
	}

	invitesIssued.Inc()
	t.logger.Info("invite issued", slog.String("project", projectID.String()), slog.String("by", email), slog.String("to", inviteeEmail), slog.String("role", role))

	return inv, nil
}

// ConsumeInvite turns a pending invite addressed to email into a membership.
// The invite is claimed and the member created in one transaction, so an
// invite can be used only once.
func (t *Tracker) ConsumeInvite(ctx context.Context, inviteID uuid.UUID, email string) (*InviteOutcome, error) {
	if email == "" {
		return nil, ErrEmptyEmail
	}

	if inviteID == uuid.Nil {
		return t.reject(inviteID, email), nil
	}

	now := t.now()

	inv, err := t.dbm.InviteQuery(ctx).Id(inviteID).One()
	if err != nil {
		return nil, err
	}

	// email comparison is done here and not in sql to stay case sensitive
	// regardless of the database collation
	if inv == nil || inv.Email != email || !inv.Claimable(now) {
		return t.reject(inviteID, email), nil
	}

	u, err := t.users.Resolve(ctx, email, "")
	if err != nil {
		return nil, err
	}

	out := &InviteOutcome{ProjectID: inv.ProjectID}

	err = t.dbm.Transaction(ctx, func(tx *database.DatabaseManager) error {
		claimed, err := tx.InviteQuery(ctx).Id(inv.ID).Claim(u.ID, now)
		if err != nil {
			return err
		}

		if !claimed {
			return errAlreadyClaimed
		}

		created, err := tx.CreateOrSkip(ctx, &model.Member{UserID: u.ID, ProjectID: inv.ProjectID, Role: inv.Role}, "user_id", "project_id")
		if err != nil {
			return fmt.Errorf("create member: %w", err)
		}

		out.Accepted = true
		out.AlreadyMember = !created

		return nil
	})

	if errors.Is(err, errAlreadyClaimed) {
		return t.reject(inviteID, email), nil
	}

	if err != nil {
		return nil, err
	}

	if out.AlreadyMember {
		invitesConsumed.WithLabelValues(resultMember).Inc()
	} else {
		invitesConsumed.WithLabelValues(resultAccepted).Inc()
	}

	t.logger.Info("invite consumed", slog.String("invite", inviteID.String()), slog.String("email", email),
		slog.String("project", inv.ProjectID.String()), slog.Bool("already_member", out.AlreadyMember))

	return out, nil
}

var errAlreadyClaimed = errors.New("invite already claimed")

func (t *Tracker) reject(inviteID uuid.UUID, email string) *InviteOutcome {
	invitesConsumed.WithLabelValues(resultRejected).Inc()
	t.logger.Info("invite rejected", slog.String("invite", inviteID.String()), slog.String("email", email))

	return &InviteOutcome{}
}
