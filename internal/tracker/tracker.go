// Package tracker holds the scoped reads, project mutations and the invite
// lifecycle. Every operation takes the verified caller email explicitly.
package tracker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kdudkov/projtrack/internal/database"
	"github.com/kdudkov/projtrack/internal/identity"
	"github.com/kdudkov/projtrack/internal/membership"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrNotFound         = errors.New("not found")
	ErrInvalidReference = errors.New("reference to another project or issue")
	ErrEmptyName        = errors.New("empty name")
	ErrEmptyEmail       = errors.New("empty email")
)

type Tracker struct {
	dbm       *database.DatabaseManager
	auth      *membership.Authorizer
	users     *identity.Resolver
	inviteTTL time.Duration
	now       func() time.Time
	logger    *slog.Logger
}

// New builds a tracker. inviteTTL <= 0 issues invites that never expire.
func New(dbm *database.DatabaseManager, auth *membership.Authorizer, users *identity.Resolver, inviteTTL time.Duration) *Tracker {
	return &Tracker{
		dbm:       dbm,
		auth:      auth,
		users:     users,
		inviteTTL: inviteTTL,
		now:       time.Now,
		logger:    slog.With("logger", "tracker"),
	}
}

func (t *Tracker) Authorizer() *membership.Authorizer {
	return t.auth
}

// scope resolves membership. ErrNotMember is logged here so callers may turn
// it into an empty result.
func (t *Tracker) scope(ctx context.Context, email string, projectID uuid.UUID) (*membership.Scope, error) {
	s, err := t.auth.Scope(ctx, email, projectID)

	if errors.Is(err, membership.ErrNotMember) {
		t.logger.Info("access outside membership", slog.String("email", email), slog.String("project", projectID.String()))
	}

	return s, err
}
