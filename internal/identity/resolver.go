package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kdudkov/projtrack/internal/cache"
	"github.com/kdudkov/projtrack/internal/database"
	"github.com/kdudkov/projtrack/internal/model"
)

var (
	ErrNoIdentity = errors.New("no verified identity")
	errUnknown    = errors.New("unknown user")
)

// Resolver maps a verified email to a User, creating the user on first
// contact. Users are never deleted, so resolved users are safe to cache.
type Resolver struct {
	dbm    *database.DatabaseManager
	cache  *cache.Cache[*model.User]
	logger *slog.Logger
}

func NewResolver(dbm *database.DatabaseManager, ttl time.Duration) *Resolver {
	r := &Resolver{
		dbm:    dbm,
		logger: slog.With("logger", "identity"),
	}

	r.cache = cache.NewWithTTL[*model.User](ttl, r.load)

	return r
}

func (r *Resolver) load(ctx context.Context, email string) (*model.User, error) {
	u, err := r.dbm.UserQuery(ctx).Email(email).One()
	if err != nil {
		return nil, err
	}

	if u == nil {
		return nil, errUnknown
	}

	return u, nil
}

// Resolve returns the user for email. Two concurrent first contacts with the
// same email end up with the same row: the loser of the insert race sees the
// unique constraint and just reads the winner's row.
func (r *Resolver) Resolve(ctx context.Context, email, name string) (*model.User, error) {
	if email == "" {
		return nil, ErrNoIdentity
	}

	u, err := r.cache.Load(ctx, email)
	if err == nil {
		return u, nil
	}

	if !errors.Is(err, errUnknown) {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	created, err := r.dbm.CreateOrSkip(ctx, &model.User{Email: email, Name: model.DisplayName(email, name)}, "email")
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	if created {
		r.logger.Info("new user", slog.String("email", email))
	}

	u, err = r.cache.Load(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	return u, nil
}

func (r *Resolver) Clean() {
	r.cache.Clean()
}
