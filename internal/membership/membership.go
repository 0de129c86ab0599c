// Package membership scopes data access to the projects a caller belongs to.
//
// Every scoped query starts from the caller's user row and joins through the
// caller's membership, so a caller who is not a member of the requested
// project reads nothing instead of getting a distinguishable error.
package membership

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kdudkov/projtrack/internal/database"
	"github.com/kdudkov/projtrack/internal/model"
)

var ErrNotMember = errors.New("not a member of the project")

// Projects joins users AS u, members AS mb and projects AS p for email.
// Callers add their own joins against p.
func Projects(tx *gorm.DB, email string) *gorm.DB {
	return tx.Table("users AS u").
		Joins("JOIN members AS mb ON mb.user_id = u.id").
		Joins("JOIN projects AS p ON p.id = mb.project_id").
		Where("u.email = ?", email)
}

// ScopeToMember narrows Projects to a single project.
func ScopeToMember(tx *gorm.DB, email string, projectID uuid.UUID) *gorm.DB {
	return Projects(tx, email).Where("p.id = ?", projectID)
}

type Authorizer struct {
	dbm    *database.DatabaseManager
	logger *slog.Logger
}

func NewAuthorizer(dbm *database.DatabaseManager) *Authorizer {
	return &Authorizer{
		dbm:    dbm,
		logger: slog.With("logger", "membership"),
	}
}

// ProjectIDsFor returns the ids of every project email is a member of.
func (a *Authorizer) ProjectIDsFor(ctx context.Context, email string) ([]uuid.UUID, error) {
	var ids []uuid.UUID

	if err := Projects(a.dbm.DB(ctx), email).Pluck("p.id", &ids).Error; err != nil {
		return nil, err
	}

	return ids, nil
}

// Scope resolves the caller's membership in projectID. The returned Scope is
// the only way to build project scoped queries.
func (a *Authorizer) Scope(ctx context.Context, email string, projectID uuid.UUID) (*Scope, error) {
	if email == "" || projectID == uuid.Nil {
		return nil, ErrNotMember
	}

	var members []*model.Member

	err := ScopeToMember(a.dbm.DB(ctx), email, projectID).
		Select("mb.id, mb.user_id, mb.project_id, mb.role").
		Limit(1).
		Scan(&members).Error
	if err != nil {
		return nil, err
	}

	if len(members) == 0 {
		a.logger.Debug("no membership", slog.String("email", email), slog.String("project", projectID.String()))
		return nil, ErrNotMember
	}

	return &Scope{dbm: a.dbm, email: email, member: *members[0]}, nil
}

// Scope is a resolved membership of one caller in one project.
type Scope struct {
	dbm    *database.DatabaseManager
	email  string
	member model.Member
}

func (s *Scope) Email() string {
	return s.email
}

func (s *Scope) ProjectID() uuid.UUID {
	return s.member.ProjectID
}

func (s *Scope) MemberID() uuid.UUID {
	return s.member.ID
}

func (s *Scope) UserID() uuid.UUID {
	return s.member.UserID
}

func (s *Scope) Role() string {
	return s.member.Role
}

// Query starts a new membership joined query. Membership is checked again by
// the join itself on every call, nothing is cached between calls.
func (s *Scope) Query(ctx context.Context) *gorm.DB {
	return ScopeToMember(s.dbm.DB(ctx), s.email, s.member.ProjectID)
}

// Manager exposes the storage for writes into the scoped project.
func (s *Scope) Manager() *database.DatabaseManager {
	return s.dbm
}
