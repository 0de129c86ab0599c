package database

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kdudkov/projtrack/internal/model"
)

var errNoID = errors.New("claim without invite id")

type InviteQuery struct {
	Query[model.Invite]
	id        *uuid.UUID
	projectID *uuid.UUID
	email     *string
	pending   bool
}

func NewInviteQuery(db *gorm.DB) *InviteQuery {
	return &InviteQuery{
		Query: Query[model.Invite]{
			db:     db,
			limit:  100,
			offset: 0,
			order:  "invites.created_at",
		},
	}
}

func (q *InviteQuery) Order(s string) *InviteQuery {
	q.order = s
	return q
}

func (q *InviteQuery) Limit(n int) *InviteQuery {
	q.limit = n
	return q
}

func (q *InviteQuery) Id(id uuid.UUID) *InviteQuery {
	q.id = &id
	return q
}

func (q *InviteQuery) Project(id uuid.UUID) *InviteQuery {
	q.projectID = &id
	return q
}

func (q *InviteQuery) Email(email string) *InviteQuery {
	q.email = &email
	return q
}

// Pending keeps invites that were not consumed yet.
func (q *InviteQuery) Pending() *InviteQuery {
	q.pending = true
	return q
}

func (q *InviteQuery) where() *gorm.DB {
	tx := q.db

	if q.id != nil {
		tx = tx.Where("id = ?", *q.id)
	}

	if q.projectID != nil {
		tx = tx.Where("project_id = ?", *q.projectID)
	}

	if q.email != nil {
		tx = tx.Where("email = ?", *q.email)
	}

	if q.pending {
		tx = tx.Where("consumed_at IS NULL")
	}

	return tx
}

func (q *InviteQuery) Get() ([]*model.Invite, error) {
	return q.get(q.where().Model(&model.Invite{}))
}

func (q *InviteQuery) One() (*model.Invite, error) {
	return q.one(q.where().Model(&model.Invite{}))
}

func (q *InviteQuery) Count() (int64, error) {
	return q.count(q.where().Model(&model.Invite{}))
}

// Claim marks the pending invite set by Id consumed by userID in one
// conditional update and reports whether the row was actually claimed.
func (q *InviteQuery) Claim(userID uuid.UUID, at time.Time) (bool, error) {
	if q.id == nil {
		return false, errNoID
	}

	q.pending = true

	n, err := q.update(q.where().Model(&model.Invite{}), map[string]any{
		"consumed_at": at,
		"consumed_by": userID,
	})

	return n == 1, err
}
