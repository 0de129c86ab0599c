package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kdudkov/projtrack/internal/model"
)

type UserQuery struct {
	Query[model.User]
	id    *uuid.UUID
	email *string
}

func NewUserQuery(db *gorm.DB) *UserQuery {
	return &UserQuery{
		Query: Query[model.User]{
			db:     db,
			limit:  100,
			offset: 0,
			order:  "email",
		},
	}
}

func (q *UserQuery) Limit(n int) *UserQuery {
	q.limit = n
	return q
}

func (q *UserQuery) Id(id uuid.UUID) *UserQuery {
	q.id = &id
	return q
}

// Email matches the address exactly, no case folding.
func (q *UserQuery) Email(email string) *UserQuery {
	q.email = &email
	return q
}

func (q *UserQuery) where() *gorm.DB {
	tx := q.db

	if q.id != nil {
		tx = tx.Where("id = ?", *q.id)
	}

	if q.email != nil {
		tx = tx.Where("email = ?", *q.email)
	}

	return tx
}

func (q *UserQuery) Get() ([]*model.User, error) {
	return q.get(q.where().Model(&model.User{}))
}

func (q *UserQuery) One() (*model.User, error) {
	return q.one(q.where().Model(&model.User{}))
}

func (q *UserQuery) Count() (int64, error) {
	return q.count(q.where().Model(&model.User{}))
}
