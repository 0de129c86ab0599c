package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kdudkov/projtrack/internal/model"
)

type MemberQuery struct {
	Query[model.Member]
	id        *uuid.UUID
	userID    *uuid.UUID
	projectID *uuid.UUID
	role      string
}

func NewMemberQuery(db *gorm.DB) *MemberQuery {
	return &MemberQuery{
		Query: Query[model.Member]{
			db:     db,
			limit:  100,
			offset: 0,
			order:  "members.created_at",
		},
	}
}

func (q *MemberQuery) Limit(n int) *MemberQuery {
	q.limit = n
	return q
}

func (q *MemberQuery) Offset(n int) *MemberQuery {
	q.offset = n
	return q
}

func (q *MemberQuery) Id(id uuid.UUID) *MemberQuery {
	q.id = &id
	return q
}

func (q *MemberQuery) User(id uuid.UUID) *MemberQuery {
	q.userID = &id
	return q
}

func (q *MemberQuery) Project(id uuid.UUID) *MemberQuery {
	q.projectID = &id
	return q
}

func (q *MemberQuery) Role(role string) *MemberQuery {
	q.role = role
	return q
}

func (q *MemberQuery) where() *gorm.DB {
	tx := q.db

	if q.id != nil {
		tx = tx.Where("id = ?", *q.id)
	}

	if q.userID != nil {
		tx = tx.Where("user_id = ?", *q.userID)
	}

	if q.projectID != nil {
		tx = tx.Where("project_id = ?", *q.projectID)
	}

	if q.role != "" {
		tx = tx.Where("role = ?", q.role)
	}

	return tx
}

func (q *MemberQuery) Get() ([]*model.Member, error) {
	return q.get(q.where().Model(&model.Member{}))
}

func (q *MemberQuery) One() (*model.Member, error) {
	return q.one(q.where().Model(&model.Member{}))
}

func (q *MemberQuery) Count() (int64, error) {
	return q.count(q.where().Model(&model.Member{}))
}
