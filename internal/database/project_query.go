package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kdudkov/projtrack/internal/model"
)

type ProjectQuery struct {
	Query[model.Project]
	id   *uuid.UUID
	name string
}

func NewProjectQuery(db *gorm.DB) *ProjectQuery {
	return &ProjectQuery{
		Query: Query[model.Project]{
			db:     db,
			limit:  100,
			offset: 0,
			order:  "projects.created_at",
		},
	}
}

func (q *ProjectQuery) Id(id uuid.UUID) *ProjectQuery {
	q.id = &id
	return q
}

func (q *ProjectQuery) Name(name string) *ProjectQuery {
	q.name = name
	return q
}

func (q *ProjectQuery) where() *gorm.DB {
	tx := q.db

	if q.id != nil {
		tx = tx.Where("id = ?", *q.id)
	}

	if q.name != "" {
		tx = tx.Where("name = ?", q.name)
	}

	return tx
}

func (q *ProjectQuery) Get() ([]*model.Project, error) {
	return q.get(q.where().Model(&model.Project{}))
}

func (q *ProjectQuery) One() (*model.Project, error) {
	return q.one(q.where().Model(&model.Project{}))
}

func (q *ProjectQuery) Count() (int64, error) {
	return q.count(q.where().Model(&model.Project{}))
}
