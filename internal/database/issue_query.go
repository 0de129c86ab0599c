package database

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kdudkov/projtrack/internal/model"
)

type IssueQuery struct {
	Query[model.Issue]
	id        *uuid.UUID
	projectID *uuid.UUID
}

func NewIssueQuery(db *gorm.DB) *IssueQuery {
	return &IssueQuery{
		Query: Query[model.Issue]{
			db:     db,
			limit:  100,
			offset: 0,
			order:  "issues.created_at",
		},
	}
}

func (q *IssueQuery) Id(id uuid.UUID) *IssueQuery {
	q.id = &id
	return q
}

func (q *IssueQuery) Project(id uuid.UUID) *IssueQuery {
	q.projectID = &id
	return q
}

func (q *IssueQuery) where() *gorm.DB {
	tx := q.db

	if q.id != nil {
		tx = tx.Where("id = ?", *q.id)
	}

	if q.projectID != nil {
		tx = tx.Where("project_id = ?", *q.projectID)
	}

	return tx
}

func (q *IssueQuery) Get() ([]*model.Issue, error) {
	return q.get(q.where().Model(&model.Issue{}))
}

func (q *IssueQuery) One() (*model.Issue, error) {
	return q.one(q.where().Model(&model.Issue{}))
}

func (q *IssueQuery) Count() (int64, error) {
	return q.count(q.where().Model(&model.Issue{}))
}

type MilestoneQuery struct {
	Query[model.Milestone]
	id        *uuid.UUID
	projectID *uuid.UUID
}

func NewMilestoneQuery(db *gorm.DB) *MilestoneQuery {
	return &MilestoneQuery{
		Query: Query[model.Milestone]{
			db:     db,
			limit:  100,
			offset: 0,
			order:  "milestones.created_at",
		},
	}
}

func (q *MilestoneQuery) Id(id uuid.UUID) *MilestoneQuery {
	q.id = &id
	return q
}

func (q *MilestoneQuery) Project(id uuid.UUID) *MilestoneQuery {
	q.projectID = &id
	return q
}

func (q *MilestoneQuery) where() *gorm.DB {
	tx := q.db

	if q.id != nil {
		tx = tx.Where("id = ?", *q.id)
	}

	if q.projectID != nil {
		tx = tx.Where("project_id = ?", *q.projectID)
	}

	return tx
}

func (q *MilestoneQuery) Get() ([]*model.Milestone, error) {
	return q.get(q.where().Model(&model.Milestone{}))
}

func (q *MilestoneQuery) One() (*model.Milestone, error) {
	return q.one(q.where().Model(&model.Milestone{}))
}

type ActivityQuery struct {
	Query[model.Activity]
	id      *uuid.UUID
	issueID *uuid.UUID
}

func NewActivityQuery(db *gorm.DB) *ActivityQuery {
	return &ActivityQuery{
		Query: Query[model.Activity]{
			db:     db,
			limit:  100,
			offset: 0,
			order:  "activities.posted_at",
		},
	}
}

func (q *ActivityQuery) Id(id uuid.UUID) *ActivityQuery {
	q.id = &id
	return q
}

func (q *ActivityQuery) Issue(id uuid.UUID) *ActivityQuery {
	q.issueID = &id
	return q
}

func (q *ActivityQuery) where() *gorm.DB {
	tx := q.db

	if q.id != nil {
		tx = tx.Where("id = ?", *q.id)
	}

	if q.issueID != nil {
		tx = tx.Where("issue_id = ?", *q.issueID)
	}

	return tx
}

func (q *ActivityQuery) Get() ([]*model.Activity, error) {
	return q.get(q.where().Model(&model.Activity{}))
}

func (q *ActivityQuery) One() (*model.Activity, error) {
	return q.one(q.where().Model(&model.Activity{}))
}
