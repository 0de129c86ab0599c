package database

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/kdudkov/projtrack/internal/model"
)

type DatabaseManager struct {
	db     *gorm.DB
	logger *slog.Logger
}

func New(db *gorm.DB) *DatabaseManager {
	m := &DatabaseManager{
		db:     db,
		logger: slog.With("logger", "dbm"),
	}

	return m
}

// DB returns the underlying handle bound to ctx. Inside Transaction it is the
// transaction itself.
func (mm *DatabaseManager) DB(ctx context.Context) *gorm.DB {
	return mm.db.WithContext(ctx)
}

func (mm *DatabaseManager) Create(ctx context.Context, s any) error {
	if mm == nil || mm.db == nil {
		return fmt.Errorf("no database")
	}

	err := mm.db.WithContext(ctx).Create(s).Error

	if err != nil {
		mm.logger.Error("error create object", slog.Any("error", err))
	}

	return err
}

// CreateOrSkip inserts s unless a row with the same values in the unique
// columns already exists. It reports whether a row was inserted.
func (mm *DatabaseManager) CreateOrSkip(ctx context.Context, s any, columns ...string) (bool, error) {
	if mm == nil || mm.db == nil {
		return false, fmt.Errorf("no database")
	}

	cols := make([]clause.Column, len(columns))
	for i, c := range columns {
		cols[i] = clause.Column{Name: c}
	}

	res := mm.db.WithContext(ctx).Clauses(clause.OnConflict{Columns: cols, DoNothing: true}).Create(s)

	if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
		return false, nil
	}

	if res.Error != nil {
		mm.logger.Error("error create object", slog.Any("error", res.Error))
		return false, res.Error
	}

	return res.RowsAffected > 0, nil
}

func (mm *DatabaseManager) Save(ctx context.Context, s any) error {
	if mm == nil || mm.db == nil {
		return fmt.Errorf("no database")
	}

	err := mm.db.WithContext(ctx).Save(s).Error

	if err != nil {
		mm.logger.Error("error saving object", slog.Any("error", err))
	}

	return err
}

// Transaction runs f against a manager bound to a single transaction. Any
// error returned by f rolls everything back.
func (mm *DatabaseManager) Transaction(ctx context.Context, f func(tx *DatabaseManager) error) error {
	if mm == nil || mm.db == nil {
		return fmt.Errorf("no database")
	}

	return mm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return f(&DatabaseManager{db: tx, logger: mm.logger})
	})
}

func (mm *DatabaseManager) UserQuery(ctx context.Context) *UserQuery {
	return NewUserQuery(mm.db.WithContext(ctx))
}

func (mm *DatabaseManager) MemberQuery(ctx context.Context) *MemberQuery {
	return NewMemberQuery(mm.db.WithContext(ctx))
}

func (mm *DatabaseManager) ProjectQuery(ctx context.Context) *ProjectQuery {
	return NewProjectQuery(mm.db.WithContext(ctx))
}

func (mm *DatabaseManager) MilestoneQuery(ctx context.Context) *MilestoneQuery {
	return NewMilestoneQuery(mm.db.WithContext(ctx))
}

func (mm *DatabaseManager) IssueQuery(ctx context.Context) *IssueQuery {
	return NewIssueQuery(mm.db.WithContext(ctx))
}

func (mm *DatabaseManager) ActivityQuery(ctx context.Context) *ActivityQuery {
	return NewActivityQuery(mm.db.WithContext(ctx))
}

func (mm *DatabaseManager) InviteQuery(ctx context.Context) *InviteQuery {
	return NewInviteQuery(mm.db.WithContext(ctx))
}

func (mm *DatabaseManager) Migrate() error {
	if mm == nil || mm.db == nil {
		return fmt.Errorf("no database")
	}

	// Migrate the schema
	if err := mm.db.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.Member{},
		&model.Milestone{},
		&model.Link{},
		&model.Issue{},
		&model.Activity{},
		&model.Invite{},
	); err != nil {
		return err
	}

	return nil
}
