package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Issue.SubIssueOf and Activity.ReplyTo are plain parent ids, resolved by lookup.

type Issue struct {
	ID          uuid.UUID  `gorm:"type:char(36);primaryKey" json:"IssueId"`
	CreatedAt   time.Time  `json:"-"`
	ProjectID   uuid.UUID  `gorm:"type:char(36);not null;index" json:"ProjectId"`
	Name        string     `gorm:"type:varchar(255);not null" json:"IssueName"`
	Status      string     `gorm:"type:varchar(64);not null;default:''" json:"IssueStatus"`
	Label       string     `gorm:"type:varchar(64);not null;default:''" json:"IssueLabel"`
	MilestoneID *uuid.UUID `gorm:"type:char(36);index" json:"MilestoneId"`
	Assigned    string     `gorm:"type:varchar(255);not null;default:''" json:"Assigned"`
	SubIssueOf  *uuid.UUID `gorm:"type:char(36);index" json:"SubIssueOf"`
}

func (i *Issue) BeforeCreate(_ *gorm.DB) error {
	setID(&i.ID)
	return nil
}

type Activity struct {
	ID          uuid.UUID  `gorm:"type:char(36);primaryKey" json:"ActivityId"`
	IssueID     uuid.UUID  `gorm:"type:char(36);not null;index" json:"IssueId"`
	MemberID    uuid.UUID  `gorm:"type:char(36);not null;index" json:"MemberId"`
	Description string     `gorm:"not null" json:"ActivityDesc"`
	ReplyTo     *uuid.UUID `gorm:"type:char(36)" json:"ReplyTo"`
	PostedAt    time.Time  `gorm:"not null" json:"ActivityTime"`
}

func (a *Activity) BeforeCreate(_ *gorm.DB) error {
	setID(&a.ID)

	if a.PostedAt.IsZero() {
		a.PostedAt = time.Now()
	}

	return nil
}
