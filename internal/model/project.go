package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Project struct {
	ID          uuid.UUID  `gorm:"type:char(36);primaryKey" json:"ProjectId"`
	CreatedAt   time.Time  `json:"-"`
	Name        string     `gorm:"type:varchar(255);not null" json:"ProjectName"`
	Description string     `gorm:"not null;default:''" json:"ProjectDescription"`
	Status      string     `gorm:"type:varchar(64);not null;default:''" json:"ProjectStatus"`
	Target      *time.Time `json:"ProjectTarget"`
	Start       *time.Time `json:"ProjectStart"`
}

func (p *Project) BeforeCreate(_ *gorm.DB) error {
	setID(&p.ID)
	return nil
}

type Milestone struct {
	ID        uuid.UUID  `gorm:"type:char(36);primaryKey" json:"MilestoneId"`
	CreatedAt time.Time  `json:"-"`
	ProjectID uuid.UUID  `gorm:"type:char(36);not null;index" json:"ProjectId"`
	Name      string     `gorm:"type:varchar(255);not null" json:"MilestoneName"`
	Target    *time.Time `json:"MilestoneTarget"`
}

func (m *Milestone) BeforeCreate(_ *gorm.DB) error {
	setID(&m.ID)
	return nil
}

type Link struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey" json:"LinkId"`
	CreatedAt time.Time `json:"-"`
	ProjectID uuid.UUID `gorm:"type:char(36);not null;index" json:"ProjectId"`
	InfoLink  string    `gorm:"not null" json:"InfoLink"`
}

func (l *Link) BeforeCreate(_ *gorm.DB) error {
	setID(&l.ID)
	return nil
}
