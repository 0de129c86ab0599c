package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin = "Admin"
	RoleGuest = "Guest"
)

type Member struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey" json:"MemberId"`
	CreatedAt time.Time `json:"-"`
	UserID    uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_member_user_project" json:"UserId"`
	ProjectID uuid.UUID `gorm:"type:char(36);not null;uniqueIndex:idx_member_user_project;index" json:"ProjectId"`
	Role      string    `gorm:"type:varchar(64);not null" json:"MemberRole"`
}

func (m *Member) BeforeCreate(_ *gorm.DB) error {
	setID(&m.ID)
	return nil
}
