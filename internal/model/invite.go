package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Invite struct {
	ID         uuid.UUID  `gorm:"type:char(36);primaryKey" json:"InvitesId"`
	CreatedAt  time.Time  `json:"-"`
	InvitedBy  uuid.UUID  `gorm:"type:char(36);not null" json:"InvitedBy"`
	ProjectID  uuid.UUID  `gorm:"type:char(36);not null;index" json:"InvitedToProjectId"`
	Email      string     `gorm:"type:varchar(255);not null;index" json:"InvitedEmail"`
	Role       string     `gorm:"type:varchar(64);not null" json:"InvitedForRole"`
	ExpiresAt  *time.Time `json:"ExpiresAt,omitempty"`
	ConsumedAt *time.Time `json:"ConsumedAt,omitempty"`
	ConsumedBy *uuid.UUID `gorm:"type:char(36)" json:"ConsumedBy,omitempty"`
}

func (i *Invite) BeforeCreate(_ *gorm.DB) error {
	setID(&i.ID)
	return nil
}

// Claimable reports whether the invite can still be consumed at t.
func (i *Invite) Claimable(t time.Time) bool {
	if i == nil || i.ConsumedAt != nil {
		return false
	}

	return i.ExpiresAt == nil || t.Before(*i.ExpiresAt)
}
