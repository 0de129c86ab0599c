package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID        uuid.UUID `gorm:"type:char(36);primaryKey" json:"UserId"`
	CreatedAt time.Time `json:"-"`
	Email     string    `gorm:"type:varchar(255);not null;uniqueIndex" json:"Email"`
	Name      string    `gorm:"type:varchar(255);not null;default:''" json:"UserName"`
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	setID(&u.ID)
	return nil
}

// DisplayName falls back to the local part of the email.
func DisplayName(email, name string) string {
	if name = strings.TrimSpace(name); name != "" {
		return name
	}

	local, _, _ := strings.Cut(email, "@")

	return local
}

func setID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
