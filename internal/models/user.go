package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User carries only the credentials; everything user-facing lives on Profile,
// which shares the same ID.
type User struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}
