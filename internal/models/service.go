package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	ProviderID string  `gorm:"type:uuid;index;not null" json:"provider_id"`
	Provider   Profile `gorm:"foreignKey:ProviderID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"provider,omitempty"`

	Title       string  `gorm:"size:100;not null" json:"title"`
	Description string  `gorm:"size:500" json:"description"`
	Price       float64 `gorm:"type:decimal(10,2);not null" json:"price"`

	Category string `gorm:"size:50;not null" json:"category"`
	City     string `gorm:"size:50;not null" json:"city"`

	// Soft delete: inactive services leave discovery but keep their bookings.
	IsActive bool `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}
