package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Feedback is immutable once created. The unique index on BookingID is the
// last line of defense for the one-feedback-per-booking invariant.
type Feedback struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	BookingID string  `gorm:"type:uuid;uniqueIndex;not null" json:"booking_id"`
	Booking   Booking `gorm:"foreignKey:BookingID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"booking,omitempty"`

	ProviderID string `gorm:"type:uuid;index;not null" json:"provider_id"`

	Rating  int    `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment string `gorm:"size:1000;not null" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
}

func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}
