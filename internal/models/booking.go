package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Booking struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	ServiceID string  `gorm:"type:uuid;index;not null" json:"service_id"`
	Service   Service `gorm:"foreignKey:ServiceID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service,omitempty"`

	CustomerID string  `gorm:"type:uuid;index;not null" json:"customer_id"`
	Customer   Profile `gorm:"foreignKey:CustomerID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer,omitempty"`

	// Always derived from the service row at creation time, never taken from
	// the request. Must equal Service.ProviderID.
	ProviderID string `gorm:"type:uuid;index;not null" json:"provider_id"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	// At most one feedback ever attaches to a booking.
	Feedback *Feedback `gorm:"foreignKey:BookingID" json:"feedback,omitempty"`

	BookingDate time.Time `gorm:"not null" json:"booking_date"`
	TimeSlot    string    `gorm:"size:20" json:"time_slot"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return nil
}
