package models

import "time"

const (
	UserTypeCustomer = "customer"
	UserTypeProvider = "provider"
)

// Profile is keyed by the identity id. UserType never changes after creation;
// there is no role-switch flow.
type Profile struct {
	ID string `gorm:"type:uuid;primaryKey" json:"id"`

	FullName string `gorm:"size:100;not null" json:"full_name"`
	UserType string `gorm:"size:20;not null" json:"user_type"`

	ContactNumber string `gorm:"size:20" json:"contact_number"`
	Address       string `gorm:"size:255" json:"address"`
	City          string `gorm:"size:50" json:"city"`
	Bio           string `gorm:"size:500" json:"bio"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Profile) IsProvider() bool {
	return p.UserType == UserTypeProvider
}
