package dto

import "time"

type ServiceListDTO struct {
	ID           string  `json:"id"`
	ProviderID   string  `json:"provider_id"`
	ProviderName string  `json:"provider_name"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Category     string  `json:"category"`
	City         string  `json:"city"`
}

// ProviderServiceDTO is the owner's (and the provider page's) view of a
// listing. No embedded provider struct; callers already know whose it is.
type ProviderServiceDTO struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	City        string    `json:"city"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type ProviderFeedbackDTO struct {
	ID           string    `json:"id"`
	Rating       int       `json:"rating"`
	Comment      string    `json:"comment"`
	ServiceTitle string    `json:"service_title"`
	CustomerName string    `json:"customer_name"`
	CreatedAt    time.Time `json:"created_at"`
}
