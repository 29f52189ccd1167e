package dto

import "time"

// Role-scoped booking views: the same rows render differently for the two
// sides of a booking, so each side gets its own shape instead of runtime
// branching in the handlers.

type FeedbackDTO struct {
	ID      string `json:"id"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

type CustomerBookingDTO struct {
	ID           string       `json:"id"`
	ServiceID    string       `json:"service_id"`
	ServiceTitle string       `json:"service_title"`
	ServicePrice float64      `json:"service_price"`
	ProviderName string       `json:"provider_name"`
	Status       string       `json:"status"`
	BookingDate  time.Time    `json:"booking_date"`
	TimeSlot     string       `json:"time_slot,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	Feedback     *FeedbackDTO `json:"feedback,omitempty"`
}

type ProviderBookingDTO struct {
	ID           string    `json:"id"`
	ServiceID    string    `json:"service_id"`
	ServiceTitle string    `json:"service_title"`
	ServicePrice float64   `json:"service_price"`
	CustomerName string    `json:"customer_name"`
	Status       string    `json:"status"`
	BookingDate  time.Time `json:"booking_date"`
	TimeSlot     string    `json:"time_slot,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
