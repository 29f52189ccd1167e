package dto

// Dashboard summaries, one shape per role.

type ProviderStatsDTO struct {
	// Accepted plus completed bookings.
	TotalBookings int64 `json:"total_bookings"`
	// Mean feedback rating, one decimal place. Zero when no feedback yet.
	AvgRating      float64 `json:"avg_rating"`
	ActiveServices int64   `json:"active_services"`
	// Sum of service prices over completed bookings.
	TotalIncome float64 `json:"total_income"`
}

type CustomerStatsDTO struct {
	// Every booking the customer ever placed, regardless of status.
	TotalOrders int64 `json:"total_orders"`
}
