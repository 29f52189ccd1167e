package booking

import (
	"context"

	"github.com/LocalServicesHQ/marketplace-api/internal/cache"
	domain "github.com/LocalServicesHQ/marketplace-api/internal/domain/booking"
	"github.com/LocalServicesHQ/marketplace-api/internal/dto"
	"github.com/LocalServicesHQ/marketplace-api/internal/models"
)

type ListBookings struct {
	repo  domain.Repository
	cache cache.Store
}

func NewListBookings(repo domain.Repository, cache cache.Store) *ListBookings {
	return &ListBookings{
		repo:  repo,
		cache: cache,
	}
}

// ======================================================
// CUSTOMER VIEW
// ======================================================

func (uc *ListBookings) ExecuteForCustomer(
	ctx context.Context,
	customerID string,
) ([]dto.CustomerBookingDTO, error) {

	collection := cache.CustomerBookingsCollection(customerID)
	key := collection + ":list"

	var cached []dto.CustomerBookingDTO
	if uc.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	bookings, err := uc.repo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	views := make([]dto.CustomerBookingDTO, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, toCustomerView(b))
	}

	uc.cache.SetJSON(ctx, collection, key, views)
	return views, nil
}

// ======================================================
// PROVIDER VIEW
// ======================================================

func (uc *ListBookings) ExecuteForProvider(
	ctx context.Context,
	providerID string,
) ([]dto.ProviderBookingDTO, error) {

	collection := cache.ProviderBookingsCollection(providerID)
	key := collection + ":list"

	var cached []dto.ProviderBookingDTO
	if uc.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	bookings, err := uc.repo.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	views := make([]dto.ProviderBookingDTO, 0, len(bookings))
	for _, b := range bookings {
		views = append(views, toProviderView(b))
	}

	uc.cache.SetJSON(ctx, collection, key, views)
	return views, nil
}

// ======================================================
// MAPPING
// ======================================================

func toCustomerView(b models.Booking) dto.CustomerBookingDTO {
	view := dto.CustomerBookingDTO{
		ID:           b.ID,
		ServiceID:    b.ServiceID,
		ServiceTitle: b.Service.Title,
		ServicePrice: b.Service.Price,
		ProviderName: b.Service.Provider.FullName,
		Status:       b.Status,
		BookingDate:  b.BookingDate,
		TimeSlot:     b.TimeSlot,
		CreatedAt:    b.CreatedAt,
	}

	if b.Feedback != nil {
		view.Feedback = &dto.FeedbackDTO{
			ID:      b.Feedback.ID,
			Rating:  b.Feedback.Rating,
			Comment: b.Feedback.Comment,
		}
	}

	return view
}

func toProviderView(b models.Booking) dto.ProviderBookingDTO {
	return dto.ProviderBookingDTO{
		ID:           b.ID,
		ServiceID:    b.ServiceID,
		ServiceTitle: b.Service.Title,
		ServicePrice: b.Service.Price,
		CustomerName: b.Customer.FullName,
		Status:       b.Status,
		BookingDate:  b.BookingDate,
		TimeSlot:     b.TimeSlot,
		CreatedAt:    b.CreatedAt,
	}
}
