package booking

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/LocalServicesHQ/marketplace-api/internal/audit"
	"github.com/LocalServicesHQ/marketplace-api/internal/cache"
	domain "github.com/LocalServicesHQ/marketplace-api/internal/domain/booking"
	"github.com/LocalServicesHQ/marketplace-api/internal/domain/catalog"
	"github.com/LocalServicesHQ/marketplace-api/internal/httperr"
	"github.com/LocalServicesHQ/marketplace-api/internal/models"
	"github.com/LocalServicesHQ/marketplace-api/internal/timezone"
)

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	ServiceID  string
	CustomerID string

	BookingDate time.Time
	TimeSlot    string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache cache.Store
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache cache.Store,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	if in.BookingDate.IsZero() {
		return nil, httperr.ErrValidation("missing_booking_date")
	}

	now := timezone.Now()
	if in.BookingDate.Before(now) {
		return nil, httperr.ErrValidation("booking_date_in_past")
	}

	if in.TimeSlot != "" && !catalog.IsValidTimeSlot(in.TimeSlot) {
		return nil, httperr.ErrValidation("invalid_time_slot")
	}

	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("service_not_found")
		}
		return nil, err
	}

	if !svc.IsActive {
		return nil, httperr.ErrNotFound("service_not_available")
	}

	// No self-booking: a provider cannot reserve their own listing.
	if in.CustomerID == svc.ProviderID {
		return nil, httperr.ErrAuthorization("cannot_book_own_service")
	}

	active, err := uc.repo.HasActiveBooking(ctx, in.CustomerID, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if active {
		return nil, httperr.ErrConflict("booking_already_active")
	}

	// ProviderID always comes from the service row, never from the caller.
	b := &models.Booking{
		ServiceID:   svc.ID,
		CustomerID:  in.CustomerID,
		ProviderID:  svc.ProviderID,
		Status:      string(domain.InitialStatus()),
		BookingDate: in.BookingDate,
		TimeSlot:    in.TimeSlot,
	}

	if err := uc.repo.CreateBooking(ctx, b); err != nil {
		// The partial unique index catches the race two concurrent creates
		// can win past the count check above.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, httperr.ErrConflict("booking_already_active")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  in.CustomerID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: b.ID,
	})

	uc.cache.Invalidate(ctx,
		cache.CustomerBookingsCollection(b.CustomerID),
		cache.ProviderBookingsCollection(b.ProviderID),
		cache.CustomerStatsCollection(b.CustomerID),
		cache.ProviderStatsCollection(b.ProviderID),
	)

	return b, nil
}
