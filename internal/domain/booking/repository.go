package booking

import (
	"context"
	"time"

	"github.com/LocalServicesHQ/marketplace-api/internal/models"
)

type Repository interface {
	// -------- Service --------
	GetService(
		ctx context.Context,
		serviceID string,
	) (*models.Service, error)

	// -------- Booking (create / conflict) --------
	HasActiveBooking(
		ctx context.Context,
		customerID string,
		serviceID string,
	) (bool, error)

	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	// -------- Booking (state change) --------
	GetBooking(
		ctx context.Context,
		bookingID string,
	) (*models.Booking, error)

	// TransitionStatus persists a status change only if the row still holds
	// the expected current status. Returns false when another actor got
	// there first.
	TransitionStatus(
		ctx context.Context,
		bookingID string,
		from Status,
		to Status,
		now time.Time,
	) (bool, error)

	// -------- Booking (role-scoped reads) --------
	ListByCustomer(
		ctx context.Context,
		customerID string,
	) ([]models.Booking, error)

	ListByProvider(
		ctx context.Context,
		providerID string,
	) ([]models.Booking, error)

	// -------- Feedback --------
	GetFeedbackByBooking(
		ctx context.Context,
		bookingID string,
	) (*models.Feedback, error)

	CreateFeedback(
		ctx context.Context,
		f *models.Feedback,
	) error

	ListFeedbackForProvider(
		ctx context.Context,
		providerID string,
	) ([]models.Feedback, error)
}
