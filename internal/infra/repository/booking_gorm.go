package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	domain "github.com/LocalServicesHQ/marketplace-api/internal/domain/booking"
	"github.com/LocalServicesHQ/marketplace-api/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Service
// --------------------------------------------------

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	serviceID string,
) (*models.Service, error) {

	var svc models.Service
	if err := r.db.WithContext(ctx).
		Where("id = ?", serviceID).
		First(&svc).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

// --------------------------------------------------
// Booking (create / conflict)
// --------------------------------------------------

func (r *BookingGormRepository) HasActiveBooking(
	ctx context.Context,
	customerID string,
	serviceID string,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where(
			"customer_id = ? AND service_id = ? AND status IN ?",
			customerID,
			serviceID,
			[]string{string(domain.StatusPending), string(domain.StatusAccepted)},
		).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Create(b).Error
}

// --------------------------------------------------
// Booking (state change)
// --------------------------------------------------

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	bookingID string,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Where("id = ?", bookingID).
		First(&b).Error; err != nil {
		return nil, err
	}

	return &b, nil
}

func (r *BookingGormRepository) TransitionStatus(
	ctx context.Context,
	bookingID string,
	from domain.Status,
	to domain.Status,
	now time.Time,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ? AND status = ?", bookingID, string(from)).
		Updates(map[string]any{
			"status":     string(to),
			"updated_at": now,
		})

	if res.Error != nil {
		return false, res.Error
	}

	return res.RowsAffected > 0, nil
}

// --------------------------------------------------
// Booking (role-scoped reads)
// --------------------------------------------------

func (r *BookingGormRepository) ListByCustomer(
	ctx context.Context,
	customerID string,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Service.Provider").
		Preload("Feedback").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *BookingGormRepository) ListByProvider(
	ctx context.Context,
	providerID string,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Service").
		Preload("Customer").
		Where("provider_id = ?", providerID).
		Order("created_at DESC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}

	return bookings, nil
}

// --------------------------------------------------
// Feedback
// --------------------------------------------------

func (r *BookingGormRepository) GetFeedbackByBooking(
	ctx context.Context,
	bookingID string,
) (*models.Feedback, error) {

	var f models.Feedback
	if err := r.db.WithContext(ctx).
		Where("booking_id = ?", bookingID).
		First(&f).Error; err != nil {
		return nil, err
	}

	return &f, nil
}

func (r *BookingGormRepository) CreateFeedback(
	ctx context.Context,
	f *models.Feedback,
) error {
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *BookingGormRepository) ListFeedbackForProvider(
	ctx context.Context,
	providerID string,
) ([]models.Feedback, error) {

	var feedbacks []models.Feedback
	if err := r.db.WithContext(ctx).
		Preload("Booking").
		Preload("Booking.Service").
		Preload("Booking.Customer").
		Where("provider_id = ?", providerID).
		Order("created_at DESC").
		Find(&feedbacks).Error; err != nil {
		return nil, err
	}

	return feedbacks, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
