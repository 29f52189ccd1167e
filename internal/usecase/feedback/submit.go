package feedback

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/LocalServicesHQ/marketplace-api/internal/audit"
	"github.com/LocalServicesHQ/marketplace-api/internal/cache"
	domain "github.com/LocalServicesHQ/marketplace-api/internal/domain/booking"
	"github.com/LocalServicesHQ/marketplace-api/internal/httperr"
	"github.com/LocalServicesHQ/marketplace-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type SubmitFeedbackInput struct {
	BookingID  string
	CustomerID string
	Rating     int
	Comment    string
}

// ======================================================
// USE CASE
// ======================================================

type SubmitFeedback struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache cache.Store
}

func NewSubmitFeedback(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache cache.Store,
) *SubmitFeedback {
	return &SubmitFeedback{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

func (uc *SubmitFeedback) Execute(
	ctx context.Context,
	in SubmitFeedbackInput,
) (*models.Feedback, error) {

	if in.Rating < 1 || in.Rating > 5 {
		return nil, httperr.ErrValidation("rating_out_of_range")
	}

	if strings.TrimSpace(in.Comment) == "" {
		return nil, httperr.ErrValidation("missing_comment")
	}

	b, err := uc.repo.GetBooking(ctx, in.BookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("booking_not_found")
		}
		return nil, err
	}

	if b.CustomerID != in.CustomerID {
		return nil, httperr.ErrAuthorization("not_booking_customer")
	}

	if domain.Status(b.Status) != domain.StatusCompleted {
		return nil, httperr.ErrInvalidTransition("booking_not_completed")
	}

	if _, err := uc.repo.GetFeedbackByBooking(ctx, in.BookingID); err == nil {
		return nil, httperr.ErrConflict("feedback_already_exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	f := &models.Feedback{
		BookingID:  b.ID,
		ProviderID: b.ProviderID,
		Rating:     in.Rating,
		Comment:    in.Comment,
	}

	if err := uc.repo.CreateFeedback(ctx, f); err != nil {
		// Two racing submissions: the unique index on booking_id lets exactly
		// one insert through.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, httperr.ErrConflict("feedback_already_exists")
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  in.CustomerID,
		Action:   "feedback_submitted",
		Entity:   "feedback",
		EntityID: f.ID,
	})

	uc.cache.Invalidate(ctx,
		cache.CustomerBookingsCollection(b.CustomerID),
		cache.ProviderFeedbackCollection(b.ProviderID),
		cache.ProviderStatsCollection(b.ProviderID),
	)

	return f, nil
}
