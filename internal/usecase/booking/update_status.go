package booking

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/LocalServicesHQ/marketplace-api/internal/audit"
	"github.com/LocalServicesHQ/marketplace-api/internal/cache"
	domain "github.com/LocalServicesHQ/marketplace-api/internal/domain/booking"
	"github.com/LocalServicesHQ/marketplace-api/internal/httperr"
	"github.com/LocalServicesHQ/marketplace-api/internal/models"
	"github.com/LocalServicesHQ/marketplace-api/internal/timezone"
)

type UpdateStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	cache cache.Store
}

func NewUpdateStatus(
	repo domain.Repository,
	audit *audit.Dispatcher,
	cache cache.Store,
) *UpdateStatus {
	return &UpdateStatus{
		repo:  repo,
		audit: audit,
		cache: cache,
	}
}

func (uc *UpdateStatus) Execute(
	ctx context.Context,
	bookingID string,
	actorID string,
	target domain.Status,
) (*models.Booking, error) {

	guard, err := domain.Guard(target)
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.GetBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("booking_not_found")
		}
		return nil, err
	}

	// Accept, reject and complete are all owner-only actions.
	if b.ProviderID != actorID {
		return nil, httperr.ErrAuthorization("not_service_owner")
	}

	current := domain.Status(b.Status)
	if err := guard(current); err != nil {
		return nil, err
	}

	now := timezone.Now()

	// Compare-and-set: if another actor already moved the booking, the row no
	// longer matches and we report the current server state instead of
	// overwriting it.
	ok, err := uc.repo.TransitionStatus(ctx, bookingID, current, target, now)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.ErrInvalidTransition("booking_state_changed")
	}

	b.Status = string(target)
	b.UpdatedAt = now

	uc.audit.Dispatch(audit.Event{
		ActorID:  actorID,
		Action:   "booking_" + string(target),
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
