package catalog

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/LocalServicesHQ/marketplace-api/internal/audit"
	"github.com/LocalServicesHQ/marketplace-api/internal/cache"
	"github.com/LocalServicesHQ/marketplace-api/internal/httperr"
	"github.com/LocalServicesHQ/marketplace-api/internal/models"
)

type DeactivateService struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	cache cache.Store
}

func NewDeactivateService(
	db *gorm.DB,
	audit *audit.Dispatcher,
	cache cache.Store,
) *DeactivateService {
	return &DeactivateService{
		db:    db,
		audit: audit,
		cache: cache,
	}
}

func (uc *DeactivateService) Execute(
	ctx context.Context,
	serviceID string,
	actorID string,
) (*models.Service, error) {

	var svc models.Service
	if err := uc.db.WithContext(ctx).
		Where("id = ?", serviceID).
		First(&svc).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("service_not_found")
		}
		return nil, err
	}

	if svc.ProviderID != actorID {
		return nil, httperr.ErrAuthorization("not_service_owner")
	}

	// Idempotent: deactivating twice is a no-op.
	if !svc.IsActive {
		return &svc, nil
	}

	svc.IsActive = false
	if err := uc.db.WithContext(ctx).Save(&svc).Error; err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actorID,
		Action:   "service_deactivated",
		Entity:   "service",
		EntityID: svc.ID,
	})

	uc.cache.Invalidate(ctx,
		cache.ServicesCollection,
		cache.ProviderServicesCollection(actorID),
		cache.ProviderStatsCollection(actorID),
	)

	return &svc, nil
}
