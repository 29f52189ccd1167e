package catalog

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/LocalServicesHQ/marketplace-api/internal/audit"
	"github.com/LocalServicesHQ/marketplace-api/internal/cache"
	domain "github.com/LocalServicesHQ/marketplace-api/internal/domain/catalog"
	"github.com/LocalServicesHQ/marketplace-api/internal/httperr"
	"github.com/LocalServicesHQ/marketplace-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateServiceInput struct {
	ProviderID  string
	Title       string
	Description string
	Price       float64
	Category    string
	City        string
}

// ======================================================
// USE CASE
// ======================================================

type CreateService struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	cache cache.Store
}

func NewCreateService(
	db *gorm.DB,
	audit *audit.Dispatcher,
	cache cache.Store,
) *CreateService {
	return &CreateService{
		db:    db,
		audit: audit,
		cache: cache,
	}
}

func (uc *CreateService) Execute(
	ctx context.Context,
	in CreateServiceInput,
) (*models.Service, error) {

	if strings.TrimSpace(in.Title) == "" {
		return nil, httperr.ErrValidation("missing_title")
	}
	if strings.TrimSpace(in.Description) == "" {
		return nil, httperr.ErrValidation("missing_description")
	}
	if in.Price < 0 {
		return nil, httperr.ErrValidation("negative_price")
	}
	if !domain.IsValidCategory(in.Category) {
		return nil, httperr.ErrValidation("invalid_category")
	}
	if !domain.IsValidCity(in.City) {
		return nil, httperr.ErrValidation("invalid_city")
	}

	svc := &models.Service{
		ProviderID:  in.ProviderID,
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price,
		Category:    in.Category,
		City:        in.City,
		IsActive:    true,
	}

	if err := uc.db.WithContext(ctx).Create(svc).Error; err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  in.ProviderID,
		Action:   "service_created",
		Entity:   "service",
		EntityID: svc.ID,
	})

	uc.cache.Invalidate(ctx,
		cache.ServicesCollection,
		cache.ProviderServicesCollection(in.ProviderID),
		cache.ProviderStatsCollection(in.ProviderID),
	)

	return svc, nil
}
