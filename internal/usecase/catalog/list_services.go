package catalog

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/LocalServicesHQ/marketplace-api/internal/cache"
	domain "github.com/LocalServicesHQ/marketplace-api/internal/domain/catalog"
	"github.com/LocalServicesHQ/marketplace-api/internal/dto"
	"github.com/LocalServicesHQ/marketplace-api/internal/httperr"
	"github.com/LocalServicesHQ/marketplace-api/internal/models"
)

// ======================================================
// FILTERS
// ======================================================

// All supplied filters combine with AND. Nil price bounds mean unbounded.
type DiscoveryFilters struct {
	Category string
	City     string
	PriceMin *float64
	PriceMax *float64
}

func (f DiscoveryFilters) cacheKey() string {
	min, max := "-", "-"
	if f.PriceMin != nil {
		min = fmt.Sprintf("%.2f", *f.PriceMin)
	}
	if f.PriceMax != nil {
		max = fmt.Sprintf("%.2f", *f.PriceMax)
	}
	return fmt.Sprintf("services:active:%s:%s:%s:%s", f.Category, f.City, min, max)
}

// ======================================================
// USE CASE
// ======================================================

type ListServices struct {
	db    *gorm.DB
	cache cache.Store
}

func NewListServices(db *gorm.DB, cache cache.Store) *ListServices {
	return &ListServices{
		db:    db,
		cache: cache,
	}
}

func (uc *ListServices) ExecuteActive(
	ctx context.Context,
	filters DiscoveryFilters,
) ([]dto.ServiceListDTO, error) {

	if filters.Category != "" && !domain.IsValidCategory(filters.Category) {
		return nil, httperr.ErrValidation("invalid_category")
	}
	if filters.City != "" && !domain.IsValidCity(filters.City) {
		return nil, httperr.ErrValidation("invalid_city")
	}

	key := filters.cacheKey()

	var cached []dto.ServiceListDTO
	if uc.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	q := uc.db.WithContext(ctx).
		Preload("Provider").
		Where("is_active = ?", true)

	if filters.Category != "" {
		q = q.Where("category = ?", filters.Category)
	}
	if filters.City != "" {
		q = q.Where("city = ?", filters.City)
	}
	if filters.PriceMin != nil {
		q = q.Where("price >= ?", *filters.PriceMin)
	}
	if filters.PriceMax != nil {
		q = q.Where("price <= ?", *filters.PriceMax)
	}

	var services []models.Service
	if err := q.Order("created_at DESC").Find(&services).Error; err != nil {
		return nil, err
	}

	views := make([]dto.ServiceListDTO, 0, len(services))
	for _, svc := range services {
		views = append(views, toListView(svc))
	}

	uc.cache.SetJSON(ctx, cache.ServicesCollection, key, views)
	return views, nil
}

func (uc *ListServices) ExecuteByProvider(
	ctx context.Context,
	providerID string,
	activeOnly bool,
) ([]dto.ProviderServiceDTO, error) {

	q := uc.db.WithContext(ctx).
		Where("provider_id = ?", providerID)

	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var services []models.Service
	if err := q.Order("created_at DESC").Find(&services).Error; err != nil {
		return nil, err
	}

	views := make([]dto.ProviderServiceDTO, 0, len(services))
	for _, svc := range services {
		views = append(views, dto.ProviderServiceDTO{
			ID:          svc.ID,
			Title:       svc.Title,
			Description: svc.Description,
			Price:       svc.Price,
			Category:    svc.Category,
			City:        svc.City,
			IsActive:    svc.IsActive,
			CreatedAt:   svc.CreatedAt,
		})
	}

	return views, nil
}

func toListView(svc models.Service) dto.ServiceListDTO {
	return dto.ServiceListDTO{
		ID:           svc.ID,
		ProviderID:   svc.ProviderID,
		ProviderName: svc.Provider.FullName,
		Title:        svc.Title,
		Description:  svc.Description,
		Price:        svc.Price,
		Category:     svc.Category,
		City:         svc.City,
	}
}
