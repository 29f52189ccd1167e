package stats

import (
	"context"
	"math"

	"gorm.io/gorm"

	"github.com/LocalServicesHQ/marketplace-api/internal/cache"
	domain "github.com/LocalServicesHQ/marketplace-api/internal/domain/booking"
	"github.com/LocalServicesHQ/marketplace-api/internal/dto"
	"github.com/LocalServicesHQ/marketplace-api/internal/models"
)

// DashboardStats aggregates the numbers shown on the role dashboards. The
// summaries are read-through cached per actor; every booking, feedback and
// service mutation invalidates the owning actor's stats collection.
type DashboardStats struct {
	db    *gorm.DB
	cache cache.Store
}

func NewDashboardStats(db *gorm.DB, cache cache.Store) *DashboardStats {
	return &DashboardStats{
		db:    db,
		cache: cache,
	}
}

// ======================================================
// PROVIDER VIEW
// ======================================================

func (uc *DashboardStats) ExecuteForProvider(
	ctx context.Context,
	providerID string,
) (*dto.ProviderStatsDTO, error) {

	collection := cache.ProviderStatsCollection(providerID)
	key := collection + ":summary"

	var cached dto.ProviderStatsDTO
	if uc.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	view := &dto.ProviderStatsDTO{}

	// Accepted and completed both count as won business.
	if err := uc.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where(
			"provider_id = ? AND status IN ?",
			providerID,
			[]string{string(domain.StatusAccepted), string(domain.StatusCompleted)},
		).
		Count(&view.TotalBookings).Error; err != nil {
		return nil, err
	}

	if err := uc.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select("COALESCE(SUM(services.price), 0)").
		Joins("JOIN services ON services.id = bookings.service_id").
		Where(
			"bookings.provider_id = ? AND bookings.status = ?",
			providerID,
			string(domain.StatusCompleted),
		).
		Scan(&view.TotalIncome).Error; err != nil {
		return nil, err
	}
	view.TotalIncome = math.Round(view.TotalIncome*100) / 100

	var avg float64
	if err := uc.db.WithContext(ctx).
		Model(&models.Feedback{}).
		Select("COALESCE(AVG(rating), 0)").
		Where("provider_id = ?", providerID).
		Scan(&avg).Error; err != nil {
		return nil, err
	}
	view.AvgRating = math.Round(avg*10) / 10

	if err := uc.db.WithContext(ctx).
		Model(&models.Service{}).
		Where("provider_id = ? AND is_active = ?", providerID, true).
		Count(&view.ActiveServices).Error; err != nil {
		return nil, err
	}

	uc.cache.SetJSON(ctx, collection, key, view)
	return view, nil
}

// ======================================================
// CUSTOMER VIEW
// ======================================================

func (uc *DashboardStats) ExecuteForCustomer(
	ctx context.Context,
	customerID string,
) (*dto.CustomerStatsDTO, error) {

	collection := cache.CustomerStatsCollection(customerID)
	key := collection + ":summary"

	var cached dto.CustomerStatsDTO
	if uc.cache.GetJSON(ctx, key, &cached) {
		return &cached, nil
	}

	view := &dto.CustomerStatsDTO{}
	if err := uc.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("customer_id = ?", customerID).
		Count(&view.TotalOrders).Error; err != nil {
		return nil, err
	}

	uc.cache.SetJSON(ctx, collection, key, view)
	return view, nil
}
