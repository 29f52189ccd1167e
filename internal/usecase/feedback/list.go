package feedback

import (
	"context"

	"github.com/LocalServicesHQ/marketplace-api/internal/cache"
	domain "github.com/LocalServicesHQ/marketplace-api/internal/domain/booking"
	"github.com/LocalServicesHQ/marketplace-api/internal/dto"
)

type ListFeedback struct {
	repo  domain.Repository
	cache cache.Store
}

func NewListFeedback(repo domain.Repository, cache cache.Store) *ListFeedback {
	return &ListFeedback{
		repo:  repo,
		cache: cache,
	}
}

func (uc *ListFeedback) ExecuteForProvider(
	ctx context.Context,
	providerID string,
) ([]dto.ProviderFeedbackDTO, error) {

	collection := cache.ProviderFeedbackCollection(providerID)
	key := collection + ":list"

	var cached []dto.ProviderFeedbackDTO
	if uc.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	feedbacks, err := uc.repo.ListFeedbackForProvider(ctx, providerID)
	if err != nil {
		return nil, err
	}

	views := make([]dto.ProviderFeedbackDTO, 0, len(feedbacks))
	for _, f := range feedbacks {
		views = append(views, dto.ProviderFeedbackDTO{
			ID:           f.ID,
			Rating:       f.Rating,
			Comment:      f.Comment,
			ServiceTitle: f.Booking.Service.Title,
			CustomerName: f.Booking.Customer.FullName,
			CreatedAt:    f.CreatedAt,
		})
	}

	uc.cache.SetJSON(ctx, collection, key, views)
	return views, nil
}
