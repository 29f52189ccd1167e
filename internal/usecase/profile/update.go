package profile

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"github.com/LocalServicesHQ/marketplace-api/internal/audit"
	"github.com/LocalServicesHQ/marketplace-api/internal/cache"
	"github.com/LocalServicesHQ/marketplace-api/internal/httperr"
	"github.com/LocalServicesHQ/marketplace-api/internal/models"
)

// Only the fields a user may self-edit. UserType is fixed at creation.
type UpdateProfilePatch struct {
	FullName      *string
	ContactNumber *string
	Address       *string
	City          *string
	Bio           *string
}

type UpdateProfile struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	cache cache.Store
}

func NewUpdateProfile(
	db *gorm.DB,
	audit *audit.Dispatcher,
	cache cache.Store,
) *UpdateProfile {
	return &UpdateProfile{
		db:    db,
		audit: audit,
		cache: cache,
	}
}

func (uc *UpdateProfile) Execute(
	ctx context.Context,
	actorID string,
	profileID string,
	patch UpdateProfilePatch,
) (*models.Profile, error) {

	if actorID != profileID {
		return nil, httperr.ErrAuthorization("not_profile_owner")
	}

	var p models.Profile
	if err := uc.db.WithContext(ctx).
		Where("id = ?", profileID).
		First(&p).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrNotFound("profile_not_found")
		}
		return nil, err
	}

	nameChanged := patch.FullName != nil && *patch.FullName != p.FullName

	if patch.FullName != nil {
		p.FullName = *patch.FullName
	}
	if patch.ContactNumber != nil {
		p.ContactNumber = *patch.ContactNumber
	}
	if patch.Address != nil {
		p.Address = *patch.Address
	}
	if patch.City != nil {
		p.City = *patch.City
	}
	if patch.Bio != nil {
		p.Bio = *patch.Bio
	}

	if err := uc.db.WithContext(ctx).Save(&p).Error; err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actorID,
		Action:   "profile_updated",
		Entity:   "profile",
		EntityID: p.ID,
	})

	// Display names ride along in cached discovery rows, and a renamed actor
	// is also baked into every counterparty's cached booking and feedback
	// views, so those collections go stale too.
	collections := []string{cache.ServicesCollection}
	if nameChanged {
		collections = append(collections, uc.counterpartyCollections(ctx, p.ID)...)
	}
	uc.cache.Invalidate(ctx, collections...)

	return &p, nil
}

// counterpartyCollections enumerates the cached views that carry this
// profile's display name on the other side of a booking. Lookup failures are
// logged, not fatal; the entries expire on their own TTL.
func (uc *UpdateProfile) counterpartyCollections(ctx context.Context, profileID string) []string {
	var collections []string

	var customerIDs []string
	if err := uc.db.WithContext(ctx).
		Model(&models.Booking{}).
		Distinct("customer_id").
		Where("provider_id = ?", profileID).
		Pluck("customer_id", &customerIDs).Error; err != nil {
		log.Println("stale-view lookup error:", err)
	}
	for _, id := range customerIDs {
		collections = append(collections, cache.CustomerBookingsCollection(id))
	}

	var providerIDs []string
	if err := uc.db.WithContext(ctx).
		Model(&models.Booking{}).
		Distinct("provider_id").
		Where("customer_id = ?", profileID).
		Pluck("provider_id", &providerIDs).Error; err != nil {
		log.Println("stale-view lookup error:", err)
	}
	for _, id := range providerIDs {
		collections = append(collections,
			cache.ProviderBookingsCollection(id),
			cache.ProviderFeedbackCollection(id),
		)
	}

	return collections
}
