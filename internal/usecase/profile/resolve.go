package profile

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/LocalServicesHQ/marketplace-api/internal/models"
)

// Identity is what the auth token knows about the actor: the opaque id plus
// the metadata captured at sign-up.
type Identity struct {
	ID       string
	FullName string
	UserType string
}

type ResolveIdentity struct {
	db *gorm.DB
}

func NewResolveIdentity(db *gorm.DB) *ResolveIdentity {
	return &ResolveIdentity{db: db}
}

// Execute returns the actor's profile, bootstrapping it from sign-up metadata
// on first resolution. Safe under concurrent calls: losing the insert race
// (two tabs resolving at once) is success, not an error.
func (uc *ResolveIdentity) Execute(
	ctx context.Context,
	identity Identity,
) (*models.Profile, error) {

	var p models.Profile
	err := uc.db.WithContext(ctx).
		Where("id = ?", identity.ID).
		First(&p).Error

	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	userType := identity.UserType
	if userType != models.UserTypeProvider {
		userType = models.UserTypeCustomer
	}

	p = models.Profile{
		ID:       identity.ID,
		FullName: identity.FullName,
		UserType: userType,
	}

	if err := uc.db.WithContext(ctx).Create(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Another session bootstrapped first; use its row.
			var existing models.Profile
			if err := uc.db.WithContext(ctx).
				Where("id = ?", identity.ID).
				First(&existing).Error; err != nil {
				return nil, err
			}
			return &existing, nil
		}
		return nil, err
	}

	return &p, nil
}
