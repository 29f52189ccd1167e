package profile

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/LocalServicesHQ/marketplace-api/internal/audit"
	"github.com/LocalServicesHQ/marketplace-api/internal/cache"
	"github.com/LocalServicesHQ/marketplace-api/internal/db"
	"github.com/LocalServicesHQ/marketplace-api/internal/httperr"
	"github.com/LocalServicesHQ/marketplace-api/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func TestResolveIdentity_BootstrapsOnce(t *testing.T) {
	gdb := newTestDB(t)
	resolve := NewResolveIdentity(gdb)
	ctx := context.Background()

	identity := Identity{
		ID:       uuid.NewString(),
		FullName: "Anita Desai",
		UserType: models.UserTypeProvider,
	}

	p, err := resolve.Execute(ctx, identity)
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	if p.FullName != identity.FullName || p.UserType != models.UserTypeProvider {
		t.Fatalf("bootstrap mismatch: %+v", p)
	}

	// Resolving again returns the same row even if the token metadata drifted.
	again, err := resolve.Execute(ctx, Identity{
		ID:       identity.ID,
		FullName: "A. Desai",
		UserType: models.UserTypeCustomer,
	})
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if again.FullName != identity.FullName || again.UserType != models.UserTypeProvider {
		t.Fatalf("resolve must not rewrite an existing profile: %+v", again)
	}

	var count int64
	if err := gdb.Model(&models.Profile{}).
		Where("id = ?", identity.ID).
		Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one profile row, got %d", count)
	}
}

func TestResolveIdentity_DefaultsToCustomer(t *testing.T) {
	gdb := newTestDB(t)
	resolve := NewResolveIdentity(gdb)
	ctx := context.Background()

	p, err := resolve.Execute(ctx, Identity{
		ID:       uuid.NewString(),
		FullName: "No Role",
		UserType: "admin",
	})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if p.UserType != models.UserTypeCustomer {
		t.Fatalf("unknown roles default to customer, got %s", p.UserType)
	}
}

func TestUpdateProfile_PartialPatch(t *testing.T) {
	gdb := newTestDB(t)
	resolve := NewResolveIdentity(gdb)
	dispatcher := audit.NewDispatcher(audit.New(gdb))
	update := NewUpdateProfile(gdb, dispatcher, cache.Noop{})
	ctx := context.Background()

	id := uuid.NewString()
	if _, err := resolve.Execute(ctx, Identity{
		ID:       id,
		FullName: "Anita Desai",
		UserType: models.UserTypeCustomer,
	}); err != nil {
		t.Fatalf("bootstrap: %v", err)
	}

	city := "Pune"
	bio := "Loves tidy homes"
	p, err := update.Execute(ctx, id, id, UpdateProfilePatch{
		City: &city,
		Bio:  &bio,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if p.City != city || p.Bio != bio {
		t.Fatalf("patch not applied: %+v", p)
	}
	// Untouched fields survive.
	if p.FullName != "Anita Desai" {
		t.Fatalf("full name clobbered: %+v", p)
	}
}

type recordingStore struct {
	cache.Noop
	invalidated []string
}

func (s *recordingStore) Invalidate(ctx context.Context, collections ...string) {
	s.invalidated = append(s.invalidated, collections...)
}

func (s *recordingStore) has(collection string) bool {
	for _, c := range s.invalidated {
		if c == collection {
			return true
		}
	}
	return false
}

func TestUpdateProfile_RenameInvalidatesCounterpartyViews(t *testing.T) {
	gdb := newTestDB(t)
	dispatcher := audit.NewDispatcher(audit.New(gdb))
	store := &recordingStore{}
	update := NewUpdateProfile(gdb, dispatcher, store)
	ctx := context.Background()

	provider := &models.Profile{
		ID:       uuid.NewString(),
		FullName: "Ravi Sharma",
		UserType: models.UserTypeProvider,
	}
	customer := &models.Profile{
		ID:       uuid.NewString(),
		FullName: "Anita Desai",
		UserType: models.UserTypeCustomer,
	}
	if err := gdb.Create(provider).Error; err != nil {
		t.Fatalf("seed provider: %v", err)
	}
	if err := gdb.Create(customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}

	svc := &models.Service{
		ProviderID:  provider.ID,
		Title:       "Deep Home Cleaning",
		Description: "Full house cleaning",
		Price:       300,
		Category:    "Cleaning",
		City:        "Pune",
		IsActive:    true,
	}
	if err := gdb.Create(svc).Error; err != nil {
		t.Fatalf("seed service: %v", err)
	}
	booking := &models.Booking{
		ServiceID:   svc.ID,
		CustomerID:  customer.ID,
		ProviderID:  provider.ID,
		Status:      "completed",
		BookingDate: time.Now().Add(24 * time.Hour),
	}
	if err := gdb.Create(booking).Error; err != nil {
		t.Fatalf("seed booking: %v", err)
	}

	// The provider's name sits in their customers' cached booking views.
	name := "Ravindra Sharma"
	if _, err := update.Execute(ctx, provider.ID, provider.ID, UpdateProfilePatch{FullName: &name}); err != nil {
		t.Fatalf("rename provider: %v", err)
	}
	if !store.has(cache.ServicesCollection) {
		t.Fatal("discovery collection not invalidated")
	}
	if !store.has(cache.CustomerBookingsCollection(customer.ID)) {
		t.Fatalf("customer booking views not invalidated: %v", store.invalidated)
	}

	// The customer's name sits in the provider's cached booking and
	// feedback views.
	store.invalidated = nil
	name = "A. Desai"
	if _, err := update.Execute(ctx, customer.ID, customer.ID, UpdateProfilePatch{FullName: &name}); err != nil {
		t.Fatalf("rename customer: %v", err)
	}
	if !store.has(cache.ProviderBookingsCollection(provider.ID)) {
		t.Fatalf("provider booking views not invalidated: %v", store.invalidated)
	}
	if !store.has(cache.ProviderFeedbackCollection(provider.ID)) {
		t.Fatalf("provider feedback views not invalidated: %v", store.invalidated)
	}

	// A patch that leaves the name alone touches only discovery.
	store.invalidated = nil
	city := "Mumbai"
	if _, err := update.Execute(ctx, provider.ID, provider.ID, UpdateProfilePatch{City: &city}); err != nil {
		t.Fatalf("patch city: %v", err)
	}
	if store.has(cache.CustomerBookingsCollection(customer.ID)) {
		t.Fatalf("counterparty views invalidated without a rename: %v", store.invalidated)
	}
}

func TestUpdateProfile_OwnerOnly(t *testing.T) {
	gdb := newTestDB(t)
	dispatcher := audit.NewDispatcher(audit.New(gdb))
	update := NewUpdateProfile(gdb, dispatcher, cache.Noop{})
	ctx := context.Background()

	city := "Pune"
	_, err := update.Execute(ctx, uuid.NewString(), uuid.NewString(), UpdateProfilePatch{City: &city})
	if !httperr.IsKind(err, httperr.KindAuthorization) {
		t.Fatalf("expected authorization error, got %v", err)
	}
}

func TestUpdateProfile_MissingProfile(t *testing.T) {
	gdb := newTestDB(t)
	dispatcher := audit.NewDispatcher(audit.New(gdb))
	update := NewUpdateProfile(gdb, dispatcher, cache.Noop{})
	ctx := context.Background()

	id := uuid.NewString()
	city := "Pune"
	_, err := update.Execute(ctx, id, id, UpdateProfilePatch{City: &city})
	if !httperr.IsKind(err, httperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
