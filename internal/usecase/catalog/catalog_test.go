package catalog

import (
	"context"
	"encoding/json"
	"testing"

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

func seedProvider(t *testing.T, gdb *gorm.DB, name string) *models.Profile {
	t.Helper()

	p := &models.Profile{
		ID:       uuid.NewString(),
		FullName: name,
		UserType: models.UserTypeProvider,
	}
	if err := gdb.Create(p).Error; err != nil {
		t.Fatalf("seed provider: %v", err)
	}
	return p
}

func ptr(f float64) *float64 { return &f }

func TestCreateService_ValidatesInput(t *testing.T) {
	gdb := newTestDB(t)
	dispatcher := audit.NewDispatcher(audit.New(gdb))
	create := NewCreateService(gdb, dispatcher, cache.Noop{})
	ctx := context.Background()

	provider := seedProvider(t, gdb, "Ravi Sharma")

	valid := CreateServiceInput{
		ProviderID:  provider.ID,
		Title:       "Standard Haircut",
		Description: "Wash, cut and style",
		Price:       150,
		Category:    "Haircuts",
		City:        "Mumbai",
	}

	cases := []struct {
		name   string
		mutate func(*CreateServiceInput)
	}{
		{"blank title", func(in *CreateServiceInput) { in.Title = "  " }},
		{"blank description", func(in *CreateServiceInput) { in.Description = "" }},
		{"negative price", func(in *CreateServiceInput) { in.Price = -1 }},
		{"unknown category", func(in *CreateServiceInput) { in.Category = "Plumbing" }},
		{"unknown city", func(in *CreateServiceInput) { in.City = "Delhi" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			if _, err := create.Execute(ctx, in); !httperr.IsKind(err, httperr.KindValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}

	svc, err := create.Execute(ctx, valid)
	if err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}
	if !svc.IsActive {
		t.Fatal("new services start active")
	}
	// Zero price is allowed (free listings).
	free := valid
	free.Price = 0
	if _, err := create.Execute(ctx, free); err != nil {
		t.Fatalf("zero price rejected: %v", err)
	}
}

func TestListServices_FiltersAreConjunctive(t *testing.T) {
	gdb := newTestDB(t)
	dispatcher := audit.NewDispatcher(audit.New(gdb))
	create := NewCreateService(gdb, dispatcher, cache.Noop{})
	list := NewListServices(gdb, cache.Noop{})
	ctx := context.Background()

	provider := seedProvider(t, gdb, "Ravi Sharma")

	seeds := []CreateServiceInput{
		{ProviderID: provider.ID, Title: "Deep Cleaning", Description: "d", Price: 300, Category: "Cleaning", City: "Pune"},
		{ProviderID: provider.ID, Title: "Quick Cleaning", Description: "d", Price: 150, Category: "Cleaning", City: "Pune"},
		{ProviderID: provider.ID, Title: "Mumbai Cleaning", Description: "d", Price: 300, Category: "Cleaning", City: "Mumbai"},
		{ProviderID: provider.ID, Title: "Pune Gardening", Description: "d", Price: 300, Category: "Gardening", City: "Pune"},
	}
	for _, in := range seeds {
		if _, err := create.Execute(ctx, in); err != nil {
			t.Fatalf("seed %q: %v", in.Title, err)
		}
	}

	views, err := list.ExecuteActive(ctx, DiscoveryFilters{
		Category: "Cleaning",
		City:     "Pune",
		PriceMin: ptr(200),
		PriceMax: ptr(500),
	})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected exactly one match, got %d", len(views))
	}
	if views[0].Title != "Deep Cleaning" {
		t.Fatalf("wrong match: %+v", views[0])
	}
	if views[0].ProviderName != provider.FullName {
		t.Fatalf("expected provider name on the listing, got %+v", views[0])
	}

	// No filters returns every active listing.
	all, err := list.ExecuteActive(ctx, DiscoveryFilters{})
	if err != nil {
		t.Fatalf("unfiltered list: %v", err)
	}
	if len(all) != len(seeds) {
		t.Fatalf("expected %d listings, got %d", len(seeds), len(all))
	}
}

func TestListServices_RejectsUnknownFilterValues(t *testing.T) {
	gdb := newTestDB(t)
	list := NewListServices(gdb, cache.Noop{})
	ctx := context.Background()

	if _, err := list.ExecuteActive(ctx, DiscoveryFilters{Category: "Plumbing"}); !httperr.IsKind(err, httperr.KindValidation) {
		t.Fatalf("expected validation error for category, got %v", err)
	}
	if _, err := list.ExecuteActive(ctx, DiscoveryFilters{City: "Delhi"}); !httperr.IsKind(err, httperr.KindValidation) {
		t.Fatalf("expected validation error for city, got %v", err)
	}
}

func TestDeactivateService(t *testing.T) {
	gdb := newTestDB(t)
	dispatcher := audit.NewDispatcher(audit.New(gdb))
	create := NewCreateService(gdb, dispatcher, cache.Noop{})
	deactivate := NewDeactivateService(gdb, dispatcher, cache.Noop{})
	list := NewListServices(gdb, cache.Noop{})
	ctx := context.Background()

	owner := seedProvider(t, gdb, "Ravi Sharma")
	other := seedProvider(t, gdb, "Vikram Rao")

	svc, err := create.Execute(ctx, CreateServiceInput{
		ProviderID:  owner.ID,
		Title:       "Pet Walking",
		Description: "Daily walks",
		Price:       100,
		Category:    "Pet Care",
		City:        "Bangalore",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := deactivate.Execute(ctx, svc.ID, other.ID); !httperr.IsKind(err, httperr.KindAuthorization) {
		t.Fatalf("expected authorization error, got %v", err)
	}

	if _, err := deactivate.Execute(ctx, svc.ID, owner.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	// Idempotent second call.
	got, err := deactivate.Execute(ctx, svc.ID, owner.ID)
	if err != nil {
		t.Fatalf("repeat deactivate: %v", err)
	}
	if got.IsActive {
		t.Fatal("service should stay inactive")
	}

	// Gone from discovery, still on the owner's full list.
	active, err := list.ExecuteActive(ctx, DiscoveryFilters{})
	if err != nil {
		t.Fatalf("discovery: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("inactive service leaked into discovery: %+v", active)
	}

	mine, err := list.ExecuteByProvider(ctx, owner.ID, false)
	if err != nil {
		t.Fatalf("owner list: %v", err)
	}
	if len(mine) != 1 || mine[0].IsActive {
		t.Fatalf("owner should still see the inactive listing: %+v", mine)
	}

	activeOnly, err := list.ExecuteByProvider(ctx, owner.ID, true)
	if err != nil {
		t.Fatalf("owner active list: %v", err)
	}
	if len(activeOnly) != 0 {
		t.Fatalf("active-only list should be empty, got %+v", activeOnly)
	}

	if _, err := deactivate.Execute(ctx, uuid.NewString(), owner.ID); !httperr.IsKind(err, httperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListByProvider_ViewOmitsEmbeddedProfile(t *testing.T) {
	gdb := newTestDB(t)
	dispatcher := audit.NewDispatcher(audit.New(gdb))
	create := NewCreateService(gdb, dispatcher, cache.Noop{})
	list := NewListServices(gdb, cache.Noop{})
	ctx := context.Background()

	owner := seedProvider(t, gdb, "Ravi Sharma")

	if _, err := create.Execute(ctx, CreateServiceInput{
		ProviderID:  owner.ID,
		Title:       "Lawn Care",
		Description: "Weekly mowing",
		Price:       120,
		Category:    "Gardening",
		City:        "Pune",
	}); err != nil {
		t.Fatalf("create: %v", err)
	}

	views, err := list.ExecuteByProvider(ctx, owner.ID, false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 listing, got %d", len(views))
	}

	raw, err := json.Marshal(views[0])
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var payload map[string]any
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, leaked := payload["provider"]; leaked {
		t.Fatalf("owner listings must not embed a provider object: %s", raw)
	}
	if payload["is_active"] != true {
		t.Fatalf("owner listings must carry is_active: %s", raw)
	}
}
