package provider

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/simp-lee/svcadmin/internal/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&domain.Provider{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// seedProviders inserts seven providers, three of them unverified.
func seedProviders(t *testing.T, repo domain.ProviderRepository) {
	t.Helper()
	providers := []domain.Provider{
		{Name: "Elite Plumbing", Email: "elite@example.com", Category: "Plumbing", Location: "Austin", Verified: true},
		{Name: "PowerPros Electric", Email: "power@example.com", Category: "Electrical", Location: "Dallas", Verified: true},
		{Name: "Green Thumb", Email: "green@example.com", Category: "Gardening", Location: "Austin"},
		{Name: "Spotless Cleaning", Email: "spotless@example.com", Category: "Cleaning", Location: "Houston", Verified: true},
		{Name: "Handy Andy", Email: "andy@example.com", Category: "Handyman", Location: "Austin"},
		{Name: "Cool Air HVAC", Email: "coolair@example.com", Category: "HVAC", Location: "Dallas", Verified: true},
		{Name: "Quick Locks", Email: "locks@example.com", Category: "Locksmith", Location: "Houston"},
	}
	for i := range providers {
		if err := repo.Create(context.Background(), &providers[i]); err != nil {
			t.Fatalf("seed %s: %v", providers[i].Name, err)
		}
	}
}

func TestProviderRepository_ListFilters(t *testing.T) {
	repo := NewProviderRepository(setupTestDB(t))
	seedProviders(t, repo)
	ctx := context.Background()

	tests := []struct {
		name  string
		req   domain.PageRequest
		total int64
	}{
		{"all", domain.PageRequest{Page: 1, PageSize: 10}, 7},
		{"unverified", domain.PageRequest{Page: 1, PageSize: 10, Filter: map[string]string{"verified": "false"}}, 3},
		{"verified", domain.PageRequest{Page: 1, PageSize: 10, Filter: map[string]string{"verified": "true"}}, 4},
		{"category", domain.PageRequest{Page: 1, PageSize: 10, Filter: map[string]string{"category": "HVAC"}}, 1},
		{"search is case insensitive", domain.PageRequest{Page: 1, PageSize: 10, Search: "PLUMB"}, 1},
		{"search by location", domain.PageRequest{Page: 1, PageSize: 10, Search: "austin"}, 3},
		{"invalid bool ignored", domain.PageRequest{Page: 1, PageSize: 10, Filter: map[string]string{"verified": "maybe"}}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := repo.List(ctx, tt.req)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if page.TotalElements != tt.total {
				t.Errorf("TotalElements = %d, want %d", page.TotalElements, tt.total)
			}
			if page.TotalPages != 1 {
				t.Errorf("TotalPages = %d, want 1", page.TotalPages)
			}
		})
	}
}

func TestProviderRepository_SetVerified(t *testing.T) {
	repo := NewProviderRepository(setupTestDB(t))
	seedProviders(t, repo)
	ctx := context.Background()

	got, err := repo.SetVerified(ctx, 3, true)
	if err != nil {
		t.Fatalf("SetVerified: %v", err)
	}
	if !got.Verified || got.Name != "Green Thumb" {
		t.Errorf("unexpected provider: %+v", got)
	}

	stored, err := repo.GetByID(ctx, 3)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !stored.Verified {
		t.Error("verification was not persisted")
	}

	if _, err := repo.SetVerified(ctx, 99, true); !domain.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}
