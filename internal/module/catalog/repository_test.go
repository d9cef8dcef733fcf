package catalog

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
	if err := db.AutoMigrate(&domain.Service{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedServices(t *testing.T, repo domain.ServiceRepository) {
	t.Helper()
	services := []domain.Service{
		{Name: "Leak Repair", Category: "Plumbing", ProviderName: "Elite Plumbing", Price: 120, Verified: true, Featured: true},
		{Name: "Drain Cleaning", Category: "Plumbing", ProviderName: "Elite Plumbing", Price: 90, Verified: true},
		{Name: "Rewiring", Category: "Electrical", ProviderName: "PowerPros Electric", Price: 480},
		{Name: "Lawn Care", Category: "Gardening", ProviderName: "Green Thumb", Price: 60},
	}
	for i := range services {
		if err := repo.Create(context.Background(), &services[i]); err != nil {
			t.Fatalf("seed %s: %v", services[i].Name, err)
		}
	}
}

func TestServiceRepository_List(t *testing.T) {
	repo := NewServiceRepository(setupTestDB(t))
	seedServices(t, repo)

	tests := []struct {
		name  string
		req   domain.PageRequest
		names []string
	}{
		{"default sort by name", domain.PageRequest{Page: 1, PageSize: 10}, []string{"Drain Cleaning", "Lawn Care", "Leak Repair", "Rewiring"}},
		{"featured", domain.PageRequest{Page: 1, PageSize: 10, Filter: map[string]string{"featured": "true"}}, []string{"Leak Repair"}},
		{"category and price", domain.PageRequest{Page: 1, PageSize: 10, Sort: "price:desc", Filter: map[string]string{"category": "Plumbing"}}, []string{"Leak Repair", "Drain Cleaning"}},
		{"search provider", domain.PageRequest{Page: 1, PageSize: 10, Search: "powerpros"}, []string{"Rewiring"}},
		{"like filter", domain.PageRequest{Page: 1, PageSize: 10, Filter: map[string]string{"category__like": "arden"}}, []string{"Lawn Care"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := repo.List(context.Background(), tt.req)
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(page.Content) != len(tt.names) {
				t.Fatalf("got %d services, want %d", len(page.Content), len(tt.names))
			}
			for i, name := range tt.names {
				if page.Content[i].Name != name {
					t.Errorf("item %d = %q, want %q", i, page.Content[i].Name, name)
				}
			}
		})
	}
}

func TestServiceRepository_UpdateFlags(t *testing.T) {
	repo := NewServiceRepository(setupTestDB(t))
	seedServices(t, repo)
	ctx := context.Background()

	got, err := repo.UpdateFlags(ctx, 1, map[string]any{"featured": false})
	if err != nil {
		t.Fatalf("UpdateFlags: %v", err)
	}
	if got.Featured {
		t.Error("expected featured to be cleared")
	}
	if !got.Verified {
		t.Error("unrelated flag changed")
	}

	if _, err := repo.UpdateFlags(ctx, 1, map[string]any{"price": 1}); !domain.IsValidation(err) {
		t.Errorf("expected validation error for non-flag column, got %v", err)
	}
	if _, err := repo.UpdateFlags(ctx, 404, map[string]any{"featured": true}); !domain.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestServiceRepository_Delete(t *testing.T) {
	repo := NewServiceRepository(setupTestDB(t))
	seedServices(t, repo)
	ctx := context.Background()

	if err := repo.Delete(ctx, 2); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.GetByID(ctx, 2); !domain.IsNotFound(err) {
		t.Errorf("expected deleted service to be gone, got %v", err)
	}
	if err := repo.Delete(ctx, 2); !domain.IsNotFound(err) {
		t.Errorf("expected not found on second delete, got %v", err)
	}
}
