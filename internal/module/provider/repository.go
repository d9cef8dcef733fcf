package provider

import (
	"context"

	"gorm.io/gorm"

	"github.com/simp-lee/svcadmin/internal/domain"
	"github.com/simp-lee/svcadmin/internal/pkg"
)

var listOptions = pkg.ListOptions{
	SearchColumns: []string{"name", "email", "category", "location"},
	Filters: map[string]pkg.FilterField{
		"verified": {Column: "verified", Kind: pkg.KindBool},
		"category": {Column: "category"},
	},
	SortFields:  []string{"id", "name", "rating", "created_at"},
	DefaultSort: "name:asc",
	KeyColumn:   "id",
}

// providerRepository implements domain.ProviderRepository using GORM.
type providerRepository struct {
	db *gorm.DB
}

// NewProviderRepository creates a new ProviderRepository backed by the given GORM database.
func NewProviderRepository(db *gorm.DB) domain.ProviderRepository {
	return &providerRepository{db: db}
}

func (r *providerRepository) Create(ctx context.Context, provider *domain.Provider) error {
	if err := r.db.WithContext(ctx).Create(provider).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

func (r *providerRepository) GetByID(ctx context.Context, id uint) (*domain.Provider, error) {
	var provider domain.Provider
	if err := r.db.WithContext(ctx).First(&provider, id).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &provider, nil
}

func (r *providerRepository) List(ctx context.Context, req domain.PageRequest) (*domain.Page[domain.Provider], error) {
	page, err := pkg.ListPage[domain.Provider](ctx, r.db, req, listOptions)
	if err != nil {
		return nil, pkg.MapDBError(err)
	}
	return page, nil
}

// SetVerified stores the verification flag and returns the updated provider.
func (r *providerRepository) SetVerified(ctx context.Context, id uint, verified bool) (*domain.Provider, error) {
	var provider domain.Provider
	err := pkg.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.First(&provider, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&provider).Update("verified", verified).Error; err != nil {
			return err
		}
		return tx.First(&provider, id).Error
	})
	if err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &provider, nil
}
