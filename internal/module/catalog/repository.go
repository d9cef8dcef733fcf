package catalog

import (
	"context"

	"gorm.io/gorm"

	"github.com/simp-lee/svcadmin/internal/domain"
	"github.com/simp-lee/svcadmin/internal/pkg"
)

var listOptions = pkg.ListOptions{
	SearchColumns: []string{"name", "category", "provider_name"},
	Filters: map[string]pkg.FilterField{
		"verified": {Column: "verified", Kind: pkg.KindBool},
		"featured": {Column: "featured", Kind: pkg.KindBool},
		"category": {Column: "category"},
		"provider": {Column: "provider_name"},
	},
	SortFields:  []string{"id", "name", "price", "category", "created_at"},
	DefaultSort: "name:asc",
	KeyColumn:   "id",
}

// updatableFlags lists the columns UpdateFlags may write.
var updatableFlags = map[string]bool{
	"verified": true,
	"featured": true,
}

// serviceRepository implements domain.ServiceRepository using GORM.
type serviceRepository struct {
	db *gorm.DB
}

// NewServiceRepository creates a new ServiceRepository backed by the given GORM database.
func NewServiceRepository(db *gorm.DB) domain.ServiceRepository {
	return &serviceRepository{db: db}
}

func (r *serviceRepository) Create(ctx context.Context, service *domain.Service) error {
	if err := r.db.WithContext(ctx).Create(service).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

func (r *serviceRepository) GetByID(ctx context.Context, id uint) (*domain.Service, error) {
	var service domain.Service
	if err := r.db.WithContext(ctx).First(&service, id).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &service, nil
}

func (r *serviceRepository) List(ctx context.Context, req domain.PageRequest) (*domain.Page[domain.Service], error) {
	page, err := pkg.ListPage[domain.Service](ctx, r.db, req, listOptions)
	if err != nil {
		return nil, pkg.MapDBError(err)
	}
	return page, nil
}

// UpdateFlags writes the given boolean flags and returns the updated service.
// Unknown columns are rejected with CodeValidation.
func (r *serviceRepository) UpdateFlags(ctx context.Context, id uint, fields map[string]any) (*domain.Service, error) {
	for column := range fields {
		if !updatableFlags[column] {
			return nil, domain.NewAppError(domain.CodeValidation, "cannot update "+column, nil)
		}
	}

	var service domain.Service
	err := pkg.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		if err := tx.First(&service, id).Error; err != nil {
			return err
		}
		if err := tx.Model(&service).Updates(fields).Error; err != nil {
			return err
		}
		return tx.First(&service, id).Error
	})
	if err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &service, nil
}

func (r *serviceRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Service{}, id)
	if result.Error != nil {
		return pkg.MapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
