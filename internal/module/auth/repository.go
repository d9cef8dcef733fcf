package auth

import (
	"context"

	"gorm.io/gorm"

	"github.com/simp-lee/svcadmin/internal/domain"
	"github.com/simp-lee/svcadmin/internal/pkg"
)

// adminRepository implements domain.AdminRepository using GORM.
type adminRepository struct {
	db *gorm.DB
}

// NewAdminRepository creates a new AdminRepository backed by the given GORM database.
func NewAdminRepository(db *gorm.DB) domain.AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Create(ctx context.Context, admin *domain.Admin) error {
	if err := r.db.WithContext(ctx).Create(admin).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

func (r *adminRepository) GetByID(ctx context.Context, id uint) (*domain.Admin, error) {
	var admin domain.Admin
	if err := r.db.WithContext(ctx).First(&admin, id).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &admin, nil
}

func (r *adminRepository) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	var admin domain.Admin
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&admin).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &admin, nil
}
