package settings

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/simp-lee/svcadmin/internal/domain"
	"github.com/simp-lee/svcadmin/internal/pkg"
)

// settingsRowID is the primary key of the single settings row.
const settingsRowID = 1

// settingsRepository implements domain.SettingsRepository using GORM.
type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new SettingsRepository backed by the given GORM database.
func NewSettingsRepository(db *gorm.DB) domain.SettingsRepository {
	return &settingsRepository{db: db}
}

// Get returns the stored settings, or the defaults if none were saved yet.
func (r *settingsRepository) Get(ctx context.Context) (*domain.Settings, error) {
	var s domain.Settings
	err := r.db.WithContext(ctx).First(&s, settingsRowID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		defaults := domain.DefaultSettings()
		return &defaults, nil
	}
	if err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &s, nil
}

// Save writes settings as the single settings row.
func (r *settingsRepository) Save(ctx context.Context, s *domain.Settings) error {
	s.ID = settingsRowID
	if err := r.db.WithContext(ctx).Save(s).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}
