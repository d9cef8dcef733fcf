package settings

import (
	"context"
	"log/slog"

	"github.com/simp-lee/svcadmin/internal/domain"
	"github.com/simp-lee/svcadmin/internal/pkg"
)

// settingsService implements domain.SettingsService.
type settingsService struct {
	repo   domain.SettingsRepository
	logger *slog.Logger
}

// NewSettingsService creates a new SettingsService with the given repository.
func NewSettingsService(repo domain.SettingsRepository, logger *slog.Logger) domain.SettingsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &settingsService{repo: repo, logger: logger}
}

func (s *settingsService) GetSettings(ctx context.Context) (*domain.Settings, error) {
	return s.repo.Get(ctx)
}

// UpdateSettings validates and replaces the whole settings document. Nothing
// is written when any field is invalid.
func (s *settingsService) UpdateSettings(ctx context.Context, settings domain.Settings) (*domain.Settings, error) {
	if err := pkg.ValidateStruct(&settings); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, &settings); err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "settings updated",
		slog.String("platform_name", settings.General.PlatformName),
		slog.String("currency", settings.General.Currency),
	)
	return &settings, nil
}
