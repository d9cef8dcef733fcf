package catalog

import (
	"context"
	"log/slog"
	"maps"
	"strings"

	"github.com/simp-lee/svcadmin/internal/domain"
)

// Service status labels accepted by the "status" list filter. A service is
// Active exactly when it is verified.
const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

// catalogService implements domain.CatalogService.
type catalogService struct {
	repo   domain.ServiceRepository
	logger *slog.Logger
}

// NewCatalogService creates a new CatalogService with the given repository.
func NewCatalogService(repo domain.ServiceRepository, logger *slog.Logger) domain.CatalogService {
	if logger == nil {
		logger = slog.Default()
	}
	return &catalogService{repo: repo, logger: logger}
}

func (s *catalogService) GetService(ctx context.Context, id uint) (*domain.Service, error) {
	return s.repo.GetByID(ctx, id)
}

// ListServices returns a page of services, translating a "status" filter of
// Active or Inactive into the verified flag.
func (s *catalogService) ListServices(ctx context.Context, req domain.PageRequest) (*domain.Page[domain.Service], error) {
	if status, ok := req.Filter["status"]; ok {
		filter := maps.Clone(req.Filter)
		delete(filter, "status")
		switch {
		case strings.EqualFold(status, StatusActive):
			filter["verified"] = "true"
		case strings.EqualFold(status, StatusInactive):
			filter["verified"] = "false"
		}
		req.Filter = filter
	}
	return s.repo.List(ctx, req)
}

func (s *catalogService) SetFeatured(ctx context.Context, id uint, featured bool) (*domain.Service, error) {
	return s.update(ctx, id, "featured", featured)
}

// SetActive activates or deactivates a listing by writing its verified flag.
func (s *catalogService) SetActive(ctx context.Context, id uint, active bool) (*domain.Service, error) {
	return s.update(ctx, id, "verified", active)
}

func (s *catalogService) update(ctx context.Context, id uint, column string, value bool) (*domain.Service, error) {
	service, err := s.repo.UpdateFlags(ctx, id, map[string]any{column: value})
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "service updated",
		slog.Uint64("service_id", uint64(service.ID)),
		slog.String("field", column),
		slog.Bool("value", value),
	)
	return service, nil
}

func (s *catalogService) DeleteService(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "service deleted", slog.Uint64("service_id", uint64(id)))
	return nil
}
