package provider

import (
	"context"
	"log/slog"
	"maps"
	"strings"

	"github.com/simp-lee/svcadmin/internal/domain"
)

// Provider status labels accepted by the "status" list filter.
const (
	StatusActive  = "active"
	StatusPending = "pending"
)

// providerService implements domain.ProviderService.
type providerService struct {
	repo   domain.ProviderRepository
	logger *slog.Logger
}

// NewProviderService creates a new ProviderService with the given repository.
func NewProviderService(repo domain.ProviderRepository, logger *slog.Logger) domain.ProviderService {
	if logger == nil {
		logger = slog.Default()
	}
	return &providerService{repo: repo, logger: logger}
}

func (s *providerService) GetProvider(ctx context.Context, id uint) (*domain.Provider, error) {
	return s.repo.GetByID(ctx, id)
}

// ListProviders returns a page of providers. A "status" filter of active or
// pending is translated into the verified flag it labels.
func (s *providerService) ListProviders(ctx context.Context, req domain.PageRequest) (*domain.Page[domain.Provider], error) {
	if status, ok := req.Filter["status"]; ok {
		filter := maps.Clone(req.Filter)
		delete(filter, "status")
		switch strings.ToLower(strings.TrimSpace(status)) {
		case StatusActive:
			filter["verified"] = "true"
		case StatusPending:
			filter["verified"] = "false"
		}
		req.Filter = filter
	}
	return s.repo.List(ctx, req)
}

// Verify approves an unverified provider.
func (s *providerService) Verify(ctx context.Context, id uint) (*domain.Provider, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Verified {
		return nil, domain.NewAppError(domain.CodeConflict, "provider is already verified", nil)
	}
	return s.setVerified(ctx, id, true)
}

// Unverify clears the verification flag. It backs both the reject and the
// unverify console actions and is idempotent.
func (s *providerService) Unverify(ctx context.Context, id uint) (*domain.Provider, error) {
	return s.setVerified(ctx, id, false)
}

func (s *providerService) setVerified(ctx context.Context, id uint, verified bool) (*domain.Provider, error) {
	provider, err := s.repo.SetVerified(ctx, id, verified)
	if err != nil {
		return nil, err
	}
	s.logger.InfoContext(ctx, "provider verification changed",
		slog.Uint64("provider_id", uint64(provider.ID)),
		slog.Bool("verified", provider.Verified),
	)
	return provider, nil
}
