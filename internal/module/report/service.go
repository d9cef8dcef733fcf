package report

import (
	"context"
	"log/slog"
	"maps"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/simp-lee/svcadmin/internal/domain"
)

const summaryKey = "summary"

// CacheOptions configures the summary cache. A zero TTL disables caching.
type CacheOptions struct {
	TTL     time.Duration
	MaxSize int
}

// reportService implements domain.ReportService.
type reportService struct {
	repo   domain.ReportRepository
	cache  *expirable.LRU[string, *domain.ReportSummary]
	logger *slog.Logger
}

// NewReportService creates a new ReportService. Summaries are cached for
// opts.TTL; figures may lag behind writes by up to that long.
func NewReportService(repo domain.ReportRepository, opts CacheOptions, logger *slog.Logger) domain.ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &reportService{repo: repo, logger: logger}
	if opts.TTL > 0 {
		size := opts.MaxSize
		if size <= 0 {
			size = 1
		}
		s.cache = expirable.NewLRU[string, *domain.ReportSummary](size, nil, opts.TTL)
	}
	return s
}

// Summary returns the dashboard summary, served from cache when fresh.
func (s *reportService) Summary(ctx context.Context) (*domain.ReportSummary, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(summaryKey); ok {
			return cloneSummary(cached), nil
		}
	}

	summary, err := s.repo.Summary(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.Add(summaryKey, cloneSummary(summary))
		s.logger.DebugContext(ctx, "report summary cached", slog.Int64("total_bookings", summary.TotalBookings))
	}
	return summary, nil
}

func cloneSummary(s *domain.ReportSummary) *domain.ReportSummary {
	cp := *s
	cp.BookingsByStatus = maps.Clone(s.BookingsByStatus)
	return &cp
}
