package review

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/simp-lee/svcadmin/internal/domain"
)

// reviewService implements domain.ReviewService.
type reviewService struct {
	repo   domain.ReviewRepository
	logger *slog.Logger
}

// NewReviewService creates a new ReviewService with the given repository.
func NewReviewService(repo domain.ReviewRepository, logger *slog.Logger) domain.ReviewService {
	if logger == nil {
		logger = slog.Default()
	}
	return &reviewService{repo: repo, logger: logger}
}

// ListReviews returns all reviews, optionally restricted to one star rating.
func (s *reviewService) ListReviews(ctx context.Context, filter map[string]string) ([]domain.Review, error) {
	clean := make(map[string]string, 1)
	if raw := strings.TrimSpace(filter["rating"]); raw != "" {
		rating, err := strconv.Atoi(raw)
		if err != nil || rating < 1 || rating > 5 {
			return nil, domain.NewValidationError("invalid rating", map[string]string{"rating": "Must be between 1 and 5"})
		}
		clean["rating"] = raw
	}
	return s.repo.ListAll(ctx, clean)
}

func (s *reviewService) DeleteReview(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "review deleted", slog.Uint64("review_id", uint64(id)))
	return nil
}
