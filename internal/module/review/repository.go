package review

import (
	"context"
	"strconv"

	"gorm.io/gorm"

	"github.com/simp-lee/svcadmin/internal/domain"
	"github.com/simp-lee/svcadmin/internal/pkg"
)

// reviewRepository implements domain.ReviewRepository using GORM.
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates a new ReviewRepository backed by the given GORM database.
func NewReviewRepository(db *gorm.DB) domain.ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// ListAll returns every review, newest first. The only recognised filter is
// "rating"; paging is left to the caller.
func (r *reviewRepository) ListAll(ctx context.Context, filter map[string]string) ([]domain.Review, error) {
	query := r.db.WithContext(ctx).Model(&domain.Review{})
	if raw, ok := filter["rating"]; ok {
		rating, err := strconv.Atoi(raw)
		if err != nil {
			return nil, domain.NewValidationError("invalid rating", map[string]string{"rating": "Must be a number"})
		}
		query = query.Where("rating = ?", rating)
	}

	reviews := []domain.Review{}
	if err := query.Order("created_at desc").Order("id asc").Find(&reviews).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return reviews, nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.Review{}, id)
	if result.Error != nil {
		return pkg.MapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
