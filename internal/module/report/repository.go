package report

import (
	"context"

	"gorm.io/gorm"

	"github.com/simp-lee/svcadmin/internal/domain"
	"github.com/simp-lee/svcadmin/internal/pkg"
)

// reportRepository implements domain.ReportRepository using GORM aggregates.
type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new ReportRepository backed by the given GORM database.
func NewReportRepository(db *gorm.DB) domain.ReportRepository {
	return &reportRepository{db: db}
}

type statusCount struct {
	Status string
	Total  int64
}

// Summary computes all dashboard figures in one read transaction.
func (r *reportRepository) Summary(ctx context.Context) (*domain.ReportSummary, error) {
	summary := &domain.ReportSummary{BookingsByStatus: make(map[string]int64, len(domain.BookingStatuses))}
	for _, status := range domain.BookingStatuses {
		summary.BookingsByStatus[status] = 0
	}

	err := pkg.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		var counts []statusCount
		if err := tx.Model(&domain.Booking{}).
			Select("status, COUNT(*) AS total").
			Group("status").
			Scan(&counts).Error; err != nil {
			return err
		}
		for _, c := range counts {
			summary.BookingsByStatus[c.Status] = c.Total
			summary.TotalBookings += c.Total
		}

		if err := tx.Model(&domain.Booking{}).
			Where("status = ?", domain.BookingCompleted).
			Select("COALESCE(SUM(amount), 0)").
			Scan(&summary.CompletedRevenue).Error; err != nil {
			return err
		}

		if err := tx.Model(&domain.Provider{}).Count(&summary.TotalProviders).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Provider{}).Where("verified = ?", true).Count(&summary.VerifiedProviders).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Service{}).Count(&summary.TotalServices).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Service{}).Where("featured = ?", true).Count(&summary.FeaturedServices).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Review{}).Count(&summary.TotalReviews).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Review{}).
			Select("COALESCE(AVG(rating), 0)").
			Scan(&summary.AverageRating).Error
	})
	if err != nil {
		return nil, pkg.MapDBError(err)
	}
	return summary, nil
}
