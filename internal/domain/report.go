package domain

import "context"

// ReportSummary aggregates dashboard figures across the marketplace.
type ReportSummary struct {
	BookingsByStatus  map[string]int64 `json:"bookings_by_status"`
	TotalBookings     int64            `json:"total_bookings"`
	CompletedRevenue  float64          `json:"completed_revenue"`
	TotalProviders    int64            `json:"total_providers"`
	VerifiedProviders int64            `json:"verified_providers"`
	TotalServices     int64            `json:"total_services"`
	FeaturedServices  int64            `json:"featured_services"`
	TotalReviews      int64            `json:"total_reviews"`
	AverageRating     float64          `json:"average_rating"`
}

// ReportRepository computes report aggregates.
type ReportRepository interface {
	Summary(ctx context.Context) (*ReportSummary, error)
}

// ReportService defines the business logic interface for reports.
type ReportService interface {
	Summary(ctx context.Context) (*ReportSummary, error)
}
