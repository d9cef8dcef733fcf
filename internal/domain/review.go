package domain

import "context"

// Review is a customer's rating of a completed booking.
type Review struct {
	BaseModel
	BookingID    string `gorm:"size:16;index" json:"booking_id"`
	CustomerName string `gorm:"size:100" json:"customer_name"`
	ProviderName string `gorm:"size:100" json:"provider_name"`
	ServiceName  string `gorm:"size:100" json:"service_name"`
	Rating       int    `gorm:"not null" json:"rating"`
	Comment      string `gorm:"size:2000" json:"comment"`
}

// ReviewRepository defines the data access interface for reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *Review) error
	ListAll(ctx context.Context, filter map[string]string) ([]Review, error)
	Delete(ctx context.Context, id uint) error
}

// ReviewService defines the business logic interface for reviews.
type ReviewService interface {
	ListReviews(ctx context.Context, filter map[string]string) ([]Review, error)
	DeleteReview(ctx context.Context, id uint) error
}
