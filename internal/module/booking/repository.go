package booking

import (
	"context"

	"gorm.io/gorm"

	"github.com/simp-lee/svcadmin/internal/domain"
	"github.com/simp-lee/svcadmin/internal/pkg"
)

var listOptions = pkg.ListOptions{
	SearchColumns: []string{"id", "customer_name", "customer_email", "provider_name", "service_name"},
	Filters: map[string]pkg.FilterField{
		"status":   {Column: "status"},
		"provider": {Column: "provider_name"},
	},
	SortFields:  []string{"id", "scheduled_at", "amount", "created_at", "status"},
	DefaultSort: "scheduled_at:desc",
	KeyColumn:   "id",
}

// bookingRepository implements domain.BookingRepository using GORM.
type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new BookingRepository backed by the given GORM database.
func NewBookingRepository(db *gorm.DB) domain.BookingRepository {
	return &bookingRepository{db: db}
}

// Create inserts a new booking.
func (r *bookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	if err := r.db.WithContext(ctx).Create(booking).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// GetByID retrieves a booking by its reference.
func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	var booking domain.Booking
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&booking).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &booking, nil
}

// List returns one page of bookings matching the request's search and filters.
func (r *bookingRepository) List(ctx context.Context, req domain.PageRequest) (*domain.Page[domain.Booking], error) {
	page, err := pkg.ListPage[domain.Booking](ctx, r.db, req, listOptions)
	if err != nil {
		return nil, pkg.MapDBError(err)
	}
	return page, nil
}

// UpdateStatus moves a booking from one status to another. The update only
// applies if the stored status still equals from; otherwise CodeConflict is
// returned so concurrent edits cannot skip the transition rules.
func (r *bookingRepository) UpdateStatus(ctx context.Context, id, from, to string) (*domain.Booking, error) {
	var updated domain.Booking
	err := pkg.WithTx(ctx, r.db, func(tx *gorm.DB) error {
		result := tx.Model(&domain.Booking{}).
			Where("id = ? AND status = ?", id, from).
			Update("status", to)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			var count int64
			if err := tx.Model(&domain.Booking{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return domain.ErrNotFound
			}
			return domain.NewAppError(domain.CodeConflict, "booking status changed concurrently", nil)
		}
		return tx.Where("id = ?", id).First(&updated).Error
	})
	if err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &updated, nil
}
