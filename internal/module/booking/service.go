package booking

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/simp-lee/svcadmin/internal/domain"
)

// bookingService implements domain.BookingService.
type bookingService struct {
	repo   domain.BookingRepository
	logger *slog.Logger
}

// NewBookingService creates a new BookingService with the given repository.
func NewBookingService(repo domain.BookingRepository, logger *slog.Logger) domain.BookingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &bookingService{repo: repo, logger: logger}
}

// GetBooking retrieves a booking by reference.
func (s *bookingService) GetBooking(ctx context.Context, id string) (*domain.Booking, error) {
	return s.repo.GetByID(ctx, strings.TrimSpace(id))
}

// ListBookings returns a page of bookings.
func (s *bookingService) ListBookings(ctx context.Context, req domain.PageRequest) (*domain.Page[domain.Booking], error) {
	return s.repo.List(ctx, req)
}

// ChangeStatus completes or cancels an open booking. Completed and cancelled
// bookings are terminal and reject any further change with CodeConflict.
func (s *bookingService) ChangeStatus(ctx context.Context, id, status string) (*domain.Booking, error) {
	status = strings.TrimSpace(status)
	if status != domain.BookingCompleted && status != domain.BookingCancelled {
		return nil, domain.NewValidationError("invalid status", map[string]string{
			"status": fmt.Sprintf("Must be one of %s, %s", domain.BookingCompleted, domain.BookingCancelled),
		})
	}

	current, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return nil, err
	}
	if !domain.CanTransitionBooking(current.Status, status) {
		return nil, domain.NewAppError(domain.CodeConflict,
			fmt.Sprintf("booking %s is %s and cannot become %s", current.ID, current.Status, status), nil)
	}

	updated, err := s.repo.UpdateStatus(ctx, current.ID, current.Status, status)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "booking status changed",
		slog.String("booking_id", updated.ID),
		slog.String("from", current.Status),
		slog.String("to", updated.Status),
	)
	return updated, nil
}
