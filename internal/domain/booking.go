package domain

import (
	"context"
	"time"
)

// Booking statuses.
const (
	BookingPending    = "Pending"
	BookingConfirmed  = "Confirmed"
	BookingInProgress = "In Progress"
	BookingCompleted  = "Completed"
	BookingCancelled  = "Cancelled"
)

// BookingStatuses lists every valid booking status.
var BookingStatuses = []string{
	BookingPending,
	BookingConfirmed,
	BookingInProgress,
	BookingCompleted,
	BookingCancelled,
}

// Booking is a customer's reservation of a provider's service.
// Bookings are keyed by a human-readable reference such as "B1003".
type Booking struct {
	ID            string    `gorm:"primaryKey;size:16" json:"id"`
	CustomerName  string    `gorm:"size:100;not null" json:"customer_name"`
	CustomerEmail string    `gorm:"size:255" json:"customer_email"`
	ProviderName  string    `gorm:"size:100;not null" json:"provider_name"`
	ServiceName   string    `gorm:"size:100;not null" json:"service_name"`
	Status        string    `gorm:"size:20;not null;index" json:"status"`
	ScheduledAt   time.Time `json:"scheduled_at"`
	Amount        float64   `json:"amount"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// IsTerminalBookingStatus reports whether no further transition is allowed from status.
func IsTerminalBookingStatus(status string) bool {
	return status == BookingCompleted || status == BookingCancelled
}

// CanTransitionBooking reports whether a booking in status from may move to status to.
// Only open bookings (Pending, Confirmed, In Progress) can be completed or cancelled.
func CanTransitionBooking(from, to string) bool {
	switch from {
	case BookingPending, BookingConfirmed, BookingInProgress:
	default:
		return false
	}
	return to == BookingCompleted || to == BookingCancelled
}

// BookingRepository defines the data access interface for bookings.
type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, req PageRequest) (*Page[Booking], error)
	UpdateStatus(ctx context.Context, id, from, to string) (*Booking, error)
}

// BookingService defines the business logic interface for bookings.
type BookingService interface {
	GetBooking(ctx context.Context, id string) (*Booking, error)
	ListBookings(ctx context.Context, req PageRequest) (*Page[Booking], error)
	ChangeStatus(ctx context.Context, id, status string) (*Booking, error)
}
