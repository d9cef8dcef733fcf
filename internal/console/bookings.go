package console

import (
	"cmp"
	"context"
	"fmt"
	"strings"

	"github.com/simp-lee/svcadmin/internal/client"
	"github.com/simp-lee/svcadmin/internal/domain"
	"github.com/simp-lee/svcadmin/internal/listview"
)

var bookingSorts = map[string]string{
	"date-desc":   "scheduled_at:desc",
	"date-asc":    "scheduled_at:asc",
	"amount-desc": "amount:desc",
	"amount-asc":  "amount:asc",
}

// Bookings is the bookings list screen.
type Bookings struct {
	*listview.Controller[domain.Booking, string]
	api *client.Client
}

// NewBookings creates the bookings controller. Pages are cut by the API.
func NewBookings(api *client.Client, opts Options) (*Bookings, error) {
	rules := listview.Rules[domain.Booking, string]{
		ID: func(b domain.Booking) string { return b.ID },
		SearchFields: []func(domain.Booking) string{
			func(b domain.Booking) string { return b.ID },
			func(b domain.Booking) string { return b.CustomerName },
			func(b domain.Booking) string { return b.ProviderName },
			func(b domain.Booking) string { return b.ServiceName },
		},
		Filters: map[string]listview.Filter[domain.Booking]{
			"status": {Value: func(b domain.Booking) string { return b.Status }},
		},
		Sorts: map[string]func(a, b domain.Booking) int{
			"date-desc":   func(a, b domain.Booking) int { return b.ScheduledAt.Compare(a.ScheduledAt) },
			"date-asc":    func(a, b domain.Booking) int { return a.ScheduledAt.Compare(b.ScheduledAt) },
			"amount-desc": func(a, b domain.Booking) int { return cmp.Compare(b.Amount, a.Amount) },
			"amount-asc":  func(a, b domain.Booking) int { return cmp.Compare(a.Amount, b.Amount) },
		},
		Paging: listview.PagingServer,
	}
	src := listview.SourceFunc[domain.Booking](func(ctx context.Context, p listview.ListParams) (listview.FetchResult[domain.Booking], error) {
		return api.ListBookings(ctx, translateSort(p, bookingSorts))
	})

	c, err := newController(opts, rules, src, "date-desc")
	if err != nil {
		return nil, err
	}
	return &Bookings{Controller: c, api: api}, nil
}

// Complete marks an open booking completed.
func (b *Bookings) Complete(ctx context.Context, id string) error {
	return b.transition(ctx, id, OpComplete, domain.BookingCompleted)
}

// Cancel cancels an open booking.
func (b *Bookings) Cancel(ctx context.Context, id string) error {
	return b.transition(ctx, id, OpCancel, domain.BookingCancelled)
}

func (b *Bookings) transition(ctx context.Context, id string, op Operation, to string) error {
	patch := func(bk domain.Booking) (domain.Booking, error) {
		if !domain.CanTransitionBooking(bk.Status, to) {
			return bk, domain.NewValidationError("invalid status transition", map[string]string{
				"status": fmt.Sprintf("a %s booking cannot be %s", strings.ToLower(bk.Status), strings.ToLower(to)),
			})
		}
		bk.Status = to
		return bk, nil
	}
	remote := func(ctx context.Context) (*domain.Booking, error) {
		return b.api.UpdateBookingStatus(ctx, id, to)
	}
	return b.Mutate(ctx, id, string(op), patch, remote)
}
