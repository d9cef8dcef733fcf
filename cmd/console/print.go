package main

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/simp-lee/svcadmin/internal/console"
	"github.com/simp-lee/svcadmin/internal/domain"
	"github.com/simp-lee/svcadmin/internal/listview"
)

const dateLayout = "2006-01-02 15:04"

func newTable(w io.Writer, header ...string) *tabwriter.Writer {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	return tw
}

func row(tw *tabwriter.Writer, cols ...any) {
	parts := make([]string, len(cols))
	for i, c := range cols {
		parts[i] = fmt.Sprint(c)
	}
	fmt.Fprintln(tw, strings.Join(parts, "\t"))
}

func footer[T any](w io.Writer, v listview.View[T]) {
	if len(v.Items) == 0 {
		fmt.Fprintln(w, "no matching records")
	}
	fmt.Fprintf(w, "page %d of %d, %d total\n", v.Query.Page, v.TotalPages, v.TotalCount)
}

func printBookings(w io.Writer, v listview.View[domain.Booking]) {
	tw := newTable(w, "ID", "CUSTOMER", "PROVIDER", "SERVICE", "STATUS", "SCHEDULED", "AMOUNT")
	for _, b := range v.Items {
		row(tw, b.ID, b.CustomerName, b.ProviderName, b.ServiceName, b.Status, b.ScheduledAt.Format(dateLayout), fmt.Sprintf("%.2f", b.Amount))
	}
	tw.Flush()
	footer(w, v)
}

func printProviders(w io.Writer, v listview.View[domain.Provider]) {
	tw := newTable(w, "ID", "NAME", "CATEGORY", "LOCATION", "STATUS", "RATING")
	for _, p := range v.Items {
		row(tw, p.ID, p.Name, p.Category, p.Location, console.ProviderStatus(p), fmt.Sprintf("%.1f", p.Rating))
	}
	tw.Flush()
	footer(w, v)
}

func printServices(w io.Writer, v listview.View[domain.Service]) {
	tw := newTable(w, "ID", "NAME", "CATEGORY", "PROVIDER", "PRICE", "STATUS", "FEATURED")
	for _, s := range v.Items {
		row(tw, s.ID, s.Name, s.Category, s.ProviderName, fmt.Sprintf("%.2f", s.Price), console.ServiceStatus(s), s.Featured)
	}
	tw.Flush()
	footer(w, v)
}

func printReviews(w io.Writer, v listview.View[domain.Review]) {
	tw := newTable(w, "ID", "CUSTOMER", "PROVIDER", "SERVICE", "RATING", "COMMENT")
	for _, r := range v.Items {
		row(tw, r.ID, r.CustomerName, r.ProviderName, r.ServiceName, r.Rating, r.Comment)
	}
	tw.Flush()
	footer(w, v)
}

func printSettings(w io.Writer, s domain.Settings, tabs []console.Tab) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, tab := range tabs {
		switch tab {
		case console.TabGeneral:
			row(tw, "general.platform_name", s.General.PlatformName)
			row(tw, "general.support_email", s.General.SupportEmail)
			row(tw, "general.currency", s.General.Currency)
		case console.TabBooking:
			row(tw, "booking.auto_confirm", s.Booking.AutoConfirm)
			row(tw, "booking.cancellation_hours", s.Booking.CancellationHours)
		case console.TabPayments:
			row(tw, "payments.commission_rate", s.Payments.CommissionRate)
			row(tw, "payments.payout_day", s.Payments.PayoutDay)
		case console.TabNotifications:
			row(tw, "notifications.email_enabled", s.Notifications.EmailEnabled)
			row(tw, "notifications.sms_enabled", s.Notifications.SMSEnabled)
		}
	}
	tw.Flush()
}

func printFieldErrors(w io.Writer, fields map[string]string) {
	for _, key := range slices.Sorted(maps.Keys(fields)) {
		fmt.Fprintf(w, "  %s: %s\n", key, fields[key])
	}
}

func printReport(w io.Writer, r *domain.ReportSummary) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	row(tw, "bookings", r.TotalBookings)
	for _, status := range slices.Sorted(maps.Keys(r.BookingsByStatus)) {
		row(tw, "  "+strings.ToLower(status), r.BookingsByStatus[status])
	}
	row(tw, "completed revenue", fmt.Sprintf("%.2f", r.CompletedRevenue))
	row(tw, "providers", fmt.Sprintf("%d (%d verified)", r.TotalProviders, r.VerifiedProviders))
	row(tw, "services", fmt.Sprintf("%d (%d featured)", r.TotalServices, r.FeaturedServices))
	row(tw, "reviews", fmt.Sprintf("%d (avg %.2f)", r.TotalReviews, r.AverageRating))
	tw.Flush()
}
