package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"github.com/simp-lee/svcadmin/internal/domain"
	"github.com/simp-lee/svcadmin/internal/pkg"
)

// models lists every table the admin API owns.
var models = []any{
	&domain.Admin{},
	&domain.Booking{},
	&domain.Provider{},
	&domain.Service{},
	&domain.Review{},
	&domain.Settings{},
}

// seedDemoData fills an empty database with a small marketplace so the
// console has something to show. It does nothing if any booking exists.
func seedDemoData(ctx context.Context, db *gorm.DB, log *slog.Logger) error {
	var count int64
	if err := db.WithContext(ctx).Model(&domain.Booking{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count bookings: %w", err)
	}
	if count > 0 {
		return nil
	}

	day := time.Now().UTC().Truncate(24 * time.Hour)
	at := func(days, hour int) time.Time {
		return day.AddDate(0, 0, days).Add(time.Duration(hour) * time.Hour)
	}

	providers := []domain.Provider{
		{Name: "Elite Plumbing", Email: "hello@eliteplumbing.example", Phone: "555-0101", Category: "Plumbing", Location: "Austin, TX", Verified: true, Rating: 4.8},
		{Name: "PowerPros Electric", Email: "jobs@powerpros.example", Phone: "555-0102", Category: "Electrical", Location: "Dallas, TX", Verified: true, Rating: 4.6},
		{Name: "Green Thumb Gardens", Email: "info@greenthumb.example", Phone: "555-0103", Category: "Gardening", Location: "Austin, TX", Rating: 4.2},
		{Name: "Spotless Cleaning Co", Email: "book@spotless.example", Phone: "555-0104", Category: "Cleaning", Location: "Houston, TX", Verified: true, Rating: 4.9},
		{Name: "Handy Andy", Email: "andy@handy.example", Phone: "555-0105", Category: "Handyman", Location: "San Antonio, TX", Rating: 3.9},
		{Name: "Cool Air HVAC", Email: "service@coolair.example", Phone: "555-0106", Category: "HVAC", Location: "Dallas, TX", Verified: true, Rating: 4.4},
		{Name: "Quick Locks", Email: "help@quicklocks.example", Phone: "555-0107", Category: "Locksmith", Location: "Houston, TX", Rating: 4.0},
	}
	services := []domain.Service{
		{Name: "Leak Repair", Category: "Plumbing", ProviderName: "Elite Plumbing", Price: 120, Verified: true, Featured: true},
		{Name: "Drain Cleaning", Category: "Plumbing", ProviderName: "Elite Plumbing", Price: 90, Verified: true},
		{Name: "Panel Upgrade", Category: "Electrical", ProviderName: "PowerPros Electric", Price: 950, Verified: true, Featured: true},
		{Name: "Lawn Care", Category: "Gardening", ProviderName: "Green Thumb Gardens", Price: 60},
		{Name: "Deep Clean", Category: "Cleaning", ProviderName: "Spotless Cleaning Co", Price: 180, Verified: true},
		{Name: "Furniture Assembly", Category: "Handyman", ProviderName: "Handy Andy", Price: 75},
		{Name: "AC Tune-Up", Category: "HVAC", ProviderName: "Cool Air HVAC", Price: 110, Verified: true},
		{Name: "Lockout Service", Category: "Locksmith", ProviderName: "Quick Locks", Price: 85},
	}
	bookings := []domain.Booking{
		{ID: "B1001", CustomerName: "Ana Silva", CustomerEmail: "ana@example.com", ProviderName: "Elite Plumbing", ServiceName: "Leak Repair", Status: domain.BookingCompleted, ScheduledAt: at(-6, 9), Amount: 120},
		{ID: "B1002", CustomerName: "Ben Okafor", CustomerEmail: "ben@example.com", ProviderName: "PowerPros Electric", ServiceName: "Panel Upgrade", Status: domain.BookingConfirmed, ScheduledAt: at(2, 13), Amount: 950},
		{ID: "B1003", CustomerName: "Chloe Park", CustomerEmail: "chloe@example.com", ProviderName: "Elite Plumbing", ServiceName: "Drain Cleaning", Status: domain.BookingPending, ScheduledAt: at(3, 10), Amount: 90},
		{ID: "B1004", CustomerName: "Dev Patel", CustomerEmail: "dev@example.com", ProviderName: "Green Thumb Gardens", ServiceName: "Lawn Care", Status: domain.BookingCancelled, ScheduledAt: at(-2, 8), Amount: 60},
		{ID: "B1005", CustomerName: "Elena Rossi", CustomerEmail: "elena@example.com", ProviderName: "Spotless Cleaning Co", ServiceName: "Deep Clean", Status: domain.BookingInProgress, ScheduledAt: at(0, 11), Amount: 180},
		{ID: "B1006", CustomerName: "Farid Haddad", CustomerEmail: "farid@example.com", ProviderName: "Cool Air HVAC", ServiceName: "AC Tune-Up", Status: domain.BookingCompleted, ScheduledAt: at(-10, 15), Amount: 110},
		{ID: "B1007", CustomerName: "Grace Lee", CustomerEmail: "grace@example.com", ProviderName: "Handy Andy", ServiceName: "Furniture Assembly", Status: domain.BookingPending, ScheduledAt: at(5, 16), Amount: 75},
		{ID: "B1008", CustomerName: "Hugo Martin", CustomerEmail: "hugo@example.com", ProviderName: "Quick Locks", ServiceName: "Lockout Service", Status: domain.BookingConfirmed, ScheduledAt: at(1, 19), Amount: 85},
	}
	reviews := []domain.Review{
		{BookingID: "B1001", CustomerName: "Ana Silva", ProviderName: "Elite Plumbing", ServiceName: "Leak Repair", Rating: 5, Comment: "Fixed the leak in under an hour."},
		{BookingID: "B1006", CustomerName: "Farid Haddad", ProviderName: "Cool Air HVAC", ServiceName: "AC Tune-Up", Rating: 5, Comment: "On time and very thorough."},
		{BookingID: "B1002", CustomerName: "Ben Okafor", ProviderName: "PowerPros Electric", ServiceName: "Panel Upgrade", Rating: 4, Comment: "Good work, slightly over the estimate."},
		{BookingID: "B1004", CustomerName: "Dev Patel", ProviderName: "Green Thumb Gardens", ServiceName: "Lawn Care", Rating: 3, Comment: "Had to reschedule twice."},
		{BookingID: "B1005", CustomerName: "Elena Rossi", ProviderName: "Spotless Cleaning Co", ServiceName: "Deep Clean", Rating: 5, Comment: "Spotless indeed."},
	}

	err := pkg.WithTx(ctx, db, func(tx *gorm.DB) error {
		for _, rows := range []any{&providers, &services, &bookings, &reviews} {
			if err := tx.Create(rows).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("seed demo data: %w", err)
	}

	log.InfoContext(ctx, "demo data seeded",
		slog.Int("providers", len(providers)),
		slog.Int("services", len(services)),
		slog.Int("bookings", len(bookings)),
		slog.Int("reviews", len(reviews)),
	)
	return nil
}
