package domain

import (
	"context"
	"time"
)

// Settings holds platform-wide configuration edited from the console.
// It is stored as a single row.
type Settings struct {
	ID            uint                 `gorm:"primaryKey" json:"-"`
	General       GeneralSettings      `gorm:"embedded;embeddedPrefix:general_" json:"general"`
	Booking       BookingSettings      `gorm:"embedded;embeddedPrefix:booking_" json:"booking"`
	Payments      PaymentSettings      `gorm:"embedded;embeddedPrefix:payments_" json:"payments"`
	Notifications NotificationSettings `gorm:"embedded;embeddedPrefix:notifications_" json:"notifications"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// GeneralSettings is the "general" settings tab.
type GeneralSettings struct {
	PlatformName string `json:"platform_name" binding:"required,min=2,max=100"`
	SupportEmail string `json:"support_email" binding:"required,email"`
	Currency     string `json:"currency" binding:"required,len=3,uppercase"`
}

// BookingSettings is the "booking" settings tab.
type BookingSettings struct {
	AutoConfirm       bool `json:"auto_confirm"`
	CancellationHours int  `json:"cancellation_hours" binding:"gte=0,lte=720"`
}

// PaymentSettings is the "payments" settings tab.
type PaymentSettings struct {
	CommissionRate float64 `json:"commission_rate" binding:"gte=0,lte=100"`
	PayoutDay      string  `json:"payout_day" binding:"required,oneof=monday tuesday wednesday thursday friday"`
}

// NotificationSettings is the "notifications" settings tab.
type NotificationSettings struct {
	EmailEnabled bool `json:"email_enabled"`
	SMSEnabled   bool `json:"sms_enabled"`
}

// DefaultSettings returns the settings used before an operator saves any.
func DefaultSettings() Settings {
	return Settings{
		General: GeneralSettings{
			PlatformName: "Marketplace",
			SupportEmail: "support@example.com",
			Currency:     "USD",
		},
		Booking: BookingSettings{
			AutoConfirm:       false,
			CancellationHours: 24,
		},
		Payments: PaymentSettings{
			CommissionRate: 10,
			PayoutDay:      "friday",
		},
		Notifications: NotificationSettings{
			EmailEnabled: true,
		},
	}
}

// SettingsRepository defines the data access interface for platform settings.
type SettingsRepository interface {
	Get(ctx context.Context) (*Settings, error)
	Save(ctx context.Context, settings *Settings) error
}

// SettingsService defines the business logic interface for platform settings.
type SettingsService interface {
	GetSettings(ctx context.Context) (*Settings, error)
	UpdateSettings(ctx context.Context, settings Settings) (*Settings, error)
}
