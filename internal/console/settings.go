package console

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/simp-lee/svcadmin/internal/domain"
	"github.com/simp-lee/svcadmin/internal/pkg"
)

// Tab is one section of the settings form.
type Tab string

const (
	TabGeneral       Tab = "general"
	TabBooking       Tab = "booking"
	TabPayments      Tab = "payments"
	TabNotifications Tab = "notifications"
)

// Tabs lists the settings tabs in display order.
var Tabs = []Tab{TabGeneral, TabBooking, TabPayments, TabNotifications}

// SettingsAPI loads and stores platform settings.
type SettingsAPI interface {
	Settings(ctx context.Context) (*domain.Settings, error)
	UpdateSettings(ctx context.Context, s domain.Settings) (*domain.Settings, error)
}

// SettingsForm edits platform settings. Edits go to a draft; Save validates
// the whole draft, applies it optimistically and restores the last saved
// settings if the API rejects it.
type SettingsForm struct {
	api SettingsAPI
	log *slog.Logger

	mu       sync.Mutex
	tab      Tab
	saved    domain.Settings
	draft    domain.Settings
	fieldErr map[string]string
	saving   bool
}

// NewSettingsForm creates a form showing the default settings until Load.
func NewSettingsForm(api SettingsAPI, log *slog.Logger) *SettingsForm {
	if log == nil {
		log = slog.Default()
	}
	defaults := domain.DefaultSettings()
	return &SettingsForm{api: api, log: log, tab: TabGeneral, saved: defaults, draft: defaults}
}

// Load replaces both the saved settings and the draft with the API's copy.
func (f *SettingsForm) Load(ctx context.Context) error {
	s, err := f.api.Settings(ctx)
	if err != nil {
		return domain.NewAppError(domain.CodeFetchFailed, "failed to load settings", err)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved, f.draft = *s, *s
	f.fieldErr = nil
	return nil
}

// SetTab switches the visible tab.
func (f *SettingsForm) SetTab(tab Tab) error {
	if !slices.Contains(Tabs, tab) {
		return domain.NewValidationError("unknown settings tab", map[string]string{"tab": string(tab)})
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tab = tab
	return nil
}

// Tab returns the visible tab.
func (f *SettingsForm) Tab() Tab {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tab
}

// Edit applies fn to the draft.
func (f *SettingsForm) Edit(fn func(s *domain.Settings)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(&f.draft)
}

// Draft returns the settings being edited.
func (f *SettingsForm) Draft() domain.Settings {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Saved returns the settings currently in effect, including an optimistic
// save still in flight.
func (f *SettingsForm) Saved() domain.Settings {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saved
}

// Dirty reports whether the draft differs from the saved settings.
func (f *SettingsForm) Dirty() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !sameSettings(f.draft, f.saved)
}

func sameSettings(a, b domain.Settings) bool {
	return a.General == b.General &&
		a.Booking == b.Booking &&
		a.Payments == b.Payments &&
		a.Notifications == b.Notifications
}

// FieldErrors returns the per-field messages from the last Save.
func (f *SettingsForm) FieldErrors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.fieldErr))
	for k, v := range f.fieldErr {
		out[k] = v
	}
	return out
}

// Discard resets the draft to the saved settings.
func (f *SettingsForm) Discard() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = f.saved
	f.fieldErr = nil
}

// Save submits the draft. An invalid draft is never sent and never partially
// applied. On success the draft follows the stored settings unless it was
// edited after Save began.
func (f *SettingsForm) Save(ctx context.Context) error {
	f.mu.Lock()
	if f.saving {
		f.mu.Unlock()
		return domain.ErrBusy
	}
	draft := f.draft
	if err := pkg.ValidateStruct(&draft); err != nil {
		f.fieldErr = fieldsOf(err)
		f.mu.Unlock()
		return err
	}
	previous := f.saved
	f.saved = draft
	f.fieldErr = nil
	f.saving = true
	f.mu.Unlock()

	stored, err := f.api.UpdateSettings(ctx, draft)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.saving = false
	if err != nil {
		f.saved = previous
		f.fieldErr = fieldsOf(err)
		f.log.Warn("settings save failed", slog.Any("error", err))
		return domain.NewAppError(domain.CodeMutationFailed, "failed to save settings", err)
	}
	f.saved = *stored
	// Edits made while the save was in flight stay in the draft.
	if sameSettings(f.draft, draft) {
		f.draft = *stored
	}
	f.log.Info("settings saved")
	return nil
}

func fieldsOf(err error) map[string]string {
	var appErr *domain.AppError
	if errors.As(err, &appErr) && len(appErr.Fields) > 0 {
		return appErr.Fields
	}
	return nil
}
