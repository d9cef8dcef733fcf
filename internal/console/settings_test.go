package console

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simp-lee/svcadmin/internal/domain"
)

type fakeSettingsAPI struct {
	mu      sync.Mutex
	stored  domain.Settings
	updates int
	failErr error
	started chan struct{}
	release chan struct{}
}

func (f *fakeSettingsAPI) Settings(context.Context) (*domain.Settings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s := f.stored
	return &s, nil
}

func (f *fakeSettingsAPI) UpdateSettings(_ context.Context, s domain.Settings) (*domain.Settings, error) {
	if f.started != nil {
		close(f.started)
		<-f.release
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	if f.failErr != nil {
		return nil, f.failErr
	}
	f.stored = s
	return &s, nil
}

func TestSettingsForm_Tabs(t *testing.T) {
	f := NewSettingsForm(&fakeSettingsAPI{}, quietLogger())

	assert.Equal(t, TabGeneral, f.Tab())
	require.NoError(t, f.SetTab(TabPayments))
	assert.Equal(t, TabPayments, f.Tab())

	err := f.SetTab("billing")
	assert.True(t, domain.IsValidation(err))
	assert.Equal(t, TabPayments, f.Tab())
}

func TestSettingsForm_InvalidDraftIsNotSent(t *testing.T) {
	api := &fakeSettingsAPI{stored: domain.DefaultSettings()}
	f := NewSettingsForm(api, quietLogger())
	require.NoError(t, f.Load(context.Background()))

	f.Edit(func(s *domain.Settings) {
		s.General.Currency = "usd"
		s.Payments.CommissionRate = 150
		s.General.PlatformName = "Renamed"
	})
	assert.True(t, f.Dirty())

	err := f.Save(context.Background())
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	fields := f.FieldErrors()
	assert.Contains(t, fields, "general.currency")
	assert.Contains(t, fields, "payments.commission_rate")
	assert.Zero(t, api.updates, "nothing reaches the API")
	assert.Equal(t, "Marketplace", f.Saved().General.PlatformName, "no field is partially applied")
	assert.Equal(t, "Renamed", f.Draft().General.PlatformName, "the draft keeps the operator's edits")
}

func TestSettingsForm_OptimisticSave(t *testing.T) {
	api := &fakeSettingsAPI{
		stored:  domain.DefaultSettings(),
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	f := NewSettingsForm(api, quietLogger())
	require.NoError(t, f.Load(context.Background()))

	f.Edit(func(s *domain.Settings) { s.Booking.CancellationHours = 48 })

	errCh := make(chan error, 1)
	go func() { errCh <- f.Save(context.Background()) }()
	<-api.started

	assert.Equal(t, 48, f.Saved().Booking.CancellationHours, "applied before the API answers")
	assert.True(t, domain.IsBusy(f.Save(context.Background())))

	close(api.release)
	require.NoError(t, <-errCh)
	assert.False(t, f.Dirty())
	assert.Equal(t, 48, api.stored.Booking.CancellationHours)
}

func TestSettingsForm_FailedSaveRestores(t *testing.T) {
	api := &fakeSettingsAPI{stored: domain.DefaultSettings(), failErr: errors.New("gateway timeout")}
	f := NewSettingsForm(api, quietLogger())
	require.NoError(t, f.Load(context.Background()))

	f.Edit(func(s *domain.Settings) { s.Notifications.SMSEnabled = true })
	err := f.Save(context.Background())

	require.Error(t, err)
	assert.True(t, domain.IsMutationFailed(err))
	assert.False(t, f.Saved().Notifications.SMSEnabled, "last saved settings are restored")
	assert.True(t, f.Draft().Notifications.SMSEnabled)
	assert.True(t, f.Dirty())

	f.Discard()
	assert.False(t, f.Dirty())
}

func TestSettingsForm_AgainstAPI(t *testing.T) {
	api := newAPI(t)
	ctx := context.Background()
	f := NewSettingsForm(api, quietLogger())

	require.NoError(t, f.Load(ctx))
	assert.Equal(t, domain.DefaultSettings().General, f.Saved().General)

	f.Edit(func(s *domain.Settings) {
		s.General.PlatformName = "HomeHelp"
		s.Payments.PayoutDay = "monday"
	})
	require.NoError(t, f.Save(ctx))

	stored, err := api.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "HomeHelp", stored.General.PlatformName)
	assert.Equal(t, "monday", stored.Payments.PayoutDay)

	reloaded := NewSettingsForm(api, quietLogger())
	require.NoError(t, reloaded.Load(ctx))
	assert.Equal(t, "HomeHelp", reloaded.Saved().General.PlatformName)
}

func TestSettingsForm_EditDuringSaveIsKept(t *testing.T) {
	api := &fakeSettingsAPI{
		stored:  domain.DefaultSettings(),
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	f := NewSettingsForm(api, quietLogger())
	require.NoError(t, f.Load(context.Background()))

	f.Edit(func(s *domain.Settings) { s.Booking.CancellationHours = 48 })

	errCh := make(chan error, 1)
	go func() { errCh <- f.Save(context.Background()) }()
	<-api.started

	f.Edit(func(s *domain.Settings) { s.General.PlatformName = "HomeHelp" })
	close(api.release)
	require.NoError(t, <-errCh)

	assert.Equal(t, 48, f.Saved().Booking.CancellationHours)
	assert.Equal(t, "Marketplace", f.Saved().General.PlatformName)
	assert.Equal(t, "HomeHelp", f.Draft().General.PlatformName, "the later edit survives the save")
	assert.Equal(t, 48, f.Draft().Booking.CancellationHours)
	assert.True(t, f.Dirty())
}
