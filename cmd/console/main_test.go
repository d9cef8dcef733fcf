package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/svcadmin/internal/app"
	"github.com/simp-lee/svcadmin/internal/client"
	"github.com/simp-lee/svcadmin/internal/config"
	"github.com/simp-lee/svcadmin/internal/console"
	"github.com/simp-lee/svcadmin/internal/domain"
)

// newEnv starts the API over a seeded in-memory database. Prompts read from input.
func newEnv(t *testing.T) *environment {
	t.Helper()
	a, err := app.New(&config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: 8080, Mode: gin.TestMode},
		Database: config.DatabaseConfig{
			Driver: "sqlite",
			Seed:   true,
			SQLite: config.SQLiteConfig{Path: ":memory:"},
			Pool:   config.PoolConfig{MaxOpenConns: 1, MaxIdleConns: 1},
		},
		Log: config.LogConfig{Level: "error", Format: "text"},
	})
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	t.Cleanup(func() { _ = a.Close() })

	srv := httptest.NewServer(a.Handler())
	t.Cleanup(srv.Close)

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	api, err := client.New(client.Config{BaseURL: srv.URL, Timeout: 5 * time.Second, Logger: quiet})
	if err != nil {
		t.Fatalf("client.New: %v", err)
	}
	return &environment{
		api:  api,
		opts: console.Options{Logger: quiet},
		in:   strings.NewReader(""),
	}
}

// exec runs one command line and returns what it printed.
func exec(t *testing.T, e *environment, line string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	e.out = &out
	err := e.run(context.Background(), strings.Fields(line))
	return out.String(), err
}

func mustExec(t *testing.T, e *environment, line string) string {
	t.Helper()
	out, err := exec(t, e, line)
	if err != nil {
		t.Fatalf("%s: %v\n%s", line, err, out)
	}
	return out
}

func TestListCommands(t *testing.T) {
	e := newEnv(t)

	tests := []struct {
		line    string
		want    []string
		notWant []string
	}{
		{
			line:    "bookings list -status Pending",
			want:    []string{"B1003", "B1007", "page 1 of 1, 2 total"},
			notWant: []string{"B1001"},
		},
		{
			line:    "bookings list -sort amount-desc -size 3 -page 2",
			want:    []string{"B1006", "B1003", "B1008", "page 2 of 3, 8 total"},
			notWant: []string{"B1002"},
		},
		{
			line: "providers list -status pending",
			want: []string{"Green Thumb Gardens", "Handy Andy", "Quick Locks", "3 total"},
		},
		{
			line:    "services list -featured true",
			want:    []string{"Leak Repair", "Panel Upgrade", "2 total"},
			notWant: []string{"Drain Cleaning"},
		},
		{
			line: "reviews list -rating 5 -sort rating-desc",
			want: []string{"3 total"},
		},
		{
			line: "bookings list -search nobody-matches",
			want: []string{"no matching records", "page 1 of 1, 0 total"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			out := mustExec(t, e, tt.line)
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(out, w) {
					t.Errorf("output should not contain %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestMutationCommands(t *testing.T) {
	e := newEnv(t)

	out := mustExec(t, e, "bookings complete B1003")
	if !strings.Contains(out, "booking B1003 is now "+domain.BookingCompleted) {
		t.Fatalf("unexpected output: %s", out)
	}

	if _, err := exec(t, e, "bookings cancel B1003"); !domain.IsValidation(err) {
		t.Fatalf("cancelling a completed booking: got %v, want validation error", err)
	}

	out = mustExec(t, e, "providers approve 3")
	if !strings.Contains(out, "Green Thumb Gardens") || !strings.Contains(out, console.ProviderActive) {
		t.Fatalf("unexpected output: %s", out)
	}

	out = mustExec(t, e, "services toggle-featured 2")
	if !strings.Contains(out, "featured=true") {
		t.Fatalf("unexpected output: %s", out)
	}

	out = mustExec(t, e, "reviews delete 1")
	if !strings.Contains(out, "review 1 deleted") {
		t.Fatalf("unexpected output: %s", out)
	}
	out = mustExec(t, e, "reviews list")
	if !strings.Contains(out, "4 total") {
		t.Fatalf("review count after delete:\n%s", out)
	}

	if _, err := exec(t, e, "services delete 999"); !domain.IsNotFound(err) {
		t.Fatalf("deleting a missing service: got %v, want not found", err)
	}
}

func TestConfirmationPrompt(t *testing.T) {
	e := newEnv(t)
	e.confirm = true

	e.in = strings.NewReader("n\n")
	out := mustExec(t, e, "bookings cancel B1007")
	if !strings.Contains(out, console.ConfirmationCopy(console.OpCancel)) || !strings.Contains(out, "aborted") {
		t.Fatalf("unexpected output: %s", out)
	}
	out = mustExec(t, e, "bookings list -status Pending")
	if !strings.Contains(out, "B1007") {
		t.Fatalf("declined cancel should leave B1007 pending:\n%s", out)
	}

	e.in = strings.NewReader("y\n")
	out = mustExec(t, e, "bookings cancel B1007")
	if !strings.Contains(out, "booking B1007 is now "+domain.BookingCancelled) {
		t.Fatalf("unexpected output: %s", out)
	}
}

func TestSettingsCommands(t *testing.T) {
	e := newEnv(t)

	out, err := exec(t, e, "settings set general.currency=usd")
	if !domain.IsValidation(err) {
		t.Fatalf("got %v, want validation error", err)
	}
	if !strings.Contains(out, "general.currency") {
		t.Fatalf("field error not printed:\n%s", out)
	}

	out = mustExec(t, e, "settings set payments.payout_day=monday notifications.sms_enabled=true")
	if !strings.Contains(out, "settings saved") {
		t.Fatalf("unexpected output: %s", out)
	}

	out = mustExec(t, e, "settings show -tab payments")
	if !strings.Contains(out, "monday") || strings.Contains(out, "platform_name") {
		t.Fatalf("unexpected output: %s", out)
	}

	out = mustExec(t, e, "settings set payments.payout_day=monday")
	if !strings.Contains(out, "no changes") {
		t.Fatalf("unexpected output: %s", out)
	}

	if _, err := exec(t, e, "settings set booking.cancellation_hours=soon"); err == nil {
		t.Fatal("expected a parse error")
	}
	if _, err := exec(t, e, "settings set unknown.key=1"); err == nil {
		t.Fatal("expected an unknown setting error")
	}
}

func TestReportCommand(t *testing.T) {
	e := newEnv(t)

	out := mustExec(t, e, "report")
	for _, w := range []string{"bookings", "pending", "providers", "7 (4 verified)", "reviews"} {
		if !strings.Contains(out, w) {
			t.Errorf("report missing %q:\n%s", w, out)
		}
	}
}

func TestRunErrors(t *testing.T) {
	e := newEnv(t)

	tests := []struct {
		name string
		line string
	}{
		{"no args", ""},
		{"unknown resource", "invoices list"},
		{"unknown command", "bookings archive"},
		{"missing id", "providers approve"},
		{"bad id", "services delete abc"},
		{"bad flag", "reviews list -colour red"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := exec(t, e, tt.line); err == nil {
				t.Fatalf("%q: expected an error", tt.line)
			}
		})
	}
}
