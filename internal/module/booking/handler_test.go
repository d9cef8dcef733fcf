package booking

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/svcadmin/internal/domain"
	"github.com/simp-lee/svcadmin/internal/pkg"
)

// setupAPIRouter wires a handler backed by the mock repository.
func setupAPIRouter(repo *mockBookingRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewModule(NewBookingHandler(NewBookingService(repo, nil))).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestBookingHandler_List(t *testing.T) {
	r := setupAPIRouter(newMockRepo(
		domain.Booking{ID: "B1001", Status: domain.BookingPending},
		domain.Booking{ID: "B1002", Status: domain.BookingCompleted},
	))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings?page=0&size=5", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp struct {
		Code int                          `json:"code"`
		Data domain.Page[domain.Booking] `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Data.TotalElements != 2 || len(resp.Data.Content) != 2 {
		t.Errorf("unexpected page: %+v", resp.Data)
	}
	if resp.Data.Size != 5 {
		t.Errorf("expected size 5, got %d", resp.Data.Size)
	}
}

func TestBookingHandler_Get(t *testing.T) {
	r := setupAPIRouter(newMockRepo(domain.Booking{ID: "B1003", Status: domain.BookingPending}))

	tests := []struct {
		name       string
		path       string
		wantStatus int
	}{
		{"found", "/api/v1/bookings/B1003", http.StatusOK},
		{"missing", "/api/v1/bookings/B0000", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestBookingHandler_ChangeStatus(t *testing.T) {
	tests := []struct {
		name       string
		current    string
		body       string
		wantStatus int
	}{
		{"complete pending", domain.BookingPending, `{"status":"Completed"}`, http.StatusOK},
		{"cancel in progress", domain.BookingInProgress, `{"status":"Cancelled"}`, http.StatusOK},
		{"terminal booking", domain.BookingCancelled, `{"status":"Completed"}`, http.StatusConflict},
		{"unknown status", domain.BookingPending, `{"status":"Archived"}`, http.StatusBadRequest},
		{"missing status", domain.BookingPending, `{}`, http.StatusBadRequest},
		{"malformed body", domain.BookingPending, `{`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockRepo(domain.Booking{ID: "B1003", Status: tt.current})
			r := setupAPIRouter(repo)

			req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/B1003/status", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantStatus != http.StatusOK {
				if repo.bookings["B1003"].Status != tt.current {
					t.Errorf("status changed on failed request")
				}
				return
			}

			var resp pkg.Response
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			data, _ := resp.Data.(map[string]any)
			if data["status"] != repo.bookings["B1003"].Status {
				t.Errorf("response status %v does not match stored %q", data["status"], repo.bookings["B1003"].Status)
			}
		})
	}
}

func TestBookingHandler_ChangeStatus_FieldErrors(t *testing.T) {
	r := setupAPIRouter(newMockRepo(domain.Booking{ID: "B1003", Status: domain.BookingPending}))

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/bookings/B1003/status", strings.NewReader(`{"status":"Archived"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp pkg.ValidationErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if _, ok := resp.Errors["status"]; !ok {
		t.Errorf("expected 'status' field error, got %v", resp.Errors)
	}
}
