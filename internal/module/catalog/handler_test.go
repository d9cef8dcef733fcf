package catalog

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func setupAPIRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewModule(NewServiceHandler(newTestService(t))).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func TestServiceHandler(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
	}{
		{"list", http.MethodGet, "/api/v1/services?featured=true", "", http.StatusOK},
		{"get", http.MethodGet, "/api/v1/services/1", "", http.StatusOK},
		{"get missing", http.MethodGet, "/api/v1/services/9", "", http.StatusNotFound},
		{"feature", http.MethodPatch, "/api/v1/services/2/featured", `{"featured":true}`, http.StatusOK},
		{"unfeature", http.MethodPatch, "/api/v1/services/1/featured", `{"featured":false}`, http.StatusOK},
		{"feature without body field", http.MethodPatch, "/api/v1/services/1/featured", `{}`, http.StatusBadRequest},
		{"deactivate", http.MethodPatch, "/api/v1/services/1/status", `{"active":false}`, http.StatusOK},
		{"status bad id", http.MethodPatch, "/api/v1/services/0/status", `{"active":true}`, http.StatusBadRequest},
		{"delete", http.MethodDelete, "/api/v1/services/3", "", http.StatusOK},
		{"delete missing", http.MethodDelete, "/api/v1/services/30", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupAPIRouter(t)
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			if tt.body != "" {
				req.Header.Set("Content-Type", "application/json")
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d: %s", tt.wantStatus, w.Code, w.Body.String())
			}
		})
	}
}
