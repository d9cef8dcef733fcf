package settings

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/svcadmin/internal/domain"
	"github.com/simp-lee/svcadmin/internal/pkg"
)

// SettingsHandler handles REST API requests for platform settings.
type SettingsHandler struct {
	svc domain.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler with the given service.
func NewSettingsHandler(svc domain.SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

// Get handles GET /api/v1/settings.
func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.svc.GetSettings(c.Request.Context())
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, settings)
}

// Update handles PUT /api/v1/settings.
func (h *SettingsHandler) Update(c *gin.Context) {
	var req domain.Settings
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	settings, err := h.svc.UpdateSettings(c.Request.Context(), req)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, settings)
}
