package settings

import "github.com/gin-gonic/gin"

// SettingsModule implements the app.Module interface for platform settings.
type SettingsModule struct {
	handler *SettingsHandler
}

// NewModule creates a new SettingsModule. Panics if h is nil.
func NewModule(h *SettingsHandler) *SettingsModule {
	if h == nil {
		panic("settings.NewModule: handler must not be nil")
	}
	return &SettingsModule{handler: h}
}

// RegisterRoutes registers settings API routes.
func (m *SettingsModule) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/settings", m.handler.Get)
	api.PUT("/settings", m.handler.Update)
}
