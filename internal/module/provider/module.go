package provider

import "github.com/gin-gonic/gin"

// ProviderModule implements the app.Module interface for providers.
type ProviderModule struct {
	handler *ProviderHandler
}

// NewModule creates a new ProviderModule. Panics if h is nil.
func NewModule(h *ProviderHandler) *ProviderModule {
	if h == nil {
		panic("provider.NewModule: handler must not be nil")
	}
	return &ProviderModule{handler: h}
}

// RegisterRoutes registers provider API routes.
func (m *ProviderModule) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/providers", m.handler.List)
	api.GET("/providers/:id", m.handler.Get)
	api.PATCH("/providers/:id/verify", m.handler.Verify)
	api.PATCH("/providers/:id/unverify", m.handler.Unverify)
}
