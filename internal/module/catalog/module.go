package catalog

import "github.com/gin-gonic/gin"

// CatalogModule implements the app.Module interface for the service catalog.
type CatalogModule struct {
	handler *ServiceHandler
}

// NewModule creates a new CatalogModule. Panics if h is nil.
func NewModule(h *ServiceHandler) *CatalogModule {
	if h == nil {
		panic("catalog.NewModule: handler must not be nil")
	}
	return &CatalogModule{handler: h}
}

// RegisterRoutes registers service catalog API routes.
func (m *CatalogModule) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/services", m.handler.List)
	api.GET("/services/:id", m.handler.Get)
	api.PATCH("/services/:id/featured", m.handler.SetFeatured)
	api.PATCH("/services/:id/status", m.handler.SetStatus)
	api.DELETE("/services/:id", m.handler.Delete)
}
