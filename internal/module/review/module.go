package review

import "github.com/gin-gonic/gin"

// ReviewModule implements the app.Module interface for reviews.
type ReviewModule struct {
	handler *ReviewHandler
}

// NewModule creates a new ReviewModule. Panics if h is nil.
func NewModule(h *ReviewHandler) *ReviewModule {
	if h == nil {
		panic("review.NewModule: handler must not be nil")
	}
	return &ReviewModule{handler: h}
}

// RegisterRoutes registers review API routes.
func (m *ReviewModule) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/reviews", m.handler.List)
	api.DELETE("/reviews/:id", m.handler.Delete)
}
