package booking

import "github.com/gin-gonic/gin"

// BookingModule implements the app.Module interface for bookings.
type BookingModule struct {
	handler *BookingHandler
}

// NewModule creates a new BookingModule. Panics if h is nil.
func NewModule(h *BookingHandler) *BookingModule {
	if h == nil {
		panic("booking.NewModule: handler must not be nil")
	}
	return &BookingModule{handler: h}
}

// RegisterRoutes registers booking API routes.
func (m *BookingModule) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/bookings", m.handler.List)
	api.GET("/bookings/:id", m.handler.Get)
	api.PATCH("/bookings/:id/status", m.handler.ChangeStatus)
}
