package booking

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/svcadmin/internal/domain"
	"github.com/simp-lee/svcadmin/internal/pkg"
)

// BookingHandler handles REST API requests for the booking resource.
type BookingHandler struct {
	svc domain.BookingService
}

// NewBookingHandler creates a new BookingHandler with the given service.
func NewBookingHandler(svc domain.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

// List handles GET /api/v1/bookings.
func (h *BookingHandler) List(c *gin.Context) {
	result, err := h.svc.ListBookings(c.Request.Context(), pkg.ParsePageRequest(c))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.List(c, result)
}

// Get handles GET /api/v1/bookings/:id.
func (h *BookingHandler) Get(c *gin.Context) {
	booking, err := h.svc.GetBooking(c.Request.Context(), c.Param("id"))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, booking)
}

// ChangeStatus handles PATCH /api/v1/bookings/:id/status.
func (h *BookingHandler) ChangeStatus(c *gin.Context) {
	var req ChangeStatusRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	booking, err := h.svc.ChangeStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, booking)
}
