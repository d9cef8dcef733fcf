package booking

// ChangeStatusRequest is the body of PATCH /bookings/:id/status.
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
