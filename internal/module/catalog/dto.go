package catalog

// FeaturedRequest is the body of PATCH /services/:id/featured.
type FeaturedRequest struct {
	Featured *bool `json:"featured" binding:"required"`
}

// StatusRequest is the body of PATCH /services/:id/status.
type StatusRequest struct {
	Active *bool `json:"active" binding:"required"`
}
