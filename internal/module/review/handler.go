package review

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/svcadmin/internal/domain"
	"github.com/simp-lee/svcadmin/internal/pkg"
)

// ReviewHandler handles REST API requests for the review resource.
type ReviewHandler struct {
	svc domain.ReviewService
}

// NewReviewHandler creates a new ReviewHandler with the given service.
func NewReviewHandler(svc domain.ReviewService) *ReviewHandler {
	return &ReviewHandler{svc: svc}
}

// List handles GET /api/v1/reviews. The full collection is returned as a
// plain array.
func (h *ReviewHandler) List(c *gin.Context) {
	reviews, err := h.svc.ListReviews(c.Request.Context(), map[string]string{
		"rating": c.Query("rating"),
	})
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.List(c, reviews)
}

// Delete handles DELETE /api/v1/reviews/:id.
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, err := pkg.ParseID(c, "id")
	if err != nil {
		pkg.Error(c, err)
		return
	}

	if err := h.svc.DeleteReview(c.Request.Context(), id); err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, nil)
}
