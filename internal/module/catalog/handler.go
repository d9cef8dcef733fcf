package catalog

import (
	"github.com/gin-gonic/gin"

	"github.com/simp-lee/svcadmin/internal/domain"
	"github.com/simp-lee/svcadmin/internal/pkg"
)

// ServiceHandler handles REST API requests for the service catalog.
type ServiceHandler struct {
	svc domain.CatalogService
}

// NewServiceHandler creates a new ServiceHandler with the given service.
func NewServiceHandler(svc domain.CatalogService) *ServiceHandler {
	return &ServiceHandler{svc: svc}
}

// List handles GET /api/v1/services.
func (h *ServiceHandler) List(c *gin.Context) {
	result, err := h.svc.ListServices(c.Request.Context(), pkg.ParsePageRequest(c))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.List(c, result)
}

// Get handles GET /api/v1/services/:id.
func (h *ServiceHandler) Get(c *gin.Context) {
	id, err := pkg.ParseID(c, "id")
	if err != nil {
		pkg.Error(c, err)
		return
	}

	service, err := h.svc.GetService(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, service)
}

// SetFeatured handles PATCH /api/v1/services/:id/featured.
func (h *ServiceHandler) SetFeatured(c *gin.Context) {
	id, err := pkg.ParseID(c, "id")
	if err != nil {
		pkg.Error(c, err)
		return
	}

	var req FeaturedRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	service, err := h.svc.SetFeatured(c.Request.Context(), id, *req.Featured)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, service)
}

// SetStatus handles PATCH /api/v1/services/:id/status.
func (h *ServiceHandler) SetStatus(c *gin.Context) {
	id, err := pkg.ParseID(c, "id")
	if err != nil {
		pkg.Error(c, err)
		return
	}

	var req StatusRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	service, err := h.svc.SetActive(c.Request.Context(), id, *req.Active)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, service)
}

// Delete handles DELETE /api/v1/services/:id.
func (h *ServiceHandler) Delete(c *gin.Context) {
	id, err := pkg.ParseID(c, "id")
	if err != nil {
		pkg.Error(c, err)
		return
	}

	if err := h.svc.DeleteService(c.Request.Context(), id); err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, nil)
}
