package provider

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/svcadmin/internal/domain"
	"github.com/simp-lee/svcadmin/internal/pkg"
)

// ProviderHandler handles REST API requests for the provider resource.
type ProviderHandler struct {
	svc domain.ProviderService
}

// NewProviderHandler creates a new ProviderHandler with the given service.
func NewProviderHandler(svc domain.ProviderService) *ProviderHandler {
	return &ProviderHandler{svc: svc}
}

// List handles GET /api/v1/providers.
func (h *ProviderHandler) List(c *gin.Context) {
	result, err := h.svc.ListProviders(c.Request.Context(), pkg.ParsePageRequest(c))
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.List(c, result)
}

// Get handles GET /api/v1/providers/:id.
func (h *ProviderHandler) Get(c *gin.Context) {
	id, err := pkg.ParseID(c, "id")
	if err != nil {
		pkg.Error(c, err)
		return
	}

	provider, err := h.svc.GetProvider(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, provider)
}

// Verify handles PATCH /api/v1/providers/:id/verify.
func (h *ProviderHandler) Verify(c *gin.Context) {
	h.update(c, h.svc.Verify)
}

// Unverify handles PATCH /api/v1/providers/:id/unverify.
func (h *ProviderHandler) Unverify(c *gin.Context) {
	h.update(c, h.svc.Unverify)
}

func (h *ProviderHandler) update(c *gin.Context, op func(ctx context.Context, id uint) (*domain.Provider, error)) {
	id, err := pkg.ParseID(c, "id")
	if err != nil {
		pkg.Error(c, err)
		return
	}

	provider, err := op(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, provider)
}
