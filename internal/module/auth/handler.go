package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/svcadmin/internal/domain"
	"github.com/simp-lee/svcadmin/internal/middleware"
	"github.com/simp-lee/svcadmin/internal/pkg"
)

// AuthHandler handles REST API requests for authentication.
type AuthHandler struct {
	svc Service
}

// NewHandler creates a new AuthHandler with the given service.
func NewHandler(svc Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	tokenResp, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, tokenResp)
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	admin, err := h.svc.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, pkg.Response{
		Code:    http.StatusCreated,
		Message: "admin registered successfully",
		Data:    toAdminResponse(admin),
	})
}

// Me handles GET /api/v1/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	id, ok := middleware.AdminID(c)
	if !ok {
		pkg.Error(c, domain.NewAppError(domain.CodeUnauthorized, "not authenticated", nil))
		return
	}

	admin, err := h.svc.Me(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, toAdminResponse(admin))
}

// Logout handles POST /api/v1/auth/logout. The presented token stops working.
func (h *AuthHandler) Logout(c *gin.Context) {
	token, ok := middleware.AccessToken(c)
	if !ok {
		pkg.Error(c, domain.NewAppError(domain.CodeUnauthorized, "not authenticated", nil))
		return
	}

	if err := h.svc.Logout(c.Request.Context(), token); err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, nil)
}

func toAdminResponse(admin *domain.Admin) AdminResponse {
	return AdminResponse{
		ID:        admin.ID,
		Name:      admin.Name,
		Email:     admin.Email,
		CreatedAt: admin.CreatedAt,
	}
}
