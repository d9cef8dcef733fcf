package middleware

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/simp-lee/logger"

	"github.com/simp-lee/svcadmin/internal/domain"
	"github.com/simp-lee/svcadmin/internal/pkg"
)

const (
	adminIDContextKey     = "admin_id"
	accessTokenContextKey = "access_token"
)

// TokenParser verifies bearer tokens.
type TokenParser interface {
	Parse(raw string) (*pkg.Claims, error)
}

// Auth returns a gin middleware that requires a valid "Authorization: Bearer"
// token on every request whose path is not listed in publicPaths. Revoked
// tokens are refused. The admin identity is stored in the gin.Context and
// attached to the log context.
func Auth(tokens TokenParser, publicPaths []string) gin.HandlerFunc {
	public := make(map[string]struct{}, len(publicPaths))
	for _, p := range publicPaths {
		public[p] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := public[c.Request.URL.Path]; ok || c.Request.Method == "OPTIONS" {
			c.Next()
			return
		}

		raw, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			abortWithError(c, domain.NewAppError(domain.CodeUnauthorized, "missing bearer token", nil))
			return
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			abortWithError(c, err)
			return
		}
		adminID, err := claims.AdminID()
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(adminIDContextKey, adminID)
		c.Set(accessTokenContextKey, raw)

		ctx := logger.WithContextAttrs(c.Request.Context(), slog.Uint64("admin_id", uint64(adminID)))
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// AdminID returns the authenticated admin's ID, if Auth accepted the request.
func AdminID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(adminIDContextKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// AccessToken returns the bearer token Auth accepted for the request.
func AccessToken(c *gin.Context) (string, bool) {
	v, ok := c.Get(accessTokenContextKey)
	if !ok {
		return "", false
	}
	raw, ok := v.(string)
	return raw, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func abortWithError(c *gin.Context, err error) {
	pkg.Error(c, err)
	c.Abort()
}
