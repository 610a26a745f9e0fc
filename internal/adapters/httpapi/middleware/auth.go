package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"blogcap/internal/core/access"
	"blogcap/internal/core/errs"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	identityKey = "identity"
	tokenKey    = "sessionToken"

	UserLoginURL  = "/login"
	AdminLoginURL = "/admin/login"
)

// SessionResolver turns a bearer token into the identity it was issued for.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (access.Identity, error)
}

// SessionMiddleware attaches the caller's identity to the context. Requests
// without a usable token continue as anonymous; the Require* guards decide.
func SessionMiddleware(resolver SessionResolver, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := access.Anonymous
		if token := bearerToken(c); token != "" {
			resolved, err := resolver.Resolve(c.Request.Context(), token)
			switch {
			case err == nil:
				id = resolved
				c.Set(tokenKey, token)
			case errors.Is(err, errs.ErrUnauthenticated):
				// stale or revoked token: carry on as anonymous
			default:
				logger.Error("❌ Could not resolve session", zap.Error(err))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "could not load session"})
				return
			}
		}
		c.Set(identityKey, id)
		c.Next()
	}
}

// RequireIdentity sends anonymous callers to the user login flow.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IdentityFrom(c).Authenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "please log in", "login_url": UserLoginURL})
			return
		}
		c.Next()
	}
}

// RequireAdmin only lets admin sessions through.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := IdentityFrom(c)
		if !id.Authenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized access", "login_url": AdminLoginURL})
			return
		}
		if !access.CanViewAdminDashboard(id) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin only", "login_url": AdminLoginURL})
			return
		}
		c.Next()
	}
}

// IdentityFrom returns the identity SessionMiddleware stored, or Anonymous.
func IdentityFrom(c *gin.Context) access.Identity {
	if v, ok := c.Get(identityKey); ok {
		if id, ok := v.(access.Identity); ok {
			return id
		}
	}
	return access.Anonymous
}

// TokenFrom returns the bearer token of an authenticated request.
func TokenFrom(c *gin.Context) string {
	return c.GetString(tokenKey)
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
}
