package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tickdesk/tickdesk/internal/apierrors"
	"github.com/tickdesk/tickdesk/internal/models"
)

// IdentityKey is the gin context key holding the resolved Identity.
const IdentityKey = "identity"

// TokenValidator turns a session token back into an Identity.
type TokenValidator interface {
	IdentityFromToken(token string) (models.Identity, error)
}

// ResolveIdentity reads the bearer token and stores the acting identity
// in the request context. A missing or invalid token resolves to the
// guest identity rather than an error; guest holds no elevated rights,
// so every permission check downstream fails closed.
func ResolveIdentity(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := models.Guest

		if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
			token := strings.TrimPrefix(h, "Bearer ")
			if id, err := validator.IdentityFromToken(token); err == nil {
				identity = id
			}
		}

		c.Set(IdentityKey, identity)
		c.Next()
	}
}

// CurrentIdentity returns the identity stored by ResolveIdentity,
// falling back to guest when the middleware did not run.
func CurrentIdentity(c *gin.Context) models.Identity {
	if v, ok := c.Get(IdentityKey); ok {
		if id, ok := v.(models.Identity); ok {
			return id
		}
	}
	return models.Guest
}

// RequireAuthenticated aborts with 401 unless a real (non-guest)
// identity was resolved.
func RequireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentIdentity(c) == models.Guest {
			apierrors.Error(c, apierrors.CodeUnauthorized)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin aborts with 403 unless the identity carries the admin
// role. Handlers behind it still pass the identity to the service layer,
// which re-checks; this gate just fails fast.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentIdentity(c).Role != models.RoleAdmin {
			apierrors.Error(c, apierrors.CodeForbidden)
			c.Abort()
			return
		}
		c.Next()
	}
}
