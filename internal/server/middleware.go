package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/kvoice/kvoice/internal/identity"
)

// Identity headers set by the upstream authenticator. Guests get a
// device-scoped account id and the guest flag; signed-in members get
// their account id only.
const (
	HeaderAccount = "X-Account-ID"
	HeaderGuest   = "X-Guest"
)

// IdentityMiddleware resolves the acting identity from request headers
// and stores it in the request context. Requests without an account id
// are rejected before any handler runs.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		accountID := strings.TrimSpace(c.GetHeader(HeaderAccount))
		if accountID == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		id := identity.Identity{
			AccountID: accountID,
			Guest:     strings.EqualFold(c.GetHeader(HeaderGuest), "true"),
		}

		c.Request = c.Request.WithContext(identity.WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}
