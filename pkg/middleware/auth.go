package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fintrack/fintrack/backend/go-services/internal/tokens"
)

// IdentityKey is the gin context key holding the verified *tokens.Identity.
const IdentityKey = "identity"

// Verifier is the minimal contract the middleware depends on
type Verifier interface {
	Verify(ctx context.Context, raw string) (*tokens.Identity, error)
}

// AuthMiddleware verifies the bearer token and attaches the decoded identity
// to the request context. A missing or malformed header is rejected with 401
// before any verification work; a token that fails verification gets 403.
// Downstream handlers read the identity and never re-verify.
func AuthMiddleware(ver Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if auth == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
			return
		}
		raw, ok := strings.CutPrefix(auth, "Bearer ")
		if !ok || raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization header"})
			return
		}

		ident, err := ver.Verify(c.Request.Context(), raw)
		if err != nil {
			if errors.Is(err, tokens.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "token expired"})
				return
			}
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid token"})
			return
		}

		c.Set(IdentityKey, ident)
		c.Next()
	}
}

// IdentityHint attaches the verified identity when the request carries a
// valid bearer token and passes through otherwise. It never rejects, so it
// can sit in front of the whole router; installed ahead of the rate limiter
// it lets authenticated traffic key by user id instead of client IP.
func IdentityHint(ver Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if ok && raw != "" {
			if ident, err := ver.Verify(c.Request.Context(), raw); err == nil {
				c.Set(IdentityKey, ident)
			}
		}
		c.Next()
	}
}

// IdentityFrom extracts the verified identity set by AuthMiddleware.
func IdentityFrom(c *gin.Context) (*tokens.Identity, bool) {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return nil, false
	}
	ident, ok := v.(*tokens.Identity)
	return ident, ok
}
