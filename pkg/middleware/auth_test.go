package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/fintrack/backend/go-services/internal/tokens"
)

// fakeVerifier implements Verifier
type fakeVerifier struct {
	verified int
}

func (f *fakeVerifier) Verify(ctx context.Context, raw string) (*tokens.Identity, error) {
	f.verified++
	switch raw {
	case "goodtoken":
		return &tokens.Identity{UserID: 1, Email: "test@example.com"}, nil
	case "expiredtoken":
		return nil, tokens.ErrTokenExpired
	}
	return nil, fmt.Errorf("%w: bad signature", tokens.ErrTokenInvalid)
}

func protectedRouter(ver Verifier) *gin.Engine {
	g := gin.New()
	g.GET("/", AuthMiddleware(ver), func(c *gin.Context) {
		ident, ok := IdentityFrom(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": ident.UserID, "email": ident.Email})
	})
	return g
}

func TestAuthMiddleware_NoHeader(t *testing.T) {
	ver := &fakeVerifier{}
	g := protectedRouter(ver)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rw := httptest.NewRecorder()

	g.ServeHTTP(rw, req)

	require.Equal(t, http.StatusUnauthorized, rw.Code)
	// rejected before any verification work
	require.Zero(t, ver.verified)
}

func TestAuthMiddleware_MalformedHeader(t *testing.T) {
	for _, header := range []string{"BadHeader", "Bearer", "Bearer ", "Basic abc"} {
		ver := &fakeVerifier{}
		g := protectedRouter(ver)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)
		rw := httptest.NewRecorder()

		g.ServeHTTP(rw, req)

		require.Equal(t, http.StatusUnauthorized, rw.Code, "header %q", header)
		require.Zero(t, ver.verified, "header %q should fail before verification", header)
	}
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	g := protectedRouter(&fakeVerifier{})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer goodtoken")
	rw := httptest.NewRecorder()

	g.ServeHTTP(rw, req)

	require.Equal(t, http.StatusOK, rw.Code)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(rw.Body.Bytes(), &got))
	require.Equal(t, float64(1), got["userId"])
	require.Equal(t, "test@example.com", got["email"])
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	g := protectedRouter(&fakeVerifier{})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer expiredtoken")
	rw := httptest.NewRecorder()

	g.ServeHTTP(rw, req)

	require.Equal(t, http.StatusForbidden, rw.Code)
	require.Contains(t, rw.Body.String(), "token expired")
}

func hintedRouter(ver Verifier) *gin.Engine {
	g := gin.New()
	g.GET("/", IdentityHint(ver), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"key": limiterKey(c)})
	})
	return g
}

func TestIdentityHint_ValidToken(t *testing.T) {
	g := hintedRouter(&fakeVerifier{})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer goodtoken")
	rw := httptest.NewRecorder()

	g.ServeHTTP(rw, req)

	require.Equal(t, http.StatusOK, rw.Code)
	// authenticated traffic is limited per user, not per IP
	require.Contains(t, rw.Body.String(), "user:1")
}

func TestIdentityHint_PassesThroughAnonymous(t *testing.T) {
	for _, header := range []string{"", "Bearer ", "Bearer forgedtoken", "Bearer expiredtoken"} {
		g := hintedRouter(&fakeVerifier{})
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rw := httptest.NewRecorder()

		g.ServeHTTP(rw, req)

		require.Equal(t, http.StatusOK, rw.Code, "header %q must not be rejected", header)
		require.Contains(t, rw.Body.String(), "ip:", "header %q should fall back to the IP key", header)
	}
}

func TestAuthMiddleware_BadSignature(t *testing.T) {
	g := protectedRouter(&fakeVerifier{})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer forgedtoken")
	rw := httptest.NewRecorder()

	g.ServeHTTP(rw, req)

	require.Equal(t, http.StatusForbidden, rw.Code)
	require.Contains(t, rw.Body.String(), "invalid token")
}
