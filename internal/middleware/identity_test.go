package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/tickdesk/tickdesk/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubValidator struct {
	identity models.Identity
	err      error
}

func (s stubValidator) IdentityFromToken(token string) (models.Identity, error) {
	return s.identity, s.err
}

func identityProbe(v TokenValidator, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append([]gin.HandlerFunc{ResolveIdentity(v)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, CurrentIdentity(c))
	})
	r.GET("/probe", handlers...)
	return r
}

func TestResolveIdentity(t *testing.T) {
	t.Run("NoHeaderResolvesGuest", func(t *testing.T) {
		r := identityProbe(stubValidator{identity: models.Identity{Username: "alice", Role: "user"}})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"username":"guest"`)
	})

	t.Run("ValidTokenResolvesIdentity", func(t *testing.T) {
		r := identityProbe(stubValidator{identity: models.Identity{Username: "alice", Role: "user"}})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer some-token")
		r.ServeHTTP(w, req)

		assert.Contains(t, w.Body.String(), `"username":"alice"`)
	})

	t.Run("InvalidTokenFallsBackToGuest", func(t *testing.T) {
		r := identityProbe(stubValidator{err: errors.New("bad token")})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer expired")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"username":"guest"`)
	})
}

func TestRequireAuthenticated(t *testing.T) {
	t.Run("GuestBlocked", func(t *testing.T) {
		r := identityProbe(stubValidator{err: errors.New("nope")}, RequireAuthenticated())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("UserPasses", func(t *testing.T) {
		r := identityProbe(stubValidator{identity: models.Identity{Username: "bob", Role: "user"}}, RequireAuthenticated())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer token")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	t.Run("UserBlocked", func(t *testing.T) {
		r := identityProbe(stubValidator{identity: models.Identity{Username: "bob", Role: "user"}}, RequireAdmin())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer token")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("AdminPasses", func(t *testing.T) {
		r := identityProbe(stubValidator{identity: models.Identity{Username: "root", Role: "admin"}}, RequireAdmin())

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/probe", nil)
		req.Header.Set("Authorization", "Bearer token")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}
