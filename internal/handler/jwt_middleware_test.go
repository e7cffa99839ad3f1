package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "secreto-de-prueba"

func signToken(t *testing.T, sub, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  sub,
		"role": role,
	})
	s, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func protectedRouter() *chi.Mux {
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(JWTAuth(testSecret))
		r.Use(AdminOnly())
		r.Get("/admin/ping", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(UserIDFromContext(r.Context())))
		})
	})
	return r
}

func TestJWTAuthMissingHeader(t *testing.T) {
	rec := httptest.NewRecorder()
	protectedRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/ping", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthInvalidToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer no-es-un-jwt")

	rec := httptest.NewRecorder()
	protectedRouter().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthNonAdmin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u1", "user"))

	rec := httptest.NewRecorder()
	protectedRouter().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestJWTAuthAdminOK(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "admin-1", "admin"))

	rec := httptest.NewRecorder()
	protectedRouter().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin-1", rec.Body.String())
}
