package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRequireAuthRejectsWithoutCredential(t *testing.T) {
	mw := NewMiddleware(NewAuthService(&stubValidator{}), zap.NewNop())

	handler := mw.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not be reached")
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodGet, "/api/catalogue/furnishers", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "unauthorized")
}

func TestRequireAuthInjectsClaims(t *testing.T) {
	mw := NewMiddleware(NewAuthService(&stubValidator{claims: &Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
	}}), zap.NewNop())

	var seenSubject, seenToken string
	handler := mw.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetClaims(r.Context())
		require.True(t, ok)
		seenSubject = claims.Subject
		seenToken, _ = GetToken(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	r := httptest.NewRequest(http.MethodGet, "/api/catalogue/furnishers", nil)
	r.Header.Set("Authorization", "Bearer the-token")
	w := httptest.NewRecorder()
	handler(w, r)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "user-1", seenSubject)
	assert.Equal(t, "the-token", seenToken)
}

func TestGetUserFromContextUnauthenticated(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, "", GetUserFromContext(r.Context()))
}
