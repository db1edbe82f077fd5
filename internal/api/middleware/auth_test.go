package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avoronkov/memorizer-api/internal/config"
	"github.com/avoronkov/memorizer-api/internal/service/auth"
)

func newTestJWTService(t *testing.T) auth.JWTService {
	t.Helper()
	svc, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:                   "test-secret-key-at-least-32-chars-long",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 10080,
	})
	require.NoError(t, err)
	return svc
}

func TestAuthenticate(t *testing.T) {
	jwtService := newTestJWTService(t)
	mw := NewAuthMiddleware(jwtService)
	userID := uuid.New()

	token, err := jwtService.GenerateToken(httptest.NewRequest(http.MethodGet, "/", nil).Context(), userID)
	require.NoError(t, err)

	var gotUserID uuid.UUID
	var gotOK bool
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, gotOK = GetUserID(r)
		w.WriteHeader(http.StatusOK)
	})

	t.Run("valid token", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/question", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		mw.Authenticate(next).ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, gotOK)
		assert.Equal(t, userID, gotUserID)
	})

	t.Run("missing header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/question", nil)
		w := httptest.NewRecorder()

		mw.Authenticate(next).ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/question", nil)
		r.Header.Set("Authorization", "Token "+token)
		w := httptest.NewRecorder()

		mw.Authenticate(next).ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/question", nil)
		r.Header.Set("Authorization", "Bearer not.a.token")
		w := httptest.NewRecorder()

		mw.Authenticate(next).ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("refresh token rejected on protected route", func(t *testing.T) {
		refresh, err := jwtService.GenerateRefreshToken(
			httptest.NewRequest(http.MethodGet, "/", nil).Context(), userID)
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/api/question", nil)
		r.Header.Set("Authorization", "Bearer "+refresh)
		w := httptest.NewRecorder()

		mw.Authenticate(next).ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
