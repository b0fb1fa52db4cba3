package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenManager_IssueVerify(t *testing.T) {
	t.Parallel()

	tokens := NewTokenManager(AuthConfig{Secret: "test-secret", TokenTTL: time.Minute})

	token, err := tokens.Issue("12345")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	accountID, err := tokens.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "12345", accountID)
}

func TestTokenManager_Verify_Failures(t *testing.T) {
	t.Parallel()

	tokens := NewTokenManager(AuthConfig{Secret: "test-secret", TokenTTL: time.Minute})

	t.Run("garbage token", func(t *testing.T) {
		t.Parallel()

		_, err := tokens.Verify("not.a.token")
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		t.Parallel()

		other := NewTokenManager(AuthConfig{Secret: "different-secret", TokenTTL: time.Minute})
		token, err := other.Issue("12345")
		require.NoError(t, err)

		_, err = tokens.Verify(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		t.Parallel()

		expired := NewTokenManager(AuthConfig{Secret: "test-secret", TokenTTL: -time.Minute})
		token, err := expired.Issue("12345")
		require.NoError(t, err)

		_, err = tokens.Verify(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestAuthMiddleware(t *testing.T) {
	t.Parallel()

	tokens := NewTokenManager(AuthConfig{Secret: "test-secret", TokenTTL: time.Minute})

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		accountID, ok := accountIDFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, "12345", accountID)
		w.WriteHeader(http.StatusOK)
	})

	handler := authMiddleware(tokens, next)

	t.Run("valid bearer token reaches the handler", func(t *testing.T) {
		t.Parallel()

		token, err := tokens.Issue("12345")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/balance", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/balance", nil)
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/balance", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
