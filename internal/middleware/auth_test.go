package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/interviewly/interview-server-go/internal/token"
)

func TestAuthMiddleware(t *testing.T) {
	issuer := token.NewIssuer("test-secret", 30*time.Minute)
	mw := NewAuthMiddleware(issuer)

	var gotEmail string
	handler := mw.Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotEmail = GetUserEmail(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("passes subject through on valid token", func(t *testing.T) {
		tok, err := issuer.Issue("alice@example.com")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/interview/dashboard", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "alice@example.com", gotEmail)
	})

	t.Run("rejects missing token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/interview/dashboard", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		expired := token.NewIssuer("test-secret", -time.Minute)
		tok, err := expired.Issue("alice@example.com")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/interview/dashboard", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects token signed with another secret", func(t *testing.T) {
		other := token.NewIssuer("other-secret", 30*time.Minute)
		tok, err := other.Issue("alice@example.com")
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/interview/dashboard", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}
