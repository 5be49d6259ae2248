package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	apperrors "github.com/interviewly/interview-server-go/internal/errors"
	"github.com/interviewly/interview-server-go/internal/httputil"
	"github.com/interviewly/interview-server-go/internal/token"
)

type contextKey string

const UserEmailContextKey contextKey = "userEmail"

// GetUserEmail returns the authenticated user's email, or "" when the request
// is unauthenticated.
func GetUserEmail(ctx context.Context) string {
	if email, ok := ctx.Value(UserEmailContextKey).(string); ok {
		return email
	}
	return ""
}

type AuthMiddleware struct {
	issuer *token.Issuer
}

func NewAuthMiddleware(issuer *token.Issuer) *AuthMiddleware {
	return &AuthMiddleware{issuer: issuer}
}

func (m *AuthMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := extractBearer(r)
		if tokenStr == "" {
			httputil.WriteError(w, apperrors.Unauthorized("Missing authentication token"))
			return
		}

		email, err := m.issuer.Resolve(tokenStr)
		if err != nil {
			log.Warn().Err(err).Msg("auth middleware: token rejected")
			httputil.WriteError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), UserEmailContextKey, email)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func extractBearer(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}
