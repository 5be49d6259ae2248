package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/interviewly/interview-server-go/internal/errors"
)

func TestIssueAndResolve(t *testing.T) {
	issuer := NewIssuer("test-secret", 30*time.Minute)

	t.Run("resolves its own token to the subject", func(t *testing.T) {
		tok, err := issuer.Issue("alice@example.com")
		require.NoError(t, err)

		email, err := issuer.Resolve(tok)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", email)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		expired := NewIssuer("test-secret", -time.Minute)
		tok, err := expired.Issue("alice@example.com")
		require.NoError(t, err)

		_, err = issuer.Resolve(tok)
		assert.Equal(t, apperrors.ErrCodeTokenExpired, apperrors.GetCode(err))
	})

	t.Run("rejects token signed with another secret", func(t *testing.T) {
		other := NewIssuer("other-secret", 30*time.Minute)
		tok, err := other.Issue("alice@example.com")
		require.NoError(t, err)

		_, err = issuer.Resolve(tok)
		assert.Equal(t, apperrors.ErrCodeInvalidToken, apperrors.GetCode(err))
	})

	t.Run("rejects token with empty subject", func(t *testing.T) {
		tok, err := issuer.Issue("")
		require.NoError(t, err)

		_, err = issuer.Resolve(tok)
		assert.Equal(t, apperrors.ErrCodeInvalidToken, apperrors.GetCode(err))
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := issuer.Resolve("not-a-token")
		assert.Equal(t, apperrors.ErrCodeInvalidToken, apperrors.GetCode(err))
	})
}
