package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	apperrors "github.com/interviewly/interview-server-go/internal/errors"
)

// Issuer mints and resolves stateless HS256 bearer tokens. There is no
// server-side revocation: a token stays valid until its expiry.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token whose subject is the user's email, expiring ttl from now.
func (i *Issuer) Issue(email string) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   email,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(i.ttl)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}

	tokenStr, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return tokenStr, nil
}

// Resolve validates the token and returns its subject email. A token with a
// bad signature, an elapsed expiry, or an empty subject is rejected.
func (i *Issuer) Resolve(tokenStr string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	parsed, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	},
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", apperrors.TokenExpired()
		}
		return "", apperrors.InvalidToken("Could not validate credentials").WithCause(err)
	}

	if !parsed.Valid || claims.Subject == "" {
		return "", apperrors.InvalidToken("Could not validate credentials")
	}

	return claims.Subject, nil
}
