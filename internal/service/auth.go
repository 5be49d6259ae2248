package service

import (
	"context"

	"github.com/rs/zerolog/log"

	apperrors "github.com/interviewly/interview-server-go/internal/errors"
	"github.com/interviewly/interview-server-go/internal/model"
	"github.com/interviewly/interview-server-go/internal/repository"
	"github.com/interviewly/interview-server-go/internal/security"
	"github.com/interviewly/interview-server-go/internal/token"
)

type AuthService struct {
	userRepo repository.UserRepository
	issuer   *token.Issuer
}

func NewAuthService(userRepo repository.UserRepository, issuer *token.Issuer) *AuthService {
	return &AuthService{userRepo: userRepo, issuer: issuer}
}

// Register stores a new user with a salted password hash. Registering an email
// twice fails on the unique index, not on a racy pre-read.
func (s *AuthService) Register(ctx context.Context, email, password string) error {
	hash, err := security.HashPassword(password)
	if err != nil {
		return apperrors.Internal("Failed to hash password").WithCause(err)
	}

	_, err = s.userRepo.Create(ctx, &model.User{Email: email, PasswordHash: hash})
	if err != nil {
		if repository.IsDuplicateKey(err) {
			return apperrors.AlreadyExists("Email")
		}
		return apperrors.Database(err)
	}

	log.Info().Str("email", email).Msg("user registered")
	return nil
}

// Login verifies the credentials and issues a bearer token whose subject is
// the user's email. Unknown emails and hash mismatches are indistinguishable
// to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", apperrors.Database(err)
	}
	if user == nil {
		return "", apperrors.Unauthorized("Invalid email or password")
	}

	ok, err := security.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return "", apperrors.Unauthorized("Invalid email or password")
	}

	tokenStr, err := s.issuer.Issue(user.Email)
	if err != nil {
		return "", apperrors.Internal("Failed to issue token").WithCause(err)
	}

	log.Info().Str("email", email).Msg("user logged in")
	return tokenStr, nil
}
