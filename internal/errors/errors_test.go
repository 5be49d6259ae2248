package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError(t *testing.T) {
	t.Run("Error returns formatted string", func(t *testing.T) {
		err := New(ErrCodeNotFound, "User not found")
		assert.Equal(t, "NOT_FOUND: User not found", err.Error())
	})

	t.Run("Error with cause includes cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := Wrap(ErrCodeDatabase, "Database error", cause)
		assert.Contains(t, err.Error(), "DATABASE_ERROR")
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("WithCause adds cause to error", func(t *testing.T) {
		cause := errors.New("original error")
		err := New(ErrCodeInternal, "Something went wrong").WithCause(cause)
		assert.Equal(t, cause, err.Unwrap())
	})
}

func TestErrorConstructors(t *testing.T) {
	tests := []struct {
		name         string
		constructor  func() *AppError
		expectedCode ErrorCode
	}{
		{"Unauthorized", func() *AppError { return Unauthorized("test") }, ErrCodeUnauthorized},
		{"InvalidToken", func() *AppError { return InvalidToken("test") }, ErrCodeInvalidToken},
		{"TokenExpired", func() *AppError { return TokenExpired() }, ErrCodeTokenExpired},
		{"NotFound", func() *AppError { return NotFound("User") }, ErrCodeNotFound},
		{"AlreadyExists", func() *AppError { return AlreadyExists("Email") }, ErrCodeAlreadyExists},
		{"ValidationError", func() *AppError { return ValidationError("test") }, ErrCodeValidation},
		{"InvalidInput", func() *AppError { return InvalidInput("questions", "empty") }, ErrCodeInvalidInput},
		{"MissingRequired", func() *AppError { return MissingRequired("file") }, ErrCodeMissingRequired},
		{"NoPendingSession", func() *AppError { return NoPendingSession() }, ErrCodeNoPendingSession},
		{"NoQuestions", func() *AppError { return NoQuestions() }, ErrCodeNoQuestions},
		{"UpstreamFormat", func() *AppError { return UpstreamFormat("test") }, ErrCodeUpstreamFormat},
		{"Storage", func() *AppError { return Storage(errors.New("boom")) }, ErrCodeStorage},
		{"GenerationFailed", func() *AppError { return GenerationFailed(errors.New("boom")) }, ErrCodeGenerationFailed},
		{"AnalysisFailed", func() *AppError { return AnalysisFailed(errors.New("boom")) }, ErrCodeAnalysisFailed},
		{"AnalysisTimeout", func() *AppError { return AnalysisTimeout() }, ErrCodeAnalysisTimeout},
		{"RateLimitExceeded", func() *AppError { return RateLimitExceeded() }, ErrCodeRateLimitExceeded},
		{"Internal", func() *AppError { return Internal("test") }, ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectedCode, tt.constructor().Code)
		})
	}
}

func TestGetCode(t *testing.T) {
	t.Run("returns code for AppError", func(t *testing.T) {
		assert.Equal(t, ErrCodeNoPendingSession, GetCode(NoPendingSession()))
	})

	t.Run("returns internal for unknown errors", func(t *testing.T) {
		assert.Equal(t, ErrCodeInternal, GetCode(errors.New("plain")))
	})

	t.Run("unwraps nested AppError", func(t *testing.T) {
		wrapped := Wrap(ErrCodeAnalysisFailed, "Failed to analyze video", UpstreamFormat("bad json"))
		assert.Equal(t, ErrCodeAnalysisFailed, GetCode(wrapped))
	})
}
