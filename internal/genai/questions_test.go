package genai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/interviewly/interview-server-go/internal/errors"
)

func TestParseQuestionList(t *testing.T) {
	t.Run("parses plain JSON array", func(t *testing.T) {
		questions, err := parseQuestionList(`["What is a goroutine?", "Describe a conflict you resolved."]`)
		require.NoError(t, err)
		assert.Equal(t, []string{"What is a goroutine?", "Describe a conflict you resolved."}, questions)
	})

	t.Run("parses fenced JSON array", func(t *testing.T) {
		questions, err := parseQuestionList("```json\n[\"Q1\", \"Q2\", \"Q3\"]\n```")
		require.NoError(t, err)
		assert.Len(t, questions, 3)
	})

	t.Run("rejects non-list response", func(t *testing.T) {
		_, err := parseQuestionList(`{"questions": ["Q1"]}`)
		assert.Equal(t, apperrors.ErrCodeUpstreamFormat, apperrors.GetCode(err))
	})

	t.Run("rejects free text", func(t *testing.T) {
		_, err := parseQuestionList("Here are your questions: 1. ...")
		assert.Equal(t, apperrors.ErrCodeUpstreamFormat, apperrors.GetCode(err))
	})
}

func TestShouldRetryGeneration(t *testing.T) {
	t.Run("retries transport failures", func(t *testing.T) {
		assert.True(t, shouldRetryGeneration(context.Background(), errors.New("connection reset by peer")))
	})

	t.Run("does not retry an empty-candidate reply", func(t *testing.T) {
		assert.False(t, shouldRetryGeneration(context.Background(), errNoCandidates))
	})

	t.Run("does not retry once the context is done", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.False(t, shouldRetryGeneration(ctx, errors.New("connection reset by peer")))
	})
}
