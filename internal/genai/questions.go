package genai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	apperrors "github.com/interviewly/interview-server-go/internal/errors"
	"github.com/interviewly/interview-server-go/internal/model"
)

const questionPromptTemplate = `Generate %d interview questions for a %s role at %s difficulty.
Always include a mix of technical and behavioral questions.
Each question should be clear and concise, suitable for a professional interview setting.
The questions should be relevant to the job description provided.
Format the output as a JSON array of question strings and return valid JSON. Format is:
[
    "Question text",
    "Question text"
]`

// GenerateQuestions asks the model for count interview questions. A
// transport-level failure is retried once; a malformed response is not.
func (c *Client) GenerateQuestions(ctx context.Context, jobDescription string, difficulty model.Difficulty, count int) ([]string, error) {
	prompt := fmt.Sprintf(questionPromptTemplate, count, jobDescription, difficulty)

	raw, err := c.generateWithRetry(ctx, prompt)
	if err != nil {
		return nil, apperrors.GenerationFailed(err)
	}

	questions, err := parseQuestionList(raw)
	if err != nil {
		log.Error().Err(err).Msg("unparsable question generation response")
		return nil, err
	}

	log.Info().Int("count", len(questions)).Str("difficulty", string(difficulty)).Msg("questions generated")
	return questions, nil
}

func (c *Client) generateWithRetry(ctx context.Context, prompt string) (string, error) {
	raw, err := c.generate(ctx, textPart(prompt))
	if err == nil || !shouldRetryGeneration(ctx, err) {
		return raw, err
	}

	log.Warn().Err(err).Msg("question generation failed, retrying once")
	return c.generate(ctx, textPart(prompt))
}

// shouldRetryGeneration admits one retry for transport-level failures only. A
// response that arrived but carried no candidates will not improve on a
// resubmit, and a done context means the caller has already given up.
func shouldRetryGeneration(ctx context.Context, err error) bool {
	return ctx.Err() == nil && !errors.Is(err, errNoCandidates)
}

// parseQuestionList strips an optional code fence and decodes a JSON array of
// question strings.
func parseQuestionList(raw string) ([]string, error) {
	cleaned := stripCodeFence(raw)

	var questions []string
	if err := json.Unmarshal([]byte(cleaned), &questions); err != nil {
		return nil, apperrors.UpstreamFormat("Question generation response is not a JSON list").WithCause(err)
	}

	return questions, nil
}
