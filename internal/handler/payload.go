package handler

import (
	"github.com/interviewly/interview-server-go/internal/model"
)

type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// NumQuestions bounds are enforced in the handler against the
// config.MinQuestions/MaxQuestions constants.
type GenerateQuestionsRequest struct {
	JobDescription string           `json:"job_description" validate:"required"`
	Difficulty     model.Difficulty `json:"difficulty"      validate:"required,oneof=easy medium hard"`
	NumQuestions   int              `json:"num_questions"   validate:"required"`
}
