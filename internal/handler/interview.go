package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/interviewly/interview-server-go/internal/config"
	apperrors "github.com/interviewly/interview-server-go/internal/errors"
	"github.com/interviewly/interview-server-go/internal/httputil"
	"github.com/interviewly/interview-server-go/internal/middleware"
	"github.com/interviewly/interview-server-go/internal/service"
)

type InterviewHandler struct {
	interviewService *service.InterviewService
	validate         *validator.Validate
}

func NewInterviewHandler(interviewService *service.InterviewService, validate *validator.Validate) *InterviewHandler {
	return &InterviewHandler{
		interviewService: interviewService,
		validate:         validate,
	}
}

func (h *InterviewHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/generate-questions", h.GenerateQuestions)
	r.Post("/upload-video", h.UploadVideo)
	r.Get("/dashboard", h.Dashboard)

	return r
}

func (h *InterviewHandler) GenerateQuestions(w http.ResponseWriter, r *http.Request) {
	var req GenerateQuestionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, apperrors.ValidationError("Malformed request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httputil.WriteError(w, apperrors.ValidationError(err.Error()))
		return
	}
	if req.NumQuestions < config.MinQuestions || req.NumQuestions > config.MaxQuestions {
		httputil.WriteError(w, apperrors.InvalidInput("num_questions",
			fmt.Sprintf("must be between %d and %d", config.MinQuestions, config.MaxQuestions)))
		return
	}

	user := middleware.GetUserEmail(r.Context())

	questions, sessionID, err := h.interviewService.GenerateQuestions(r.Context(), user, service.GenerateParams{
		JobDescription: req.JobDescription,
		Difficulty:     req.Difficulty,
		NumQuestions:   req.NumQuestions,
	})
	if err != nil {
		log.Error().Err(err).Str("user", user).Msg("generate questions failed")
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"questions":  questions,
		"session_id": sessionID,
	})
}

func (h *InterviewHandler) UploadVideo(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		httputil.WriteError(w, apperrors.MissingRequired("file"))
		return
	}
	defer file.Close()

	user := middleware.GetUserEmail(r.Context())

	videoURL, analytics, err := h.interviewService.UploadAndAnalyze(r.Context(), user, file)
	if err != nil {
		log.Error().Err(err).Str("user", user).Msg("upload video failed")
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"video_url": videoURL,
		"analytics": analytics,
	})
}

func (h *InterviewHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserEmail(r.Context())

	sessions, err := h.interviewService.Dashboard(r.Context(), user)
	if err != nil {
		log.Error().Err(err).Str("user", user).Msg("dashboard failed")
		httputil.WriteError(w, err)
		return
	}

	if len(sessions) == 0 {
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"sessions": []service.SessionView{},
			"message":  "No interview sessions found",
		})
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]any{
		"sessions": sessions,
	})
}
