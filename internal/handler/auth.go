package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/interviewly/interview-server-go/internal/errors"
	"github.com/interviewly/interview-server-go/internal/httputil"
	"github.com/interviewly/interview-server-go/internal/middleware"
	"github.com/interviewly/interview-server-go/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
	validate    *validator.Validate
	requireAuth func(http.Handler) http.Handler
}

func NewAuthHandler(
	authService *service.AuthService,
	validate *validator.Validate,
	requireAuth func(http.Handler) http.Handler,
) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validate,
		requireAuth: requireAuth,
	}
}

func (h *AuthHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.Register)
	r.Post("/token", h.Token)
	r.With(h.requireAuth).Get("/me", h.Me)

	return r
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.WriteError(w, apperrors.ValidationError("Malformed request body"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httputil.WriteError(w, apperrors.ValidationError(err.Error()))
		return
	}

	if err := h.authService.Register(r.Context(), req.Email, req.Password); err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "User registered successfully",
	})
}

// Token exchanges form-encoded credentials (username=email) for a bearer
// token.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httputil.WriteError(w, apperrors.ValidationError("Malformed form body"))
		return
	}

	email := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		httputil.WriteError(w, apperrors.MissingRequired("username and password"))
		return
	}

	tokenStr, err := h.authService.Login(r.Context(), email, password)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, TokenResponse{
		AccessToken: tokenStr,
		TokenType:   "bearer",
	})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"email": middleware.GetUserEmail(r.Context()),
	})
}
