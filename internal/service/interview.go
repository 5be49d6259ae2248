package service

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/bson"

	apperrors "github.com/interviewly/interview-server-go/internal/errors"
	"github.com/interviewly/interview-server-go/internal/model"
	"github.com/interviewly/interview-server-go/internal/repository"
)

// QuestionGenerator produces an ordered list of interview questions for a job
// description.
type QuestionGenerator interface {
	GenerateQuestions(ctx context.Context, jobDescription string, difficulty model.Difficulty, count int) ([]string, error)
}

// MediaStore persists an uploaded byte stream and returns a durable URL.
type MediaStore interface {
	Store(ctx context.Context, body io.Reader, userID string) (string, error)
}

// VideoAnalyzer scores a stored interview video against the session's
// questions.
type VideoAnalyzer interface {
	AnalyzeVideo(ctx context.Context, videoURL, jobDescription string, questions []string) (*model.AnalyticsReport, error)
}

type InterviewService struct {
	sessionRepo repository.SessionRepository
	generator   QuestionGenerator
	media       MediaStore
	analyzer    VideoAnalyzer
}

func NewInterviewService(
	sessionRepo repository.SessionRepository,
	generator QuestionGenerator,
	media MediaStore,
	analyzer VideoAnalyzer,
) *InterviewService {
	return &InterviewService{
		sessionRepo: sessionRepo,
		generator:   generator,
		media:       media,
		analyzer:    analyzer,
	}
}

type GenerateParams struct {
	JobDescription string
	Difficulty     model.Difficulty
	NumQuestions   int
}

// GenerateQuestions asks the generator for questions and, only on success,
// persists a new pending session. A generation failure leaves no partial
// state behind.
func (s *InterviewService) GenerateQuestions(ctx context.Context, userID string, params GenerateParams) ([]string, string, error) {
	questions, err := s.generator.GenerateQuestions(ctx, params.JobDescription, params.Difficulty, params.NumQuestions)
	if err != nil {
		return nil, "", err
	}

	sessionID, err := s.sessionRepo.Create(ctx, &model.InterviewSession{
		UserID:         userID,
		JobDescription: params.JobDescription,
		Difficulty:     params.Difficulty,
		NumQuestions:   params.NumQuestions,
		Questions:      questions,
	})
	if err != nil {
		return nil, "", apperrors.Database(err)
	}

	log.Info().Str("user_id", userID).Str("session_id", sessionID).Msg("interview session created")
	return questions, sessionID, nil
}

// UploadAndAnalyze stores the video, locates the user's latest pending
// session, runs the analysis, and attaches both results to the session. The
// upload happens before the pending-session lookup, so storage cost is paid
// even when no session exists; that ordering is part of the contract.
func (s *InterviewService) UploadAndAnalyze(ctx context.Context, userID string, file io.Reader) (string, *model.AnalyticsReport, error) {
	videoURL, err := s.media.Store(ctx, file, userID)
	if err != nil {
		return "", nil, err
	}

	session, err := s.sessionRepo.FindLatestPendingByUser(ctx, userID)
	if err != nil {
		return "", nil, apperrors.Database(err)
	}
	if session == nil {
		return "", nil, apperrors.NoPendingSession()
	}
	if len(session.Questions) == 0 {
		return "", nil, apperrors.NoQuestions()
	}

	analytics, err := s.analyzer.AnalyzeVideo(ctx, videoURL, session.JobDescription, session.Questions)
	if err != nil {
		return "", nil, err
	}

	matched, err := s.sessionRepo.AttachAnalysis(ctx, session.ID, videoURL, analytics)
	if err != nil {
		return "", nil, apperrors.Database(err)
	}
	if !matched {
		// A concurrent upload claimed this session between the lookup and the
		// update.
		return "", nil, apperrors.NoPendingSession()
	}

	log.Info().Str("user_id", userID).Str("session_id", session.ID.Hex()).Msg("video uploaded and analyzed")
	return videoURL, analytics, nil
}

// SessionView is the dashboard projection of a session.
type SessionView struct {
	SessionID      string                 `json:"session_id"`
	JobDescription string                 `json:"job_description"`
	Difficulty     model.Difficulty       `json:"difficulty"`
	NumQuestions   int                    `json:"num_questions"`
	Questions      []string               `json:"questions"`
	VideoURL       *string                `json:"video_url"`
	Analytics      *model.AnalyticsReport `json:"analytics"`
	CreatedAt      string                 `json:"created_at"`
}

// Dashboard returns all of the user's sessions, newest first. Zero sessions is
// an empty list, not an error.
func (s *InterviewService) Dashboard(ctx context.Context, userID string) ([]SessionView, error) {
	sessions, err := s.sessionRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Database(err)
	}

	views := make([]SessionView, len(sessions))
	for i, session := range sessions {
		views[i] = SessionView{
			SessionID:      session.ID.Hex(),
			JobDescription: session.JobDescription,
			Difficulty:     session.Difficulty,
			NumQuestions:   session.NumQuestions,
			Questions:      session.Questions,
			VideoURL:       session.VideoURL,
			Analytics:      session.Analytics,
			CreatedAt:      sessionCreatedAt(session.ID),
		}
	}

	return views, nil
}

// sessionCreatedAt derives the creation time from the ObjectID's embedded
// timestamp.
func sessionCreatedAt(id bson.ObjectID) string {
	return id.Timestamp().UTC().Format(time.RFC3339)
}
