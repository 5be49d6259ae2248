package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	apperrors "github.com/interviewly/interview-server-go/internal/errors"
	"github.com/interviewly/interview-server-go/internal/model"
)

// Mock repositories and collaborators

type mockSessionRepo struct {
	mock.Mock
}

func (m *mockSessionRepo) Create(ctx context.Context, session *model.InterviewSession) (string, error) {
	args := m.Called(ctx, session)
	return args.String(0), args.Error(1)
}

func (m *mockSessionRepo) FindLatestPendingByUser(ctx context.Context, userID string) (*model.InterviewSession, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.InterviewSession), args.Error(1)
}

func (m *mockSessionRepo) AttachAnalysis(ctx context.Context, id bson.ObjectID, videoURL string, analytics *model.AnalyticsReport) (bool, error) {
	args := m.Called(ctx, id, videoURL, analytics)
	return args.Bool(0), args.Error(1)
}

func (m *mockSessionRepo) ListByUser(ctx context.Context, userID string) ([]model.InterviewSession, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.InterviewSession), args.Error(1)
}

func (m *mockSessionRepo) DeleteAbandonedPending(ctx context.Context, olderThan time.Time) (int64, error) {
	args := m.Called(ctx, olderThan)
	return args.Get(0).(int64), args.Error(1)
}

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) GenerateQuestions(ctx context.Context, jobDescription string, difficulty model.Difficulty, count int) ([]string, error) {
	args := m.Called(ctx, jobDescription, difficulty, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type mockMediaStore struct {
	mock.Mock
}

func (m *mockMediaStore) Store(ctx context.Context, body io.Reader, userID string) (string, error) {
	args := m.Called(ctx, body, userID)
	return args.String(0), args.Error(1)
}

type mockAnalyzer struct {
	mock.Mock
}

func (m *mockAnalyzer) AnalyzeVideo(ctx context.Context, videoURL, jobDescription string, questions []string) (*model.AnalyticsReport, error) {
	args := m.Called(ctx, videoURL, jobDescription, questions)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AnalyticsReport), args.Error(1)
}

func newTestService() (*InterviewService, *mockSessionRepo, *mockGenerator, *mockMediaStore, *mockAnalyzer) {
	sessionRepo := new(mockSessionRepo)
	generator := new(mockGenerator)
	media := new(mockMediaStore)
	analyzer := new(mockAnalyzer)
	return NewInterviewService(sessionRepo, generator, media, analyzer), sessionRepo, generator, media, analyzer
}

func questionList(n int) []string {
	questions := make([]string, n)
	for i := range questions {
		questions[i] = "Question"
	}
	return questions
}

func TestGenerateQuestions(t *testing.T) {
	t.Run("persists session matching generated questions", func(t *testing.T) {
		for _, count := range []int{1, 5, 10} {
			svc, sessionRepo, generator, _, _ := newTestService()

			generator.On("GenerateQuestions", mock.Anything, "Backend Engineer", model.DifficultyMedium, count).
				Return(questionList(count), nil)
			sessionRepo.On("Create", mock.Anything, mock.MatchedBy(func(s *model.InterviewSession) bool {
				return s.UserID == "alice@example.com" &&
					s.NumQuestions == count &&
					len(s.Questions) == count &&
					s.VideoURL == nil &&
					s.Analytics == nil
			})).Return("session-id", nil)

			questions, sessionID, err := svc.GenerateQuestions(context.Background(), "alice@example.com", GenerateParams{
				JobDescription: "Backend Engineer",
				Difficulty:     model.DifficultyMedium,
				NumQuestions:   count,
			})

			require.NoError(t, err)
			assert.Len(t, questions, count)
			assert.Equal(t, "session-id", sessionID)
			sessionRepo.AssertExpectations(t)
		}
	})

	t.Run("persists nothing when generation fails", func(t *testing.T) {
		svc, sessionRepo, generator, _, _ := newTestService()

		generator.On("GenerateQuestions", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, apperrors.UpstreamFormat("not a list"))

		_, _, err := svc.GenerateQuestions(context.Background(), "alice@example.com", GenerateParams{
			JobDescription: "Backend Engineer",
			Difficulty:     model.DifficultyEasy,
			NumQuestions:   3,
		})

		assert.Equal(t, apperrors.ErrCodeUpstreamFormat, apperrors.GetCode(err))
		sessionRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestUploadAndAnalyze(t *testing.T) {
	file := func() io.Reader { return strings.NewReader("video-bytes") }

	t.Run("fails with no pending session after paying storage cost", func(t *testing.T) {
		svc, sessionRepo, _, media, analyzer := newTestService()

		media.On("Store", mock.Anything, mock.Anything, "alice@example.com").
			Return("https://bucket.s3.amazonaws.com/interviews/v.mp4", nil)
		sessionRepo.On("FindLatestPendingByUser", mock.Anything, "alice@example.com").
			Return(nil, nil)

		_, _, err := svc.UploadAndAnalyze(context.Background(), "alice@example.com", file())

		assert.Equal(t, apperrors.ErrCodeNoPendingSession, apperrors.GetCode(err))
		media.AssertExpectations(t)
		analyzer.AssertNotCalled(t, "AnalyzeVideo", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("fails when pending session has no questions", func(t *testing.T) {
		svc, sessionRepo, _, media, _ := newTestService()

		media.On("Store", mock.Anything, mock.Anything, "alice@example.com").
			Return("https://bucket.s3.amazonaws.com/interviews/v.mp4", nil)
		sessionRepo.On("FindLatestPendingByUser", mock.Anything, "alice@example.com").
			Return(&model.InterviewSession{ID: bson.NewObjectID(), UserID: "alice@example.com"}, nil)

		_, _, err := svc.UploadAndAnalyze(context.Background(), "alice@example.com", file())

		assert.Equal(t, apperrors.ErrCodeNoQuestions, apperrors.GetCode(err))
	})

	t.Run("surfaces storage failure without touching sessions", func(t *testing.T) {
		svc, sessionRepo, _, media, _ := newTestService()

		media.On("Store", mock.Anything, mock.Anything, "alice@example.com").
			Return("", apperrors.Storage(errors.New("s3 write failed")))

		_, _, err := svc.UploadAndAnalyze(context.Background(), "alice@example.com", file())

		assert.Equal(t, apperrors.ErrCodeStorage, apperrors.GetCode(err))
		sessionRepo.AssertNotCalled(t, "FindLatestPendingByUser", mock.Anything, mock.Anything)
	})

	t.Run("leaves session unmodified when analysis fails", func(t *testing.T) {
		svc, sessionRepo, _, media, analyzer := newTestService()

		session := &model.InterviewSession{
			ID:             bson.NewObjectID(),
			UserID:         "alice@example.com",
			JobDescription: "Backend Engineer",
			Questions:      questionList(2),
		}

		media.On("Store", mock.Anything, mock.Anything, "alice@example.com").
			Return("https://bucket.s3.amazonaws.com/interviews/v.mp4", nil)
		sessionRepo.On("FindLatestPendingByUser", mock.Anything, "alice@example.com").
			Return(session, nil)
		analyzer.On("AnalyzeVideo", mock.Anything, mock.Anything, "Backend Engineer", session.Questions).
			Return(nil, apperrors.UpstreamFormat("missing overall_score"))

		_, _, err := svc.UploadAndAnalyze(context.Background(), "alice@example.com", file())

		assert.Equal(t, apperrors.ErrCodeUpstreamFormat, apperrors.GetCode(err))
		sessionRepo.AssertNotCalled(t, "AttachAnalysis", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("reports no pending session when a concurrent upload wins the race", func(t *testing.T) {
		svc, sessionRepo, _, media, analyzer := newTestService()

		session := &model.InterviewSession{
			ID:        bson.NewObjectID(),
			UserID:    "alice@example.com",
			Questions: questionList(2),
		}
		report := &model.AnalyticsReport{OverallScore: 70}

		media.On("Store", mock.Anything, mock.Anything, "alice@example.com").
			Return("https://bucket.s3.amazonaws.com/interviews/v.mp4", nil)
		sessionRepo.On("FindLatestPendingByUser", mock.Anything, "alice@example.com").
			Return(session, nil)
		analyzer.On("AnalyzeVideo", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(report, nil)
		sessionRepo.On("AttachAnalysis", mock.Anything, session.ID, mock.Anything, report).
			Return(false, nil)

		_, _, err := svc.UploadAndAnalyze(context.Background(), "alice@example.com", file())

		assert.Equal(t, apperrors.ErrCodeNoPendingSession, apperrors.GetCode(err))
	})

	t.Run("attaches video and analytics on success", func(t *testing.T) {
		svc, sessionRepo, _, media, analyzer := newTestService()

		session := &model.InterviewSession{
			ID:             bson.NewObjectID(),
			UserID:         "alice@example.com",
			JobDescription: "Backend Engineer",
			Questions:      questionList(3),
		}
		report := &model.AnalyticsReport{OverallScore: 85}

		media.On("Store", mock.Anything, mock.Anything, "alice@example.com").
			Return("https://bucket.s3.amazonaws.com/interviews/v.mp4", nil)
		sessionRepo.On("FindLatestPendingByUser", mock.Anything, "alice@example.com").
			Return(session, nil)
		analyzer.On("AnalyzeVideo", mock.Anything, "https://bucket.s3.amazonaws.com/interviews/v.mp4", "Backend Engineer", session.Questions).
			Return(report, nil)
		sessionRepo.On("AttachAnalysis", mock.Anything, session.ID, "https://bucket.s3.amazonaws.com/interviews/v.mp4", report).
			Return(true, nil)

		videoURL, analytics, err := svc.UploadAndAnalyze(context.Background(), "alice@example.com", file())

		require.NoError(t, err)
		assert.Equal(t, "https://bucket.s3.amazonaws.com/interviews/v.mp4", videoURL)
		assert.Equal(t, report, analytics)
		sessionRepo.AssertExpectations(t)
	})
}

func TestDashboard(t *testing.T) {
	t.Run("returns empty list for user with no sessions", func(t *testing.T) {
		svc, sessionRepo, _, _, _ := newTestService()

		sessionRepo.On("ListByUser", mock.Anything, "alice@example.com").
			Return([]model.InterviewSession{}, nil)

		views, err := svc.Dashboard(context.Background(), "alice@example.com")
		require.NoError(t, err)
		assert.Empty(t, views)
	})

	t.Run("projects sessions with creation time from the ID", func(t *testing.T) {
		svc, sessionRepo, _, _, _ := newTestService()

		id := bson.NewObjectID()
		videoURL := "https://bucket.s3.amazonaws.com/interviews/v.mp4"
		sessionRepo.On("ListByUser", mock.Anything, "alice@example.com").
			Return([]model.InterviewSession{
				{
					ID:             id,
					UserID:         "alice@example.com",
					JobDescription: "Backend Engineer",
					Difficulty:     model.DifficultyHard,
					NumQuestions:   2,
					Questions:      questionList(2),
					VideoURL:       &videoURL,
					Analytics:      &model.AnalyticsReport{OverallScore: 90},
				},
			}, nil)

		views, err := svc.Dashboard(context.Background(), "alice@example.com")
		require.NoError(t, err)
		require.Len(t, views, 1)

		view := views[0]
		assert.Equal(t, id.Hex(), view.SessionID)
		assert.Equal(t, model.DifficultyHard, view.Difficulty)
		assert.Equal(t, &videoURL, view.VideoURL)
		assert.Equal(t, id.Timestamp().UTC().Format(time.RFC3339), view.CreatedAt)
	})
}
