package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/interviewly/interview-server-go/internal/model"
)

const sessionCollection = "sessions"

// SessionRepository persists interview sessions. Session IDs are Mongo
// ObjectIDs, so they order by creation time and carry their creation
// timestamp.
type SessionRepository interface {
	Create(ctx context.Context, session *model.InterviewSession) (string, error)
	FindLatestPendingByUser(ctx context.Context, userID string) (*model.InterviewSession, error)
	AttachAnalysis(ctx context.Context, id bson.ObjectID, videoURL string, analytics *model.AnalyticsReport) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]model.InterviewSession, error)
	DeleteAbandonedPending(ctx context.Context, olderThan time.Time) (int64, error)
}

type sessionMongoRepository struct {
	db *mongo.Database
}

func NewSessionMongoRepository(ctx context.Context, db *mongo.Database) (SessionRepository, error) {
	_, err := db.Collection(sessionCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}},
	})
	if err != nil {
		return nil, err
	}

	return &sessionMongoRepository{db: db}, nil
}

func (r *sessionMongoRepository) Create(ctx context.Context, session *model.InterviewSession) (string, error) {
	result, err := r.db.Collection(sessionCollection).InsertOne(ctx, session)
	if err != nil {
		return "", err
	}

	objectID, ok := result.InsertedID.(bson.ObjectID)
	if !ok {
		return "", errors.New("failed to convert inserted ID to ObjectID")
	}
	session.ID = objectID

	return objectID.Hex(), nil
}

// FindLatestPendingByUser returns the most recently created session for the
// user that has no video yet, or nil when none exists. A null filter on
// video_url matches both absent and explicitly-null fields.
func (r *sessionMongoRepository) FindLatestPendingByUser(ctx context.Context, userID string) (*model.InterviewSession, error) {
	result := r.db.Collection(sessionCollection).FindOne(
		ctx,
		bson.M{"user_id": userID, "video_url": nil},
		options.FindOne().SetSort(bson.D{{Key: "_id", Value: -1}}),
	)

	var session model.InterviewSession
	if err := result.Decode(&session); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	return &session, nil
}

// AttachAnalysis sets the video URL and analytics report in one update. The
// filter also requires video_url to still be null, so two racing uploads
// cannot both claim the same pending session; the second caller gets
// matched=false.
func (r *sessionMongoRepository) AttachAnalysis(
	ctx context.Context,
	id bson.ObjectID,
	videoURL string,
	analytics *model.AnalyticsReport,
) (bool, error) {
	result, err := r.db.Collection(sessionCollection).UpdateOne(
		ctx,
		bson.M{"_id": id, "video_url": nil},
		bson.M{"$set": bson.M{"video_url": videoURL, "analytics": analytics}},
	)
	if err != nil {
		return false, err
	}

	return result.MatchedCount > 0, nil
}

func (r *sessionMongoRepository) ListByUser(ctx context.Context, userID string) ([]model.InterviewSession, error) {
	cursor, err := r.db.Collection(sessionCollection).Find(
		ctx,
		bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var sessions []model.InterviewSession
	if err := cursor.All(ctx, &sessions); err != nil {
		return nil, err
	}

	return sessions, nil
}

// DeleteAbandonedPending purges pending sessions created before olderThan.
// Analyzed sessions are never touched.
func (r *sessionMongoRepository) DeleteAbandonedPending(ctx context.Context, olderThan time.Time) (int64, error) {
	cutoff := bson.NewObjectIDFromTimestamp(olderThan)

	result, err := r.db.Collection(sessionCollection).DeleteMany(ctx, bson.M{
		"video_url": nil,
		"_id":       bson.M{"$lt": cutoff},
	})
	if err != nil {
		return 0, err
	}

	return result.DeletedCount, nil
}
