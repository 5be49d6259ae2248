package model

import (
	"go.mongodb.org/mongo-driver/v2/bson"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// InterviewSession is one mock-interview run. A session with questions but no
// video URL yet is "pending": it is the target of the next video upload by its
// owner. VideoURL and Analytics are set together, once, when analysis
// completes.
type InterviewSession struct {
	ID             bson.ObjectID    `bson:"_id,omitempty"`
	UserID         string           `bson:"user_id"`
	JobDescription string           `bson:"job_description"`
	Difficulty     Difficulty       `bson:"difficulty"`
	NumQuestions   int              `bson:"num_questions"`
	Questions      []string         `bson:"questions"`
	VideoURL       *string          `bson:"video_url"`
	Analytics      *AnalyticsReport `bson:"analytics,omitempty"`
}

// Pending reports whether the session is still waiting for a video upload.
func (s *InterviewSession) Pending() bool {
	return s.VideoURL == nil
}
