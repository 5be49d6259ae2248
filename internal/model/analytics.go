package model

// AnalyticsReport is the structured scoring report produced by the video
// analysis collaborator. Only Questions and OverallScore are guaranteed to be
// present; everything else is best-effort and consumers must tolerate its
// absence.
type AnalyticsReport struct {
	Questions     []QuestionResult     `bson:"questions" json:"questions"`
	OverallScore  float64              `bson:"overall_score" json:"overall_score"`
	Insights      []string             `bson:"insights,omitempty" json:"insights,omitempty"`
	Communication *CommunicationReport `bson:"communication,omitempty" json:"communication,omitempty"`
}

// QuestionResult scores a single answered (or skipped) question.
// TimeConsumedSeconds is a pointer so that an upstream response omitting the
// field can be told apart from an explicit zero; normalization fills it in.
type QuestionResult struct {
	Question            string   `bson:"question" json:"question"`
	Answer              string   `bson:"answer" json:"answer"`
	Score               float64  `bson:"score" json:"score"`
	BodyLanguage        string   `bson:"body_language" json:"body_language"`
	Communication       string   `bson:"communication" json:"communication"`
	TimeConsumedSeconds *float64 `bson:"time_consumed_seconds" json:"time_consumed_seconds"`
}

type CommunicationReport struct {
	Score            float64           `bson:"score" json:"score"`
	OverallFeedback  string            `bson:"overall_feedback" json:"overallFeedback"`
	SupportingQuotes []SupportingQuote `bson:"supporting_quotes,omitempty" json:"supportingQuotes,omitempty"`
	Strengths        []string          `bson:"strengths,omitempty" json:"strengths,omitempty"`
	ImprovementAreas []string          `bson:"improvement_areas,omitempty" json:"improvementAreas,omitempty"`
}

// SupportingQuote is a transcript excerpt with analysis, tagged either
// "strength" or "improvement_area".
type SupportingQuote struct {
	Quote    string `bson:"quote" json:"quote"`
	Analysis string `bson:"analysis" json:"analysis"`
	Type     string `bson:"type" json:"type"`
}
