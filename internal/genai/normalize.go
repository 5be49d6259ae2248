package genai

import (
	"encoding/json"
	"time"

	apperrors "github.com/interviewly/interview-server-go/internal/errors"
	"github.com/interviewly/interview-server-go/internal/model"
)

// Normalize validates and defaults a raw analysis response before it may be
// persisted as an AnalyticsReport.
//
// The response must decode to a JSON object carrying both a "questions" field
// and an "overall_score" field; anything else is an upstream format error.
// Entries missing time_consumed_seconds get a fallback: 0 for unanswered
// questions, otherwise the call's wall-clock elapsed time spread evenly
// across the requested question count. No other field is defaulted or
// validated; optional fields such as insights may be absent.
func Normalize(raw string, numQuestions int, elapsed time.Duration) (*model.AnalyticsReport, error) {
	cleaned := stripCodeFence(raw)

	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &top); err != nil {
		return nil, apperrors.UpstreamFormat("Analysis response is not a JSON object").WithCause(err)
	}

	if _, ok := top["questions"]; !ok {
		return nil, apperrors.UpstreamFormat("Analysis response is missing questions")
	}
	if _, ok := top["overall_score"]; !ok {
		return nil, apperrors.UpstreamFormat("Analysis response is missing overall_score")
	}

	var report model.AnalyticsReport
	if err := json.Unmarshal([]byte(cleaned), &report); err != nil {
		return nil, apperrors.UpstreamFormat("Analysis response has malformed fields").WithCause(err)
	}

	for i := range report.Questions {
		q := &report.Questions[i]
		if q.TimeConsumedSeconds != nil {
			continue
		}

		var fallback float64
		if q.Answer != "" {
			fallback = elapsed.Seconds() / float64(numQuestions)
		}
		q.TimeConsumedSeconds = &fallback
	}

	return &report, nil
}
