package genai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	apperrors "github.com/interviewly/interview-server-go/internal/errors"
	"github.com/interviewly/interview-server-go/internal/model"
)

const analysisPromptTemplate = `You are an expert AI interviewer analyzing a candidate's video response for a %s role.
The video is hosted at: %s.

The candidate is responding to the following interview questions:
%s

Make sure to:
Fetch every question and answer from the video. The question number is shown in the top-left corner of the video.
Detect question numbers (e.g. "Question 1", "Question 2") and extract their timestamps to segment the video.
Map each detected "Question X" to the corresponding question in the provided list.
Fetch each answer from the video segment starting at the question's timestamp until the next question number or video end.

For each question:
1. Transcribe the candidate's answer from the video.
2. Assign a score (0-100) based on accuracy, relevance, and clarity.
3. Analyze body language (e.g. posture, gestures, eye contact).
4. Analyze communication (e.g. tone, fluency, confidence).
5. Estimate time consumed (in seconds) for the response.

If a question is not answered, return an empty answer with a score of 0.

Additionally:
- Generate 3 insights (25 words or less each) highlighting feedback from the responses, focusing on strengths or areas for improvement.
- Analyze communication skills across the transcript, providing:
  - A communication score (0-10).
  - A 2-3 sentence overall feedback summary.
  - Supporting quotes with analysis, each tagged "strength" or "improvement_area".
  - Lists of strengths and improvement areas.

Return a JSON object with:
- A 'questions' array containing, for each question: 'question', 'answer', 'score', 'body_language', 'communication', 'time_consumed_seconds'.
- An 'overall_score' (0-100) weighted by answered questions.
- An 'insights' array with 3 feedback insights.
- A 'communication' object with: 'score', 'overallFeedback', 'supportingQuotes' (array of {quote, analysis, type}), 'strengths', 'improvementAreas'.

Return only valid JSON.`

// AnalyzeVideo submits the stored video and the session's question list to the
// multimodal model and returns the normalized scoring report. Partial results
// are never returned: any transport, parse, or structural failure is an error.
func (c *Client) AnalyzeVideo(ctx context.Context, videoURL, jobDescription string, questions []string) (*model.AnalyticsReport, error) {
	if len(questions) == 0 {
		return nil, apperrors.InvalidInput("questions", "must be a non-empty list")
	}

	var sb strings.Builder
	for i, q := range questions {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, q)
	}

	prompt := fmt.Sprintf(analysisPromptTemplate, jobDescription, videoURL, sb.String())

	// The multimodal call is bounded so an unresponsive upstream surfaces as
	// ANALYSIS_TIMEOUT instead of hanging the upload request.
	ctx, cancel := context.WithTimeout(ctx, c.analysisTimeout)
	defer cancel()

	start := time.Now()
	raw, err := c.generate(ctx, textPart(prompt), videoPart(videoURL))
	elapsed := time.Since(start)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			log.Error().Str("video_url", videoURL).Dur("elapsed", elapsed).Msg("video analysis timed out")
			return nil, apperrors.AnalysisTimeout()
		}
		log.Error().Err(err).Str("video_url", videoURL).Msg("video analysis call failed")
		return nil, apperrors.AnalysisFailed(err)
	}

	report, err := Normalize(raw, len(questions), elapsed)
	if err != nil {
		log.Error().Err(err).Str("video_url", videoURL).Msg("invalid video analysis response")
		return nil, err
	}

	log.Info().Str("video_url", videoURL).Dur("elapsed", elapsed).Msg("video analysis completed")
	return report, nil
}
