// Package genai wraps the hosted generative-AI collaborators: question
// generation from a job description, and multimodal analysis of an uploaded
// interview video. Both return free text that is expected to be JSON,
// optionally inside a markdown code fence.
package genai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// errNoCandidates marks a reply that arrived intact but carried no content.
// It is not a transport failure.
var errNoCandidates = errors.New("model returned no candidates")

type Client struct {
	client          *genai.Client
	model           string
	analysisTimeout time.Duration
}

func NewClient(ctx context.Context, apiKey, model string, analysisTimeout time.Duration) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Client{client: client, model: model, analysisTimeout: analysisTimeout}, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

// generate submits the parts to the model and concatenates the text parts of
// the first candidate.
func (c *Client) generate(ctx context.Context, parts ...genai.Part) (string, error) {
	resp, err := c.client.GenerativeModel(c.model).GenerateContent(ctx, parts...)
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errNoCandidates
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}

	return sb.String(), nil
}

func textPart(s string) genai.Part {
	return genai.Text(s)
}

func videoPart(uri string) genai.Part {
	return genai.FileData{MIMEType: "video/mp4", URI: uri}
}

// stripCodeFence removes an optional markdown code fence (```json ... ```)
// around a model response.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.Trim(s, "`")
	s = strings.TrimPrefix(s, "json")
	return strings.TrimSpace(s)
}
