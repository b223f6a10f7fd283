package ai

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/genai"

	"github.com/haivivi/callgear/pkg/convo"
)

// DefaultGeminiModel is used when the configured name has no model segment.
const DefaultGeminiModel = "gemini-2.0-flash"

// Gemini implements Completer against the Gemini API.
type Gemini struct {
	client *genai.Client
}

// NewGemini creates a Gemini backend authenticated with the API key.
func NewGemini(ctx context.Context, apiKey string) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, &Error{Op: OpComplete, Name: "gemini", Err: err}
	}
	return &Gemini{client: client}, nil
}

// Complete generates the next assistant reply with the Gemini API. The
// transcript's system turn becomes the system instruction; user and
// assistant turns map to user and model contents.
func (g *Gemini) Complete(ctx context.Context, model string, turns []convo.Turn) (string, error) {
	if model == "" {
		model = DefaultGeminiModel
	}

	var cfg *genai.GenerateContentConfig
	var contents []*genai.Content
	for _, t := range turns {
		switch t.Role {
		case convo.RoleSystem:
			cfg = &genai.GenerateContentConfig{
				SystemInstruction: &genai.Content{
					Parts: []*genai.Part{{Text: t.Content}},
				},
			}
		case convo.RoleUser:
			contents = append(contents, &genai.Content{
				Role:  "user",
				Parts: []*genai.Part{{Text: t.Content}},
			})
		case convo.RoleAssistant:
			contents = append(contents, &genai.Content{
				Role:  "model",
				Parts: []*genai.Part{{Text: t.Content}},
			})
		}
	}

	resp, err := g.client.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return "", &Error{Op: OpComplete, Name: "gemini/" + model, Err: err}
	}

	var sb strings.Builder
	if resp != nil && len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			sb.WriteString(part.Text)
		}
	}
	if sb.Len() == 0 {
		return "", &Error{Op: OpComplete, Name: "gemini/" + model, Err: errors.New("empty completion")}
	}
	return sb.String(), nil
}
