package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ErrEmptyCompletion is returned when a model answers with no usable
// text parts.
var ErrEmptyCompletion = errors.New("generation: model returned an empty completion")

// GeminiProvider implements Provider on top of the Google Generative AI
// SDK. Calls walk the candidate model list in order and return the
// first successful completion; the last error is surfaced only when
// every candidate fails.
type GeminiProvider struct {
	client *genai.Client
	models []string
}

// NewGeminiProvider dials the generation API. The candidate list must
// not be empty; the first entry is the preferred model and the rest are
// fallbacks tried in order.
func NewGeminiProvider(ctx context.Context, apiKey string, models []string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, errors.New("generation: api key is required")
	}
	if len(models) == 0 {
		return nil, errors.New("generation: at least one candidate model is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("generation: failed to create client: %w", err)
	}

	return &GeminiProvider{client: client, models: models}, nil
}

func (p *GeminiProvider) Complete(ctx context.Context, history []Message) (string, error) {
	if len(history) == 0 {
		return "", errors.New("generation: history must contain at least one message")
	}

	contents := make([]*genai.Content, 0, len(history))
	for _, m := range history {
		contents = append(contents, &genai.Content{
			Role:  m.Role,
			Parts: []genai.Part{genai.Text(m.Text)},
		})
	}
	last := contents[len(contents)-1]

	var lastErr error
	for _, name := range p.models {
		model := p.client.GenerativeModel(name)

		cs := model.StartChat()
		cs.History = contents[:len(contents)-1]

		resp, err := cs.SendMessage(ctx, last.Parts...)
		if err != nil {
			lastErr = fmt.Errorf("generation: model %s: %w", name, err)
			continue
		}

		text, err := extractText(resp)
		if err != nil {
			lastErr = fmt.Errorf("generation: model %s: %w", name, err)
			continue
		}
		return text, nil
	}

	return "", lastErr
}

func (p *GeminiProvider) CompleteText(ctx context.Context, prompt string) (string, error) {
	return p.complete(ctx, genai.Text(prompt))
}

func (p *GeminiProvider) CompleteWithAudio(ctx context.Context, prompt string, audio []byte, mimeType string) (string, error) {
	return p.complete(ctx, genai.Text(prompt), genai.Blob{MIMEType: mimeType, Data: audio})
}

func (p *GeminiProvider) complete(ctx context.Context, parts ...genai.Part) (string, error) {
	var lastErr error
	for _, name := range p.models {
		model := p.client.GenerativeModel(name)

		resp, err := model.GenerateContent(ctx, parts...)
		if err != nil {
			lastErr = fmt.Errorf("generation: model %s: %w", name, err)
			continue
		}

		text, err := extractText(resp)
		if err != nil {
			lastErr = fmt.Errorf("generation: model %s: %w", name, err)
			continue
		}
		return text, nil
	}

	return "", lastErr
}

func (p *GeminiProvider) Close() error {
	return p.client.Close()
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrEmptyCompletion
	}

	var sb strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				sb.WriteString(string(text))
			}
		}
		break
	}

	if sb.Len() == 0 {
		return "", ErrEmptyCompletion
	}
	return sb.String(), nil
}
