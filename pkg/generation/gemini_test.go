package generation

import (
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTextJoinsParts(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{
				Content: &genai.Content{
					Role:  "model",
					Parts: []genai.Part{genai.Text("What evidence "), genai.Text("supports that?")},
				},
			},
		},
	}

	text, err := extractText(resp)
	require.NoError(t, err)
	assert.Equal(t, "What evidence supports that?", text)
}

func TestExtractTextEmptyResponse(t *testing.T) {
	_, err := extractText(nil)
	assert.ErrorIs(t, err, ErrEmptyCompletion)

	_, err = extractText(&genai.GenerateContentResponse{})
	assert.ErrorIs(t, err, ErrEmptyCompletion)

	_, err = extractText(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{}}},
	})
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}
