package intent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestGeminiResolver_Success(t *testing.T) {
	mockClient := &MockGeminiClient{
		GenerateContentFunc: func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			assert.Equal(t, "gemini-mock", model)
			assert.Equal(t, "application/json", config.ResponseMIMEType)
			require.NotNil(t, config.SystemInstruction)
			assert.Equal(t, SystemDirective, config.SystemInstruction.Parts[0].Text)
			require.Len(t, contents, 1)
			assert.Equal(t, "Context: earlier\n\nUser: check cpu", contents[0].Parts[0].Text)
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline)
			return textResponse(`{"thought":"cpu","action":"system_monitor","param":{},"reply":"On it."}`), nil
		},
	}

	r := NewGeminiResolver(mockClient, "gemini-mock", time.Second)
	got, err := r.Resolve(context.Background(), "earlier", "check cpu")

	require.NoError(t, err)
	assert.Equal(t, "system_monitor", got.Action)
	assert.Equal(t, "On it.", got.Reply)
}

func TestGeminiResolver_Failures(t *testing.T) {
	tests := []struct {
		name   string
		resp   *genai.GenerateContentResponse
		err    error
		reason string
	}{
		{"network", nil, errors.New("dial tcp: refused"), "network error"},
		{"auth", nil, &genai.APIError{Code: 401, Message: "bad key"}, "authentication failed"},
		{"rate limit", nil, &genai.APIError{Code: 429}, "rate limit exceeded"},
		{"server", nil, &genai.APIError{Code: 503}, "service unavailable"},
		{"timeout", nil, context.DeadlineExceeded, "request timeout"},
		{"no candidates", &genai.GenerateContentResponse{}, nil, "no candidates in response"},
		{"safety", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}}}, nil, "response blocked by safety filters"},
		{"empty text", textResponse("  "), nil, "empty response text"},
		{"malformed", textResponse(`{"thought":"x"}`), nil, "malformed response"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockClient := &MockGeminiClient{
				GenerateContentFunc: func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
					return tt.resp, tt.err
				},
			}
			r := NewGeminiResolver(mockClient, "gemini-mock", time.Second)

			_, err := r.Resolve(context.Background(), "", "hi")

			var backendErr *BackendUnavailableError
			require.ErrorAs(t, err, &backendErr)
			assert.Equal(t, tt.reason, backendErr.Reason)
		})
	}
}

func TestNewGeminiResolver_PanicsWithoutClient(t *testing.T) {
	assert.Panics(t, func() { NewGeminiResolver(nil, "m", time.Second) })
}
