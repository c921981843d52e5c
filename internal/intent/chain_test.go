package intent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Cyclone1070/jarvis/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"google.golang.org/genai"
)

func TestChain_PrimaryWins(t *testing.T) {
	mockClient := &MockGeminiClient{
		GenerateContentFunc: func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return textResponse(`{"thought":"t","action":"read_logs","param":null,"reply":"Reading."}`), nil
		},
	}
	c := NewChain(NewGeminiResolver(mockClient, "m", time.Second), zap.NewNop())

	got, err := c.Resolve(context.Background(), "", "check cpu")

	require.NoError(t, err)
	assert.Equal(t, "read_logs", got.Action)
	assert.True(t, c.HasBackend())
}

func TestChain_FallsBackOnBackendFailure(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
		err  error
	}{
		{"error", nil, errors.New("boom")},
		{"malformed", textResponse("I will run top for you"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.WarnLevel)
			mockClient := &MockGeminiClient{
				GenerateContentFunc: func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
					return tt.resp, tt.err
				},
			}
			c := NewChain(NewGeminiResolver(mockClient, "m", time.Second), zap.New(core))

			got, err := c.Resolve(context.Background(), "", "check cpu status")

			require.NoError(t, err)
			assert.Equal(t, "system_monitor", got.Action)
			assert.Equal(t, 1, mockClient.Calls)
			assert.Equal(t, 1, logs.FilterMessage("reasoning backend failed, using fallback classifier").Len())
		})
	}
}

func TestChain_NoBackend(t *testing.T) {
	c := NewChain(nil, nil)
	got, err := c.Resolve(context.Background(), "", "hello there")
	require.NoError(t, err)
	assert.False(t, got.HasAction())
	assert.False(t, c.HasBackend())
}

func TestNewChainFromConfig_NoKey(t *testing.T) {
	cfg := config.DefaultConfig().Resolver
	c := NewChainFromConfig(context.Background(), cfg, func(string) string { return "" }, zap.NewNop())
	assert.False(t, c.HasBackend())
}
