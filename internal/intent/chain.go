package intent

import (
	"context"
	"time"

	"github.com/Cyclone1070/jarvis/internal/config"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

// Chain tries an optional primary resolver and falls back to the keyword
// classifier. It never returns an error.
type Chain struct {
	primary  Resolver
	fallback Fallback
	logger   *zap.Logger
}

// NewChain builds a chain. primary may be nil for fallback-only operation.
func NewChain(primary Resolver, logger *zap.Logger) *Chain {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Chain{
		primary: primary,
		logger:  logger.Named("intent"),
	}
}

// NewChainFromConfig enables the Gemini backend when the API key variable
// named in cfg is set. A client that cannot be created leaves the chain in
// fallback-only mode.
func NewChainFromConfig(ctx context.Context, cfg config.ResolverConfig, getenv func(string) string, logger *zap.Logger) *Chain {
	if logger == nil {
		logger = zap.NewNop()
	}

	apiKey := getenv(cfg.APIKeyEnv)
	if apiKey == "" {
		logger.Warn("reasoning backend disabled: API key not set, running in reflex mode", zap.String("env", cfg.APIKeyEnv))
		return NewChain(nil, logger)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		logger.Warn("reasoning backend disabled: client init failed", zap.Error(err))
		return NewChain(nil, logger)
	}

	logger.Info("reasoning backend enabled", zap.String("model", cfg.Model))
	primary := NewGeminiResolver(NewRealGeminiClient(client), cfg.Model, time.Duration(cfg.TimeoutSeconds)*time.Second)
	return NewChain(primary, logger)
}

// HasBackend reports whether a primary resolver is configured.
func (c *Chain) HasBackend() bool {
	return c.primary != nil
}

// Resolve implements Resolver.
func (c *Chain) Resolve(ctx context.Context, contextSummary, userText string) (Intent, error) {
	if c.primary != nil {
		got, err := c.primary.Resolve(ctx, contextSummary, userText)
		if err == nil {
			return got, nil
		}
		c.logger.Warn("reasoning backend failed, using fallback classifier", zap.Error(err))
	}
	return c.fallback.Classify(userText), nil
}
