package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_AllDefaults_Pass(t *testing.T) {
	cfg := DefaultConfig()
	err := cfg.Validate()
	assert.NoError(t, err)
}

func TestValidate_Runner(t *testing.T) {
	t.Run("Zero Default Timeout Fails", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Runner.DefaultTimeoutSeconds = 0
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "default_timeout_seconds")
	})

	t.Run("Long Timeout Below Default Fails", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Runner.LongTimeoutSeconds = 10
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "long_timeout_seconds")
	})

	t.Run("Capture Cap Below Success Limit Fails", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Runner.MaxCaptureBytes = 100
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "max_capture_bytes")
	})
}

func TestValidate_Policy(t *testing.T) {
	t.Run("Overlapping Sets Fail", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Policy.Safe = append(cfg.Policy.Safe, "update_system")
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "update_system")
	})
}

func TestValidate_Session(t *testing.T) {
	t.Run("Shared Approve And Deny Word Fails", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Session.DenyWords = append(cfg.Session.DenyWords, "ok")
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), `"ok"`)
	})

	t.Run("Zero Rate Fails", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Session.ChatRatePerSec = 0
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "chat_rate_per_sec")
	})
}

func TestValidate_MultipleErrors_AllReported(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.Addr = ""
	cfg.Resolver.Model = ""
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "server.addr")
	assert.Contains(t, err.Error(), "resolver.model")
}
