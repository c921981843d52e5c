package config

import (
	"fmt"
	"slices"
	"strings"
)

// Validate checks config values for life correctness.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	var errs []string

	// Server
	if strings.TrimSpace(c.Server.Addr) == "" {
		errs = append(errs, "server.addr must not be empty")
	}
	if c.Server.WriteTimeoutMs < 1 {
		errs = append(errs, "server.write_timeout_ms must be >= 1")
	}

	// Runner
	if c.Runner.DefaultTimeoutSeconds < 1 {
		errs = append(errs, "runner.default_timeout_seconds must be >= 1")
	}
	if c.Runner.LongTimeoutSeconds < c.Runner.DefaultTimeoutSeconds {
		errs = append(errs, "runner.long_timeout_seconds must be >= runner.default_timeout_seconds")
	}
	if c.Runner.SuccessOutputLimit < 1 {
		errs = append(errs, "runner.success_output_limit must be >= 1")
	}
	if c.Runner.MaxCaptureBytes < int64(c.Runner.SuccessOutputLimit) {
		errs = append(errs, "runner.max_capture_bytes must be >= runner.success_output_limit")
	}
	if c.Runner.WaitDelayMs < 0 {
		errs = append(errs, "runner.wait_delay_ms must be >= 0")
	}

	// Resolver
	if c.Resolver.Model == "" {
		errs = append(errs, "resolver.model must not be empty")
	}
	if c.Resolver.TimeoutSeconds < 1 {
		errs = append(errs, "resolver.timeout_seconds must be >= 1")
	}

	// Policy sets must be disjoint; the gate re-checks this at construction.
	for _, name := range c.Policy.Safe {
		if _, ok := c.Policy.Approval[name]; ok {
			errs = append(errs, fmt.Sprintf("policy action %q is in both safe and approval", name))
		}
	}

	// Session
	if c.Session.HeartbeatMs < 1 {
		errs = append(errs, "session.heartbeat_ms must be >= 1")
	}
	if len(c.Session.ApproveWords) == 0 {
		errs = append(errs, "session.approve_words must not be empty")
	}
	if len(c.Session.DenyWords) == 0 {
		errs = append(errs, "session.deny_words must not be empty")
	}
	for _, w := range c.Session.ApproveWords {
		if slices.Contains(c.Session.DenyWords, w) {
			errs = append(errs, fmt.Sprintf("session word %q is both an approve and a deny word", w))
		}
	}
	if c.Session.ChatRatePerSec <= 0 {
		errs = append(errs, "session.chat_rate_per_sec must be > 0")
	}
	if c.Session.ChatBurst < 1 {
		errs = append(errs, "session.chat_burst must be >= 1")
	}
	if c.Session.HistoryMaxChars < 1 {
		errs = append(errs, "session.history_max_chars must be >= 1")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}
