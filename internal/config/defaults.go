package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile.
// NOTE: Values in config files override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	Server   ServerConfig   `json:"server" yaml:"server"`
	Runner   RunnerConfig   `json:"runner" yaml:"runner"`
	Resolver ResolverConfig `json:"resolver" yaml:"resolver"`
	Policy   PolicyConfig   `json:"policy" yaml:"policy"`
	Session  SessionConfig  `json:"session" yaml:"session"`
}

type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr"` // Default: 127.0.0.1:8888

	// AuthSecret enables HS256 bearer-token checks on /ws when non-empty.
	AuthSecret string `json:"auth_secret" yaml:"auth_secret"`

	// AllowedOrigins lists Origin headers accepted on upgrade. "*" accepts any.
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins"`

	WriteTimeoutMs int `json:"write_timeout_ms" yaml:"write_timeout_ms"` // Default: 5000
}

type RunnerConfig struct {
	DefaultTimeoutSeconds int   `json:"default_timeout_seconds" yaml:"default_timeout_seconds"` // Default: 45
	LongTimeoutSeconds    int   `json:"long_timeout_seconds" yaml:"long_timeout_seconds"`       // Default: 300
	SuccessOutputLimit    int   `json:"success_output_limit" yaml:"success_output_limit"`       // Default: 500 characters
	MaxCaptureBytes       int64 `json:"max_capture_bytes" yaml:"max_capture_bytes"`             // Default: 4MB
	WaitDelayMs           int   `json:"wait_delay_ms" yaml:"wait_delay_ms"`                     // Default: 2000
}

type ResolverConfig struct {
	Model          string `json:"model" yaml:"model"`                     // Default: gemini-1.5-flash
	APIKeyEnv      string `json:"api_key_env" yaml:"api_key_env"`         // Default: GEMINI_API_KEY
	TimeoutSeconds int    `json:"timeout_seconds" yaml:"timeout_seconds"` // Default: 20
}

// PolicyConfig is the raw form of the policy sets. Approval maps an action
// name to the impact statement shown to the operator.
type PolicyConfig struct {
	Safe     []string          `json:"safe" yaml:"safe"`
	Approval map[string]string `json:"approval" yaml:"approval"`
}

type SessionConfig struct {
	HeartbeatMs     int      `json:"heartbeat_ms" yaml:"heartbeat_ms"` // Default: 1000
	ApproveWords    []string `json:"approve_words" yaml:"approve_words"`
	DenyWords       []string `json:"deny_words" yaml:"deny_words"`
	ChatRatePerSec  float64  `json:"chat_rate_per_sec" yaml:"chat_rate_per_sec"` // Default: 2
	ChatBurst       int      `json:"chat_burst" yaml:"chat_burst"`               // Default: 5
	HistoryMaxChars int      `json:"history_max_chars" yaml:"history_max_chars"` // Default: 4000
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           "127.0.0.1:8888",
			AllowedOrigins: []string{"*"},
			WriteTimeoutMs: 5000,
		},
		Runner: RunnerConfig{
			DefaultTimeoutSeconds: 45,
			LongTimeoutSeconds:    300,
			SuccessOutputLimit:    500,
			MaxCaptureBytes:       4 * 1024 * 1024,
			WaitDelayMs:           2000,
		},
		Resolver: ResolverConfig{
			Model:          "gemini-1.5-flash",
			APIKeyEnv:      "GEMINI_API_KEY",
			TimeoutSeconds: 20,
		},
		Policy: PolicyConfig{
			Safe: []string{
				"system_monitor",
				"security_scan_ports",
				"check_firewall",
				"list_processes",
				"read_logs",
			},
			Approval: map[string]string{
				"quick_clean":      "This will permanently delete files in /tmp and empty the Trash.",
				"update_system":    "System packages will be upgraded. This may require a reboot.",
				"block_ip":         "This IP will be unable to access any service on this machine.",
				"stop_service":     "The selected service will stop immediately. Dependent apps may fail.",
				"delete_file":      "This file will be permanently removed. This cannot be undone.",
				"simulate_attack":  "This will trigger a FAKE High-Priority Security Alert for testing.",
				"resolve_threat":   "This will clear all active security alerts.",
				"fix_system_issue": "This will install missing system keys (GPG) or fix package configurations.",
			},
		},
		Session: SessionConfig{
			HeartbeatMs:     1000,
			ApproveWords:    []string{"yes", "confirm", "approve", "ok"},
			DenyWords:       []string{"no", "cancel", "deny"},
			ChatRatePerSec:  2,
			ChatBurst:       5,
			HistoryMaxChars: 4000,
		},
	}
}
