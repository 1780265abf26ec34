// Package config handles YAML configuration loading, environment variable
// expansion, and structural validation for btw. The config file supplies
// process-wide session defaults and operator-facing settings; a missing
// file is not an error.
package config

// Config is the top-level configuration structure.
type Config struct {
	// Version is the config format version. Currently only "1" is supported.
	Version string `yaml:"version"`

	// Defaults are process-wide session defaults, overridable per call and
	// taking precedence over a discovered project file.
	Defaults DefaultsConfig `yaml:"defaults,omitempty"`

	// Log controls log output.
	Log LogConfig `yaml:"log,omitempty"`

	// Audit enables the optional SQLite tool-invocation audit store.
	Audit AuditConfig `yaml:"audit,omitempty"`

	// Debug enables the optional local debug HTTP server.
	Debug DebugConfig `yaml:"debug,omitempty"`

	// Telemetry enables optional OTLP trace export.
	Telemetry TelemetryConfig `yaml:"telemetry,omitempty"`
}

// DefaultsConfig holds process-wide session defaults.
type DefaultsConfig struct {
	// Provider is the default chat provider token (e.g. "anthropic").
	Provider string `yaml:"provider,omitempty"`

	// Options are constructor options for the default provider
	// (api_key, model, ...).
	Options map[string]any `yaml:"options,omitempty"`

	// Tools is the default tool selection: true/false, "all"/"none",
	// a token string, or a list of name/group tokens.
	Tools any `yaml:"tools,omitempty"`
}

// LogConfig controls logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error. Defaults to info.
	Level string `yaml:"level,omitempty"`
}

// AuditConfig controls the invocation audit store.
type AuditConfig struct {
	Enabled bool `yaml:"enabled"`

	// Path is the SQLite database file. Required when enabled.
	Path string `yaml:"path,omitempty"`

	// Retention prunes old audit rows while serve runs.
	Retention RetentionConfig `yaml:"retention,omitempty"`
}

// RetentionConfig schedules audit pruning.
type RetentionConfig struct {
	// Schedule is a standard 5-field cron expression. Defaults to daily
	// at 03:00 when audit is enabled.
	Schedule string `yaml:"schedule,omitempty"`

	// MaxAgeDays is how long audit rows are kept. Defaults to 30.
	MaxAgeDays int `yaml:"max_age_days,omitempty"`
}

// DebugConfig controls the local debug HTTP server.
type DebugConfig struct {
	Enabled bool `yaml:"enabled"`

	// Addr is the listen address. Defaults to 127.0.0.1:9093.
	Addr string `yaml:"addr,omitempty"`
}

// TelemetryConfig controls OTLP trace export.
type TelemetryConfig struct {
	Enabled bool `yaml:"enabled"`

	// Endpoint is the OTLP HTTP endpoint host:port. Required when enabled.
	Endpoint string `yaml:"endpoint,omitempty"`
}
