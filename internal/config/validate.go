package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/robfig/cron/v3"

	"github.com/flemzord/btw/internal/tool"
)

var logLevels = []string{"", "debug", "info", "warn", "error"}

// Validate checks the structural validity of a Config: the version field,
// the defaults section, and the operator-facing audit, debug, and telemetry
// settings. All problems are reported at once via errors.Join.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Version == "" {
		errs = append(errs, errors.New("config: version field is required"))
	} else if cfg.Version != "1" {
		errs = append(errs, fmt.Errorf("config: unsupported version %q (supported: \"1\")", cfg.Version))
	}

	if !slices.Contains(logLevels, cfg.Log.Level) {
		errs = append(errs, fmt.Errorf("config: log.level %q is not one of debug, info, warn, error", cfg.Log.Level))
	}

	if cfg.Defaults.Tools != nil {
		if _, err := tool.ParseSelection(cfg.Defaults.Tools); err != nil {
			errs = append(errs, fmt.Errorf("config: defaults.tools: %w", err))
		}
	}
	if cfg.Defaults.Provider == "" && len(cfg.Defaults.Options) > 0 {
		errs = append(errs, errors.New("config: defaults.options set without defaults.provider"))
	}

	if cfg.Audit.Enabled {
		if cfg.Audit.Path == "" {
			errs = append(errs, errors.New("config: audit.path is required when audit is enabled"))
		}
		if s := cfg.Audit.Retention.Schedule; s != "" {
			if _, err := cron.ParseStandard(s); err != nil {
				errs = append(errs, fmt.Errorf("config: audit.retention.schedule %q: %w", s, err))
			}
		}
		if cfg.Audit.Retention.MaxAgeDays < 0 {
			errs = append(errs, errors.New("config: audit.retention.max_age_days must not be negative"))
		}
	}

	if cfg.Telemetry.Enabled && cfg.Telemetry.Endpoint == "" {
		errs = append(errs, errors.New("config: telemetry.endpoint is required when telemetry is enabled"))
	}

	return errors.Join(errs...)
}
