package app

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/flemzord/btw/internal/config"
	"github.com/flemzord/btw/internal/redact"
	"github.com/flemzord/btw/internal/session"
	"github.com/flemzord/btw/internal/tool"
	"github.com/flemzord/btw/modules/provider/anthropic"
	"github.com/flemzord/btw/modules/provider/openai"
	"github.com/flemzord/btw/modules/tool/env"
	"github.com/flemzord/btw/modules/tool/files"
	"github.com/flemzord/btw/modules/tool/search"
	toolsession "github.com/flemzord/btw/modules/tool/session"
)

// Providers returns the built-in chat client constructor mapping.
func Providers() session.Providers {
	return session.Providers{
		anthropic.Name: anthropic.New,
		openai.Name:    openai.New,
	}
}

// BuildRegistry registers every built-in tool descriptor, rooted at
// workDir, in registration order.
func BuildRegistry(workDir, projectPath string, startedAt time.Time) (*tool.Registry, error) {
	reg := tool.NewRegistry()

	var descriptors []tool.Descriptor
	descriptors = append(descriptors, files.Descriptors(workDir)...)
	descriptors = append(descriptors, env.Descriptors()...)
	descriptors = append(descriptors, toolsession.Descriptors(toolsession.Info{
		WorkDir:     workDir,
		ProjectPath: projectPath,
		StartedAt:   startedAt,
	})...)
	descriptors = append(descriptors, search.Descriptors(workDir)...)

	for _, d := range descriptors {
		if err := reg.Register(d); err != nil {
			return nil, fmt.Errorf("app: register tool %s: %w", d.Name, err)
		}
	}
	return reg, nil
}

// buildDefaults converts the config's defaults block into resolver
// defaults, constructing the default client eagerly so misconfiguration
// surfaces at startup rather than mid-session.
func buildDefaults(cfg *config.Config, providers session.Providers) (session.Defaults, error) {
	var defaults session.Defaults

	if cfg.Defaults.Provider != "" {
		client, err := providers.Build(cfg.Defaults.Provider, cfg.Defaults.Options)
		if err != nil {
			return session.Defaults{}, fmt.Errorf("app: default provider: %w", err)
		}
		defaults.Client = client
	}

	if cfg.Defaults.Tools != nil {
		sel, err := tool.ParseSelection(cfg.Defaults.Tools)
		if err != nil {
			return session.Defaults{}, fmt.Errorf("app: default tools: %w", err)
		}
		defaults.Tools = &sel
	}

	return defaults, nil
}

// buildLogger wires a redacting text logger on stderr. Secret-shaped
// values in config options are registered as literals up front.
func buildLogger(cfg *config.Config, level slog.Level) (*slog.Logger, *redact.Redactor) {
	redactor := redact.NewRedactor()
	for key, value := range cfg.Defaults.Options {
		if s, ok := value.(string); ok && s != "" && redact.SecretKey(key) {
			redactor.AddLiteral(s)
		}
	}

	inner := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(redact.NewHandler(inner, redactor)), redactor
}

// logLevel maps the config's log level string onto slog.
func logLevel(cfg *config.Config) slog.Level {
	switch cfg.Log.Level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// toolNames lists active tool names in activation order.
func toolNames(active []tool.Active) []string {
	names := make([]string, 0, len(active))
	for _, a := range active {
		names = append(names, a.Name)
	}
	return names
}
