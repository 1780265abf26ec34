// Package app provides the shared composition root for the btw binary.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/flemzord/btw/internal/audit"
	"github.com/flemzord/btw/internal/config"
	"github.com/flemzord/btw/internal/mcpserver"
	"github.com/flemzord/btw/internal/redact"
	"github.com/flemzord/btw/internal/session"
	"github.com/flemzord/btw/internal/status"
	"github.com/flemzord/btw/internal/telemetry"
	"github.com/flemzord/btw/internal/tool"
	"github.com/flemzord/btw/pkg/chat"
)

// RunParams configures the application.
type RunParams struct {
	// ConfigPath is an explicit path to the YAML configuration file.
	// If empty the standard locations are searched; a missing file is
	// not an error.
	ConfigPath string

	// ProjectFile is an explicit project file path. Empty means search.
	ProjectFile string

	// WorkDir is the sandbox root and project-tree search start.
	// Defaults to the current working directory.
	WorkDir string

	// Provider overrides the session's provider token for this run.
	Provider string

	// Tools overrides the session's tool selection for this run
	// ("all", "none", a token, or comma-separated tokens).
	Tools string

	// Version, Commit, and Date are injected at build time via ldflags.
	Version string
	Commit  string
	Date    string
}

// App holds the wired process-wide components.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Redactor *redact.Redactor
	Resolver *session.Resolver
	WorkDir  string
	Version  string

	startedAt time.Time
	providers session.Providers
}

// Setup loads configuration and wires the logger, providers and resolver.
func Setup(params RunParams) (*App, error) {
	var cfg *config.Config
	var err error
	if params.ConfigPath != "" {
		cfg, err = config.Load(params.ConfigPath)
		if err == nil {
			err = config.Validate(cfg)
		}
	} else {
		cfg, err = config.LoadDefault()
	}
	if err != nil {
		return nil, err
	}

	logger, redactor := buildLogger(cfg, logLevel(cfg))

	providers := Providers()
	defaults, err := buildDefaults(cfg, providers)
	if err != nil {
		return nil, err
	}

	workDir := params.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("app: working directory: %w", err)
		}
		workDir = wd
	}

	return &App{
		Config:   cfg,
		Logger:   logger,
		Redactor: redactor,
		Resolver: &session.Resolver{
			Providers: providers,
			Defaults:  defaults,
			Logger:    logger,
		},
		WorkDir:   workDir,
		Version:   params.Version,
		startedAt: time.Now(),
		providers: providers,
	}, nil
}

// ResolveSession resolves one session using the run parameters as the
// explicit arguments, then activates the resulting tool selection.
func (a *App) ResolveSession(params RunParams) (*session.Config, []tool.Active, error) {
	opts := session.Options{
		ProjectFile: params.ProjectFile,
		WorkDir:     a.WorkDir,
	}

	if params.Provider != "" {
		client, err := a.ExplicitClient(params.Provider)
		if err != nil {
			return nil, nil, err
		}
		opts.Client = client
	}

	if params.Tools != "" {
		sel, err := tool.ParseSelection(params.Tools)
		if err != nil {
			return nil, nil, fmt.Errorf("app: tools flag: %w", err)
		}
		opts.Tools = &sel
	}

	cfg, err := a.Resolver.Resolve(opts)
	if err != nil {
		return nil, nil, err
	}

	reg, err := BuildRegistry(a.WorkDir, cfg.ProjectPath, a.startedAt)
	if err != nil {
		return nil, nil, err
	}

	return cfg, session.Activate(cfg, reg), nil
}

// ExplicitClient constructs a client for an explicit provider token,
// reusing the config's options when they target the same provider.
func (a *App) ExplicitClient(token string) (chat.Client, error) {
	var opts map[string]any
	if token == a.Config.Defaults.Provider {
		opts = a.Config.Defaults.Options
	}
	return a.providers.Build(token, opts)
}

// Serve resolves the session and serves it over MCP on stdio, with the
// optional audit store, debug server and trace export from the config.
// Blocks until the client disconnects.
func Serve(params RunParams) error {
	a, err := Setup(params)
	if err != nil {
		return err
	}

	cfg, active, err := a.ResolveSession(params)
	if err != nil {
		return err
	}

	opts := mcpserver.Options{Logger: a.Logger}

	if a.Config.Audit.Enabled {
		store, err := audit.Open(a.Config.Audit.Path)
		if err != nil {
			return err
		}
		defer func() { _ = store.Close() }()
		opts.Audit = store

		retention, err := audit.NewRetention(store,
			a.Config.Audit.Retention.Schedule,
			a.Config.Audit.Retention.MaxAgeDays,
			a.Logger,
		)
		if err != nil {
			return err
		}
		if err := retention.Start(); err != nil {
			return err
		}
		defer retention.Stop()
	}

	metrics := status.NewMetrics()
	opts.Metrics = metrics

	if a.Config.Debug.Enabled {
		debug := status.NewServer(a.Config.Debug.Addr, a.Version, status.SessionInfo{
			Provider:    cfg.Client.Provider(),
			Model:       cfg.Client.Model(),
			ProjectFile: cfg.ProjectPath,
			Tools:       toolNames(active),
		}, metrics, a.Logger)
		if err := debug.Start(); err != nil {
			return err
		}
		defer func() { _ = debug.Shutdown(context.Background()) }()
	}

	if a.Config.Telemetry.Enabled {
		provider, err := telemetry.Setup(context.Background(), a.Config.Telemetry.Endpoint, a.Version)
		if err != nil {
			return err
		}
		defer func() { _ = provider.Shutdown(context.Background()) }()
		opts.Tracer = provider.Tracer()
	}

	a.Logger.Info("serving session over MCP",
		"provider", cfg.Client.Provider(),
		"model", cfg.Client.Model(),
		"tools", len(active),
		"project", cfg.ProjectPath,
	)

	s := mcpserver.New("btw", a.Version, cfg.Prompt, active, opts)
	return mcpserver.ServeStdio(s)
}
