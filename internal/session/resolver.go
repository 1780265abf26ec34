// Package session resolves one chat session's configuration: which client
// to talk to, which tools to activate, and which project instructions to
// inject. Resolution applies a strict precedence order across the explicit
// call arguments, the process-wide defaults, and a discovered project file;
// sources are never merged.
package session

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/flemzord/btw/internal/project"
	"github.com/flemzord/btw/internal/tool"
	"github.com/flemzord/btw/pkg/chat"
)

// DefaultProvider is the hardcoded fallback provider token, used when no
// explicit client, no process default, and no project file provider exists.
const DefaultProvider = "anthropic"

// Defaults are the process-wide default options, built once at the entry
// point (from the btw config file) and threaded explicitly through
// resolution. No package-level mutable state.
type Defaults struct {
	// Client, when set, is cloned for each session that does not supply an
	// explicit client.
	Client chat.Client

	// Tools, when set, is the default tool selection.
	Tools *tool.Selection
}

// Options are the per-call arguments to Resolve. All fields are optional.
type Options struct {
	// Client is an explicit chat client; highest client precedence.
	Client chat.Client

	// Tools is an explicit tool selection; highest selection precedence.
	// An explicit NONE disables tools and cannot be overridden by a
	// project file.
	Tools *tool.Selection

	// ProjectFile is an explicit project file path. It must exist; empty
	// means "search the project tree, then the user-global locations".
	ProjectFile string

	// WorkDir is the directory the project-tree search starts from.
	// Defaults to the current working directory.
	WorkDir string
}

// Config is one resolved session configuration. Built once per session,
// not mutated afterwards.
type Config struct {
	Client      chat.Client
	Tools       tool.Selection
	Prompt      string
	ProjectPath string
}

// Resolver resolves session configurations against a provider mapping and
// process-wide defaults.
type Resolver struct {
	Providers Providers
	Defaults  Defaults
	Logger    *slog.Logger
}

// Resolve locates and parses the project file, then applies the precedence
// rules for the client and the tool selection.
//
// Client, highest first: explicit → cloned process default → constructed
// from front matter "provider" (other front matter keys pass through as
// constructor options) → hardcoded default provider.
//
// Tool selection, highest first: explicit → process default → front matter
// "tools" → ALL. A chosen value of false/"none" resolves to NONE, which is
// not an error.
func (r *Resolver) Resolve(opts Options) (*Config, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	workDir := opts.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("session: working directory: %w", err)
		}
		workDir = wd
	}

	path, err := project.Locate(opts.ProjectFile, workDir)
	if err != nil {
		return nil, err
	}

	var file *project.File
	if path != "" {
		file, err = project.Load(path)
		if err != nil {
			return nil, err
		}
		logger.Debug("session: project file loaded", "path", path)
	}

	client, err := r.resolveClient(opts, file)
	if err != nil {
		return nil, err
	}

	selection, err := r.resolveTools(opts, file)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Client:      client,
		Tools:       selection,
		Prompt:      file.Prompt(),
		ProjectPath: path,
	}

	logger.Debug("session: resolved",
		"provider", client.Provider(),
		"model", client.Model(),
		"tools", selection.String(),
		"project", path,
	)
	return cfg, nil
}

// resolveClient picks the first available client source; sources are never
// merged.
func (r *Resolver) resolveClient(opts Options, file *project.File) (chat.Client, error) {
	if opts.Client != nil {
		return opts.Client, nil
	}

	if r.Defaults.Client != nil {
		// Cloned so the process-wide default is never mutated by one session.
		return r.Defaults.Client.Clone(), nil
	}

	if token := file.Provider(); token != "" {
		return r.Providers.Build(token, file.ClientOptions())
	}

	return r.Providers.Build(DefaultProvider, nil)
}

// resolveTools picks the first specified tool selection source.
func (r *Resolver) resolveTools(opts Options, file *project.File) (tool.Selection, error) {
	if opts.Tools != nil {
		return *opts.Tools, nil
	}

	if r.Defaults.Tools != nil {
		return *r.Defaults.Tools, nil
	}

	if v, ok := file.ToolsValue(); ok {
		sel, err := tool.ParseSelection(v)
		if err != nil {
			return tool.Selection{}, fmt.Errorf("session: project file %s: %w", file.Path, err)
		}
		return sel, nil
	}

	return tool.SelectAll(), nil
}
