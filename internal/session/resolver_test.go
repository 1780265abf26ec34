package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/flemzord/btw/internal/project"
	"github.com/flemzord/btw/internal/tool"
	"github.com/flemzord/btw/pkg/chat"
	"github.com/flemzord/btw/pkg/chat/chattest"
)

// testProviders returns a Providers map recording the options each
// constructor received.
func testProviders(t *testing.T) (Providers, *map[string]map[string]any) {
	t.Helper()
	calls := make(map[string]map[string]any)
	p := Providers{
		"chat_anthropic": func(opts map[string]any) (chat.Client, error) {
			calls["anthropic"] = opts
			return &chattest.Client{ProviderName: "anthropic"}, nil
		},
		"chat_openai": func(opts map[string]any) (chat.Client, error) {
			calls["openai"] = opts
			return &chattest.Client{ProviderName: "openai"}, nil
		},
	}
	return p, &calls
}

func writeProject(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "btw.md")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// emptyHome isolates the user-global fallback locations.
func emptyHome(t *testing.T) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
}

func TestResolve_ExplicitClientWins(t *testing.T) {
	emptyHome(t)
	providers, _ := testProviders(t)

	dir := t.TempDir()
	writeProject(t, dir, "---\nprovider: openai\n---\n")

	explicit := &chattest.Client{ProviderName: "explicit"}
	r := &Resolver{
		Providers: providers,
		Defaults:  Defaults{Client: &chattest.Client{ProviderName: "default"}},
	}

	cfg, err := r.Resolve(Options{Client: explicit, WorkDir: dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Client != explicit {
		t.Errorf("client = %v, want explicit", cfg.Client.Provider())
	}
}

func TestResolve_DefaultClientIsCloned(t *testing.T) {
	emptyHome(t)
	providers, _ := testProviders(t)

	def := &chattest.Client{ProviderName: "default", Prompt: "original"}
	r := &Resolver{Providers: providers, Defaults: Defaults{Client: def}}

	cfg, err := r.Resolve(Options{WorkDir: t.TempDir()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if def.Clones != 1 {
		t.Errorf("expected one clone, got %d", def.Clones)
	}
	cfg.Client.SetSystemPrompt("session prompt")
	if def.Prompt != "original" {
		t.Error("session mutated the process-wide default client")
	}
}

func TestResolve_ProjectProviderConstruction(t *testing.T) {
	emptyHome(t)
	providers, calls := testProviders(t)

	dir := t.TempDir()
	writeProject(t, dir, "---\nprovider: OpenAI\nmodel: gpt-4o\n---\nbody")

	r := &Resolver{Providers: providers}
	cfg, err := r.Resolve(Options{WorkDir: dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Client.Provider() != "openai" {
		t.Errorf("provider = %q", cfg.Client.Provider())
	}
	// Token lower-cased, non-reserved keys forwarded as constructor options.
	opts := (*calls)["openai"]
	if opts["model"] != "gpt-4o" {
		t.Errorf("constructor options = %#v", opts)
	}
	if _, ok := opts["provider"]; ok {
		t.Error("reserved provider key leaked into options")
	}
}

func TestResolve_HardcodedDefaultProvider(t *testing.T) {
	emptyHome(t)
	providers, _ := testProviders(t)

	r := &Resolver{Providers: providers}
	cfg, err := r.Resolve(Options{WorkDir: t.TempDir()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Client.Provider() != "anthropic" {
		t.Errorf("provider = %q, want hardcoded default", cfg.Client.Provider())
	}
}

func TestResolve_UnknownProviderToken(t *testing.T) {
	emptyHome(t)
	providers, _ := testProviders(t)

	dir := t.TempDir()
	writeProject(t, dir, "---\nprovider: cohere\n---\n")

	r := &Resolver{Providers: providers}
	_, err := r.Resolve(Options{WorkDir: dir})
	if !errors.Is(err, ErrUnknownProvider) {
		t.Fatalf("expected ErrUnknownProvider, got %v", err)
	}
}

func TestResolve_ExplicitToolsBeatProjectFile(t *testing.T) {
	emptyHome(t)
	providers, _ := testProviders(t)

	dir := t.TempDir()
	writeProject(t, dir, "---\ntools: [session]\n---\n")

	explicit := tool.SelectTokens("files")
	r := &Resolver{Providers: providers}
	cfg, err := r.Resolve(Options{Tools: &explicit, WorkDir: dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Tools.Has("files") || cfg.Tools.Has("session") {
		t.Errorf("tools = %s, want explicit selection", cfg.Tools)
	}
}

func TestResolve_ExplicitNoneCannotBeOverridden(t *testing.T) {
	emptyHome(t)
	providers, _ := testProviders(t)

	dir := t.TempDir()
	writeProject(t, dir, "---\ntools: [files]\n---\n")

	none := tool.SelectNone()
	r := &Resolver{Providers: providers}
	cfg, err := r.Resolve(Options{Tools: &none, WorkDir: dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Tools.IsNone() {
		t.Errorf("tools = %s, want none", cfg.Tools)
	}
}

func TestResolve_DefaultToolsBeatProjectFile(t *testing.T) {
	emptyHome(t)
	providers, _ := testProviders(t)

	dir := t.TempDir()
	writeProject(t, dir, "---\ntools: [files]\n---\n")

	def := tool.SelectTokens("env")
	r := &Resolver{Providers: providers, Defaults: Defaults{Tools: &def}}
	cfg, err := r.Resolve(Options{WorkDir: dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Tools.Has("env") || cfg.Tools.Has("files") {
		t.Errorf("tools = %s, want process default", cfg.Tools)
	}
}

func TestResolve_ProjectToolsBeatAllDefault(t *testing.T) {
	emptyHome(t)
	providers, _ := testProviders(t)

	dir := t.TempDir()
	writeProject(t, dir, "---\ntools: [files]\n---\n")

	r := &Resolver{Providers: providers}
	cfg, err := r.Resolve(Options{WorkDir: dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Tools.IsAll() || !cfg.Tools.Has("files") {
		t.Errorf("tools = %s, want project file selection", cfg.Tools)
	}
}

func TestResolve_ToolsFalseDisablesTools(t *testing.T) {
	emptyHome(t)
	providers, _ := testProviders(t)

	dir := t.TempDir()
	writeProject(t, dir, "---\ntools: false\n---\n")

	r := &Resolver{Providers: providers}
	cfg, err := r.Resolve(Options{WorkDir: dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Tools.IsNone() {
		t.Errorf("tools = %s, want none", cfg.Tools)
	}
}

func TestResolve_NoProjectFileDefaultsToAll(t *testing.T) {
	emptyHome(t)
	providers, _ := testProviders(t)

	r := &Resolver{Providers: providers}
	cfg, err := r.Resolve(Options{WorkDir: t.TempDir()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Tools.IsAll() {
		t.Errorf("tools = %s, want all", cfg.Tools)
	}
	if cfg.Prompt != "" {
		t.Errorf("prompt = %q, want empty", cfg.Prompt)
	}
	if cfg.ProjectPath != "" {
		t.Errorf("project path = %q, want empty", cfg.ProjectPath)
	}
}

func TestResolve_ExplicitProjectFileMustExist(t *testing.T) {
	emptyHome(t)
	providers, _ := testProviders(t)

	r := &Resolver{Providers: providers}
	_, err := r.Resolve(Options{
		ProjectFile: filepath.Join(t.TempDir(), "missing.md"),
		WorkDir:     t.TempDir(),
	})
	if !errors.Is(err, project.ErrNotFound) {
		t.Fatalf("expected project.ErrNotFound, got %v", err)
	}
}

func TestResolve_EndToEnd(t *testing.T) {
	emptyHome(t)
	providers, _ := testProviders(t)

	dir := t.TempDir()
	writeProject(t, dir, `---
tools: [files]
---
Project conventions.
<!-- HIDE -->
Internal operator notes.
<!-- /HIDE -->
Be concise.`)

	r := &Resolver{Providers: providers}
	cfg, err := r.Resolve(Options{WorkDir: dir})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !cfg.Tools.Has("files") {
		t.Errorf("tools = %s", cfg.Tools)
	}
	want := "Project conventions.\nBe concise."
	if cfg.Prompt != want {
		t.Errorf("prompt = %q, want %q", cfg.Prompt, want)
	}
}
