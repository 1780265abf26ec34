package project

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParse_FrontMatterAndBody(t *testing.T) {
	t.Parallel()

	content := `---
provider: anthropic
model: claude-sonnet-4-5
tools: [files]
---
Use tabs, not spaces.
`

	f, err := Parse(content, "btw.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if f.Provider() != "anthropic" {
		t.Errorf("provider = %q", f.Provider())
	}

	toolsVal, ok := f.ToolsValue()
	if !ok {
		t.Fatal("tools value missing")
	}
	list, ok := toolsVal.([]any)
	if !ok || len(list) != 1 || list[0] != "files" {
		t.Errorf("tools = %#v", toolsVal)
	}

	opts := f.ClientOptions()
	if len(opts) != 1 || opts["model"] != "claude-sonnet-4-5" {
		t.Errorf("client options = %#v", opts)
	}

	if got := f.Prompt(); got != "Use tabs, not spaces." {
		t.Errorf("prompt = %q", got)
	}
}

func TestParse_NoFrontMatter(t *testing.T) {
	t.Parallel()

	f, err := Parse("Just instructions.\nSecond line.", "btw.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.FrontMatter != nil {
		t.Errorf("front matter = %#v, want nil", f.FrontMatter)
	}
	if got := f.Prompt(); got != "Just instructions.\nSecond line." {
		t.Errorf("prompt = %q", got)
	}
}

func TestParse_UnterminatedFrontMatterIsBody(t *testing.T) {
	t.Parallel()

	f, err := Parse("---\nprovider: anthropic\nno closing delimiter", "btw.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Provider() != "" {
		t.Errorf("provider = %q, want empty", f.Provider())
	}
	if f.Prompt() == "" {
		t.Error("body should be retained")
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	t.Parallel()

	_, err := Parse("---\n: [unbalanced\n---\nbody", "btw.md")
	if err == nil {
		t.Fatal("expected parse error")
	}
}

func TestParse_ToolsFalse(t *testing.T) {
	t.Parallel()

	f, err := Parse("---\ntools: false\n---\nbody", "btw.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok := f.ToolsValue()
	if !ok {
		t.Fatal("tools value missing")
	}
	if b, ok := v.(bool); !ok || b {
		t.Errorf("tools = %#v, want false", v)
	}
}

func TestPrompt_FiltersHiddenRegions(t *testing.T) {
	t.Parallel()

	content := `Visible intro.
<!-- HIDE -->
Operator-only notes.
<!-- /HIDE -->
Visible outro.`

	f, err := Parse(content, "btw.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Visible intro.\nVisible outro."
	if got := f.Prompt(); got != want {
		t.Errorf("prompt = %q, want %q", got, want)
	}
}

func TestLoad_RoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "btw.md")
	if err := os.WriteFile(path, []byte("---\nprovider: openai\n---\nHello."), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Path != path {
		t.Errorf("path = %q", f.Path)
	}
	if f.Provider() != "openai" {
		t.Errorf("provider = %q", f.Provider())
	}
}

func TestPrompt_NilFileIsEmpty(t *testing.T) {
	t.Parallel()

	var f *File
	if got := f.Prompt(); got != "" {
		t.Errorf("prompt = %q", got)
	}
}
