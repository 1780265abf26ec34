package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validConfig() *Config {
	return &Config{Version: "1"}
}

func TestValidate_Minimal(t *testing.T) {
	t.Parallel()

	if err := Validate(validConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Version(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Version = ""
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "version") {
		t.Errorf("missing version not reported: %v", err)
	}

	cfg.Version = "2"
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "unsupported version") {
		t.Errorf("unsupported version not reported: %v", err)
	}
}

func TestValidate_LogLevel(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Log.Level = "verbose"
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "log.level") {
		t.Errorf("bad level not reported: %v", err)
	}

	for _, level := range []string{"", "debug", "info", "warn", "error"} {
		cfg.Log.Level = level
		if err := Validate(cfg); err != nil {
			t.Errorf("level %q rejected: %v", level, err)
		}
	}
}

func TestValidate_DefaultsTools(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Defaults.Tools = []any{"files", 7}
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "defaults.tools") {
		t.Errorf("invalid selection not reported: %v", err)
	}

	cfg.Defaults.Tools = "none"
	if err := Validate(cfg); err != nil {
		t.Errorf("valid selection rejected: %v", err)
	}
}

func TestValidate_OptionsWithoutProvider(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Defaults.Options = map[string]any{"model": "gpt-4o"}
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "defaults.provider") {
		t.Errorf("orphan options not reported: %v", err)
	}
}

func TestValidate_Audit(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Audit.Enabled = true
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "audit.path") {
		t.Errorf("missing audit path not reported: %v", err)
	}

	cfg.Audit.Path = "audit.db"
	cfg.Audit.Retention.Schedule = "not a cron line"
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "retention.schedule") {
		t.Errorf("bad schedule not reported: %v", err)
	}

	cfg.Audit.Retention.Schedule = "0 3 * * *"
	if err := Validate(cfg); err != nil {
		t.Errorf("valid audit config rejected: %v", err)
	}
}

func TestValidate_Telemetry(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	cfg.Telemetry.Enabled = true
	if err := Validate(cfg); err == nil || !strings.Contains(err.Error(), "telemetry.endpoint") {
		t.Errorf("missing endpoint not reported: %v", err)
	}
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("BTW_TEST_KEY", "sk-test-value")

	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `version: "1"
defaults:
  provider: anthropic
  options:
    api_key: ${BTW_TEST_KEY}
    model: ${BTW_TEST_MODEL:-claude-sonnet-4-5}
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Defaults.Options["api_key"] != "sk-test-value" {
		t.Errorf("api_key = %v", cfg.Defaults.Options["api_key"])
	}
	if cfg.Defaults.Options["model"] != "claude-sonnet-4-5" {
		t.Errorf("default not applied: %v", cfg.Defaults.Options["model"])
	}
}

func TestLoad_UnresolvedVariable(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("version: \"1\"\ndefaults:\n  provider: ${BTW_NO_SUCH_VAR}\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "BTW_NO_SUCH_VAR") {
		t.Errorf("unresolved variable not reported: %v", err)
	}
}

func TestLoadDefault_MissingFileIsNotAnError(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadDefault()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Version != "1" {
		t.Errorf("version = %q", cfg.Version)
	}
}

func TestLoadDefault_ReadsXDGLocation(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Chdir(t.TempDir())

	dir := filepath.Join(xdg, "btw")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	content := "version: \"1\"\ndefaults:\n  provider: openai\n  options:\n    model: gpt-4o\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadDefault()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Defaults.Provider != "openai" {
		t.Errorf("provider = %q", cfg.Defaults.Provider)
	}
}
