package openai

import (
	"errors"
	"strings"
	"testing"
)

func TestNew_Options(t *testing.T) {
	t.Setenv(envAPIKey, "")

	tests := []struct {
		name      string
		opts      map[string]any
		wantModel string
		wantErr   string
	}{
		{
			name:      "explicit key and model",
			opts:      map[string]any{"api_key": "k", "model": "gpt-test"},
			wantModel: "gpt-test",
		},
		{
			name:      "default model",
			opts:      map[string]any{"api_key": "k"},
			wantModel: defaultModel,
		},
		{
			name:      "base_url accepted",
			opts:      map[string]any{"api_key": "k", "base_url": "http://localhost:11434/v1"},
			wantModel: defaultModel,
		},
		{
			name:    "unknown option",
			opts:    map[string]any{"api_key": "k", "organization": "acme"},
			wantErr: `unknown option "organization"`,
		},
		{
			name:    "non-string base_url",
			opts:    map[string]any{"api_key": "k", "base_url": 8080},
			wantErr: "option base_url must be a string",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.opts)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := c.Model(); got != tt.wantModel {
				t.Errorf("Model() = %q, want %q", got, tt.wantModel)
			}
			if got := c.Provider(); got != "openai" {
				t.Errorf("Provider() = %q", got)
			}
		})
	}
}

func TestNew_MissingKey(t *testing.T) {
	t.Setenv(envAPIKey, "")

	if _, err := New(nil); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("error = %v, want ErrMissingAPIKey", err)
	}
}

func TestNew_KeyFromEnvironment(t *testing.T) {
	t.Setenv(envAPIKey, "env-key")

	if _, err := New(nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClone_IsIndependent(t *testing.T) {
	c, err := New(map[string]any{"api_key": "k"})
	if err != nil {
		t.Fatal(err)
	}
	c.SetSystemPrompt("original")

	dup := c.Clone()
	dup.SetSystemPrompt("changed")

	if c.SystemPrompt() != "original" {
		t.Errorf("clone mutated source prompt: %q", c.SystemPrompt())
	}
}
