package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/flemzord/btw/internal/tool"
)

func descriptorNamed(t *testing.T, descs []tool.Descriptor, name string) tool.Descriptor {
	t.Helper()
	for _, d := range descs {
		if d.Name == name {
			return d
		}
	}
	t.Fatalf("no descriptor named %s", name)
	return tool.Descriptor{}
}

func TestSessionInfo(t *testing.T) {
	t.Parallel()

	info := Info{
		WorkDir:     "/work",
		ProjectPath: "/work/btw.md",
		StartedAt:   time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}

	d := descriptorNamed(t, Descriptors(info), "session_info")
	tl, ok := d.New()
	if !ok {
		t.Fatal("session_info factory yielded no handle")
	}

	out, err := tl.Execute(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"working_directory: /work",
		"project_file: /work/btw.md",
		fmt.Sprintf("pid: %d", os.Getpid()),
		"started_at: 2026-08-01T12:00:00Z",
	} {
		if !strings.Contains(out.Content, want) {
			t.Errorf("missing %q:\n%s", want, out.Content)
		}
	}
}

func TestSessionInfo_NoProjectFile(t *testing.T) {
	t.Parallel()

	d := descriptorNamed(t, Descriptors(Info{WorkDir: "/work"}), "session_info")
	tl, _ := d.New()

	out, err := tl.Execute(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.Content, "project_file: (none)") {
		t.Errorf("missing placeholder:\n%s", out.Content)
	}
}

func TestShellHistory_AbsentWithoutHistoryFile(t *testing.T) {
	t.Setenv("HISTFILE", "")
	t.Setenv("HOME", t.TempDir())

	d := descriptorNamed(t, Descriptors(Info{}), "shell_history")
	if _, ok := d.New(); ok {
		t.Fatal("factory should yield no handle without a history file")
	}
}

func TestShellHistory_ReadsTrailingLines(t *testing.T) {
	hist := filepath.Join(t.TempDir(), "history")
	var lines []string
	for i := 1; i <= 10; i++ {
		lines = append(lines, fmt.Sprintf("command-%d", i))
	}
	if err := os.WriteFile(hist, []byte(strings.Join(lines, "\n")+"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HISTFILE", hist)

	d := descriptorNamed(t, Descriptors(Info{}), "shell_history")
	tl, ok := d.New()
	if !ok {
		t.Fatal("factory yielded no handle")
	}

	out, err := tl.Execute(context.Background(), json.RawMessage(`{"count":3}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "command-8\ncommand-9\ncommand-10"
	if out.Content != want {
		t.Errorf("content = %q, want %q", out.Content, want)
	}
}

func TestShellHistory_ZshExtendedFormat(t *testing.T) {
	hist := filepath.Join(t.TempDir(), "history")
	content := ": 1724900000:0;ls -la\n: 1724900010:2;git status\n"
	if err := os.WriteFile(hist, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HISTFILE", hist)

	d := descriptorNamed(t, Descriptors(Info{}), "shell_history")
	tl, _ := d.New()

	out, err := tl.Execute(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Content != "ls -la\ngit status" {
		t.Errorf("content = %q", out.Content)
	}
}
