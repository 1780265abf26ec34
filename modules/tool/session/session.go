// Package session provides tools describing the current btw session:
// session facts and recent shell history.
package session

import (
	"os"
	"path/filepath"
	"time"

	"github.com/flemzord/btw/internal/tool"
)

// Info is the static session context the tools report on.
type Info struct {
	// WorkDir is the sandbox root for this session.
	WorkDir string

	// ProjectPath is the resolved project file, or "".
	ProjectPath string

	// StartedAt is when the session began.
	StartedAt time.Time
}

// Descriptors returns the session-group tool descriptors.
// The shell_history factory yields no handle when no history file exists.
func Descriptors(info Info) []tool.Descriptor {
	return []tool.Descriptor{
		{
			Name:  "session_info",
			Group: "session",
			Hints: tool.Hints{
				Title:      "Session info",
				ReadOnly:   tool.Bool(true),
				Idempotent: tool.Bool(true),
				OpenWorld:  tool.Bool(false),
			},
			New: func() (tool.Tool, bool) {
				return &infoTool{info: info}, true
			},
		},
		{
			Name:  "shell_history",
			Group: "session",
			Hints: tool.Hints{
				Title:      "Shell history",
				ReadOnly:   tool.Bool(true),
				Idempotent: tool.Bool(true),
				OpenWorld:  tool.Bool(false),
			},
			New: func() (tool.Tool, bool) {
				path := historyFile()
				if path == "" {
					return nil, false
				}
				return &historyTool{path: path}, true
			},
		},
	}
}

// historyFile finds the shell history file: $HISTFILE when set, otherwise
// the usual bash/zsh locations. Returns "" when none exists.
func historyFile() string {
	candidates := []string{os.Getenv("HISTFILE")}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates,
			filepath.Join(home, ".bash_history"),
			filepath.Join(home, ".zsh_history"),
		)
	}

	for _, path := range candidates {
		if path == "" {
			continue
		}
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}
