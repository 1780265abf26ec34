// Package project discovers and parses btw project files: markdown documents
// with optional YAML front matter that supply session defaults and contextual
// instructions for a chat client.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultName is the project file name searched for in the project tree
// and in the user-global fallback locations.
const DefaultName = "btw.md"

// ErrNotFound is returned when an explicitly supplied project file path
// does not exist. The default search never returns it: finding nothing
// simply means "no project context".
var ErrNotFound = errors.New("project file not found")

// FindInTree walks from startDir upward to the filesystem root looking for
// name. The nearest ancestor wins. Returns "" when no ancestor carries the
// file. Only the ascent chain is inspected, never siblings.
func FindInTree(name, startDir string) string {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return ""
	}

	for {
		candidate := filepath.Join(dir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// FindUserGlobal checks the user-global locations for name:
// <home>/<name>, then <home>/.config/btw/<name>. Returns the first that
// exists, or "".
func FindUserGlobal(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	for _, candidate := range []string{
		filepath.Join(home, name),
		filepath.Join(home, ".config", "btw", name),
	} {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

// Locate resolves the project file path for a session. An explicit path must
// exist and is an error otherwise; with no explicit path the project tree is
// searched from startDir, falling back to the user-global locations, and ""
// without error means no project file.
func Locate(explicit, startDir string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("%w: %s", ErrNotFound, explicit)
		}
		return explicit, nil
	}

	if path := FindInTree(DefaultName, startDir); path != "" {
		return path, nil
	}
	return FindUserGlobal(DefaultName), nil
}
