// Package sandbox enforces the working-directory containment boundary for
// file tools: path containment checks, ignorable-path filtering for
// listings, and text/binary sniffing.
package sandbox

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrOutsideSandbox is returned when a path would escape the working
// directory. It is always surfaced, never silently corrected.
var ErrOutsideSandbox = errors.New("path outside the working directory")

// IsWithin reports whether path resolves to root or a descendant of root.
// Both are made absolute and lexically cleaned first. Symlinks are not
// resolved: a symlink inside root pointing outside will pass this check.
func IsWithin(path, root string) bool {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return false
	}

	if absPath == absRoot {
		return true
	}
	return strings.HasPrefix(absPath, absRoot+string(filepath.Separator))
}

// CheckWithin fails with ErrOutsideSandbox when path is not contained in
// root. Every file-tool operation calls this before touching the filesystem.
func CheckWithin(path, root string) error {
	if !IsWithin(path, root) {
		return fmt.Errorf("%w: %s", ErrOutsideSandbox, path)
	}
	return nil
}

// Resolve validates a tool-supplied path argument against the sandbox root
// and returns its absolute form. Tool paths must be relative; absolute paths
// and ".."-escapes are rejected before any I/O. An empty rel resolves to the
// root itself.
func Resolve(root, rel string) (string, error) {
	if filepath.IsAbs(rel) {
		return "", fmt.Errorf("%w: absolute path %s", ErrOutsideSandbox, rel)
	}

	abs := filepath.Join(root, rel)
	if err := CheckWithin(abs, root); err != nil {
		return "", err
	}
	return abs, nil
}
