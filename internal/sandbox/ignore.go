package sandbox

import (
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// defaultIgnorePatterns suppress non-essential entries from listings:
// version control, package-manager caches, build output, environment
// managers, OS metadata, and common build-artifact suffixes. Filtering is
// presentation only; it never blocks a read or write.
var defaultIgnorePatterns = []string{
	".git/",
	".hg/",
	".svn/",
	".bzr/",
	"node_modules/",
	"__pycache__/",
	".venv/",
	"venv/",
	".tox/",
	".mypy_cache/",
	".pytest_cache/",
	".ruff_cache/",
	"target/",
	"dist/",
	"build/",
	".cache/",
	".idea/",
	".vscode/",
	"vendor/",
	".DS_Store",
	"Thumbs.db",
	"desktop.ini",
	"*.pyc",
	"*.pyo",
	"*.o",
	"*.a",
	"*.so",
	"*.dylib",
	"*.class",
	"*.exe",
	"*.egg-info/",
}

// Ignorer decides which paths are suppressed from directory listings.
type Ignorer struct {
	matcher *gitignore.GitIgnore
}

// NewIgnorer builds an Ignorer from the default pattern set merged with the
// project's root .gitignore when one exists. Patterns match relative paths.
func NewIgnorer(root string) *Ignorer {
	patterns := append([]string(nil), defaultIgnorePatterns...)

	if data, err := os.ReadFile(filepath.Join(root, ".gitignore")); err == nil {
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			patterns = append(patterns, line)
		}
	}

	return &Ignorer{matcher: gitignore.CompileIgnoreLines(patterns...)}
}

// Ignorable reports whether the slash- or OS-separated relative path should
// be suppressed from listings. Any matching component anywhere in the path
// triggers suppression.
func (i *Ignorer) Ignorable(rel string) bool {
	if rel == "" || rel == "." {
		return false
	}
	slashed := filepath.ToSlash(rel)
	// Directory patterns like "build/" only match paths under the
	// directory, so probe the bare name with a trailing slash too.
	return i.matcher.MatchesPath(slashed) || i.matcher.MatchesPath(slashed+"/")
}
