package project

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Front-matter keys reserved for session resolution. Everything else is
// passed through verbatim as chat-client constructor options.
const (
	KeyProvider = "provider"
	KeyTools    = "tools"
)

// File is a parsed project file: YAML front matter plus markdown body lines.
type File struct {
	Path        string
	FrontMatter map[string]any
	Body        []string
}

// Load reads and parses the project file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("project: reading %s: %w", path, err)
	}
	return Parse(string(data), path)
}

// Parse parses project file content. The front matter block is optional:
// content that does not open with a "---" line is treated as all body.
func Parse(content, path string) (*File, error) {
	front, body := splitFrontMatter(content)

	f := &File{Path: path}

	if front != "" {
		var meta map[string]any
		if err := yaml.Unmarshal([]byte(front), &meta); err != nil {
			return nil, fmt.Errorf("project: invalid front matter in %s: %w", path, err)
		}
		f.FrontMatter = meta
	}

	if body != "" {
		f.Body = strings.Split(body, "\n")
	}

	return f, nil
}

// Prompt returns the body after hidden-content filtering, joined and
// trimmed, ready for injection into a system prompt. Empty when the body
// is empty or entirely hidden.
func (f *File) Prompt() string {
	if f == nil {
		return ""
	}
	return strings.TrimSpace(strings.Join(FilterHidden(f.Body), "\n"))
}

// Provider returns the front matter provider token, or "".
func (f *File) Provider() string {
	if f == nil || f.FrontMatter == nil {
		return ""
	}
	s, _ := f.FrontMatter[KeyProvider].(string)
	return s
}

// ToolsValue returns the raw front matter tools value and whether it was set.
func (f *File) ToolsValue() (any, bool) {
	if f == nil || f.FrontMatter == nil {
		return nil, false
	}
	v, ok := f.FrontMatter[KeyTools]
	return v, ok
}

// ClientOptions returns the front matter minus the reserved keys: the
// named arguments forwarded to a provider constructor.
func (f *File) ClientOptions() map[string]any {
	if f == nil || len(f.FrontMatter) == 0 {
		return nil
	}
	opts := make(map[string]any, len(f.FrontMatter))
	for k, v := range f.FrontMatter {
		if k == KeyProvider || k == KeyTools {
			continue
		}
		opts[k] = v
	}
	if len(opts) == 0 {
		return nil
	}
	return opts
}

// splitFrontMatter splits content into a YAML front matter block and the
// markdown body. The block must open with a "---" line at the top of the
// file and close with another "---" line; without both, the whole content
// is body.
func splitFrontMatter(content string) (front, body string) {
	const delimiter = "---"

	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != delimiter {
		return "", content
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == delimiter {
			return strings.Join(lines[1:i], "\n"), strings.Join(lines[i+1:], "\n")
		}
	}

	// Unterminated block: treat everything as body.
	return "", content
}
