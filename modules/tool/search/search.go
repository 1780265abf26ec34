// Package search provides the search_files tool: case-insensitive
// substring search across text files inside the sandbox.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/flemzord/btw/internal/sandbox"
	"github.com/flemzord/btw/internal/tool"
)

// defaultMaxResults caps the number of matching lines returned.
const defaultMaxResults = 100

// Descriptors returns the search-group tool descriptors rooted at root.
func Descriptors(root string) []tool.Descriptor {
	return []tool.Descriptor{
		{
			Name:  "search_files",
			Group: "search",
			Hints: tool.Hints{
				Title:      "Search files",
				ReadOnly:   tool.Bool(true),
				Idempotent: tool.Bool(true),
				OpenWorld:  tool.Bool(false),
			},
			New: func() (tool.Tool, bool) {
				return &searchTool{root: root}, true
			},
		},
	}
}

type searchTool struct {
	root string
}

func (t *searchTool) Name() string { return "search_files" }

func (t *searchTool) Description() string {
	return "Search text files under the working directory for a case-insensitive substring."
}

func (t *searchTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"query": {
				"type": "string",
				"description": "Substring to search for, matched case-insensitively."
			},
			"path": {
				"type": "string",
				"description": "Directory to search, relative to the working directory. Defaults to the working directory itself."
			},
			"max_results": {
				"type": "integer",
				"minimum": 1,
				"description": "Maximum number of matching lines to return. Defaults to 100."
			}
		},
		"required": ["query"],
		"additionalProperties": false
	}`)
}

type searchArgs struct {
	Query      string `json:"query"`
	Path       string `json:"path"`
	MaxResults int    `json:"max_results"`
}

func (t *searchTool) Execute(_ context.Context, raw json.RawMessage) (tool.Output, error) {
	var args searchArgs
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &args); err != nil {
			return tool.Output{}, fmt.Errorf("search_files: decoding arguments: %w", err)
		}
	}
	if strings.TrimSpace(args.Query) == "" {
		return tool.Output{}, fmt.Errorf("search_files: %w: query must not be empty", tool.ErrInvalidArgs)
	}
	if args.MaxResults <= 0 {
		args.MaxResults = defaultMaxResults
	}

	dir := t.root
	if args.Path != "" {
		resolved, err := sandbox.Resolve(t.root, args.Path)
		if err != nil {
			return tool.Output{}, fmt.Errorf("search_files: %w", err)
		}
		dir = resolved
	}

	ignorer := sandbox.NewIgnorer(t.root)

	needle := strings.ToLower(args.Query)

	var matches []string
	truncated := false
	walkErr := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped rather than failing the search.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(t.root, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		if ignorer.Ignorable(rel) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		ok, err := sandbox.LooksLikeText(path)
		if err != nil || !ok {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for i, line := range strings.Split(string(data), "\n") {
			if !strings.Contains(strings.ToLower(line), needle) {
				continue
			}
			if len(matches) >= args.MaxResults {
				truncated = true
				return filepath.SkipAll
			}
			matches = append(matches, fmt.Sprintf("%s:%d: %s", filepath.ToSlash(rel), i+1, strings.TrimRight(line, "\r")))
		}
		return nil
	})
	if walkErr != nil {
		return tool.Output{}, fmt.Errorf("search_files: %w", walkErr)
	}

	if len(matches) == 0 {
		return tool.Output{Content: "No matches found."}, nil
	}

	content := strings.Join(matches, "\n")
	if truncated {
		content += fmt.Sprintf("\n\n(truncated to %d results)", args.MaxResults)
	}
	return tool.Output{
		Content: content,
		Meta:    map[string]any{"query": args.Query, "results": len(matches)},
	}, nil
}
