package files

import (
	"context"
	"encoding/json"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/flemzord/btw/internal/sandbox"
	"github.com/flemzord/btw/internal/tool"
)

// listTool renders a table of the files under a directory, ignorable
// entries excluded.
type listTool struct {
	root string
}

func (t *listTool) Name() string { return "list_files" }

func (t *listTool) Description() string {
	return "List files under the working directory as a table with path, type, size, and modification time. " +
		"Pass a relative path to list a subdirectory. Build artifacts and VCS internals are excluded."
}

func (t *listTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"path": {
				"type": "string",
				"description": "Directory to list, relative to the working directory. Defaults to the working directory itself."
			}
		},
		"additionalProperties": false
	}`)
}

type listArgs struct {
	Path string `json:"path"`
}

func (t *listTool) Execute(_ context.Context, raw json.RawMessage) (tool.Output, error) {
	var args listArgs
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &args); err != nil {
			return tool.Output{}, fmt.Errorf("list_files: decoding arguments: %w", err)
		}
	}

	start, err := sandbox.Resolve(t.root, args.Path)
	if err != nil {
		return tool.Output{}, err
	}

	ignorer := sandbox.NewIgnorer(t.root)

	var b strings.Builder
	b.WriteString("| path | type | size | modification_time |\n")
	b.WriteString("| --- | --- | --- | --- |\n")

	count := 0
	err = filepath.WalkDir(start, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped rather than failing the listing.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(t.root, path)
		if relErr != nil || rel == "." {
			return nil
		}

		if ignorer.Ignorable(rel) {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		info, infoErr := d.Info()
		if infoErr != nil {
			return nil
		}

		kind := "file"
		size := fmt.Sprintf("%d", info.Size())
		if d.IsDir() {
			kind = "dir"
			size = "-"
		}

		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			filepath.ToSlash(rel), kind, size, info.ModTime().UTC().Format("2006-01-02 15:04:05"))
		count++
		return nil
	})
	if err != nil {
		return tool.Output{}, fmt.Errorf("list_files: %w", err)
	}

	if count == 0 {
		return tool.Output{Content: "No files found."}, nil
	}
	return tool.Output{Content: b.String()}, nil
}
