package files

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/flemzord/btw/internal/sandbox"
	"github.com/flemzord/btw/internal/tool"
)

// writeTool creates or replaces a file. Prior content travels in the
// output metadata so the caller can present an undo or diff; the model
// only sees the success line.
type writeTool struct {
	root string
}

func (t *writeTool) Name() string { return "write_file" }

func (t *writeTool) Description() string {
	return "Write content to a file under the working directory, creating it (and parent directories) " +
		"if needed, or replacing its current content."
}

func (t *writeTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"path": {
				"type": "string",
				"description": "File to write, relative to the working directory."
			},
			"content": {
				"type": "string",
				"description": "The full new content of the file."
			}
		},
		"required": ["path", "content"],
		"additionalProperties": false
	}`)
}

type writeArgs struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

func (t *writeTool) Execute(_ context.Context, raw json.RawMessage) (tool.Output, error) {
	var args writeArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return tool.Output{}, fmt.Errorf("write_file: decoding arguments: %w", err)
	}

	abs, err := sandbox.Resolve(t.root, args.Path)
	if err != nil {
		return tool.Output{}, err
	}

	meta := map[string]any{
		"path":    filepath.ToSlash(args.Path),
		"content": args.Content,
	}

	info, err := os.Stat(abs)
	switch {
	case err == nil && info.IsDir():
		return tool.Output{}, fmt.Errorf("%w: %s is a directory", ErrNotRegularFile, args.Path)
	case err == nil:
		prior, readErr := os.ReadFile(abs)
		if readErr != nil {
			return tool.Output{}, fmt.Errorf("write_file: reading prior content of %s: %w", args.Path, readErr)
		}
		meta["previous"] = string(prior)
	case errors.Is(err, fs.ErrNotExist):
		// New file.
	default:
		return tool.Output{}, fmt.Errorf("write_file: %s: %w", args.Path, err)
	}

	if dir := filepath.Dir(abs); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return tool.Output{}, fmt.Errorf("write_file: creating %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(abs, []byte(args.Content), 0o644); err != nil {
		return tool.Output{}, fmt.Errorf("write_file: %s: %w", args.Path, err)
	}

	return tool.Output{
		Content: fmt.Sprintf("Wrote %d bytes to %s.", len(args.Content), filepath.ToSlash(args.Path)),
		Meta:    meta,
	}, nil
}
