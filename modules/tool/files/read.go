package files

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/flemzord/btw/internal/sandbox"
	"github.com/flemzord/btw/internal/tool"
)

// defaultMaxLines caps read_file output when the caller does not specify
// a limit.
const defaultMaxLines = 1000

// readTool returns a text file's content as a fenced code block.
type readTool struct {
	root string
}

func (t *readTool) Name() string { return "read_file" }

func (t *readTool) Description() string {
	return "Read a text file under the working directory. Returns the content in a fenced code block, " +
		"truncated to max_lines lines. Binary files are refused."
}

func (t *readTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"path": {
				"type": "string",
				"description": "File to read, relative to the working directory."
			},
			"max_lines": {
				"type": "integer",
				"minimum": 1,
				"description": "Maximum number of lines to return. Defaults to 1000."
			}
		},
		"required": ["path"],
		"additionalProperties": false
	}`)
}

type readArgs struct {
	Path     string `json:"path"`
	MaxLines int    `json:"max_lines"`
}

func (t *readTool) Execute(_ context.Context, raw json.RawMessage) (tool.Output, error) {
	var args readArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return tool.Output{}, fmt.Errorf("read_file: decoding arguments: %w", err)
	}
	if args.MaxLines <= 0 {
		args.MaxLines = defaultMaxLines
	}

	abs, err := sandbox.Resolve(t.root, args.Path)
	if err != nil {
		return tool.Output{}, err
	}

	info, err := os.Stat(abs)
	if err != nil {
		return tool.Output{}, fmt.Errorf("read_file: %s: %w", args.Path, err)
	}
	if info.IsDir() {
		return tool.Output{}, fmt.Errorf("%w: %s is a directory", ErrNotRegularFile, args.Path)
	}

	// Indeterminate sniff results count as "not text".
	if ok, sniffErr := sandbox.LooksLikeText(abs); sniffErr != nil || !ok {
		return tool.Output{}, fmt.Errorf("%w: %s", ErrNotTextFile, args.Path)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		return tool.Output{}, fmt.Errorf("read_file: %s: %w", args.Path, err)
	}

	content := string(data)
	truncated := false
	lines := strings.Split(content, "\n")
	if len(lines) > args.MaxLines {
		lines = lines[:args.MaxLines]
		content = strings.Join(lines, "\n")
		truncated = true
	}

	lang := strings.TrimPrefix(filepath.Ext(abs), ".")

	var b strings.Builder
	fmt.Fprintf(&b, "```%s\n", lang)
	b.WriteString(content)
	if !strings.HasSuffix(content, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("```")
	if truncated {
		fmt.Fprintf(&b, "\n(truncated to %d lines)", args.MaxLines)
	}

	return tool.Output{Content: b.String()}, nil
}
