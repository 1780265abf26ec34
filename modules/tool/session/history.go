package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/flemzord/btw/internal/tool"
)

// defaultHistoryLines is how many trailing history lines are returned
// when the caller does not specify a count.
const defaultHistoryLines = 50

type historyTool struct {
	path string
}

func (t *historyTool) Name() string { return "shell_history" }

func (t *historyTool) Description() string {
	return "Return the most recent shell history lines."
}

func (t *historyTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"count": {
				"type": "integer",
				"minimum": 1,
				"description": "Number of trailing history lines to return. Defaults to 50."
			}
		},
		"additionalProperties": false
	}`)
}

type historyArgs struct {
	Count int `json:"count"`
}

func (t *historyTool) Execute(_ context.Context, raw json.RawMessage) (tool.Output, error) {
	var args historyArgs
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &args); err != nil {
			return tool.Output{}, fmt.Errorf("shell_history: decoding arguments: %w", err)
		}
	}
	if args.Count <= 0 {
		args.Count = defaultHistoryLines
	}

	data, err := os.ReadFile(t.path)
	if err != nil {
		return tool.Output{}, fmt.Errorf("shell_history: %w", err)
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) > args.Count {
		lines = lines[len(lines)-args.Count:]
	}

	// zsh extended history carries ": <ts>:<elapsed>;" prefixes.
	for i, line := range lines {
		if strings.HasPrefix(line, ": ") {
			if _, cmd, ok := strings.Cut(line, ";"); ok {
				lines[i] = cmd
			}
		}
	}

	return tool.Output{Content: strings.Join(lines, "\n")}, nil
}
