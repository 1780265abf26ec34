package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/flemzord/btw/internal/tool"
)

type infoTool struct {
	info Info
}

func (t *infoTool) Name() string { return "session_info" }

func (t *infoTool) Description() string {
	return "Describe the current session: working directory, project file, process ID, and start time."
}

func (t *infoTool) Schema() json.RawMessage {
	return json.RawMessage(`{"type": "object", "additionalProperties": false}`)
}

func (t *infoTool) Execute(context.Context, json.RawMessage) (tool.Output, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "working_directory: %s\n", t.info.WorkDir)
	if t.info.ProjectPath != "" {
		fmt.Fprintf(&b, "project_file: %s\n", t.info.ProjectPath)
	} else {
		b.WriteString("project_file: (none)\n")
	}
	fmt.Fprintf(&b, "pid: %d\n", os.Getpid())
	if !t.info.StartedAt.IsZero() {
		fmt.Fprintf(&b, "started_at: %s\n", t.info.StartedAt.UTC().Format(time.RFC3339))
	}

	return tool.Output{Content: strings.TrimRight(b.String(), "\n")}, nil
}
