package env

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/user"
	"runtime"
	"strings"

	"github.com/flemzord/btw/internal/tool"
)

// platformTool reports static facts about the host platform.
type platformTool struct{}

func (t *platformTool) Name() string { return "platform" }

func (t *platformTool) Description() string {
	return "Describe the host platform: operating system, architecture, hostname, user, and shell."
}

func (t *platformTool) Schema() json.RawMessage {
	return json.RawMessage(`{"type": "object", "additionalProperties": false}`)
}

func (t *platformTool) Execute(context.Context, json.RawMessage) (tool.Output, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "os: %s\n", runtime.GOOS)
	fmt.Fprintf(&b, "arch: %s\n", runtime.GOARCH)

	if hostname, err := os.Hostname(); err == nil {
		fmt.Fprintf(&b, "hostname: %s\n", hostname)
	}
	if u, err := user.Current(); err == nil {
		fmt.Fprintf(&b, "user: %s\n", u.Username)
	}
	if shell := os.Getenv("SHELL"); shell != "" {
		fmt.Fprintf(&b, "shell: %s\n", shell)
	}

	return tool.Output{Content: strings.TrimRight(b.String(), "\n")}, nil
}
