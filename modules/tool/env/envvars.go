package env

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/flemzord/btw/internal/redact"
	"github.com/flemzord/btw/internal/tool"
)

// envVarsTool lists environment variables. Values under secret-looking
// names are masked, and known key formats are redacted wherever they
// appear.
type envVarsTool struct{}

func (t *envVarsTool) Name() string { return "env_vars" }

func (t *envVarsTool) Description() string {
	return "List environment variables sorted by name. Values of secret-looking variables are redacted."
}

func (t *envVarsTool) Schema() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"prefix": {
				"type": "string",
				"description": "Only list variables whose name starts with this prefix."
			}
		},
		"additionalProperties": false
	}`)
}

type envVarsArgs struct {
	Prefix string `json:"prefix"`
}

func (t *envVarsTool) Execute(_ context.Context, raw json.RawMessage) (tool.Output, error) {
	var args envVarsArgs
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &args); err != nil {
			return tool.Output{}, fmt.Errorf("env_vars: decoding arguments: %w", err)
		}
	}

	redactor := redact.NewRedactor()

	vars := os.Environ()
	sort.Strings(vars)

	var b strings.Builder
	for _, kv := range vars {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		if args.Prefix != "" && !strings.HasPrefix(name, args.Prefix) {
			continue
		}
		if redact.SecretKey(name) {
			value = redact.Placeholder
		} else {
			value = redactor.Redact(value)
		}
		fmt.Fprintf(&b, "%s=%s\n", name, value)
	}

	if b.Len() == 0 {
		return tool.Output{Content: "No matching environment variables."}, nil
	}
	return tool.Output{Content: strings.TrimRight(b.String(), "\n")}, nil
}
