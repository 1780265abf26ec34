package session

import (
	"github.com/flemzord/btw/internal/tool"
	"github.com/flemzord/btw/pkg/chat"
)

// Activate resolves the session's tool selection against the registry and
// installs the resulting definitions, plus the project prompt when one was
// found, into the session's chat client. When no project file exists the
// client's system prompt is left untouched. Returns the active tools so
// the caller can also expose them elsewhere (e.g. over MCP).
func Activate(cfg *Config, reg *tool.Registry) []tool.Active {
	active := reg.Resolve(cfg.Tools)

	defs := make([]chat.ToolDef, 0, len(active))
	for _, a := range active {
		defs = append(defs, chat.ToolDef{
			Name:        a.Name,
			Description: a.Tool.Description(),
			Schema:      a.Tool.Schema(),
			Annotations: chat.Annotations{
				Title:      a.Hints.Title,
				ReadOnly:   a.Hints.ReadOnly,
				Idempotent: a.Hints.Idempotent,
				OpenWorld:  a.Hints.OpenWorld,
			},
		})
	}
	cfg.Client.SetTools(defs)

	if cfg.Prompt != "" {
		cfg.Client.SetSystemPrompt(cfg.Prompt)
	}

	return active
}
