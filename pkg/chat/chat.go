// Package chat defines the external chat-client boundary. btw resolves a
// session and installs a system prompt and tool definitions into a Client;
// everything past that boundary (message transport, streaming, UI) belongs
// to the embedding host or a provider module.
package chat

import (
	"context"
	"encoding/json"
)

// Annotations is side-effect metadata attached to a tool definition,
// preserved verbatim from the registry. Nil pointers mean "unknown".
type Annotations struct {
	Title      string
	ReadOnly   *bool
	Idempotent *bool
	OpenWorld  *bool
}

// ToolDef describes one tool as exposed to a chat client: a stable name,
// a human-readable description, a JSON Schema for parameters, and
// annotations.
type ToolDef struct {
	Name        string
	Description string
	Schema      json.RawMessage
	Annotations Annotations
}

// Client is a handle to an LLM chat provider. Implementations live in
// modules/provider. A Client is owned by the caller; session resolution
// only sets its system prompt and tool definitions.
type Client interface {
	// Provider returns the provider token, e.g. "anthropic".
	Provider() string

	// Model returns the configured model identifier.
	Model() string

	// SystemPrompt returns the current system prompt.
	SystemPrompt() string

	// SetSystemPrompt replaces the system prompt.
	SetSystemPrompt(prompt string)

	// Tools returns the currently installed tool definitions.
	Tools() []ToolDef

	// SetTools replaces the installed tool definitions.
	SetTools(defs []ToolDef)

	// Complete sends a single user message and returns the assistant reply.
	Complete(ctx context.Context, text string) (string, error)

	// Clone returns an independent copy so a process-wide default client is
	// never mutated by one session.
	Clone() Client
}
