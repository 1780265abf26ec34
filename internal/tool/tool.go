// Package tool defines the tool registry for btw. Every capability exposed
// to a chat client is a registered tool: a named descriptor carrying a group,
// side-effect hints, and a factory that produces the invocable handle.
// The registry is populated once at startup and read-only afterwards.
package tool

import (
	"context"
	"encoding/json"
)

// Groups is the fixed set of valid tool groups. Selection tokens may name
// a group to activate every tool registered under it.
var Groups = []string{"files", "session", "docs", "env", "search", "ide"}

// Tool is an instantiated tool handle, ready to execute.
type Tool interface {
	// Name returns the unique identifier for this tool.
	Name() string

	// Description returns a human-readable description of what the tool does.
	Description() string

	// Schema returns a JSON Schema describing the tool's parameters.
	Schema() json.RawMessage

	// Execute runs the tool with the given JSON-encoded arguments.
	Execute(ctx context.Context, args json.RawMessage) (Output, error)
}

// Output is the result of a tool execution.
type Output struct {
	// Content is the output text from the tool, shown to the model.
	Content string

	// Meta carries auxiliary result data (e.g. prior file content for undo
	// presentation) that is surfaced to the caller but not to the model.
	Meta map[string]any
}

// Factory produces a tool handle. Returning ok == false excludes the tool
// silently, e.g. when an optional dependency is not present. Factories may
// be re-invoked on every selection resolution.
type Factory func() (Tool, bool)

// Hints is side-effect metadata attached to a descriptor. A nil pointer
// means "unknown". Hints are informational: the registry preserves and
// exposes them verbatim, enforcement is up to the consumer.
type Hints struct {
	Title      string
	ReadOnly   *bool
	Idempotent *bool
	OpenWorld  *bool
}

// Descriptor is one registry entry: a tool name, its group, its hints,
// and the factory that instantiates it.
type Descriptor struct {
	Name  string
	Group string
	Hints Hints
	New   Factory
}

// Active pairs a descriptor with its instantiated handle, as returned
// by Registry.Resolve.
type Active struct {
	Descriptor
	Tool Tool
}

// Bool returns a pointer to b, for populating Hints literals.
func Bool(b bool) *bool { return &b }
