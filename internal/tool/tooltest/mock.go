// Package tooltest provides test doubles for the tool package.
package tooltest

import (
	"context"
	"encoding/json"

	"github.com/flemzord/btw/internal/tool"
)

// Tool is a configurable fake implementing tool.Tool.
type Tool struct {
	ToolName    string
	ToolDesc    string
	ToolSchema  json.RawMessage
	Output      tool.Output
	Err         error
	ExecuteFunc func(ctx context.Context, args json.RawMessage) (tool.Output, error)

	// Calls counts Execute invocations.
	Calls int
}

var _ tool.Tool = (*Tool)(nil)

func (t *Tool) Name() string        { return t.ToolName }
func (t *Tool) Description() string { return t.ToolDesc }

func (t *Tool) Schema() json.RawMessage {
	if t.ToolSchema == nil {
		return json.RawMessage(`{"type":"object"}`)
	}
	return t.ToolSchema
}

func (t *Tool) Execute(ctx context.Context, args json.RawMessage) (tool.Output, error) {
	t.Calls++
	if t.ExecuteFunc != nil {
		return t.ExecuteFunc(ctx, args)
	}
	if t.Err != nil {
		return tool.Output{}, t.Err
	}
	return t.Output, nil
}

// Descriptor wraps t in a descriptor under the given name and group.
func Descriptor(name, group string, t *Tool) tool.Descriptor {
	if t.ToolName == "" {
		t.ToolName = name
	}
	return tool.Descriptor{
		Name:  name,
		Group: group,
		New:   func() (tool.Tool, bool) { return t, true },
	}
}

// AbsentDescriptor is a descriptor whose factory never yields a handle.
func AbsentDescriptor(name, group string) tool.Descriptor {
	return tool.Descriptor{
		Name:  name,
		Group: group,
		New:   func() (tool.Tool, bool) { return nil, false },
	}
}
