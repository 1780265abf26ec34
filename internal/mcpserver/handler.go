package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/flemzord/btw/internal/status"
	"github.com/flemzord/btw/internal/telemetry"
	"github.com/flemzord/btw/internal/tool"
)

// toolHandler wraps one tool execution with validation, metrics, tracing
// and audit recording. Execution failures become MCP tool errors, not
// protocol errors, so the client model can see and react to them.
func toolHandler(active tool.Active, opts Options) server.ToolHandlerFunc {
	name := active.Tool.Name()

	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := json.Marshal(req.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("%s: invalid arguments: %v", name, err)), nil
		}

		ctx, span := telemetry.StartInvocation(ctx, opts.Tracer, name)

		start := time.Now()
		out, execErr := execute(ctx, active.Tool, args)
		latency := time.Since(start)

		outcome := status.OutcomeOK
		if execErr != nil {
			outcome = status.OutcomeError
		}

		if opts.Metrics != nil {
			opts.Metrics.RecordInvocation(name, outcome, latency)
		}
		if opts.Audit != nil {
			if err := opts.Audit.RecordInvocation(ctx, name, outcome, latency, args); err != nil {
				opts.Logger.Error("audit record failed", "tool", name, "error", err)
			}
		}
		telemetry.EndInvocation(span, execErr)

		if execErr != nil {
			opts.Logger.Warn("tool invocation failed",
				"tool", name,
				"duration", latency,
				"error", execErr,
			)
			return mcp.NewToolResultError(execErr.Error()), nil
		}

		opts.Logger.Debug("tool invocation",
			"tool", name,
			"duration", latency,
		)

		result := mcp.NewToolResultText(out.Content)
		if len(out.Meta) > 0 {
			result.Meta = mcp.NewMetaFromMap(out.Meta)
		}
		return result, nil
	}
}

func execute(ctx context.Context, t tool.Tool, args []byte) (tool.Output, error) {
	if err := tool.ValidateArgs(t, args); err != nil {
		return tool.Output{}, err
	}
	return t.Execute(ctx, args)
}
