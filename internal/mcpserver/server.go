// Package mcpserver exposes a resolved btw session as an MCP server.
// Each active tool becomes one MCP tool; invocations flow through
// argument validation, metrics, tracing and the audit log.
package mcpserver

import (
	"encoding/json"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.opentelemetry.io/otel/trace"

	"github.com/flemzord/btw/internal/audit"
	"github.com/flemzord/btw/internal/status"
	"github.com/flemzord/btw/internal/tool"
)

// emptySchema is advertised for tools that declare no input schema.
var emptySchema = json.RawMessage(`{"type":"object"}`)

// Options carries the optional observability hooks. Nil fields disable
// the corresponding concern.
type Options struct {
	Logger  *slog.Logger
	Metrics *status.Metrics
	Audit   *audit.Store
	Tracer  trace.Tracer
}

// New builds an MCP server named name at version, serving the given
// active tools. A non-empty instructions string becomes the server's
// instructions block, surfacing the project prompt to connected clients.
func New(name, version, instructions string, tools []tool.Active, opts Options) *server.MCPServer {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	serverOpts := []server.ServerOption{
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	}
	if instructions != "" {
		serverOpts = append(serverOpts, server.WithInstructions(instructions))
	}

	s := server.NewMCPServer(name, version, serverOpts...)

	for _, active := range tools {
		s.AddTool(definition(active), toolHandler(active, opts))
	}

	return s
}

// ServeStdio blocks serving the MCP protocol on stdin/stdout until the
// client disconnects or the process is signalled.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

// definition converts an active tool into its MCP wire definition,
// carrying the capability hints through verbatim.
func definition(active tool.Active) mcp.Tool {
	schema := active.Tool.Schema()
	if len(schema) == 0 {
		schema = emptySchema
	}

	def := mcp.NewToolWithRawSchema(active.Tool.Name(), active.Tool.Description(), schema)
	def.Annotations = mcp.ToolAnnotation{
		Title:          active.Hints.Title,
		ReadOnlyHint:   active.Hints.ReadOnly,
		IdempotentHint: active.Hints.Idempotent,
		OpenWorldHint:  active.Hints.OpenWorld,
	}
	return def
}
