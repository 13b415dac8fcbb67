package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/agentx-labs/setupassist/internal/branding"
	"github.com/agentx-labs/setupassist/internal/tools"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
)

// Executor runs one tool call.
type Executor interface {
	Execute(ctx context.Context, call tools.Call) (string, error)
}

// New returns an MCP server with every tool registered.
func New(exec Executor, version string, log zerolog.Logger) (*server.MCPServer, error) {
	defs, err := tools.Definitions()
	if err != nil {
		return nil, fmt.Errorf("loading tool definitions: %w", err)
	}

	s := server.NewMCPServer(
		branding.MCPName(),
		version,
		server.WithToolCapabilities(true),
	)

	for _, def := range defs {
		var schema mcp.ToolInputSchema
		if err := json.Unmarshal(def.Parameters, &schema); err != nil {
			return nil, fmt.Errorf("converting schema for %s: %w", def.Kind, err)
		}
		tool := mcp.Tool{
			Name:        string(def.Kind),
			Description: def.Description,
			InputSchema: schema,
		}
		s.AddTool(tool, handler(exec, def.Kind, log))
	}

	return s, nil
}

func handler(exec Executor, kind tools.Kind, log zerolog.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()
		if args == nil {
			args = map[string]any{}
		}
		raw, err := json.Marshal(args)
		if err != nil {
			return mcp.NewToolResultError("Error: arguments are not serializable"), nil
		}

		msg, err := exec.Execute(ctx, tools.Call{ID: "mcp", Name: string(kind), Arguments: string(raw)})
		if err != nil {
			log.Info().Err(err).Str("tool", string(kind)).Msg("mcp tool call failed")
			return mcp.NewToolResultError(tools.Render(msg, err)), nil
		}
		return mcp.NewToolResultText(msg), nil
	}
}
