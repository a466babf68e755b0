package validate_tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/puchtools/puchcal/internal/server"
	"github.com/puchtools/puchcal/internal/tools/common"
)

// RegisterTools registers the validate tool. The Puch platform calls it
// once after connecting and pairs the server with the returned owner
// phone number.
func RegisterTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	validateTool := mcp.NewTool("validate",
		mcp.WithDescription("Return the phone number of the server owner, in country-code form without a plus sign (e.g., 919876543210)"),
	)
	s.AddTool(validateTool, common.InstrumentedToolHandler("validate", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleValidate(ctx, request, sc)
		}))
	return nil
}

func handleValidate(_ context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	cfg := sc.Config()
	if cfg == nil || cfg.PhoneNumber == "" {
		return mcp.NewToolResultError("no owner phone number configured"), nil
	}
	return mcp.NewToolResultText(cfg.PhoneNumber), nil
}
