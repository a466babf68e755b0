package common

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/puchtools/puchcal/internal/instrumentation"
	"github.com/puchtools/puchcal/internal/server"
)

// ToolHandler is the handler signature the MCP server dispatches to.
type ToolHandler = mcpserver.ToolHandlerFunc

// InstrumentedToolHandler wraps a tool handler with metrics and audit
// logging.
//
// Usage:
//
//	s.AddTool(myTool, common.InstrumentedToolHandler("my_tool", sc, handler))
func InstrumentedToolHandler(toolName string, sc *server.ServerContext, handler ToolHandler) ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		invocation := instrumentation.NewToolInvocation(toolName).
			WithSpanContext(ctx)
		if cfg := sc.Config(); cfg != nil {
			invocation.WithCaller(cfg.PhoneNumber)
		}

		result, err := handler(ctx, request)
		duration := time.Since(start)

		status := instrumentation.StatusSuccess
		if err != nil || (result != nil && result.IsError) {
			status = instrumentation.StatusError
			invocation.Complete(false, err)
		} else {
			invocation.Complete(true, nil)
		}

		sc.Metrics().RecordToolInvocation(ctx, toolName, status, duration)
		sc.Audit().LogToolInvocation(invocation)

		return result, err
	}
}

// InstrumentedToolHandlerWithOperation additionally records the
// calendar operation behind the tool, so calendar API usage shows up
// in the calendar_operations_* metrics.
func InstrumentedToolHandlerWithOperation(toolName, operation string, sc *server.ServerContext, handler ToolHandler) ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()
		invocation := instrumentation.NewToolInvocation(toolName).
			WithSpanContext(ctx).
			WithOperation(operation)
		if cfg := sc.Config(); cfg != nil {
			invocation.WithCaller(cfg.PhoneNumber)
		}

		result, err := handler(ctx, request)
		duration := time.Since(start)

		status := instrumentation.StatusSuccess
		if err != nil || (result != nil && result.IsError) {
			status = instrumentation.StatusError
			invocation.Complete(false, err)
		} else {
			invocation.Complete(true, nil)
		}

		sc.Metrics().RecordToolInvocation(ctx, toolName, status, duration)
		sc.Metrics().RecordCalendarOperation(ctx, operation, status, duration)
		sc.Audit().LogToolInvocation(invocation)

		return result, err
	}
}
