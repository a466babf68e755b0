package resume_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/puchtools/puchcal/internal/fault"
	"github.com/puchtools/puchcal/internal/server"
	"github.com/puchtools/puchcal/internal/tools/common"
	"github.com/puchtools/puchcal/internal/webfetch"
)

// registerFetchTool adds the page fetcher the job application assistant
// uses to pull job postings off the web.
func registerFetchTool(s *mcpserver.MCPServer, sc *server.ServerContext, fetcher *webfetch.Client) error {
	fetchTool := mcp.NewTool("fetch_url",
		mcp.WithDescription("Fetch a URL (e.g. a job posting) and return its content simplified to markdown. Long pages come back in chunks; follow the start_index hint in the result to page through."),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("The URL to fetch"),
		),
		mcp.WithNumber("max_length",
			mcp.Description("Maximum number of characters to return (default: 8000)"),
		),
		mcp.WithNumber("start_index",
			mcp.Description("Return content starting at this character offset (default: 0)"),
		),
		mcp.WithBoolean("raw",
			mcp.Description("Return the raw page content without simplifying HTML to markdown"),
		),
	)
	s.AddTool(fetchTool, common.InstrumentedToolHandler("fetch_url", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleFetchURL(ctx, request, fetcher)
		}))

	return nil
}

func handleFetchURL(ctx context.Context, request mcp.CallToolRequest, fetcher *webfetch.Client) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	target, ok := common.RequiredString(args, "url")
	if !ok {
		return mcp.NewToolResultError("url is required"), nil
	}
	maxLength := common.OptionalInt(args, "max_length", webfetch.DefaultMaxLength)
	if maxLength <= 0 || maxLength >= webfetch.MaxLengthLimit {
		return mcp.NewToolResultError(fmt.Sprintf("max_length must be between 1 and %d", webfetch.MaxLengthLimit-1)), nil
	}
	startIndex := common.OptionalInt(args, "start_index", 0)
	if startIndex < 0 {
		return mcp.NewToolResultError("start_index must not be negative"), nil
	}
	raw := common.OptionalBool(args, "raw")

	page, err := fetcher.Fetch(ctx, target, raw)
	if err != nil {
		return mcp.NewToolResultError(fetchErrorMessage(err)), nil
	}

	content := webfetch.Slice(page.Content, startIndex, maxLength)
	return mcp.NewToolResultText(fmt.Sprintf("%sContents of %s:\n%s", page.Prefix, target, content)), nil
}

func fetchErrorMessage(err error) string {
	if fault.IsKind(err, fault.KindValidation) {
		return err.Error()
	}
	return fmt.Sprintf("Fetching the URL failed: %v", err)
}
