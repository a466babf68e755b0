package resume_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/puchtools/puchcal/internal/fault"
	"github.com/puchtools/puchcal/internal/resume"
	"github.com/puchtools/puchcal/internal/server"
	"github.com/puchtools/puchcal/internal/tools/common"
	"github.com/puchtools/puchcal/internal/webfetch"
)

// RegisterTools registers the resume, job evaluation and page fetch
// tools. Callers should only register them when a resume file is
// configured.
func RegisterTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	resumeTool := mcp.NewTool("resume",
		mcp.WithDescription("Return the server owner's resume as plain text"),
	)
	s.AddTool(resumeTool, common.InstrumentedToolHandler("resume", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleResume(ctx, request, sc)
		}))

	assistantTool := mcp.NewTool("job_application_assistant",
		mcp.WithDescription("Evaluate the owner's resume against a job description, score the fit out of 10, and draft a cover letter when the fit is strong"),
		mcp.WithString("job_description",
			mcp.Required(),
			mcp.Description("The full job description text"),
		),
		mcp.WithString("company_name",
			mcp.Required(),
			mcp.Description("The hiring company's name"),
		),
	)
	s.AddTool(assistantTool, common.InstrumentedToolHandler("job_application_assistant", sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleJobApplicationAssistant(ctx, request, sc)
		}))

	return registerFetchTool(s, sc, webfetch.NewClient())
}

func handleResume(_ context.Context, _ mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	text, err := sc.ResumeText()
	if err != nil {
		return mcp.NewToolResultError(resumeErrorMessage(err)), nil
	}
	return mcp.NewToolResultText(text), nil
}

func handleJobApplicationAssistant(_ context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	jobDescription, ok := common.RequiredString(args, "job_description")
	if !ok {
		return mcp.NewToolResultError("job_description is required"), nil
	}
	companyName, ok := common.RequiredString(args, "company_name")
	if !ok {
		return mcp.NewToolResultError("company_name is required"), nil
	}

	text, err := sc.ResumeText()
	if err != nil {
		return mcp.NewToolResultError(resumeErrorMessage(err)), nil
	}

	return mcp.NewToolResultText(resume.BuildEvaluationPrompt(text, jobDescription, companyName)), nil
}

func resumeErrorMessage(err error) string {
	switch fault.KindOf(err) {
	case fault.KindNotFound:
		return fmt.Sprintf("No resume file is available on the server: %v", err)
	case fault.KindFormat:
		return fmt.Sprintf("The resume file could not be parsed as a PDF: %v", err)
	default:
		return fmt.Sprintf("Reading the resume failed: %v", err)
	}
}
