package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"reportdesigner/internal/domain"
)

func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(mcp.NewPrompt("build_report",
		mcp.WithPromptDescription("Guide through laying out a report: rows, columns, then text, table and chart elements"),
		mcp.WithArgument("title",
			mcp.ArgumentDescription("Report title"),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("sections",
			mcp.ArgumentDescription("Comma-separated sections to include, e.g. summary, revenue table, trend chart"),
		),
	), s.handleBuildReportPrompt)
}

func (s *Server) handleBuildReportPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	title := req.Params.Arguments["title"]
	sections := req.Params.Arguments["sections"]
	if sections == "" {
		sections = "a title, a short summary, one table and one chart"
	}

	keys := make([]string, len(domain.ToolbarStyles))
	for i, opt := range domain.ToolbarStyles {
		keys[i] = opt.Key
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Build the report: %s", title),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf(`Build a report titled "%s" containing %s.

Steps:
1. create_report with the title as name.
2. add_row for each horizontal band, then add_column inside it (ids come back as row-N and col-row-N-M).
3. add_element with type text, table or chart into each column.
4. set_element_content for text (HTML is allowed) and set_element_style to format it.
   Supported style keys: %s.
5. Call get_report to check the tree. Use undo if a step went wrong; every edit is one undo step.`,
						title, sections, strings.Join(keys, ", ")),
				},
			},
		},
	}, nil
}
