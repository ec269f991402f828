package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"reportdesigner/internal/service"
)

func (s *Server) registerHistoryTools() {
	// ── undo ───────────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("undo",
		mcp.WithDescription("Revert the most recent edit. Does nothing when there is nothing to undo"),
		mcp.WithString("reportId", mcp.Description("Report ID (optional, defaults to active report)")),
	), s.handleUndo)

	// ── redo ───────────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("redo",
		mcp.WithDescription("Replay the most recently undone edit. Any new edit clears the redo list"),
		mcp.WithString("reportId", mcp.Description("Report ID (optional, defaults to active report)")),
	), s.handleRedo)

	// ── get_history ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("get_history",
		mcp.WithDescription("List the undo entries (oldest first) and redo entries (next first) of a report"),
		mcp.WithString("reportId", mcp.Description("Report ID (optional, defaults to active report)")),
	), s.handleGetHistory)
}

func (s *Server) handleUndo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.edit(func(ctx context.Context, reportID string, _ map[string]any) (*service.ReportState, error) {
		return s.designer.Undo(ctx, reportID)
	})(ctx, req)
}

func (s *Server) handleRedo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.edit(func(ctx context.Context, reportID string, _ map[string]any) (*service.ReportState, error) {
		return s.designer.Redo(ctx, reportID)
	})(ctx, req)
}

func (s *Server) handleGetHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	reportID, err := s.resolveReportID(req.GetArguments())
	if err != nil {
		return nil, err
	}
	h, err := s.designer.GetHistory(reportID)
	if err != nil {
		return nil, err
	}
	return jsonResult(h)
}
