package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerReportTools() {
	// ── create_report ──────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("create_report",
		mcp.WithDescription("Open a new empty report and make it the active report"),
		mcp.WithString("name", mcp.Description("Report name (optional)")),
	), s.handleCreateReport)

	// ── list_reports ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_reports",
		mcp.WithDescription("List the open reports with their row/column/element counts"),
	), s.handleListReports)

	// ── set_active_report ──────────────────────────────
	s.mcp.AddTool(mcp.NewTool("set_active_report",
		mcp.WithDescription("Choose the report used when a tool call omits reportId"),
		mcp.WithString("reportId", mcp.Description("Report ID"), mcp.Required()),
	), s.handleSetActiveReport)

	// ── close_report ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("close_report",
		mcp.WithDescription("Close a report and discard its undo history"),
		mcp.WithString("reportId", mcp.Description("Report ID (optional, defaults to active report)")),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleCloseReport)

	// ── get_report ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("get_report",
		mcp.WithDescription("Get the full layout tree of a report with its undo/redo state"),
		mcp.WithString("reportId", mcp.Description("Report ID (optional, defaults to active report)")),
	), s.handleGetReport)
}

func boolPtr(v bool) *bool { return &v }

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleCreateReport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	info, err := s.designer.CreateReport(s.handlerCtx(ctx), getString(args, "name"))
	if err != nil {
		return nil, err
	}
	s.setActive(info.ID)
	return jsonResult(info)
}

func (s *Server) handleListReports(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	type reportSummary struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Active   bool   `json:"active"`
		Rows     int    `json:"rows"`
		Columns  int    `json:"columns"`
		Elements int    `json:"elements"`
	}

	active := s.active()
	reports := s.designer.ListReports()
	out := make([]reportSummary, len(reports))
	for i, r := range reports {
		out[i] = reportSummary{
			ID:       r.ID,
			Name:     r.Name,
			Active:   r.ID == active,
			Rows:     r.Stats.Rows,
			Columns:  r.Stats.Columns,
			Elements: r.Stats.Elements,
		}
	}
	return jsonResult(out)
}

func (s *Server) handleSetActiveReport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	reportID, err := requireString(req.GetArguments(), "reportId")
	if err != nil {
		return nil, err
	}
	if _, err := s.designer.GetReportState(reportID); err != nil {
		return nil, err
	}
	s.setActive(reportID)
	return textResult(fmt.Sprintf("Active report set to %s", reportID)), nil
}

func (s *Server) handleCloseReport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	reportID, err := s.resolveReportID(req.GetArguments())
	if err != nil {
		return nil, err
	}
	if err := s.designer.CloseReport(s.handlerCtx(ctx), reportID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if s.activeReportID == reportID {
		s.activeReportID = ""
	}
	s.mu.Unlock()
	return textResult(fmt.Sprintf("Report %s closed", reportID)), nil
}

func (s *Server) handleGetReport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	reportID, err := s.resolveReportID(req.GetArguments())
	if err != nil {
		return nil, err
	}
	state, err := s.designer.GetReportState(reportID)
	if err != nil {
		return nil, err
	}
	return jsonResult(state)
}
