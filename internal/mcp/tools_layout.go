package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"reportdesigner/internal/domain"
	"reportdesigner/internal/layout"
	"reportdesigner/internal/service"
)

func (s *Server) registerLayoutTools() {
	reportIDArg := mcp.WithString("reportId", mcp.Description("Report ID (optional, defaults to active report)"))

	// ── add_row ────────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("add_row",
		mcp.WithDescription("Append an empty row to the report. New rows are named row-1, row-2, ..."),
		reportIDArg,
	), s.handleAddRow)

	// ── add_column ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("add_column",
		mcp.WithDescription("Append an empty column to a row. Column ids look like col-row-1-1"),
		reportIDArg,
		mcp.WithString("rowId", mcp.Description("Row ID"), mcp.Required()),
	), s.handleAddColumn)

	// ── add_element ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("add_element",
		mcp.WithDescription("Drop a new element with empty content into a column"),
		reportIDArg,
		mcp.WithString("rowId", mcp.Description("Row ID"), mcp.Required()),
		mcp.WithString("columnId", mcp.Description("Column ID inside that row"), mcp.Required()),
		mcp.WithString("type",
			mcp.Description("Element type"),
			mcp.Enum("text", "table", "chart"),
			mcp.Required(),
		),
	), s.handleAddElement)

	// ── move_column ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("move_column",
		mcp.WithDescription("Swap a column with its neighbour. Moving past either end of the row does nothing"),
		reportIDArg,
		mcp.WithString("rowId", mcp.Description("Row ID"), mcp.Required()),
		mcp.WithString("columnId", mcp.Description("Column ID"), mcp.Required()),
		mcp.WithString("direction", mcp.Description("Direction"), mcp.Enum("left", "right"), mcp.Required()),
	), s.handleMoveColumn)

	// ── delete_element ─────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("delete_element",
		mcp.WithDescription("Remove an element. Undoable"),
		reportIDArg,
		mcp.WithString("elementId", mcp.Description("Element ID"), mcp.Required()),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleDeleteElement)

	// ── delete_column ──────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("delete_column",
		mcp.WithDescription("Remove a column and its elements. Undoable"),
		reportIDArg,
		mcp.WithString("rowId", mcp.Description("Row ID"), mcp.Required()),
		mcp.WithString("columnId", mcp.Description("Column ID"), mcp.Required()),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleDeleteColumn)

	// ── delete_row ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("delete_row",
		mcp.WithDescription("Remove a row with all its columns and elements. Undoable"),
		reportIDArg,
		mcp.WithString("rowId", mcp.Description("Row ID"), mcp.Required()),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleDeleteRow)

	// ── set_element_content ────────────────────────────
	s.mcp.AddTool(mcp.NewTool("set_element_content",
		mcp.WithDescription("Replace the rich-text (HTML) content of an element. Styles are kept"),
		reportIDArg,
		mcp.WithString("elementId", mcp.Description("Element ID"), mcp.Required()),
		mcp.WithString("content", mcp.Description("New content"), mcp.Required()),
	), s.handleSetElementContent)

	// ── set_element_style ──────────────────────────────
	s.mcp.AddTool(mcp.NewTool("set_element_style",
		mcp.WithDescription("Merge style properties into an element. Pass key and value for one property, or styles as a JSON object for several in one undo step"),
		reportIDArg,
		mcp.WithString("elementId", mcp.Description("Element ID"), mcp.Required()),
		mcp.WithString("key", mcp.Description("Style key, e.g. fontSize, color, textAlign")),
		mcp.WithString("value", mcp.Description("Style value, e.g. 18px")),
		mcp.WithString("styles", mcp.Description(`JSON object of style keys to values, e.g. {"fontWeight":"bold"}`)),
	), s.handleSetElementStyle)
}

// ── Handlers ───────────────────────────────────────────────

// editFunc runs one designer edit against a resolved report.
type editFunc func(ctx context.Context, reportID string, args map[string]any) (*service.ReportState, error)

// edit resolves the report, runs fn and returns the resulting tree.
func (s *Server) edit(fn editFunc) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()
		reportID, err := s.resolveReportID(args)
		if err != nil {
			return nil, err
		}
		state, err := fn(s.handlerCtx(ctx), reportID, args)
		if err != nil {
			return nil, err
		}
		return jsonResult(state)
	}
}

func (s *Server) handleAddRow(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.edit(func(ctx context.Context, reportID string, _ map[string]any) (*service.ReportState, error) {
		return s.designer.AddRow(ctx, reportID)
	})(ctx, req)
}

func (s *Server) handleAddColumn(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.edit(func(ctx context.Context, reportID string, args map[string]any) (*service.ReportState, error) {
		rowID, err := requireString(args, "rowId")
		if err != nil {
			return nil, err
		}
		return s.designer.AddColumn(ctx, reportID, rowID)
	})(ctx, req)
}

func (s *Server) handleAddElement(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.edit(func(ctx context.Context, reportID string, args map[string]any) (*service.ReportState, error) {
		v, err := requireStrings(args, "rowId", "columnId", "type")
		if err != nil {
			return nil, err
		}
		return s.designer.AddElement(ctx, reportID, v[0], v[1], v[2])
	})(ctx, req)
}

func (s *Server) handleMoveColumn(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.edit(func(ctx context.Context, reportID string, args map[string]any) (*service.ReportState, error) {
		v, err := requireStrings(args, "rowId", "columnId", "direction")
		if err != nil {
			return nil, err
		}
		return s.designer.MoveColumn(ctx, reportID, v[0], v[1], v[2])
	})(ctx, req)
}

func (s *Server) handleDeleteElement(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.edit(func(ctx context.Context, reportID string, args map[string]any) (*service.ReportState, error) {
		elementID, err := requireString(args, "elementId")
		if err != nil {
			return nil, err
		}
		return s.designer.DeleteElement(ctx, reportID, elementID)
	})(ctx, req)
}

func (s *Server) handleDeleteColumn(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.edit(func(ctx context.Context, reportID string, args map[string]any) (*service.ReportState, error) {
		v, err := requireStrings(args, "rowId", "columnId")
		if err != nil {
			return nil, err
		}
		return s.designer.DeleteColumn(ctx, reportID, v[0], v[1])
	})(ctx, req)
}

func (s *Server) handleDeleteRow(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.edit(func(ctx context.Context, reportID string, args map[string]any) (*service.ReportState, error) {
		rowID, err := requireString(args, "rowId")
		if err != nil {
			return nil, err
		}
		return s.designer.DeleteRow(ctx, reportID, rowID)
	})(ctx, req)
}

func (s *Server) handleSetElementContent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.edit(func(ctx context.Context, reportID string, args map[string]any) (*service.ReportState, error) {
		elementID, err := requireString(args, "elementId")
		if err != nil {
			return nil, err
		}
		// content is taken verbatim; whitespace can matter in rich text
		content, ok := args["content"].(string)
		if !ok {
			return nil, fmt.Errorf("content is required")
		}
		return s.designer.SetElementContent(ctx, reportID, elementID, content)
	})(ctx, req)
}

func (s *Server) handleSetElementStyle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.edit(func(ctx context.Context, reportID string, args map[string]any) (*service.ReportState, error) {
		elementID, err := requireString(args, "elementId")
		if err != nil {
			return nil, err
		}

		if raw := getString(args, "styles"); raw != "" {
			var styles domain.Style
			if err := parseJSON(raw, &styles); err != nil {
				return nil, fmt.Errorf("styles must be a JSON object of strings: %w", err)
			}
			return s.designer.ApplyToolbarStyles(ctx, reportID, layout.Selection{ElementID: elementID}, styles)
		}

		key := getString(args, "key")
		if key == "" {
			return nil, fmt.Errorf("either key or styles is required")
		}
		value, _ := args["value"].(string)
		return s.designer.SetElementStyle(ctx, reportID, elementID, key, strings.TrimSpace(value))
	})(ctx, req)
}
