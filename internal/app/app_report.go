package app

import (
	"reportdesigner/internal/domain"
	"reportdesigner/internal/layout"
	"reportdesigner/internal/service"
)

// ============================================================
// Reports
// ============================================================

func (a *App) CreateReport(name string) (*service.ReportInfo, error) {
	return a.designer.CreateReport(a.ctx, name)
}

func (a *App) ListReports() []service.ReportInfo {
	return a.designer.ListReports()
}

func (a *App) CloseReport(reportID string) error {
	return a.designer.CloseReport(a.ctx, reportID)
}

// GetReportState returns the tree the canvas renders.
func (a *App) GetReportState(reportID string) (*service.ReportState, error) {
	return a.designer.GetReportState(reportID)
}

// GetStyleKeys returns the toolbar palette.
func (a *App) GetStyleKeys() []domain.StyleOption {
	return domain.ToolbarStyles
}

// GetElementTypes returns the element types the palette can drag.
func (a *App) GetElementTypes() []domain.ElementType {
	return domain.ElementTypes
}

// ============================================================
// Layout edits
// ============================================================

func (a *App) AddRow(reportID string) (*service.ReportState, error) {
	return a.designer.AddRow(a.ctx, reportID)
}

func (a *App) AddColumn(reportID, rowID string) (*service.ReportState, error) {
	return a.designer.AddColumn(a.ctx, reportID, rowID)
}

// AddElement is called on drop with the dragged element type.
func (a *App) AddElement(reportID, rowID, columnID, elementType string) (*service.ReportState, error) {
	return a.designer.AddElement(a.ctx, reportID, rowID, columnID, elementType)
}

func (a *App) MoveColumn(reportID, rowID, columnID, direction string) (*service.ReportState, error) {
	return a.designer.MoveColumn(a.ctx, reportID, rowID, columnID, direction)
}

func (a *App) DeleteElement(reportID, elementID string) (*service.ReportState, error) {
	return a.designer.DeleteElement(a.ctx, reportID, elementID)
}

func (a *App) DeleteColumn(reportID, rowID, columnID string) (*service.ReportState, error) {
	return a.designer.DeleteColumn(a.ctx, reportID, rowID, columnID)
}

func (a *App) DeleteRow(reportID, rowID string) (*service.ReportState, error) {
	return a.designer.DeleteRow(a.ctx, reportID, rowID)
}

func (a *App) SetElementContent(reportID, elementID, content string) (*service.ReportState, error) {
	return a.designer.SetElementContent(a.ctx, reportID, elementID, content)
}

func (a *App) SetElementStyle(reportID, elementID, key, value string) (*service.ReportState, error) {
	return a.designer.SetElementStyle(a.ctx, reportID, elementID, key, value)
}

// ApplyToolbarStyles merges the toolbar buffer into the selected element.
// An empty selectedElementID leaves the report unchanged.
func (a *App) ApplyToolbarStyles(reportID, selectedElementID string, styles map[string]string) (*service.ReportState, error) {
	sel := layout.Selection{ElementID: selectedElementID}
	return a.designer.ApplyToolbarStyles(a.ctx, reportID, sel, domain.Style(styles))
}
