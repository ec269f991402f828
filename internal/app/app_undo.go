package app

import "reportdesigner/internal/service"

// ============================================================
// Undo / Redo
// ============================================================

func (a *App) Undo(reportID string) (*service.ReportState, error) {
	return a.designer.Undo(a.ctx, reportID)
}

func (a *App) Redo(reportID string) (*service.ReportState, error) {
	return a.designer.Redo(a.ctx, reportID)
}

// CanUndo drives the enabled state of the undo button.
func (a *App) CanUndo(reportID string) (bool, error) {
	return a.designer.CanUndo(reportID)
}

// CanRedo drives the enabled state of the redo button.
func (a *App) CanRedo(reportID string) (bool, error) {
	return a.designer.CanRedo(reportID)
}

func (a *App) GetHistory(reportID string) (*service.HistoryView, error) {
	return a.designer.GetHistory(reportID)
}
