// Package history provides snapshot-based undo/redo for the layout designer.
//
// Every edit goes through a single Manager. Before an edit runs, the manager
// stores a deep copy of the current document on the undo stack and throws
// the redo stack away:
//
//	h := history.NewManager(domain.NewDocument(), 100)
//	doc, err := h.ApplyNamed("Add row", layout.AddRow())
//
// Undo and Redo only move documents between the two stacks; the edit
// logic is never run again:
//
//	h.Undo()
//	h.Redo()
//
// Several edits can be recorded as one step:
//
//	h.Transaction("Add header", layout.AddRow(), layout.AddColumn("row-1"))
//
// The undo stack is capped (DefaultMaxEntries unless configured); the
// oldest snapshots fall off first.
package history
