package layout

import "reportdesigner/internal/domain"

// Selection is the caller's UI state: which element the user clicked last.
// It is passed into edits explicitly and never stored in the history.
type Selection struct {
	ElementID string `json:"elementId"`
}

// Empty reports whether nothing is selected.
func (s Selection) Empty() bool {
	return s.ElementID == ""
}

// ApplyToolbar merges the toolbar's style buffer into the selected element.
// With nothing selected the document is returned unchanged.
func ApplyToolbar(sel Selection, styles domain.Style) Mutation {
	if sel.Empty() {
		return func(doc *domain.Document) (*domain.Document, error) { return doc, nil }
	}
	return SetElementStyles(sel.ElementID, styles)
}
