package domain

import "fmt"

// Ids are minted from per-parent counters that only ever grow, so an id is
// never handed out twice within a document's history line.

// RowID returns the id of the n-th row created in a document.
func RowID(n int) string {
	return fmt.Sprintf("row-%d", n)
}

// ColumnID returns the id of the n-th column created in rowID.
func ColumnID(rowID string, n int) string {
	return fmt.Sprintf("col-%s-%d", rowID, n)
}

// ElementID returns the id of the n-th element created in columnID.
func ElementID(columnID string, n int) string {
	return fmt.Sprintf("%s-%d", columnID, n)
}
