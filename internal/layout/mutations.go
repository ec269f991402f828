// Package layout holds the edits a designer can make to a report document.
//
// Each helper returns a Mutation for history.Manager.Apply. Mutations never
// modify their input; they clone it and return the edited copy. A helper
// that references a row, column or element that does not exist returns the
// document unchanged, so a stale id coming from an old render cannot break
// the editor.
package layout

import (
	"fmt"
	"slices"

	"reportdesigner/internal/domain"
	"reportdesigner/internal/history"
)

// Mutation is a document edit understood by the history manager.
type Mutation = history.Mutation[*domain.Document]

// AddRow appends an empty row.
func AddRow() Mutation {
	return func(doc *domain.Document) (*domain.Document, error) {
		next := doc.Clone()
		next.NextRow++
		id := domain.RowID(next.NextRow)
		next.Rows[id] = domain.Row{ID: id, ColumnIDs: []string{}}
		next.RowIDs = append(next.RowIDs, id)
		return next, nil
	}
}

// AddColumn appends an empty column to rowID.
func AddColumn(rowID string) Mutation {
	return func(doc *domain.Document) (*domain.Document, error) {
		if _, ok := doc.Row(rowID); !ok {
			return doc, nil
		}
		next := doc.Clone()
		row := next.Rows[rowID]
		row.NextColumn++
		id := domain.ColumnID(rowID, row.NextColumn)
		row.ColumnIDs = append(row.ColumnIDs, id)
		next.Rows[rowID] = row
		next.Columns[id] = domain.Column{ID: id, ElementIDs: []string{}}
		return next, nil
	}
}

// AddElement appends an element with empty content and style to columnID.
// The column must belong to rowID.
func AddElement(rowID, columnID string, elementType domain.ElementType) Mutation {
	return func(doc *domain.Document) (*domain.Document, error) {
		if !elementType.Valid() {
			return nil, fmt.Errorf("add element: %w: %q", domain.ErrUnknownElementType, elementType)
		}
		row, ok := doc.Row(rowID)
		if !ok || !slices.Contains(row.ColumnIDs, columnID) {
			return doc, nil
		}
		next := doc.Clone()
		col := next.Columns[columnID]
		col.NextElement++
		id := domain.ElementID(columnID, col.NextElement)
		col.ElementIDs = append(col.ElementIDs, id)
		next.Columns[columnID] = col
		next.Elements[id] = domain.Element{
			ID:    id,
			Type:  elementType,
			Style: domain.Style{},
		}
		return next, nil
	}
}

// MoveColumn swaps columnID with its neighbour in the given direction.
// Moving past either end of the row does nothing.
func MoveColumn(rowID, columnID string, dir Direction) Mutation {
	return func(doc *domain.Document) (*domain.Document, error) {
		row, ok := doc.Row(rowID)
		if !ok {
			return doc, nil
		}
		i := slices.Index(row.ColumnIDs, columnID)
		if i < 0 {
			return doc, nil
		}
		j := i + dir.offset()
		if j < 0 || j >= len(row.ColumnIDs) || j == i {
			return doc, nil
		}
		next := doc.Clone()
		row = next.Rows[rowID]
		row.ColumnIDs[i], row.ColumnIDs[j] = row.ColumnIDs[j], row.ColumnIDs[i]
		next.Rows[rowID] = row
		return next, nil
	}
}

// DeleteElement removes elementID from whichever column holds it.
func DeleteElement(elementID string) Mutation {
	return func(doc *domain.Document) (*domain.Document, error) {
		colID, ok := doc.ColumnOf(elementID)
		if !ok {
			return doc, nil
		}
		next := doc.Clone()
		col := next.Columns[colID]
		col.ElementIDs = slices.DeleteFunc(col.ElementIDs, func(id string) bool { return id == elementID })
		next.Columns[colID] = col
		delete(next.Elements, elementID)
		return next, nil
	}
}

// DeleteColumn removes columnID and its elements from rowID.
func DeleteColumn(rowID, columnID string) Mutation {
	return func(doc *domain.Document) (*domain.Document, error) {
		row, ok := doc.Row(rowID)
		if !ok || !slices.Contains(row.ColumnIDs, columnID) {
			return doc, nil
		}
		next := doc.Clone()
		row = next.Rows[rowID]
		row.ColumnIDs = slices.DeleteFunc(row.ColumnIDs, func(id string) bool { return id == columnID })
		next.Rows[rowID] = row
		dropColumn(next, columnID)
		return next, nil
	}
}

// DeleteRow removes rowID with all of its columns and elements.
func DeleteRow(rowID string) Mutation {
	return func(doc *domain.Document) (*domain.Document, error) {
		row, ok := doc.Row(rowID)
		if !ok {
			return doc, nil
		}
		next := doc.Clone()
		for _, colID := range row.ColumnIDs {
			dropColumn(next, colID)
		}
		next.RowIDs = slices.DeleteFunc(next.RowIDs, func(id string) bool { return id == rowID })
		delete(next.Rows, rowID)
		return next, nil
	}
}

// dropColumn removes a column and its elements from the tables. The caller
// is responsible for unlinking it from its row.
func dropColumn(doc *domain.Document, columnID string) {
	for _, elID := range doc.Columns[columnID].ElementIDs {
		delete(doc.Elements, elID)
	}
	delete(doc.Columns, columnID)
}

// SetElementContent replaces the content of elementID. Style is untouched.
func SetElementContent(elementID, content string) Mutation {
	return func(doc *domain.Document) (*domain.Document, error) {
		if _, ok := doc.Element(elementID); !ok {
			return doc, nil
		}
		next := doc.Clone()
		el := next.Elements[elementID]
		el.Content = content
		next.Elements[elementID] = el
		return next, nil
	}
}

// SetElementStyle sets one style key on elementID, keeping the others.
func SetElementStyle(elementID, key, value string) Mutation {
	styles := domain.Style{}
	if key != "" {
		styles[key] = value
	}
	return SetElementStyles(elementID, styles)
}

// SetElementStyles merges styles into elementID's style. Later keys win.
func SetElementStyles(elementID string, styles domain.Style) Mutation {
	styles = styles.Clone()
	return func(doc *domain.Document) (*domain.Document, error) {
		if _, ok := doc.Element(elementID); !ok || len(styles) == 0 {
			return doc, nil
		}
		next := doc.Clone()
		el := next.Elements[elementID]
		el.Style = el.Style.Merge(styles)
		next.Elements[elementID] = el
		return next, nil
	}
}
