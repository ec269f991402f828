package domain

import (
	"fmt"
	"slices"
)

// Element is a single report item placed inside a column.
type Element struct {
	ID      string      `json:"id"`
	Type    ElementType `json:"type"`
	Content string      `json:"content"` // plain text or HTML from the rich-text widget
	Style   Style       `json:"style"`
}

// Column holds an ordered list of element ids.
type Column struct {
	ID          string   `json:"id"`
	ElementIDs  []string `json:"elementIds"`
	NextElement int      `json:"nextElement"` // counter used to mint element ids
}

// Row holds an ordered list of column ids.
type Row struct {
	ID         string   `json:"id"`
	ColumnIDs  []string `json:"columnIds"`
	NextColumn int      `json:"nextColumn"` // counter used to mint column ids
}

// Document is the report layout. Rows, columns and elements live in flat
// tables keyed by id; order is carried by the id lists on each level.
type Document struct {
	RowIDs   []string           `json:"rowIds"`
	Rows     map[string]Row     `json:"rows"`
	Columns  map[string]Column  `json:"columns"`
	Elements map[string]Element `json:"elements"`
	NextRow  int                `json:"nextRow"`
}

// NewDocument returns an empty layout.
func NewDocument() *Document {
	return &Document{
		RowIDs:   []string{},
		Rows:     map[string]Row{},
		Columns:  map[string]Column{},
		Elements: map[string]Element{},
	}
}

// Clone returns a deep copy that shares no memory with d.
func (d *Document) Clone() *Document {
	c := &Document{
		RowIDs:   slices.Clone(d.RowIDs),
		Rows:     make(map[string]Row, len(d.Rows)),
		Columns:  make(map[string]Column, len(d.Columns)),
		Elements: make(map[string]Element, len(d.Elements)),
		NextRow:  d.NextRow,
	}
	if c.RowIDs == nil {
		c.RowIDs = []string{}
	}
	for id, r := range d.Rows {
		r.ColumnIDs = cloneIDs(r.ColumnIDs)
		c.Rows[id] = r
	}
	for id, col := range d.Columns {
		col.ElementIDs = cloneIDs(col.ElementIDs)
		c.Columns[id] = col
	}
	for id, el := range d.Elements {
		el.Style = el.Style.Clone()
		c.Elements[id] = el
	}
	return c
}

func cloneIDs(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return slices.Clone(ids)
}

// Row returns the row with the given id.
func (d *Document) Row(id string) (Row, bool) {
	r, ok := d.Rows[id]
	return r, ok
}

// Column returns the column with the given id.
func (d *Document) Column(id string) (Column, bool) {
	c, ok := d.Columns[id]
	return c, ok
}

// Element returns the element with the given id.
func (d *Document) Element(id string) (Element, bool) {
	e, ok := d.Elements[id]
	return e, ok
}

// ColumnOf returns the id of the column containing elementID.
// Ids are unique document-wide, so at most one column matches.
func (d *Document) ColumnOf(elementID string) (string, bool) {
	for _, rowID := range d.RowIDs {
		for _, colID := range d.Rows[rowID].ColumnIDs {
			if slices.Contains(d.Columns[colID].ElementIDs, elementID) {
				return colID, true
			}
		}
	}
	return "", false
}

// RowOf returns the id of the row containing columnID.
func (d *Document) RowOf(columnID string) (string, bool) {
	for _, rowID := range d.RowIDs {
		if slices.Contains(d.Rows[rowID].ColumnIDs, columnID) {
			return rowID, true
		}
	}
	return "", false
}

// Validate checks that the tables and id lists form a tree: every column is
// listed by exactly one row, every element by exactly one column, and no
// list references a missing entry.
func (d *Document) Validate() error {
	seenRows := make(map[string]bool, len(d.RowIDs))
	colOwner := make(map[string]string, len(d.Columns))
	elOwner := make(map[string]string, len(d.Elements))

	for _, rowID := range d.RowIDs {
		if seenRows[rowID] {
			return fmt.Errorf("row %s listed twice", rowID)
		}
		seenRows[rowID] = true
		row, ok := d.Rows[rowID]
		if !ok {
			return fmt.Errorf("row %s missing from table", rowID)
		}
		for _, colID := range row.ColumnIDs {
			if owner, dup := colOwner[colID]; dup {
				return fmt.Errorf("column %s shared by rows %s and %s", colID, owner, rowID)
			}
			colOwner[colID] = rowID
			col, ok := d.Columns[colID]
			if !ok {
				return fmt.Errorf("column %s missing from table", colID)
			}
			for _, elID := range col.ElementIDs {
				if owner, dup := elOwner[elID]; dup {
					return fmt.Errorf("element %s shared by columns %s and %s", elID, owner, colID)
				}
				elOwner[elID] = colID
				if _, ok := d.Elements[elID]; !ok {
					return fmt.Errorf("element %s missing from table", elID)
				}
			}
		}
	}

	if len(seenRows) != len(d.Rows) {
		return fmt.Errorf("%d rows in table, %d listed", len(d.Rows), len(seenRows))
	}
	if len(colOwner) != len(d.Columns) {
		return fmt.Errorf("%d columns in table, %d attached", len(d.Columns), len(colOwner))
	}
	if len(elOwner) != len(d.Elements) {
		return fmt.Errorf("%d elements in table, %d attached", len(d.Elements), len(elOwner))
	}
	return nil
}

// Stats summarizes the size of a document.
type Stats struct {
	Rows     int `json:"rows"`
	Columns  int `json:"columns"`
	Elements int `json:"elements"`
}

// Stats returns the number of rows, columns and elements.
func (d *Document) Stats() Stats {
	return Stats{Rows: len(d.Rows), Columns: len(d.Columns), Elements: len(d.Elements)}
}
