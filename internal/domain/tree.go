package domain

// ColumnNode is a column with its elements resolved, in display order.
type ColumnNode struct {
	ID       string    `json:"id"`
	Elements []Element `json:"elements"`
}

// RowNode is a row with its columns resolved, in display order.
type RowNode struct {
	ID      string       `json:"id"`
	Columns []ColumnNode `json:"columns"`
}

// Tree resolves the flat tables into the nested Row → Column → Element
// structure the canvas renders. Elements are copies; editing them does not
// touch d.
func (d *Document) Tree() []RowNode {
	rows := make([]RowNode, 0, len(d.RowIDs))
	for _, rowID := range d.RowIDs {
		row := d.Rows[rowID]
		node := RowNode{ID: rowID, Columns: make([]ColumnNode, 0, len(row.ColumnIDs))}
		for _, colID := range row.ColumnIDs {
			col := d.Columns[colID]
			cn := ColumnNode{ID: colID, Elements: make([]Element, 0, len(col.ElementIDs))}
			for _, elID := range col.ElementIDs {
				el := d.Elements[elID]
				el.Style = el.Style.Clone()
				cn.Elements = append(cn.Elements, el)
			}
			node.Columns = append(node.Columns, cn)
		}
		rows = append(rows, node)
	}
	return rows
}
