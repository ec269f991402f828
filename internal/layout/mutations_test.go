package layout

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"reportdesigner/internal/domain"
	"reportdesigner/internal/history"
)

var equateEmpty = cmpopts.EquateEmpty()

// run applies mutations in order, failing the test on the first error.
func run(t *testing.T, doc *domain.Document, muts ...Mutation) *domain.Document {
	t.Helper()
	for i, m := range muts {
		next, err := m(doc)
		if err != nil {
			t.Fatalf("mutation %d: %v", i, err)
		}
		if err := next.Validate(); err != nil {
			t.Fatalf("mutation %d produced an invalid tree: %v", i, err)
		}
		doc = next
	}
	return doc
}

// threeColumns returns row-1 holding col-row-1-1..3.
func threeColumns(t *testing.T) *domain.Document {
	return run(t, domain.NewDocument(), AddRow(), AddColumn("row-1"), AddColumn("row-1"), AddColumn("row-1"))
}

func columnOrder(doc *domain.Document, rowID string) []string {
	return doc.Rows[rowID].ColumnIDs
}

func TestAddRow(t *testing.T) {
	doc := run(t, domain.NewDocument(), AddRow(), AddRow())

	if diff := cmp.Diff([]string{"row-1", "row-2"}, doc.RowIDs); diff != "" {
		t.Errorf("row order (-want +got):\n%s", diff)
	}
	if len(doc.Rows["row-2"].ColumnIDs) != 0 {
		t.Error("new row should have no columns")
	}
}

func TestAddColumn(t *testing.T) {
	doc := threeColumns(t)
	want := []string{"col-row-1-1", "col-row-1-2", "col-row-1-3"}
	if diff := cmp.Diff(want, columnOrder(doc, "row-1")); diff != "" {
		t.Errorf("columns (-want +got):\n%s", diff)
	}

	same := run(t, doc, AddColumn("row-404"))
	if same != doc {
		t.Error("AddColumn on a missing row should return the input unchanged")
	}
}

func TestAddElement(t *testing.T) {
	doc := run(t, domain.NewDocument(), AddRow(), AddColumn("row-1"),
		AddElement("row-1", "col-row-1-1", domain.ElementTypeText),
		AddElement("row-1", "col-row-1-1", domain.ElementTypeChart),
	)

	col := doc.Columns["col-row-1-1"]
	if diff := cmp.Diff([]string{"col-row-1-1-1", "col-row-1-1-2"}, col.ElementIDs); diff != "" {
		t.Fatalf("elements (-want +got):\n%s", diff)
	}
	el := doc.Elements["col-row-1-1-2"]
	if el.Type != domain.ElementTypeChart || el.Content != "" || len(el.Style) != 0 {
		t.Errorf("unexpected element %+v", el)
	}
}

func TestAddElement_NotFoundIsNoop(t *testing.T) {
	doc := run(t, domain.NewDocument(), AddRow(), AddRow(), AddColumn("row-1"))

	tests := []struct {
		name          string
		rowID, column string
	}{
		{"missing row", "row-9", "col-row-1-1"},
		{"missing column", "row-1", "col-row-1-9"},
		{"column in other row", "row-2", "col-row-1-1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := run(t, doc, AddElement(tt.rowID, tt.column, domain.ElementTypeText))
			if diff := cmp.Diff(doc, got); diff != "" {
				t.Errorf("document changed:\n%s", diff)
			}
		})
	}
}

func TestAddElement_UnknownType(t *testing.T) {
	doc := run(t, domain.NewDocument(), AddRow(), AddColumn("row-1"))
	_, err := AddElement("row-1", "col-row-1-1", "hologram")(doc)
	if !errors.Is(err, domain.ErrUnknownElementType) {
		t.Errorf("expected ErrUnknownElementType, got %v", err)
	}
}

func TestMoveColumn(t *testing.T) {
	tests := []struct {
		name   string
		column string
		dir    Direction
		want   []string
	}{
		{"first left is noop", "col-row-1-1", Left, []string{"col-row-1-1", "col-row-1-2", "col-row-1-3"}},
		{"last right is noop", "col-row-1-3", Right, []string{"col-row-1-1", "col-row-1-2", "col-row-1-3"}},
		{"middle left", "col-row-1-2", Left, []string{"col-row-1-2", "col-row-1-1", "col-row-1-3"}},
		{"middle right", "col-row-1-2", Right, []string{"col-row-1-1", "col-row-1-3", "col-row-1-2"}},
		{"first right", "col-row-1-1", Right, []string{"col-row-1-2", "col-row-1-1", "col-row-1-3"}},
		{"unknown column", "col-row-1-9", Left, []string{"col-row-1-1", "col-row-1-2", "col-row-1-3"}},
		{"bad direction", "col-row-1-2", Direction("up"), []string{"col-row-1-1", "col-row-1-2", "col-row-1-3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := threeColumns(t)
			got := run(t, doc, MoveColumn("row-1", tt.column, tt.dir))
			if diff := cmp.Diff(tt.want, columnOrder(got, "row-1")); diff != "" {
				t.Errorf("order (-want +got):\n%s", diff)
			}
			// input untouched
			if diff := cmp.Diff(threeColumns(t), doc); diff != "" {
				t.Errorf("input modified:\n%s", diff)
			}
		})
	}
}

func TestDeleteElement(t *testing.T) {
	doc := run(t, domain.NewDocument(), AddRow(), AddColumn("row-1"), AddRow(), AddColumn("row-2"),
		AddElement("row-1", "col-row-1-1", domain.ElementTypeText),
		AddElement("row-2", "col-row-2-1", domain.ElementTypeTable),
		AddElement("row-2", "col-row-2-1", domain.ElementTypeText),
	)

	got := run(t, doc, DeleteElement("col-row-2-1-1"))
	if diff := cmp.Diff([]string{"col-row-2-1-2"}, got.Columns["col-row-2-1"].ElementIDs); diff != "" {
		t.Errorf("remaining elements (-want +got):\n%s", diff)
	}
	if _, ok := got.Elements["col-row-2-1-1"]; ok {
		t.Error("element still in table")
	}

	// id is not reused after deletion
	got = run(t, got, AddElement("row-2", "col-row-2-1", domain.ElementTypeText))
	if _, ok := got.Elements["col-row-2-1-3"]; !ok {
		t.Errorf("expected fresh id col-row-2-1-3, have %v", got.Columns["col-row-2-1"].ElementIDs)
	}
}

func TestDeleteElement_UnknownIDLeavesStructureEqual(t *testing.T) {
	doc := run(t, threeColumns(t), AddElement("row-1", "col-row-1-2", domain.ElementTypeText))
	got := run(t, doc, DeleteElement("nope"))
	if diff := cmp.Diff(doc, got, equateEmpty); diff != "" {
		t.Errorf("document changed:\n%s", diff)
	}
}

func TestDeleteColumnAndRow(t *testing.T) {
	doc := run(t, threeColumns(t),
		AddElement("row-1", "col-row-1-2", domain.ElementTypeText),
		AddRow(),
	)

	got := run(t, doc, DeleteColumn("row-1", "col-row-1-2"))
	if diff := cmp.Diff([]string{"col-row-1-1", "col-row-1-3"}, columnOrder(got, "row-1")); diff != "" {
		t.Errorf("columns (-want +got):\n%s", diff)
	}
	if len(got.Elements) != 0 {
		t.Errorf("elements of deleted column remain: %v", got.Elements)
	}

	if noop := run(t, got, DeleteColumn("row-2", "col-row-1-1")); noop != got {
		t.Error("deleting a column through the wrong row should be a no-op")
	}

	got = run(t, got, DeleteRow("row-1"))
	if diff := cmp.Diff([]string{"row-2"}, got.RowIDs); diff != "" {
		t.Errorf("rows (-want +got):\n%s", diff)
	}
	if len(got.Columns) != 0 {
		t.Errorf("columns of deleted row remain: %v", got.Columns)
	}

	// row ids keep counting after a delete
	got = run(t, got, AddRow())
	if got.RowIDs[len(got.RowIDs)-1] != "row-3" {
		t.Errorf("new row id = %s, want row-3", got.RowIDs[len(got.RowIDs)-1])
	}
}

func TestSetElementContent(t *testing.T) {
	doc := run(t, threeColumns(t), AddElement("row-1", "col-row-1-1", domain.ElementTypeText),
		SetElementStyle("col-row-1-1-1", domain.StyleColor, "red"),
	)
	got := run(t, doc, SetElementContent("col-row-1-1-1", "<b>Quarterly</b>"))

	el := got.Elements["col-row-1-1-1"]
	if el.Content != "<b>Quarterly</b>" {
		t.Errorf("content = %q", el.Content)
	}
	if el.Style[domain.StyleColor] != "red" {
		t.Error("content edit should leave styles intact")
	}
	if doc.Elements["col-row-1-1-1"].Content != "" {
		t.Error("input modified")
	}
}

func TestSetElementStyle_Merges(t *testing.T) {
	doc := run(t, threeColumns(t), AddElement("row-1", "col-row-1-1", domain.ElementTypeText))
	got := run(t, doc,
		SetElementStyle("col-row-1-1-1", "fontSize", "18px"),
		SetElementStyle("col-row-1-1-1", "color", "#fff"),
	)

	want := domain.Style{"fontSize": "18px", "color": "#fff"}
	if diff := cmp.Diff(want, got.Elements["col-row-1-1-1"].Style); diff != "" {
		t.Errorf("style (-want +got):\n%s", diff)
	}

	got = run(t, got, SetElementStyle("col-row-1-1-1", "fontSize", "20px"))
	if got.Elements["col-row-1-1-1"].Style["fontSize"] != "20px" {
		t.Error("last write should win")
	}

	if noop := run(t, got, SetElementStyle("col-row-1-1-1", "", "x")); noop != got {
		t.Error("empty style key should be a no-op")
	}
}

func TestSetElementStyles_CapturesCopy(t *testing.T) {
	doc := run(t, threeColumns(t), AddElement("row-1", "col-row-1-1", domain.ElementTypeText))
	buf := domain.Style{"color": "blue"}
	m := SetElementStyles("col-row-1-1-1", buf)
	buf["color"] = "green"

	got := run(t, doc, m)
	if got.Elements["col-row-1-1-1"].Style["color"] != "blue" {
		t.Error("mutation should not see later writes to the caller's map")
	}
}

func TestApplyToolbar(t *testing.T) {
	doc := run(t, threeColumns(t), AddElement("row-1", "col-row-1-1", domain.ElementTypeText))
	styles := domain.Style{domain.StyleFontWeight: "bold", domain.StyleTextAlign: "center"}

	if got := run(t, doc, ApplyToolbar(Selection{}, styles)); got != doc {
		t.Error("toolbar with no selection should be a no-op")
	}

	got := run(t, doc, ApplyToolbar(Selection{ElementID: "col-row-1-1-1"}, styles))
	if diff := cmp.Diff(styles, got.Elements["col-row-1-1-1"].Style); diff != "" {
		t.Errorf("style (-want +got):\n%s", diff)
	}
}

func TestParseDirection(t *testing.T) {
	for in, want := range map[string]Direction{"left": Left, "RIGHT": Right, " Left ": Left} {
		got, err := ParseDirection(in)
		if err != nil || got != want {
			t.Errorf("ParseDirection(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseDirection("up"); err == nil {
		t.Error("expected error for invalid direction")
	}
}

// ── History scenarios ─────────────────────────────────────

func newHistory() *history.Manager[*domain.Document] {
	return history.NewManager(domain.NewDocument(), 0)
}

func apply(t *testing.T, h *history.Manager[*domain.Document], m Mutation) *domain.Document {
	t.Helper()
	doc, err := h.Apply(m)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	return doc
}

func TestScenario_BuildThenUndoToEmpty(t *testing.T) {
	h := newHistory()
	apply(t, h, AddRow())
	apply(t, h, AddColumn("row-1"))
	doc := apply(t, h, AddElement("row-1", "col-row-1-1", "text"))

	tree := doc.Tree()
	if len(tree) != 1 || len(tree[0].Columns) != 1 || len(tree[0].Columns[0].Elements) != 1 {
		t.Fatalf("unexpected tree %+v", tree)
	}
	if tree[0].Columns[0].Elements[0].Content != "" {
		t.Error("new element should have empty content")
	}

	for i := 0; i < 3; i++ {
		h.Undo()
	}
	if n := len(h.Current().RowIDs); n != 0 {
		t.Errorf("after three undos document has %d rows", n)
	}
	if diff := cmp.Diff(domain.NewDocument(), h.Current(), equateEmpty); diff != "" {
		t.Errorf("not back to the initial document:\n%s", diff)
	}
}

func TestScenario_ApplyAfterUndoDropsRedo(t *testing.T) {
	h := newHistory()
	apply(t, h, AddRow())
	apply(t, h, AddRow())
	h.Undo()
	doc := apply(t, h, AddRow())

	if len(doc.RowIDs) != 2 {
		t.Fatalf("want 2 rows, got %v", doc.RowIDs)
	}
	if doc.RowIDs[1] != "row-2" {
		t.Errorf("second row = %s, want row-2 (counter rewound by undo)", doc.RowIDs[1])
	}
	if got, ok := h.Redo(); ok || got != doc {
		t.Error("redo after apply should be a no-op")
	}
}

func TestScenario_RedoRestoresExactDocument(t *testing.T) {
	h := newHistory()
	apply(t, h, AddRow())
	apply(t, h, AddColumn("row-1"))
	apply(t, h, AddElement("row-1", "col-row-1-1", domain.ElementTypeTable))
	before := apply(t, h, SetElementStyle("col-row-1-1-1", "borderStyle", "dashed")).Clone()

	h.Undo()
	after, ok := h.Redo()
	if !ok {
		t.Fatal("redo reported nothing to replay")
	}
	if diff := cmp.Diff(before, after); diff != "" {
		t.Errorf("redo did not restore the document (-want +got):\n%s", diff)
	}
}

func TestScenario_UndoEveryApply(t *testing.T) {
	muts := []Mutation{
		AddRow(), AddRow(), AddColumn("row-1"), AddColumn("row-1"), AddColumn("row-2"),
		AddElement("row-1", "col-row-1-2", domain.ElementTypeText),
		MoveColumn("row-1", "col-row-1-2", Left),
		SetElementContent("col-row-1-2-1", "Title"),
		SetElementStyle("col-row-1-2-1", "fontSize", "24px"),
		DeleteElement("missing"),
		DeleteColumn("row-2", "col-row-2-1"),
		DeleteRow("row-2"),
	}
	h := newHistory()
	for _, m := range muts {
		apply(t, h, m)
		if err := h.Current().Validate(); err != nil {
			t.Fatalf("invalid tree: %v", err)
		}
	}
	for range muts {
		h.Undo()
	}
	if diff := cmp.Diff(domain.NewDocument(), h.Current(), equateEmpty); diff != "" {
		t.Errorf("not back to the initial document:\n%s", diff)
	}
	if h.CanUndo() {
		t.Error("undo stack should be exhausted")
	}
}

func TestScenario_FailedMutationKeepsHistory(t *testing.T) {
	h := newHistory()
	apply(t, h, AddRow())
	apply(t, h, AddColumn("row-1"))

	_, err := h.Apply(AddElement("row-1", "col-row-1-1", "video"))
	if !errors.Is(err, domain.ErrUnknownElementType) {
		t.Fatalf("expected ErrUnknownElementType, got %v", err)
	}
	if h.UndoCount() != 2 || len(h.Current().Elements) != 0 {
		t.Errorf("failed apply changed state: undo=%d elements=%d", h.UndoCount(), len(h.Current().Elements))
	}
}
