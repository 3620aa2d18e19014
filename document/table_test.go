package document

import (
	"errors"
	"testing"

	"github.com/dshills/wordsmith/revision"
)

func fillTable(t *testing.T, doc *Document, rows, cols int) *Table {
	t.Helper()
	tbl, err := doc.AddTable(rows, cols)
	if err != nil {
		t.Fatalf("AddTable(%d, %d): %v", rows, cols, err)
	}
	for r, row := range tbl.Rows() {
		for c, cell := range row.Cells() {
			cell.Paragraphs()[0].AddText(string(rune('a'+r)) + string(rune('0'+c)))
		}
	}
	return tbl
}

func TestAddTable(t *testing.T) {
	doc := New()
	tbl, err := doc.AddTable(2, 3)
	if err != nil {
		t.Fatalf("AddTable: %v", err)
	}
	if got := tbl.RowCount(); got != 2 {
		t.Errorf("RowCount() = %d, want 2", got)
	}
	if got := tbl.ColumnCount(); got != 3 {
		t.Errorf("ColumnCount() = %d, want 3", got)
	}
	cell, err := tbl.Cell(1, 2)
	if err != nil {
		t.Fatalf("Cell(1,2): %v", err)
	}
	if got := len(cell.Paragraphs()); got != 1 {
		t.Errorf("new cell paragraphs = %d, want 1", got)
	}

	if _, err := doc.AddTable(0, 3); !errors.Is(err, ErrTableDimensions) {
		t.Errorf("AddTable(0,3) error = %v, want ErrTableDimensions", err)
	}
	if _, err := tbl.Cell(5, 0); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Cell(5,0) error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestRemoveRowUntracked(t *testing.T) {
	doc := New()
	tbl := fillTable(t, doc, 4, 2)

	mut, err := tbl.RemoveRow(1)
	if err != nil {
		t.Fatalf("RemoveRow: %v", err)
	}
	if !mut.Applied() {
		t.Errorf("Outcome = %v, want applied", mut.Outcome)
	}
	if got := tbl.RowCount(); got != 3 {
		t.Errorf("RowCount() = %d, want 3", got)
	}
	if got, want := tbl.Rows()[1].Cells()[0].Text(), "c0"; got != want {
		t.Errorf("row 1 cell 0 = %q, want %q", got, want)
	}
}

func TestRemoveRowTrackedDefersRemoval(t *testing.T) {
	doc := New()
	tbl := fillTable(t, doc, 4, 2)
	if err := doc.EnableTracking("frank"); err != nil {
		t.Fatalf("EnableTracking: %v", err)
	}

	mut, err := tbl.RemoveRow(1)
	if err != nil {
		t.Fatalf("RemoveRow: %v", err)
	}
	if !mut.Deferred() {
		t.Errorf("Outcome = %v, want deferred", mut.Outcome)
	}
	if got := tbl.RowCount(); got != 4 {
		t.Fatalf("RowCount() = %d, want 4 (removal deferred)", got)
	}
	if got := len(mut.Marks); got != 2 {
		t.Errorf("len(Marks) = %d, want 2", got)
	}
	for c, cell := range tbl.Rows()[1].Cells() {
		mark := cell.Mark()
		if mark == nil || mark.Kind != revision.KindCellDelete {
			t.Errorf("cell %d mark = %v, want cell-delete", c, mark)
		}
		if got, want := mark.Author, "frank"; got != want {
			t.Errorf("mark author = %q, want %q", got, want)
		}
	}
	for _, cell := range tbl.Rows()[0].Cells() {
		if cell.Mark() != nil {
			t.Error("untouched row carries a mark")
		}
	}
	// The doomed text is wrapped so it reads as deleted.
	run := tbl.Rows()[1].Cells()[0].Paragraphs()[0].Runs()[0]
	if run.Deletion() == nil || run.Deletion().Kind != revision.KindDelete {
		t.Error("cell content not wrapped in a delete revision")
	}
}

func TestRemoveRowsRange(t *testing.T) {
	doc := New()
	tbl := fillTable(t, doc, 4, 2)

	if _, err := tbl.RemoveRows(2, 5); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("RemoveRows(2,5) error = %v, want ErrIndexOutOfRange", err)
	}
	if _, err := tbl.RemoveRows(0, 2); err != nil {
		t.Fatalf("RemoveRows(0,2): %v", err)
	}
	if got := tbl.RowCount(); got != 2 {
		t.Errorf("RowCount() = %d, want 2", got)
	}
}

func TestInsertRowTracked(t *testing.T) {
	doc := New()
	tbl := fillTable(t, doc, 2, 2)
	if err := doc.EnableTracking("gail"); err != nil {
		t.Fatalf("EnableTracking: %v", err)
	}

	row, err := tbl.InsertRow(1)
	if err != nil {
		t.Fatalf("InsertRow: %v", err)
	}
	if got := tbl.RowCount(); got != 3 {
		t.Fatalf("RowCount() = %d, want 3", got)
	}
	for _, cell := range row.Cells() {
		mark := cell.Mark()
		if mark == nil || mark.Kind != revision.KindCellInsert {
			t.Errorf("new cell mark = %v, want cell-insert", mark)
		}
	}
}

func TestRemoveInsertedRowNetsOut(t *testing.T) {
	doc := New()
	tbl := fillTable(t, doc, 3, 2)
	if err := doc.EnableTracking("pia"); err != nil {
		t.Fatalf("EnableTracking: %v", err)
	}
	row, err := tbl.InsertRow(1)
	if err != nil {
		t.Fatalf("InsertRow: %v", err)
	}
	row.Cells()[0].AddText("short-lived")

	mut, err := tbl.RemoveRow(1)
	if err != nil {
		t.Fatalf("RemoveRow: %v", err)
	}
	if !mut.Applied() {
		t.Errorf("Outcome = %v, want applied (insertion cancelled)", mut.Outcome)
	}
	if got := tbl.RowCount(); got != 3 {
		t.Fatalf("RowCount() = %d, want 3", got)
	}
	if got, want := tbl.Rows()[1].Cells()[0].Text(), "b0"; got != want {
		t.Errorf("row 1 cell 0 = %q, want %q", got, want)
	}
	if got := doc.Revisions().Len(); got != 0 {
		t.Errorf("registered revisions = %d, want 0", got)
	}
	if got := doc.Tracking().PendingCount(); got != 0 {
		t.Errorf("PendingCount() = %d, want 0", got)
	}
}

func TestRemoveInsertedColumnNetsOut(t *testing.T) {
	doc := New()
	tbl := fillTable(t, doc, 2, 2)
	if err := doc.EnableTracking("pia"); err != nil {
		t.Fatalf("EnableTracking: %v", err)
	}
	if _, err := tbl.InsertColumn(1); err != nil {
		t.Fatalf("InsertColumn: %v", err)
	}

	mut, err := tbl.RemoveColumn(1)
	if err != nil {
		t.Fatalf("RemoveColumn: %v", err)
	}
	if !mut.Applied() {
		t.Errorf("Outcome = %v, want applied (insertion cancelled)", mut.Outcome)
	}
	if got := tbl.ColumnCount(); got != 2 {
		t.Errorf("ColumnCount() = %d, want 2", got)
	}
	for r, row := range tbl.Rows() {
		if got := row.CellCount(); got != 2 {
			t.Errorf("row %d cells = %d, want 2", r, got)
		}
	}
	if got, want := tbl.Rows()[0].Cells()[1].Text(), "a1"; got != want {
		t.Errorf("cell text = %q, want %q", got, want)
	}
	if got := doc.Revisions().Len(); got != 0 {
		t.Errorf("registered revisions = %d, want 0", got)
	}
}

func TestRepeatedRowRemovalKeepsOneMarkPerCell(t *testing.T) {
	doc := New()
	tbl := fillTable(t, doc, 2, 2)
	if err := doc.EnableTracking("quin"); err != nil {
		t.Fatalf("EnableTracking: %v", err)
	}
	if _, err := tbl.RemoveRow(1); err != nil {
		t.Fatalf("RemoveRow: %v", err)
	}
	if _, err := tbl.RemoveRow(1); err != nil {
		t.Fatalf("second RemoveRow: %v", err)
	}

	// Two live marks and two content wraps; the superseded marks are gone.
	if got := doc.Revisions().Len(); got != 4 {
		t.Errorf("registered revisions = %d, want 4", got)
	}

	doc.AcceptAll()
	if got := tbl.RowCount(); got != 1 {
		t.Errorf("RowCount() = %d, want 1", got)
	}
	if got := doc.Revisions().Len(); got != 0 {
		t.Errorf("revisions left = %d, want 0", got)
	}
}

func TestStructuralMarkDates(t *testing.T) {
	doc := New()
	tbl := fillTable(t, doc, 2, 3)
	if err := doc.EnableTracking("nora"); err != nil {
		t.Fatalf("EnableTracking: %v", err)
	}

	mut, err := tbl.RemoveRow(0)
	if err != nil {
		t.Fatalf("RemoveRow: %v", err)
	}
	if len(mut.Marks) != 3 {
		t.Fatalf("len(Marks) = %d, want 3", len(mut.Marks))
	}
	// One operation stamps one date, read from the tracking clock and
	// shared by the marks and the content wraps.
	date := mut.Marks[0].Date
	if date.IsZero() {
		t.Fatal("mark date is zero")
	}
	for i, m := range mut.Marks {
		if !m.Date.Equal(date) {
			t.Errorf("mark %d date = %v, want %v", i, m.Date, date)
		}
	}
	run := tbl.Rows()[0].Cells()[0].Paragraphs()[0].Runs()[0]
	if got := run.Deletion().Date; !got.Equal(date) {
		t.Errorf("content wrap date = %v, want %v", got, date)
	}
}

func TestColumnsUntracked(t *testing.T) {
	doc := New()
	tbl := fillTable(t, doc, 2, 2)

	cells, err := tbl.InsertColumn(1)
	if err != nil {
		t.Fatalf("InsertColumn: %v", err)
	}
	if got := len(cells); got != 2 {
		t.Errorf("new cells = %d, want 2", got)
	}
	if got := tbl.ColumnCount(); got != 3 {
		t.Errorf("ColumnCount() = %d, want 3", got)
	}
	if got, want := tbl.Rows()[0].Cells()[2].Text(), "a1"; got != want {
		t.Errorf("shifted cell = %q, want %q", got, want)
	}

	if _, err := tbl.RemoveColumn(1); err != nil {
		t.Fatalf("RemoveColumn: %v", err)
	}
	if got := tbl.ColumnCount(); got != 2 {
		t.Errorf("ColumnCount() after remove = %d, want 2", got)
	}
	if got, want := tbl.Rows()[0].Cells()[1].Text(), "a1"; got != want {
		t.Errorf("cell after remove = %q, want %q", got, want)
	}
}

func TestRemoveColumnTracked(t *testing.T) {
	doc := New()
	tbl := fillTable(t, doc, 2, 3)
	if err := doc.EnableTracking("hank"); err != nil {
		t.Fatalf("EnableTracking: %v", err)
	}

	mut, err := tbl.RemoveColumn(2)
	if err != nil {
		t.Fatalf("RemoveColumn: %v", err)
	}
	if !mut.Deferred() {
		t.Errorf("Outcome = %v, want deferred", mut.Outcome)
	}
	if got := tbl.ColumnCount(); got != 3 {
		t.Errorf("ColumnCount() = %d, want 3 (removal deferred)", got)
	}
	for r, row := range tbl.Rows() {
		mark := row.Cells()[2].Mark()
		if mark == nil || mark.Kind != revision.KindCellDelete {
			t.Errorf("row %d column cell mark = %v, want cell-delete", r, mark)
		}
	}
}

func TestMergeCellsTracked(t *testing.T) {
	doc := New()
	tbl := fillTable(t, doc, 2, 2)
	if err := doc.EnableTracking("iris"); err != nil {
		t.Fatalf("EnableTracking: %v", err)
	}

	mut, err := tbl.MergeCells(0, 0, 1, 0)
	if err != nil {
		t.Fatalf("MergeCells: %v", err)
	}
	if !mut.Deferred() {
		t.Errorf("Outcome = %v, want deferred", mut.Outcome)
	}

	anchor, _ := tbl.Cell(0, 0)
	if anchor.Mark() != nil {
		t.Error("anchor carries a mark")
	}
	absorbed, _ := tbl.Cell(1, 0)
	mark := absorbed.Mark()
	if mark == nil || mark.Kind != revision.KindCellMerge {
		t.Fatalf("absorbed cell mark = %v, want cell-merge", mark)
	}
	if got := mark.Updated[MarkAnchorRow]; got != 0 {
		t.Errorf("anchor row = %v, want 0", got)
	}
	if got := mark.Updated[MarkAnchorColumn]; got != 0 {
		t.Errorf("anchor column = %v, want 0", got)
	}
	// Shape unchanged until acceptance.
	if got := len(tbl.Rows()[1].Cells()); got != 2 {
		t.Errorf("row 1 cells = %d, want 2", got)
	}
}

func TestMergeCellsValidation(t *testing.T) {
	doc := New()
	tbl := fillTable(t, doc, 2, 2)

	cases := []struct {
		name           string
		sr, sc, er, ec int
	}{
		{"single cell", 0, 0, 0, 0},
		{"inverted", 1, 1, 0, 0},
		{"row out of range", 0, 0, 5, 0},
		{"column out of range", 0, 0, 0, 5},
		{"negative", -1, 0, 1, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tbl.MergeCells(tc.sr, tc.sc, tc.er, tc.ec); !errors.Is(err, ErrInvalidMergeRange) {
				t.Errorf("error = %v, want ErrInvalidMergeRange", err)
			}
		})
	}
}

func TestMergeCellsUntrackedHorizontal(t *testing.T) {
	doc := New()
	tbl := fillTable(t, doc, 2, 2)

	mut, err := tbl.MergeCells(0, 0, 0, 1)
	if err != nil {
		t.Fatalf("MergeCells: %v", err)
	}
	if !mut.Applied() {
		t.Errorf("Outcome = %v, want applied", mut.Outcome)
	}

	row := tbl.Rows()[0]
	if got := len(row.Cells()); got != 1 {
		t.Fatalf("row 0 cells = %d, want 1", got)
	}
	anchor := row.Cells()[0]
	if got := anchor.GridSpan(); got != 2 {
		t.Errorf("GridSpan() = %d, want 2", got)
	}
	if got, want := anchor.Text(), "a0\na1"; got != want {
		t.Errorf("anchor text = %q, want %q", got, want)
	}
	// Bottom row untouched.
	if got := len(tbl.Rows()[1].Cells()); got != 2 {
		t.Errorf("row 1 cells = %d, want 2", got)
	}
}

func TestMergeCellsUntrackedVertical(t *testing.T) {
	doc := New()
	tbl := fillTable(t, doc, 2, 2)

	if _, err := tbl.MergeCells(0, 0, 1, 0); err != nil {
		t.Fatalf("MergeCells: %v", err)
	}

	anchor, _ := tbl.Cell(0, 0)
	if got := anchor.VerticalMerge(); got != MergeRestart {
		t.Errorf("anchor VerticalMerge() = %q, want restart", got)
	}
	if got, want := anchor.Text(), "a0\nb0"; got != want {
		t.Errorf("anchor text = %q, want %q", got, want)
	}
	cont, _ := tbl.Cell(1, 0)
	if got := cont.VerticalMerge(); got != MergeContinue {
		t.Errorf("continuation VerticalMerge() = %q, want continue", got)
	}
	if got := cont.Text(); got != "" {
		t.Errorf("continuation text = %q, want empty", got)
	}
}

func TestRowCellOps(t *testing.T) {
	doc := New()
	tbl := fillTable(t, doc, 1, 2)
	row := tbl.Rows()[0]

	cell := row.AddCell()
	if got := row.CellCount(); got != 3 {
		t.Fatalf("CellCount() = %d, want 3", got)
	}
	if cell.Mark() != nil {
		t.Error("untracked AddCell marked the cell")
	}

	if _, err := row.RemoveCell(2); err != nil {
		t.Fatalf("RemoveCell: %v", err)
	}
	if got := row.CellCount(); got != 2 {
		t.Errorf("CellCount() = %d, want 2", got)
	}

	if _, err := row.RemoveCell(9); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("RemoveCell(9) error = %v, want ErrIndexOutOfRange", err)
	}
}

func TestNestedTable(t *testing.T) {
	doc := New()
	tbl := fillTable(t, doc, 1, 1)
	cell, _ := tbl.Cell(0, 0)

	inner, err := cell.AddTable(2, 2)
	if err != nil {
		t.Fatalf("AddTable (nested): %v", err)
	}
	if got := len(cell.Tables()); got != 1 {
		t.Fatalf("cell tables = %d, want 1", got)
	}
	if got := inner.RowCount(); got != 2 {
		t.Errorf("inner RowCount() = %d, want 2", got)
	}
}

func TestTableProperties(t *testing.T) {
	doc := New()
	tbl := fillTable(t, doc, 1, 1)

	if err := tbl.SetWidth(5000); err != nil {
		t.Fatalf("SetWidth: %v", err)
	}
	if w, ok := tbl.Width(); !ok || w != 5000 {
		t.Errorf("Width() = %d,%v, want 5000,true", w, ok)
	}
	if err := tbl.SetWidth(-1); !errors.Is(err, ErrNegativeMeasurement) {
		t.Errorf("SetWidth(-1) error = %v, want ErrNegativeMeasurement", err)
	}

	tbl.SetAlignment(AlignCenter)
	if got := tbl.Alignment(); got != AlignCenter {
		t.Errorf("Alignment() = %q, want center", got)
	}

	row := tbl.Rows()[0]
	if err := row.SetHeight(400); err != nil {
		t.Fatalf("SetHeight: %v", err)
	}
	row.SetHeightRule(HeightExact)
	if got := row.HeightRule(); got != HeightExact {
		t.Errorf("HeightRule() = %q, want exact", got)
	}

	cell, _ := tbl.Cell(0, 0)
	cell.SetVerticalAlign(CellAlignCenter)
	if got := cell.VerticalAlign(); got != CellAlignCenter {
		t.Errorf("VerticalAlign() = %q, want center", got)
	}
}
