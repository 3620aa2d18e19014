package document

import (
	"testing"
)

func TestAcceptInsertionPreservesOrder(t *testing.T) {
	doc := New()
	p := doc.AddParagraph()
	if err := doc.EnableTracking("alice"); err != nil {
		t.Fatalf("EnableTracking: %v", err)
	}
	p.AddText("X")
	doc.DisableTracking()
	p.AddText("Y")

	res := doc.AcceptAll()

	if got, want := p.Text(), "XY"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
	if res.Insertions != 1 {
		t.Errorf("Insertions = %d, want 1", res.Insertions)
	}
	if got := doc.Revisions().Len(); got != 0 {
		t.Errorf("revisions left = %d, want 0", got)
	}
	if p.Runs()[0].Insertion() != nil {
		t.Error("accepted run still wrapped")
	}
}

func TestAcceptDeletionRemovesText(t *testing.T) {
	doc := New()
	p := doc.AddParagraph()
	r := p.AddText("hello world")
	if err := doc.EnableTracking("bob"); err != nil {
		t.Fatalf("EnableTracking: %v", err)
	}
	r.SetText("hello")

	res := doc.AcceptAll()

	if got, want := p.Text(), "hello"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
	if res.Deletions != 1 {
		t.Errorf("Deletions = %d, want 1", res.Deletions)
	}
	if got := len(p.Runs()); got != 1 {
		t.Errorf("run count = %d, want 1", got)
	}
}

func TestRejectInsertionRemovesText(t *testing.T) {
	doc := New()
	p := doc.AddParagraph()
	p.AddText("before ")
	if err := doc.EnableTracking("carol"); err != nil {
		t.Fatalf("EnableTracking: %v", err)
	}
	p.AddText("inserted")

	res := doc.RejectAll()

	if got, want := p.Text(), "before "; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
	if res.Insertions != 1 {
		t.Errorf("Insertions = %d, want 1", res.Insertions)
	}
	if got := doc.Revisions().Len(); got != 0 {
		t.Errorf("revisions left = %d, want 0", got)
	}
}

func TestRejectDeletionRestoresText(t *testing.T) {
	doc := New()
	p := doc.AddParagraph()
	r := p.AddText("hello world")
	if err := doc.EnableTracking("bob"); err != nil {
		t.Fatalf("EnableTracking: %v", err)
	}
	r.SetText("hello")

	doc.RejectAll()

	if got, want := p.Text(), "hello world"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
	for i, run := range p.Runs() {
		if run.Deletion() != nil {
			t.Errorf("runs[%d] still marked deleted after reject", i)
		}
	}
}

func TestResolveByCategory(t *testing.T) {
	build := func(t *testing.T) (*Document, *Paragraph) {
		t.Helper()
		doc := New()
		p := doc.AddParagraph()
		r := p.AddText("keep-or-cut ")
		if err := doc.EnableTracking("dave"); err != nil {
			t.Fatalf("EnableTracking: %v", err)
		}
		r.SetText("keep-or-cut")
		p.AddText("added")
		doc.Tracking().FlushPendingChanges()
		return doc, p
	}

	t.Run("insertions only", func(t *testing.T) {
		doc, p := build(t)
		res := doc.AcceptRevisions(AcceptOptions{Insertions: true})
		if res.Insertions != 1 || res.Deletions != 0 {
			t.Errorf("result = %+v, want one insertion only", res)
		}
		if got := doc.Revisions().Len(); got != 1 {
			t.Errorf("revisions left = %d, want 1 (deletion untouched)", got)
		}
		if got, want := p.Text(), "keep-or-cut added"; got != want {
			t.Errorf("Text() = %q, want %q", got, want)
		}
	})

	t.Run("deletions only", func(t *testing.T) {
		doc, p := build(t)
		res := doc.AcceptRevisions(AcceptOptions{Deletions: true})
		if res.Deletions != 1 || res.Insertions != 0 {
			t.Errorf("result = %+v, want one deletion only", res)
		}
		if got, want := p.Text(), "keep-or-cutadded"; got != want {
			t.Errorf("Text() = %q, want %q", got, want)
		}
		// The insertion is still wrapped.
		runs := p.Runs()
		if runs[len(runs)-1].Insertion() == nil {
			t.Error("insertion resolved though not selected")
		}
	})
}

func TestRejectFormattingDelta(t *testing.T) {
	doc := New()
	r := doc.AddParagraph().AddText("styled")
	r.SetFont("Georgia")
	if err := doc.EnableTracking("erin"); err != nil {
		t.Fatalf("EnableTracking: %v", err)
	}
	r.SetFont("Consolas")
	r.SetBold(true)

	res := doc.RejectAll()

	if got, want := r.Font(), "Georgia"; got != want {
		t.Errorf("Font() = %q, want %q", got, want)
	}
	if r.Bold() {
		t.Error("bold survived reject though it had no value at baseline")
	}
	if _, ok := r.FormattingSnapshot()[PropBold]; ok {
		t.Error("bold still present in the bag after reject")
	}
	if res.PropertyChanges != 1 {
		t.Errorf("PropertyChanges = %d, want 1 (record counts once)", res.PropertyChanges)
	}
	if got := doc.Revisions().Len(); got != 0 {
		t.Errorf("revisions left = %d, want 0", got)
	}
}

func TestRejectFormattingFull(t *testing.T) {
	doc := New()
	tbl, err := doc.AddTable(1, 1)
	if err != nil {
		t.Fatalf("AddTable: %v", err)
	}
	if err := tbl.SetWidth(4000); err != nil {
		t.Fatalf("SetWidth: %v", err)
	}
	if err := doc.EnableTracking("fred"); err != nil {
		t.Fatalf("EnableTracking: %v", err)
	}
	if err := tbl.SetWidth(5000); err != nil {
		t.Fatalf("SetWidth: %v", err)
	}
	tbl.SetShading("D9D9D9")

	doc.RejectAll()

	if w, ok := tbl.Width(); !ok || w != 4000 {
		t.Errorf("Width() = %d,%v, want 4000,true", w, ok)
	}
	if got := tbl.Shading(); got != "" {
		t.Errorf("Shading() = %q, want empty (not set at baseline)", got)
	}
}

func TestAcceptFormattingKeepsValues(t *testing.T) {
	doc := New()
	r := doc.AddParagraph().AddText("styled")
	if err := doc.EnableTracking("erin"); err != nil {
		t.Fatalf("EnableTracking: %v", err)
	}
	r.SetBold(true)

	res := doc.AcceptAll()

	if !r.Bold() {
		t.Error("accepted formatting lost")
	}
	if r.PropertyChangeRecord() != nil {
		t.Error("record survived accept")
	}
	if res.PropertyChanges != 1 {
		t.Errorf("PropertyChanges = %d, want 1", res.PropertyChanges)
	}
}

func TestAcceptRowRemoval(t *testing.T) {
	doc := New()
	tbl := fillTable(t, doc, 3, 2)
	if err := doc.EnableTracking("gina"); err != nil {
		t.Fatalf("EnableTracking: %v", err)
	}
	if _, err := tbl.RemoveRow(1); err != nil {
		t.Fatalf("RemoveRow: %v", err)
	}

	res := doc.AcceptAll()

	if got := tbl.RowCount(); got != 2 {
		t.Fatalf("RowCount() = %d, want 2", got)
	}
	if got, want := tbl.Rows()[1].Cells()[0].Text(), "c0"; got != want {
		t.Errorf("surviving row text = %q, want %q", got, want)
	}
	// Two marks plus two content wraps.
	if res.Deletions != 4 {
		t.Errorf("Deletions = %d, want 4", res.Deletions)
	}
	if got := doc.Revisions().Len(); got != 0 {
		t.Errorf("revisions left = %d, want 0", got)
	}
}

func TestRejectRowRemoval(t *testing.T) {
	doc := New()
	tbl := fillTable(t, doc, 3, 2)
	if err := doc.EnableTracking("gina"); err != nil {
		t.Fatalf("EnableTracking: %v", err)
	}
	if _, err := tbl.RemoveRow(1); err != nil {
		t.Fatalf("RemoveRow: %v", err)
	}

	doc.RejectAll()

	if got := tbl.RowCount(); got != 3 {
		t.Fatalf("RowCount() = %d, want 3", got)
	}
	if got, want := tbl.Rows()[1].Cells()[0].Text(), "b0"; got != want {
		t.Errorf("restored row text = %q, want %q", got, want)
	}
	for _, cell := range tbl.Rows()[1].Cells() {
		if cell.Mark() != nil {
			t.Error("mark survived reject")
		}
	}
	run := tbl.Rows()[1].Cells()[0].Paragraphs()[0].Runs()[0]
	if run.Deletion() != nil {
		t.Error("content delete wrap survived reject")
	}
	if got := doc.Revisions().Len(); got != 0 {
		t.Errorf("revisions left = %d, want 0", got)
	}
}

func TestRejectInsertedRow(t *testing.T) {
	doc := New()
	tbl := fillTable(t, doc, 2, 2)
	if err := doc.EnableTracking("hugo"); err != nil {
		t.Fatalf("EnableTracking: %v", err)
	}
	if _, err := tbl.InsertRow(1); err != nil {
		t.Fatalf("InsertRow: %v", err)
	}

	res := doc.RejectAll()

	if got := tbl.RowCount(); got != 2 {
		t.Fatalf("RowCount() = %d, want 2", got)
	}
	if got, want := tbl.Rows()[1].Cells()[0].Text(), "b0"; got != want {
		t.Errorf("row 1 text = %q, want %q", got, want)
	}
	if res.Insertions != 2 {
		t.Errorf("Insertions = %d, want 2 (one mark per cell)", res.Insertions)
	}
}

func TestAcceptInsertedRowKeepsIt(t *testing.T) {
	doc := New()
	tbl := fillTable(t, doc, 2, 2)
	if err := doc.EnableTracking("hugo"); err != nil {
		t.Fatalf("EnableTracking: %v", err)
	}
	row, err := tbl.InsertRow(1)
	if err != nil {
		t.Fatalf("InsertRow: %v", err)
	}

	doc.AcceptAll()

	if got := tbl.RowCount(); got != 3 {
		t.Fatalf("RowCount() = %d, want 3", got)
	}
	for _, cell := range row.Cells() {
		if cell.Mark() != nil {
			t.Error("mark survived accept")
		}
	}
}

func TestRejectInsertedColumn(t *testing.T) {
	doc := New()
	tbl := fillTable(t, doc, 2, 2)
	if err := doc.EnableTracking("ivan"); err != nil {
		t.Fatalf("EnableTracking: %v", err)
	}
	if _, err := tbl.InsertColumn(1); err != nil {
		t.Fatalf("InsertColumn: %v", err)
	}

	doc.RejectAll()

	if got := tbl.ColumnCount(); got != 2 {
		t.Fatalf("ColumnCount() = %d, want 2", got)
	}
	for r, row := range tbl.Rows() {
		if got := len(row.Cells()); got != 2 {
			t.Errorf("row %d cells = %d, want 2", r, got)
		}
	}
	if got, want := tbl.Rows()[0].Cells()[1].Text(), "a1"; got != want {
		t.Errorf("cell text = %q, want %q", got, want)
	}
}

func TestRejectWholeInsertedTable(t *testing.T) {
	doc := New()
	doc.AddParagraph().AddText("intro")
	if err := doc.EnableTracking("jane"); err != nil {
		t.Fatalf("EnableTracking: %v", err)
	}
	if _, err := doc.AddTable(2, 2); err != nil {
		t.Fatalf("AddTable: %v", err)
	}

	doc.RejectAll()

	if got := len(doc.Tables()); got != 0 {
		t.Errorf("tables left = %d, want 0", got)
	}
	if got := len(doc.Blocks()); got != 1 {
		t.Errorf("blocks left = %d, want 1", got)
	}
}

func TestAcceptMerge(t *testing.T) {
	doc := New()
	tbl := fillTable(t, doc, 2, 2)
	if err := doc.EnableTracking("kate"); err != nil {
		t.Fatalf("EnableTracking: %v", err)
	}
	if _, err := tbl.MergeCells(0, 0, 0, 1); err != nil {
		t.Fatalf("MergeCells: %v", err)
	}

	res := doc.AcceptAll()

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
	if res.PropertyChanges != 1 {
		t.Errorf("PropertyChanges = %d, want 1 (the merge mark)", res.PropertyChanges)
	}
	if got := doc.Revisions().Len(); got != 0 {
		t.Errorf("revisions left = %d, want 0", got)
	}
}

func TestRejectMerge(t *testing.T) {
	doc := New()
	tbl := fillTable(t, doc, 2, 2)
	if err := doc.EnableTracking("kate"); err != nil {
		t.Fatalf("EnableTracking: %v", err)
	}
	if _, err := tbl.MergeCells(0, 0, 1, 1); err != nil {
		t.Fatalf("MergeCells: %v", err)
	}

	doc.RejectAll()

	for r, row := range tbl.Rows() {
		if got := len(row.Cells()); got != 2 {
			t.Errorf("row %d cells = %d, want 2", r, got)
		}
		for c, cell := range row.Cells() {
			if cell.Mark() != nil {
				t.Errorf("cell (%d,%d) mark survived reject", r, c)
			}
		}
	}
	anchor, _ := tbl.Cell(0, 0)
	if got := anchor.GridSpan(); got != 1 {
		t.Errorf("GridSpan() = %d, want 1", got)
	}
}

func TestAcceptVerticalMerge(t *testing.T) {
	doc := New()
	tbl := fillTable(t, doc, 2, 2)
	if err := doc.EnableTracking("kate"); err != nil {
		t.Fatalf("EnableTracking: %v", err)
	}
	if _, err := tbl.MergeCells(0, 0, 1, 0); err != nil {
		t.Fatalf("MergeCells: %v", err)
	}

	doc.AcceptAll()

	anchor, _ := tbl.Cell(0, 0)
	if got := anchor.VerticalMerge(); got != MergeRestart {
		t.Errorf("anchor VerticalMerge() = %q, want restart", got)
	}
	cont, _ := tbl.Cell(1, 0)
	if got := cont.VerticalMerge(); got != MergeContinue {
		t.Errorf("continuation VerticalMerge() = %q, want continue", got)
	}
	if got, want := anchor.Text(), "a0\nb0"; got != want {
		t.Errorf("anchor text = %q, want %q", got, want)
	}
}

func TestAcceptFlushesPendingFirst(t *testing.T) {
	doc := New()
	p := doc.AddParagraph()
	if err := doc.EnableTracking("liam"); err != nil {
		t.Fatalf("EnableTracking: %v", err)
	}
	p.AddText("buffered")

	res := doc.AcceptAll()

	if res.Insertions != 1 {
		t.Errorf("Insertions = %d, want 1 (pending change flushed)", res.Insertions)
	}
	if got := doc.Tracking().PendingCount(); got != 0 {
		t.Errorf("PendingCount() = %d, want 0", got)
	}
	if got, want := p.Text(), "buffered"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestResolveIdempotent(t *testing.T) {
	doc := New()
	p := doc.AddParagraph()
	if err := doc.EnableTracking("mona"); err != nil {
		t.Fatalf("EnableTracking: %v", err)
	}
	p.AddText("once")

	first := doc.AcceptAll()
	second := doc.AcceptAll()

	if first.Total == 0 {
		t.Error("first pass resolved nothing")
	}
	if second.Total != 0 {
		t.Errorf("second pass Total = %d, want 0", second.Total)
	}
	if got, want := p.Text(), "once"; got != want {
		t.Errorf("Text() = %q, want %q", got, want)
	}
}

func TestCrossAuthorInsertThenDelete(t *testing.T) {
	doc := New()
	p := doc.AddParagraph()
	if err := doc.EnableTracking("alice"); err != nil {
		t.Fatalf("EnableTracking: %v", err)
	}
	r := p.AddText("contested")
	if _, err := doc.Tracking().SetAuthor("bob"); err != nil {
		t.Fatalf("SetAuthor: %v", err)
	}
	if _, err := p.RemoveRun(r); err != nil {
		t.Fatalf("RemoveRun: %v", err)
	}
	doc.Tracking().FlushPendingChanges()

	if r.Insertion() == nil || r.Deletion() == nil {
		t.Fatal("run should carry both insertion and deletion")
	}
	if got, want := r.Insertion().Author, "alice"; got != want {
		t.Errorf("insertion author = %q, want %q", got, want)
	}
	if got, want := r.Deletion().Author, "bob"; got != want {
		t.Errorf("deletion author = %q, want %q", got, want)
	}

	res := doc.AcceptAll()
	if got := len(p.Runs()); got != 0 {
		t.Errorf("run count = %d, want 0 (deletion wins)", got)
	}
	if res.Deletions != 1 || res.Insertions != 1 {
		t.Errorf("result = %+v, want one of each", res)
	}
}

func TestRemoveRunCancelsUnflushedInsertion(t *testing.T) {
	doc := New()
	p := doc.AddParagraph()
	if err := doc.EnableTracking("alice"); err != nil {
		t.Fatalf("EnableTracking: %v", err)
	}
	r := p.AddText("oops")

	mut, err := p.RemoveRun(r)
	if err != nil {
		t.Fatalf("RemoveRun: %v", err)
	}
	if !mut.Applied() {
		t.Errorf("Outcome = %v, want applied (insertion cancelled)", mut.Outcome)
	}
	if got := len(p.Runs()); got != 0 {
		t.Errorf("run count = %d, want 0", got)
	}
	if got := doc.Tracking().PendingCount(); got != 0 {
		t.Errorf("PendingCount() = %d, want 0", got)
	}
}

func TestAcceptAfterRemovingInsertedRow(t *testing.T) {
	doc := New()
	tbl := fillTable(t, doc, 3, 2)
	if err := doc.EnableTracking("rosa"); err != nil {
		t.Fatalf("EnableTracking: %v", err)
	}
	if _, err := tbl.InsertRow(1); err != nil {
		t.Fatalf("InsertRow: %v", err)
	}
	if _, err := tbl.RemoveRow(1); err != nil {
		t.Fatalf("RemoveRow: %v", err)
	}

	res := doc.AcceptAll()

	if got := tbl.RowCount(); got != 3 {
		t.Fatalf("RowCount() = %d, want 3", got)
	}
	if res.Total != 0 {
		t.Errorf("Total = %d, want 0 (insert and delete net out)", res.Total)
	}
	if got := doc.Revisions().Len(); got != 0 {
		t.Errorf("revisions left = %d, want 0", got)
	}
}

func TestRejectAfterRemovingInsertedRow(t *testing.T) {
	doc := New()
	tbl := fillTable(t, doc, 3, 2)
	if err := doc.EnableTracking("rosa"); err != nil {
		t.Fatalf("EnableTracking: %v", err)
	}
	if _, err := tbl.InsertRow(1); err != nil {
		t.Fatalf("InsertRow: %v", err)
	}
	if _, err := tbl.RemoveRow(1); err != nil {
		t.Fatalf("RemoveRow: %v", err)
	}

	doc.RejectAll()

	if got := tbl.RowCount(); got != 3 {
		t.Fatalf("RowCount() = %d, want 3", got)
	}
	for r, want := range []string{"a0", "b0", "c0"} {
		if got := tbl.Rows()[r].Cells()[0].Text(); got != want {
			t.Errorf("row %d cell 0 = %q, want %q", r, got, want)
		}
	}
	if got := doc.Revisions().Len(); got != 0 {
		t.Errorf("revisions left = %d, want 0", got)
	}
}

func TestRejectColumnRemovalAcrossInsertedRow(t *testing.T) {
	doc := New()
	tbl := fillTable(t, doc, 2, 2)
	if err := doc.EnableTracking("sven"); err != nil {
		t.Fatalf("EnableTracking: %v", err)
	}
	if _, err := tbl.InsertRow(1); err != nil {
		t.Fatalf("InsertRow: %v", err)
	}
	mut, err := tbl.RemoveColumn(0)
	if err != nil {
		t.Fatalf("RemoveColumn: %v", err)
	}
	if !mut.Deferred() {
		t.Fatalf("Outcome = %v, want deferred (original rows still hold the column)", mut.Outcome)
	}
	// The inserted row's cell nets out at once; the original rows defer.
	if got := tbl.Rows()[1].CellCount(); got != 1 {
		t.Fatalf("inserted row cells = %d, want 1", got)
	}

	doc.RejectAll()

	if got := tbl.RowCount(); got != 2 {
		t.Fatalf("RowCount() = %d, want 2", got)
	}
	if got := tbl.ColumnCount(); got != 2 {
		t.Errorf("ColumnCount() = %d, want 2", got)
	}
	for r, row := range tbl.Rows() {
		if got := len(row.Cells()); got != 2 {
			t.Errorf("row %d cells = %d, want 2", r, got)
		}
	}
	if got, want := tbl.Rows()[1].Cells()[0].Text(), "b0"; got != want {
		t.Errorf("row 1 cell 0 = %q, want %q", got, want)
	}
	if got := doc.Revisions().Len(); got != 0 {
		t.Errorf("revisions left = %d, want 0", got)
	}
}

func BenchmarkAcceptAll(b *testing.B) {
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		doc := New()
		p := doc.AddParagraph()
		if err := doc.EnableTracking("bench"); err != nil {
			b.Fatal(err)
		}
		for j := 0; j < 50; j++ {
			p.AddText("chunk ")
		}
		b.StartTimer()
		doc.AcceptAll()
	}
}
