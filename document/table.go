package document

import (
	"fmt"
	"strings"
	"time"

	"github.com/dshills/wordsmith/revision"
	"github.com/dshills/wordsmith/tracking"
)

// defaultColumnWidth is the grid width in twips given to new columns.
const defaultColumnWidth = 2400

// Table is a block holding a grid of rows and cells. Destructive structural
// operations are deferred while tracking is enabled: instead of changing the
// grid they attach cell markers that the revision resolver consumes later.
type Table struct {
	node
	rows []*Row
	grid []int // column widths in twips
}

func buildTable(doc *Document, rows, cols int) (*Table, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("table %dx%d: %w", rows, cols, ErrTableDimensions)
	}
	t := &Table{node: newNode(doc)}
	t.grid = make([]int, cols)
	for i := range t.grid {
		t.grid[i] = defaultColumnWidth
	}
	for i := 0; i < rows; i++ {
		t.rows = append(t.rows, t.buildRow())
	}
	return t, nil
}

// buildRow creates a row with one cell per grid column, each holding an
// empty paragraph.
func (t *Table) buildRow() *Row {
	row := newRow(t.doc, t)
	for range t.grid {
		cell := newCell(t.doc, row)
		cell.AddParagraph()
		row.cells = append(row.cells, cell)
	}
	return row
}

// ElementKind returns tracking.TableElement.
func (t *Table) ElementKind() tracking.ElementKind { return tracking.TableElement }

// ContentText returns the table's visible text, rows joined by newlines and
// cells by tabs.
func (t *Table) ContentText() string {
	var sb strings.Builder
	for i, row := range t.rows {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(row.ContentText())
	}
	return sb.String()
}

// Rows returns the table's rows in order.
func (t *Table) Rows() []*Row {
	out := make([]*Row, len(t.rows))
	copy(out, t.rows)
	return out
}

// RowCount returns the number of rows.
func (t *Table) RowCount() int { return len(t.rows) }

// ColumnCount returns the number of grid columns.
func (t *Table) ColumnCount() int { return len(t.grid) }

// Grid returns the column widths in twips.
func (t *Table) Grid() []int {
	out := make([]int, len(t.grid))
	copy(out, t.grid)
	return out
}

// SetColumnWidths replaces the grid column widths in twips.
func (t *Table) SetColumnWidths(widths ...int) error {
	for _, w := range widths {
		if w < 0 {
			return fmt.Errorf("column width %d: %w", w, ErrNegativeMeasurement)
		}
	}
	t.grid = append(t.grid[:0:0], widths...)
	return nil
}

// Cell returns the cell at the given row and cell index.
func (t *Table) Cell(row, col int) (*Cell, error) {
	if row < 0 || row >= len(t.rows) {
		return nil, fmt.Errorf("cell (%d,%d): %w", row, col, ErrIndexOutOfRange)
	}
	cells := t.rows[row].cells
	if col < 0 || col >= len(cells) {
		return nil, fmt.Errorf("cell (%d,%d): %w", row, col, ErrIndexOutOfRange)
	}
	return cells[col], nil
}

// AddRow appends a row with one cell per grid column. While tracking is
// enabled every new cell is marked as inserted.
func (t *Table) AddRow() *Row {
	row, _ := t.InsertRow(len(t.rows))
	return row
}

// InsertRow inserts a full row at the given index. While tracking is
// enabled every new cell is marked as inserted, so rejecting the change
// removes the row again.
func (t *Table) InsertRow(at int) (*Row, error) {
	if at < 0 || at > len(t.rows) {
		return nil, fmt.Errorf("insert row at %d: %w", at, ErrIndexOutOfRange)
	}
	row := t.buildRow()
	t.rows = append(t.rows, nil)
	copy(t.rows[at+1:], t.rows[at:])
	t.rows[at] = row
	if t.doc.track.Enabled() {
		date := t.doc.track.Now()
		for _, cell := range row.cells {
			t.markCell(cell, revision.KindCellInsert, nil, date)
		}
	}
	return row, nil
}

// RestoreRow appends a bare row with no cells. It is the reconstruction
// path used when parsing saved markup.
func (t *Table) RestoreRow() *Row {
	row := newRow(t.doc, t)
	t.rows = append(t.rows, row)
	return row
}

// RemoveRow removes the row at the given index, or marks it for removal
// while tracking is enabled.
func (t *Table) RemoveRow(at int) (Mutation, error) {
	return t.RemoveRows(at, 1)
}

// RemoveRows removes n rows starting at the given index. Untracked the rows
// are spliced out. While tracking is enabled the table keeps its shape:
// every cell in the range is marked for deletion and its live text is
// wrapped in delete revisions, and the rows disappear only when the
// deletions are accepted. Cells that are still unresolved insertions are
// the exception: the insert and the delete net out, those cells leave at
// once, and a row left with nothing leaves with them.
func (t *Table) RemoveRows(at, n int) (Mutation, error) {
	if n <= 0 || at < 0 || at+n > len(t.rows) {
		return Mutation{}, fmt.Errorf("remove rows [%d,%d): %w", at, at+n, ErrIndexOutOfRange)
	}
	if !t.doc.track.Enabled() {
		t.rows = append(t.rows[:at], t.rows[at+n:]...)
		return applied(), nil
	}
	date := t.doc.track.Now()
	var marks []*revision.Revision
	kept := t.rows[:at]
	for _, row := range t.rows[at : at+n] {
		cells := row.cells[:0]
		for _, cell := range row.cells {
			if mark := t.deferCellDelete(cell, date); mark != nil {
				marks = append(marks, mark)
				cells = append(cells, cell)
			}
		}
		emptied := len(row.cells) > 0 && len(cells) == 0
		row.cells = cells
		if emptied {
			t.doc.releaseRow(row)
			continue
		}
		kept = append(kept, row)
	}
	t.rows = append(kept, t.rows[at+n:]...)
	if len(marks) == 0 {
		return applied(), nil
	}
	return deferred(marks...), nil
}

// AddColumn appends a column and returns its new cells, top to bottom.
func (t *Table) AddColumn() []*Cell {
	cells, _ := t.InsertColumn(len(t.grid))
	return cells
}

// InsertColumn inserts a column at the given grid index and returns its new
// cells, top to bottom. While tracking is enabled every new cell is marked
// as inserted. Rows narrowed by merges get the cell at their end when the
// index lies beyond their last cell.
func (t *Table) InsertColumn(at int) ([]*Cell, error) {
	if at < 0 || at > len(t.grid) {
		return nil, fmt.Errorf("insert column at %d: %w", at, ErrIndexOutOfRange)
	}
	t.grid = append(t.grid, 0)
	copy(t.grid[at+1:], t.grid[at:])
	t.grid[at] = defaultColumnWidth

	tracked := t.doc.track.Enabled()
	var date time.Time
	if tracked {
		date = t.doc.track.Now()
	}
	cells := make([]*Cell, 0, len(t.rows))
	for _, row := range t.rows {
		cell := newCell(t.doc, row)
		cell.AddParagraph()
		pos := at
		if pos > len(row.cells) {
			pos = len(row.cells)
		}
		row.cells = append(row.cells, nil)
		copy(row.cells[pos+1:], row.cells[pos:])
		row.cells[pos] = cell
		if tracked {
			t.markCell(cell, revision.KindCellInsert, nil, date)
		}
		cells = append(cells, cell)
	}
	return cells, nil
}

// RemoveColumn removes the column at the given grid index, or marks its
// cells for removal while tracking is enabled.
func (t *Table) RemoveColumn(at int) (Mutation, error) {
	return t.RemoveColumns(at, 1)
}

// RemoveColumns removes n columns starting at the given grid index. Rows
// narrowed by merges are clamped: cells they no longer have are skipped.
// Cells that are still unresolved insertions leave at once rather than
// being marked, and a column that loses every cell that way takes its grid
// entry with it.
func (t *Table) RemoveColumns(at, n int) (Mutation, error) {
	if n <= 0 || at < 0 || at+n > len(t.grid) {
		return Mutation{}, fmt.Errorf("remove columns [%d,%d): %w", at, at+n, ErrIndexOutOfRange)
	}
	if !t.doc.track.Enabled() {
		for _, row := range t.rows {
			hi := at + n
			if hi > len(row.cells) {
				hi = len(row.cells)
			}
			if at >= len(row.cells) {
				continue
			}
			row.cells = append(row.cells[:at], row.cells[hi:]...)
		}
		t.grid = append(t.grid[:at], t.grid[at+n:]...)
		return applied(), nil
	}
	date := t.doc.track.Now()
	var marks []*revision.Revision
	total := make([]int, n)
	gone := make([]int, n)
	for _, row := range t.rows {
		if at >= len(row.cells) {
			continue
		}
		hi := at + n
		if hi > len(row.cells) {
			hi = len(row.cells)
		}
		cells := row.cells[:at]
		for j, cell := range row.cells[at:hi] {
			total[j]++
			if mark := t.deferCellDelete(cell, date); mark != nil {
				marks = append(marks, mark)
				cells = append(cells, cell)
				continue
			}
			gone[j]++
		}
		row.cells = append(cells, row.cells[hi:]...)
	}
	// Right to left so earlier grid splices keep later indexes valid.
	for j := n - 1; j >= 0; j-- {
		if total[j] > 0 && gone[j] == total[j] {
			t.grid = append(t.grid[:at+j], t.grid[at+j+1:]...)
		}
	}
	if len(marks) == 0 {
		return applied(), nil
	}
	return deferred(marks...), nil
}

// MergeCells merges the rectangular region from (startRow, startCol) to
// (endRow, endCol) inclusive into the cell at its top-left corner.
// Untracked the absorption happens immediately. While tracking is enabled
// every cell of the region except the anchor is marked with a cell-merge
// marker carrying the anchor's coordinates, and the absorption happens when
// the markers are accepted.
func (t *Table) MergeCells(startRow, startCol, endRow, endCol int) (Mutation, error) {
	if startRow < 0 || startCol < 0 || endRow < startRow || endCol < startCol {
		return Mutation{}, fmt.Errorf("merge (%d,%d)-(%d,%d): %w",
			startRow, startCol, endRow, endCol, ErrInvalidMergeRange)
	}
	if startRow == endRow && startCol == endCol {
		return Mutation{}, fmt.Errorf("merge of a single cell: %w", ErrInvalidMergeRange)
	}
	if endRow >= len(t.rows) {
		return Mutation{}, fmt.Errorf("merge (%d,%d)-(%d,%d): %w",
			startRow, startCol, endRow, endCol, ErrInvalidMergeRange)
	}
	for r := startRow; r <= endRow; r++ {
		if endCol >= len(t.rows[r].cells) {
			return Mutation{}, fmt.Errorf("merge (%d,%d)-(%d,%d): %w",
				startRow, startCol, endRow, endCol, ErrInvalidMergeRange)
		}
	}

	if !t.doc.track.Enabled() {
		t.applyMerge(startRow, startCol, endRow, endCol)
		return applied(), nil
	}

	date := t.doc.track.Now()
	var marks []*revision.Revision
	for r := startRow; r <= endRow; r++ {
		for c := startCol; c <= endCol; c++ {
			if r == startRow && c == startCol {
				continue
			}
			data := revision.Properties{
				MarkAnchorRow:    startRow,
				MarkAnchorColumn: startCol,
			}
			marks = append(marks, t.markCell(t.rows[r].cells[c], revision.KindCellMerge, data, date))
		}
	}
	return deferred(marks...), nil
}

// applyMerge performs the absorption for a merge region: same-row neighbors
// fold into the anchor's grid span, lower rows keep their leftmost region
// cell as a vertical-merge continuation, and absorbed content moves into
// the anchor.
func (t *Table) applyMerge(sr, sc, er, ec int) {
	if sr >= len(t.rows) || sc >= len(t.rows[sr].cells) {
		return
	}
	anchor := t.rows[sr].cells[sc]

	width := 0
	for c := sc; c <= ec && c < len(t.rows[sr].cells); c++ {
		width += t.rows[sr].cells[c].span()
	}

	for r := sr; r <= er && r < len(t.rows); r++ {
		row := t.rows[r]
		hi := ec
		if hi >= len(row.cells) {
			hi = len(row.cells) - 1
		}
		for c := sc; c <= hi; c++ {
			if r == sr && c == sc {
				continue
			}
			anchor.absorb(row.cells[c])
		}
		if r == sr {
			row.cells = append(row.cells[:sc+1], row.cells[hi+1:]...)
			if width > 1 {
				anchor.props.Set(PropGridSpan, width)
			}
			if er > sr {
				anchor.props.Set(PropVerticalMerge, string(MergeRestart))
			}
		} else {
			cont := row.cells[sc]
			row.cells = append(row.cells[:sc+1], row.cells[hi+1:]...)
			cont.clearContent()
			if width > 1 {
				cont.props.Set(PropGridSpan, width)
			}
			cont.props.Set(PropVerticalMerge, string(MergeContinue))
		}
	}
}

// markCell registers a structural revision of the given kind and attaches
// it to the cell. A mark the cell already carries is superseded: the old
// revision leaves the manager so it cannot outlive its slot.
func (t *Table) markCell(c *Cell, kind revision.Kind, data revision.Properties, date time.Time) *revision.Revision {
	if c.mark != nil {
		t.doc.revisions.Unregister(c.mark.ID)
	}
	rev := &revision.Revision{
		ID:      t.doc.revisions.ConsumeNextID(),
		Author:  t.doc.track.Author(),
		Date:    date,
		Kind:    kind,
		Updated: data,
	}
	t.doc.register(rev)
	c.mark = rev
	return rev
}

// markAllCellsInserted marks every cell as inserted. Used when a whole
// table is created while tracking is enabled.
func (t *Table) markAllCellsInserted() {
	date := t.doc.track.Now()
	for _, row := range t.rows {
		for _, cell := range row.cells {
			t.markCell(cell, revision.KindCellInsert, nil, date)
		}
	}
}

// deferCellDelete marks a cell for deletion and wraps its live text in a
// delete revision, so the content reads as removed even though the cell
// keeps its place until acceptance. A cell whose own insertion is still
// unresolved is not marked: deleting it cancels the insertion and returns
// nil, and the caller splices the cell out, the same netting the pending
// buffer does when an unflushed text insertion is removed.
func (t *Table) deferCellDelete(cell *Cell, date time.Time) *revision.Revision {
	if t.cancelCellInsert(cell) {
		return nil
	}
	mark := t.markCell(cell, revision.KindCellDelete, nil, date)
	t.wrapCellContentDeleted(cell, date)
	return mark
}

// cancelCellInsert reports whether the cell carries an insert mark and, if
// so, retires the mark along with everything its content still holds:
// unflushed edits are discarded and attached revisions leave the manager.
func (t *Table) cancelCellInsert(cell *Cell) bool {
	if cell.mark == nil || cell.mark.Kind != revision.KindCellInsert {
		return false
	}
	t.doc.releaseCell(cell)
	return true
}

func (t *Table) wrapCellContentDeleted(cell *Cell, date time.Time) {
	var doomed []*Run
	cell.walkRuns(func(r *Run) {
		if r.del == nil && !t.doc.track.PendingDeletion(r) && r.text != "" {
			doomed = append(doomed, r)
		}
	})
	if len(doomed) == 0 {
		return
	}
	rev := &revision.Revision{
		ID:     t.doc.revisions.ConsumeNextID(),
		Author: t.doc.track.Author(),
		Date:   date,
		Kind:   revision.KindDelete,
	}
	for _, r := range doomed {
		_ = rev.AppendContent(r)
		r.AttachContentRevision(rev)
	}
	t.doc.register(rev)
}

// Width returns the table's preferred width in twips.
func (t *Table) Width() (int, bool) { return t.intProp(PropWidth) }

// SetWidth sets the table's preferred width in twips.
func (t *Table) SetWidth(twips int) error { return t.setMeasure(t, PropWidth, twips) }

// Alignment returns the table's justification, or the empty string.
func (t *Table) Alignment() Alignment { return Alignment(t.stringProp(PropAlignment)) }

// SetAlignment sets the table's justification.
func (t *Table) SetAlignment(a Alignment) { t.set(t, PropAlignment, string(a)) }

// Layout returns the table's layout algorithm, or the empty string.
func (t *Table) Layout() TableLayout { return TableLayout(t.stringProp(PropLayout)) }

// SetLayout sets the table's layout algorithm.
func (t *Table) SetLayout(l TableLayout) { t.set(t, PropLayout, string(l)) }

// Style returns the table's named style, or the empty string.
func (t *Table) Style() string { return t.stringProp(PropStyle) }

// SetStyle sets the table's named style.
func (t *Table) SetStyle(style string) { t.set(t, PropStyle, style) }

// Shading returns the table's fill color as RRGGBB hex, or the empty
// string.
func (t *Table) Shading() string { return t.stringProp(PropShading) }

// SetShading sets the table's fill color as RRGGBB hex.
func (t *Table) SetShading(hex string) { t.set(t, PropShading, hex) }

// Indent returns the table's indent from the leading margin in twips.
func (t *Table) Indent() (int, bool) { return t.intProp(PropIndent) }

// SetIndent sets the table's indent from the leading margin in twips.
func (t *Table) SetIndent(twips int) error { return t.setMeasure(t, PropIndent, twips) }
