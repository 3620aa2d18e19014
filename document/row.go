package document

import (
	"fmt"
	"strings"

	"github.com/dshills/wordsmith/revision"
	"github.com/dshills/wordsmith/tracking"
)

// Row is one table row.
type Row struct {
	node
	table *Table
	cells []*Cell
}

func newRow(doc *Document, table *Table) *Row {
	return &Row{node: newNode(doc), table: table}
}

// ElementKind returns tracking.RowElement.
func (r *Row) ElementKind() tracking.ElementKind { return tracking.RowElement }

// ContentText returns the row's visible text, cells joined by tabs.
func (r *Row) ContentText() string {
	var sb strings.Builder
	for i, cell := range r.cells {
		if i > 0 {
			sb.WriteByte('\t')
		}
		sb.WriteString(cell.Text())
	}
	return sb.String()
}

// Cells returns the row's cells in order.
func (r *Row) Cells() []*Cell {
	out := make([]*Cell, len(r.cells))
	copy(out, r.cells)
	return out
}

// CellCount returns the number of cells in the row.
func (r *Row) CellCount() int { return len(r.cells) }

// AddCell appends a cell holding one empty paragraph. While tracking is
// enabled the cell is marked as inserted.
func (r *Row) AddCell() *Cell {
	cell := newCell(r.doc, r)
	cell.AddParagraph()
	r.cells = append(r.cells, cell)
	if r.doc.track.Enabled() {
		r.table.markCell(cell, revision.KindCellInsert, nil, r.doc.track.Now())
	}
	return cell
}

// RemoveCell removes the cell at the given index, or marks it for removal
// while tracking is enabled. A cell whose own insertion is still unresolved
// is spliced out immediately, the insert and the delete netting out.
func (r *Row) RemoveCell(at int) (Mutation, error) {
	if at < 0 || at >= len(r.cells) {
		return Mutation{}, fmt.Errorf("remove cell %d: %w", at, ErrIndexOutOfRange)
	}
	if !r.doc.track.Enabled() {
		r.cells = append(r.cells[:at], r.cells[at+1:]...)
		return applied(), nil
	}
	if mark := r.table.deferCellDelete(r.cells[at], r.doc.track.Now()); mark != nil {
		return deferred(mark), nil
	}
	r.cells = append(r.cells[:at], r.cells[at+1:]...)
	return applied(), nil
}

// RestoreCell appends a bare cell with no content. It is the reconstruction
// path used when parsing saved markup.
func (r *Row) RestoreCell() *Cell {
	cell := newCell(r.doc, r)
	r.cells = append(r.cells, cell)
	return cell
}

// Height returns the row height in twips.
func (r *Row) Height() (int, bool) { return r.intProp(PropHeight) }

// SetHeight sets the row height in twips.
func (r *Row) SetHeight(twips int) error { return r.setMeasure(r, PropHeight, twips) }

// HeightRule returns how the row height is applied, or the empty string.
func (r *Row) HeightRule() HeightRule { return HeightRule(r.stringProp(PropHeightRule)) }

// SetHeightRule sets how the row height is applied.
func (r *Row) SetHeightRule(rule HeightRule) { r.set(r, PropHeightRule, string(rule)) }

// Header reports whether the row repeats as a header on each page.
func (r *Row) Header() bool { return r.boolProp(PropHeader) }

// SetHeader sets whether the row repeats as a header on each page.
func (r *Row) SetHeader(v bool) { r.set(r, PropHeader, v) }

// CantSplit reports whether the row may break across pages.
func (r *Row) CantSplit() bool { return r.boolProp(PropCantSplit) }

// SetCantSplit sets whether the row may break across pages.
func (r *Row) SetCantSplit(v bool) { r.set(r, PropCantSplit, v) }
