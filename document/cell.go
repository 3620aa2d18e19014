package document

import (
	"fmt"
	"strings"

	"github.com/dshills/wordsmith/revision"
	"github.com/dshills/wordsmith/tracking"
)

// Cell is one table cell, holding a sequence of blocks. Beyond the slots
// every entity carries, a cell can hold one structural marker recording a
// deferred insert, delete, or merge of the cell itself.
type Cell struct {
	node
	row    *Row
	blocks []Block
	mark   *revision.Revision
}

func newCell(doc *Document, row *Row) *Cell {
	return &Cell{node: newNode(doc), row: row}
}

// ElementKind returns tracking.CellElement.
func (c *Cell) ElementKind() tracking.ElementKind { return tracking.CellElement }

// ContentText returns the cell's visible text.
func (c *Cell) ContentText() string { return c.Text() }

// AttachContentRevision routes structural marker kinds to the cell's marker
// slot and everything else to the regular revision slots.
func (c *Cell) AttachContentRevision(rev *revision.Revision) {
	if rev != nil && rev.Kind.IsStructural() {
		c.mark = rev
		return
	}
	c.revisionSlots.AttachContentRevision(rev)
}

// Mark returns the cell's structural marker, or nil.
func (c *Cell) Mark() *revision.Revision { return c.mark }

// SetMark replaces the cell's structural marker. It is the reconstruction
// path used when parsing saved markup.
func (c *Cell) SetMark(rev *revision.Revision) { c.mark = rev }

// Text returns the cell's visible text, paragraphs joined by newlines.
func (c *Cell) Text() string {
	var sb strings.Builder
	first := true
	for _, b := range c.blocks {
		p, ok := b.(*Paragraph)
		if !ok {
			continue
		}
		if !first {
			sb.WriteByte('\n')
		}
		sb.WriteString(p.Text())
		first = false
	}
	return sb.String()
}

// Blocks returns the cell's blocks in order.
func (c *Cell) Blocks() []Block {
	out := make([]Block, len(c.blocks))
	copy(out, c.blocks)
	return out
}

// Paragraphs returns the cell's paragraphs in order.
func (c *Cell) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, b := range c.blocks {
		if p, ok := b.(*Paragraph); ok {
			out = append(out, p)
		}
	}
	return out
}

// Tables returns the cell's nested tables in order.
func (c *Cell) Tables() []*Table {
	var out []*Table
	for _, b := range c.blocks {
		if t, ok := b.(*Table); ok {
			out = append(out, t)
		}
	}
	return out
}

// AddParagraph appends an empty paragraph to the cell.
func (c *Cell) AddParagraph() *Paragraph {
	p := newParagraph(c.doc)
	c.blocks = append(c.blocks, p)
	return p
}

// AddText appends a paragraph holding the given text.
func (c *Cell) AddText(text string) *Paragraph {
	p := c.AddParagraph()
	p.AddText(text)
	return p
}

// AddTable appends a nested table. While tracking is enabled every nested
// cell is marked as inserted.
func (c *Cell) AddTable(rows, cols int) (*Table, error) {
	t, err := buildTable(c.doc, rows, cols)
	if err != nil {
		return nil, err
	}
	c.blocks = append(c.blocks, t)
	if c.doc.track.Enabled() {
		t.markAllCellsInserted()
	}
	return t, nil
}

// RestoreTable appends a bare nested table shell. It is the reconstruction
// path used when parsing saved markup.
func (c *Cell) RestoreTable() *Table {
	t := &Table{node: newNode(c.doc)}
	c.blocks = append(c.blocks, t)
	return t
}

// walkRuns visits every run under the cell, including runs of nested
// tables, in document order.
func (c *Cell) walkRuns(fn func(*Run)) {
	for _, b := range c.blocks {
		switch b := b.(type) {
		case *Paragraph:
			for _, r := range b.allRuns() {
				fn(r)
			}
		case *Table:
			for _, row := range b.rows {
				for _, cell := range row.cells {
					cell.walkRuns(fn)
				}
			}
		}
	}
}

// absorb moves another cell's content into c. Empty paragraphs are left
// behind so the anchor does not pile up blank lines.
func (c *Cell) absorb(other *Cell) {
	for _, b := range other.blocks {
		switch b := b.(type) {
		case *Paragraph:
			if b.Text() != "" {
				c.blocks = append(c.blocks, b)
			}
		case *Table:
			c.blocks = append(c.blocks, b)
		}
	}
	other.blocks = nil
}

// clearContent resets the cell to one empty paragraph.
func (c *Cell) clearContent() {
	c.blocks = nil
	c.AddParagraph()
}

// span returns the number of grid columns the cell covers.
func (c *Cell) span() int {
	if gs, ok := c.intProp(PropGridSpan); ok && gs > 1 {
		return gs
	}
	return 1
}

// Width returns the cell's preferred width in twips.
func (c *Cell) Width() (int, bool) { return c.intProp(PropWidth) }

// SetWidth sets the cell's preferred width in twips.
func (c *Cell) SetWidth(twips int) error { return c.setMeasure(c, PropWidth, twips) }

// Shading returns the cell's fill color as RRGGBB hex, or the empty string.
func (c *Cell) Shading() string { return c.stringProp(PropShading) }

// SetShading sets the cell's fill color as RRGGBB hex.
func (c *Cell) SetShading(hex string) { c.set(c, PropShading, hex) }

// VerticalAlign returns the cell's vertical content alignment, or the empty
// string.
func (c *Cell) VerticalAlign() CellVerticalAlign {
	return CellVerticalAlign(c.stringProp(PropVerticalAlign))
}

// SetVerticalAlign sets the cell's vertical content alignment.
func (c *Cell) SetVerticalAlign(v CellVerticalAlign) { c.set(c, PropVerticalAlign, string(v)) }

// NoWrap reports whether the cell's content wraps.
func (c *Cell) NoWrap() bool { return c.boolProp(PropNoWrap) }

// SetNoWrap sets whether the cell's content wraps.
func (c *Cell) SetNoWrap(v bool) { c.set(c, PropNoWrap, v) }

// GridSpan returns the number of grid columns the cell covers.
func (c *Cell) GridSpan() int { return c.span() }

// SetGridSpan sets the number of grid columns the cell covers.
func (c *Cell) SetGridSpan(cols int) error {
	if cols < 1 {
		return fmt.Errorf("grid span %d: %w", cols, ErrIndexOutOfRange)
	}
	c.set(c, PropGridSpan, cols)
	return nil
}

// VerticalMerge returns the cell's vertical-merge state, or the empty
// string.
func (c *Cell) VerticalMerge() VerticalMerge { return VerticalMerge(c.stringProp(PropVerticalMerge)) }

// SetVerticalMerge sets the cell's vertical-merge state.
func (c *Cell) SetVerticalMerge(m VerticalMerge) { c.set(c, PropVerticalMerge, string(m)) }
