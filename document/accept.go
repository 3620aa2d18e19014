package document

import (
	"sort"

	"github.com/dshills/wordsmith/revision"
	"github.com/dshills/wordsmith/tracking"
)

// AcceptOptions selects which change categories a resolution pass touches.
// Categories left false stay in the tree untouched.
type AcceptOptions struct {
	Insertions      bool
	Deletions       bool
	Moves           bool
	PropertyChanges bool
}

// DefaultAcceptOptions returns options with every category selected.
func DefaultAcceptOptions() AcceptOptions {
	return AcceptOptions{Insertions: true, Deletions: true, Moves: true, PropertyChanges: true}
}

// AcceptResult counts the revisions a resolution pass retired, by category.
// A property-change record counts once no matter how many edits it folded.
type AcceptResult struct {
	Insertions      int
	Deletions       int
	Moves           int
	PropertyChanges int
	Total           int
}

// AcceptRevisions makes the selected tracked changes permanent: insertions
// are unwrapped, deletions take effect, structural markers apply, and
// property-change records drop their rollback state. Pending changes are
// flushed first. Every retired revision leaves the manager.
func (d *Document) AcceptRevisions(opts AcceptOptions) AcceptResult {
	return d.resolve(opts, true)
}

// AcceptAll accepts every tracked change.
func (d *Document) AcceptAll() AcceptResult {
	return d.AcceptRevisions(DefaultAcceptOptions())
}

// RejectRevisions undoes the selected tracked changes: insertions are
// removed, deletions are unwrapped, structural markers are discarded, and
// property-change records restore the previous formatting.
func (d *Document) RejectRevisions(opts AcceptOptions) AcceptResult {
	return d.resolve(opts, false)
}

// RejectAll rejects every tracked change.
func (d *Document) RejectAll() AcceptResult {
	return d.RejectRevisions(DefaultAcceptOptions())
}

func (d *Document) resolve(opts AcceptOptions, accept bool) AcceptResult {
	d.track.FlushPendingChanges()
	rv := &resolver{doc: d, opts: opts, accept: accept, seen: make(map[int]struct{})}
	rv.blocks(&d.blocks)
	rv.propertyRecord(&d.section.node, tracking.FullSnapshot)
	return rv.res
}

// resolver walks the tree once, applying or undoing revisions in place. A
// revision shared by several entities, such as a move spanning many runs,
// is counted and unregistered once; the seen set keys on revision ids.
type resolver struct {
	doc    *Document
	opts   AcceptOptions
	accept bool
	seen   map[int]struct{}
	res    AcceptResult
}

// selected reports whether the kind's category is in this pass.
func (rv *resolver) selected(k revision.Kind) bool {
	switch k {
	case revision.KindInsert, revision.KindCellInsert:
		return rv.opts.Insertions
	case revision.KindDelete, revision.KindCellDelete:
		return rv.opts.Deletions
	case revision.KindMoveFrom, revision.KindMoveTo:
		return rv.opts.Moves
	default:
		return rv.opts.PropertyChanges
	}
}

// count retires rev: unregisters it and adds it to the tally, once per id.
func (rv *resolver) count(rev *revision.Revision) {
	if rev == nil {
		return
	}
	if _, ok := rv.seen[rev.ID]; ok {
		return
	}
	rv.seen[rev.ID] = struct{}{}
	rv.doc.revisions.Unregister(rev.ID)
	switch rev.Kind {
	case revision.KindInsert, revision.KindCellInsert:
		rv.res.Insertions++
	case revision.KindDelete, revision.KindCellDelete:
		rv.res.Deletions++
	case revision.KindMoveFrom, revision.KindMoveTo:
		rv.res.Moves++
	default:
		rv.res.PropertyChanges++
	}
	rv.res.Total++
}

// countRecord retires one property-change record and the revisions folded
// into it.
func (rv *resolver) countRecord(rec *revision.PropertyChange) {
	for _, id := range rec.RevisionIDs {
		if _, ok := rv.seen[id]; ok {
			continue
		}
		rv.seen[id] = struct{}{}
		rv.doc.revisions.Unregister(id)
	}
	rv.doc.revisions.Unregister(rec.ID)
	rv.res.PropertyChanges++
	rv.res.Total++
}

// propertyRecord resolves the snapshot on one entity. On reject the previous
// formatting comes back under the entity's snapshot policy: a full snapshot
// replaces the whole bag, a delta snapshot restores name by name, removing
// names that had no value at the baseline.
func (rv *resolver) propertyRecord(n *node, policy tracking.SnapshotPolicy) {
	rec := n.record
	if rec == nil || !rv.opts.PropertyChanges {
		return
	}
	if !rv.accept {
		switch policy {
		case tracking.FullSnapshot:
			n.props = rec.Previous.Clone()
		default:
			for name, value := range rec.Previous {
				if value == revision.Unset {
					delete(n.props, name)
				} else {
					n.props[name] = value
				}
			}
		}
	}
	rv.countRecord(rec)
	n.record = nil
}

// blocks resolves a block list in place, dropping blocks whose resolution
// removes them.
func (rv *resolver) blocks(list *[]Block) {
	kept := (*list)[:0]
	for _, b := range *list {
		keep := true
		switch b := b.(type) {
		case *Paragraph:
			keep = rv.paragraph(b)
		case *Table:
			keep = rv.table(b)
		}
		if keep {
			kept = append(kept, b)
		}
	}
	*list = kept
}

// paragraph resolves one paragraph and reports whether it stays in the
// tree. A paragraph leaves when its move source is accepted or its move
// destination is rejected.
func (rv *resolver) paragraph(p *Paragraph) bool {
	if p.del != nil && rv.selected(p.del.Kind) {
		if rv.accept {
			rv.sweepParagraph(p)
			return false
		}
		rv.count(p.del)
		p.del = nil
	}
	if p.ins != nil && rv.selected(p.ins.Kind) {
		if !rv.accept {
			rv.sweepParagraph(p)
			return false
		}
		rv.count(p.ins)
		p.ins = nil
	}

	kept := p.children[:0]
	for _, child := range p.children {
		keep := true
		switch child := child.(type) {
		case *Run:
			keep = rv.run(child)
		case *Hyperlink:
			keep = rv.hyperlink(child)
		}
		if keep {
			kept = append(kept, child)
		}
	}
	p.children = kept

	rv.propertyRecord(&p.node, tracking.DeltaSnapshot)
	return true
}

// run resolves one run and reports whether it stays in the tree. The
// deletion slot resolves before the insertion slot, so a run inserted by
// one author and deleted by another leaves when the deletion is accepted.
func (rv *resolver) run(r *Run) bool {
	if r.del != nil && rv.selected(r.del.Kind) {
		if rv.accept {
			rv.sweepRun(r)
			return false
		}
		rv.count(r.del)
		r.del = nil
	}
	if r.ins != nil && rv.selected(r.ins.Kind) {
		if !rv.accept {
			rv.sweepRun(r)
			return false
		}
		rv.count(r.ins)
		r.ins = nil
	}
	rv.propertyRecord(&r.node, tracking.DeltaSnapshot)
	return true
}

// hyperlink resolves a hyperlink's runs and reports whether the hyperlink
// stays. A hyperlink that had runs and lost them all leaves with them.
func (rv *resolver) hyperlink(h *Hyperlink) bool {
	had := len(h.runs) > 0
	kept := h.runs[:0]
	for _, r := range h.runs {
		if rv.run(r) {
			kept = append(kept, r)
		}
	}
	h.runs = kept
	rv.propertyRecord(&h.node, tracking.DeltaSnapshot)
	return !had || len(h.runs) > 0
}

// table resolves a table's content, then its structural markers, and
// reports whether the table stays. A table left with no rows leaves the
// tree.
func (rv *resolver) table(t *Table) bool {
	for _, row := range t.rows {
		for _, cell := range row.cells {
			rv.blocks(&cell.blocks)
			rv.propertyRecord(&cell.node, tracking.FullSnapshot)
		}
		rv.propertyRecord(&row.node, tracking.FullSnapshot)
	}
	rv.structural(t)
	rv.propertyRecord(&t.node, tracking.FullSnapshot)
	return len(t.rows) > 0
}

// structural resolves a table's cell markers. Merges go first so their
// anchor coordinates still describe the grid the marks were recorded
// against; deletions and insertions reshape the grid after.
func (rv *resolver) structural(t *Table) {
	rv.merges(t)
	if rv.opts.Deletions {
		if rv.accept {
			rv.removeMarked(t, revision.KindCellDelete)
		} else {
			rv.clearMarks(t, revision.KindCellDelete)
		}
	}
	if rv.opts.Insertions {
		if rv.accept {
			rv.clearMarks(t, revision.KindCellInsert)
		} else {
			rv.removeMarked(t, revision.KindCellInsert)
		}
	}
}

// merges resolves cell-merge markers. Accepting reconstructs each region
// from the anchor coordinates the marks carry and performs the deferred
// absorption; rejecting discards the marks. Regions apply right to left,
// bottom to top, so one absorption does not shift the coordinates of the
// next.
func (rv *resolver) merges(t *Table) {
	if !rv.opts.PropertyChanges {
		return
	}
	type region struct{ sr, sc, er, ec int }
	regions := make(map[[2]int]*region)
	var order [][2]int

	for ri, row := range t.rows {
		for ci, cell := range row.cells {
			mark := cell.mark
			if mark == nil || mark.Kind != revision.KindCellMerge {
				continue
			}
			rv.count(mark)
			cell.mark = nil
			if !rv.accept {
				continue
			}
			ar, ok1 := mark.Updated[MarkAnchorRow].(int)
			ac, ok2 := mark.Updated[MarkAnchorColumn].(int)
			if !ok1 || !ok2 {
				continue
			}
			key := [2]int{ar, ac}
			reg, ok := regions[key]
			if !ok {
				reg = &region{sr: ar, sc: ac, er: ar, ec: ac}
				regions[key] = reg
				order = append(order, key)
			}
			if ri > reg.er {
				reg.er = ri
			}
			if ci > reg.ec {
				reg.ec = ci
			}
		}
	}
	if !rv.accept {
		return
	}
	sort.Slice(order, func(i, j int) bool {
		if order[i][1] != order[j][1] {
			return order[i][1] > order[j][1]
		}
		return order[i][0] > order[j][0]
	})
	for _, key := range order {
		reg := regions[key]
		t.applyMerge(reg.sr, reg.sc, reg.er, reg.ec)
	}
}

// clearMarks discards every marker of the given kind, keeping the cells.
func (rv *resolver) clearMarks(t *Table, kind revision.Kind) {
	for _, row := range t.rows {
		for _, cell := range row.cells {
			if cell.mark != nil && cell.mark.Kind == kind {
				rv.count(cell.mark)
				cell.mark = nil
			}
		}
	}
}

// removeMarked removes the cells carrying markers of the given kind: whole
// rows when every cell in the row is marked, then whole columns, then any
// leftover marked cell on its own.
func (rv *resolver) removeMarked(t *Table, kind revision.Kind) {
	keptRows := t.rows[:0]
	for _, row := range t.rows {
		if rowFullyMarked(row, kind) {
			rv.sweepRow(row)
			continue
		}
		keptRows = append(keptRows, row)
	}
	t.rows = keptRows

	// Columns go right to left so earlier removals keep later indexes
	// valid.
	for j := len(t.grid) - 1; j >= 0; j-- {
		if !columnFullyMarked(t, j, kind) {
			continue
		}
		for _, row := range t.rows {
			if j < len(row.cells) {
				rv.sweepCell(row.cells[j])
				row.cells = append(row.cells[:j], row.cells[j+1:]...)
			}
		}
		t.grid = append(t.grid[:j], t.grid[j+1:]...)
	}

	for _, row := range t.rows {
		kept := row.cells[:0]
		for _, cell := range row.cells {
			if cell.mark != nil && cell.mark.Kind == kind {
				rv.sweepCell(cell)
				continue
			}
			kept = append(kept, cell)
		}
		row.cells = kept
	}
}

func rowFullyMarked(row *Row, kind revision.Kind) bool {
	if len(row.cells) == 0 {
		return false
	}
	for _, cell := range row.cells {
		if cell.mark == nil || cell.mark.Kind != kind {
			return false
		}
	}
	return true
}

func columnFullyMarked(t *Table, j int, kind revision.Kind) bool {
	if len(t.rows) == 0 {
		return false
	}
	for _, row := range t.rows {
		if j >= len(row.cells) {
			return false
		}
		cell := row.cells[j]
		if cell.mark == nil || cell.mark.Kind != kind {
			return false
		}
	}
	return true
}

// The sweep helpers retire everything attached to a subtree that is leaving
// the tree, so no revision or record outlives its content.

func (rv *resolver) sweepRun(r *Run) {
	rv.count(r.del)
	rv.count(r.ins)
	r.del, r.ins = nil, nil
	if r.record != nil {
		rv.countRecord(r.record)
		r.record = nil
	}
}

func (rv *resolver) sweepParagraph(p *Paragraph) {
	rv.count(p.del)
	rv.count(p.ins)
	p.del, p.ins = nil, nil
	if p.record != nil {
		rv.countRecord(p.record)
		p.record = nil
	}
	for _, child := range p.children {
		switch child := child.(type) {
		case *Run:
			rv.sweepRun(child)
		case *Hyperlink:
			for _, r := range child.runs {
				rv.sweepRun(r)
			}
			if child.record != nil {
				rv.countRecord(child.record)
				child.record = nil
			}
		}
	}
}

func (rv *resolver) sweepCell(cell *Cell) {
	rv.count(cell.mark)
	cell.mark = nil
	if cell.record != nil {
		rv.countRecord(cell.record)
		cell.record = nil
	}
	for _, b := range cell.blocks {
		switch b := b.(type) {
		case *Paragraph:
			rv.sweepParagraph(b)
		case *Table:
			rv.sweepTable(b)
		}
	}
}

func (rv *resolver) sweepRow(row *Row) {
	for _, cell := range row.cells {
		rv.sweepCell(cell)
	}
	if row.record != nil {
		rv.countRecord(row.record)
		row.record = nil
	}
}

func (rv *resolver) sweepTable(t *Table) {
	for _, row := range t.rows {
		rv.sweepRow(row)
	}
	if t.record != nil {
		rv.countRecord(t.record)
		t.record = nil
	}
}

// The release helpers retire everything attached to a subtree that leaves
// the tree outside a resolution pass, such as a cell whose insertion was
// cancelled by its own removal. Unlike the sweeps they discard unflushed
// edits too, and nothing they retire lands in an AcceptResult.

func (d *Document) releaseSlots(s *revisionSlots) {
	if s.ins != nil {
		d.revisions.Unregister(s.ins.ID)
		s.ins = nil
	}
	if s.del != nil {
		d.revisions.Unregister(s.del.ID)
		s.del = nil
	}
}

func (d *Document) releaseRecord(s *recordSlot) {
	if s.record == nil {
		return
	}
	for _, id := range s.record.RevisionIDs {
		d.revisions.Unregister(id)
	}
	d.revisions.Unregister(s.record.ID)
	s.record = nil
}

func (d *Document) releaseRun(r *Run) {
	d.track.DiscardPending(r)
	d.releaseSlots(&r.revisionSlots)
	d.releaseRecord(&r.recordSlot)
}

func (d *Document) releaseParagraph(p *Paragraph) {
	d.track.DiscardPending(p)
	d.releaseSlots(&p.revisionSlots)
	d.releaseRecord(&p.recordSlot)
	for _, child := range p.children {
		switch child := child.(type) {
		case *Run:
			d.releaseRun(child)
		case *Hyperlink:
			d.track.DiscardPending(child)
			d.releaseRecord(&child.recordSlot)
			for _, r := range child.runs {
				d.releaseRun(r)
			}
		}
	}
}

func (d *Document) releaseCell(cell *Cell) {
	d.track.DiscardPending(cell)
	if cell.mark != nil {
		d.revisions.Unregister(cell.mark.ID)
		cell.mark = nil
	}
	d.releaseRecord(&cell.recordSlot)
	for _, b := range cell.blocks {
		switch b := b.(type) {
		case *Paragraph:
			d.releaseParagraph(b)
		case *Table:
			d.releaseTable(b)
		}
	}
}

func (d *Document) releaseRow(row *Row) {
	d.track.DiscardPending(row)
	d.releaseRecord(&row.recordSlot)
	for _, cell := range row.cells {
		d.releaseCell(cell)
	}
}

func (d *Document) releaseTable(t *Table) {
	d.track.DiscardPending(t)
	d.releaseRecord(&t.recordSlot)
	for _, row := range t.rows {
		d.releaseRow(row)
	}
}
