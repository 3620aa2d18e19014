package document

import (
	"fmt"
	"strings"

	"github.com/dshills/wordsmith/revision"
	"github.com/dshills/wordsmith/tracking"
)

// Block is a body-level element: a paragraph or a table.
type Block interface {
	blockNode()
}

func (*Paragraph) blockNode() {}
func (*Table) blockNode()     {}

// Document is an in-memory word-processing document: a sequence of body
// blocks, one section, the persisted settings and metadata, and the revision
// machinery that records tracked changes.
//
// A Document and everything reachable from it is confined to one goroutine
// at a time.
type Document struct {
	blocks   []Block
	section  *Section
	settings *Settings
	core     *CoreProperties

	revisions *revision.Manager
	track     *tracking.DocumentContext
}

// New creates an empty document with tracking disabled.
func New(opts ...Option) *Document {
	m := revision.NewManager()
	d := &Document{
		revisions: m,
		track:     tracking.NewDocumentContext(m),
		settings:  newSettings(),
		core:      newCoreProperties(),
	}
	d.section = &Section{node: newNode(d)}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Blocks returns the body blocks in order.
func (d *Document) Blocks() []Block {
	out := make([]Block, len(d.blocks))
	copy(out, d.blocks)
	return out
}

// Paragraphs returns the body-level paragraphs in order.
func (d *Document) Paragraphs() []*Paragraph {
	var out []*Paragraph
	for _, b := range d.blocks {
		if p, ok := b.(*Paragraph); ok {
			out = append(out, p)
		}
	}
	return out
}

// Tables returns the body-level tables in order.
func (d *Document) Tables() []*Table {
	var out []*Table
	for _, b := range d.blocks {
		if t, ok := b.(*Table); ok {
			out = append(out, t)
		}
	}
	return out
}

// Section returns the document's section, which holds page geometry.
func (d *Document) Section() *Section { return d.section }

// Settings returns the persisted document settings.
func (d *Document) Settings() *Settings { return d.settings }

// Core returns the document metadata persisted in the core-properties part.
func (d *Document) Core() *CoreProperties { return d.core }

// Revisions returns the manager holding every live revision.
func (d *Document) Revisions() *revision.Manager { return d.revisions }

// Tracking returns the document's tracking context.
func (d *Document) Tracking() *tracking.DocumentContext { return d.track }

// EnableTracking turns change recording on for the named author.
func (d *Document) EnableTracking(author string, opts ...tracking.EnableOption) error {
	return d.track.Enable(author, opts...)
}

// DisableTracking flushes pending changes and stops recording.
func (d *Document) DisableTracking() []*revision.Revision {
	return d.track.Disable()
}

// TrackingEnabled reports whether edits are currently recorded.
func (d *Document) TrackingEnabled() bool { return d.track.Enabled() }

// Text returns the visible text of the body paragraphs joined by newlines.
// Table content is not included.
func (d *Document) Text() string {
	var sb strings.Builder
	first := true
	for _, b := range d.blocks {
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

// AddParagraph appends an empty paragraph to the body.
func (d *Document) AddParagraph() *Paragraph {
	p := newParagraph(d)
	d.blocks = append(d.blocks, p)
	return p
}

// InsertParagraph inserts an empty paragraph at the given block index.
func (d *Document) InsertParagraph(at int) (*Paragraph, error) {
	if at < 0 || at > len(d.blocks) {
		return nil, fmt.Errorf("insert paragraph at %d: %w", at, ErrIndexOutOfRange)
	}
	p := newParagraph(d)
	d.blocks = append(d.blocks, nil)
	copy(d.blocks[at+1:], d.blocks[at:])
	d.blocks[at] = p
	return p, nil
}

// AddTable appends a table with the given number of rows and columns, each
// cell holding one empty paragraph. While tracking is enabled every cell is
// marked as inserted, so rejecting the change removes the table again.
func (d *Document) AddTable(rows, cols int) (*Table, error) {
	t, err := buildTable(d, rows, cols)
	if err != nil {
		return nil, err
	}
	d.blocks = append(d.blocks, t)
	if d.track.Enabled() {
		t.markAllCellsInserted()
	}
	return t, nil
}

// RestoreTable appends a bare table shell with no grid and no rows. It is
// the reconstruction path used when parsing saved markup; editing code uses
// AddTable.
func (d *Document) RestoreTable() *Table {
	t := &Table{node: newNode(d)}
	d.blocks = append(d.blocks, t)
	return t
}

// RemoveParagraph removes the paragraph's content. Untracked it splices the
// paragraph out of the body; while tracking is enabled its runs are marked
// deleted and the paragraph stays in place until the deletions are accepted.
func (d *Document) RemoveParagraph(p *Paragraph) (Mutation, error) {
	i := d.blockIndex(p)
	if i < 0 {
		return Mutation{}, fmt.Errorf("remove paragraph: %w", ErrNotAttached)
	}
	if !d.track.Enabled() {
		d.blocks = append(d.blocks[:i], d.blocks[i+1:]...)
		return applied(), nil
	}
	for _, r := range p.allRuns() {
		if !d.track.TrackDeletion(r) {
			p.detachRun(r)
		}
	}
	return deferred(), nil
}

// MoveParagraph moves the paragraph at block index from so that it occupies
// block index to. Untracked the block list is rearranged in place. While
// tracking is enabled the source paragraph stays where it is, marked as a
// move source, and a copy marked as a move destination is inserted so that
// accepting both halves yields the untracked arrangement.
func (d *Document) MoveParagraph(from, to int) (Mutation, error) {
	if from < 0 || from >= len(d.blocks) || to < 0 || to >= len(d.blocks) {
		return Mutation{}, fmt.Errorf("move paragraph %d to %d: %w", from, to, ErrIndexOutOfRange)
	}
	src, ok := d.blocks[from].(*Paragraph)
	if !ok {
		return Mutation{}, fmt.Errorf("move paragraph %d: %w", from, ErrNotParagraph)
	}
	if from == to {
		return applied(), nil
	}

	if !d.track.Enabled() {
		d.blocks = append(d.blocks[:from], d.blocks[from+1:]...)
		d.blocks = append(d.blocks, nil)
		copy(d.blocks[to+1:], d.blocks[to:])
		d.blocks[to] = src
		return applied(), nil
	}

	now := d.track.Now()
	author := d.track.Author()
	moveFrom := &revision.Revision{
		ID:     d.revisions.ConsumeNextID(),
		Author: author,
		Date:   now,
		Kind:   revision.KindMoveFrom,
	}
	moveTo := &revision.Revision{
		ID:     d.revisions.ConsumeNextID(),
		Author: author,
		Date:   now,
		Kind:   revision.KindMoveTo,
	}

	dst := src.cloneForMove()
	for _, r := range src.allRuns() {
		_ = moveFrom.AppendContent(r)
		r.AttachContentRevision(moveFrom)
	}
	for _, r := range dst.allRuns() {
		_ = moveTo.AppendContent(r)
		r.AttachContentRevision(moveTo)
	}
	src.AttachContentRevision(moveFrom)
	dst.AttachContentRevision(moveTo)
	d.register(moveFrom)
	d.register(moveTo)

	// The source still occupies its slot, so a destination below it lands
	// one block later to end up at the requested index once the source is
	// accepted away.
	at := to
	if to > from {
		at = to + 1
	}
	d.blocks = append(d.blocks, nil)
	copy(d.blocks[at+1:], d.blocks[at:])
	d.blocks[at] = dst
	return deferred(moveFrom, moveTo), nil
}

func (d *Document) blockIndex(b Block) int {
	for i, have := range d.blocks {
		if have == b {
			return i
		}
	}
	return -1
}

// register adds rev to the manager. The id was issued by ConsumeNextID, so
// a duplicate is impossible.
func (d *Document) register(rev *revision.Revision) {
	_ = d.revisions.Register(rev)
}
