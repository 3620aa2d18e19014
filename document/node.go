package document

import (
	"fmt"

	"github.com/dshills/wordsmith/revision"
	"github.com/dshills/wordsmith/tracking"
)

// node is the embedded base of every trackable entity: the engine-assigned
// identity, the content-revision slots, the property-change record slot, the
// owning document, and the formatting bag.
type node struct {
	tracking.TrackID
	revisionSlots
	recordSlot
	doc   *Document
	props revision.Properties
}

func newNode(doc *Document) node {
	return node{doc: doc, props: make(revision.Properties)}
}

// FormattingSnapshot returns a copy of the entity's full formatting state.
// Property names are the Prop constants of this package.
func (n *node) FormattingSnapshot() revision.Properties { return n.props.Clone() }

// set runs one tracked property write: report the edit to the document's
// tracking context, then apply it. el is the outer entity, which the context
// needs for its kind and identity.
func (n *node) set(el tracking.Element, name string, value any) {
	var prev any
	if v, ok := n.props[name]; ok {
		prev = v
	}
	n.doc.track.TrackPropertyChange(el, name, prev, value)
	n.props.Set(name, value)
}

// setMeasure is set for twip measurements, which must not be negative.
func (n *node) setMeasure(el tracking.Element, name string, v int) error {
	if v < 0 {
		return fmt.Errorf("%s: %w", name, ErrNegativeMeasurement)
	}
	n.set(el, name, v)
	return nil
}

func (n *node) boolProp(name string) bool {
	v, _ := n.props[name].(bool)
	return v
}

func (n *node) stringProp(name string) string {
	v, _ := n.props[name].(string)
	return v
}

func (n *node) intProp(name string) (int, bool) {
	v, ok := n.props[name].(int)
	return v, ok
}

// revisionSlots holds the content revisions wrapping an entity: one slot for
// the revision that introduced it (an insertion or a move destination) and
// one for the revision that removes it (a deletion or a move source). Both
// can be set at once, as when one author deletes text another author
// inserted.
type revisionSlots struct {
	ins *revision.Revision
	del *revision.Revision
}

// AttachContentRevision stores rev in the slot its kind selects. Revisions
// of non-content kinds are ignored.
func (s *revisionSlots) AttachContentRevision(rev *revision.Revision) {
	if rev == nil {
		return
	}
	switch rev.Kind {
	case revision.KindInsert, revision.KindMoveTo:
		s.ins = rev
	case revision.KindDelete, revision.KindMoveFrom:
		s.del = rev
	}
}

// Insertion returns the revision that introduced the entity, or nil.
func (s *revisionSlots) Insertion() *revision.Revision { return s.ins }

// Deletion returns the revision that marks the entity deleted, or nil.
func (s *revisionSlots) Deletion() *revision.Revision { return s.del }

// recordSlot holds an entity's property-change snapshot.
type recordSlot struct {
	record *revision.PropertyChange
}

// PropertyChangeRecord returns the attached snapshot, or nil.
func (s *recordSlot) PropertyChangeRecord() *revision.PropertyChange { return s.record }

// SetPropertyChangeRecord replaces the attached snapshot.
func (s *recordSlot) SetPropertyChangeRecord(pc *revision.PropertyChange) { s.record = pc }

// Compile-time checks that every entity satisfies the tracking contract.
var (
	_ tracking.Element = (*Run)(nil)
	_ tracking.Element = (*Paragraph)(nil)
	_ tracking.Element = (*Hyperlink)(nil)
	_ tracking.Element = (*Table)(nil)
	_ tracking.Element = (*Row)(nil)
	_ tracking.Element = (*Cell)(nil)
	_ tracking.Element = (*Section)(nil)

	_ revision.Inline = (*Run)(nil)
)
