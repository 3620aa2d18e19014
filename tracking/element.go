package tracking

import (
	"sync/atomic"

	"github.com/dshills/wordsmith/revision"
)

// elementSeq issues process-local element ids. Ids are assigned on first
// contact and never reused, so two documents can exchange entities without
// identity collisions.
var elementSeq atomic.Uint64

// TrackID carries an entity's engine-assigned identity. Document entities
// embed it by value; the zero value means "not yet seen by any engine".
//
// Its methods are unexported, which seals the Element interface: only types
// embedding TrackID can satisfy it.
type TrackID struct {
	id uint64
}

func (t *TrackID) trackingID() uint64 { return t.id }

func (t *TrackID) assignTrackingID() uint64 {
	if t.id == 0 {
		t.id = elementSeq.Add(1)
	}
	return t.id
}

// ElementKind tags the entity categories the engine distinguishes. The kind
// decides the snapshot policy and the revision kind of a property change.
type ElementKind uint8

const (
	RunElement ElementKind = iota
	ParagraphElement
	HyperlinkElement
	TableElement
	RowElement
	CellElement
	SectionElement
)

// String returns the kind's name, which also serves as placeholder content
// for container elements that have no text of their own.
func (k ElementKind) String() string {
	switch k {
	case RunElement:
		return "run"
	case ParagraphElement:
		return "paragraph"
	case HyperlinkElement:
		return "hyperlink"
	case TableElement:
		return "table"
	case RowElement:
		return "row"
	case CellElement:
		return "cell"
	case SectionElement:
		return "section"
	default:
		return "unknown"
	}
}

// SnapshotPolicy selects what a property-change snapshot must contain for a
// given element kind.
type SnapshotPolicy uint8

const (
	// DeltaSnapshot records only the properties that changed. The host
	// format's paragraph and run change schemas expect exactly the
	// properties that differed.
	DeltaSnapshot SnapshotPolicy = iota

	// FullSnapshot records the entity's entire previous formatting state.
	// The host format's table-level change schemas require a complete
	// prior-properties snapshot.
	FullSnapshot
)

func (p SnapshotPolicy) String() string {
	if p == FullSnapshot {
		return "full"
	}
	return "delta"
}

// SnapshotPolicy returns the policy the flush algorithm applies to property
// changes on elements of this kind.
func (k ElementKind) SnapshotPolicy() SnapshotPolicy {
	switch k {
	case TableElement, RowElement, CellElement, SectionElement:
		return FullSnapshot
	default:
		return DeltaSnapshot
	}
}

// RevisionKind returns the property-change revision kind recorded for
// elements of this kind.
func (k ElementKind) RevisionKind() revision.Kind {
	switch k {
	case RunElement:
		return revision.KindRunProperties
	case ParagraphElement:
		return revision.KindParagraphProperties
	case HyperlinkElement:
		return revision.KindHyperlink
	case TableElement:
		return revision.KindTableProperties
	case RowElement:
		return revision.KindRowProperties
	case CellElement:
		return revision.KindCellProperties
	case SectionElement:
		return revision.KindSectionProperties
	default:
		return revision.KindRunProperties
	}
}

// Element is the capability interface every trackable entity implements. The
// engine reads entities through it and attaches tracking results through it;
// it never calls an entity's setters.
//
// Satisfying Element requires embedding TrackID.
type Element interface {
	trackingID() uint64
	assignTrackingID() uint64

	// ElementKind tags the entity's category.
	ElementKind() ElementKind

	// FormattingSnapshot returns a copy of the entity's current complete
	// formatting state. The engine mutates the returned bag freely.
	FormattingSnapshot() revision.Properties

	// ContentText returns the entity's textual form, used to synthesize
	// placeholder content for revisions on container elements.
	ContentText() string

	// AttachContentRevision hands the entity the revision wrapping its
	// content. The entity routes it by kind: insertions and move
	// destinations to one slot, deletions and move sources to another.
	AttachContentRevision(*revision.Revision)

	// PropertyChangeRecord returns the property-change snapshot attached to
	// the entity, or nil.
	PropertyChangeRecord() *revision.PropertyChange

	// SetPropertyChangeRecord replaces the attached snapshot. The engine
	// calls it with the merge of the existing record and the flushed one.
	SetPropertyChangeRecord(*revision.PropertyChange)
}

// contentFor synthesizes revision content for el: a run is used directly,
// anything else becomes a placeholder carrying its text or its kind name.
func contentFor(el Element) revision.Inline {
	if in, ok := el.(revision.Inline); ok {
		return in
	}
	if text := el.ContentText(); text != "" {
		return revision.Placeholder(text)
	}
	return revision.Placeholder(el.ElementKind().String())
}
