package tracking

import "time"

// PendingKind discriminates the three categories of buffered changes.
type PendingKind uint8

const (
	PendingProperty PendingKind = iota
	PendingInsertion
	PendingDeletion
)

func (k PendingKind) String() string {
	switch k {
	case PendingProperty:
		return "property"
	case PendingInsertion:
		return "insertion"
	case PendingDeletion:
		return "deletion"
	default:
		return "unknown"
	}
}

// PendingChange is one buffered edit. It lives only between a mutation and
// the next flush. Repeated equivalent edits consolidate into the existing
// entry: Next and Count update in place while Previous keeps the value from
// before the first edit.
type PendingChange struct {
	Kind    PendingKind
	Element Element

	// Property, Previous and Next are set for property changes only.
	Property string
	Previous any
	Next     any

	// Time is when the first consolidated edit was recorded.
	Time time.Time

	// Count is the number of edits folded into this entry.
	Count int
}

// pendingKey identifies the consolidation bucket of a change. Property
// changes key on the element and property name; insertions and deletions key
// on the element alone, since the element is the inserted or deleted content
// itself.
type pendingKey struct {
	kind     PendingKind
	element  uint64
	property string
}
