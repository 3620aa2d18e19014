package document

import "github.com/dshills/wordsmith/revision"

// MutationOutcome reports whether a destructive operation changed the tree
// immediately or was deferred behind tracked-change records.
type MutationOutcome uint8

const (
	// MutationApplied means the tree was changed in place.
	MutationApplied MutationOutcome = iota

	// MutationDeferred means the tree kept its shape and the change is
	// recorded as revisions or structural markers awaiting acceptance.
	MutationDeferred
)

func (o MutationOutcome) String() string {
	switch o {
	case MutationApplied:
		return "applied"
	case MutationDeferred:
		return "deferred"
	default:
		return "unknown"
	}
}

// Mutation is the result of a destructive operation on the tree.
type Mutation struct {
	Outcome MutationOutcome

	// Marks holds the revisions a deferred operation created and handed
	// back: structural cell markers for table changes, or the move-from
	// and move-to pair for a paragraph move. Content-only deferrals
	// resolve through the pending change buffer instead and leave Marks
	// empty.
	Marks []*revision.Revision
}

// Applied reports whether the tree was changed immediately.
func (m Mutation) Applied() bool { return m.Outcome == MutationApplied }

// Deferred reports whether the change awaits revision resolution.
func (m Mutation) Deferred() bool { return m.Outcome == MutationDeferred }

func applied() Mutation { return Mutation{Outcome: MutationApplied} }

func deferred(marks ...*revision.Revision) Mutation {
	return Mutation{Outcome: MutationDeferred, Marks: marks}
}
