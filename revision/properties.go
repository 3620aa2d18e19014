package revision

import (
	"reflect"
	"time"
)

// Properties is a name-keyed bag of formatting values. A nil value is never
// stored: absence of a name means the property is not set, and Set with a nil
// value removes the name. Values are scalars or small value types, so a
// shallow copy is a full copy.
type Properties map[string]any

// Unset marks a property that had no value before a tracked edit. Delta
// snapshots store it under the changed name so that rejecting the change
// removes the property instead of restoring a value. Full snapshots never
// contain it; they express "had no value" by omitting the name.
var Unset any = unsetValue{}

type unsetValue struct{}

func (unsetValue) String() string { return "unset" }

// Set stores value under name, or removes name when value is nil.
func (p Properties) Set(name string, value any) {
	if value == nil {
		delete(p, name)
		return
	}
	p[name] = value
}

// Clone returns an independent copy of the bag. Cloning nil yields an empty,
// usable bag.
func (p Properties) Clone() Properties {
	out := make(Properties, len(p))
	for name, value := range p {
		out[name] = value
	}
	return out
}

// Equal reports whether both bags hold the same names and deep-equal values.
func (p Properties) Equal(other Properties) bool {
	if len(p) != len(other) {
		return false
	}
	for name, value := range p {
		got, ok := other[name]
		if !ok || !reflect.DeepEqual(value, got) {
			return false
		}
	}
	return true
}

// ValuesEqual reports whether two property values are interchangeable. Both
// being nil (property absent) counts as equal.
func ValuesEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return reflect.DeepEqual(a, b)
}

// PropertyChange is a formatting snapshot attached to a container entity,
// recording its state prior to a tracked in-place edit. At most one snapshot
// exists per entity: later edits merge into it instead of stacking.
type PropertyChange struct {
	// ID is the change id persisted in the markup.
	ID int

	// Author and Date identify the first edit that created the snapshot.
	// Merges never overwrite them.
	Author string
	Date   time.Time

	// Previous holds the property values from before the edit. For
	// paragraph and run changes it carries only the names that changed; for
	// table, row, cell and section changes it carries the entity's entire
	// prior formatting state.
	Previous Properties

	// RevisionIDs lists the registered revisions folded into this snapshot,
	// so resolving the snapshot can retire them from the registry. Readers
	// restore the list from markup to keep the ids reserved.
	RevisionIDs []int
}

// NewPropertyChange creates a snapshot owning a copy of previous.
func NewPropertyChange(id int, author string, date time.Time, previous Properties) *PropertyChange {
	return &PropertyChange{
		ID:       id,
		Author:   author,
		Date:     date,
		Previous: previous.Clone(),
	}
}

// MergePropertyChanges combines the snapshot already attached to an entity
// with a newer one for the same entity. The existing snapshot is the
// earliest-known baseline: its id, author and date are kept, and for any
// property present in both, its value wins. Properties only the incoming
// snapshot knows about are added. Either argument may be nil; the other is
// returned unchanged.
func MergePropertyChanges(existing, incoming *PropertyChange) *PropertyChange {
	if existing == nil {
		return incoming
	}
	if incoming == nil {
		return existing
	}
	for name, value := range incoming.Previous {
		if _, ok := existing.Previous[name]; !ok {
			if existing.Previous == nil {
				existing.Previous = make(Properties)
			}
			existing.Previous[name] = value
		}
	}
	existing.RevisionIDs = append(existing.RevisionIDs, incoming.RevisionIDs...)
	return existing
}
