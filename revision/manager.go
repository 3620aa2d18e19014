package revision

import (
	"fmt"
	"sort"
)

// Manager is a document's revision registry. It allocates ids that stay
// unique for the document's lifetime and indexes every live revision so
// resolution and serialization can enumerate them.
//
// Ids are monotonic. Registering a revision whose id was allocated elsewhere
// (a loaded document) advances the counter past it, so later allocations
// never collide with loaded ids.
type Manager struct {
	nextID    int
	revisions map[int]*Revision
}

// NewManager creates an empty registry. Ids start at 1; OOXML treats 0 as
// absent in several revision attributes.
func NewManager() *Manager {
	return &Manager{
		nextID:    1,
		revisions: make(map[int]*Revision),
	}
}

// ConsumeNextID returns a fresh id and advances the counter. The id is
// reserved regardless of whether a revision is ever registered under it.
func (m *Manager) ConsumeNextID() int {
	id := m.nextID
	m.nextID++
	return id
}

// Reserve advances the counter past id without registering anything. Readers
// call it for ids that appear in markup but belong to objects tracked outside
// the registry.
func (m *Manager) Reserve(id int) {
	if id >= m.nextID {
		m.nextID = id + 1
	}
}

// Register adds rev to the registry and reserves its id. Registering a nil
// revision or reusing a live id is an error.
func (m *Manager) Register(rev *Revision) error {
	if rev == nil {
		return ErrNilRevision
	}
	if _, ok := m.revisions[rev.ID]; ok {
		return fmt.Errorf("%w: %d", ErrDuplicateID, rev.ID)
	}
	m.revisions[rev.ID] = rev
	m.Reserve(rev.ID)
	return nil
}

// Unregister removes the revision with the given id and reports whether it
// was registered. The id is not reused.
func (m *Manager) Unregister(id int) bool {
	if _, ok := m.revisions[id]; !ok {
		return false
	}
	delete(m.revisions, id)
	return true
}

// Lookup returns the registered revision with the given id.
func (m *Manager) Lookup(id int) (*Revision, bool) {
	rev, ok := m.revisions[id]
	return rev, ok
}

// Revisions returns the live revisions ordered by id.
func (m *Manager) Revisions() []*Revision {
	out := make([]*Revision, 0, len(m.revisions))
	for _, rev := range m.revisions {
		out = append(out, rev)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of live revisions.
func (m *Manager) Len() int { return len(m.revisions) }

// Authors returns the distinct author names across live revisions, sorted.
func (m *Manager) Authors() []string {
	seen := make(map[string]struct{})
	for _, rev := range m.revisions {
		seen[rev.Author] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for author := range seen {
		out = append(out, author)
	}
	sort.Strings(out)
	return out
}
