package tracking

import (
	"strings"
	"time"

	"github.com/dshills/wordsmith/revision"
)

// EnableOption configures a tracking session as it is enabled.
type EnableOption func(*DocumentContext)

// WithoutFormatting turns off recording of formatting changes for the
// session. Text insertions, deletions, and hyperlink retargets are still
// recorded.
func WithoutFormatting() EnableOption {
	return func(c *DocumentContext) { c.formatting = false }
}

// DocumentContext is the tracking engine owned by one document. It buffers
// edits as pending changes, consolidates repeated edits to the same property
// of the same entity, and converts the buffer into registered revisions on
// flush. It implements Context.
//
// The context is single-threaded, like the document that owns it. Buffer
// entries hold their entity only between a mutation and the next flush, so
// the engine never extends an entity's lifetime beyond that window.
type DocumentContext struct {
	manager *revision.Manager

	enabled    bool
	formatting bool
	author     string

	pending []*PendingChange
	index   map[pendingKey]*PendingChange

	now func() time.Time
}

var _ Context = (*DocumentContext)(nil)

// NewDocumentContext creates a disabled context that registers flushed
// revisions with manager.
func NewDocumentContext(manager *revision.Manager) *DocumentContext {
	return &DocumentContext{
		manager: manager,
		index:   make(map[pendingKey]*PendingChange),
		now:     time.Now,
	}
}

// Enable starts recording changes under author. Formatting tracking is on
// unless WithoutFormatting is given. Enabling an already enabled context
// flushes first, so nothing recorded earlier is attributed to the new
// session.
func (c *DocumentContext) Enable(author string, opts ...EnableOption) error {
	if strings.TrimSpace(author) == "" {
		return ErrNoAuthor
	}
	if c.enabled {
		c.FlushPendingChanges()
	}
	c.enabled = true
	c.formatting = true
	c.author = author
	for _, opt := range opts {
		opt(c)
	}
	return nil
}

// Disable flushes pending changes and stops recording. It returns the
// revisions the flush created. Disabling a disabled context is a no-op.
func (c *DocumentContext) Disable() []*revision.Revision {
	if !c.enabled {
		return nil
	}
	revs := c.FlushPendingChanges()
	c.enabled = false
	return revs
}

// SetAuthor switches the author for subsequent changes. Pending changes are
// flushed first, so no change recorded under the old author is ever
// attributed to the new one. It returns the revisions the flush created.
func (c *DocumentContext) SetAuthor(author string) ([]*revision.Revision, error) {
	if strings.TrimSpace(author) == "" {
		return nil, ErrNoAuthor
	}
	if author == c.author {
		return nil, nil
	}
	revs := c.FlushPendingChanges()
	c.author = author
	return revs, nil
}

// Enabled reports whether changes are currently being recorded.
func (c *DocumentContext) Enabled() bool { return c.enabled }

// TracksFormatting reports whether the current session records formatting
// changes. It is false when tracking is disabled.
func (c *DocumentContext) TracksFormatting() bool { return c.enabled && c.formatting }

// Author returns the name changes are currently attributed to.
func (c *DocumentContext) Author() string { return c.author }

// Now returns the current time on the session clock. Revisions built outside
// the pending buffer, such as structural cell markers, read it so every
// recorded date comes from the same clock as the flush.
func (c *DocumentContext) Now() time.Time { return c.now() }

// TrackPropertyChange buffers a property edit on el. Repeated edits to the
// same property of the same entity consolidate into one pending change that
// keeps the first recorded previous value, so a chain of edits is recorded as
// original value to final value.
func (c *DocumentContext) TrackPropertyChange(el Element, property string, previous, next any) {
	if !c.enabled || el == nil {
		return
	}
	if !c.formatting && el.ElementKind() != HyperlinkElement {
		return
	}
	if revision.ValuesEqual(previous, next) {
		return
	}

	key := pendingKey{kind: PendingProperty, element: el.assignTrackingID(), property: property}
	if pc, ok := c.index[key]; ok {
		pc.Next = next
		pc.Count++
		return
	}
	c.add(key, &PendingChange{
		Kind:     PendingProperty,
		Element:  el,
		Property: property,
		Previous: previous,
		Next:     next,
		Time:     c.now(),
		Count:    1,
	})
}

// TrackInsertion buffers el as newly inserted content.
func (c *DocumentContext) TrackInsertion(el Element) {
	if !c.enabled || el == nil {
		return
	}
	key := pendingKey{kind: PendingInsertion, element: el.assignTrackingID()}
	if pc, ok := c.index[key]; ok {
		pc.Count++
		return
	}
	c.add(key, &PendingChange{Kind: PendingInsertion, Element: el, Time: c.now(), Count: 1})
}

// TrackDeletion buffers el as deleted content and reports whether the
// deletion is now pending. Deleting an element whose insertion is still
// unflushed cancels the insertion instead and returns false: the two edits
// net out to no change, and the caller removes el outright.
func (c *DocumentContext) TrackDeletion(el Element) bool {
	if !c.enabled || el == nil {
		return false
	}
	id := el.assignTrackingID()

	if _, ok := c.index[pendingKey{kind: PendingInsertion, element: id}]; ok {
		c.remove(pendingKey{kind: PendingInsertion, element: id})
		return false
	}

	key := pendingKey{kind: PendingDeletion, element: id}
	if pc, ok := c.index[key]; ok {
		pc.Count++
		return true
	}
	c.add(key, &PendingChange{Kind: PendingDeletion, Element: el, Time: c.now(), Count: 1})
	return true
}

// PendingInsertion reports whether an unflushed insertion exists for el.
func (c *DocumentContext) PendingInsertion(el Element) bool {
	return c.hasPending(PendingInsertion, el)
}

// PendingDeletion reports whether an unflushed deletion exists for el.
func (c *DocumentContext) PendingDeletion(el Element) bool {
	return c.hasPending(PendingDeletion, el)
}

// PendingCount returns the number of buffered changes awaiting a flush.
func (c *DocumentContext) PendingCount() int { return len(c.pending) }

// ClearPendingChanges discards the buffer without creating revisions. It is
// the rollback path for operations that must not leave partial tracking
// state behind.
func (c *DocumentContext) ClearPendingChanges() {
	c.pending = nil
	clear(c.index)
}

// DiscardPending drops every buffered change recorded for el, of any kind.
// Callers use it when el leaves the tree before a flush, so the buffer never
// turns edits on detached content into revisions.
func (c *DocumentContext) DiscardPending(el Element) {
	if el == nil || len(c.pending) == 0 {
		return
	}
	id := el.trackingID()
	if id == 0 {
		return
	}
	kept := c.pending[:0]
	for _, pc := range c.pending {
		if pc.Element.trackingID() == id {
			delete(c.index, pendingKey{kind: pc.Kind, element: id, property: pc.Property})
			continue
		}
		kept = append(kept, pc)
	}
	c.pending = kept
}

// FlushPendingChanges converts the buffer into registered revisions in
// insertion order and attaches the results to their entities: insertions and
// deletions as content revisions on the element itself, property changes
// merged into the entity's property-change snapshot under its kind's
// snapshot policy. It returns the newly created revisions and leaves the
// buffer empty.
func (c *DocumentContext) FlushPendingChanges() []*revision.Revision {
	if len(c.pending) == 0 {
		return nil
	}

	revs := make([]*revision.Revision, 0, len(c.pending))
	buckets := make(map[uint64]*propertyBucket)
	var order []*propertyBucket

	for _, pc := range c.pending {
		switch pc.Kind {
		case PendingInsertion, PendingDeletion:
			revs = append(revs, c.contentRevision(pc))
		case PendingProperty:
			rev, created := c.propertyRevision(pc, buckets)
			revs = append(revs, rev)
			if created != nil {
				order = append(order, created)
			}
		}
	}

	for _, b := range order {
		c.attachRecord(b)
	}

	c.pending = nil
	clear(c.index)
	return revs
}

// contentRevision turns an insertion or deletion pending into a registered
// revision attached to its element.
func (c *DocumentContext) contentRevision(pc *PendingChange) *revision.Revision {
	kind := revision.KindInsert
	if pc.Kind == PendingDeletion {
		kind = revision.KindDelete
	}
	rev := &revision.Revision{
		ID:      c.manager.ConsumeNextID(),
		Author:  c.author,
		Date:    pc.Time,
		Kind:    kind,
		Content: []revision.Inline{contentFor(pc.Element)},
	}
	c.register(rev)
	pc.Element.AttachContentRevision(rev)
	return rev
}

// propertyBucket gathers the flushed property revisions of one entity so a
// single snapshot can be attached afterwards.
type propertyBucket struct {
	element  Element
	first    *revision.Revision
	date     time.Time
	names    []string
	previous map[string]any
	ids      []int
}

// propertyRevision turns a property pending into a registered revision and
// files it under its entity's bucket. The second return value is the bucket
// when this pending created it, so callers can keep buckets in first-touch
// order.
func (c *DocumentContext) propertyRevision(pc *PendingChange, buckets map[uint64]*propertyBucket) (*revision.Revision, *propertyBucket) {
	prev := make(revision.Properties, 1)
	prev.Set(pc.Property, pc.Previous)
	next := make(revision.Properties, 1)
	next.Set(pc.Property, pc.Next)

	rev := &revision.Revision{
		ID:       c.manager.ConsumeNextID(),
		Author:   c.author,
		Date:     pc.Time,
		Kind:     pc.Element.ElementKind().RevisionKind(),
		Content:  []revision.Inline{contentFor(pc.Element)},
		Previous: prev,
		Updated:  next,
	}
	c.register(rev)

	id := pc.Element.trackingID()
	b, ok := buckets[id]
	var created *propertyBucket
	if !ok {
		b = &propertyBucket{
			element:  pc.Element,
			first:    rev,
			date:     pc.Time,
			previous: make(map[string]any),
		}
		buckets[id] = b
		created = b
	}
	b.names = append(b.names, pc.Property)
	b.previous[pc.Property] = pc.Previous
	b.ids = append(b.ids, rev.ID)
	return rev, created
}

// attachRecord builds the property-change snapshot for one entity and merges
// it into whatever snapshot the entity already carries.
//
// Delta policy records exactly the changed names; a name that had no value
// before is recorded as revision.Unset so rejection knows to remove it. Full
// policy records the entity's entire previous formatting state: the current
// state rolled back name by name to the recorded previous values, dropping
// names that had no value at all.
func (c *DocumentContext) attachRecord(b *propertyBucket) {
	var prev revision.Properties
	switch b.element.ElementKind().SnapshotPolicy() {
	case FullSnapshot:
		prev = b.element.FormattingSnapshot()
		for _, name := range b.names {
			if v := b.previous[name]; v != nil {
				prev[name] = v
			} else {
				delete(prev, name)
			}
		}
	default:
		prev = make(revision.Properties, len(b.names))
		for _, name := range b.names {
			if v := b.previous[name]; v != nil {
				prev[name] = v
			} else {
				prev[name] = revision.Unset
			}
		}
	}

	record := revision.NewPropertyChange(b.first.ID, c.author, b.date, prev)
	record.RevisionIDs = b.ids
	b.element.SetPropertyChangeRecord(revision.MergePropertyChanges(b.element.PropertyChangeRecord(), record))
}

// register adds rev to the manager. Ids minted from ConsumeNextID cannot
// collide with a live registration, so the error path is unreachable for
// revisions built by the flush.
func (c *DocumentContext) register(rev *revision.Revision) {
	_ = c.manager.Register(rev)
}

func (c *DocumentContext) add(key pendingKey, pc *PendingChange) {
	c.pending = append(c.pending, pc)
	c.index[key] = pc
}

func (c *DocumentContext) remove(key pendingKey) {
	pc, ok := c.index[key]
	if !ok {
		return
	}
	delete(c.index, key)
	for i, p := range c.pending {
		if p == pc {
			c.pending = append(c.pending[:i], c.pending[i+1:]...)
			return
		}
	}
}

func (c *DocumentContext) hasPending(kind PendingKind, el Element) bool {
	if el == nil {
		return false
	}
	id := el.trackingID()
	if id == 0 {
		return false
	}
	_, ok := c.index[pendingKey{kind: kind, element: id}]
	return ok
}
