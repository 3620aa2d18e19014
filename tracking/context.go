package tracking

// Context is the contract entity mutators call into. Every trackable setter
// reports its edit here before applying it; the context decides whether the
// edit is recorded. A disabled context turns every call into a no-op, so the
// entity layer never branches on tracking state for property writes.
type Context interface {
	// Enabled reports whether changes are currently being recorded.
	Enabled() bool

	// TracksFormatting reports whether formatting changes are recorded in
	// the current session. Content edits are recorded regardless.
	TracksFormatting() bool

	// Author returns the name changes are currently attributed to.
	Author() string

	// TrackPropertyChange buffers a property edit on el. It is a no-op when
	// tracking is disabled, when previous and next are deep-equal, or when
	// the session does not track formatting and el is not a hyperlink. A nil
	// previous or next means the property had, or will have, no value.
	TrackPropertyChange(el Element, property string, previous, next any)

	// TrackInsertion buffers el as newly inserted content.
	TrackInsertion(el Element)

	// TrackDeletion buffers el as deleted content and reports whether the
	// deletion is now pending, in which case the caller must keep el in the
	// tree so the flushed revision has something to mark. It returns false
	// when tracking is disabled or when it cancelled an unflushed insertion
	// of el; either way the caller removes el itself.
	TrackDeletion(el Element) bool

	// PendingInsertion reports whether an unflushed insertion exists for el.
	PendingInsertion(el Element) bool

	// PendingDeletion reports whether an unflushed deletion exists for el.
	PendingDeletion(el Element) bool
}
