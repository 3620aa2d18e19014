// Package revision defines the records that describe tracked changes: the
// Revision itself, the kinds a change can take, the property bags captured
// before and after formatting edits, the property-change snapshot attached to
// container entities, and the Manager that allocates ids and keeps the
// registry of live revisions.
//
// A Revision is immutable once registered. Property-change snapshots are the
// one exception: later edits to the same entity merge into the existing
// snapshot, and the merge keeps the earliest-known baseline. Rejection
// restores the state before the first tracked edit, not the latest one.
//
// Revision ids are monotonic within a Manager. They are persisted in the
// saved markup, and reloading a document reseeds the sequence past the
// highest id found, so ids never collide across editing sessions.
package revision
