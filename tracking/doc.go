// Package tracking records edits to document entities as attributable pending
// changes and converts them into registered revisions. It is the engine behind
// the document's tracked-changes mode.
//
// The tracking package provides:
//
//   - A Context contract that entity mutators call on every property write,
//     text insertion, and text deletion
//   - DocumentContext, the stateful engine owning the pending-change buffer
//   - Consolidation of repeated edits to the same element and property into a
//     single pending change that spans original value to final value
//   - Entity-kind snapshot policies: paragraph, run, and hyperlink changes
//     record only the changed properties, while table, row, cell, and section
//     changes record the entity's entire prior formatting state
//   - Implicit flushes on disable and author switch, so no pending change is
//     ever attributed to the wrong author
//
// Basic usage:
//
//	ctx := tracking.NewDocumentContext(manager)
//	if err := ctx.Enable("Ada Lovelace"); err != nil {
//	    return err
//	}
//
//	// Entity setters call the context; edits accumulate in the buffer.
//	table.SetWidth(5000)
//	table.SetWidth(6000)
//
//	// One revision per pending change; repeated edits were consolidated.
//	revs := ctx.FlushPendingChanges()
//
// Element Identity:
//
// Entities carry their engine-assigned identity in an embedded TrackID, so
// the engine keeps no identity table of its own. Buffer entries reference an
// entity only between a mutation and the next flush; an entity removed from
// the document and dropped by the caller stays collectible even though the
// engine once assigned it an id. Embedding TrackID is also what lets a type
// satisfy Element: the interface's unexported methods cannot be implemented
// outside this package.
package tracking
