// Package document models a word-processing document as a tree of blocks,
// runs, and tables whose edits can be recorded as tracked changes.
//
// Every entity embeds the same base: an engine identity, a pair of revision
// slots, a property-change record slot, and a formatting bag. Setters report
// edits to the document's tracking context before applying them; while
// tracking is enabled the context buffers the edits and later materializes
// them as revisions attached back to the entities.
//
// Destructive operations are deferred while tracking is enabled. Removing
// text marks runs deleted instead of splicing them out, removing rows or
// columns marks their cells, and merging cells marks the absorbed region.
// AcceptRevisions and RejectRevisions walk the tree once and resolve
// everything: acceptance makes the recorded changes permanent, rejection
// restores the state before them.
//
// A Document and everything reachable from it belongs to one goroutine at a
// time.
package document
