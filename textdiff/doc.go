// Package textdiff compares two pieces of text and reports which parts stayed
// equal, which were inserted, and which were deleted.
//
// The comparison trims the longest common prefix and the longest
// non-overlapping common suffix, both aligned to extended grapheme cluster
// boundaries, and reports whatever remains in the middle as one deletion and
// one insertion. It is deliberately not a minimal-edit-distance diff: edits to
// a run of text are typically localized to a single word or character, so a
// linear trim produces the same segments a full diff would at a fraction of
// the cost, with no backtracking state.
//
// Grapheme alignment guarantees a segment never splits a code point, a
// combining sequence, or an emoji cluster, so every segment is valid UTF-8
// and displays as whole characters.
//
// Basic usage:
//
//	segs := textdiff.Diff("color", "colour")
//	// [{Equal "colo"} {Insert "u"} {Equal "r"}]
//
// The round-trip law holds for every input pair: concatenating the Equal and
// Delete segments reproduces the old text, and concatenating the Equal and
// Insert segments reproduces the new text.
package textdiff
