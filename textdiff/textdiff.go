package textdiff

import (
	"strings"

	"github.com/rivo/uniseg"
)

// Op identifies how a segment relates the old text to the new text.
type Op uint8

const (
	// Equal marks text present in both versions.
	Equal Op = iota

	// Insert marks text present only in the new version.
	Insert

	// Delete marks text present only in the old version.
	Delete
)

// String returns a human-readable representation of the op.
func (op Op) String() string {
	switch op {
	case Equal:
		return "equal"
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	default:
		return "unknown"
	}
}

// Segment is one contiguous piece of a diff.
type Segment struct {
	Op   Op
	Text string
}

// String returns a human-readable representation of the segment.
func (s Segment) String() string {
	return s.Op.String() + "(" + s.Text + ")"
}

// Diff compares two texts and returns their relating segments in order: an
// Equal segment for the common prefix, a Delete segment for the old middle,
// an Insert segment for the new middle, and an Equal segment for the common
// suffix. Empty segments are omitted, so identical inputs yield a single
// Equal segment, disjoint inputs yield Delete then Insert, and an empty old
// or new text yields a single Insert or Delete for the other. Diffing two
// empty strings yields no segments.
//
// The suffix is computed over the tails left after the prefix match, so the
// two equal regions never overlap.
func Diff(oldText, newText string) []Segment {
	if oldText == newText {
		if oldText == "" {
			return nil
		}
		return []Segment{{Op: Equal, Text: oldText}}
	}

	p := commonPrefix(oldText, newText)
	s := commonSuffix(oldText[p:], newText[p:])

	segs := make([]Segment, 0, 4)
	if p > 0 {
		segs = append(segs, Segment{Op: Equal, Text: oldText[:p]})
	}
	if mid := oldText[p : len(oldText)-s]; mid != "" {
		segs = append(segs, Segment{Op: Delete, Text: mid})
	}
	if mid := newText[p : len(newText)-s]; mid != "" {
		segs = append(segs, Segment{Op: Insert, Text: mid})
	}
	if s > 0 {
		segs = append(segs, Segment{Op: Equal, Text: oldText[len(oldText)-s:]})
	}
	return segs
}

// HasUnchangedParts reports whether the two texts share any common prefix or
// suffix. Callers use it to decide whether a character-level diff is worth
// emitting or whether a coarse whole-run replacement reads better.
func HasUnchangedParts(oldText, newText string) bool {
	if oldText == "" || newText == "" {
		return false
	}
	if commonPrefix(oldText, newText) > 0 {
		return true
	}
	return commonSuffix(oldText, newText) > 0
}

// OldText reconstructs the old side of a diff from its Equal and Delete
// segments.
func OldText(segs []Segment) string {
	var sb strings.Builder
	for _, seg := range segs {
		if seg.Op != Insert {
			sb.WriteString(seg.Text)
		}
	}
	return sb.String()
}

// NewText reconstructs the new side of a diff from its Equal and Insert
// segments.
func NewText(segs []Segment) string {
	var sb strings.Builder
	for _, seg := range segs {
		if seg.Op != Delete {
			sb.WriteString(seg.Text)
		}
	}
	return sb.String()
}

// commonPrefix returns the byte length of the longest common prefix of a and
// b that ends on a grapheme cluster boundary in both.
func commonPrefix(a, b string) int {
	var n int
	stateA, stateB := -1, -1
	for len(a) > 0 && len(b) > 0 {
		ca, restA, _, nextA := uniseg.FirstGraphemeClusterInString(a, stateA)
		cb, restB, _, nextB := uniseg.FirstGraphemeClusterInString(b, stateB)
		if ca != cb {
			break
		}
		n += len(ca)
		a, b = restA, restB
		stateA, stateB = nextA, nextB
	}
	return n
}

// commonSuffix returns the byte length of the longest common suffix of a and
// b that starts on a grapheme cluster boundary in both. Callers pass the
// tails remaining after the prefix match so the two regions cannot overlap.
func commonSuffix(a, b string) int {
	ca := clusters(a)
	cb := clusters(b)

	var n int
	for i, j := len(ca)-1, len(cb)-1; i >= 0 && j >= 0; i, j = i-1, j-1 {
		if ca[i] != cb[j] {
			break
		}
		n += len(ca[i])
	}
	return n
}

// clusters splits s into its extended grapheme clusters.
func clusters(s string) []string {
	if s == "" {
		return nil
	}
	cs := make([]string, 0, len(s))
	state := -1
	for len(s) > 0 {
		var c string
		c, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		cs = append(cs, c)
	}
	return cs
}
