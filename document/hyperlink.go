package document

import (
	"strings"

	"github.com/dshills/wordsmith/tracking"
)

// Hyperlink is inline content linking its runs to an external target. Its
// properties are tracked even when formatting tracking is switched off,
// because retargeting a link is a content-level edit.
type Hyperlink struct {
	node
	runs []*Run
}

func (*Hyperlink) paragraphChild() {}

func newHyperlink(doc *Document) *Hyperlink {
	return &Hyperlink{node: newNode(doc)}
}

// ElementKind returns tracking.HyperlinkElement.
func (h *Hyperlink) ElementKind() tracking.ElementKind { return tracking.HyperlinkElement }

// ContentText returns the hyperlink's visible text.
func (h *Hyperlink) ContentText() string { return h.Text() }

// Text returns the concatenated text of the hyperlink's runs.
func (h *Hyperlink) Text() string {
	var sb strings.Builder
	for _, r := range h.runs {
		sb.WriteString(r.text)
	}
	return sb.String()
}

// Runs returns the hyperlink's runs in order.
func (h *Hyperlink) Runs() []*Run {
	out := make([]*Run, len(h.runs))
	copy(out, h.runs)
	return out
}

// AddRun appends an empty run. While tracking is enabled the run is
// recorded as an insertion.
func (h *Hyperlink) AddRun() *Run {
	r := newRun(h.doc, h)
	h.runs = append(h.runs, r)
	h.doc.track.TrackInsertion(r)
	return r
}

// AddText appends a run holding the given text.
func (h *Hyperlink) AddText(text string) *Run {
	r := h.AddRun()
	r.text = text
	return r
}

// RestoreRun appends a bare run without recording an insertion. It is the
// reconstruction path used when parsing saved markup.
func (h *Hyperlink) RestoreRun() *Run {
	r := newRun(h.doc, h)
	h.runs = append(h.runs, r)
	return r
}

// Target returns the link target.
func (h *Hyperlink) Target() string { return h.stringProp(PropTarget) }

// SetTarget retargets the link. The change is tracked as a property change
// regardless of the formatting-tracking option.
func (h *Hyperlink) SetTarget(target string) error {
	if target == "" {
		return ErrNoTarget
	}
	h.set(h, PropTarget, target)
	return nil
}

// Anchor returns the fragment within the target document, or the empty
// string.
func (h *Hyperlink) Anchor() string { return h.stringProp(PropAnchor) }

// SetAnchor sets the fragment within the target document.
func (h *Hyperlink) SetAnchor(anchor string) { h.set(h, PropAnchor, anchor) }

// Tooltip returns the hover text, or the empty string.
func (h *Hyperlink) Tooltip() string { return h.stringProp(PropTooltip) }

// SetTooltip sets the hover text.
func (h *Hyperlink) SetTooltip(tip string) { h.set(h, PropTooltip, tip) }

func (h *Hyperlink) replaceRun(old *Run, repl ...*Run) {
	i := h.runIndex(old)
	if i < 0 {
		return
	}
	rest := make([]*Run, len(h.runs[i+1:]))
	copy(rest, h.runs[i+1:])
	h.runs = append(h.runs[:i], repl...)
	h.runs = append(h.runs, rest...)
}

func (h *Hyperlink) insertRunAfter(after *Run, nr *Run) {
	i := h.runIndex(after)
	if i < 0 {
		h.runs = append(h.runs, nr)
		return
	}
	h.runs = append(h.runs, nil)
	copy(h.runs[i+2:], h.runs[i+1:])
	h.runs[i+1] = nr
}

func (h *Hyperlink) detachRun(old *Run) bool {
	if i := h.runIndex(old); i >= 0 {
		h.runs = append(h.runs[:i], h.runs[i+1:]...)
		return true
	}
	return false
}

func (h *Hyperlink) runIndex(r *Run) int {
	for i, have := range h.runs {
		if have == r {
			return i
		}
	}
	return -1
}
