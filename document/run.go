package document

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/dshills/wordsmith/textdiff"
	"github.com/dshills/wordsmith/tracking"
)

// Run is a span of text sharing one set of character formatting. Runs are
// the unit the revision machinery wraps: an inserted run carries the
// insertion that introduced it, a deleted run stays in the tree carrying the
// deletion until it is accepted.
type Run struct {
	node
	parent runContainer
	text   string
}

func (*Run) paragraphChild() {}

func newRun(doc *Document, parent runContainer) *Run {
	return &Run{node: newNode(doc), parent: parent}
}

// ElementKind returns tracking.RunElement.
func (r *Run) ElementKind() tracking.ElementKind { return tracking.RunElement }

// ContentText returns the run's text.
func (r *Run) ContentText() string { return r.text }

// InlineText returns the run's text. It makes a run usable as revision
// content directly.
func (r *Run) InlineText() string { return r.text }

// Text returns the run's text.
func (r *Run) Text() string { return r.text }

// SetText replaces the run's text. While tracking is enabled the replacement
// is recorded: when old and new text share a leading or trailing part the
// run is split so only the differing middle is wrapped in revisions,
// otherwise the whole run is marked deleted and a successor run carries the
// new text. Runs pending insertion, and runs already marked deleted, are
// edited in place.
func (r *Run) SetText(text string) {
	ctx := r.doc.track
	if !ctx.Enabled() || text == r.text || ctx.PendingInsertion(r) {
		r.text = text
		return
	}
	if r.del != nil || ctx.PendingDeletion(r) {
		r.text = text
		return
	}
	if r.text == "" {
		// Filling an empty run introduces content, nothing is replaced.
		r.text = text
		ctx.TrackInsertion(r)
		return
	}
	if text == "" {
		// Clearing a run deletes its content. The old text stays in the
		// tree, marked deleted, until the change is resolved.
		ctx.TrackDeletion(r)
		return
	}

	if !textdiff.HasUnchangedParts(r.text, text) {
		repl := r.cloneShell()
		repl.text = text
		r.parent.insertRunAfter(r, repl)
		ctx.TrackDeletion(r)
		ctx.TrackInsertion(repl)
		return
	}

	segs := textdiff.Diff(r.text, text)
	out := make([]*Run, 0, len(segs))
	reused := false
	for _, seg := range segs {
		if seg.Op == textdiff.Equal && !reused {
			// The original run keeps the first unchanged part, so its
			// formatting history and attached records survive the split.
			r.text = seg.Text
			out = append(out, r)
			reused = true
			continue
		}
		nr := r.cloneShell()
		nr.text = seg.Text
		out = append(out, nr)
		switch seg.Op {
		case textdiff.Delete:
			ctx.TrackDeletion(nr)
		case textdiff.Insert:
			ctx.TrackInsertion(nr)
		}
	}
	r.parent.replaceRun(r, out...)
}

// cloneShell returns a new empty run with the same parent and a copy of the
// formatting bag. Revision slots and records are not copied.
func (r *Run) cloneShell() *Run {
	nr := newRun(r.doc, r.parent)
	nr.props = r.props.Clone()
	return nr
}

// Bold reports whether the run is bold.
func (r *Run) Bold() bool { return r.boolProp(PropBold) }

// SetBold sets the run's bold flag.
func (r *Run) SetBold(v bool) { r.set(r, PropBold, v) }

// Italic reports whether the run is italic.
func (r *Run) Italic() bool { return r.boolProp(PropItalic) }

// SetItalic sets the run's italic flag.
func (r *Run) SetItalic(v bool) { r.set(r, PropItalic, v) }

// Strike reports whether the run is struck through.
func (r *Run) Strike() bool { return r.boolProp(PropStrike) }

// SetStrike sets the run's strikethrough flag.
func (r *Run) SetStrike(v bool) { r.set(r, PropStrike, v) }

// Underline returns the run's underline style, or the empty string.
func (r *Run) Underline() UnderlineStyle { return UnderlineStyle(r.stringProp(PropUnderline)) }

// SetUnderline sets the run's underline style.
func (r *Run) SetUnderline(u UnderlineStyle) { r.set(r, PropUnderline, string(u)) }

// Font returns the run's font name, or the empty string.
func (r *Run) Font() string { return r.stringProp(PropFont) }

// SetFont sets the run's font name.
func (r *Run) SetFont(name string) { r.set(r, PropFont, name) }

// Size returns the run's font size in half-points.
func (r *Run) Size() (int, bool) { return r.intProp(PropSize) }

// SetSize sets the run's font size in half-points.
func (r *Run) SetSize(halfPoints int) error { return r.setMeasure(r, PropSize, halfPoints) }

// Color returns the run's text color as RRGGBB hex, or the empty string.
func (r *Run) Color() string { return r.stringProp(PropColor) }

// SetColor sets the run's text color as RRGGBB hex.
func (r *Run) SetColor(hex string) { r.set(r, PropColor, hex) }

// Highlight returns the run's highlight color name, or the empty string.
func (r *Run) Highlight() string { return r.stringProp(PropHighlight) }

// SetHighlight sets the run's highlight color name.
func (r *Run) SetHighlight(color string) { r.set(r, PropHighlight, color) }

// VerticalAlign returns the run's baseline alignment, or the empty string.
func (r *Run) VerticalAlign() VerticalAlignText {
	return VerticalAlignText(r.stringProp(PropVerticalAlign))
}

// SetVerticalAlign sets the run's baseline alignment.
func (r *Run) SetVerticalAlign(v VerticalAlignText) { r.set(r, PropVerticalAlign, string(v)) }

// Language returns the run's proofing language tag, or the empty string.
func (r *Run) Language() string { return r.stringProp(PropLanguage) }

// SetLanguage sets the run's proofing language. The tag is validated and
// canonicalized as BCP 47 before it is recorded.
func (r *Run) SetLanguage(tag string) error {
	t, err := language.Parse(tag)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLanguage, tag)
	}
	r.set(r, PropLanguage, t.String())
	return nil
}
