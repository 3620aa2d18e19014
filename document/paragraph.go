package document

import (
	"fmt"
	"strings"

	"github.com/dshills/wordsmith/tracking"
)

// ParagraphChild is inline content a paragraph can hold: a run or a
// hyperlink.
type ParagraphChild interface {
	paragraphChild()
}

// runContainer is a node whose direct children include runs. Runs call back
// into their container when a tracked text replacement splits them.
type runContainer interface {
	replaceRun(old *Run, repl ...*Run)
	insertRunAfter(after *Run, nr *Run)
	detachRun(old *Run) bool
}

// Paragraph is a block of inline content ended by a paragraph mark.
type Paragraph struct {
	node
	children []ParagraphChild
}

func newParagraph(doc *Document) *Paragraph {
	return &Paragraph{node: newNode(doc)}
}

// ElementKind returns tracking.ParagraphElement.
func (p *Paragraph) ElementKind() tracking.ElementKind { return tracking.ParagraphElement }

// ContentText returns the paragraph's visible text.
func (p *Paragraph) ContentText() string { return p.Text() }

// Text returns the concatenated text of the paragraph's runs, including
// runs inside hyperlinks.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, c := range p.children {
		switch c := c.(type) {
		case *Run:
			sb.WriteString(c.text)
		case *Hyperlink:
			sb.WriteString(c.Text())
		}
	}
	return sb.String()
}

// Children returns the paragraph's inline content in order.
func (p *Paragraph) Children() []ParagraphChild {
	out := make([]ParagraphChild, len(p.children))
	copy(out, p.children)
	return out
}

// Runs returns the paragraph's direct run children in order. Runs inside
// hyperlinks are reached through the hyperlink.
func (p *Paragraph) Runs() []*Run {
	var out []*Run
	for _, c := range p.children {
		if r, ok := c.(*Run); ok {
			out = append(out, r)
		}
	}
	return out
}

// allRuns returns every run in the paragraph in order, including hyperlink
// runs.
func (p *Paragraph) allRuns() []*Run {
	var out []*Run
	for _, c := range p.children {
		switch c := c.(type) {
		case *Run:
			out = append(out, c)
		case *Hyperlink:
			out = append(out, c.runs...)
		}
	}
	return out
}

// AddRun appends an empty run. While tracking is enabled the run is
// recorded as an insertion.
func (p *Paragraph) AddRun() *Run {
	r := newRun(p.doc, p)
	p.children = append(p.children, r)
	p.doc.track.TrackInsertion(r)
	return r
}

// AddText appends a run holding the given text.
func (p *Paragraph) AddText(text string) *Run {
	r := p.AddRun()
	r.text = text
	return r
}

// AddHyperlink appends a hyperlink to the given target.
func (p *Paragraph) AddHyperlink(target string) (*Hyperlink, error) {
	if target == "" {
		return nil, ErrNoTarget
	}
	h := newHyperlink(p.doc)
	h.props.Set(PropTarget, target)
	p.children = append(p.children, h)
	return h, nil
}

// RemoveRun removes a direct run child. Untracked it splices the run out;
// while tracking is enabled the run stays, marked deleted, unless the
// removal cancels an unflushed insertion.
func (p *Paragraph) RemoveRun(r *Run) (Mutation, error) {
	if p.childIndex(r) < 0 {
		return Mutation{}, fmt.Errorf("remove run: %w", ErrNotAttached)
	}
	if p.doc.track.TrackDeletion(r) {
		return deferred(), nil
	}
	p.detachRun(r)
	return applied(), nil
}

// RestoreRun appends a bare run without recording an insertion. It is the
// reconstruction path used when parsing saved markup.
func (p *Paragraph) RestoreRun() *Run {
	r := newRun(p.doc, p)
	p.children = append(p.children, r)
	return r
}

// RestoreHyperlink appends a bare hyperlink without validation. It is the
// reconstruction path used when parsing saved markup.
func (p *Paragraph) RestoreHyperlink() *Hyperlink {
	h := newHyperlink(p.doc)
	p.children = append(p.children, h)
	return h
}

func (p *Paragraph) childIndex(c ParagraphChild) int {
	for i, have := range p.children {
		if have == c {
			return i
		}
	}
	return -1
}

func (p *Paragraph) replaceRun(old *Run, repl ...*Run) {
	i := p.childIndex(old)
	if i < 0 {
		return
	}
	rest := make([]ParagraphChild, len(p.children[i+1:]))
	copy(rest, p.children[i+1:])
	p.children = p.children[:i]
	for _, r := range repl {
		p.children = append(p.children, r)
	}
	p.children = append(p.children, rest...)
}

func (p *Paragraph) insertRunAfter(after *Run, nr *Run) {
	i := p.childIndex(after)
	if i < 0 {
		p.children = append(p.children, nr)
		return
	}
	p.children = append(p.children, nil)
	copy(p.children[i+2:], p.children[i+1:])
	p.children[i+1] = nr
}

func (p *Paragraph) detachRun(old *Run) bool {
	if i := p.childIndex(old); i >= 0 {
		p.children = append(p.children[:i], p.children[i+1:]...)
		return true
	}
	for _, c := range p.children {
		if h, ok := c.(*Hyperlink); ok && h.detachRun(old) {
			return true
		}
	}
	return false
}

// cloneForMove deep-copies the paragraph for use as a move destination. The
// copies get fresh identities; revision slots and records are not carried
// over.
func (p *Paragraph) cloneForMove() *Paragraph {
	np := newParagraph(p.doc)
	np.props = p.props.Clone()
	for _, c := range p.children {
		switch c := c.(type) {
		case *Run:
			nr := newRun(p.doc, np)
			nr.props = c.props.Clone()
			nr.text = c.text
			np.children = append(np.children, nr)
		case *Hyperlink:
			nh := newHyperlink(p.doc)
			nh.props = c.props.Clone()
			for _, r := range c.runs {
				nr := newRun(p.doc, nh)
				nr.props = r.props.Clone()
				nr.text = r.text
				nh.runs = append(nh.runs, nr)
			}
			np.children = append(np.children, nh)
		}
	}
	return np
}

// Alignment returns the paragraph's justification, or the empty string.
func (p *Paragraph) Alignment() Alignment { return Alignment(p.stringProp(PropAlignment)) }

// SetAlignment sets the paragraph's justification.
func (p *Paragraph) SetAlignment(a Alignment) { p.set(p, PropAlignment, string(a)) }

// Style returns the paragraph's named style, or the empty string.
func (p *Paragraph) Style() string { return p.stringProp(PropStyle) }

// SetStyle sets the paragraph's named style.
func (p *Paragraph) SetStyle(style string) { p.set(p, PropStyle, style) }

// IndentLeft returns the left indent in twips.
func (p *Paragraph) IndentLeft() (int, bool) { return p.intProp(PropIndentLeft) }

// SetIndentLeft sets the left indent in twips.
func (p *Paragraph) SetIndentLeft(twips int) error {
	return p.setMeasure(p, PropIndentLeft, twips)
}

// IndentRight returns the right indent in twips.
func (p *Paragraph) IndentRight() (int, bool) { return p.intProp(PropIndentRight) }

// SetIndentRight sets the right indent in twips.
func (p *Paragraph) SetIndentRight(twips int) error {
	return p.setMeasure(p, PropIndentRight, twips)
}

// IndentFirstLine returns the first-line indent in twips.
func (p *Paragraph) IndentFirstLine() (int, bool) { return p.intProp(PropIndentFirstLine) }

// SetIndentFirstLine sets the first-line indent in twips.
func (p *Paragraph) SetIndentFirstLine(twips int) error {
	return p.setMeasure(p, PropIndentFirstLine, twips)
}

// SpacingBefore returns the space above the paragraph in twips.
func (p *Paragraph) SpacingBefore() (int, bool) { return p.intProp(PropSpacingBefore) }

// SetSpacingBefore sets the space above the paragraph in twips.
func (p *Paragraph) SetSpacingBefore(twips int) error {
	return p.setMeasure(p, PropSpacingBefore, twips)
}

// SpacingAfter returns the space below the paragraph in twips.
func (p *Paragraph) SpacingAfter() (int, bool) { return p.intProp(PropSpacingAfter) }

// SetSpacingAfter sets the space below the paragraph in twips.
func (p *Paragraph) SetSpacingAfter(twips int) error {
	return p.setMeasure(p, PropSpacingAfter, twips)
}

// LineSpacing returns the line spacing in 240ths of a line.
func (p *Paragraph) LineSpacing() (int, bool) { return p.intProp(PropLineSpacing) }

// SetLineSpacing sets the line spacing in 240ths of a line.
func (p *Paragraph) SetLineSpacing(v int) error {
	return p.setMeasure(p, PropLineSpacing, v)
}

// KeepNext reports whether the paragraph is kept with the next one.
func (p *Paragraph) KeepNext() bool { return p.boolProp(PropKeepNext) }

// SetKeepNext sets whether the paragraph is kept with the next one.
func (p *Paragraph) SetKeepNext(v bool) { p.set(p, PropKeepNext, v) }

// PageBreakBefore reports whether the paragraph forces a page break.
func (p *Paragraph) PageBreakBefore() bool { return p.boolProp(PropPageBreakBefore) }

// SetPageBreakBefore sets whether the paragraph forces a page break.
func (p *Paragraph) SetPageBreakBefore(v bool) { p.set(p, PropPageBreakBefore, v) }
