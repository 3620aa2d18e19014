package document

import "github.com/dshills/wordsmith/tracking"

// Twip counts for the default US Letter page with one-inch margins.
const (
	defaultPageWidth  = 12240
	defaultPageHeight = 15840
	defaultMargin     = 1440
)

// Section holds the page geometry of the document body.
type Section struct {
	node
}

// ElementKind returns tracking.SectionElement.
func (s *Section) ElementKind() tracking.ElementKind { return tracking.SectionElement }

// ContentText returns the empty string; sections have no text of their own.
func (s *Section) ContentText() string { return "" }

// PageWidth returns the page width in twips, defaulting to US Letter.
func (s *Section) PageWidth() int {
	if w, ok := s.intProp(PropPageWidth); ok {
		return w
	}
	return defaultPageWidth
}

// SetPageWidth sets the page width in twips.
func (s *Section) SetPageWidth(twips int) error {
	return s.setMeasure(s, PropPageWidth, twips)
}

// PageHeight returns the page height in twips, defaulting to US Letter.
func (s *Section) PageHeight() int {
	if h, ok := s.intProp(PropPageHeight); ok {
		return h
	}
	return defaultPageHeight
}

// SetPageHeight sets the page height in twips.
func (s *Section) SetPageHeight(twips int) error {
	return s.setMeasure(s, PropPageHeight, twips)
}

// Orientation returns the page orientation, defaulting to portrait.
func (s *Section) Orientation() Orientation {
	if o := s.stringProp(PropOrientation); o != "" {
		return Orientation(o)
	}
	return OrientPortrait
}

// SetOrientation sets the page orientation.
func (s *Section) SetOrientation(o Orientation) { s.set(s, PropOrientation, string(o)) }

func (s *Section) margin(name string) int {
	if m, ok := s.intProp(name); ok {
		return m
	}
	return defaultMargin
}

// MarginTop returns the top margin in twips, defaulting to one inch.
func (s *Section) MarginTop() int { return s.margin(PropMarginTop) }

// SetMarginTop sets the top margin in twips.
func (s *Section) SetMarginTop(twips int) error { return s.setMeasure(s, PropMarginTop, twips) }

// MarginBottom returns the bottom margin in twips, defaulting to one inch.
func (s *Section) MarginBottom() int { return s.margin(PropMarginBottom) }

// SetMarginBottom sets the bottom margin in twips.
func (s *Section) SetMarginBottom(twips int) error {
	return s.setMeasure(s, PropMarginBottom, twips)
}

// MarginLeft returns the left margin in twips, defaulting to one inch.
func (s *Section) MarginLeft() int { return s.margin(PropMarginLeft) }

// SetMarginLeft sets the left margin in twips.
func (s *Section) SetMarginLeft(twips int) error { return s.setMeasure(s, PropMarginLeft, twips) }

// MarginRight returns the right margin in twips, defaulting to one inch.
func (s *Section) MarginRight() int { return s.margin(PropMarginRight) }

// SetMarginRight sets the right margin in twips.
func (s *Section) SetMarginRight(twips int) error {
	return s.setMeasure(s, PropMarginRight, twips)
}
