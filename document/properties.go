package document

// Property names used in formatting bags, property-change snapshots, and the
// serialized markup. Entities share a name when they share the concept; the
// bag an entity keeps is its own, so "width" on a table never collides with
// "width" on a cell.
const (
	PropAlignment       = "alignment"
	PropAnchor          = "anchor"
	PropBold            = "bold"
	PropCantSplit       = "cantSplit"
	PropColor           = "color"
	PropFont            = "font"
	PropGridSpan        = "gridSpan"
	PropHeader          = "header"
	PropHeight          = "height"
	PropHeightRule      = "heightRule"
	PropHighlight       = "highlight"
	PropIndent          = "indent"
	PropIndentFirstLine = "indentFirstLine"
	PropIndentLeft      = "indentLeft"
	PropIndentRight     = "indentRight"
	PropItalic          = "italic"
	PropKeepNext        = "keepNext"
	PropLanguage        = "lang"
	PropLayout          = "layout"
	PropLineSpacing     = "lineSpacing"
	PropMarginBottom    = "marginBottom"
	PropMarginLeft      = "marginLeft"
	PropMarginRight     = "marginRight"
	PropMarginTop       = "marginTop"
	PropNoWrap          = "noWrap"
	PropOrientation     = "orientation"
	PropPageBreakBefore = "pageBreakBefore"
	PropPageHeight      = "pageHeight"
	PropPageWidth       = "pageWidth"
	PropShading         = "shading"
	PropSize            = "size"
	PropSpacingAfter    = "spacingAfter"
	PropSpacingBefore   = "spacingBefore"
	PropStrike          = "strike"
	PropStyle           = "style"
	PropTarget          = "target"
	PropTooltip         = "tooltip"
	PropUnderline       = "underline"
	PropVerticalAlign   = "verticalAlign"
	PropVerticalMerge   = "vMerge"
	PropWidth           = "width"
)

// Keys of the metadata a cell-merge marker carries: the grid coordinates of
// the merge region's anchor cell.
const (
	MarkAnchorRow    = "anchorRow"
	MarkAnchorColumn = "anchorColumn"
)

// Alignment is a horizontal justification value. Bags store it as a plain
// string so snapshots and markup stay type-free.
type Alignment string

const (
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "justify"
)

// UnderlineStyle selects a run underline.
type UnderlineStyle string

const (
	UnderlineNone   UnderlineStyle = "none"
	UnderlineSingle UnderlineStyle = "single"
	UnderlineDouble UnderlineStyle = "double"
	UnderlineDotted UnderlineStyle = "dotted"
	UnderlineWavy   UnderlineStyle = "wave"
)

// VerticalAlignText positions a run relative to the baseline.
type VerticalAlignText string

const (
	VerticalAlignBaseline    VerticalAlignText = "baseline"
	VerticalAlignSuperscript VerticalAlignText = "superscript"
	VerticalAlignSubscript   VerticalAlignText = "subscript"
)

// TableLayout selects the table layout algorithm.
type TableLayout string

const (
	LayoutFixed   TableLayout = "fixed"
	LayoutAutofit TableLayout = "autofit"
)

// HeightRule constrains a row height value.
type HeightRule string

const (
	HeightAuto    HeightRule = "auto"
	HeightAtLeast HeightRule = "atLeast"
	HeightExact   HeightRule = "exact"
)

// CellVerticalAlign positions cell content vertically.
type CellVerticalAlign string

const (
	CellAlignTop    CellVerticalAlign = "top"
	CellAlignCenter CellVerticalAlign = "center"
	CellAlignBottom CellVerticalAlign = "bottom"
)

// VerticalMerge is the vertical-merge state of a cell. The anchor of a
// merged region restarts, the cells beneath it continue.
type VerticalMerge string

const (
	MergeRestart  VerticalMerge = "restart"
	MergeContinue VerticalMerge = "continue"
)

// Orientation selects the page orientation of a section.
type Orientation string

const (
	OrientPortrait  Orientation = "portrait"
	OrientLandscape Orientation = "landscape"
)
