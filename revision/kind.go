package revision

// Kind categorizes a tracked change.
type Kind uint8

const (
	// KindInsert marks newly added inline content.
	KindInsert Kind = iota

	// KindDelete marks inline content pending removal.
	KindDelete

	// KindMoveFrom marks inline content at the origin of a move.
	KindMoveFrom

	// KindMoveTo marks inline content at the destination of a move.
	KindMoveTo

	// KindParagraphProperties records a paragraph formatting change.
	KindParagraphProperties

	// KindRunProperties records a run formatting change.
	KindRunProperties

	// KindTableProperties records a table formatting change.
	KindTableProperties

	// KindRowProperties records a table-row formatting change.
	KindRowProperties

	// KindCellProperties records a table-cell formatting change.
	KindCellProperties

	// KindSectionProperties records a section formatting change.
	KindSectionProperties

	// KindHyperlink records a hyperlink retarget.
	KindHyperlink

	// KindCellInsert marks a table cell created while tracking was active.
	KindCellInsert

	// KindCellDelete marks a table cell whose removal is deferred until the
	// change is accepted.
	KindCellDelete

	// KindCellMerge marks a table cell whose absorption into a merge anchor
	// is deferred until the change is accepted.
	KindCellMerge
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindInsert:
		return "insert"
	case KindDelete:
		return "delete"
	case KindMoveFrom:
		return "move-from"
	case KindMoveTo:
		return "move-to"
	case KindParagraphProperties:
		return "paragraph-properties"
	case KindRunProperties:
		return "run-properties"
	case KindTableProperties:
		return "table-properties"
	case KindRowProperties:
		return "row-properties"
	case KindCellProperties:
		return "cell-properties"
	case KindSectionProperties:
		return "section-properties"
	case KindHyperlink:
		return "hyperlink"
	case KindCellInsert:
		return "cell-insert"
	case KindCellDelete:
		return "cell-delete"
	case KindCellMerge:
		return "cell-merge"
	default:
		return "unknown"
	}
}

// IsContent reports whether the kind wraps inline content that acceptance
// keeps or discards wholesale.
func (k Kind) IsContent() bool {
	switch k {
	case KindInsert, KindDelete, KindMoveFrom, KindMoveTo:
		return true
	default:
		return false
	}
}

// IsPropertyChange reports whether the kind records a formatting or target
// change rather than content.
func (k Kind) IsPropertyChange() bool {
	switch k {
	case KindParagraphProperties, KindRunProperties, KindTableProperties,
		KindRowProperties, KindCellProperties, KindSectionProperties,
		KindHyperlink:
		return true
	default:
		return false
	}
}

// IsStructural reports whether the kind is a deferred table-shape mark.
func (k Kind) IsStructural() bool {
	switch k {
	case KindCellInsert, KindCellDelete, KindCellMerge:
		return true
	default:
		return false
	}
}
