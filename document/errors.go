package document

import "errors"

var (
	// ErrIndexOutOfRange reports a row, column, or block index outside the
	// container's bounds.
	ErrIndexOutOfRange = errors.New("document: index out of range")

	// ErrNegativeMeasurement reports a negative twip or half-point value.
	ErrNegativeMeasurement = errors.New("document: measurement must not be negative")

	// ErrInvalidMergeRange reports a merge region that is empty, inverted,
	// or not covered by the table.
	ErrInvalidMergeRange = errors.New("document: invalid merge range")

	// ErrInvalidLanguage reports a language tag that is not valid BCP 47.
	ErrInvalidLanguage = errors.New("document: invalid language tag")

	// ErrNoTarget reports an empty hyperlink target.
	ErrNoTarget = errors.New("document: hyperlink target must not be empty")

	// ErrNotParagraph reports a block operation aimed at a non-paragraph.
	ErrNotParagraph = errors.New("document: block is not a paragraph")

	// ErrNotAttached reports an element that is not a child of the
	// container an operation was called on.
	ErrNotAttached = errors.New("document: element is not a child of this container")

	// ErrTableDimensions reports a table creation with no rows or columns.
	ErrTableDimensions = errors.New("document: table needs at least one row and one column")
)
