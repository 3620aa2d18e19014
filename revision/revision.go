package revision

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Sentinel errors for revision construction and registry operations.
var (
	ErrEmptyAuthor  = errors.New("revision: author must not be empty")
	ErrUnknownKind  = errors.New("revision: unknown kind")
	ErrDuplicateID  = errors.New("revision: id already registered")
	ErrNotFound     = errors.New("revision: id not registered")
	ErrNilRevision  = errors.New("revision: nil revision")
	ErrContentKind  = errors.New("revision: kind does not carry content")
	ErrPropertyKind = errors.New("revision: kind does not carry properties")
)

// Inline is implemented by document content that a revision can own. The
// revision does not interpret the content beyond reading its text.
type Inline interface {
	InlineText() string
}

// Placeholder is synthesized inline content standing in for a container
// element inside a revision, carrying the element's textual form so the
// revision always has displayable content.
type Placeholder string

// InlineText implements Inline.
func (p Placeholder) InlineText() string { return string(p) }

// Revision is a single tracked change. Content revisions (insert, delete,
// move) own the inline content they cover; property revisions carry the
// before and after formatting states instead.
type Revision struct {
	// ID is unique within a document and persists across save and load.
	ID int

	// Author is the display name of the change's author. Never empty.
	Author string

	// Date is when the change was made.
	Date time.Time

	// Kind discriminates how the revision is interpreted and serialized.
	Kind Kind

	// Content is the inline content covered by a content revision.
	Content []Inline

	// Previous and Updated carry the formatting states around a property
	// revision. Previous uses the snapshot policy of the owning entity;
	// Updated is the state after the edit.
	Previous Properties
	Updated  Properties
}

// New creates a revision of any kind after validating the author. Factories
// below are preferred; New exists for readers reconstructing revisions from
// markup.
func New(id int, author string, date time.Time, kind Kind) (*Revision, error) {
	if strings.TrimSpace(author) == "" {
		return nil, ErrEmptyAuthor
	}
	if kind.String() == "unknown" {
		return nil, fmt.Errorf("%w: %d", ErrUnknownKind, uint8(kind))
	}
	return &Revision{ID: id, Author: author, Date: date, Kind: kind}, nil
}

// NewInsert creates an insertion revision covering content.
func NewInsert(id int, author string, date time.Time, content ...Inline) *Revision {
	return &Revision{ID: id, Author: author, Date: date, Kind: KindInsert, Content: content}
}

// NewDelete creates a deletion revision covering content.
func NewDelete(id int, author string, date time.Time, content ...Inline) *Revision {
	return &Revision{ID: id, Author: author, Date: date, Kind: KindDelete, Content: content}
}

// NewMoveFrom creates the source half of a move.
func NewMoveFrom(id int, author string, date time.Time, content ...Inline) *Revision {
	return &Revision{ID: id, Author: author, Date: date, Kind: KindMoveFrom, Content: content}
}

// NewMoveTo creates the destination half of a move.
func NewMoveTo(id int, author string, date time.Time, content ...Inline) *Revision {
	return &Revision{ID: id, Author: author, Date: date, Kind: KindMoveTo, Content: content}
}

// NewFormatChange creates a property revision of the given kind. The previous
// bag is cloned; the caller keeps ownership of its copy.
func NewFormatChange(id int, author string, date time.Time, kind Kind, previous, updated Properties) (*Revision, error) {
	if !kind.IsPropertyChange() {
		return nil, fmt.Errorf("%w: %s", ErrPropertyKind, kind)
	}
	return &Revision{
		ID:       id,
		Author:   author,
		Date:     date,
		Kind:     kind,
		Previous: previous.Clone(),
		Updated:  updated.Clone(),
	}, nil
}

// NewCellMark creates a structural table revision. The mark owns no content;
// it annotates the cell that holds it.
func NewCellMark(id int, author string, date time.Time, kind Kind) (*Revision, error) {
	if !kind.IsStructural() {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return &Revision{ID: id, Author: author, Date: date, Kind: kind}, nil
}

// Text returns the concatenated text of the revision's content.
func (r *Revision) Text() string {
	if len(r.Content) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, in := range r.Content {
		sb.WriteString(in.InlineText())
	}
	return sb.String()
}

// AppendContent adds inline content to a content revision.
func (r *Revision) AppendContent(content ...Inline) error {
	if !r.Kind.IsContent() {
		return fmt.Errorf("%w: %s", ErrContentKind, r.Kind)
	}
	r.Content = append(r.Content, content...)
	return nil
}

// RemoveContent detaches one inline element from the revision's content and
// reports whether it was present.
func (r *Revision) RemoveContent(target Inline) bool {
	for i, in := range r.Content {
		if in == target {
			r.Content = append(r.Content[:i], r.Content[i+1:]...)
			return true
		}
	}
	return false
}

func (r *Revision) String() string {
	return fmt.Sprintf("revision %d (%s by %s)", r.ID, r.Kind, r.Author)
}
