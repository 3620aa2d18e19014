package revision

import (
	"errors"
	"testing"
	"time"
)

type fakeInline string

func (f fakeInline) InlineText() string { return string(f) }

func TestKindString(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindInsert, "insert"},
		{KindDelete, "delete"},
		{KindMoveFrom, "move-from"},
		{KindMoveTo, "move-to"},
		{KindParagraphProperties, "paragraph-properties"},
		{KindRunProperties, "run-properties"},
		{KindTableProperties, "table-properties"},
		{KindRowProperties, "row-properties"},
		{KindCellProperties, "cell-properties"},
		{KindSectionProperties, "section-properties"},
		{KindHyperlink, "hyperlink"},
		{KindCellInsert, "cell-insert"},
		{KindCellDelete, "cell-delete"},
		{KindCellMerge, "cell-merge"},
		{Kind(200), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", uint8(tt.kind), got, tt.want)
		}
	}
}

func TestKindClassifiers(t *testing.T) {
	content := []Kind{KindInsert, KindDelete, KindMoveFrom, KindMoveTo}
	for _, k := range content {
		if !k.IsContent() {
			t.Errorf("%s.IsContent() = false, want true", k)
		}
		if k.IsPropertyChange() || k.IsStructural() {
			t.Errorf("%s misclassified as property or structural", k)
		}
	}

	property := []Kind{
		KindParagraphProperties, KindRunProperties, KindTableProperties,
		KindRowProperties, KindCellProperties, KindSectionProperties,
		KindHyperlink,
	}
	for _, k := range property {
		if !k.IsPropertyChange() {
			t.Errorf("%s.IsPropertyChange() = false, want true", k)
		}
		if k.IsContent() || k.IsStructural() {
			t.Errorf("%s misclassified as content or structural", k)
		}
	}

	structural := []Kind{KindCellInsert, KindCellDelete, KindCellMerge}
	for _, k := range structural {
		if !k.IsStructural() {
			t.Errorf("%s.IsStructural() = false, want true", k)
		}
		if k.IsContent() || k.IsPropertyChange() {
			t.Errorf("%s misclassified as content or property", k)
		}
	}
}

func TestNewValidation(t *testing.T) {
	date := time.Now()

	if _, err := New(1, "", date, KindInsert); !errors.Is(err, ErrEmptyAuthor) {
		t.Errorf("New with empty author: err = %v, want ErrEmptyAuthor", err)
	}
	if _, err := New(1, "   ", date, KindInsert); !errors.Is(err, ErrEmptyAuthor) {
		t.Errorf("New with blank author: err = %v, want ErrEmptyAuthor", err)
	}
	if _, err := New(1, "alice", date, Kind(200)); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("New with bad kind: err = %v, want ErrUnknownKind", err)
	}

	rev, err := New(7, "alice", date, KindDelete)
	if err != nil {
		t.Fatalf("New: unexpected error: %v", err)
	}
	if rev.ID != 7 || rev.Author != "alice" || rev.Kind != KindDelete {
		t.Errorf("New produced %+v", rev)
	}
}

func TestRevisionText(t *testing.T) {
	date := time.Now()
	rev := NewInsert(1, "alice", date, fakeInline("Hello"), Placeholder(" there"), fakeInline(" world"))

	if got := rev.Text(); got != "Hello there world" {
		t.Errorf("Text() = %q, want %q", got, "Hello there world")
	}

	empty := NewDelete(2, "bob", date)
	if got := empty.Text(); got != "" {
		t.Errorf("Text() on empty content = %q, want empty", got)
	}
}

func TestAppendContent(t *testing.T) {
	date := time.Now()

	rev := NewInsert(1, "alice", date)
	if err := rev.AppendContent(fakeInline("a")); err != nil {
		t.Fatalf("AppendContent: %v", err)
	}
	if len(rev.Content) != 1 {
		t.Errorf("Content length = %d, want 1", len(rev.Content))
	}

	change, err := NewFormatChange(2, "alice", date, KindRunProperties, Properties{"bold": false}, Properties{"bold": true})
	if err != nil {
		t.Fatalf("NewFormatChange: %v", err)
	}
	if err := change.AppendContent(fakeInline("a")); !errors.Is(err, ErrContentKind) {
		t.Errorf("AppendContent on property revision: err = %v, want ErrContentKind", err)
	}
}

func TestRemoveContent(t *testing.T) {
	date := time.Now()
	first := fakeInline("a")
	second := fakeInline("b")
	rev := NewDelete(1, "alice", date, first, second)

	if !rev.RemoveContent(first) {
		t.Error("RemoveContent(first) = false, want true")
	}
	if len(rev.Content) != 1 || rev.Content[0] != Inline(second) {
		t.Errorf("Content after removal = %v", rev.Content)
	}
	if rev.RemoveContent(first) {
		t.Error("RemoveContent(first) twice = true, want false")
	}
}

func TestNewFormatChangeValidation(t *testing.T) {
	date := time.Now()

	if _, err := NewFormatChange(1, "alice", date, KindInsert, nil, nil); !errors.Is(err, ErrPropertyKind) {
		t.Errorf("NewFormatChange with content kind: err = %v, want ErrPropertyKind", err)
	}

	prev := Properties{"width": 5000}
	change, err := NewFormatChange(1, "alice", date, KindCellProperties, prev, Properties{"width": 6000})
	if err != nil {
		t.Fatalf("NewFormatChange: %v", err)
	}
	prev["width"] = 9999
	if change.Previous["width"] != 5000 {
		t.Error("NewFormatChange did not clone the previous bag")
	}
}

func TestNewCellMarkValidation(t *testing.T) {
	date := time.Now()

	if _, err := NewCellMark(1, "alice", date, KindInsert); err == nil {
		t.Error("NewCellMark with non-structural kind: want error")
	}
	mark, err := NewCellMark(1, "alice", date, KindCellMerge)
	if err != nil {
		t.Fatalf("NewCellMark: %v", err)
	}
	if mark.Kind != KindCellMerge {
		t.Errorf("mark kind = %s, want cell-merge", mark.Kind)
	}
}

func TestManagerIDs(t *testing.T) {
	m := NewManager()

	first := m.ConsumeNextID()
	second := m.ConsumeNextID()
	if first != 1 || second != 2 {
		t.Errorf("ConsumeNextID sequence = %d, %d, want 1, 2", first, second)
	}
}

func TestManagerRegister(t *testing.T) {
	m := NewManager()
	date := time.Now()

	rev := NewInsert(m.ConsumeNextID(), "alice", date, fakeInline("x"))
	if err := m.Register(rev); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d, want 1", m.Len())
	}

	if err := m.Register(rev); !errors.Is(err, ErrDuplicateID) {
		t.Errorf("Register duplicate: err = %v, want ErrDuplicateID", err)
	}
	if err := m.Register(nil); !errors.Is(err, ErrNilRevision) {
		t.Errorf("Register nil: err = %v, want ErrNilRevision", err)
	}

	got, ok := m.Lookup(rev.ID)
	if !ok || got != rev {
		t.Errorf("Lookup(%d) = %v, %v", rev.ID, got, ok)
	}
}

func TestManagerReseedsAfterLoadedIDs(t *testing.T) {
	m := NewManager()
	date := time.Now()

	loaded := NewInsert(40, "alice", date, fakeInline("x"))
	if err := m.Register(loaded); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if next := m.ConsumeNextID(); next != 41 {
		t.Errorf("ConsumeNextID after registering id 40 = %d, want 41", next)
	}
}

func TestManagerReserve(t *testing.T) {
	m := NewManager()

	m.Reserve(10)
	if next := m.ConsumeNextID(); next != 11 {
		t.Errorf("ConsumeNextID after Reserve(10) = %d, want 11", next)
	}

	// Reserving an id below the counter is a no-op.
	m.Reserve(3)
	if next := m.ConsumeNextID(); next != 12 {
		t.Errorf("ConsumeNextID after Reserve(3) = %d, want 12", next)
	}
}

func TestManagerUnregister(t *testing.T) {
	m := NewManager()
	date := time.Now()

	rev := NewDelete(m.ConsumeNextID(), "bob", date, fakeInline("y"))
	if err := m.Register(rev); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if !m.Unregister(rev.ID) {
		t.Error("Unregister = false, want true")
	}
	if m.Unregister(rev.ID) {
		t.Error("Unregister twice = true, want false")
	}
	if m.Len() != 0 {
		t.Errorf("Len() after unregister = %d, want 0", m.Len())
	}

	// The id stays consumed.
	if next := m.ConsumeNextID(); next == rev.ID {
		t.Errorf("ConsumeNextID reused unregistered id %d", rev.ID)
	}
}

func TestManagerRevisionsOrdered(t *testing.T) {
	m := NewManager()
	date := time.Now()

	for _, id := range []int{30, 10, 20} {
		if err := m.Register(NewInsert(id, "alice", date)); err != nil {
			t.Fatalf("Register(%d): %v", id, err)
		}
	}

	revs := m.Revisions()
	if len(revs) != 3 {
		t.Fatalf("Revisions() length = %d, want 3", len(revs))
	}
	for i, want := range []int{10, 20, 30} {
		if revs[i].ID != want {
			t.Errorf("Revisions()[%d].ID = %d, want %d", i, revs[i].ID, want)
		}
	}
}

func TestManagerAuthors(t *testing.T) {
	m := NewManager()
	date := time.Now()

	m.Register(NewInsert(1, "carol", date))
	m.Register(NewDelete(2, "alice", date))
	m.Register(NewInsert(3, "carol", date))

	authors := m.Authors()
	if len(authors) != 2 || authors[0] != "alice" || authors[1] != "carol" {
		t.Errorf("Authors() = %v, want [alice carol]", authors)
	}
}
