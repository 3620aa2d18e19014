// Package wordsmith creates, loads and saves word-processing documents in
// the Office Open XML format, with full change tracking: author-attributed
// insertions, deletions, moves, formatting changes and structural table
// edits that can be accepted or rejected individually or wholesale.
//
// The facade covers document lifecycle only. Editing lives on the entity
// types in the document package:
//
//	doc := wordsmith.New(wordsmith.WithCreator("Ada"))
//	doc.AddParagraph().AddText("Hello")
//	_ = doc.EnableTracking("Grace")
//	doc.Paragraphs()[0].Runs()[0].SetText("Hello, world")
//	_ = wordsmith.Save(doc, "hello.docx")
//
// Subpackages: document (entity model and revision acceptance), tracking
// (the pending-change engine), revision (revision model and registry),
// textdiff (grapheme-aligned text diff), ooxml (markup serialization) and
// opc (the zip container).
package wordsmith

import (
	"fmt"
	"io"
	"os"

	"github.com/dshills/wordsmith/document"
	"github.com/dshills/wordsmith/ooxml"
)

// Document is the in-memory document tree. The editing API lives in the
// document package; the alias keeps single-import callers working.
type Document = document.Document

// Option configures a document at creation.
type Option = document.Option

// New creates an empty document with tracking disabled.
func New(opts ...Option) *Document {
	return document.New(opts...)
}

// WithCreator sets the author recorded in the document metadata.
func WithCreator(name string) Option { return document.WithCreator(name) }

// WithTitle sets the title recorded in the document metadata.
func WithTitle(title string) Option { return document.WithTitle(title) }

// WithDescription sets the description recorded in the document metadata.
func WithDescription(desc string) Option { return document.WithDescription(desc) }

// Read loads a document from a package stream. Tracking is left disabled;
// the persisted track-changes request is reported by the settings.
func Read(r io.ReaderAt, size int64) (*Document, error) {
	return ooxml.Read(r, size)
}

// Open loads the document stored at path.
func Open(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	doc, err := ooxml.Read(f, info.Size())
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return doc, nil
}

// Write serializes doc to w. Pending tracked changes are flushed to
// revisions first, so nothing buffered is lost.
func Write(doc *Document, w io.Writer) error {
	return ooxml.Write(w, doc)
}

// Save writes doc to path, creating or truncating the file.
func Save(doc *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := ooxml.Write(f, doc); err != nil {
		f.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	return f.Close()
}
