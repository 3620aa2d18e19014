// Package ooxml serializes documents to and from the WordprocessingML
// package format: an OPC container holding the document body, settings,
// styles, metadata and relationship parts.
//
// The writer emits tracked changes as revision markup (w:ins, w:del,
// w:moveFrom, w:moveTo wrappers, property-change elements and structural
// cell marks), and the reader reconstructs the in-memory revision state
// from it, so a document survives a save and load round trip with its
// tracked changes intact. Pending changes are flushed to revisions before
// anything is written.
package ooxml
