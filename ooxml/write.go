package ooxml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dshills/wordsmith/document"
	"github.com/dshills/wordsmith/opc"
	"github.com/dshills/wordsmith/revision"
)

// Write serializes doc as a package to w. Pending tracked changes are
// flushed to revisions first so the markup carries them, and the persisted
// track-changes flag is refreshed from the live tracking state.
func Write(w io.Writer, doc *document.Document) error {
	doc.Tracking().FlushPendingChanges()
	doc.Settings().TrackChanges = doc.TrackingEnabled()

	links := collectHyperlinks(doc)

	docXML, err := documentXML(doc, links)
	if err != nil {
		return fmt.Errorf("ooxml: document part: %w", err)
	}
	settings, err := settingsXML(doc.Settings())
	if err != nil {
		return fmt.Errorf("ooxml: settings part: %w", err)
	}
	core, err := coreXML(doc.Core())
	if err != nil {
		return fmt.Errorf("ooxml: core part: %w", err)
	}
	rootRels, err := marshalRelationships([]relationshipXML{
		{ID: "rId1", Type: relTypeDocument, Target: documentPartName},
		{ID: "rId2", Type: relTypeCore, Target: corePartName},
		{ID: "rId3", Type: relTypeApp, Target: appPartName},
	})
	if err != nil {
		return fmt.Errorf("ooxml: package relationships: %w", err)
	}
	docRels, err := marshalRelationships(documentRelationships(links))
	if err != nil {
		return fmt.Errorf("ooxml: document relationships: %w", err)
	}

	pkg := opc.New()
	parts := []struct {
		name        string
		contentType string
		data        []byte
	}{
		{rootRelsName, opc.RelationshipType, rootRels},
		{documentPartName, documentContentType, docXML},
		{documentRelsName, opc.RelationshipType, docRels},
		{stylesPartName, stylesContentType, stylesXML()},
		{settingsPartName, settingsContentType, settings},
		{corePartName, coreContentType, core},
		{appPartName, appContentType, appXML()},
	}
	for _, p := range parts {
		if _, err := pkg.Add(p.name, p.contentType, p.data); err != nil {
			return fmt.Errorf("ooxml: add %s: %w", p.name, err)
		}
	}
	_, err = pkg.WriteTo(w)
	return err
}

// hyperlinkRefs assigns relationship ids to hyperlinks with external
// targets, in body order. Anchor-only links need no relationship.
type hyperlinkRefs struct {
	order []*document.Hyperlink
	ids   map[*document.Hyperlink]string
}

func collectHyperlinks(doc *document.Document) *hyperlinkRefs {
	refs := &hyperlinkRefs{ids: make(map[*document.Hyperlink]string)}
	var walk func(blocks []document.Block)
	walk = func(blocks []document.Block) {
		for _, b := range blocks {
			switch bl := b.(type) {
			case *document.Paragraph:
				for _, child := range bl.Children() {
					h, ok := child.(*document.Hyperlink)
					if !ok || h.Target() == "" {
						continue
					}
					// rId1 and rId2 belong to styles and settings.
					refs.ids[h] = "rId" + strconv.Itoa(len(refs.order)+3)
					refs.order = append(refs.order, h)
				}
			case *document.Table:
				for _, row := range bl.Rows() {
					for _, cell := range row.Cells() {
						walk(cell.Blocks())
					}
				}
			}
		}
	}
	walk(doc.Blocks())
	return refs
}

func documentRelationships(links *hyperlinkRefs) []relationshipXML {
	rels := []relationshipXML{
		{ID: "rId1", Type: relTypeStyles, Target: "styles.xml"},
		{ID: "rId2", Type: relTypeSettings, Target: "settings.xml"},
	}
	for _, h := range links.order {
		rels = append(rels, relationshipXML{
			ID:         links.ids[h],
			Type:       relTypeHyperlink,
			Target:     h.Target(),
			TargetMode: "External",
		})
	}
	return rels
}

type docWriter struct {
	x     *xmlWriter
	links *hyperlinkRefs
}

func documentXML(doc *document.Document, links *hyperlinkRefs) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	x := newXMLWriter(&buf)
	dw := &docWriter{x: x, links: links}

	x.start("w:document", attr("xmlns:w", nsMain), attr("xmlns:r", nsDocRel))
	x.start("w:body")
	for _, b := range doc.Blocks() {
		dw.block(b)
	}
	writeSectionProps(x, doc.Section().FormattingSnapshot(), doc.Section().PropertyChangeRecord())
	x.end("w:body")
	x.end("w:document")

	if err := x.flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (dw *docWriter) block(b document.Block) {
	switch bl := b.(type) {
	case *document.Paragraph:
		dw.paragraph(bl)
	case *document.Table:
		dw.table(bl)
	}
}

func (dw *docWriter) paragraph(p *document.Paragraph) {
	dw.x.start("w:p")
	writeParagraphProps(dw.x, p.FormattingSnapshot(), p.PropertyChangeRecord())
	for _, child := range p.Children() {
		switch c := child.(type) {
		case *document.Run:
			dw.run(c)
		case *document.Hyperlink:
			dw.hyperlink(c)
		}
	}
	dw.x.end("w:p")
}

// run emits the run inside its revision wrappers. An insertion or move
// destination wraps outermost; a deletion of that content nests inside it,
// which is how a later author's delete of fresh text is expressed.
func (dw *docWriter) run(r *document.Run) {
	ins, del := r.Insertion(), r.Deletion()
	if ins != nil {
		dw.x.start(wrapperName(ins.Kind), revAttrs(ins)...)
	}
	if del != nil {
		dw.x.start(wrapperName(del.Kind), revAttrs(del)...)
	}
	dw.x.start("w:r")
	writeRunProps(dw.x, r.FormattingSnapshot(), r.PropertyChangeRecord())
	textName := "w:t"
	if del != nil && del.Kind == revision.KindDelete {
		textName = "w:delText"
	}
	dw.x.start(textName, attr("xml:space", "preserve"))
	dw.x.text(r.Text())
	dw.x.end(textName)
	dw.x.end("w:r")
	if del != nil {
		dw.x.end(wrapperName(del.Kind))
	}
	if ins != nil {
		dw.x.end(wrapperName(ins.Kind))
	}
}

func (dw *docWriter) hyperlink(h *document.Hyperlink) {
	attrs := make([]xml.Attr, 0, 3)
	if id, ok := dw.links.ids[h]; ok {
		attrs = append(attrs, attr("r:id", id))
	}
	if a := h.Anchor(); a != "" {
		attrs = append(attrs, attr("w:anchor", a))
	}
	if tip := h.Tooltip(); tip != "" {
		attrs = append(attrs, attr("w:tooltip", tip))
	}
	dw.x.start("w:hyperlink", attrs...)
	if rec := h.PropertyChangeRecord(); rec != nil {
		writeHyperlinkChange(dw.x, rec)
	}
	for _, r := range h.Runs() {
		dw.run(r)
	}
	dw.x.end("w:hyperlink")
}

func (dw *docWriter) table(t *document.Table) {
	dw.x.start("w:tbl")
	writeTableProps(dw.x, t.FormattingSnapshot(), t.PropertyChangeRecord())
	dw.x.start("w:tblGrid")
	for _, width := range t.Grid() {
		dw.x.empty("w:gridCol", attr("w:w", strconv.Itoa(width)))
	}
	dw.x.end("w:tblGrid")
	for _, row := range t.Rows() {
		dw.row(row)
	}
	dw.x.end("w:tbl")
}

func (dw *docWriter) row(r *document.Row) {
	dw.x.start("w:tr")
	writeRowProps(dw.x, r.FormattingSnapshot(), r.PropertyChangeRecord())
	for _, c := range r.Cells() {
		dw.cell(c)
	}
	dw.x.end("w:tr")
}

func (dw *docWriter) cell(c *document.Cell) {
	dw.x.start("w:tc")
	writeCellProps(dw.x, c.FormattingSnapshot(), c.PropertyChangeRecord(), c.Mark())
	blocks := c.Blocks()
	if len(blocks) == 0 {
		// A cell must hold at least one block.
		dw.x.empty("w:p")
	}
	for _, b := range blocks {
		dw.block(b)
	}
	dw.x.end("w:tc")
}

func settingsXML(s *document.Settings) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	x := newXMLWriter(&buf)
	x.start("w:settings", attr("xmlns:w", nsMain), attr("xmlns:w15", nsWord2012))
	if s.TrackChanges {
		x.empty("w:trackChanges")
	}
	x.empty("w15:docId", attr("w15:val", "{"+strings.ToUpper(s.DocumentID.String())+"}"))
	x.end("w:settings")
	if err := x.flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func coreXML(c *document.CoreProperties) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	x := newXMLWriter(&buf)
	x.start("cp:coreProperties",
		attr("xmlns:cp", nsCoreProp),
		attr("xmlns:dc", nsDC),
		attr("xmlns:dcterms", nsDCTerms),
		attr("xmlns:xsi", nsXSI),
	)
	x.element("dc:title", c.Title)
	x.element("dc:subject", c.Subject)
	x.element("dc:creator", c.Creator)
	x.element("cp:keywords", c.Keywords)
	x.element("dc:description", c.Description)
	x.element("cp:lastModifiedBy", c.LastModifiedBy)
	if c.Revision > 0 {
		x.element("cp:revision", strconv.Itoa(c.Revision))
	}
	if !c.Created.IsZero() {
		x.element("dcterms:created", formatDate(c.Created), attr("xsi:type", "dcterms:W3CDTF"))
	}
	if !c.Modified.IsZero() {
		x.element("dcterms:modified", formatDate(c.Modified), attr("xsi:type", "dcterms:W3CDTF"))
	}
	x.end("cp:coreProperties")
	if err := x.flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func appXML() []byte {
	return []byte(xml.Header +
		`<Properties xmlns="` + nsExtProp + `"><Application>wordsmith</Application></Properties>`)
}

// stylesXML emits a minimal stylesheet: the default paragraph style that
// named styles in the body resolve against.
func stylesXML() []byte {
	return []byte(xml.Header +
		`<w:styles xmlns:w="` + nsMain + `">` +
		`<w:style w:type="paragraph" w:default="1" w:styleId="Normal">` +
		`<w:name w:val="Normal"/>` +
		`</w:style>` +
		`</w:styles>`)
}
