package ooxml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	"github.com/dshills/wordsmith/document"
	"github.com/dshills/wordsmith/opc"
	"github.com/dshills/wordsmith/revision"
	"github.com/google/uuid"
)

// Read opens a package and reconstructs the document it holds, including
// any revision markup. Tracking is left disabled on the returned document;
// the persisted track-changes flag is available through its settings.
func Read(r io.ReaderAt, size int64) (*document.Document, error) {
	pkg, err := opc.ReadFrom(r, size)
	if err != nil {
		return nil, err
	}
	return ReadPackage(pkg)
}

// ReadPackage decodes a document from an already opened package.
func ReadPackage(pkg *opc.Package) (*document.Document, error) {
	l := &loader{
		doc:  document.New(),
		revs: make(map[int]*revision.Revision),
		rels: make(map[string]relationshipXML),
	}

	docPath := l.documentPath(pkg)
	if part, err := pkg.Part(relsPathFor(docPath)); err == nil {
		if rels, err := unmarshalRelationships(part.Data); err == nil {
			l.rels = rels
		}
	}

	part, err := pkg.Part(docPath)
	if err != nil {
		return nil, fmt.Errorf("ooxml: main document part: %w", err)
	}
	if err := l.parseDocument(part.Data); err != nil {
		return nil, fmt.Errorf("ooxml: parse %s: %w", docPath, err)
	}

	if part, err := pkg.Part(l.partPath(docPath, relTypeSettings, settingsPartName)); err == nil {
		if err := l.parseSettings(part.Data); err != nil {
			return nil, fmt.Errorf("ooxml: parse settings: %w", err)
		}
	}
	if part, err := pkg.Part(corePartName); err == nil {
		if err := l.parseCore(part.Data); err != nil {
			return nil, fmt.Errorf("ooxml: parse core properties: %w", err)
		}
	}
	return l.doc, nil
}

// runRestorer is satisfied by paragraphs and hyperlinks, both of which
// reattach runs parsed from markup.
type runRestorer interface {
	RestoreRun() *document.Run
}

type loader struct {
	doc  *document.Document
	revs map[int]*revision.Revision
	rels map[string]relationshipXML
}

// documentPath resolves the main document part through the package
// relationships, falling back to the conventional name.
func (l *loader) documentPath(pkg *opc.Package) string {
	part, err := pkg.Part(rootRelsName)
	if err != nil {
		return documentPartName
	}
	rels, err := unmarshalRelationships(part.Data)
	if err != nil {
		return documentPartName
	}
	for _, rel := range rels {
		if rel.Type == relTypeDocument && rel.Target != "" {
			return strings.TrimPrefix(rel.Target, "/")
		}
	}
	return documentPartName
}

// partPath resolves a document relationship of the given type to a part
// name. Relative targets are resolved against the document part's directory.
func (l *loader) partPath(docPath, relType, fallback string) string {
	for _, rel := range l.rels {
		if rel.Type != relType || rel.Target == "" || rel.TargetMode == "External" {
			continue
		}
		if strings.HasPrefix(rel.Target, "/") {
			return strings.TrimPrefix(rel.Target, "/")
		}
		return path.Join(path.Dir(docPath), rel.Target)
	}
	return fallback
}

func relsPathFor(partName string) string {
	dir, base := path.Split(partName)
	return dir + "_rels/" + base + ".rels"
}

// revisionFor returns the live revision for a markup identity, creating and
// registering it on first sight. Wrappers repeat an id when one revision
// covers several runs; every occurrence resolves to the same object.
func (l *loader) revisionFor(se xml.StartElement, kind revision.Kind) (*revision.Revision, error) {
	id, _ := strconv.Atoi(attrValue(se, "id"))
	if id > 0 {
		if rev, ok := l.revs[id]; ok {
			return rev, nil
		}
	} else {
		id = l.doc.Revisions().ConsumeNextID()
	}
	author := attrValue(se, "author")
	if author == "" {
		author = "unknown"
	}
	rev, err := revision.New(id, author, parseDate(attrValue(se, "date")), kind)
	if err != nil {
		return nil, err
	}
	if err := l.doc.Revisions().Register(rev); err != nil {
		return nil, err
	}
	l.revs[id] = rev
	return rev, nil
}

func (l *loader) parseDocument(data []byte) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if se.Name.Local == "body" {
			if err := l.parseBody(dec); err != nil {
				return err
			}
		}
	}
}

func (l *loader) parseBody(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				if err := l.parseParagraph(dec, l.doc.AddParagraph()); err != nil {
					return err
				}
			case "tbl":
				if err := l.parseTable(dec, l.doc.RestoreTable()); err != nil {
					return err
				}
			case "sectPr":
				if err := l.parseSectionProps(dec); err != nil {
					return err
				}
			default:
				if err := dec.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (l *loader) parseParagraph(dec *xml.Decoder, p *document.Paragraph) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "pPr":
				if err := l.parseParagraphProps(dec, p); err != nil {
					return err
				}
			case "r":
				if err := l.parseRun(dec, p.RestoreRun(), nil, nil); err != nil {
					return err
				}
			case "hyperlink":
				if err := l.parseHyperlink(dec, t, p); err != nil {
					return err
				}
			case "ins", "del", "moveFrom", "moveTo":
				if err := l.parseWrapped(dec, t, p, nil, nil); err != nil {
					return err
				}
			default:
				if err := dec.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			restoreParagraphMove(p)
			return nil
		}
	}
}

// parseWrapped reads the runs inside a revision wrapper. Nested wrappers
// stack: a deletion inside an insertion leaves the run carrying both.
func (l *loader) parseWrapped(dec *xml.Decoder, start xml.StartElement, rc runRestorer, ins, del *revision.Revision) error {
	kind, ok := wrapperKind(start.Name.Local)
	if !ok {
		return dec.Skip()
	}
	rev, err := l.revisionFor(start, kind)
	if err != nil {
		return err
	}
	switch kind {
	case revision.KindInsert, revision.KindMoveTo:
		ins = rev
	case revision.KindDelete, revision.KindMoveFrom:
		del = rev
	}
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "r":
				if err := l.parseRun(dec, rc.RestoreRun(), ins, del); err != nil {
					return err
				}
			case "ins", "del", "moveFrom", "moveTo":
				if err := l.parseWrapped(dec, t, rc, ins, del); err != nil {
					return err
				}
			default:
				if err := dec.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (l *loader) parseRun(dec *xml.Decoder, run *document.Run, ins, del *revision.Revision) error {
	var text strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "rPr":
				if err := l.parseRunProps(dec, run); err != nil {
					return err
				}
			case "t", "delText":
				s, err := textContent(dec)
				if err != nil {
					return err
				}
				text.WriteString(s)
			default:
				if err := dec.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			run.SetText(text.String())
			if ins != nil {
				run.AttachContentRevision(ins)
				_ = ins.AppendContent(run)
			}
			if del != nil {
				run.AttachContentRevision(del)
				_ = del.AppendContent(run)
			}
			return nil
		}
	}
}

func (l *loader) parseRunProps(dec *xml.Decoder, run *document.Run) error {
	var rec *revision.PropertyChange
	capture := func(dec *xml.Decoder, se xml.StartElement, _ revision.Properties) (bool, error) {
		if se.Name.Local != "rPrChange" {
			return false, nil
		}
		r, err := l.parseChange(dec, se, runCodecs, nil)
		rec = r
		return true, err
	}
	bag, err := parseBag(dec, runCodecs, capture)
	if err != nil {
		return err
	}
	applyRunProps(run, bag)
	if rec != nil {
		run.SetPropertyChangeRecord(rec)
	}
	return nil
}

func (l *loader) parseParagraphProps(dec *xml.Decoder, p *document.Paragraph) error {
	var rec *revision.PropertyChange
	special := func(dec *xml.Decoder, se xml.StartElement, bag revision.Properties) (bool, error) {
		if se.Name.Local == "pPrChange" {
			r, err := l.parseChange(dec, se, paragraphCodecs, parseParagraphSpecial)
			rec = r
			return true, err
		}
		return parseParagraphSpecial(dec, se, bag)
	}
	bag, err := parseBag(dec, paragraphCodecs, special)
	if err != nil {
		return err
	}
	applyParagraphProps(p, bag)
	if rec != nil {
		p.SetPropertyChangeRecord(rec)
	}
	return nil
}

// parseChange reconstructs a property-change record from its change element:
// the identity attributes, the nested previous-state block, the names listed
// as previously unset, and the folded revision ids.
func (l *loader) parseChange(dec *xml.Decoder, start xml.StartElement, codecs []propCodec, special specialProp) (*revision.PropertyChange, error) {
	prev := make(revision.Properties)
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch tok.(type) {
		case xml.StartElement:
			inner, err := parseBag(dec, codecs, special)
			if err != nil {
				return nil, err
			}
			for name, v := range inner {
				prev[name] = v
			}
		case xml.EndElement:
			return l.finishChange(start, prev), nil
		}
	}
}

func (l *loader) finishChange(start xml.StartElement, prev revision.Properties) *revision.PropertyChange {
	for _, name := range strings.Fields(attrValue(start, "unset")) {
		prev[name] = revision.Unset
	}
	id, _ := strconv.Atoi(attrValue(start, "id"))
	author := attrValue(start, "author")
	if author == "" {
		author = "unknown"
	}
	rec := revision.NewPropertyChange(id, author, parseDate(attrValue(start, "date")), prev)
	rec.RevisionIDs = splitInts(attrValue(start, "folded"))
	l.doc.Revisions().Reserve(id)
	for _, folded := range rec.RevisionIDs {
		l.doc.Revisions().Reserve(folded)
	}
	return rec
}

func (l *loader) parseHyperlink(dec *xml.Decoder, start xml.StartElement, p *document.Paragraph) error {
	h := p.RestoreHyperlink()
	if id := attrValue(start, "id"); id != "" {
		if rel, ok := l.rels[id]; ok && rel.Target != "" {
			_ = h.SetTarget(rel.Target)
		}
	}
	if a := attrValue(start, "anchor"); a != "" {
		h.SetAnchor(a)
	}
	if tip := attrValue(start, "tooltip"); tip != "" {
		h.SetTooltip(tip)
	}
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "hlChange":
				h.SetPropertyChangeRecord(l.parseHyperlinkChange(t))
				if err := dec.Skip(); err != nil {
					return err
				}
			case "r":
				if err := l.parseRun(dec, h.RestoreRun(), nil, nil); err != nil {
					return err
				}
			case "ins", "del", "moveFrom", "moveTo":
				if err := l.parseWrapped(dec, t, h, nil, nil); err != nil {
					return err
				}
			default:
				if err := dec.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (l *loader) parseHyperlinkChange(se xml.StartElement) *revision.PropertyChange {
	prev := make(revision.Properties)
	if s := attrValue(se, "target"); s != "" {
		prev[document.PropTarget] = s
	}
	if s := attrValue(se, "anchor"); s != "" {
		prev[document.PropAnchor] = s
	}
	if s := attrValue(se, "tooltip"); s != "" {
		prev[document.PropTooltip] = s
	}
	return l.finishChange(se, prev)
}

func (l *loader) parseTable(dec *xml.Decoder, tbl *document.Table) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tblPr":
				if err := l.parseTableProps(dec, tbl); err != nil {
					return err
				}
			case "tblGrid":
				if err := l.parseGrid(dec, tbl); err != nil {
					return err
				}
			case "tr":
				if err := l.parseRow(dec, tbl.RestoreRow()); err != nil {
					return err
				}
			default:
				if err := dec.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (l *loader) parseGrid(dec *xml.Decoder, tbl *document.Table) error {
	var widths []int
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "gridCol" {
				n, ok := intAttr(t, "w")
				if !ok || n < 0 {
					n = 0
				}
				widths = append(widths, n)
			}
			if err := dec.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			if len(widths) > 0 {
				_ = tbl.SetColumnWidths(widths...)
			}
			return nil
		}
	}
}

func (l *loader) parseTableProps(dec *xml.Decoder, tbl *document.Table) error {
	var rec *revision.PropertyChange
	capture := func(dec *xml.Decoder, se xml.StartElement, _ revision.Properties) (bool, error) {
		if se.Name.Local != "tblPrChange" {
			return false, nil
		}
		r, err := l.parseChange(dec, se, tableCodecs, nil)
		rec = r
		return true, err
	}
	bag, err := parseBag(dec, tableCodecs, capture)
	if err != nil {
		return err
	}
	applyTableProps(tbl, bag)
	if rec != nil {
		tbl.SetPropertyChangeRecord(rec)
	}
	return nil
}

func (l *loader) parseRow(dec *xml.Decoder, row *document.Row) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "trPr":
				if err := l.parseRowProps(dec, row); err != nil {
					return err
				}
			case "tc":
				if err := l.parseCell(dec, row.RestoreCell()); err != nil {
					return err
				}
			default:
				if err := dec.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (l *loader) parseRowProps(dec *xml.Decoder, row *document.Row) error {
	var rec *revision.PropertyChange
	special := func(dec *xml.Decoder, se xml.StartElement, bag revision.Properties) (bool, error) {
		if se.Name.Local == "trPrChange" {
			r, err := l.parseChange(dec, se, rowCodecs, parseRowSpecial)
			rec = r
			return true, err
		}
		return parseRowSpecial(dec, se, bag)
	}
	bag, err := parseBag(dec, rowCodecs, special)
	if err != nil {
		return err
	}
	applyRowProps(row, bag)
	if rec != nil {
		row.SetPropertyChangeRecord(rec)
	}
	return nil
}

func (l *loader) parseCell(dec *xml.Decoder, cell *document.Cell) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "tcPr":
				if err := l.parseCellProps(dec, cell); err != nil {
					return err
				}
			case "p":
				if err := l.parseParagraph(dec, cell.AddParagraph()); err != nil {
					return err
				}
			case "tbl":
				if err := l.parseTable(dec, cell.RestoreTable()); err != nil {
					return err
				}
			default:
				if err := dec.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (l *loader) parseCellProps(dec *xml.Decoder, cell *document.Cell) error {
	var rec *revision.PropertyChange
	special := func(dec *xml.Decoder, se xml.StartElement, _ revision.Properties) (bool, error) {
		switch se.Name.Local {
		case "tcPrChange":
			r, err := l.parseChange(dec, se, cellCodecs, nil)
			rec = r
			return true, err
		case "cellIns", "cellDel", "cellMerge":
			return true, l.parseCellMark(dec, se, cell)
		}
		return false, nil
	}
	bag, err := parseBag(dec, cellCodecs, special)
	if err != nil {
		return err
	}
	applyCellProps(cell, bag)
	if rec != nil {
		cell.SetPropertyChangeRecord(rec)
	}
	return nil
}

func (l *loader) parseCellMark(dec *xml.Decoder, se xml.StartElement, cell *document.Cell) error {
	var kind revision.Kind
	switch se.Name.Local {
	case "cellIns":
		kind = revision.KindCellInsert
	case "cellDel":
		kind = revision.KindCellDelete
	default:
		kind = revision.KindCellMerge
	}
	rev, err := l.revisionFor(se, kind)
	if err != nil {
		return err
	}
	if kind == revision.KindCellMerge && rev.Updated == nil {
		upd := make(revision.Properties)
		if n, ok := intAttr(se, "anchorRow"); ok {
			upd[document.MarkAnchorRow] = n
		}
		if n, ok := intAttr(se, "anchorColumn"); ok {
			upd[document.MarkAnchorColumn] = n
		}
		rev.Updated = upd
	}
	cell.SetMark(rev)
	return dec.Skip()
}

func (l *loader) parseSectionProps(dec *xml.Decoder) error {
	sect := l.doc.Section()
	var rec *revision.PropertyChange
	special := func(dec *xml.Decoder, se xml.StartElement, bag revision.Properties) (bool, error) {
		if se.Name.Local == "sectPrChange" {
			r, err := l.parseChange(dec, se, nil, parseSectionSpecial)
			rec = r
			return true, err
		}
		return parseSectionSpecial(dec, se, bag)
	}
	bag, err := parseBag(dec, nil, special)
	if err != nil {
		return err
	}
	applySectionProps(sect, bag)
	if rec != nil {
		sect.SetPropertyChangeRecord(rec)
	}
	return nil
}

// restoreParagraphMove reattaches paragraph-level move slots. A tracked
// paragraph move wraps every run of the paragraph in one shared move
// revision; when a parsed paragraph shows that shape, the paragraph itself
// was the move's subject.
func restoreParagraphMove(p *document.Paragraph) {
	var runs []*document.Run
	for _, child := range p.Children() {
		switch c := child.(type) {
		case *document.Run:
			runs = append(runs, c)
		case *document.Hyperlink:
			runs = append(runs, c.Runs()...)
		}
	}
	if len(runs) == 0 {
		return
	}
	if rev := sharedMove(runs, revision.KindMoveTo); rev != nil {
		p.AttachContentRevision(rev)
	}
	if rev := sharedMove(runs, revision.KindMoveFrom); rev != nil {
		p.AttachContentRevision(rev)
	}
}

func sharedMove(runs []*document.Run, kind revision.Kind) *revision.Revision {
	slot := func(r *document.Run) *revision.Revision {
		if kind == revision.KindMoveTo {
			return r.Insertion()
		}
		return r.Deletion()
	}
	first := slot(runs[0])
	if first == nil || first.Kind != kind {
		return nil
	}
	for _, r := range runs[1:] {
		if slot(r) != first {
			return nil
		}
	}
	return first
}

func (l *loader) parseSettings(data []byte) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "trackChanges":
			if v, ok := parsePropValue(propBool, attrValue(se, "val")); ok {
				l.doc.Settings().TrackChanges = v.(bool)
			}
		case "docId":
			if id, err := uuid.Parse(attrValue(se, "val")); err == nil {
				l.doc.Settings().DocumentID = id
			}
		}
	}
}

func (l *loader) parseCore(data []byte) error {
	core := l.doc.Core()
	dec := xml.NewDecoder(bytes.NewReader(data))
	read := func(dst *string) error {
		s, err := textContent(dec)
		if err != nil {
			return err
		}
		*dst = s
		return nil
	}
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch se.Name.Local {
		case "title":
			err = read(&core.Title)
		case "subject":
			err = read(&core.Subject)
		case "creator":
			err = read(&core.Creator)
		case "keywords":
			err = read(&core.Keywords)
		case "description":
			err = read(&core.Description)
		case "lastModifiedBy":
			err = read(&core.LastModifiedBy)
		case "revision":
			var s string
			if err = read(&s); err == nil {
				if n, convErr := strconv.Atoi(strings.TrimSpace(s)); convErr == nil {
					core.Revision = n
				}
			}
		case "created":
			var s string
			if err = read(&s); err == nil {
				if t := parseDate(strings.TrimSpace(s)); !t.IsZero() {
					core.Created = t
				}
			}
		case "modified":
			var s string
			if err = read(&s); err == nil {
				if t := parseDate(strings.TrimSpace(s)); !t.IsZero() {
					core.Modified = t
				}
			}
		}
		if err != nil {
			return err
		}
	}
}

func applyRunProps(r *document.Run, bag revision.Properties) {
	for name, v := range bag {
		switch name {
		case document.PropFont:
			if s, ok := v.(string); ok {
				r.SetFont(s)
			}
		case document.PropBold:
			if b, ok := v.(bool); ok {
				r.SetBold(b)
			}
		case document.PropItalic:
			if b, ok := v.(bool); ok {
				r.SetItalic(b)
			}
		case document.PropStrike:
			if b, ok := v.(bool); ok {
				r.SetStrike(b)
			}
		case document.PropUnderline:
			if s, ok := v.(string); ok {
				r.SetUnderline(document.UnderlineStyle(s))
			}
		case document.PropColor:
			if s, ok := v.(string); ok {
				r.SetColor(s)
			}
		case document.PropSize:
			if n, ok := v.(int); ok {
				_ = r.SetSize(n)
			}
		case document.PropHighlight:
			if s, ok := v.(string); ok {
				r.SetHighlight(s)
			}
		case document.PropVerticalAlign:
			if s, ok := v.(string); ok {
				r.SetVerticalAlign(document.VerticalAlignText(s))
			}
		case document.PropLanguage:
			if s, ok := v.(string); ok {
				_ = r.SetLanguage(s)
			}
		}
	}
}

func applyParagraphProps(p *document.Paragraph, bag revision.Properties) {
	for name, v := range bag {
		switch name {
		case document.PropStyle:
			if s, ok := v.(string); ok {
				p.SetStyle(s)
			}
		case document.PropAlignment:
			if s, ok := v.(string); ok {
				p.SetAlignment(document.Alignment(s))
			}
		case document.PropKeepNext:
			if b, ok := v.(bool); ok {
				p.SetKeepNext(b)
			}
		case document.PropPageBreakBefore:
			if b, ok := v.(bool); ok {
				p.SetPageBreakBefore(b)
			}
		case document.PropIndentLeft:
			if n, ok := v.(int); ok {
				_ = p.SetIndentLeft(n)
			}
		case document.PropIndentRight:
			if n, ok := v.(int); ok {
				_ = p.SetIndentRight(n)
			}
		case document.PropIndentFirstLine:
			if n, ok := v.(int); ok {
				_ = p.SetIndentFirstLine(n)
			}
		case document.PropSpacingBefore:
			if n, ok := v.(int); ok {
				_ = p.SetSpacingBefore(n)
			}
		case document.PropSpacingAfter:
			if n, ok := v.(int); ok {
				_ = p.SetSpacingAfter(n)
			}
		case document.PropLineSpacing:
			if n, ok := v.(int); ok {
				_ = p.SetLineSpacing(n)
			}
		}
	}
}

func applyTableProps(t *document.Table, bag revision.Properties) {
	for name, v := range bag {
		switch name {
		case document.PropStyle:
			if s, ok := v.(string); ok {
				t.SetStyle(s)
			}
		case document.PropWidth:
			if n, ok := v.(int); ok {
				_ = t.SetWidth(n)
			}
		case document.PropAlignment:
			if s, ok := v.(string); ok {
				t.SetAlignment(document.Alignment(s))
			}
		case document.PropIndent:
			if n, ok := v.(int); ok {
				_ = t.SetIndent(n)
			}
		case document.PropLayout:
			if s, ok := v.(string); ok {
				t.SetLayout(document.TableLayout(s))
			}
		case document.PropShading:
			if s, ok := v.(string); ok {
				t.SetShading(s)
			}
		}
	}
}

func applyRowProps(r *document.Row, bag revision.Properties) {
	for name, v := range bag {
		switch name {
		case document.PropHeight:
			if n, ok := v.(int); ok {
				_ = r.SetHeight(n)
			}
		case document.PropHeightRule:
			if s, ok := v.(string); ok {
				r.SetHeightRule(document.HeightRule(s))
			}
		case document.PropHeader:
			if b, ok := v.(bool); ok {
				r.SetHeader(b)
			}
		case document.PropCantSplit:
			if b, ok := v.(bool); ok {
				r.SetCantSplit(b)
			}
		}
	}
}

func applyCellProps(c *document.Cell, bag revision.Properties) {
	for name, v := range bag {
		switch name {
		case document.PropWidth:
			if n, ok := v.(int); ok {
				_ = c.SetWidth(n)
			}
		case document.PropGridSpan:
			if n, ok := v.(int); ok {
				_ = c.SetGridSpan(n)
			}
		case document.PropShading:
			if s, ok := v.(string); ok {
				c.SetShading(s)
			}
		case document.PropVerticalAlign:
			if s, ok := v.(string); ok {
				c.SetVerticalAlign(document.CellVerticalAlign(s))
			}
		case document.PropNoWrap:
			if b, ok := v.(bool); ok {
				c.SetNoWrap(b)
			}
		case document.PropVerticalMerge:
			if s, ok := v.(string); ok {
				c.SetVerticalMerge(document.VerticalMerge(s))
			}
		}
	}
}

func applySectionProps(s *document.Section, bag revision.Properties) {
	for name, v := range bag {
		switch name {
		case document.PropPageWidth:
			if n, ok := v.(int); ok {
				_ = s.SetPageWidth(n)
			}
		case document.PropPageHeight:
			if n, ok := v.(int); ok {
				_ = s.SetPageHeight(n)
			}
		case document.PropOrientation:
			if str, ok := v.(string); ok {
				s.SetOrientation(document.Orientation(str))
			}
		case document.PropMarginTop:
			if n, ok := v.(int); ok {
				_ = s.SetMarginTop(n)
			}
		case document.PropMarginBottom:
			if n, ok := v.(int); ok {
				_ = s.SetMarginBottom(n)
			}
		case document.PropMarginLeft:
			if n, ok := v.(int); ok {
				_ = s.SetMarginLeft(n)
			}
		case document.PropMarginRight:
			if n, ok := v.(int); ok {
				_ = s.SetMarginRight(n)
			}
		}
	}
}
