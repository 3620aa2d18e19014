package ooxml

import (
	"encoding/xml"
	"sort"
	"strconv"
	"strings"

	"github.com/dshills/wordsmith/document"
	"github.com/dshills/wordsmith/revision"
)

type propType uint8

const (
	propString propType = iota
	propInt
	propBool
)

// propCodec binds one property-bag name to the element and attribute that
// carry it in the markup. Elements are emitted in table order so output is
// deterministic.
type propCodec struct {
	name string // bag key
	elem string // element local name
	attr string // value attribute local name
	typ  propType
}

var runCodecs = []propCodec{
	{document.PropFont, "rFonts", "ascii", propString},
	{document.PropBold, "b", "val", propBool},
	{document.PropItalic, "i", "val", propBool},
	{document.PropStrike, "strike", "val", propBool},
	{document.PropUnderline, "u", "val", propString},
	{document.PropColor, "color", "val", propString},
	{document.PropSize, "sz", "val", propInt},
	{document.PropHighlight, "highlight", "val", propString},
	{document.PropVerticalAlign, "vertAlign", "val", propString},
	{document.PropLanguage, "lang", "val", propString},
}

var paragraphCodecs = []propCodec{
	{document.PropStyle, "pStyle", "val", propString},
	{document.PropAlignment, "jc", "val", propString},
	{document.PropKeepNext, "keepNext", "val", propBool},
	{document.PropPageBreakBefore, "pageBreakBefore", "val", propBool},
}

var tableCodecs = []propCodec{
	{document.PropStyle, "tblStyle", "val", propString},
	{document.PropWidth, "tblW", "w", propInt},
	{document.PropAlignment, "jc", "val", propString},
	{document.PropIndent, "tblInd", "w", propInt},
	{document.PropLayout, "tblLayout", "type", propString},
	{document.PropShading, "shd", "fill", propString},
}

var rowCodecs = []propCodec{
	{document.PropHeader, "tblHeader", "val", propBool},
	{document.PropCantSplit, "cantSplit", "val", propBool},
}

var cellCodecs = []propCodec{
	{document.PropWidth, "tcW", "w", propInt},
	{document.PropGridSpan, "gridSpan", "val", propInt},
	{document.PropShading, "shd", "fill", propString},
	{document.PropVerticalAlign, "vAlign", "val", propString},
	{document.PropNoWrap, "noWrap", "val", propBool},
	{document.PropVerticalMerge, "vMerge", "val", propString},
}

func formatPropValue(typ propType, v any) (string, bool) {
	switch typ {
	case propBool:
		b, ok := v.(bool)
		if !ok {
			return "", false
		}
		if b {
			return "1", true
		}
		return "0", true
	case propInt:
		n, ok := v.(int)
		if !ok {
			return "", false
		}
		return strconv.Itoa(n), true
	default:
		s, ok := v.(string)
		if !ok || s == "" {
			return "", false
		}
		return s, true
	}
}

func parsePropValue(typ propType, s string) (any, bool) {
	switch typ {
	case propBool:
		// A bare element with no value attribute asserts the property.
		switch s {
		case "", "1", "true", "on":
			return true, true
		case "0", "false", "off", "none":
			return false, true
		}
		return nil, false
	case propInt:
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, false
		}
		return n, true
	default:
		if s == "" {
			return nil, false
		}
		return s, true
	}
}

// writeCodecProps emits one element per bag entry the codec table covers.
// Unset markers never appear here; change elements carry them in their
// unset attribute instead.
func writeCodecProps(x *xmlWriter, codecs []propCodec, bag revision.Properties) {
	for _, c := range codecs {
		v, ok := bag[c.name]
		if !ok || v == revision.Unset {
			continue
		}
		s, ok := formatPropValue(c.typ, v)
		if !ok {
			continue
		}
		x.empty("w:"+c.elem, attr("w:"+c.attr, s))
	}
}

// parseCodecProp decodes se into bag if the codec table covers its local
// name, consuming the element either way it handles it.
func parseCodecProp(dec *xml.Decoder, se xml.StartElement, codecs []propCodec, bag revision.Properties) (bool, error) {
	for _, c := range codecs {
		if se.Name.Local != c.elem {
			continue
		}
		if v, ok := parsePropValue(c.typ, attrValue(se, c.attr)); ok {
			bag[c.name] = v
		}
		return true, dec.Skip()
	}
	return false, nil
}

// specialProp handles context elements a codec table cannot express, such as
// w:ind grouping three measurements. It reports whether it consumed se.
type specialProp func(dec *xml.Decoder, se xml.StartElement, bag revision.Properties) (bool, error)

// parseBag reads a property container element into a fresh bag. special, if
// non-nil, gets first claim on each child.
func parseBag(dec *xml.Decoder, codecs []propCodec, special specialProp) (revision.Properties, error) {
	bag := make(revision.Properties)
	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if special != nil {
				handled, err := special(dec, t, bag)
				if err != nil {
					return nil, err
				}
				if handled {
					continue
				}
			}
			handled, err := parseCodecProp(dec, t, codecs, bag)
			if err != nil {
				return nil, err
			}
			if !handled {
				if err := dec.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			return bag, nil
		}
	}
}

// changeAttrs renders a property-change record's identity. Previous values
// that were unset before the edit are listed by name in the unset attribute;
// the ids of revisions folded into the record ride in folded.
func changeAttrs(rec *revision.PropertyChange) []xml.Attr {
	attrs := []xml.Attr{
		attr("w:id", strconv.Itoa(rec.ID)),
		attr("w:author", rec.Author),
		attr("w:date", formatDate(rec.Date)),
	}
	if names := unsetNames(rec.Previous); len(names) > 0 {
		attrs = append(attrs, attr("w:unset", strings.Join(names, " ")))
	}
	if len(rec.RevisionIDs) > 0 {
		attrs = append(attrs, attr("w:folded", joinInts(rec.RevisionIDs)))
	}
	return attrs
}

func unsetNames(bag revision.Properties) []string {
	var names []string
	for name, v := range bag {
		if v == revision.Unset {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func revAttrs(rev *revision.Revision) []xml.Attr {
	return []xml.Attr{
		attr("w:id", strconv.Itoa(rev.ID)),
		attr("w:author", rev.Author),
		attr("w:date", formatDate(rev.Date)),
	}
}

func wrapperName(k revision.Kind) string {
	switch k {
	case revision.KindInsert:
		return "w:ins"
	case revision.KindDelete:
		return "w:del"
	case revision.KindMoveFrom:
		return "w:moveFrom"
	case revision.KindMoveTo:
		return "w:moveTo"
	}
	return ""
}

func wrapperKind(local string) (revision.Kind, bool) {
	switch local {
	case "ins":
		return revision.KindInsert, true
	case "del":
		return revision.KindDelete, true
	case "moveFrom":
		return revision.KindMoveFrom, true
	case "moveTo":
		return revision.KindMoveTo, true
	}
	return 0, false
}

// writeRunProps emits w:rPr with the run's formatting and its change record.
func writeRunProps(x *xmlWriter, bag revision.Properties, rec *revision.PropertyChange) {
	if len(bag) == 0 && rec == nil {
		return
	}
	x.start("w:rPr")
	writeCodecProps(x, runCodecs, bag)
	if rec != nil {
		x.start("w:rPrChange", changeAttrs(rec)...)
		x.start("w:rPr")
		writeCodecProps(x, runCodecs, rec.Previous)
		x.end("w:rPr")
		x.end("w:rPrChange")
	}
	x.end("w:rPr")
}

func writeParagraphProps(x *xmlWriter, bag revision.Properties, rec *revision.PropertyChange) {
	if len(bag) == 0 && rec == nil {
		return
	}
	x.start("w:pPr")
	writeParagraphBag(x, bag)
	if rec != nil {
		x.start("w:pPrChange", changeAttrs(rec)...)
		x.start("w:pPr")
		writeParagraphBag(x, rec.Previous)
		x.end("w:pPr")
		x.end("w:pPrChange")
	}
	x.end("w:pPr")
}

func writeParagraphBag(x *xmlWriter, bag revision.Properties) {
	writeCodecProps(x, paragraphCodecs, bag)
	ind := measureAttrs(bag, [][2]string{
		{document.PropIndentLeft, "w:left"},
		{document.PropIndentRight, "w:right"},
		{document.PropIndentFirstLine, "w:firstLine"},
	})
	if len(ind) > 0 {
		x.empty("w:ind", ind...)
	}
	spacing := measureAttrs(bag, [][2]string{
		{document.PropSpacingBefore, "w:before"},
		{document.PropSpacingAfter, "w:after"},
		{document.PropLineSpacing, "w:line"},
	})
	if len(spacing) > 0 {
		x.empty("w:spacing", spacing...)
	}
}

// measureAttrs collects the int-valued bag entries named by pairs as
// attributes. Entries holding Unset markers are left to the unset attribute
// of the enclosing change element.
func measureAttrs(bag revision.Properties, pairs [][2]string) []xml.Attr {
	var out []xml.Attr
	for _, p := range pairs {
		if n, ok := bag[p[0]].(int); ok {
			out = append(out, attr(p[1], strconv.Itoa(n)))
		}
	}
	return out
}

func writeTableProps(x *xmlWriter, bag revision.Properties, rec *revision.PropertyChange) {
	if len(bag) == 0 && rec == nil {
		return
	}
	x.start("w:tblPr")
	writeCodecProps(x, tableCodecs, bag)
	if rec != nil {
		x.start("w:tblPrChange", changeAttrs(rec)...)
		x.start("w:tblPr")
		writeCodecProps(x, tableCodecs, rec.Previous)
		x.end("w:tblPr")
		x.end("w:tblPrChange")
	}
	x.end("w:tblPr")
}

func writeRowProps(x *xmlWriter, bag revision.Properties, rec *revision.PropertyChange) {
	if len(bag) == 0 && rec == nil {
		return
	}
	x.start("w:trPr")
	writeRowBag(x, bag)
	if rec != nil {
		x.start("w:trPrChange", changeAttrs(rec)...)
		x.start("w:trPr")
		writeRowBag(x, rec.Previous)
		x.end("w:trPr")
		x.end("w:trPrChange")
	}
	x.end("w:trPr")
}

func writeRowBag(x *xmlWriter, bag revision.Properties) {
	var height []xml.Attr
	if n, ok := bag[document.PropHeight].(int); ok {
		height = append(height, attr("w:val", strconv.Itoa(n)))
	}
	if s, ok := bag[document.PropHeightRule].(string); ok && s != "" {
		height = append(height, attr("w:hRule", s))
	}
	if len(height) > 0 {
		x.empty("w:trHeight", height...)
	}
	writeCodecProps(x, rowCodecs, bag)
}

func writeCellProps(x *xmlWriter, bag revision.Properties, rec *revision.PropertyChange, mark *revision.Revision) {
	if len(bag) == 0 && rec == nil && mark == nil {
		return
	}
	x.start("w:tcPr")
	writeCodecProps(x, cellCodecs, bag)
	if mark != nil {
		writeCellMark(x, mark)
	}
	if rec != nil {
		x.start("w:tcPrChange", changeAttrs(rec)...)
		x.start("w:tcPr")
		writeCodecProps(x, cellCodecs, rec.Previous)
		x.end("w:tcPr")
		x.end("w:tcPrChange")
	}
	x.end("w:tcPr")
}

func writeCellMark(x *xmlWriter, mark *revision.Revision) {
	attrs := revAttrs(mark)
	switch mark.Kind {
	case revision.KindCellInsert:
		x.empty("w:cellIns", attrs...)
	case revision.KindCellDelete:
		x.empty("w:cellDel", attrs...)
	case revision.KindCellMerge:
		if n, ok := mark.Updated[document.MarkAnchorRow].(int); ok {
			attrs = append(attrs, attr("w:anchorRow", strconv.Itoa(n)))
		}
		if n, ok := mark.Updated[document.MarkAnchorColumn].(int); ok {
			attrs = append(attrs, attr("w:anchorColumn", strconv.Itoa(n)))
		}
		x.empty("w:cellMerge", attrs...)
	}
}

func writeSectionProps(x *xmlWriter, bag revision.Properties, rec *revision.PropertyChange) {
	x.start("w:sectPr")
	writeSectionBag(x, bag)
	if rec != nil {
		x.start("w:sectPrChange", changeAttrs(rec)...)
		x.start("w:sectPr")
		writeSectionBag(x, rec.Previous)
		x.end("w:sectPr")
		x.end("w:sectPrChange")
	}
	x.end("w:sectPr")
}

func writeSectionBag(x *xmlWriter, bag revision.Properties) {
	size := measureAttrs(bag, [][2]string{
		{document.PropPageWidth, "w:w"},
		{document.PropPageHeight, "w:h"},
	})
	if s, ok := bag[document.PropOrientation].(string); ok && s != "" {
		size = append(size, attr("w:orient", s))
	}
	if len(size) > 0 {
		x.empty("w:pgSz", size...)
	}
	margins := measureAttrs(bag, [][2]string{
		{document.PropMarginTop, "w:top"},
		{document.PropMarginRight, "w:right"},
		{document.PropMarginBottom, "w:bottom"},
		{document.PropMarginLeft, "w:left"},
	})
	if len(margins) > 0 {
		x.empty("w:pgMar", margins...)
	}
}

// writeHyperlinkChange records a retarget directly in attributes; hyperlink
// state is three strings, so no nested property block is needed.
func writeHyperlinkChange(x *xmlWriter, rec *revision.PropertyChange) {
	attrs := changeAttrs(rec)
	if s, ok := rec.Previous[document.PropTarget].(string); ok && s != "" {
		attrs = append(attrs, attr("w:target", s))
	}
	if s, ok := rec.Previous[document.PropAnchor].(string); ok && s != "" {
		attrs = append(attrs, attr("w:anchor", s))
	}
	if s, ok := rec.Previous[document.PropTooltip].(string); ok && s != "" {
		attrs = append(attrs, attr("w:tooltip", s))
	}
	x.empty("w:hlChange", attrs...)
}

// parseIndent and parseSpacing fold the grouped paragraph measurement
// elements back into their bag names.
func parseParagraphSpecial(dec *xml.Decoder, se xml.StartElement, bag revision.Properties) (bool, error) {
	switch se.Name.Local {
	case "ind":
		if n, ok := intAttr(se, "left"); ok {
			bag[document.PropIndentLeft] = n
		}
		if n, ok := intAttr(se, "right"); ok {
			bag[document.PropIndentRight] = n
		}
		if n, ok := intAttr(se, "firstLine"); ok {
			bag[document.PropIndentFirstLine] = n
		}
		return true, dec.Skip()
	case "spacing":
		if n, ok := intAttr(se, "before"); ok {
			bag[document.PropSpacingBefore] = n
		}
		if n, ok := intAttr(se, "after"); ok {
			bag[document.PropSpacingAfter] = n
		}
		if n, ok := intAttr(se, "line"); ok {
			bag[document.PropLineSpacing] = n
		}
		return true, dec.Skip()
	}
	return false, nil
}

func parseRowSpecial(dec *xml.Decoder, se xml.StartElement, bag revision.Properties) (bool, error) {
	if se.Name.Local != "trHeight" {
		return false, nil
	}
	if n, ok := intAttr(se, "val"); ok {
		bag[document.PropHeight] = n
	}
	if s := attrValue(se, "hRule"); s != "" {
		bag[document.PropHeightRule] = s
	}
	return true, dec.Skip()
}

func parseSectionSpecial(dec *xml.Decoder, se xml.StartElement, bag revision.Properties) (bool, error) {
	switch se.Name.Local {
	case "pgSz":
		if n, ok := intAttr(se, "w"); ok {
			bag[document.PropPageWidth] = n
		}
		if n, ok := intAttr(se, "h"); ok {
			bag[document.PropPageHeight] = n
		}
		if s := attrValue(se, "orient"); s != "" {
			bag[document.PropOrientation] = s
		}
		return true, dec.Skip()
	case "pgMar":
		if n, ok := intAttr(se, "top"); ok {
			bag[document.PropMarginTop] = n
		}
		if n, ok := intAttr(se, "right"); ok {
			bag[document.PropMarginRight] = n
		}
		if n, ok := intAttr(se, "bottom"); ok {
			bag[document.PropMarginBottom] = n
		}
		if n, ok := intAttr(se, "left"); ok {
			bag[document.PropMarginLeft] = n
		}
		return true, dec.Skip()
	}
	return false, nil
}
