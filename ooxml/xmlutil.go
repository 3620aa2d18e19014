package ooxml

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"
	"time"
)

// xmlWriter emits tokens through an xml.Encoder and latches the first error,
// so part builders can chain calls without checking each one.
type xmlWriter struct {
	enc *xml.Encoder
	err error
}

func newXMLWriter(w io.Writer) *xmlWriter {
	return &xmlWriter{enc: xml.NewEncoder(w)}
}

func (x *xmlWriter) start(name string, attrs ...xml.Attr) {
	if x.err != nil {
		return
	}
	x.err = x.enc.EncodeToken(xml.StartElement{Name: xml.Name{Local: name}, Attr: attrs})
}

func (x *xmlWriter) end(name string) {
	if x.err != nil {
		return
	}
	x.err = x.enc.EncodeToken(xml.EndElement{Name: xml.Name{Local: name}})
}

func (x *xmlWriter) empty(name string, attrs ...xml.Attr) {
	x.start(name, attrs...)
	x.end(name)
}

func (x *xmlWriter) text(s string) {
	if x.err != nil {
		return
	}
	x.err = x.enc.EncodeToken(xml.CharData(s))
}

// element writes a child element holding only character data. Empty text is
// skipped entirely.
func (x *xmlWriter) element(name, text string, attrs ...xml.Attr) {
	if text == "" {
		return
	}
	x.start(name, attrs...)
	x.text(text)
	x.end(name)
}

func (x *xmlWriter) flush() error {
	if x.err != nil {
		return x.err
	}
	return x.enc.Flush()
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

// attrValue returns the value of the attribute with the given local name,
// ignoring its namespace. Part markup never reuses a local name for two
// attributes on one element.
func attrValue(se xml.StartElement, local string) string {
	for _, a := range se.Attr {
		if a.Name.Local == local {
			return a.Value
		}
	}
	return ""
}

func intAttr(se xml.StartElement, local string) (int, bool) {
	n, err := strconv.Atoi(attrValue(se, local))
	if err != nil {
		return 0, false
	}
	return n, true
}

// formatDate renders a revision timestamp the way the markup expects it:
// UTC, second precision.
func formatDate(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(time.RFC3339)
}

// parseDate reads a markup timestamp, returning the zero time for anything
// unparseable rather than failing the load.
func parseDate(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, " ")
}

func splitInts(s string) []int {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil
	}
	out := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			continue
		}
		out = append(out, n)
	}
	return out
}

// textContent collects the character data of the element the decoder just
// opened, consuming through its end tag. Nested elements are skipped, so the
// next end token at this depth closes the element.
func textContent(dec *xml.Decoder) (string, error) {
	var sb strings.Builder
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.StartElement:
			if err := dec.Skip(); err != nil {
				return "", err
			}
		case xml.EndElement:
			return sb.String(), nil
		}
	}
}
