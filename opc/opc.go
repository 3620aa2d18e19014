package opc

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/klauspost/compress/flate"
)

const (
	contentTypesName = "[Content_Types].xml"
	typesNamespace   = "http://schemas.openxmlformats.org/package/2006/content-types"

	// RelationshipType is the content type of .rels parts, registered as
	// an extension default rather than per-part overrides.
	RelationshipType = "application/vnd.openxmlformats-package.relationships+xml"
)

var (
	// ErrPartName reports an invalid or empty part name.
	ErrPartName = errors.New("opc: invalid part name")

	// ErrNoContentTypes reports an archive missing the content-types
	// stream.
	ErrNoContentTypes = errors.New("opc: missing [Content_Types].xml")

	// ErrPartNotFound reports a lookup for a part the package lacks.
	ErrPartNotFound = errors.New("opc: part not found")
)

// Part is one named stream inside a package.
type Part struct {
	// Name is the slash-separated part name without a leading slash,
	// such as "word/document.xml".
	Name string

	// ContentType types the part for consumers.
	ContentType string

	// Data is the part's payload.
	Data []byte
}

// Package is an ordered collection of parts. Parts keep the order they were
// added in, which fixes the archive layout across saves.
type Package struct {
	parts map[string]*Part
	order []string
}

var _ io.WriterTo = (*Package)(nil)

// New creates an empty package.
func New() *Package {
	return &Package{parts: make(map[string]*Part)}
}

// Add stores a part, replacing any part with the same name in place.
func (p *Package) Add(name, contentType string, data []byte) (*Part, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	part := &Part{Name: name, ContentType: contentType, Data: data}
	if _, ok := p.parts[name]; !ok {
		p.order = append(p.order, name)
	}
	p.parts[name] = part
	return part, nil
}

// Part returns the named part.
func (p *Package) Part(name string) (*Part, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	part, ok := p.parts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrPartNotFound, name)
	}
	return part, nil
}

// Parts returns the parts in insertion order.
func (p *Package) Parts() []*Part {
	out := make([]*Part, 0, len(p.order))
	for _, name := range p.order {
		out = append(out, p.parts[name])
	}
	return out
}

// Len returns the number of parts.
func (p *Package) Len() int { return len(p.order) }

func cleanName(name string) (string, error) {
	name = strings.TrimPrefix(name, "/")
	if name == "" || name == contentTypesName {
		return "", fmt.Errorf("%w: %q", ErrPartName, name)
	}
	if cleaned := path.Clean(name); cleaned != name {
		return "", fmt.Errorf("%w: %q", ErrPartName, name)
	}
	return name, nil
}

// typesXML is the wire form of the content-types stream.
type typesXML struct {
	XMLName   xml.Name      `xml:"Types"`
	Namespace string        `xml:"xmlns,attr"`
	Defaults  []defaultXML  `xml:"Default"`
	Overrides []overrideXML `xml:"Override"`
}

type defaultXML struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type overrideXML struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

func (p *Package) contentTypes() ([]byte, error) {
	types := typesXML{
		Namespace: typesNamespace,
		Defaults: []defaultXML{
			{Extension: "rels", ContentType: RelationshipType},
			{Extension: "xml", ContentType: "application/xml"},
		},
	}
	for _, part := range p.Parts() {
		if strings.HasSuffix(part.Name, ".rels") {
			continue
		}
		types.Overrides = append(types.Overrides, overrideXML{
			PartName:    "/" + part.Name,
			ContentType: part.ContentType,
		})
	}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	if err := enc.Encode(types); err != nil {
		return nil, fmt.Errorf("opc: encode content types: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteTo writes the package as a zip archive: the content-types stream
// first, then every part in insertion order.
func (p *Package) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	zw := zip.NewWriter(cw)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.BestSpeed)
	})

	ct, err := p.contentTypes()
	if err != nil {
		return cw.n, err
	}
	if err := writeEntry(zw, contentTypesName, ct); err != nil {
		return cw.n, err
	}
	for _, part := range p.Parts() {
		if err := writeEntry(zw, part.Name, part.Data); err != nil {
			return cw.n, err
		}
	}
	if err := zw.Close(); err != nil {
		return cw.n, fmt.Errorf("opc: close archive: %w", err)
	}
	return cw.n, nil
}

func writeEntry(zw *zip.Writer, name string, data []byte) error {
	f, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return fmt.Errorf("opc: create %s: %w", name, err)
	}
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("opc: write %s: %w", name, err)
	}
	return nil
}

// ReadFrom opens a package from a zip archive. Part content types come from
// the content-types stream; parts without an override fall back to the
// extension defaults.
func ReadFrom(r io.ReaderAt, size int64) (*Package, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("opc: open archive: %w", err)
	}
	zr.RegisterDecompressor(zip.Deflate, func(in io.Reader) io.ReadCloser {
		return flate.NewReader(in)
	})

	var types typesXML
	defaults := make(map[string]string)
	overrides := make(map[string]string)
	found := false
	for _, f := range zr.File {
		if f.Name != contentTypesName {
			continue
		}
		data, err := readEntry(f)
		if err != nil {
			return nil, err
		}
		if err := xml.Unmarshal(data, &types); err != nil {
			return nil, fmt.Errorf("opc: parse content types: %w", err)
		}
		for _, d := range types.Defaults {
			defaults[strings.ToLower(d.Extension)] = d.ContentType
		}
		for _, o := range types.Overrides {
			overrides[strings.TrimPrefix(o.PartName, "/")] = o.ContentType
		}
		found = true
		break
	}
	if !found {
		return nil, ErrNoContentTypes
	}

	pkg := New()
	names := make([]string, 0, len(zr.File))
	byName := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		if f.Name == contentTypesName || strings.HasSuffix(f.Name, "/") {
			continue
		}
		names = append(names, f.Name)
		byName[f.Name] = f
	}
	sort.Strings(names)

	for _, name := range names {
		data, err := readEntry(byName[name])
		if err != nil {
			return nil, err
		}
		ct := overrides[name]
		if ct == "" {
			ext := strings.TrimPrefix(strings.ToLower(path.Ext(name)), ".")
			ct = defaults[ext]
		}
		if _, err := pkg.Add(name, ct, data); err != nil {
			return nil, err
		}
	}
	return pkg, nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opc: open %s: %w", f.Name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("opc: read %s: %w", f.Name, err)
	}
	return data, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
