package ooxml

import "encoding/xml"

// Part names inside the package. The main document part is located through
// the package relationships on load; these are the names the writer uses.
const (
	documentPartName = "word/document.xml"
	stylesPartName   = "word/styles.xml"
	settingsPartName = "word/settings.xml"
	corePartName     = "docProps/core.xml"
	appPartName      = "docProps/app.xml"
	rootRelsName     = "_rels/.rels"
	documentRelsName = "word/_rels/document.xml.rels"
)

// Content types of the parts the writer emits.
const (
	documentContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	stylesContentType   = "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"
	settingsContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.settings+xml"
	coreContentType     = "application/vnd.openxmlformats-package.core-properties+xml"
	appContentType      = "application/vnd.openxmlformats-officedocument.extended-properties+xml"
)

// Namespaces referenced by the emitted markup.
const (
	nsMain     = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsDocRel   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsPkgRel   = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsWord2012 = "http://schemas.microsoft.com/office/word/2012/wordml"
	nsCoreProp = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsDC       = "http://purl.org/dc/elements/1.1/"
	nsDCTerms  = "http://purl.org/dc/terms/"
	nsXSI      = "http://www.w3.org/2001/XMLSchema-instance"
	nsExtProp  = "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"
)

// Relationship types used by the root and document relationship parts.
const (
	relTypeDocument  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relTypeCore      = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relTypeApp       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"
	relTypeStyles    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	relTypeSettings  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/settings"
	relTypeHyperlink = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
)

type relationshipsXML struct {
	XMLName   xml.Name          `xml:"Relationships"`
	Namespace string            `xml:"xmlns,attr"`
	List      []relationshipXML `xml:"Relationship"`
}

type relationshipXML struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

func marshalRelationships(list []relationshipXML) ([]byte, error) {
	out, err := xml.Marshal(relationshipsXML{Namespace: nsPkgRel, List: list})
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}

func unmarshalRelationships(data []byte) (map[string]relationshipXML, error) {
	var rels relationshipsXML
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil, err
	}
	out := make(map[string]relationshipXML, len(rels.List))
	for _, rel := range rels.List {
		out[rel.ID] = rel
	}
	return out, nil
}
