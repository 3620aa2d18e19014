// Package opc implements the Open Packaging Conventions container: a zip
// archive of typed parts plus the [Content_Types].xml stream that types them.
//
// A Package is an ordered collection of parts. Part names are absolute
// zip-style paths without a leading slash ("word/document.xml"); each part
// carries a content type that is declared as an override in the content-types
// stream. WriteTo emits parts in sorted name order with fixed headers, so
// writing the same package twice produces identical bytes.
//
//	pkg := opc.New()
//	pkg.Add("word/document.xml", documentType, body)
//	_, err := pkg.WriteTo(w)
//
// ReadFrom is the inverse; it requires the content-types stream and rejects
// archives without one.
package opc
