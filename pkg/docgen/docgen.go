// Package docgen is the document-generation boundary for report exports.
// Reports hand over a header row plus data rows; a Generator turns them
// into a downloadable artifact.
package docgen

import "errors"

// ErrUnsupported is returned by generators for formats this deployment
// cannot produce. PDF rendering is delegated to an external collaborator
// and has no in-process implementation.
var ErrUnsupported = errors.New("docgen: format not supported")

// Document is a generated artifact ready to be served as a download.
type Document struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Table is the shape every report export reduces to.
type Table struct {
	// Name becomes the base of the download filename.
	Name    string
	Headers []string
	Rows    [][]string
}

// Generator produces a Document from a report table.
type Generator interface {
	Generate(t Table) (*Document, error)
}
