package graph

import (
	"errors"
	"fmt"
	"strings"
)

// Format identifies an output serialization.
type Format string

const (
	// FormatTurtle produces Turtle (.ttl) output.
	FormatTurtle Format = "turtle"

	// FormatRDFXML produces RDF/XML (.xml) output.
	FormatRDFXML Format = "xml"

	// FormatJSONLD produces JSON-LD (.json-ld) output.
	FormatJSONLD Format = "json-ld"

	// FormatNTriples produces N-Triples (.nt) output.
	FormatNTriples Format = "nt"
)

// ErrUnsupportedFormat reports a format identifier outside the registry.
var ErrUnsupportedFormat = errors.New("unsupported format")

// ParseFormat resolves a format identifier or one of its aliases,
// case-insensitively.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "turtle", "ttl":
		return FormatTurtle, nil
	case "xml", "rdfxml":
		return FormatRDFXML, nil
	case "json-ld", "jsonld":
		return FormatJSONLD, nil
	case "nt", "ntriples":
		return FormatNTriples, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// FormatInfo provides metadata about an output format.
type FormatInfo struct {
	// Name is the canonical format identifier.
	Name Format

	// MIMEType is the standard MIME type.
	MIMEType string

	// Extension is the output file extension (with dot).
	Extension string

	// Description describes the format.
	Description string
}

// FormatRegistry contains metadata for all supported formats.
var FormatRegistry = map[Format]FormatInfo{
	FormatTurtle: {
		Name:        FormatTurtle,
		MIMEType:    "text/turtle",
		Extension:   ".ttl",
		Description: "Turtle - Terse RDF Triple Language",
	},
	FormatRDFXML: {
		Name:        FormatRDFXML,
		MIMEType:    "application/rdf+xml",
		Extension:   ".xml",
		Description: "RDF/XML - XML syntax for RDF",
	},
	FormatJSONLD: {
		Name:        FormatJSONLD,
		MIMEType:    "application/ld+json",
		Extension:   ".json-ld",
		Description: "JSON-LD - JSON for Linked Data",
	},
	FormatNTriples: {
		Name:        FormatNTriples,
		MIMEType:    "application/n-triples",
		Extension:   ".nt",
		Description: "N-Triples - Line-based RDF format",
	},
}

// GetFormatInfo returns metadata for a format.
func GetFormatInfo(format Format) (FormatInfo, bool) {
	info, ok := FormatRegistry[format]
	return info, ok
}

// Extension returns the output file extension for the format, with dot.
func (f Format) Extension() string {
	return FormatRegistry[f].Extension
}
