package graph

import (
	"fmt"
	"strings"

	"github.com/knakk/rdf"

	"github.com/c360studio/semtable/vocabulary"
)

// Serialize renders the graph in the given format.
func (g *Graph) Serialize(format Format) ([]byte, error) {
	switch format {
	case FormatTurtle:
		return g.toTurtle(), nil
	case FormatRDFXML:
		return g.toRDFXML()
	case FormatJSONLD:
		return g.toJSONLD()
	case FormatNTriples:
		return g.toNTriples(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// toNTriples emits one line per triple in insertion order.
func (g *Graph) toNTriples() []byte {
	var sb strings.Builder
	for _, t := range g.triples {
		sb.WriteString(t.Serialize(rdf.NTriples))
	}
	return []byte(sb.String())
}

// literalParts splits a literal into its lexical form, language tag and
// datatype IRI. The implicit xsd:string and rdf:langString datatypes
// come back empty.
func literalParts(l rdf.Literal) (lex, lang, datatype string) {
	lex = l.String()
	if lang = l.Lang(); lang != "" {
		return lex, lang, ""
	}
	dt := l.DataType.String()
	if dt == "" || dt == vocabulary.XsdString {
		return lex, "", ""
	}
	return lex, "", dt
}

// escapeLiteral escapes special characters in literal strings for
// Turtle output.
func escapeLiteral(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	s = strings.ReplaceAll(s, "\r", "\\r")
	s = strings.ReplaceAll(s, "\t", "\\t")
	return s
}
