package graph

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"sort"
	"strings"

	"github.com/knakk/rdf"

	"github.com/c360studio/semtable/vocabulary"
)

// toRDFXML serializes the graph as RDF/XML. Every predicate must be
// expressible as an XML qualified name: the IRI is split after its last
// "#" or "/" and the remainder must be a valid element name, otherwise
// serialization fails.
func (g *Graph) toRDFXML() ([]byte, error) {
	names := newXMLNames(g.namespaces)

	var body strings.Builder
	for _, group := range g.bySubject() {
		subj, ok := group[0].Subj.(rdf.IRI)
		if !ok {
			continue
		}
		body.WriteString(`  <rdf:Description rdf:about="` + xmlEscape(subj.String()) + "\">\n")

		for _, t := range group {
			qn, err := names.qname(t.Pred.String())
			if err != nil {
				return nil, err
			}
			switch obj := t.Obj.(type) {
			case rdf.IRI:
				body.WriteString(`    <` + qn + ` rdf:resource="` + xmlEscape(obj.String()) + "\"/>\n")
			case rdf.Literal:
				lex, lang, datatype := literalParts(obj)
				switch {
				case lang != "":
					body.WriteString(`    <` + qn + ` xml:lang="` + xmlEscape(lang) + `">` + xmlEscape(lex) + `</` + qn + ">\n")
				case datatype != "":
					body.WriteString(`    <` + qn + ` rdf:datatype="` + xmlEscape(datatype) + `">` + xmlEscape(lex) + `</` + qn + ">\n")
				default:
					body.WriteString(`    <` + qn + `>` + xmlEscape(lex) + `</` + qn + ">\n")
				}
			}
		}
		body.WriteString("  </rdf:Description>\n")
	}

	var sb strings.Builder
	sb.WriteString(xml.Header)
	sb.WriteString("<rdf:RDF")
	for _, d := range names.declarations() {
		sb.WriteString("\n  xmlns:" + d.Prefix + `="` + xmlEscape(d.IRI) + `"`)
	}
	sb.WriteString(">\n")
	sb.WriteString(body.String())
	sb.WriteString("</rdf:RDF>\n")

	return []byte(sb.String()), nil
}

// xmlNames assigns QName prefixes to predicate namespaces, reusing
// bound prefixes where possible and synthesizing ns1, ns2, … for the
// rest. The rdf prefix is always reserved.
type xmlNames struct {
	bound       map[string]string // namespace → bound prefix
	byNamespace map[string]string // namespace → assigned prefix
	byPrefix    map[string]string // assigned prefix → namespace
	synth       int
}

func newXMLNames(bound []Namespace) *xmlNames {
	n := &xmlNames{
		bound:       make(map[string]string),
		byNamespace: make(map[string]string),
		byPrefix:    make(map[string]string),
	}
	for _, ns := range bound {
		if ns.Prefix == "" || ns.IRI == "" {
			continue
		}
		n.bound[ns.IRI] = ns.Prefix
	}
	n.byNamespace[vocabulary.RDFNamespace] = "rdf"
	n.byPrefix["rdf"] = vocabulary.RDFNamespace
	return n
}

// qname renders a predicate IRI as prefix:local.
func (n *xmlNames) qname(iri string) (string, error) {
	ns, local, ok := splitXMLName(iri)
	if !ok {
		return "", fmt.Errorf("cannot express predicate %q as an XML qualified name", iri)
	}
	return n.prefixFor(ns) + ":" + local, nil
}

// prefixFor returns the output prefix for a namespace, assigning one on
// first use.
func (n *xmlNames) prefixFor(ns string) string {
	if p, ok := n.byNamespace[ns]; ok {
		return p
	}
	p, ok := n.bound[ns]
	if !ok || n.byPrefix[p] != "" {
		for {
			n.synth++
			p = fmt.Sprintf("ns%d", n.synth)
			if n.byPrefix[p] == "" {
				break
			}
		}
	}
	n.byNamespace[ns] = p
	n.byPrefix[p] = ns
	return p
}

// declarations lists every namespace the output uses, sorted by prefix.
func (n *xmlNames) declarations() []Namespace {
	out := make([]Namespace, 0, len(n.byPrefix))
	for p, ns := range n.byPrefix {
		out = append(out, Namespace{Prefix: p, IRI: ns})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Prefix < out[j].Prefix })
	return out
}

// splitXMLName splits an IRI after its last "#" or "/" and reports
// whether the remainder can serve as an XML element name.
func splitXMLName(iri string) (ns, local string, ok bool) {
	cut := strings.LastIndexAny(iri, "#/")
	if cut < 0 || cut == len(iri)-1 {
		return "", "", false
	}
	ns, local = iri[:cut+1], iri[cut+1:]
	if !validNCName(local) {
		return "", "", false
	}
	return ns, local, true
}

// validNCName checks the ASCII subset of the XML NCName production: a
// leading letter or underscore, then letters, digits, "-", "_" or ".".
func validNCName(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		case i > 0 && (c >= '0' && c <= '9' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return true
}

// xmlEscape escapes text for element content and attribute values.
func xmlEscape(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
