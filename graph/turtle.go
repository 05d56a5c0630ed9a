package graph

import (
	"fmt"
	"sort"
	"strings"

	"github.com/knakk/rdf"

	"github.com/c360studio/semtable/vocabulary"
)

// toTurtle serializes the graph as Turtle: a sorted @prefix header
// followed by one block per subject in first-seen order.
func (g *Graph) toTurtle() []byte {
	var sb strings.Builder

	names := make([]string, 0, len(g.namespaces))
	for _, ns := range g.namespaces {
		names = append(names, ns.Prefix)
	}
	sort.Strings(names)
	for _, name := range names {
		sb.WriteString(fmt.Sprintf("@prefix %s: <%s> .\n", name, g.namespaces[g.byPrefix[name]].IRI))
	}
	sb.WriteString("\n")

	for _, group := range g.bySubject() {
		g.writeSubjectTurtle(&sb, group)
		sb.WriteString("\n")
	}

	return []byte(sb.String())
}

// writeSubjectTurtle writes one subject block, predicates separated by
// ";" and the block closed with ".".
func (g *Graph) writeSubjectTurtle(sb *strings.Builder, triples []rdf.Triple) {
	sb.WriteString(g.turtleTerm(triples[0].Subj))
	sb.WriteString("\n")

	for i, t := range triples {
		pred := g.turtleTerm(t.Pred)
		if t.Pred.String() == vocabulary.RdfType {
			pred = "a"
		}
		terminator := " ;"
		if i == len(triples)-1 {
			terminator = " ."
		}
		sb.WriteString(fmt.Sprintf("    %s %s%s\n", pred, g.turtleTerm(t.Obj), terminator))
	}
}

// turtleTerm renders a term in Turtle syntax, compacting IRIs against
// the bound namespaces where the local part allows it.
func (g *Graph) turtleTerm(term rdf.Term) string {
	switch term.Type() {
	case rdf.TermIRI:
		return g.compactIRI(term.String())
	case rdf.TermLiteral:
		lex, lang, datatype := literalParts(term.(rdf.Literal))
		quoted := `"` + escapeLiteral(lex) + `"`
		switch {
		case lang != "":
			return quoted + "@" + lang
		case datatype != "":
			return quoted + "^^" + g.compactIRI(datatype)
		default:
			return quoted
		}
	default:
		return term.Serialize(rdf.NTriples)
	}
}

// compactIRI rewrites an IRI as prefix:local when a bound namespace
// matches and the local part is a safe prefixed name. The longest
// namespace wins; later bindings win ties.
func (g *Graph) compactIRI(iri string) string {
	best := -1
	for i, ns := range g.namespaces {
		if ns.IRI == "" || !strings.HasPrefix(iri, ns.IRI) {
			continue
		}
		if best == -1 || len(ns.IRI) >= len(g.namespaces[best].IRI) {
			best = i
		}
	}
	if best >= 0 {
		local := iri[len(g.namespaces[best].IRI):]
		if safeLocal(local) {
			return g.namespaces[best].Prefix + ":" + local
		}
	}
	return "<" + iri + ">"
}

// safeLocal reports whether a local part can appear in a prefixed name
// without escaping: letters, digits, "_", and interior "-" or "." with
// no trailing ".".
func safeLocal(local string) bool {
	for i := 0; i < len(local); i++ {
		c := local[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '_':
		case c == '-', c == '.':
			if i == 0 || (c == '.' && i == len(local)-1) {
				return false
			}
		default:
			return false
		}
	}
	return true
}
