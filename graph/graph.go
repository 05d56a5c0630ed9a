// Package graph accumulates RDF triples and serializes them to Turtle,
// RDF/XML, JSON-LD, or N-Triples.
package graph

import (
	"github.com/knakk/rdf"
)

// Namespace is a single prefix binding.
type Namespace struct {
	Prefix string
	IRI    string
}

// Graph is an append-only triple store with set semantics: adding a
// triple that is already present is a no-op, and triples keep the
// insertion order of their first occurrence.
type Graph struct {
	triples []rdf.Triple
	seen    map[string]struct{}

	namespaces []Namespace
	byPrefix   map[string]int
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		seen:     make(map[string]struct{}),
		byPrefix: make(map[string]int),
	}
}

// Bind registers a namespace under a prefix. Rebinding an existing
// prefix replaces its namespace but keeps the original position.
func (g *Graph) Bind(prefix, iri string) {
	if i, ok := g.byPrefix[prefix]; ok {
		g.namespaces[i].IRI = iri
		return
	}
	g.byPrefix[prefix] = len(g.namespaces)
	g.namespaces = append(g.namespaces, Namespace{Prefix: prefix, IRI: iri})
}

// Namespaces returns the bindings in bind order.
func (g *Graph) Namespaces() []Namespace {
	out := make([]Namespace, len(g.namespaces))
	copy(out, g.namespaces)
	return out
}

// Add appends a triple unless an identical one is already stored.
func (g *Graph) Add(t rdf.Triple) {
	key := t.Serialize(rdf.NTriples)
	if _, dup := g.seen[key]; dup {
		return
	}
	g.seen[key] = struct{}{}
	g.triples = append(g.triples, t)
}

// Triples returns the stored triples in insertion order. The slice is
// shared; callers must not modify it.
func (g *Graph) Triples() []rdf.Triple {
	return g.triples
}

// Len reports the number of distinct triples.
func (g *Graph) Len() int {
	return len(g.triples)
}

// bySubject groups triples by subject, keeping the first-seen order of
// subjects and the insertion order of triples within each group.
func (g *Graph) bySubject() [][]rdf.Triple {
	groups := make(map[string]int)
	var out [][]rdf.Triple
	for _, t := range g.triples {
		key := t.Subj.Serialize(rdf.NTriples)
		i, ok := groups[key]
		if !ok {
			i = len(out)
			groups[key] = i
			out = append(out, nil)
		}
		out[i] = append(out[i], t)
	}
	return out
}
