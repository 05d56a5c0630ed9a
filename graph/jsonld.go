package graph

import (
	"encoding/json"

	"github.com/knakk/rdf"

	"github.com/c360studio/semtable/vocabulary"
)

// jsonldDocument is the emitted JSON-LD shape: a prefix @context plus a
// flat @graph of node objects.
type jsonldDocument struct {
	Context map[string]string `json:"@context"`
	Graph   []jsonldNode      `json:"@graph"`
}

// jsonldNode is one resource. Property keys are full predicate IRIs; a
// predicate with a single value marshals bare, repeated values marshal
// as an array.
type jsonldNode struct {
	id         string
	types      []string
	properties map[string][]any
}

func (n jsonldNode) MarshalJSON() ([]byte, error) {
	m := make(map[string]any, len(n.properties)+2)
	m["@id"] = n.id
	if len(n.types) > 0 {
		m["@type"] = n.types
	}
	for k, vs := range n.properties {
		if len(vs) == 1 {
			m[k] = vs[0]
		} else {
			m[k] = vs
		}
	}
	return json.Marshal(m)
}

// toJSONLD serializes the graph as JSON-LD, nodes in first-seen subject
// order.
func (g *Graph) toJSONLD() ([]byte, error) {
	doc := jsonldDocument{
		Context: make(map[string]string, len(g.namespaces)),
		Graph:   make([]jsonldNode, 0),
	}
	for _, ns := range g.namespaces {
		doc.Context[ns.Prefix] = ns.IRI
	}

	for _, group := range g.bySubject() {
		node := jsonldNode{
			id:         group[0].Subj.String(),
			properties: make(map[string][]any),
		}
		for _, t := range group {
			pred := t.Pred.String()
			if pred == vocabulary.RdfType {
				if iri, ok := t.Obj.(rdf.IRI); ok {
					node.types = append(node.types, iri.String())
					continue
				}
			}
			node.properties[pred] = append(node.properties[pred], jsonldValue(t.Obj))
		}
		doc.Graph = append(doc.Graph, node)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// jsonldValue renders one object term: IRIs become @id references,
// literals keep their language or datatype.
func jsonldValue(obj rdf.Object) any {
	switch o := obj.(type) {
	case rdf.IRI:
		return map[string]string{"@id": o.String()}
	case rdf.Literal:
		lex, lang, datatype := literalParts(o)
		switch {
		case lang != "":
			return map[string]string{"@value": lex, "@language": lang}
		case datatype != "":
			return map[string]string{"@value": lex, "@type": datatype}
		default:
			return lex
		}
	default:
		return obj.String()
	}
}
