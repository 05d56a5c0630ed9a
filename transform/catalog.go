package transform

import (
	"fmt"
	"strings"

	"github.com/knakk/rdf"

	"github.com/c360studio/semtable/identifier"
	"github.com/c360studio/semtable/tabular"
)

// buildCatalogs emits one SKOS concept scheme per catalog column and
// one concept per distinct non-empty cell value, in first-appearance
// order. Concepts key on the whole trimmed cell; splitting only happens
// when rows are linked to them.
func (e *Engine) buildCatalogs() error {
	for _, col := range e.cfg.Catalogs {
		scheme, err := e.iri(e.colNS + identifier.Normalize(col))
		if err != nil {
			return fmt.Errorf("catalog column %q: %w", col, err)
		}
		label, err := e.langLiteral(col)
		if err != nil {
			return fmt.Errorf("catalog column %q: %w", col, err)
		}
		e.g.Add(rdf.Triple{Subj: scheme, Pred: e.terms.rdfType, Obj: e.terms.conceptScheme})
		e.g.Add(rdf.Triple{Subj: scheme, Pred: e.terms.rdfsLabel, Obj: label})

		valueBase := e.valNS + identifier.Normalize(col) + "/"
		seen := make(map[string]struct{})
		for i := 0; i < e.table.Len(); i++ {
			v := strings.TrimSpace(e.table.Cell(i, col))
			if v == "" {
				continue
			}
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}

			concept, err := e.iri(valueBase + identifier.Normalize(v))
			if err != nil {
				e.warnings.addf("catalog %q value %q: %v", col, v, err)
				continue
			}
			pref, err := e.langLiteral(v)
			if err != nil {
				e.warnings.addf("catalog %q value %q: %v", col, v, err)
				continue
			}
			e.g.Add(rdf.Triple{Subj: concept, Pred: e.terms.rdfType, Obj: e.terms.concept})
			e.g.Add(rdf.Triple{Subj: concept, Pred: e.terms.prefLabel, Obj: pref})
			e.g.Add(rdf.Triple{Subj: concept, Pred: e.terms.inScheme, Obj: scheme})
		}
	}
	return nil
}

// linkCatalog links a row subject to the concepts named in the cell,
// one per split value.
func (e *Engine) linkCatalog(subj rdf.IRI, cell, sep string, c *catalogPlan) {
	for _, v := range tabular.SplitCell(cell, sep) {
		concept, err := e.iri(c.valueBase + identifier.Normalize(v))
		if err != nil {
			e.warnings.addf("catalog value %q: %v", v, err)
			continue
		}
		e.g.Add(rdf.Triple{Subj: subj, Pred: c.pred, Obj: concept})
	}
}
