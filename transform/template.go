package transform

import (
	"strings"

	"github.com/knakk/rdf"

	"github.com/c360studio/semtable/identifier"
	"github.com/c360studio/semtable/tabular"
)

// expandTemplate emits the child entities one template column generates
// for one row: per source value a child IRI from the path template, its
// type assertions and literals, and the link (and optional inverse
// link) to the row subject.
func (e *Engine) expandTemplate(subj rdf.IRI, row int, t *templatePlan) {
	values := tabular.SplitCell(e.table.Cell(row, t.sourceColumn), t.sep)

	var ids []string
	if t.idColumn != "" {
		ids = tabular.SplitCell(e.table.Cell(row, t.idColumn), t.idSep)
	}

	misaligned := false
	for i, v := range values {
		if v == "" {
			continue
		}
		slug := identifier.Normalize(v)

		id := slug
		if t.idColumn != "" {
			if i < len(ids) && strings.TrimSpace(ids[i]) != "" {
				id = strings.TrimSpace(ids[i])
			} else {
				misaligned = true
			}
		}

		path := strings.NewReplacer(
			"{value}", v,
			"{safe_value}", slug,
			"{id}", id,
		).Replace(t.path)

		child, err := e.iri(e.entityBase + path)
		if err != nil {
			e.warnings.addf("row %d column %q: %v", row+1, t.sourceColumn, err)
			continue
		}

		for _, typ := range t.types {
			e.g.Add(rdf.Triple{Subj: child, Pred: e.terms.rdfType, Obj: typ})
		}
		for _, rule := range t.literals {
			e.emitTemplateLiteral(child, row, i, v, rule)
		}

		e.g.Add(rdf.Triple{Subj: subj, Pred: t.link, Obj: child})
		if t.inverse != nil {
			e.g.Add(rdf.Triple{Subj: child, Pred: *t.inverse, Obj: subj})
		}
	}

	if misaligned {
		e.warnings.addf("row %d column %q: id source misaligned with values, falling back to slugs", row+1, t.sourceColumn)
	}
}

// emitTemplateLiteral writes one child literal. Mode rules derive the
// text from the source value itself; cross-column rules read a sibling
// cell, aligned by index or taken whole. Child literals carry the
// configured language tag.
func (e *Engine) emitTemplateLiteral(child rdf.IRI, row, idx int, value string, rule literalRulePlan) {
	var out string
	switch {
	case rule.fromColumn == "":
		out = value
		if !rule.raw {
			out = identifier.Normalize(value)
		}
	case rule.matchByIndex:
		aux := tabular.SplitCell(e.table.Cell(row, rule.fromColumn), rule.sep)
		if idx >= len(aux) {
			return
		}
		out = strings.TrimSpace(aux[idx])
		if out == "" {
			return
		}
	default:
		out = strings.TrimSpace(e.table.Cell(row, rule.fromColumn))
		if out == "" {
			return
		}
	}

	lit, err := e.langLiteral(out)
	if err != nil {
		e.warnings.addf("row %d: %v", row+1, err)
		return
	}
	e.g.Add(rdf.Triple{Subj: child, Pred: rule.pred, Obj: lit})
}
