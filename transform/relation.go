package transform

import (
	"strings"

	"github.com/knakk/rdf"

	"github.com/c360studio/semtable/tabular"
)

// deferredLink is a relation whose target key was not in the index when
// its row was processed.
type deferredLink struct {
	subj rdf.IRI
	pred rdf.IRI
	key  string
}

// resolveRelation links a row to other rows by primary-key value. Keys
// missing from the index are buffered for one retry after the full row
// pass.
func (e *Engine) resolveRelation(subj rdf.IRI, cell, sep string, r *relationPlan) {
	for _, v := range tabular.SplitCell(cell, sep) {
		key := strings.TrimSpace(v)
		if obj, ok := e.index[key]; ok {
			e.g.Add(rdf.Triple{Subj: subj, Pred: r.pred, Obj: obj})
		} else {
			e.deferred = append(e.deferred, deferredLink{subj: subj, pred: r.pred, key: key})
		}
	}
}

// flushDeferred retries buffered relation keys once. Keys still missing
// are dropped and counted.
func (e *Engine) flushDeferred() {
	dropped := 0
	for _, d := range e.deferred {
		if obj, ok := e.index[d.key]; ok {
			e.g.Add(rdf.Triple{Subj: d.subj, Pred: d.pred, Obj: obj})
		} else {
			dropped++
		}
	}
	e.deferred = nil
	if dropped > 0 {
		e.warnings.addf("%d relation value(s) matched no primary key and were dropped", dropped)
	}
}
