// Package transform implements the mapping runtime: it takes a loaded
// table and a mapping configuration and emits the corresponding RDF
// graph, row by row.
package transform

import (
	"fmt"
	"sort"
	"strings"

	"github.com/knakk/rdf"

	"github.com/c360studio/semtable/config"
	"github.com/c360studio/semtable/graph"
	"github.com/c360studio/semtable/tabular"
	"github.com/c360studio/semtable/vocabulary"
)

// Engine turns one table into a graph according to a mapping. The
// prefix table, default classes and per-column dispatch plans are
// resolved once at construction; row processing never re-reads the
// configuration.
type Engine struct {
	cfg   *config.Mapping
	table *tabular.Table

	prefixes *vocabulary.Prefixes
	g        *graph.Graph

	base       string
	entityBase string
	colNS      string
	valNS      string
	lang       string

	terms     coreTerms
	datatypes map[string]rdf.IRI
	classes   []rdf.IRI
	plans     []columnPlan

	index       map[string]rdf.IRI
	deferred    []deferredLink
	warnings    warningList
	rowsEmitted int
}

// coreTerms holds the fixed vocabulary IRIs the engine emits.
type coreTerms struct {
	rdfType       rdf.IRI
	rdfsLabel     rdf.IRI
	conceptScheme rdf.IRI
	concept       rdf.IRI
	prefLabel     rdf.IRI
	inScheme      rdf.IRI
}

func newCoreTerms() (coreTerms, error) {
	var t coreTerms
	for _, b := range []struct {
		dst *rdf.IRI
		iri string
	}{
		{&t.rdfType, vocabulary.RdfType},
		{&t.rdfsLabel, vocabulary.RdfsLabel},
		{&t.conceptScheme, vocabulary.SkosConceptScheme},
		{&t.concept, vocabulary.SkosConcept},
		{&t.prefLabel, vocabulary.SkosPrefLabel},
		{&t.inScheme, vocabulary.SkosInScheme},
	} {
		u, err := rdf.NewIRI(b.iri)
		if err != nil {
			return t, err
		}
		*b.dst = u
	}
	return t, nil
}

// New builds an engine for one table under one mapping. It validates
// the mapping against the table header and fails before any output on
// a missing primary-key or catalog column, an invalid class or
// predicate IRI, or a malformed language tag.
func New(cfg *config.Mapping, table *tabular.Table) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !table.HasColumn(cfg.PrimaryKey) {
		return nil, fmt.Errorf("primary key column %q not found", cfg.PrimaryKey)
	}
	for _, col := range cfg.Catalogs {
		if !table.HasColumn(col) {
			return nil, fmt.Errorf("catalog column %q not found", col)
		}
	}
	if cfg.Lang != "" {
		if _, err := rdf.NewLangLiteral("x", cfg.Lang); err != nil {
			return nil, fmt.Errorf("language tag %q: %w", cfg.Lang, err)
		}
	}

	e := &Engine{
		cfg:        cfg,
		table:      table,
		base:       cfg.Base(),
		entityBase: cfg.EntityBase(),
		lang:       cfg.Lang,
		g:          graph.New(),
	}
	e.colNS = e.base + "column/"
	e.valNS = e.base + "value/"

	var err error
	if e.terms, err = newCoreTerms(); err != nil {
		return nil, err
	}
	if e.datatypes, err = datatypeTerms(); err != nil {
		return nil, err
	}

	e.prefixes = buildPrefixes(cfg, e.base)
	e.prefixes.Each(e.g.Bind)

	for _, c := range cfg.Classes {
		u, err := e.expandIRI(c)
		if err != nil {
			return nil, fmt.Errorf("class %q: %w", c, err)
		}
		e.classes = append(e.classes, u)
	}

	if err := e.buildPlans(); err != nil {
		return nil, err
	}
	return e, nil
}

// buildPrefixes assembles the run's prefix table: built-in defaults,
// then the user's prefixes, then the internal rec/col/val namespaces,
// which win over anything the user bound to those names.
func buildPrefixes(cfg *config.Mapping, base string) *vocabulary.Prefixes {
	merged := config.DefaultPrefixes()
	for k, v := range cfg.Prefixes {
		merged[k] = v
	}
	names := make([]string, 0, len(merged))
	for k := range merged {
		names = append(names, k)
	}
	sort.Strings(names)

	p := vocabulary.NewPrefixes()
	for _, k := range names {
		p.Bind(k, merged[k])
	}
	p.Bind("rec", base)
	p.Bind("col", base+"column/")
	p.Bind("val", base+"value/")
	return p
}

// Run executes the pipeline: primary-key index, catalogs, every row,
// then the deferred relation pass. The returned graph is ready for
// serialization.
func (e *Engine) Run() (*graph.Graph, error) {
	e.buildIndex()
	if err := e.buildCatalogs(); err != nil {
		return nil, err
	}
	for i := 0; i < e.table.Len(); i++ {
		e.transformRow(i)
	}
	e.flushDeferred()
	return e.g, nil
}

// transformRow emits all triples for one row. Rows with an empty
// primary key are skipped.
func (e *Engine) transformRow(row int) {
	key := strings.TrimSpace(e.table.Cell(row, e.cfg.PrimaryKey))
	if key == "" {
		return
	}
	subj, ok := e.index[key]
	if !ok {
		return
	}
	e.rowsEmitted++

	for _, class := range e.classes {
		e.g.Add(rdf.Triple{Subj: subj, Pred: e.terms.rdfType, Obj: class})
	}

	for _, plan := range e.plans {
		if plan.kind == planSkip {
			continue
		}
		cell := e.table.Cell(row, plan.column)
		if strings.TrimSpace(cell) == "" {
			continue
		}
		switch plan.kind {
		case planTemplate:
			e.expandTemplate(subj, row, plan.template)
		case planCatalog:
			e.linkCatalog(subj, cell, plan.sep, plan.catalog)
		case planRelation:
			e.resolveRelation(subj, cell, plan.sep, plan.relation)
		case planLiteral:
			e.emitLiterals(subj, row, cell, plan)
		}
	}
}

// emitLiterals writes one literal per split value of a plain column.
// Plain-column literals carry a datatype when one is configured or
// inferred, and never a language tag.
func (e *Engine) emitLiterals(subj rdf.IRI, row int, cell string, plan columnPlan) {
	for _, v := range tabular.SplitCell(cell, plan.sep) {
		lit, err := e.typedLiteral(v, plan.literal)
		if err != nil {
			e.warnings.addf("row %d column %q: %v", row+1, plan.column, err)
			continue
		}
		e.g.Add(rdf.Triple{Subj: subj, Pred: plan.literal.pred, Obj: lit})
	}
}

// typedLiteral applies the column's datatype override or the inferred
// datatype; values with neither stay plain literals.
func (e *Engine) typedLiteral(v string, plan *literalPlan) (rdf.Literal, error) {
	if plan.datatype != nil {
		return rdf.NewTypedLiteral(v, *plan.datatype), nil
	}
	if dt := InferDatatype(v); dt != "" {
		return rdf.NewTypedLiteral(v, e.datatypes[dt]), nil
	}
	return rdf.NewLiteral(v)
}

// langLiteral tags a literal with the configured language, or leaves it
// plain when no language is set.
func (e *Engine) langLiteral(v string) (rdf.Literal, error) {
	if e.lang == "" {
		return rdf.NewLiteral(v)
	}
	return rdf.NewLangLiteral(v, e.lang)
}

// iri builds an IRI term, wrapping the validation error with the
// offending value.
func (e *Engine) iri(s string) (rdf.IRI, error) {
	u, err := rdf.NewIRI(s)
	if err != nil {
		return rdf.IRI{}, fmt.Errorf("invalid IRI %q: %w", s, err)
	}
	return u, nil
}

// expandIRI resolves a compact identifier and builds the IRI term.
func (e *Engine) expandIRI(curie string) (rdf.IRI, error) {
	return e.iri(e.prefixes.Expand(curie))
}

// Rows reports how many rows produced triples.
func (e *Engine) Rows() int {
	return e.rowsEmitted
}

// Warnings returns prefix-expansion warnings followed by the row-level
// anomalies collected during the run.
func (e *Engine) Warnings() []string {
	out := append([]string{}, e.prefixes.Warnings()...)
	return append(out, e.warnings.all()...)
}
