package transform

import (
	"fmt"
	"regexp"
	"slices"
	"sort"

	"github.com/knakk/rdf"

	"github.com/c360studio/semtable/config"
	"github.com/c360studio/semtable/identifier"
)

// planKind tags the resolved handling for one column.
type planKind int

const (
	planSkip planKind = iota // primary-key column
	planTemplate
	planCatalog
	planRelation
	planLiteral
)

// columnPlan is the dispatch decision for one column, resolved once at
// engine construction. The first matching rule of template → catalog →
// relation → literal wins; exactly one of the rule pointers is set.
type columnPlan struct {
	column string
	kind   planKind
	sep    string // effective multivalue separator for the column

	template *templatePlan
	catalog  *catalogPlan
	relation *relationPlan
	literal  *literalPlan
}

// templatePlan is an entity template with every CURIE expanded and
// every separator resolved.
type templatePlan struct {
	sourceColumn string
	sep          string
	path         string
	types        []rdf.IRI
	link         rdf.IRI
	inverse      *rdf.IRI
	idColumn     string // "" when the template has no id source
	idSep        string
	literals     []literalRulePlan
}

// literalRulePlan is one resolved child-literal rule. Rules are ordered
// by predicate so output stays deterministic.
type literalRulePlan struct {
	pred         rdf.IRI
	raw          bool   // emit the source value verbatim instead of its slug
	fromColumn   string // cross-column rule when non-empty
	matchByIndex bool
	sep          string // separator for the cross column
}

type catalogPlan struct {
	pred      rdf.IRI
	valueBase string // value namespace + column slug + "/"
}

type relationPlan struct {
	pred rdf.IRI
}

type literalPlan struct {
	pred     rdf.IRI
	datatype *rdf.IRI // nil → infer per value
}

// buildPlans resolves the dispatch decision for every table column.
func (e *Engine) buildPlans() error {
	for _, col := range e.table.Columns {
		plan, err := e.planColumn(col)
		if err != nil {
			return err
		}
		e.plans = append(e.plans, plan)
	}
	return nil
}

func (e *Engine) planColumn(col string) (columnPlan, error) {
	p := columnPlan{column: col, sep: e.cfg.SeparatorFor(col)}

	if col == e.cfg.PrimaryKey {
		p.kind = planSkip
		return p, nil
	}

	if spec, ok := e.cfg.EntityTemplates[col]; ok {
		t, err := e.planTemplate(col, p.sep, spec)
		if err != nil {
			return p, err
		}
		p.kind = planTemplate
		p.template = t
		return p, nil
	}

	if slices.Contains(e.cfg.Catalogs, col) {
		c, err := e.planCatalog(col)
		if err != nil {
			return p, err
		}
		p.kind = planCatalog
		p.catalog = c
		return p, nil
	}

	for _, r := range e.cfg.Relations {
		if r.From != col {
			continue
		}
		pred, err := e.expandIRI(r.Predicate)
		if err != nil {
			return p, fmt.Errorf("relation %q: %w", col, err)
		}
		p.kind = planRelation
		p.relation = &relationPlan{pred: pred}
		return p, nil
	}

	l, err := e.planLiteral(col)
	if err != nil {
		return p, err
	}
	p.kind = planLiteral
	p.literal = l
	return p, nil
}

func (e *Engine) planTemplate(col, colSep string, spec config.EntityTemplate) (*templatePlan, error) {
	t := &templatePlan{
		sourceColumn: col,
		sep:          colSep,
		path:         "{safe_value}",
	}
	if spec.SourceColumn != "" {
		t.sourceColumn = spec.SourceColumn
	}
	if spec.Separator != nil {
		t.sep = *spec.Separator
	}
	if spec.Path != "" {
		t.path = spec.Path
	}
	if err := validatePath(t.path); err != nil {
		return nil, fmt.Errorf("entity template %q: %w", col, err)
	}

	var err error
	if t.link, err = e.expandIRI(spec.LinkPredicate); err != nil {
		return nil, fmt.Errorf("entity template %q link_predicate: %w", col, err)
	}
	if spec.InversePredicate != "" {
		u, err := e.expandIRI(spec.InversePredicate)
		if err != nil {
			return nil, fmt.Errorf("entity template %q inverse_predicate: %w", col, err)
		}
		t.inverse = &u
	}
	for _, c := range spec.Types {
		u, err := e.expandIRI(c)
		if err != nil {
			return nil, fmt.Errorf("entity template %q type %q: %w", col, c, err)
		}
		t.types = append(t.types, u)
	}
	if spec.IDSource != nil && spec.IDSource.FromColumn != "" {
		t.idColumn = spec.IDSource.FromColumn
		t.idSep = e.separatorOr(t.idColumn, colSep)
	}

	// Map iteration order is not stable, so child literal rules are
	// applied in predicate order.
	curies := make([]string, 0, len(spec.Literals))
	for curie := range spec.Literals {
		curies = append(curies, curie)
	}
	sort.Strings(curies)
	for _, curie := range curies {
		rule := spec.Literals[curie]
		pred, err := e.expandIRI(curie)
		if err != nil {
			return nil, fmt.Errorf("entity template %q literal %q: %w", col, curie, err)
		}
		lp := literalRulePlan{pred: pred}
		if rule.IsCrossColumn() {
			lp.fromColumn = rule.FromColumn
			lp.matchByIndex = rule.MatchByIndex
			lp.sep = e.separatorOr(rule.FromColumn, colSep)
		} else {
			lp.raw = rule.Mode == config.LiteralRaw
		}
		t.literals = append(t.literals, lp)
	}
	return t, nil
}

func (e *Engine) planCatalog(col string) (*catalogPlan, error) {
	c := &catalogPlan{valueBase: e.valNS + identifier.Normalize(col) + "/"}

	var err error
	if curie, ok := e.cfg.PropertyMap[col]; ok && curie != "" {
		c.pred, err = e.expandIRI(curie)
	} else {
		c.pred, err = e.iri(e.colNS + identifier.Normalize(col))
	}
	if err != nil {
		return nil, fmt.Errorf("catalog column %q: %w", col, err)
	}
	return c, nil
}

func (e *Engine) planLiteral(col string) (*literalPlan, error) {
	l := &literalPlan{}

	var err error
	if curie := e.cfg.PropertyMap[col]; curie != "" {
		l.pred, err = e.expandIRI(curie)
	} else {
		l.pred, err = e.iri(e.colNS + identifier.Normalize(col))
	}
	if err != nil {
		return nil, fmt.Errorf("column %q predicate: %w", col, err)
	}

	if over := e.cfg.DatatypeOverrides[col]; over != "" {
		u, err := e.expandIRI(over)
		if err != nil {
			return nil, fmt.Errorf("column %q datatype override: %w", col, err)
		}
		l.datatype = &u
	}
	return l, nil
}

// separatorOr returns the per-column separator override, or fallback
// when the column has none. An explicit empty override means "do not
// split" and wins.
func (e *Engine) separatorOr(col, fallback string) string {
	if s, ok := e.cfg.Multivalued[col]; ok {
		return s
	}
	return fallback
}

var pathToken = regexp.MustCompile(`\{([^{}]*)\}`)

// validatePath rejects path placeholders other than {value},
// {safe_value} and {id}.
func validatePath(path string) error {
	for _, m := range pathToken.FindAllStringSubmatch(path, -1) {
		switch m[1] {
		case "value", "safe_value", "id":
		default:
			return fmt.Errorf("unknown path placeholder {%s}", m[1])
		}
	}
	return nil
}
