package transform

import (
	"strings"

	"github.com/knakk/rdf"

	"github.com/c360studio/semtable/identifier"
)

// buildIndex maps every non-empty primary-key value to its row subject
// IRI, in one pass before any triple is emitted. Duplicate keys keep
// the last row and are counted as a warning.
func (e *Engine) buildIndex() {
	e.index = make(map[string]rdf.IRI, e.table.Len())
	duplicates := 0
	for i := 0; i < e.table.Len(); i++ {
		key := strings.TrimSpace(e.table.Cell(i, e.cfg.PrimaryKey))
		if key == "" {
			continue
		}
		subj, err := e.subjectIRI(key)
		if err != nil {
			e.warnings.addf("row %d: %v", i+1, err)
			continue
		}
		if _, dup := e.index[key]; dup {
			duplicates++
		}
		e.index[key] = subj
	}
	if duplicates > 0 {
		e.warnings.addf("%d duplicate primary key value(s), last occurrence wins", duplicates)
	}
}

// subjectIRI maps a primary-key value to its row subject: http(s)
// values pass through unchanged, anything else lands under the entity
// base as a slug.
func (e *Engine) subjectIRI(key string) (rdf.IRI, error) {
	if strings.HasPrefix(key, "http://") || strings.HasPrefix(key, "https://") {
		return e.iri(key)
	}
	return e.iri(e.entityBase + identifier.Normalize(key))
}
