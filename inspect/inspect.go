// Package inspect derives a starter mapping from a delimited file:
// delimiter sniffing, primary-key and property suggestions, multivalue
// detection and per-column datatype majorities.
package inspect

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/c360studio/semtable/config"
	"github.com/c360studio/semtable/tabular"
	"github.com/c360studio/semtable/vocabulary"
)

const (
	// sniffSampleSize is how many leading bytes feed the delimiter sniff.
	sniffSampleSize = 2048

	// typeSampleRows caps how many non-empty cells per column the
	// datatype majority considers.
	typeSampleRows = 100

	// multivalueSampleRows caps how many cells per column the
	// multivalue detector scans.
	multivalueSampleRows = 50

	// multivalueSeparator is the separator the detector looks for and
	// suggests.
	multivalueSeparator = ";"
)

var delimiterCandidates = []string{",", ";", "\t", "|"}

var primaryKeyCandidates = []string{"id", "ID", "Id", "eid", "EID", "link", "Link", "url", "URL"}

// propertyHints maps lowercased, space-stripped column names to the
// property they usually carry.
var propertyHints = map[string]string{
	"title":    "dct:title",
	"nombre":   "foaf:name",
	"name":     "foaf:name",
	"doi":      "bibo:doi",
	"abstract": "dct:abstract",
	"keywords": "dct:subject",
	"year":     "dct:issued",
	"cited":    "schema:citationCount",
	"link":     "schema:url",
	"authors":  "dct:creator",
	"author":   "dct:creator",
}

// suggestionNamespaces are the bindings a suggested property may need
// beyond the built-in defaults.
var suggestionNamespaces = map[string]string{
	"dct":    vocabulary.DCTNamespace,
	"foaf":   vocabulary.FOAFNamespace,
	"schema": vocabulary.SchemaNamespace,
}

// Profile holds what one pass over a file established.
type Profile struct {
	Delimiter   string
	Columns     []string
	PrimaryKey  string // "" when no conventional key column exists
	Multivalued map[string]string
	Datatypes   map[string]string // column name to XSD CURIE
	Properties  map[string]string // column name to property CURIE
}

// File profiles one delimited file. The delimiter is sniffed from the
// first line of a leading sample; everything else comes from the parsed
// table.
func File(path string) (*Profile, error) {
	sample, err := readSample(path)
	if err != nil {
		return nil, err
	}
	delimiter := sniffDelimiter(sample)

	opts := tabular.DefaultOptions()
	opts.Delimiter, _ = utf8.DecodeRuneInString(delimiter)
	table, err := tabular.ReadFile(path, opts)
	if err != nil {
		return nil, err
	}

	return &Profile{
		Delimiter:   delimiter,
		Columns:     append([]string(nil), table.Columns...),
		PrimaryKey:  suggestPrimaryKey(table),
		Multivalued: detectMultivalued(table),
		Datatypes:   inferDatatypes(table),
		Properties:  suggestProperties(table.Columns),
	}, nil
}

// Suggest profiles a file and returns the suggested mapping.
func Suggest(path string) (*config.Mapping, error) {
	p, err := File(path)
	if err != nil {
		return nil, err
	}
	return p.Mapping(), nil
}

// Mapping overlays the profile onto the default mapping. Prefixes the
// suggested properties rely on are bound so the mapping converts
// cleanly as written.
func (p *Profile) Mapping() *config.Mapping {
	cfg := config.DefaultMapping()
	cfg.CSVDelimiter = p.Delimiter
	cfg.PrimaryKey = p.PrimaryKey
	cfg.Multivalued = maps.Clone(p.Multivalued)
	cfg.DatatypeOverrides = maps.Clone(p.Datatypes)
	cfg.PropertyMap = maps.Clone(p.Properties)

	for _, curie := range cfg.PropertyMap {
		prefix, _, ok := strings.Cut(curie, ":")
		if !ok {
			continue
		}
		if ns, known := suggestionNamespaces[prefix]; known {
			cfg.Prefixes[prefix] = ns
		}
	}
	return cfg
}

func readSample(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	buf := make([]byte, sniffSampleSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", fmt.Errorf("read sample: %w", err)
	}
	return string(buf[:n]), nil
}

// sniffDelimiter picks the candidate that splits the first sample line
// into the most columns. Comma wins ties.
func sniffDelimiter(sample string) string {
	firstLine, _, _ := strings.Cut(sample, "\n")
	best, cols := ",", 0
	for _, sep := range delimiterCandidates {
		if c := len(strings.Split(firstLine, sep)); c > cols {
			best, cols = sep, c
		}
	}
	return best
}

func suggestPrimaryKey(t *tabular.Table) string {
	for _, candidate := range primaryKeyCandidates {
		if t.HasColumn(candidate) {
			return candidate
		}
	}
	return ""
}

func detectMultivalued(t *tabular.Table) map[string]string {
	out := make(map[string]string)
	for _, col := range t.Columns {
		for row := 0; row < t.Len() && row < multivalueSampleRows; row++ {
			if strings.Contains(t.Cell(row, col), multivalueSeparator) {
				out[col] = multivalueSeparator
				break
			}
		}
	}
	return out
}

var (
	integerCell = regexp.MustCompile(`^-?[0-9]+$`)
	decimalCell = regexp.MustCompile(`^-?[0-9]+\.[0-9]+$`)
	dateCell    = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}$`)
	yearCell    = regexp.MustCompile(`^[0-9]{4}$`)
)

const (
	kindString  = ""
	kindInteger = "xsd:integer"
	kindDecimal = "xsd:decimal"
	kindBoolean = "xsd:boolean"
	kindDate    = "xsd:date"
	kindYear    = "xsd:gYear"
)

// cellKinds is the fixed tally order, so majority ties resolve the same
// way on every run.
var cellKinds = []string{kindInteger, kindDecimal, kindBoolean, kindDate, kindYear, kindString}

func cellKind(s string) string {
	s = strings.TrimSpace(s)
	switch {
	case integerCell.MatchString(s):
		return kindInteger
	case decimalCell.MatchString(s):
		return kindDecimal
	}
	switch strings.ToLower(s) {
	case "true", "false":
		return kindBoolean
	}
	if dateCell.MatchString(s) {
		return kindDate
	}
	if yearCell.MatchString(s) {
		return kindYear
	}
	return kindString
}

// inferDatatypes suggests an override for every column whose sampled
// non-empty cells agree on one non-string kind more than 80% of the
// time.
func inferDatatypes(t *tabular.Table) map[string]string {
	out := make(map[string]string)
	for _, col := range t.Columns {
		counts := make(map[string]int)
		total := 0
		for row := 0; row < t.Len() && total < typeSampleRows; row++ {
			v := strings.TrimSpace(t.Cell(row, col))
			if v == "" {
				continue
			}
			counts[cellKind(v)]++
			total++
		}
		if total == 0 {
			continue
		}

		main, freq := kindString, 0
		for _, kind := range cellKinds {
			if counts[kind] > freq {
				main, freq = kind, counts[kind]
			}
		}
		if main != kindString && freq*5 > total*4 {
			out[col] = main
		}
	}
	return out
}

func suggestProperties(columns []string) map[string]string {
	out := make(map[string]string)
	for _, col := range columns {
		key := strings.ReplaceAll(strings.ToLower(col), " ", "")
		if curie, ok := propertyHints[key]; ok {
			out[col] = curie
		}
	}
	return out
}
