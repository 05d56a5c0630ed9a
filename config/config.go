// Package config defines the mapping document that drives a conversion run:
// how the input table is read, how columns become predicates, catalogs,
// relations, or child entities, and how the graph is serialized.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/c360studio/semtable/vocabulary"
)

// ErrNoPrimaryKey is returned when a mapping names no primary-key column.
var ErrNoPrimaryKey = errors.New("config: primary_key is required")

// Mapping is the declarative description of one table-to-graph conversion.
// Field names follow the JSON document format.
type Mapping struct {
	// BaseURI roots the internal rec/col/val namespaces.
	BaseURI string `json:"base_uri" yaml:"base_uri"`

	// EntityBaseURI roots row subjects and template children. Empty means
	// "same as base_uri".
	EntityBaseURI string `json:"entity_base_uri" yaml:"entity_base_uri"`

	// PrimaryKey names the column whose value identifies each row. Required,
	// and it must exist in the input header.
	PrimaryKey string `json:"primary_key" yaml:"primary_key"`

	// CSVDelimiter separates input fields (single character).
	CSVDelimiter string `json:"csv_delimiter" yaml:"csv_delimiter"`

	// Separator is the default multivalue separator applied inside cells.
	Separator string `json:"separator" yaml:"separator"`

	// Multivalued overrides the separator per column. An explicit empty
	// string disables splitting for that column.
	Multivalued map[string]string `json:"multivalued" yaml:"multivalued"`

	// Prefixes maps short names to namespace IRIs for CURIE expansion.
	Prefixes map[string]string `json:"prefixes" yaml:"prefixes"`

	// PropertyMap maps a column to the predicate CURIE used for its values.
	// Unmapped columns fall back to the internal col namespace.
	PropertyMap map[string]string `json:"property_map" yaml:"property_map"`

	// Classes are the rdf:type CURIEs asserted for every row subject.
	Classes ClassList `json:"classes" yaml:"classes"`

	// DatatypeOverrides pins a column's literal datatype (CURIE), bypassing
	// inference.
	DatatypeOverrides map[string]string `json:"datatype_overrides" yaml:"datatype_overrides"`

	// Catalogs lists columns whose distinct values become SKOS concepts.
	Catalogs []string `json:"catalogs" yaml:"catalogs"`

	// Relations link row subjects to other rows by primary-key value.
	Relations []Relation `json:"relations" yaml:"relations"`

	// EntityTemplates synthesize child entities from a column, keyed by
	// column name.
	EntityTemplates map[string]EntityTemplate `json:"entity_templates" yaml:"entity_templates"`

	// Lang tags catalog labels and template literals.
	Lang string `json:"lang" yaml:"lang"`

	// Format selects the output serialization (turtle, xml, json-ld, nt and
	// their aliases).
	Format string `json:"format" yaml:"format"`

	// SkipRows discards leading lines before the header.
	SkipRows int `json:"skip_rows" yaml:"skip_rows"`

	// QuoteChar and EscapeChar adjust the input dialect. Keys match the
	// historical document format.
	QuoteChar  string `json:"quotechar" yaml:"quotechar"`
	EscapeChar string `json:"escapechar" yaml:"escapechar"`
}

// Relation links the values of one column to row subjects via a predicate.
type Relation struct {
	From      string `json:"from" yaml:"from"`
	Predicate string `json:"predicate" yaml:"predicate"`
}

// EntityTemplate describes how one column expands into child entities.
type EntityTemplate struct {
	// SourceColumn holds the values to expand. Defaults to the column the
	// template is keyed under.
	SourceColumn string `json:"source_column,omitempty" yaml:"source_column,omitempty"`

	// Separator splits the source cell. When absent the source column's
	// effective separator applies; an explicit empty string disables
	// splitting.
	Separator *string `json:"separator,omitempty" yaml:"separator,omitempty"`

	// Path builds each child identifier under the entity base. Placeholders:
	// {value}, {safe_value}, {id}. Defaults to "{safe_value}".
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	// Types are rdf:type CURIEs asserted on every child.
	Types []string `json:"types,omitempty" yaml:"types,omitempty"`

	// LinkPredicate joins parent to child. Required.
	LinkPredicate string `json:"link_predicate" yaml:"link_predicate"`

	// InversePredicate, when set, joins child back to parent.
	InversePredicate string `json:"inverse_predicate,omitempty" yaml:"inverse_predicate,omitempty"`

	// IDSource supplies the {id} placeholder from a second column, aligned
	// by position with the source values.
	IDSource *IDSource `json:"id_source,omitempty" yaml:"id_source,omitempty"`

	// Literals attach values to each child, keyed by predicate CURIE.
	Literals map[string]LiteralRule `json:"literals,omitempty" yaml:"literals,omitempty"`
}

// IDSource names the column whose Nth value fills {id} for the Nth child.
// When the id list is shorter than the value list, the normalized source
// value fills in.
type IDSource struct {
	FromColumn   string `json:"from_column" yaml:"from_column"`
	MatchByIndex bool   `json:"match_by_index,omitempty" yaml:"match_by_index,omitempty"`
}

// DefaultMapping returns the documented defaults: example.org base,
// comma-delimited input, comma separator, xsd/bibo prefixes, bibo:Article
// rows, English labels, Turtle output.
func DefaultMapping() *Mapping {
	return &Mapping{
		BaseURI:           "http://example.org/resource/",
		EntityBaseURI:     "",
		CSVDelimiter:      ",",
		Separator:         ",",
		Multivalued:       map[string]string{},
		Prefixes:          map[string]string{},
		PropertyMap:       map[string]string{},
		Classes:           ClassList{"bibo:Article"},
		DatatypeOverrides: map[string]string{},
		Catalogs:          []string{},
		Relations:         []Relation{},
		EntityTemplates:   map[string]EntityTemplate{},
		Lang:              "en",
		Format:            "turtle",
		SkipRows:          0,
		QuoteChar:         `"`,
		EscapeChar:        "",
	}
}

// DefaultPrefixes returns the prefix bindings every run starts from,
// regardless of what the mapping document declares.
func DefaultPrefixes() map[string]string {
	return map[string]string{
		"xsd":  vocabulary.XSDNamespace,
		"bibo": vocabulary.BiboNamespace,
	}
}

// Validate checks structural consistency. Column existence is checked later
// against the loaded table.
func (m *Mapping) Validate() error {
	if strings.TrimSpace(m.PrimaryKey) == "" {
		return ErrNoPrimaryKey
	}
	if m.BaseURI == "" {
		return fmt.Errorf("config: base_uri is required")
	}
	if utf8.RuneCountInString(m.CSVDelimiter) != 1 {
		return fmt.Errorf("config: csv_delimiter must be a single character, got %q", m.CSVDelimiter)
	}
	if utf8.RuneCountInString(m.QuoteChar) != 1 {
		return fmt.Errorf("config: quotechar must be a single character, got %q", m.QuoteChar)
	}
	if utf8.RuneCountInString(m.EscapeChar) > 1 {
		return fmt.Errorf("config: escapechar must be a single character, got %q", m.EscapeChar)
	}
	if m.SkipRows < 0 {
		return fmt.Errorf("config: skip_rows must not be negative")
	}
	for i, rel := range m.Relations {
		if rel.From == "" || rel.Predicate == "" {
			return fmt.Errorf("config: relations[%d] needs both from and predicate", i)
		}
	}
	for col, tpl := range m.EntityTemplates {
		if tpl.LinkPredicate == "" {
			return fmt.Errorf("config: entity template %q needs a link_predicate", col)
		}
	}
	return nil
}

// Base returns base_uri with exactly one trailing slash.
func (m *Mapping) Base() string {
	return strings.TrimRight(m.BaseURI, "/") + "/"
}

// EntityBase returns the root for row subjects and template children.
func (m *Mapping) EntityBase() string {
	if m.EntityBaseURI == "" {
		return m.Base()
	}
	return strings.TrimRight(m.EntityBaseURI, "/") + "/"
}

// SeparatorFor returns the effective multivalue separator for a column. A
// per-column override wins even when it is empty.
func (m *Mapping) SeparatorFor(column string) string {
	if sep, ok := m.Multivalued[column]; ok {
		return sep
	}
	return m.Separator
}

// LoadFromFile reads a mapping document, layered over the defaults. JSON is
// the document format; files ending in .yaml or .yml parse as YAML.
func LoadFromFile(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read mapping file: %w", err)
	}

	m := DefaultMapping()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, m)
	default:
		err = json.Unmarshal(data, m)
	}
	if err != nil {
		return nil, fmt.Errorf("parse mapping file: %w", err)
	}

	return m, nil
}

// SaveToFile writes the mapping, creating parent directories. The extension
// picks the encoding, JSON by default.
func (m *Mapping) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create mapping directory: %w", err)
	}

	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(m)
	default:
		data, err = json.MarshalIndent(m, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("marshal mapping: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write mapping file: %w", err)
	}
	return nil
}

// Merge overlays non-zero values from other onto m. Maps and lists replace
// wholesale rather than merging element-wise.
func (m *Mapping) Merge(other *Mapping) {
	if other == nil {
		return
	}

	if other.BaseURI != "" {
		m.BaseURI = other.BaseURI
	}
	if other.EntityBaseURI != "" {
		m.EntityBaseURI = other.EntityBaseURI
	}
	if other.PrimaryKey != "" {
		m.PrimaryKey = other.PrimaryKey
	}
	if other.CSVDelimiter != "" {
		m.CSVDelimiter = other.CSVDelimiter
	}
	if other.Separator != "" {
		m.Separator = other.Separator
	}
	if len(other.Multivalued) > 0 {
		m.Multivalued = other.Multivalued
	}
	if len(other.Prefixes) > 0 {
		m.Prefixes = other.Prefixes
	}
	if len(other.PropertyMap) > 0 {
		m.PropertyMap = other.PropertyMap
	}
	if len(other.Classes) > 0 {
		m.Classes = other.Classes
	}
	if len(other.DatatypeOverrides) > 0 {
		m.DatatypeOverrides = other.DatatypeOverrides
	}
	if len(other.Catalogs) > 0 {
		m.Catalogs = other.Catalogs
	}
	if len(other.Relations) > 0 {
		m.Relations = other.Relations
	}
	if len(other.EntityTemplates) > 0 {
		m.EntityTemplates = other.EntityTemplates
	}
	if other.Lang != "" {
		m.Lang = other.Lang
	}
	if other.Format != "" {
		m.Format = other.Format
	}
	if other.SkipRows != 0 {
		m.SkipRows = other.SkipRows
	}
	if other.QuoteChar != "" {
		m.QuoteChar = other.QuoteChar
	}
	if other.EscapeChar != "" {
		m.EscapeChar = other.EscapeChar
	}
}
