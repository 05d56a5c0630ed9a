package inspect

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360studio/semtable/config"
	"github.com/c360studio/semtable/tabular"
	"github.com/c360studio/semtable/vocabulary"
)

func writeInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func tableOf(t *testing.T, csv string) *tabular.Table {
	t.Helper()
	table, err := tabular.Read(strings.NewReader(csv), tabular.DefaultOptions())
	require.NoError(t, err)
	return table
}

func TestSniffDelimiter(t *testing.T) {
	tests := []struct {
		sample string
		want   string
	}{
		{"a,b,c\nrest of the file", ","},
		{"a;b;c;d", ";"},
		{"a\tb", "\t"},
		{"a|b|c", "|"},
		{"single", ","},
		{"a,b,c;d", ","},
		{"a;b,c", ","}, // ties go to the comma
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, sniffDelimiter(tt.sample), "sample %q", tt.sample)
	}
}

func TestCellKind(t *testing.T) {
	tests := []struct {
		value string
		want  string
	}{
		{"42", kindInteger},
		{"-7", kindInteger},
		{"2024", kindInteger}, // bare years count as integers
		{"10.5", kindDecimal},
		{"true", kindBoolean},
		{"FALSE", kindBoolean},
		{"2024-01-15", kindDate},
		{"2024-13-45", kindDate}, // shape only, no calendar check
		{"hello", kindString},
		{"", kindString},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, cellKind(tt.value), "value %q", tt.value)
	}
}

func TestFile(t *testing.T) {
	path := writeInput(t, strings.Join([]string{
		"id,Title,Name,Year,Authors,Price,Published",
		"P1,Hello,Ana,2001,Ana;Luis,10.5,2024-01-15",
		"P2,World,Bob,2002,Bob,11.0,2024-02-20",
		"P3,Again,Cara,2003,Cara,12.25,2024-03-05",
		"",
	}, "\n"))

	p, err := File(path)
	require.NoError(t, err)

	assert.Equal(t, ",", p.Delimiter)
	assert.Equal(t, []string{"id", "Title", "Name", "Year", "Authors", "Price", "Published"}, p.Columns)
	assert.Equal(t, "id", p.PrimaryKey)
	assert.Equal(t, map[string]string{"Authors": ";"}, p.Multivalued)
	assert.Equal(t, map[string]string{
		"Year":      "xsd:integer",
		"Price":     "xsd:decimal",
		"Published": "xsd:date",
	}, p.Datatypes)
	assert.Equal(t, map[string]string{
		"Title":   "dct:title",
		"Name":    "foaf:name",
		"Year":    "dct:issued",
		"Authors": "dct:creator",
	}, p.Properties)
}

func TestFile_SemicolonDelimited(t *testing.T) {
	path := writeInput(t, "id;Full Name\nP1;Ana\n")

	p, err := File(path)
	require.NoError(t, err)

	assert.Equal(t, ";", p.Delimiter)
	assert.Equal(t, []string{"id", "Full Name"}, p.Columns)
	assert.Equal(t, "id", p.PrimaryKey)
	assert.Empty(t, p.Multivalued)
	assert.Empty(t, p.Properties)
}

func TestFile_NoKeyCandidate(t *testing.T) {
	path := writeInput(t, "code,Title\nX1,Hello\n")

	p, err := File(path)
	require.NoError(t, err)
	assert.Equal(t, "", p.PrimaryKey)
}

func TestInferDatatypes_MajorityThreshold(t *testing.T) {
	// Four of five typed cells is exactly 80%, which is not enough.
	assert.Empty(t, inferDatatypes(tableOf(t, "n\n1\n2\n3\n4\nx\n")))

	assert.Equal(t, map[string]string{"n": "xsd:integer"},
		inferDatatypes(tableOf(t, "n\n1\n2\n3\n4\n5\nx\n")))

	// Blank cells stay out of the sample.
	assert.Equal(t, map[string]string{"n": "xsd:integer"},
		inferDatatypes(tableOf(t, "n\n1\n \n2\n")))
}

func TestProfile_Mapping(t *testing.T) {
	p := &Profile{
		Delimiter:   ";",
		PrimaryKey:  "id",
		Multivalued: map[string]string{"Authors": ";"},
		Datatypes:   map[string]string{"Year": "xsd:gYear"},
		Properties: map[string]string{
			"Title": "dct:title",
			"Name":  "foaf:name",
			"Link":  "schema:url",
		},
	}

	cfg := p.Mapping()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ";", cfg.CSVDelimiter)
	assert.Equal(t, "id", cfg.PrimaryKey)
	assert.Equal(t, p.Multivalued, cfg.Multivalued)
	assert.Equal(t, p.Datatypes, cfg.DatatypeOverrides)
	assert.Equal(t, p.Properties, cfg.PropertyMap)

	// The bindings the suggestions rely on come along.
	assert.Equal(t, vocabulary.DCTNamespace, cfg.Prefixes["dct"])
	assert.Equal(t, vocabulary.FOAFNamespace, cfg.Prefixes["foaf"])
	assert.Equal(t, vocabulary.SchemaNamespace, cfg.Prefixes["schema"])

	// Everything else keeps its default.
	assert.Equal(t, config.ClassList{"bibo:Article"}, cfg.Classes)
	assert.Equal(t, "turtle", cfg.Format)
	assert.Equal(t, "en", cfg.Lang)
}

func TestSuggest(t *testing.T) {
	path := writeInput(t, "id;Title\nP1;Hola\n")

	cfg, err := Suggest(path)
	require.NoError(t, err)
	assert.Equal(t, ";", cfg.CSVDelimiter)
	assert.Equal(t, "id", cfg.PrimaryKey)
	assert.Equal(t, "dct:title", cfg.PropertyMap["Title"])
}

func TestSuggest_MissingFile(t *testing.T) {
	_, err := Suggest(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}
