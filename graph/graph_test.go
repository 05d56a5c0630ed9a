package graph

import (
	"testing"

	"github.com/knakk/rdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func iri(t *testing.T, s string) rdf.IRI {
	t.Helper()
	u, err := rdf.NewIRI(s)
	require.NoError(t, err)
	return u
}

func langLit(t *testing.T, v, lang string) rdf.Literal {
	t.Helper()
	l, err := rdf.NewLangLiteral(v, lang)
	require.NoError(t, err)
	return l
}

func TestGraph_AddDeduplicates(t *testing.T) {
	g := New()
	subj := iri(t, "http://example.org/resource/P1")
	pred := iri(t, "http://purl.org/dc/terms/title")

	g.Add(rdf.Triple{Subj: subj, Pred: pred, Obj: langLit(t, "Hola", "es")})
	g.Add(rdf.Triple{Subj: subj, Pred: pred, Obj: langLit(t, "Hola", "es")})
	assert.Equal(t, 1, g.Len())

	g.Add(rdf.Triple{Subj: subj, Pred: pred, Obj: langLit(t, "Adios", "es")})
	require.Equal(t, 2, g.Len())
	assert.Equal(t, "Hola", g.Triples()[0].Obj.String())
	assert.Equal(t, "Adios", g.Triples()[1].Obj.String())
}

func TestGraph_BindRebindKeepsPosition(t *testing.T) {
	g := New()
	g.Bind("dct", "http://example.org/wrong/")
	g.Bind("xsd", "http://www.w3.org/2001/XMLSchema#")
	g.Bind("dct", "http://purl.org/dc/terms/")

	ns := g.Namespaces()
	require.Len(t, ns, 2)
	assert.Equal(t, "dct", ns[0].Prefix)
	assert.Equal(t, "http://purl.org/dc/terms/", ns[0].IRI)
	assert.Equal(t, "xsd", ns[1].Prefix)
}

func TestParseFormat(t *testing.T) {
	cases := map[string]Format{
		"turtle":   FormatTurtle,
		"ttl":      FormatTurtle,
		"Turtle":   FormatTurtle,
		"xml":      FormatRDFXML,
		"rdfxml":   FormatRDFXML,
		"json-ld":  FormatJSONLD,
		"jsonld":   FormatJSONLD,
		"nt":       FormatNTriples,
		"ntriples": FormatNTriples,
	}
	for name, want := range cases {
		got, err := ParseFormat(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseFormat("n3")
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestFormat_Extension(t *testing.T) {
	assert.Equal(t, ".ttl", FormatTurtle.Extension())
	assert.Equal(t, ".xml", FormatRDFXML.Extension())
	assert.Equal(t, ".json-ld", FormatJSONLD.Extension())
	assert.Equal(t, ".nt", FormatNTriples.Extension())
}

func TestSerialize_UnsupportedFormat(t *testing.T) {
	_, err := New().Serialize(Format("n3"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
