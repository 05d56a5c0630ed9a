package vocabulary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefixes_Expand_KnownPrefix(t *testing.T) {
	p := NewPrefixes()
	p.Bind("dct", "http://purl.org/dc/terms/")

	assert.Equal(t, "http://purl.org/dc/terms/title", p.Expand("dct:title"))
	assert.Empty(t, p.Warnings())
}

func TestPrefixes_Expand_NoColonUnchanged(t *testing.T) {
	p := NewPrefixes()
	p.Bind("dct", "http://purl.org/dc/terms/")

	assert.Equal(t, "title", p.Expand("title"))
	assert.Empty(t, p.Warnings())
}

func TestPrefixes_Expand_AbsoluteIRIUnchanged(t *testing.T) {
	p := NewPrefixes()
	p.Bind("dct", "http://purl.org/dc/terms/")

	iri := "http://example.org/resource/thing"
	assert.Equal(t, iri, p.Expand(iri))
	assert.Empty(t, p.Warnings(), "absolute IRIs should not trigger warnings")
}

func TestPrefixes_Expand_UnknownPrefixWarnsOnce(t *testing.T) {
	p := NewPrefixes()

	assert.Equal(t, "foo:bar", p.Expand("foo:bar"))
	assert.Equal(t, "foo:baz", p.Expand("foo:baz"))

	warnings := p.Warnings()
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], `unknown prefix "foo"`)
}

func TestPrefixes_Bind_RebindKeepsOrder(t *testing.T) {
	p := NewPrefixes()
	p.Bind("a", "http://a.example/")
	p.Bind("b", "http://b.example/")
	p.Bind("a", "http://a2.example/")

	var prefixes []string
	var namespaces []string
	p.Each(func(prefix, ns string) {
		prefixes = append(prefixes, prefix)
		namespaces = append(namespaces, ns)
	})

	assert.Equal(t, []string{"a", "b"}, prefixes)
	assert.Equal(t, []string{"http://a2.example/", "http://b.example/"}, namespaces)
	assert.Equal(t, 2, p.Len())
}

func TestPrefixes_ExpandAll(t *testing.T) {
	p := NewPrefixes()
	p.Bind("bibo", "http://purl.org/ontology/bibo/")
	p.Bind("foaf", "http://xmlns.com/foaf/0.1/")

	got := p.ExpandAll([]string{"bibo:Article", "foaf:Person"})
	assert.Equal(t, []string{
		"http://purl.org/ontology/bibo/Article",
		"http://xmlns.com/foaf/0.1/Person",
	}, got)
}

func TestPrefixes_Lookup(t *testing.T) {
	p := NewPrefixes()
	p.Bind("xsd", XSDNamespace)

	ns, ok := p.Lookup("xsd")
	require.True(t, ok)
	assert.Equal(t, XSDNamespace, ns)

	_, ok = p.Lookup("missing")
	assert.False(t, ok)
}
