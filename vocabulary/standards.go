// Package vocabulary provides the standard namespace IRIs and the prefix
// table used to expand compact identifiers (CURIEs) in mapping documents.
//
// References:
// - RDF: https://www.w3.org/TR/rdf11-concepts/
// - SKOS: https://www.w3.org/TR/skos-reference/
// - Dublin Core: https://www.dublincore.org/specifications/dublin-core/dcmi-terms/
// - XSD datatypes: https://www.w3.org/TR/xmlschema11-2/
package vocabulary

// Standard namespace roots.
const (
	RDFNamespace    = "http://www.w3.org/1999/02/22-rdf-syntax-ns#"
	RDFSNamespace   = "http://www.w3.org/2000/01/rdf-schema#"
	XSDNamespace    = "http://www.w3.org/2001/XMLSchema#"
	SKOSNamespace   = "http://www.w3.org/2004/02/skos/core#"
	DCTNamespace    = "http://purl.org/dc/terms/"
	FOAFNamespace   = "http://xmlns.com/foaf/0.1/"
	BiboNamespace   = "http://purl.org/ontology/bibo/"
	SchemaNamespace = "https://schema.org/"
)

// RDF and RDFS IRIs.
const (
	// RdfType links a resource to its class.
	RdfType = RDFNamespace + "type"

	// RdfsLabel provides a human-readable name for a resource.
	RdfsLabel = RDFSNamespace + "label"
)

// SKOS (Simple Knowledge Organization System) IRIs used by catalog output.
const (
	// SkosConceptScheme is the class of controlled-vocabulary schemes.
	SkosConceptScheme = SKOSNamespace + "ConceptScheme"

	// SkosConcept is the class of individual controlled-vocabulary entries.
	SkosConcept = SKOSNamespace + "Concept"

	// SkosPrefLabel is the preferred lexical label for a concept.
	SkosPrefLabel = SKOSNamespace + "prefLabel"

	// SkosInScheme links a concept to the scheme it belongs to.
	SkosInScheme = SKOSNamespace + "inScheme"
)

// XSD datatype IRIs assigned by the datatype inferencer. XsdString is
// the implicit datatype of plain literals and is omitted on output.
const (
	XsdString   = XSDNamespace + "string"
	XsdInteger  = XSDNamespace + "integer"
	XsdDecimal  = XSDNamespace + "decimal"
	XsdBoolean  = XSDNamespace + "boolean"
	XsdDate     = XSDNamespace + "date"
	XsdDateTime = XSDNamespace + "dateTime"
	XsdGYear    = XSDNamespace + "gYear"
)
