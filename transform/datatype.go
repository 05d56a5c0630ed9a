package transform

import (
	"regexp"
	"strings"
	"time"

	"github.com/knakk/rdf"

	"github.com/c360studio/semtable/vocabulary"
)

var (
	integerPattern = regexp.MustCompile(`^-?[0-9]+$`)
	decimalPattern = regexp.MustCompile(`^-?[0-9]+\.[0-9]+$`)
)

// isoLayouts are the ISO-8601 shapes accepted for date/dateTime
// inference, seconds and fraction optional, with or without an offset.
var isoLayouts = []string{
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04Z07:00",
	"2006-01-02 15:04",
}

// InferDatatype guesses an XSD datatype IRI for a cell value, returning
// "" when the value should stay a plain literal. Precedence: integer,
// decimal, boolean, then ISO date/time; a timestamp at exactly midnight
// counts as a date.
func InferDatatype(value string) string {
	v := strings.TrimSpace(value)
	switch {
	case integerPattern.MatchString(v):
		return vocabulary.XsdInteger
	case decimalPattern.MatchString(v):
		return vocabulary.XsdDecimal
	}
	switch strings.ToLower(v) {
	case "true", "false":
		return vocabulary.XsdBoolean
	}
	if _, err := time.Parse("2006-01-02", v); err == nil {
		return vocabulary.XsdDate
	}
	for _, layout := range isoLayouts {
		t, err := time.Parse(layout, v)
		if err != nil {
			continue
		}
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			return vocabulary.XsdDate
		}
		return vocabulary.XsdDateTime
	}
	return ""
}

// datatypeTerms prebuilds the IRI terms the inferencer can assign.
func datatypeTerms() (map[string]rdf.IRI, error) {
	out := make(map[string]rdf.IRI, 5)
	for _, s := range []string{
		vocabulary.XsdInteger,
		vocabulary.XsdDecimal,
		vocabulary.XsdBoolean,
		vocabulary.XsdDate,
		vocabulary.XsdDateTime,
	} {
		u, err := rdf.NewIRI(s)
		if err != nil {
			return nil, err
		}
		out[s] = u
	}
	return out, nil
}
