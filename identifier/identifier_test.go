package identifier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain word", "hello", "hello"},
		{"diacritics fold to base letters", "Año 2024!", "Ano_2024"},
		{"accents", "café crème", "cafe_creme"},
		{"punctuation run collapses", "a -- b", "a_b"},
		{"leading and trailing trimmed", "  (draft)  ", "draft"},
		{"existing underscores survive", "a_b-c", "a_b_c"},
		{"digits kept", "DOI 10.1000/182", "DOI_10_1000_182"},
		{"non-ascii dropped without gap", "中文abc", "abc"},
		{"empty", "", ""},
		{"symbols only", "!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{"Año 2024!", "García, José", "a b c", "x__y"}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestNormalize_AlwaysASCII(t *testing.T) {
	for _, in := range []string{"ñandú", "ütf-8 様", "Ωmega"} {
		out := Normalize(in)
		for i := 0; i < len(out); i++ {
			assert.Less(t, out[i], byte(128), "input %q produced %q", in, out)
		}
	}
}
