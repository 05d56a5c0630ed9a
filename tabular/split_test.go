package tabular

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitCell(t *testing.T) {
	tests := []struct {
		name string
		cell string
		sep  string
		want []string
	}{
		{"trims and drops empties", "a; b ;c", ";", []string{"a", "b", "c"}},
		{"empty separator keeps whole cell", " whole value ", "", []string{"whole value"}},
		{"empty separator on empty cell", "", "", []string{""}},
		{"only separators", ";;;", ";", []string{}},
		{"single value", "alpha", ";", []string{"alpha"}},
		{"multi-char separator", "a||b||c", "||", []string{"a", "b", "c"}},
		{"empty cell with separator", "", ";", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitCell(tt.cell, tt.sep))
		})
	}
}
