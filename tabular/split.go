package tabular

import "strings"

// SplitCell breaks a raw cell into its ordered values. An empty separator
// means the cell is single-valued: the result is one element holding the
// trimmed whole cell, even when that is empty. With a separator the cell is
// split, each piece trimmed, and empty pieces dropped.
func SplitCell(cell, sep string) []string {
	if sep == "" {
		return []string{strings.TrimSpace(cell)}
	}

	parts := strings.Split(cell, sep)
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if v := strings.TrimSpace(part); v != "" {
			values = append(values, v)
		}
	}
	return values
}
