// Package identifier converts arbitrary text into URI-safe path segments.
package identifier

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// asciiFold decomposes characters (NFKD) and drops the combining marks, so
// accented letters reduce to their base letter before the ASCII filter runs.
var asciiFold = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))

// Normalize returns an ASCII token usable as a URI path segment: diacritics
// are stripped by decomposition, remaining non-ASCII runes are dropped, every
// maximal run of non-alphanumeric characters becomes a single underscore, and
// leading/trailing underscores are trimmed.
//
// Normalize is deterministic and idempotent. An empty (or all-symbol) input
// yields an empty token; callers must guard before using the result as an
// identifier.
func Normalize(text string) string {
	folded, _, err := transform.String(asciiFold, text)
	if err != nil {
		folded = text
	}

	trimmed := strings.TrimSpace(folded)

	var b strings.Builder
	b.Grow(len(trimmed))
	pendingGap := false
	for _, r := range trimmed {
		if r > unicode.MaxASCII {
			// Dropped outright, same as an ASCII-ignore transcode. Only
			// ASCII separators open an underscore gap.
			continue
		}
		if isWordByte(r) {
			if pendingGap {
				b.WriteByte('_')
				pendingGap = false
			}
			b.WriteRune(r)
			continue
		}
		pendingGap = true
	}

	return strings.Trim(b.String(), "_")
}

// isWordByte reports whether r belongs in the token as-is. Underscores count
// as word characters, so existing ones survive untouched.
func isWordByte(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= 'A' && r <= 'Z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '_':
		return true
	}
	return false
}
