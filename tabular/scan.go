package tabular

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// scanRecords parses delimited input with a non-standard quote or an escape
// character, the two dialect knobs encoding/csv does not expose. Quotes are
// only special at the start of a field; inside a quoted field a doubled quote
// is a literal quote. An escape character makes the next character literal
// anywhere.
func scanRecords(r io.Reader, opts Options) ([][]string, error) {
	s := &scanner{
		r:      bufio.NewReader(r),
		delim:  opts.Delimiter,
		quote:  opts.Quote,
		escape: opts.Escape,
	}

	var records [][]string
	for {
		rec, err := s.readRecord()
		if rec != nil {
			records = append(records, rec)
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return records, nil
			}
			return nil, fmt.Errorf("parse delimited input: %w", err)
		}
	}
}

type scanner struct {
	r      *bufio.Reader
	delim  rune
	quote  rune
	escape rune
}

// readRecord returns the next record, or (nil, io.EOF) at end of input.
// Blank lines are skipped, matching encoding/csv.
func (s *scanner) readRecord() ([]string, error) {
	var (
		fields     []string
		field      []rune
		inQuotes   bool
		sawContent bool
	)

	flushField := func() {
		fields = append(fields, string(field))
		field = field[:0]
	}

	for {
		c, _, err := s.r.ReadRune()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				return nil, err
			}
			if inQuotes {
				return nil, errors.New("unterminated quoted field")
			}
			if !sawContent {
				return nil, io.EOF
			}
			flushField()
			return fields, io.EOF
		}

		if s.escape != 0 && c == s.escape {
			next, _, err := s.r.ReadRune()
			if err != nil {
				field = append(field, c)
				continue
			}
			field = append(field, next)
			sawContent = true
			continue
		}

		switch {
		case inQuotes:
			if c == s.quote {
				next, _, err := s.r.ReadRune()
				if err == nil && next == s.quote {
					field = append(field, s.quote)
					continue
				}
				if err == nil {
					_ = s.r.UnreadRune()
				}
				inQuotes = false
				continue
			}
			field = append(field, c)

		case c == s.quote && len(field) == 0:
			inQuotes = true
			sawContent = true

		case c == s.delim:
			sawContent = true
			flushField()

		case c == '\n':
			if !sawContent {
				// blank line
				continue
			}
			flushField()
			return fields, nil

		case c == '\r':
			// dropped; a following '\n' terminates the record

		default:
			sawContent = true
			field = append(field, c)
		}
	}
}
