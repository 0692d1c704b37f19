// Package statement turns raw delimited statement text into normalized
// per-row values: tokenization, header-to-field resolution, date and amount
// normalization, and sign/kind resolution.
package statement

import (
	"errors"
	"strings"
)

// ErrEmptyInput is returned when the file has fewer than two non-blank lines
// (a header plus at least one data row).
var ErrEmptyInput = errors.New("statement has no data rows")

// Row is a tokenized statement line. Line is the 1-based position in the
// original text so errors can point at the source file.
type Row struct {
	Line   int
	Fields []string
}

// DetectDelimiter inspects the whole text once: ';' anywhere selects ';',
// otherwise ','.
func DetectDelimiter(text string) rune {
	if strings.ContainsRune(text, ';') {
		return ';'
	}
	return ','
}

// Parse detects the delimiter, rejects empty input and tokenizes the text.
// The first returned row is the header. Blank lines are dropped but do not
// shift the line numbers of the rows that follow them.
func Parse(text string) ([]Row, error) {
	rows := Tokenize(text, DetectDelimiter(text))
	if len(rows) < 2 {
		return nil, ErrEmptyInput
	}
	return rows, nil
}

// Tokenize splits text into rows of fields with a single left-to-right scan.
// Inside quotes the delimiter is literal and a doubled quote emits one quote
// character. A line terminator always ends the row, even inside quotes;
// multi-line quoted fields are not supported. Pure function of its inputs,
// so re-tokenizing the same text is always possible.
func Tokenize(text string, delim rune) []Row {
	var (
		rows     []Row
		fields   []string
		field    strings.Builder
		inQuotes bool
		line     = 1
	)

	endRow := func() {
		if field.Len() > 0 || len(fields) > 0 {
			fields = append(fields, field.String())
			if !blankFields(fields) {
				rows = append(rows, Row{Line: line, Fields: fields})
			}
		}
		fields = nil
		field.Reset()
		inQuotes = false
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				field.WriteRune('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == delim && !inQuotes:
			fields = append(fields, field.String())
			field.Reset()
		case c == '\r':
			// Swallowed; the '\n' that follows ends the row. A bare '\r'
			// also ends the row.
			if i+1 >= len(runes) || runes[i+1] != '\n' {
				endRow()
				line++
			}
		case c == '\n':
			endRow()
			line++
		default:
			field.WriteRune(c)
		}
	}
	endRow()

	return rows
}

func blankFields(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
