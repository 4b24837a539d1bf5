// Package vsv registers functions that read values out of a single
// delimiter-separated record, with RFC 4180 quoting.
//
// The separator defaults to a comma and may be any single rune, e.g. '\t'
// or '|'.
package vsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/nerrad567/sqlean-go/internal/ext/sqlfn"
)

// ErrInvalidSeparator is returned when the separator is not a single rune
// usable by the CSV reader.
var ErrInvalidSeparator = errors.New("vsv: separator must be a single character")

// ErrMultipleRecords is returned when the input holds more than one record.
var ErrMultipleRecords = errors.New("vsv: input contains more than one record")

// Init registers the vsv functions on conn.
func Init(conn sqlfn.Conn) error {
	return sqlfn.Register(conn,
		sqlfn.Scalar("vsv_field", Field),
		sqlfn.Scalar("vsv_count", Count),
	)
}

func separator(sep []string) (rune, error) {
	if len(sep) == 0 {
		return ',', nil
	}
	s := sep[0]
	if s == `\t` {
		s = "\t"
	}
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || size != len(s) || r == '"' || r == '\r' || r == '\n' || r == utf8.RuneError {
		return 0, fmt.Errorf("%w: %q", ErrInvalidSeparator, s)
	}
	return r, nil
}

// parse reads exactly one record. A trailing line break is allowed.
func parse(record string, sep []string) ([]string, error) {
	comma, err := separator(sep)
	if err != nil {
		return nil, err
	}
	r := csv.NewReader(strings.NewReader(record))
	r.Comma = comma
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	fields, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("parsing record: %w", err)
	}
	if _, err := r.Read(); !errors.Is(err, io.EOF) {
		return nil, ErrMultipleRecords
	}
	return fields, nil
}

// Field returns the n-th (1-based) field of record, or NULL when the
// record has fewer fields.
func Field(record string, n int64, sep ...string) (any, error) {
	if record == "" {
		return nil, nil
	}
	fields, err := parse(record, sep)
	if err != nil {
		return nil, err
	}
	if n < 1 || n > int64(len(fields)) {
		return nil, nil
	}
	return fields[n-1], nil
}

// Count returns the number of fields in record.
func Count(record string, sep ...string) (int64, error) {
	if record == "" {
		return 0, nil
	}
	fields, err := parse(record, sep)
	if err != nil {
		return 0, err
	}
	return int64(len(fields)), nil
}
