package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"iter"
	"strings"

	"github.com/ppiankov/noisepop/internal/model"
)

const utf8BOM = "\uFEFF"

// ReadCSV lazily yields header-keyed rows from delimited text. Iteration
// stops after the first error.
func ReadCSV(r io.Reader, comma rune) iter.Seq2[model.RawRecord, error] {
	return func(yield func(model.RawRecord, error) bool) {
		cr := csv.NewReader(r)
		cr.FieldsPerRecord = -1
		if comma != 0 {
			cr.Comma = comma
		}

		header, err := cr.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				yield(nil, ErrNoHeader)
				return
			}
			yield(nil, fmt.Errorf("read header: %w", err))
			return
		}
		if len(header) > 0 {
			header[0] = strings.TrimPrefix(header[0], utf8BOM)
		}
		for i := range header {
			header[i] = strings.TrimSpace(header[i])
		}

		for row := 1; ; row++ {
			fields, err := cr.Read()
			if err != nil {
				if errors.Is(err, io.EOF) {
					return
				}
				yield(nil, fmt.Errorf("read row %d: %w", row, err))
				return
			}
			if len(fields) != len(header) {
				yield(nil, &FieldCountError{Row: row, Want: len(header), Got: len(fields)})
				return
			}

			rec := make(model.RawRecord, len(header))
			for i, name := range header {
				rec[i] = model.RawField{Name: name, Value: fields[i]}
			}
			if !yield(rec, nil) {
				return
			}
		}
	}
}

// ParseComma validates a single-character separator; empty means ','
func ParseComma(s string) (rune, error) {
	if s == "" {
		return ',', nil
	}
	if s == `\t` {
		return '\t', nil
	}
	runes := []rune(s)
	if len(runes) != 1 {
		return 0, fmt.Errorf("separator must be a single character, got %q", s)
	}
	switch runes[0] {
	case '\r', '\n', '"', '\uFFFD':
		return 0, fmt.Errorf("invalid separator %q", s)
	}
	return runes[0], nil
}
