package dataset

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoHeader is returned when the delimited text has no header row
var ErrNoHeader = errors.New("dataset: missing header row")

// FieldCountError reports a row whose field count differs from the header
type FieldCountError struct {
	Row  int // 1-based data row, header excluded
	Want int
	Got  int
}

func (e *FieldCountError) Error() string {
	return fmt.Sprintf("dataset: row %d has %d fields, header has %d", e.Row, e.Got, e.Want)
}

// SchemaError reports a kept record whose columns differ from the first kept record
type SchemaError struct {
	Row  int
	Want []string
	Got  []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("dataset: row %d columns [%s] do not match [%s]",
		e.Row, strings.Join(e.Got, ", "), strings.Join(e.Want, ", "))
}
