package summary

import (
	"errors"
	"fmt"
)

// EmptyDatasetError is returned when there is no record to select from
type EmptyDatasetError struct{}

func (EmptyDatasetError) Error() string { return "dataset is empty" }

// ErrEmptyDataset matches any EmptyDatasetError via errors.Is
var ErrEmptyDataset error = EmptyDatasetError{}

// DataError reports a record whose values cannot feed the statistics
type DataError struct {
	Location string
	Column   string
	Reason   string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("summary: %s: column %q: %s", e.Location, e.Column, e.Reason)
}

// IsDataError reports whether err wraps a DataError
func IsDataError(err error) bool {
	var de *DataError
	return errors.As(err, &de)
}
