package school

import (
	"fmt"
	"strings"
)

// DataLoadError reports an input table that is missing, unreadable or not
// parseable as delimited data.
type DataLoadError struct {
	Source string
	Err    error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *DataLoadError) Unwrap() error { return e.Err }

// SchemaError reports required columns absent from the header row.
type SchemaError struct {
	Source  string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: missing required column(s) %s", e.Source, strings.Join(e.Missing, ", "))
}

// IOWriteError reports an output destination that could not be created or
// written.
type IOWriteError struct {
	Dest string
	Err  error
}

func (e *IOWriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Dest, e.Err)
}

func (e *IOWriteError) Unwrap() error { return e.Err }
