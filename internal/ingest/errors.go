package ingest

import "strings"

// MalformedInputError reports content that does not parse as a record list.
type MalformedInputError struct {
	Format string // "JSON", "CSV", "XLSX", "Parquet"
	Err    error
}

func (e *MalformedInputError) Error() string {
	format := e.Format
	if format == "" || strings.EqualFold(format, "JSONL") {
		format = "JSON"
	}
	return "Invalid " + format + " file"
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// ReadError reports a failure to read the input itself.
type ReadError struct {
	Err error
}

func (e *ReadError) Error() string {
	return "Error reading file"
}

func (e *ReadError) Unwrap() error {
	return e.Err
}
