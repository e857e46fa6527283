package main

import (
	"errors"
	"fmt"
)

// Conversion failure kinds. The CLI matches on these with errors.Is to pick
// exit messaging; ConvertError carries the location context.
var (
	ErrEmptyInput           = errors.New("no CREATE TABLE statements found")
	ErrMalformedStatement   = errors.New("malformed statement")
	ErrUnsupportedConstruct = errors.New("unsupported construct")
	ErrDuplicateTableName   = errors.New("duplicate table name")
	ErrStructuralMismatch   = errors.New("structural mismatch")
)

// ConvertError is a conversion failure with enough context to report a
// precise location: the 1-based statement index and the offending table
// name, when known.
type ConvertError struct {
	Kind      error
	Statement int
	Table     string
	Detail    string
}

func (e *ConvertError) Error() string {
	msg := e.Kind.Error()
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	switch {
	case e.Statement > 0 && e.Table != "":
		return fmt.Sprintf("statement %d (table %q): %s", e.Statement, e.Table, msg)
	case e.Statement > 0:
		return fmt.Sprintf("statement %d: %s", e.Statement, msg)
	case e.Table != "":
		return fmt.Sprintf("table %q: %s", e.Table, msg)
	}
	return msg
}

func (e *ConvertError) Unwrap() error { return e.Kind }

func convErr(kind error, stmt int, table, format string, args ...any) *ConvertError {
	return &ConvertError{
		Kind:      kind,
		Statement: stmt,
		Table:     table,
		Detail:    fmt.Sprintf(format, args...),
	}
}

// errf is fmt.Errorf without the import noise in the parser; these errors
// are always wrapped into a ConvertError with location context.
func errf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}
