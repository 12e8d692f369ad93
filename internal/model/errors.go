package model

import (
	"errors"
	"fmt"
)

// IoError reports a file that could not be opened, read or written.
type IoError struct {
	Path string
	Err  error
}

func (e *IoError) Error() string { return fmt.Sprintf("%s: %v", e.Path, e.Err) }
func (e *IoError) Unwrap() error { return e.Err }

// FormatError reports content that violates the expected grammar. Record is
// the 0-based data record (or config file entry) involved, -1 when none.
type FormatError struct {
	Source string
	Record int
	Msg    string
	Err    error
}

func (e *FormatError) Error() string {
	s := e.Msg
	if e.Record >= 0 {
		s = fmt.Sprintf("record %d: %s", e.Record, s)
	}
	if e.Source != "" {
		s = e.Source + ": " + s
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *FormatError) Unwrap() error { return e.Err }

// RangeError reports an index or address outside the addressable range.
type RangeError struct {
	What  string
	Index int
	Len   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s index %d out of range [0,%d)", e.What, e.Index, e.Len)
}

// ValidationError is a rejected write; the target is left unchanged.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string { return fmt.Sprintf("%s: %s", e.Field, e.Msg) }

// IndexError reports a matrix coordinate outside [1,Ports].
type IndexError struct {
	Row, Col, Ports int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("column [%d,%d] outside %dx%d matrix", e.Row, e.Col, e.Ports, e.Ports)
}

// IsRejected reports whether err is a validation rejection.
func IsRejected(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
