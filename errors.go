package xlsxstyle

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrSnapshotNotFound is returned by a StyleStore when no snapshot exists
// under the requested key.
var ErrSnapshotNotFound = errors.New("xlsxstyle: snapshot not found")

// ErrChecksumMismatch is returned when a stored snapshot fails its checksum.
var ErrChecksumMismatch = errors.New("xlsxstyle: snapshot checksum mismatch")

// RangeError is returned when a numeric style attribute is assigned a value
// outside its documented domain.  The record is left untouched.
type RangeError struct {
	Field string
	Value interface{}
	Want  string
}

func NewRangeError(field string, value interface{}, want string) *RangeError {
	return &RangeError{Field: field, Value: value, Want: want}
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s out of range: %v (want %s)", e.Field, e.Value, e.Want)
}

// InvalidOperationError is returned when a write makes no sense given the
// current state of the record, e.g. colouring a border side that has no line
// style.
type InvalidOperationError struct {
	Op     string
	Reason string
}

func NewInvalidOperationError(op, reason string) *InvalidOperationError {
	return &InvalidOperationError{Op: op, Reason: reason}
}

func (e *InvalidOperationError) Error() string {
	return fmt.Sprintf("invalid operation %s: %s", e.Op, e.Reason)
}

// LookupError is returned when an index does not resolve to a record of the
// named table.
type LookupError struct {
	Table string
	Index int
	Len   int
}

func NewLookupError(table string, index, length int) *LookupError {
	return &LookupError{Table: table, Index: index, Len: length}
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s index %d out of range [0,%d)", e.Table, e.Index, e.Len)
}
