// Package errors provides the error handling layer for the benchmark dataset
// tooling. Every failure raised by the table and dataset packages is a typed,
// structured error carrying the context needed to diagnose a misconfigured
// benchmark run, wrapped with a cockroachdb/errors stack trace.
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	Slice and table availability errors
//
// ===========================================================================

// EmptySliceError is raised when a dataset role (train/test/full/index) or a
// slice part (X/Y block sequence) was never populated but is being accessed.
type EmptySliceError struct {
	Role string // dataset role, e.g. "train", "full", "full|train"
	Part string // slice part, e.g. "x", "y", "xy"
}

func (e *EmptySliceError) Error() string {
	if e.Part != "" {
		return fmt.Sprintf("dalbench: %s slice does not contain %s blocks", e.Role, e.Part)
	}
	return fmt.Sprintf("dalbench: %s slice of the dataset is empty", e.Role)
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *EmptySliceError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("role", e.Role).
		Str("part", e.Part).
		Str("type", "EmptySliceError")
}

// NewEmptySliceError creates a new EmptySliceError with a stack trace.
func NewEmptySliceError(role, part string) error {
	err := &EmptySliceError{Role: role, Part: part}
	return errors.WithStack(err)
}

// EmptyTableError is raised when an operation receives a table that is
// structurally absent, for example a nil block slot inside a populated slice.
type EmptyTableError struct {
	Op string
}

func (e *EmptyTableError) Error() string {
	return fmt.Sprintf("dalbench: %s: numeric table is empty", e.Op)
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *EmptyTableError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Str("type", "EmptyTableError")
}

// NewEmptyTableError creates a new EmptyTableError with a stack trace.
func NewEmptyTableError(op string) error {
	err := &EmptyTableError{Op: op}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Table factory errors
//
// ===========================================================================

// UnsupportedTableTypeError is raised by the table factory when the requested
// storage-type tag has no registered allocator. Always a configuration error.
type UnsupportedTableTypeError struct {
	Type string
}

func (e *UnsupportedTableTypeError) Error() string {
	return fmt.Sprintf("dalbench: numeric table type %q is not implemented", e.Type)
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *UnsupportedTableTypeError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("table_type", e.Type).
		Str("type", "UnsupportedTableTypeError")
}

// NewUnsupportedTableTypeError creates a new UnsupportedTableTypeError with a
// stack trace.
func NewUnsupportedTableTypeError(tableType string) error {
	err := &UnsupportedTableTypeError{Type: tableType}
	return errors.WithStack(err)
}

// TableAllocationFailedError is raised when a registered allocator was
// selected but produced no usable table. Treated as resource exhaustion and
// fatal to the current load.
type TableAllocationFailedError struct {
	Type string
	Cols int
	Rows int
}

func (e *TableAllocationFailedError) Error() string {
	return fmt.Sprintf("dalbench: allocation of a %q table with %d columns and %d rows produced an empty table",
		e.Type, e.Cols, e.Rows)
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *TableAllocationFailedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("table_type", e.Type).
		Int("cols", e.Cols).
		Int("rows", e.Rows).
		Str("type", "TableAllocationFailedError")
}

// NewTableAllocationFailedError creates a new TableAllocationFailedError with
// a stack trace.
func NewTableAllocationFailedError(tableType string, cols, rows int) error {
	err := &TableAllocationFailedError{Type: tableType, Cols: cols, Rows: rows}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Row-view discipline errors
//
// ===========================================================================

// ViewConflictError is raised when acquiring a row-range view would violate
// the access discipline: a write view overlapping any live view, or a read
// view overlapping a live write view.
type ViewConflictError struct {
	Op    string
	First int
	Count int
}

func (e *ViewConflictError) Error() string {
	return fmt.Sprintf("dalbench: %s: row range [%d, %d) conflicts with a live view",
		e.Op, e.First, e.First+e.Count)
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *ViewConflictError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("first_row", e.First).
		Int("num_rows", e.Count).
		Str("type", "ViewConflictError")
}

// NewViewConflictError creates a new ViewConflictError with a stack trace.
func NewViewConflictError(op string, first, count int) error {
	err := &ViewConflictError{Op: op, First: first, Count: count}
	return errors.WithStack(err)
}

// RowRangeError is raised when a requested row range does not fit inside the
// table it was requested from.
type RowRangeError struct {
	Op    string
	First int
	Count int
	Rows  int
}

func (e *RowRangeError) Error() string {
	return fmt.Sprintf("dalbench: %s: row range [%d, %d) is outside table with %d rows",
		e.Op, e.First, e.First+e.Count, e.Rows)
}

// NewRowRangeError creates a new RowRangeError with a stack trace.
func NewRowRangeError(op string, first, count, rows int) error {
	err := &RowRangeError{Op: op, First: first, Count: count, Rows: rows}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Dataset loading errors
//
// ===========================================================================

// CannotOpenFileError is raised when a configured dataset path does not
// resolve to a readable file. Hint carries the caller-supplied diagnostic
// suffix configured through the loader's OnError option.
type CannotOpenFileError struct {
	Path string
	Hint string
}

func (e *CannotOpenFileError) Error() string {
	msg := fmt.Sprintf("dalbench: cannot open dataset file '%s'", e.Path)
	if e.Hint != "" {
		msg += ". " + e.Hint
	}
	return msg
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *CannotOpenFileError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("path", e.Path).
		Str("hint", e.Hint).
		Str("type", "CannotOpenFileError")
}

// NewCannotOpenFileError creates a new CannotOpenFileError with a stack trace.
func NewCannotOpenFileError(path, hint string) error {
	err := &CannotOpenFileError{Path: path, Hint: hint}
	return errors.WithStack(err)
}

// CannotReadCSVError is raised when the CSV parse reports failure after the
// file was opened: malformed rows, width mismatches, non-numeric fields.
type CannotReadCSVError struct {
	Path   string
	Row    int // 1-based row of the failure, 0 when unknown
	Reason string
}

func (e *CannotReadCSVError) Error() string {
	if e.Row > 0 {
		return fmt.Sprintf("dalbench: cannot read CSV file '%s': row %d: %s", e.Path, e.Row, e.Reason)
	}
	return fmt.Sprintf("dalbench: cannot read CSV file '%s': %s", e.Path, e.Reason)
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *CannotReadCSVError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("path", e.Path).
		Int("row", e.Row).
		Str("reason", e.Reason).
		Str("type", "CannotReadCSVError")
}

// NewCannotReadCSVError creates a new CannotReadCSVError with a stack trace.
func NewCannotReadCSVError(path string, row int, reason string) error {
	err := &CannotReadCSVError{Path: path, Row: row, Reason: reason}
	return errors.WithStack(err)
}

// CannotLoadDatasetError is raised when a precondition of the loading
// pipeline is not met, before any file I/O is attempted.
type CannotLoadDatasetError struct {
	Path   string
	Reason string
}

func (e *CannotLoadDatasetError) Error() string {
	return fmt.Sprintf("dalbench: cannot load dataset '%s': %s", e.Path, e.Reason)
}

// MarshalZerologObject adds structured error information to a zerolog event.
func (e *CannotLoadDatasetError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("path", e.Path).
		Str("reason", e.Reason).
		Str("type", "CannotLoadDatasetError")
}

// NewCannotLoadDatasetError creates a new CannotLoadDatasetError with a stack
// trace.
func NewCannotLoadDatasetError(path, reason string) error {
	err := &CannotLoadDatasetError{Path: path, Reason: reason}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err matches the target error.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As reports whether err can be cast to the target type.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an existing error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an existing error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack attaches a stack trace to an error.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	Common error variables
//
// ===========================================================================

var (
	// ErrReleasedView is returned when a released row view is used or
	// released again through the owning table.
	ErrReleasedView = New("dalbench: row view already released")

	// ErrViewsHeld is returned when a table mutation (row append) is
	// attempted while row views are live.
	ErrViewsHeld = New("dalbench: table has live row views")

	// ErrTypeMismatch is returned when two tables of different storage
	// types are combined into a joined view.
	ErrTypeMismatch = New("dalbench: numeric table types do not match")
)
