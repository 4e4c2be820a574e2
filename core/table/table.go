// Package table implements the numeric tables consumed by the benchmark
// dataset pipeline: dense row-major matrices of a single floating-point
// width with scoped row-range views, a joined (merged) view over a feature
// and a response table, a storage-type factory, and a CSV data source.
//
// A table's shape is fixed at creation unless it was created with deferred
// allocation, in which case rows grow through AppendRow until the first view
// is taken. Row-range access follows an acquire/release discipline: every
// RowBlock obtained from a table must be released on all exit paths, write
// views require exclusive access over their row range, and read views may
// overlap other read views.
package table

import (
	perrs "github.com/strogo/oneDAL/pkg/errors"
)

// Type tags the concrete storage strategy of a numeric table.
type Type uint8

const (
	// TypeUnknown is the zero value and is never registered.
	TypeUnknown Type = iota
	// HomogenFloat32 is a dense row-major host table of float32 elements.
	HomogenFloat32
	// HomogenFloat64 is a dense row-major host table of float64 elements.
	HomogenFloat64
)

// String returns the registry name of the type tag.
func (t Type) String() string {
	switch t {
	case HomogenFloat32:
		return "homogen_float32"
	case HomogenFloat64:
		return "homogen_float64"
	default:
		return "unknown"
	}
}

// AllocationMode controls whether a table's storage is sized at construction
// or deferred until rows are appended.
type AllocationMode uint8

const (
	// DoAllocate sizes the backing storage at construction.
	DoAllocate AllocationMode = iota
	// DoNotAllocate leaves the table empty; rows are appended later, for
	// example by the CSV source.
	DoNotAllocate
)

// AccessMode selects the access rights of a row-range view.
type AccessMode uint8

const (
	// ReadOnly views may overlap other read-only views.
	ReadOnly AccessMode = iota
	// WriteOnly views require exclusive access over their row range.
	WriteOnly
)

// String returns a short name for the access mode.
func (m AccessMode) String() string {
	if m == WriteOnly {
		return "write"
	}
	return "read"
}

// RowBlock is a scoped view over a contiguous row range of a table. The
// element data is exposed at the table's native width through Float32s or
// Float64s as flat row-major storage. A released block is inert: its data
// accessors return nil.
type RowBlock struct {
	first int
	count int
	cols  int
	mode  AccessMode

	f32 []float32
	f64 []float64

	// owner-managed write-back hook, used by merged views
	flush func(*RowBlock) error
}

// FirstRow returns the index of the first row covered by the block.
func (b *RowBlock) FirstRow() int { return b.first }

// Rows returns the number of rows covered by the block.
func (b *RowBlock) Rows() int { return b.count }

// Cols returns the number of columns per row.
func (b *RowBlock) Cols() int { return b.cols }

// Mode returns the access mode the block was acquired with.
func (b *RowBlock) Mode() AccessMode { return b.mode }

// Float32s returns the block's flat row-major data for float32 tables, or
// nil for other widths and for released blocks.
func (b *RowBlock) Float32s() []float32 { return b.f32 }

// Float64s returns the block's flat row-major data for float64 tables, or
// nil for other widths and for released blocks.
func (b *RowBlock) Float64s() []float64 { return b.f64 }

// invalidate makes the block inert after release.
func (b *RowBlock) invalidate() {
	b.f32 = nil
	b.f64 = nil
	b.flush = nil
}

// Table is the capability surface the dataset pipeline requires from
// tabular storage.
type Table interface {
	// Type returns the storage-type tag of the table.
	Type() Type

	// Rows returns the current number of rows.
	Rows() int

	// Cols returns the number of columns.
	Cols() int

	// RowBlock acquires a scoped view over rows [first, first+count).
	// The view must be released through Release on every exit path.
	RowBlock(first, count int, mode AccessMode) (*RowBlock, error)

	// Release ends a view's lifetime. Releasing a block that was never
	// acquired from this table, or was already released, fails with
	// ErrReleasedView.
	Release(block *RowBlock) error
}

// RowAppender is the deferred-growth mode used while streaming records into
// a table. A table created with zero columns adopts the width of the first
// appended row.
type RowAppender interface {
	AppendRow(values []float64) error
}

// overlaps reports whether two row ranges intersect.
func overlaps(aFirst, aCount, bFirst, bCount int) bool {
	return aFirst < bFirst+bCount && bFirst < aFirst+aCount
}

// checkRange validates a requested row range against the table extent.
func checkRange(op string, first, count, rows int) error {
	if first < 0 || count < 0 || first+count > rows {
		return perrs.NewRowRangeError(op, first, count, rows)
	}
	return nil
}
