package table

import (
	"sync"

	perrs "github.com/strogo/oneDAL/pkg/errors"
)

// Float constrains the element widths a homogeneous table can store.
type Float interface {
	~float32 | ~float64
}

// Homogen is a dense row-major numeric table with elements of a single
// floating-point width. It implements Table and RowAppender.
//
// Views returned by RowBlock alias the backing storage directly, so writes
// through a write view land in the table without a copy-back step. The view
// registry enforces the access discipline at run time.
type Homogen[F Float] struct {
	mu   sync.Mutex
	cols int
	rows int
	data []F

	views map[*RowBlock]AccessMode
}

// NewHomogen creates a homogeneous table of the given shape. With DoAllocate
// the backing storage is sized immediately and every element starts at zero.
// With DoNotAllocate the table starts with zero rows and the rows argument
// is used as a capacity hint for subsequent appends; cols may be zero, in
// which case the width is adopted from the first appended row.
func NewHomogen[F Float](cols, rows int, mode AllocationMode) *Homogen[F] {
	t := &Homogen[F]{
		cols:  cols,
		views: make(map[*RowBlock]AccessMode),
	}
	if mode == DoAllocate {
		t.rows = rows
		t.data = make([]F, cols*rows)
	} else if cols > 0 && rows > 0 {
		t.data = make([]F, 0, cols*rows)
	}
	return t
}

// Type implements Table.
func (t *Homogen[F]) Type() Type {
	var zero F
	switch any(zero).(type) {
	case float32:
		return HomogenFloat32
	default:
		return HomogenFloat64
	}
}

// Rows implements Table.
func (t *Homogen[F]) Rows() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rows
}

// Cols implements Table.
func (t *Homogen[F]) Cols() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cols
}

// RowBlock implements Table. The returned view aliases the backing storage
// for rows [first, first+count).
func (t *Homogen[F]) RowBlock(first, count int, mode AccessMode) (*RowBlock, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := checkRange("rowBlock", first, count, t.rows); err != nil {
		return nil, err
	}
	for live, liveMode := range t.views {
		if mode == ReadOnly && liveMode == ReadOnly {
			continue
		}
		if overlaps(first, count, live.first, live.count) {
			return nil, perrs.NewViewConflictError("rowBlock("+mode.String()+")", first, count)
		}
	}

	block := &RowBlock{
		first: first,
		count: count,
		cols:  t.cols,
		mode:  mode,
	}
	t.bind(block, t.data[first*t.cols:(first+count)*t.cols])
	t.views[block] = mode
	return block, nil
}

// Release implements Table.
func (t *Homogen[F]) Release(block *RowBlock) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.views[block]; !ok {
		return perrs.WithStack(perrs.ErrReleasedView)
	}
	delete(t.views, block)
	block.invalidate()
	return nil
}

// AppendRow implements RowAppender. Appending is only legal while no views
// are live. A zero-column table adopts the width of the first row.
func (t *Homogen[F]) AppendRow(values []float64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(t.views) > 0 {
		return perrs.WithStack(perrs.ErrViewsHeld)
	}
	if t.cols == 0 {
		if len(values) == 0 {
			return perrs.New("dalbench: cannot infer table width from an empty row")
		}
		t.cols = len(values)
	}
	if len(values) != t.cols {
		return perrs.Newf("dalbench: appended row has %d values, table has %d columns",
			len(values), t.cols)
	}

	for _, v := range values {
		t.data = append(t.data, F(v))
	}
	t.rows++
	return nil
}

// bind points the block at the native-width storage slice.
func (t *Homogen[F]) bind(block *RowBlock, data []F) {
	switch d := any(data).(type) {
	case []float32:
		block.f32 = d
	case []float64:
		block.f64 = d
	}
}
