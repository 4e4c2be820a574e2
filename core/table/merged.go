package table

import (
	"sync"

	perrs "github.com/strogo/oneDAL/pkg/errors"
)

// Merged is a joined view over a feature table and a response table: the
// response columns appear after the feature columns, backed by the parents'
// own storage. It implements Table and RowAppender, so one pass over a CSV
// file can populate features and responses together and consumers can read
// a labeled block as a single matrix.
//
// Read views gather rows out of both parents into a fresh buffer; write
// views scatter the buffer back into the parents when released. Appended
// rows are split at the feature width.
type Merged struct {
	mu    sync.Mutex
	left  Table
	right Table
	typ   Type

	views map[*RowBlock]AccessMode
}

// NewMerged joins two tables of the same storage type and row count into
// one logical table.
func NewMerged(left, right Table) (*Merged, error) {
	if left == nil || right == nil {
		return nil, perrs.NewEmptyTableError("NewMerged")
	}
	if left.Type() != right.Type() {
		return nil, perrs.WithStack(perrs.ErrTypeMismatch)
	}
	if left.Rows() != right.Rows() {
		return nil, perrs.Newf("dalbench: cannot merge tables with %d and %d rows",
			left.Rows(), right.Rows())
	}
	return &Merged{
		left:  left,
		right: right,
		typ:   left.Type(),
		views: make(map[*RowBlock]AccessMode),
	}, nil
}

// Left returns the feature-side parent table.
func (m *Merged) Left() Table { return m.left }

// Right returns the response-side parent table.
func (m *Merged) Right() Table { return m.right }

// Type implements Table.
func (m *Merged) Type() Type { return m.typ }

// Rows implements Table.
func (m *Merged) Rows() int { return m.left.Rows() }

// Cols implements Table.
func (m *Merged) Cols() int { return m.left.Cols() + m.right.Cols() }

// RowBlock implements Table.
func (m *Merged) RowBlock(first, count int, mode AccessMode) (*RowBlock, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := checkRange("mergedRowBlock", first, count, m.Rows()); err != nil {
		return nil, err
	}
	for live, liveMode := range m.views {
		if mode == ReadOnly && liveMode == ReadOnly {
			continue
		}
		if overlaps(first, count, live.first, live.count) {
			return nil, perrs.NewViewConflictError("mergedRowBlock("+mode.String()+")", first, count)
		}
	}

	block := &RowBlock{
		first: first,
		count: count,
		cols:  m.Cols(),
		mode:  mode,
	}
	switch m.typ {
	case HomogenFloat32:
		block.f32 = make([]float32, count*m.Cols())
	default:
		block.f64 = make([]float64, count*m.Cols())
	}

	if mode == ReadOnly {
		if err := m.gather(block); err != nil {
			return nil, err
		}
	} else {
		block.flush = m.scatter
	}

	m.views[block] = mode
	return block, nil
}

// Release implements Table. Releasing a write view scatters its contents
// back into the parent tables.
func (m *Merged) Release(block *RowBlock) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.views[block]; !ok {
		return perrs.WithStack(perrs.ErrReleasedView)
	}
	if block.flush != nil {
		if err := block.flush(block); err != nil {
			return err
		}
	}
	delete(m.views, block)
	block.invalidate()
	return nil
}

// AppendRow implements RowAppender by splitting the record at the feature
// width. Both parents must support appending.
func (m *Merged) AppendRow(values []float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.views) > 0 {
		return perrs.WithStack(perrs.ErrViewsHeld)
	}

	la, ok := m.left.(RowAppender)
	if !ok {
		return perrs.New("dalbench: merged feature table does not support appending")
	}
	ra, ok := m.right.(RowAppender)
	if !ok {
		return perrs.New("dalbench: merged response table does not support appending")
	}

	split := m.left.Cols()
	if split == 0 {
		// Width inference on the feature side: everything except the
		// response columns belongs to the features.
		split = len(values) - m.right.Cols()
	}
	if split < 0 || split > len(values) {
		return perrs.Newf("dalbench: appended row has %d values, merged table expects %d+%d",
			len(values), m.left.Cols(), m.right.Cols())
	}

	if err := la.AppendRow(values[:split]); err != nil {
		return err
	}
	return ra.AppendRow(values[split:])
}

// gather copies the covered rows of both parents into the block buffer.
func (m *Merged) gather(block *RowBlock) (err error) {
	lb, rb, err := m.acquireParents(block, ReadOnly)
	if err != nil {
		return err
	}
	defer func() { err = m.releaseParents(lb, rb, err) }()

	switch m.typ {
	case HomogenFloat32:
		interleave(block.f32, lb.Float32s(), rb.Float32s(), block.count, m.left.Cols(), m.right.Cols())
	default:
		interleave(block.f64, lb.Float64s(), rb.Float64s(), block.count, m.left.Cols(), m.right.Cols())
	}
	return nil
}

// scatter writes the block buffer back into the covered rows of both
// parents.
func (m *Merged) scatter(block *RowBlock) (err error) {
	lb, rb, err := m.acquireParents(block, WriteOnly)
	if err != nil {
		return err
	}
	defer func() { err = m.releaseParents(lb, rb, err) }()

	switch m.typ {
	case HomogenFloat32:
		deinterleave(block.f32, lb.Float32s(), rb.Float32s(), block.count, m.left.Cols(), m.right.Cols())
	default:
		deinterleave(block.f64, lb.Float64s(), rb.Float64s(), block.count, m.left.Cols(), m.right.Cols())
	}
	return nil
}

func (m *Merged) acquireParents(block *RowBlock, mode AccessMode) (lb, rb *RowBlock, err error) {
	lb, err = m.left.RowBlock(block.first, block.count, mode)
	if err != nil {
		return nil, nil, err
	}
	rb, err = m.right.RowBlock(block.first, block.count, mode)
	if err != nil {
		_ = m.left.Release(lb)
		return nil, nil, err
	}
	return lb, rb, nil
}

func (m *Merged) releaseParents(lb, rb *RowBlock, prev error) error {
	if err := m.right.Release(rb); prev == nil && err != nil {
		prev = err
	}
	if err := m.left.Release(lb); prev == nil && err != nil {
		prev = err
	}
	return prev
}

// interleave builds joined rows [l | r] into dst.
func interleave[F Float](dst, l, r []F, rows, lcols, rcols int) {
	cols := lcols + rcols
	for i := 0; i < rows; i++ {
		copy(dst[i*cols:i*cols+lcols], l[i*lcols:(i+1)*lcols])
		copy(dst[i*cols+lcols:(i+1)*cols], r[i*rcols:(i+1)*rcols])
	}
}

// deinterleave splits joined rows in src back into l and r.
func deinterleave[F Float](src, l, r []F, rows, lcols, rcols int) {
	cols := lcols + rcols
	for i := 0; i < rows; i++ {
		copy(l[i*lcols:(i+1)*lcols], src[i*cols:i*cols+lcols])
		copy(r[i*rcols:(i+1)*rcols], src[i*cols+lcols:(i+1)*cols])
	}
}
