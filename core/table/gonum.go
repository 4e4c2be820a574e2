package table

import (
	"gonum.org/v1/gonum/mat"

	perrs "github.com/strogo/oneDAL/pkg/errors"
)

// AsDense converts a table to a gonum Dense matrix so downstream estimator
// and metric code can consume it directly. The conversion copies and is
// value-exact at the table's native width.
func AsDense(t Table) (d *mat.Dense, err error) {
	if t == nil || t.Rows() == 0 || t.Cols() == 0 {
		return nil, perrs.NewEmptyTableError("AsDense")
	}

	rows, cols := t.Rows(), t.Cols()
	block, err := t.RowBlock(0, rows, ReadOnly)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rerr := t.Release(block); err == nil && rerr != nil {
			err = rerr
		}
	}()

	data := make([]float64, rows*cols)
	switch t.Type() {
	case HomogenFloat32:
		for i, v := range block.Float32s() {
			data[i] = float64(v)
		}
	default:
		copy(data, block.Float64s())
	}
	return mat.NewDense(rows, cols, data), nil
}

// FromDense builds a table of the given storage type from a gonum matrix.
// Useful for adapters and test fixtures.
func FromDense(typ Type, m mat.Matrix) (t Table, err error) {
	rows, cols := m.Dims()
	if rows == 0 || cols == 0 {
		return nil, perrs.NewEmptyTableError("FromDense")
	}

	t, err = Create(typ, cols, rows, DoAllocate)
	if err != nil {
		return nil, err
	}

	block, err := t.RowBlock(0, rows, WriteOnly)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rerr := t.Release(block); err == nil && rerr != nil {
			err = rerr
		}
	}()

	switch typ {
	case HomogenFloat32:
		dst := block.Float32s()
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				dst[i*cols+j] = float32(m.At(i, j))
			}
		}
	default:
		dst := block.Float64s()
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				dst[i*cols+j] = m.At(i, j)
			}
		}
	}
	return t, nil
}
