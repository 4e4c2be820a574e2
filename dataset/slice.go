// Package dataset prepares tabular numeric data for algorithm benchmarking:
// it loads delimited-text files into numeric tables and partitions them into
// independently-owned row blocks so online algorithm variants can be fed
// successive chunks of data.
package dataset

import (
	"context"

	"github.com/strogo/oneDAL/core/parallel"
	"github.com/strogo/oneDAL/core/table"
	perrs "github.com/strogo/oneDAL/pkg/errors"
)

// parallelCopyThreshold is the block count above which the partition copy
// loop fans out across workers. Every block copy reads the shared source
// through its own view and writes only its own destination table.
const parallelCopyThreshold = 8

// DataSlice owns one coherent partition of data (for example the training
// partition) as an ordered sequence of feature row blocks and, when the
// slice is labeled, a parallel sequence of response row blocks with matching
// row counts.
type DataSlice struct {
	xBlocks []table.Table
	yBlocks []table.Table
	labeled bool
}

// Batch is one row block of a slice handed to a streaming consumer. Y is
// nil for unlabeled slices.
type Batch struct {
	X table.Table
	Y table.Table
}

// EmptySlice returns the placeholder for an absent partition.
func EmptySlice() DataSlice {
	return DataSlice{}
}

// NewSlice partitions the feature table x into numBlocks row blocks of
// storage type typ. With a single block the slice takes direct ownership of
// x and no copy is made.
func NewSlice(x table.Table, numBlocks int, typ table.Type) (DataSlice, error) {
	if x == nil {
		return DataSlice{}, perrs.NewEmptyTableError("NewSlice")
	}
	s := DataSlice{labeled: false}
	if err := s.initialize(x, nil, numBlocks, typ); err != nil {
		return DataSlice{}, err
	}
	return s, nil
}

// NewLabeledSlice partitions the feature table x and the response table y
// into parallel row-block sequences with block-for-block matching row
// counts.
func NewLabeledSlice(x, y table.Table, numBlocks int, typ table.Type) (DataSlice, error) {
	if x == nil || y == nil {
		return DataSlice{}, perrs.NewEmptyTableError("NewLabeledSlice")
	}
	s := DataSlice{labeled: true}
	if err := s.initialize(x, y, numBlocks, typ); err != nil {
		return DataSlice{}, err
	}
	return s, nil
}

// initialize applies the partitioning algorithm: one block takes direct
// ownership, more than one produces ceil-division deep copies.
func (s *DataSlice) initialize(x, y table.Table, numBlocks int, typ table.Type) error {
	if numBlocks < 1 {
		numBlocks = 1
	}
	s.xBlocks = make([]table.Table, numBlocks)
	if y != nil {
		s.yBlocks = make([]table.Table, numBlocks)
	}

	if numBlocks == 1 {
		s.xBlocks[0] = x
		if y != nil {
			s.yBlocks[0] = y
		}
		return nil
	}

	numRows := x.Rows()
	blockSize := (numRows + numBlocks - 1) / numBlocks

	return parallel.ForEachErr(numBlocks, parallelCopyThreshold, func(i int) error {
		return s.setBlock(i, blockSize, x, y, typ)
	})
}

// setBlock deep-copies block i of x, and of y when present, into freshly
// allocated tables.
func (s *DataSlice) setBlock(blockIndex, blockSize int, x, y table.Table, typ table.Type) error {
	xb, err := copyBlock(x, typ, blockIndex, blockSize)
	if err != nil {
		return err
	}
	s.xBlocks[blockIndex] = xb

	if y != nil {
		yb, err := copyBlock(y, typ, blockIndex, blockSize)
		if err != nil {
			return err
		}
		s.yBlocks[blockIndex] = yb
	}
	return nil
}

// copyBlock copies the rows [blockIndex*blockSize, min(+blockSize, rows))
// of src into a new table of the destination storage type. The source is
// read through a view over its full row range; the flat offset of the block
// is startRow*cols. Trailing blocks may be smaller than blockSize when the
// row count does not divide evenly, down to zero rows when there are more
// blocks than rows.
func copyBlock(src table.Table, typ table.Type, blockIndex, blockSize int) (t table.Table, err error) {
	numCols := src.Cols()
	numRows := src.Rows()
	startRow := blockIndex * blockSize
	if startRow > numRows {
		startRow = numRows
	}
	endRow := startRow + blockSize
	if endRow > numRows {
		endRow = numRows
	}

	readBlock, err := src.RowBlock(0, numRows, table.ReadOnly)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rerr := src.Release(readBlock); err == nil && rerr != nil {
			err = rerr
		}
	}()

	dst, err := table.Create(typ, numCols, endRow-startRow, table.DoAllocate)
	if err != nil {
		return nil, err
	}

	writeBlock, err := dst.RowBlock(0, endRow-startRow, table.WriteOnly)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rerr := dst.Release(writeBlock); err == nil && rerr != nil {
			err = rerr
		}
	}()

	numElems := numCols * (endRow - startRow)
	offset := startRow * numCols
	// Width-preserving copy at the table's native element width.
	switch typ {
	case table.HomogenFloat32:
		copy(writeBlock.Float32s(), readBlock.Float32s()[offset:offset+numElems])
	default:
		copy(writeBlock.Float64s(), readBlock.Float64s()[offset:offset+numElems])
	}

	return dst, nil
}

// X returns the last feature block. Callers that do not block-partition use
// a single-element sequence, so the last block is also the only one.
func (s DataSlice) X() (table.Table, error) {
	if len(s.xBlocks) == 0 {
		return nil, perrs.NewEmptySliceError("data", "x")
	}
	return s.xBlocks[len(s.xBlocks)-1], nil
}

// Y returns the last response block.
func (s DataSlice) Y() (table.Table, error) {
	if len(s.yBlocks) == 0 {
		return nil, perrs.NewEmptySliceError("data", "y")
	}
	return s.yBlocks[len(s.yBlocks)-1], nil
}

// XBlock returns feature block i.
func (s DataSlice) XBlock(blockIndex int) (table.Table, error) {
	if len(s.xBlocks) == 0 || blockIndex < 0 || blockIndex >= len(s.xBlocks) ||
		s.xBlocks[blockIndex] == nil {
		return nil, perrs.NewEmptySliceError("data", "x")
	}
	return s.xBlocks[blockIndex], nil
}

// YBlock returns response block i.
func (s DataSlice) YBlock(blockIndex int) (table.Table, error) {
	if len(s.yBlocks) == 0 || blockIndex < 0 || blockIndex >= len(s.yBlocks) ||
		s.yBlocks[blockIndex] == nil {
		return nil, perrs.NewEmptySliceError("data", "y")
	}
	return s.yBlocks[blockIndex], nil
}

// XY returns the joined view of the last feature and response blocks, with
// the response columns appended after the feature columns.
func (s DataSlice) XY() (table.Table, error) {
	if len(s.xBlocks) == 0 || len(s.yBlocks) == 0 {
		return nil, perrs.NewEmptySliceError("data", "xy")
	}
	xy, err := table.NewMerged(s.xBlocks[len(s.xBlocks)-1], s.yBlocks[len(s.yBlocks)-1])
	if err != nil {
		return nil, err
	}
	return xy, nil
}

// XYBlock returns the joined view of feature and response block i.
func (s DataSlice) XYBlock(blockIndex int) (table.Table, error) {
	x, err := s.XBlock(blockIndex)
	if err != nil {
		return nil, perrs.NewEmptySliceError("data", "xy")
	}
	y, err := s.YBlock(blockIndex)
	if err != nil {
		return nil, perrs.NewEmptySliceError("data", "xy")
	}
	xy, err := table.NewMerged(x, y)
	if err != nil {
		return nil, err
	}
	return xy, nil
}

// Empty reports whether the slice holds no data: an unlabeled slice with no
// feature blocks, or a labeled slice missing either sequence.
func (s DataSlice) Empty() bool {
	if s.labeled {
		return len(s.xBlocks) == 0 || len(s.yBlocks) == 0
	}
	return len(s.xBlocks) == 0
}

// Labeled reports whether the slice carries response blocks.
func (s DataSlice) Labeled() bool {
	return s.labeled
}

// NumBlocks returns the number of row blocks in the slice.
func (s DataSlice) NumBlocks() int {
	return len(s.xBlocks)
}

// Clear releases every owned block. Idempotent.
func (s *DataSlice) Clear() {
	s.xBlocks = nil
	s.yBlocks = nil
}

// Stream emits the slice's blocks in order for online consumers and closes
// the channel after the last one. The stream stops early when ctx is
// canceled.
func (s DataSlice) Stream(ctx context.Context) <-chan Batch {
	out := make(chan Batch)
	go func() {
		defer close(out)
		for i := range s.xBlocks {
			batch := Batch{X: s.xBlocks[i]}
			if s.labeled && i < len(s.yBlocks) {
				batch.Y = s.yBlocks[i]
			}
			select {
			case out <- batch:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
