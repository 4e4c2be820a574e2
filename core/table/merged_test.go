package table

import (
	"testing"

	perrs "github.com/strogo/oneDAL/pkg/errors"
)

func newLabeledPair(t *testing.T, rows int) (*Homogen[float64], *Homogen[float64]) {
	t.Helper()
	x := NewHomogen[float64](3, 0, DoNotAllocate)
	y := NewHomogen[float64](1, 0, DoNotAllocate)
	for i := 0; i < rows; i++ {
		base := float64(i * 10)
		if err := x.AppendRow([]float64{base, base + 1, base + 2}); err != nil {
			t.Fatalf("appending x row %d failed: %v", i, err)
		}
		if err := y.AppendRow([]float64{base + 9}); err != nil {
			t.Fatalf("appending y row %d failed: %v", i, err)
		}
	}
	return x, y
}

func TestNewMerged_Validation(t *testing.T) {
	x64 := NewHomogen[float64](2, 4, DoAllocate)
	y64 := NewHomogen[float64](1, 4, DoAllocate)
	y32 := NewHomogen[float32](1, 4, DoAllocate)
	yShort := NewHomogen[float64](1, 3, DoAllocate)

	if _, err := NewMerged(x64, y64); err != nil {
		t.Errorf("matching pair should merge: %v", err)
	}
	if _, err := NewMerged(x64, y32); !perrs.Is(err, perrs.ErrTypeMismatch) {
		t.Errorf("mixed widths should fail with ErrTypeMismatch, got %v", err)
	}
	if _, err := NewMerged(x64, yShort); err == nil {
		t.Error("row count mismatch should fail")
	}
	if _, err := NewMerged(nil, y64); err == nil {
		t.Error("nil parent should fail")
	}
}

func TestMerged_ShapeAndGather(t *testing.T) {
	x, y := newLabeledPair(t, 4)

	xy, err := NewMerged(x, y)
	if err != nil {
		t.Fatalf("NewMerged failed: %v", err)
	}
	if xy.Rows() != 4 || xy.Cols() != 4 {
		t.Fatalf("merged shape = (%d, %d), want (4, 4)", xy.Rows(), xy.Cols())
	}

	block, err := xy.RowBlock(1, 2, ReadOnly)
	if err != nil {
		t.Fatalf("RowBlock failed: %v", err)
	}
	defer func() { _ = xy.Release(block) }()

	// Row i of the joined view is [x_i | y_i].
	want := []float64{10, 11, 12, 19, 20, 21, 22, 29}
	got := block.Float64s()
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("joined[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestMerged_ScatterOnRelease(t *testing.T) {
	x := NewHomogen[float64](2, 3, DoAllocate)
	y := NewHomogen[float64](1, 3, DoAllocate)

	xy, err := NewMerged(x, y)
	if err != nil {
		t.Fatalf("NewMerged failed: %v", err)
	}

	block, err := xy.RowBlock(0, 3, WriteOnly)
	if err != nil {
		t.Fatalf("write RowBlock failed: %v", err)
	}
	data := block.Float64s()
	for i := 0; i < 3; i++ {
		data[i*3+0] = float64(i) + 0.1
		data[i*3+1] = float64(i) + 0.2
		data[i*3+2] = float64(100 + i)
	}
	if err := xy.Release(block); err != nil {
		t.Fatalf("Release failed: %v", err)
	}

	yBlock, err := y.RowBlock(0, 3, ReadOnly)
	if err != nil {
		t.Fatalf("reading y back failed: %v", err)
	}
	defer func() { _ = y.Release(yBlock) }()
	for i, v := range yBlock.Float64s() {
		if v != float64(100+i) {
			t.Errorf("y[%d] = %v, want %v", i, v, float64(100+i))
		}
	}

	xBlock, err := x.RowBlock(0, 3, ReadOnly)
	if err != nil {
		t.Fatalf("reading x back failed: %v", err)
	}
	defer func() { _ = x.Release(xBlock) }()
	if xBlock.Float64s()[4] != 2.1 {
		t.Errorf("x[2,0] = %v, want 2.1", xBlock.Float64s()[4])
	}
}

func TestMerged_AppendRowSplits(t *testing.T) {
	x := NewHomogen[float64](4, 0, DoNotAllocate)
	y := NewHomogen[float64](1, 0, DoNotAllocate)

	xy, err := NewMerged(x, y)
	if err != nil {
		t.Fatalf("NewMerged failed: %v", err)
	}

	if err := xy.AppendRow([]float64{1, 2, 3, 4, 42}); err != nil {
		t.Fatalf("AppendRow failed: %v", err)
	}

	if x.Rows() != 1 || y.Rows() != 1 {
		t.Fatalf("parents have (%d, %d) rows, want (1, 1)", x.Rows(), y.Rows())
	}

	yv, err := y.RowBlock(0, 1, ReadOnly)
	if err != nil {
		t.Fatalf("reading y failed: %v", err)
	}
	defer func() { _ = y.Release(yv) }()
	if yv.Float64s()[0] != 42 {
		t.Errorf("response = %v, want 42", yv.Float64s()[0])
	}

	if err := xy.AppendRow([]float64{1, 2}); err == nil {
		t.Error("appending a short record should fail")
	}
}

func TestMerged_Float32RoundTrip(t *testing.T) {
	x := NewHomogen[float32](2, 0, DoNotAllocate)
	y := NewHomogen[float32](1, 0, DoNotAllocate)

	xy, err := NewMerged(x, y)
	if err != nil {
		t.Fatalf("NewMerged failed: %v", err)
	}
	if err := xy.AppendRow([]float64{0.5, 1.5, 2.5}); err != nil {
		t.Fatalf("AppendRow failed: %v", err)
	}

	block, err := xy.RowBlock(0, 1, ReadOnly)
	if err != nil {
		t.Fatalf("RowBlock failed: %v", err)
	}
	defer func() { _ = xy.Release(block) }()

	got := block.Float32s()
	want := []float32{0.5, 1.5, 2.5}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("joined[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestMerged_ReleaseUnknownBlock(t *testing.T) {
	x, y := newLabeledPair(t, 2)
	xy, err := NewMerged(x, y)
	if err != nil {
		t.Fatalf("NewMerged failed: %v", err)
	}

	if err := xy.Release(&RowBlock{}); !perrs.Is(err, perrs.ErrReleasedView) {
		t.Errorf("expected ErrReleasedView, got %v", err)
	}
}
