package table

import (
	"strings"
	"testing"

	perrs "github.com/strogo/oneDAL/pkg/errors"
)

func TestCSVSource_LoadAll(t *testing.T) {
	input := "1.0,2.0,3.0\n4.5, 5.5 ,6.5\n-7,8e2,0.25\n"
	tbl := NewHomogen[float64](0, 0, DoNotAllocate)

	rows, err := NewCSVSourceFromReader(strings.NewReader(input), "inline").LoadAll(tbl)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if rows != 3 {
		t.Errorf("rows loaded = %d, want 3", rows)
	}
	if tbl.Rows() != 3 || tbl.Cols() != 3 {
		t.Errorf("table shape = (%d, %d), want (3, 3)", tbl.Rows(), tbl.Cols())
	}

	block, err := tbl.RowBlock(0, 3, ReadOnly)
	if err != nil {
		t.Fatalf("RowBlock failed: %v", err)
	}
	defer func() { _ = tbl.Release(block) }()

	want := []float64{1, 2, 3, 4.5, 5.5, 6.5, -7, 800, 0.25}
	for i, v := range want {
		if block.Float64s()[i] != v {
			t.Errorf("element %d = %v, want %v", i, block.Float64s()[i], v)
		}
	}
}

func TestCSVSource_CustomDelimiter(t *testing.T) {
	input := "1;2\n3;4\n"
	tbl := NewHomogen[float64](2, 0, DoNotAllocate)

	rows, err := NewCSVSourceFromReader(strings.NewReader(input), "inline", WithComma(';')).LoadAll(tbl)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if rows != 2 {
		t.Errorf("rows loaded = %d, want 2", rows)
	}
}

func TestCSVSource_ParseFailures(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantRow int
	}{
		{"non-numeric field", "1,2\n3,oops\n", 2},
		{"width mismatch", "1,2\n3\n", 2},
		{"quoted garbage", "1,2\n\"a,b\n", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := NewHomogen[float64](0, 0, DoNotAllocate)
			_, err := NewCSVSourceFromReader(strings.NewReader(tt.input), "inline").LoadAll(tbl)

			var csvErr *perrs.CannotReadCSVError
			if !perrs.As(err, &csvErr) {
				t.Fatalf("expected CannotReadCSVError, got %v", err)
			}
			if csvErr.Row != tt.wantRow {
				t.Errorf("failure row = %d, want %d", csvErr.Row, tt.wantRow)
			}
			if csvErr.Path != "inline" {
				t.Errorf("failure path = %q, want %q", csvErr.Path, "inline")
			}
		})
	}
}

func TestCSVSource_MissingFile(t *testing.T) {
	tbl := NewHomogen[float64](0, 0, DoNotAllocate)
	_, err := NewCSVSource("/nonexistent/dir/data.csv").LoadAll(tbl)

	var openErr *perrs.CannotOpenFileError
	if !perrs.As(err, &openErr) {
		t.Fatalf("expected CannotOpenFileError, got %v", err)
	}
	if openErr.Path != "/nonexistent/dir/data.csv" {
		t.Errorf("path = %q", openErr.Path)
	}
}

func TestCSVSource_IntoMergedView(t *testing.T) {
	input := "1,2,3,4,100\n5,6,7,8,200\n"

	x := NewHomogen[float64](4, 0, DoNotAllocate)
	y := NewHomogen[float64](1, 0, DoNotAllocate)
	xy, err := NewMerged(x, y)
	if err != nil {
		t.Fatalf("NewMerged failed: %v", err)
	}

	rows, err := NewCSVSourceFromReader(strings.NewReader(input), "inline").LoadAll(xy)
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if rows != 2 {
		t.Errorf("rows loaded = %d, want 2", rows)
	}

	// Features and responses are populated together from one pass.
	if x.Rows() != 2 || y.Rows() != 2 {
		t.Fatalf("parent rows = (%d, %d), want (2, 2)", x.Rows(), y.Rows())
	}
	yv, err := y.RowBlock(0, 2, ReadOnly)
	if err != nil {
		t.Fatalf("reading responses failed: %v", err)
	}
	defer func() { _ = y.Release(yv) }()
	if yv.Float64s()[0] != 100 || yv.Float64s()[1] != 200 {
		t.Errorf("responses = %v, want [100 200]", yv.Float64s())
	}
}
