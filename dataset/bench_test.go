package dataset

import (
	"testing"

	"github.com/strogo/oneDAL/core/table"
)

func benchmarkPartition(b *testing.B, rows, numBlocks int) {
	const cols = 16
	src, err := table.Create(table.HomogenFloat64, cols, rows, table.DoAllocate)
	if err != nil {
		b.Fatalf("Create failed: %v", err)
	}
	block, err := src.RowBlock(0, rows, table.WriteOnly)
	if err != nil {
		b.Fatalf("write view failed: %v", err)
	}
	for i := range block.Float64s() {
		block.Float64s()[i] = float64(i)
	}
	if err := src.Release(block); err != nil {
		b.Fatalf("release failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := NewSlice(src, numBlocks, table.HomogenFloat64); err != nil {
			b.Fatalf("NewSlice failed: %v", err)
		}
	}
}

func BenchmarkPartition10000x4(b *testing.B)   { benchmarkPartition(b, 10000, 4) }
func BenchmarkPartition10000x32(b *testing.B)  { benchmarkPartition(b, 10000, 32) }
func BenchmarkPartition100000x16(b *testing.B) { benchmarkPartition(b, 100000, 16) }
