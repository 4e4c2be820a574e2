package table

import (
	"sync"

	perrs "github.com/strogo/oneDAL/pkg/errors"
)

// Allocator builds a table of a concrete storage strategy. Registered
// allocators are looked up by Type tag through Create.
type Allocator func(cols, rows int, mode AllocationMode) (Table, error)

var (
	registryMu sync.RWMutex
	registry   = map[Type]Allocator{
		HomogenFloat32: func(cols, rows int, mode AllocationMode) (Table, error) {
			return NewHomogen[float32](cols, rows, mode), nil
		},
		HomogenFloat64: func(cols, rows int, mode AllocationMode) (Table, error) {
			return NewHomogen[float64](cols, rows, mode), nil
		},
	}
)

// Register adds or replaces the allocator for a storage-type tag. Packages
// providing additional storage strategies (for example device-resident
// tables) register themselves here.
func Register(typ Type, alloc Allocator) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[typ] = alloc
}

// Create allocates a table of the given storage type and shape.
//
// An unregistered tag fails with UnsupportedTableTypeError. A registered
// allocator that produces no table fails with TableAllocationFailedError.
// Create mutates no global state.
func Create(typ Type, cols, rows int, mode AllocationMode) (Table, error) {
	registryMu.RLock()
	alloc, ok := registry[typ]
	registryMu.RUnlock()

	if !ok {
		return nil, perrs.NewUnsupportedTableTypeError(typ.String())
	}

	tbl, err := alloc(cols, rows, mode)
	if err != nil {
		return nil, err
	}
	if tbl == nil {
		return nil, perrs.NewTableAllocationFailedError(typ.String(), cols, rows)
	}
	return tbl, nil
}
