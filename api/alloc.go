package api

import "errors"
import "unsafe"

// ErrorOutofmemory returned by the fallible allocation API when neither
// the operating system nor any free list can supply a block.
var ErrorOutofmemory = errors.New("mempool.outofmemory")

// ExitOutofmemory process exit status used by the never-nil allocation
// API when the pool is exhausted.
const ExitOutofmemory = -1

// Mallocer interface for custom memory management.
type Mallocer interface {
	// Slabs allocatable slab of sizes.
	Slabs() (sizes []int64)

	// Alloc allocate a chunk of `n` bytes. Allocated memory is always
	// 64-bit aligned. Never returns nil, exhaustion kills the process
	// with ExitOutofmemory.
	Alloc(n int64) unsafe.Pointer

	// AllocFallible allocate a chunk of `n` bytes, returning
	// ErrorOutofmemory instead of killing the process on exhaustion.
	AllocFallible(n int64) (unsafe.Pointer, error)

	// Free chunk back to the pool. `n` shall be the same byte count
	// that was passed to Alloc for this chunk, mismatch corrupts the
	// pool and is not detected.
	Free(ptr unsafe.Pointer, n int64)

	// Info of memory accounting for this pool.
	Info() (capacity, heap, alloc, overhead int64)

	// Utilization map of slab-size and its utilization.
	Utilization() ([]int, []float64)

	// Release pool and all its resources back to the OS.
	Release()
}
