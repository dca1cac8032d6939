package mempool

import "unsafe"

import "github.com/bnclabs/mempool/malloc"

// Alloc allocate `n` bytes from the process-wide pool. Returned
// memory is 64-bit aligned and never nil, exhaustion kills the
// process with api.ExitOutofmemory.
func Alloc(n int64) unsafe.Pointer {
	return malloc.Default().Alloc(n)
}

// Free give back memory obtained from Alloc. `n` shall be the same
// byte count passed to Alloc for this pointer, mismatch silently
// corrupts the pool.
func Free(ptr unsafe.Pointer, n int64) {
	malloc.Default().Free(ptr, n)
}

// Info memory accounting of the process-wide pool.
func Info() (capacity, heap, alloc, overhead int64) {
	return malloc.Default().Info()
}

// Logstatistics log statistics of the process-wide pool at info
// level.
func Logstatistics(logprefix string, humanize bool) {
	malloc.Default().Logstatistics(logprefix, humanize)
}
