// Package malloc supplies a small-object memory pool that fronts the
// operating system allocator, with a limited scope:
//
//   - Requests up to Maxblock bytes are served from per-slab free
//     lists; larger requests bypass the pool and go straight to the
//     OS allocator.
//   - Memory is obtained from the OS in large blocks and carved into
//     equal sized chunks, several chunks per refill. Once obtained it
//     is not given back to the OS until the pool is Released.
//   - There is no per-chunk metadata. A freed chunk's first word holds
//     the link to the next free chunk of the same slab, hence callers
//     must free a chunk with the same byte count it was allocated
//     with. Mismatch corrupts the free lists and is not detected.
//   - Chunks allocated by this package will always be 64-bit aligned.
//   - Alloc never returns nil. When the OS allocator fails the pool
//     reclaims coarser free-list chunks, and only when those run out
//     too, kills the process with api.ExitOutofmemory. Embedders that
//     prefer an error should use AllocFallible.
//
// Pools are safe for concurrent use from multiple goroutines. They are
// not reentrant: allocation must not be re-entered from code that
// interrupts an in-progress allocation.
package malloc
