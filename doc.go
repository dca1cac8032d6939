// Package mempool exports a process-wide small-object pool fronting
// the OS allocator.
//
// The pool serves requests up to 128 bytes from per-slab free lists,
// refilled in batches from bump regions obtained from the OS. Larger
// requests bypass the pool. Alloc never returns nil: exhaustion kills
// the process with api.ExitOutofmemory instead of burdening callers
// with nil checks.
//
// Allocation and free are safe for concurrent use from multiple
// goroutines. Memory obtained by the process-wide pool is never given
// back to the OS before process exit.
//
// Embedders that need multiple pools, different settings or fallible
// allocation should use the malloc package directly.
package mempool
