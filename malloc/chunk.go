package malloc

import "unsafe"

import "github.com/bnclabs/mempool/api"

// acquirechunk carve `nblocks` contiguous chunks of `size` bytes from
// the bump region, growing the region from the OS or reclaiming from
// coarser free lists as needed. It returns the chunk base and the
// actual count, which may be lowered but is always >= 1. `size` shall
// be a multiple of Alignment.
//
// Each loop iteration either carves and returns, installs a bigger
// region from the OS, or installs a reclaimed free-list chunk as the
// region. A reclaimed chunk is always >= size, so the iteration after
// a reclaim carves. Growretries bounds the loop against a pathological
// OS allocator, exceeding it is treated as exhaustion.
func (pool *Pool) acquirechunk(size, nblocks int64) (uintptr, int64, error) {
	for attempt := 0; attempt < Growretries; attempt++ {
		totalsize := size * nblocks
		remaining := int64(pool.end - pool.start)

		if remaining >= totalsize {
			chunk := pool.start
			pool.start += uintptr(totalsize)
			return chunk, nblocks, nil

		} else if remaining >= size {
			// region cannot supply the full batch but can supply at
			// least one chunk. Carve what fits and defer the OS call,
			// free lists may fill up before the next miss.
			nblocks = remaining / size
			chunk := pool.start
			pool.start += uintptr(nblocks * size)
			return chunk, nblocks, nil
		}

		// region cannot supply even one chunk. Park the leftover,
		// guaranteed a multiple of Alignment, on its own slab.
		if remaining > 0 {
			pool.fl.push(Slabof(remaining), pool.start)
		}
		pool.start, pool.end = 0, 0

		growby := 2*totalsize + Roundup(pool.totalused>>4)
		if base, err := pool.sys.alloc(growby); err == nil {
			pool.totalused += growby
			pool.start = uintptr(base)
			pool.end = pool.start + uintptr(growby)
			pool.n_grows++
			debugf("malloc: grown by %v bytes, totalused %v", growby, pool.totalused)
			if pool.advisory > 0 && pool.totalused > pool.advisory {
				warnf("malloc: totalused %v exceeds advisory capacity %v",
					pool.totalused, pool.advisory)
			}
			continue
		}

		// OS refused to grow the region. Reclaim the first parked
		// chunk at or above the wanted size and bump within it.
		reclaimed := false
		for sz := size; sz <= Maxblock; sz += Alignment {
			if chunk := pool.fl.pop(Slabof(sz)); chunk != 0 {
				pool.start, pool.end = chunk, chunk+uintptr(sz)
				pool.n_reclaims++
				infof("malloc: OS allocator failed, reclaimed %v byte chunk", sz)
				reclaimed = true
				break
			}
		}
		if reclaimed == false {
			return 0, 0, api.ErrorOutofmemory
		}
	}
	return 0, 0, api.ErrorOutofmemory
}

// refill resolve a free-list miss for `size` sized chunks: acquire a
// batch, hand the first chunk to the caller and chain the surplus, in
// region order, into the slab's free list.
func (pool *Pool) refill(size int64) (unsafe.Pointer, error) {
	chunk, nblocks, err := pool.acquirechunk(size, pool.refillblocks)
	if err != nil {
		return nil, err
	}
	if chunk&uintptr(Alignment-1) != 0 {
		panicerr("refill: chunk %x is not %v byte aligned", chunk, Alignment)
	}
	pool.n_refills++
	slab := Slabof(size)
	for i := nblocks - 1; i >= 1; i-- {
		pool.fl.push(slab, chunk+uintptr(i*size))
	}
	return unsafe.Pointer(chunk), nil
}
