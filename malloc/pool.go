package malloc

import "sync"
import "unsafe"

import "github.com/bnclabs/mempool/api"
import "github.com/bnclabs/mempool/lib"
import s "github.com/prataprc/gosettings"

// Pool of small objects fronting the OS allocator. Requests up to
// Maxblock bytes are rounded up to a slab size and served from that
// slab's free list, refilled in batches from a bump region. Larger
// requests bypass the pool. Zero value is not useful, use New.
type Pool struct {
	// stats, mutated under mu
	totalused   int64 // cumulative bytes obtained from OS for the region
	bypassbytes int64 // cumulative bytes obtained from OS for bypasses
	n_allocs    int64
	n_frees     int64
	n_refills   int64
	n_grows     int64
	n_reclaims  int64
	n_bypass    int64

	start, end uintptr // bump region, start only advances
	fl         freelists
	nlive      [Freelists]int64 // chunks in caller hands per slab
	h_sizes    *lib.SizeHistogram
	sys        sysAllocator
	released   bool
	mu         sync.Mutex

	// settings
	refillblocks int64
	advisory     int64
}

// New create a pool, settings as per Defaultsettings().
func New(setts s.Settings) *Pool {
	pool := &Pool{h_sizes: lib.NewSizeHistogram(Maxblock, Alignment)}
	pool.readsettings(setts)
	return pool
}

func (pool *Pool) readsettings(setts s.Settings) {
	pool.refillblocks = setts.Int64("refill.blocks")
	pool.advisory = setts.Int64("capacity.advisory")
	if pool.refillblocks < 1 {
		panicerr("refill.blocks %v shall be >= 1", pool.refillblocks)
	}
	switch allocator := setts.String("allocator"); allocator {
	case "mmap":
		pool.sys = newsysmmap()
	case "heap":
		pool.sys = newsysheap()
	default:
		panicerr("unknown allocator %q", allocator)
	}
}

//---- operations

// Alloc implement api.Mallocer{} interface. Never returns nil: on
// exhaustion the process is killed with api.ExitOutofmemory.
func (pool *Pool) Alloc(n int64) unsafe.Pointer {
	ptr, err := pool.AllocFallible(n)
	if err != nil {
		errorf("malloc.Alloc(%v): %v", n, err)
		exit(api.ExitOutofmemory)
	}
	return ptr
}

// AllocFallible implement api.Mallocer{} interface. Same as Alloc but
// returns api.ErrorOutofmemory instead of killing the process.
func (pool *Pool) AllocFallible(n int64) (unsafe.Pointer, error) {
	if n < 0 {
		panicerr("malloc.Alloc(): negative size %v", n)
	} else if n == 0 {
		n = 1
	}

	pool.mu.Lock()
	defer pool.mu.Unlock()

	if pool.released {
		panicerr("pool released")
	}
	pool.n_allocs++
	pool.h_sizes.Add(n)

	if n > Maxblock { // bypass, no pooling
		ptr, err := pool.sys.alloc(n)
		if err != nil {
			errorf("malloc: bypass alloc(%v): %v", n, err)
			return nil, api.ErrorOutofmemory
		}
		pool.n_bypass++
		pool.bypassbytes += n
		return ptr, nil
	}

	slab := Slabof(n)
	if chunk := pool.fl.pop(slab); chunk != 0 {
		pool.nlive[slab]++
		return unsafe.Pointer(chunk), nil
	}
	ptr, err := pool.refill(Slabsize(slab))
	if err != nil {
		return nil, err
	}
	pool.nlive[slab]++
	return ptr, nil
}

// Free implement api.Mallocer{} interface. `n` shall be the byte count
// passed to Alloc for this chunk, mismatch silently corrupts the pool.
func (pool *Pool) Free(ptr unsafe.Pointer, n int64) {
	if ptr == nil {
		panicerr("malloc.Free(): nil pointer")
	} else if n < 0 {
		panicerr("malloc.Free(): negative size %v", n)
	} else if n == 0 {
		n = 1
	}

	pool.mu.Lock()
	defer pool.mu.Unlock()

	if pool.released {
		panicerr("pool released")
	}
	pool.n_frees++

	if n > Maxblock {
		pool.sys.free(ptr, n)
		return
	}
	slab := Slabof(n)
	pool.fl.push(slab, uintptr(ptr))
	pool.nlive[slab]--
}

// Release implement api.Mallocer{} interface, give every region back
// to the OS. Outstanding chunks turn invalid, subsequent operations
// on the pool panic.
func (pool *Pool) Release() {
	pool.mu.Lock()
	defer pool.mu.Unlock()

	if pool.released {
		panicerr("pool released")
	}
	pool.sys.release()
	pool.fl = freelists{}
	pool.nlive = [Freelists]int64{}
	pool.start, pool.end = 0, 0
	pool.released = true
}

//---- process-wide pool

var defaultpool *Pool
var defaultonce sync.Once

// Default the process-wide pool, created lazily on first use with
// Defaultsettings() and never released.
func Default() *Pool {
	defaultonce.Do(func() {
		defaultpool = New(Defaultsettings())
	})
	return defaultpool
}
