package malloc

import "fmt"
import "strings"
import "unsafe"

import gohumanize "github.com/dustin/go-humanize"

// Slabs implement api.Mallocer{} interface.
func (pool *Pool) Slabs() []int64 {
	sizes := make([]int64, Freelists)
	for slab := range sizes {
		sizes[slab] = Slabsize(slab)
	}
	return sizes
}

// Info implement api.Mallocer{} interface. capacity is the advisory
// ceiling, heap the cumulative bytes obtained from the OS for the
// pool, alloc the pooled bytes in caller hands and overhead the
// book-keeping cost. Bypassed allocations are not counted in heap.
func (pool *Pool) Info() (capacity, heap, alloc, overhead int64) {
	pool.mu.Lock()
	defer pool.mu.Unlock()

	for slab, n := range pool.nlive {
		alloc += n * Slabsize(slab)
	}
	overhead = int64(unsafe.Sizeof(*pool))
	return pool.advisory, pool.totalused, alloc, overhead
}

// Utilization implement api.Mallocer{} interface, per slab-size
// percentage of carved chunks presently in caller hands.
func (pool *Pool) Utilization() ([]int, []float64) {
	pool.mu.Lock()
	defer pool.mu.Unlock()

	sizes, utils := []int{}, []float64{}
	for slab := 0; slab < Freelists; slab++ {
		live, parked := pool.nlive[slab], pool.fl.nfree[slab]
		if live+parked == 0 {
			continue
		}
		sizes = append(sizes, int(Slabsize(slab)))
		utils = append(utils, float64(live)*100/float64(live+parked))
	}
	return sizes, utils
}

// Stats return a map of pool statistics that can be marshaled or
// logged.
func (pool *Pool) Stats() map[string]interface{} {
	pool.mu.Lock()
	defer pool.mu.Unlock()

	return map[string]interface{}{
		"totalused":   pool.totalused,
		"bypassbytes": pool.bypassbytes,
		"remaining":   int64(pool.end - pool.start),
		"freebytes":   pool.fl.freebytes(),
		"n_allocs":    pool.n_allocs,
		"n_frees":     pool.n_frees,
		"n_refills":   pool.n_refills,
		"n_grows":     pool.n_grows,
		"n_reclaims":  pool.n_reclaims,
		"n_bypass":    pool.n_bypass,
		"h_sizes":     pool.h_sizes.Fullstats(),
	}
}

// Logstatistics log pool statistics at info level, sizes humanized
// when humanize is true.
func (pool *Pool) Logstatistics(logprefix string, humanize bool) {
	stats := pool.Stats()

	dohumanize := func(val interface{}) interface{} {
		if humanize {
			return gohumanize.Bytes(uint64(val.(int64)))
		}
		return val.(int64)
	}
	used := dohumanize(stats["totalused"])
	free := dohumanize(stats["freebytes"])
	rem := dohumanize(stats["remaining"])
	fmsg := "%v totalused %v, freelists %v, region %v, " +
		"%v allocs %v frees %v refills %v grows %v reclaims\n"
	infof(fmsg, logprefix, used, free, rem,
		stats["n_allocs"], stats["n_frees"], stats["n_refills"],
		stats["n_grows"], stats["n_reclaims"])

	outs := []string{}
	sizes, utils := pool.Utilization()
	for i, size := range sizes {
		outs = append(outs, fmt.Sprintf("  %4v slab-size, utilz: %2.2f%%", size, utils[i]))
	}
	if len(outs) > 0 {
		infof("%v slab utilization:\n%v\n", logprefix, strings.Join(outs, "\n"))
	}
}
