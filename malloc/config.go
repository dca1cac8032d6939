package malloc

import s "github.com/prataprc/gosettings"
import sigar "github.com/cloudfoundry/gosigar"

// Alignment chunk sizes and slab sizes are multiples of Alignment.
const Alignment = int64(8)

// Maxblock maximum chunk size served from the pool, larger requests
// bypass the pool and go straight to the OS allocator.
const Maxblock = int64(128)

// Freelists number of slabs, one free list per slab.
const Freelists = int(Maxblock / Alignment)

// Refillblocks default number of chunks acquired in one refill.
const Refillblocks = int64(20)

// Growretries number of consecutive grow-or-reclaim attempts allowed
// inside a single acquire before the pool declares itself exhausted.
const Growretries = 5

// Malloc configurable parameters and default settings.
//
// "allocator" (string, default: "mmap")
//		OS allocator backend, can be "mmap" or "heap". The "mmap"
//		backend obtains anonymous private mappings, the "heap"
//		backend obtains go-heap slices pinned for the pool lifetime.
//
// "refill.blocks" (int64, default: <Refillblocks>)
//		Number of chunks to acquire when a free list misses.
//
// "capacity.advisory" (int64, default: half of free RAM)
//		Advisory ceiling on bytes obtained from the OS. Crossing it
//		logs a warning, it never fails an allocation.
func Defaultsettings() s.Settings {
	_, _, free := getsysmem()
	return s.Settings{
		"allocator":         "mmap",
		"refill.blocks":     Refillblocks,
		"capacity.advisory": int64(free / 2),
	}
}

func getsysmem() (total, used, free uint64) {
	mem := sigar.Mem{}
	mem.Get()
	return mem.Total, mem.Used, mem.Free
}
