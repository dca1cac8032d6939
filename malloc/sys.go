package malloc

import "unsafe"

// sysAllocator obtains raw memory from the operating system. Methods
// are always called under the pool lock.
type sysAllocator interface {
	// alloc a region of `size` bytes, 64-bit aligned.
	alloc(size int64) (unsafe.Pointer, error)

	// free a region previously obtained from alloc.
	free(ptr unsafe.Pointer, size int64)

	// release every region still held by this allocator.
	release()
}

// sysheap backend obtains go-heap slices. Regions are pinned in the
// table so the garbage collector keeps them alive for the pool's
// lifetime; a failed make() panics, there is no error to recover.
type sysheap struct {
	regions map[uintptr][]byte
}

func newsysheap() *sysheap {
	return &sysheap{regions: make(map[uintptr][]byte)}
}

func (sys *sysheap) alloc(size int64) (unsafe.Pointer, error) {
	buf := make([]byte, size)
	ptr := unsafe.Pointer(&buf[0])
	sys.regions[uintptr(ptr)] = buf
	return ptr, nil
}

func (sys *sysheap) free(ptr unsafe.Pointer, size int64) {
	delete(sys.regions, uintptr(ptr))
}

func (sys *sysheap) release() {
	sys.regions = make(map[uintptr][]byte)
}
