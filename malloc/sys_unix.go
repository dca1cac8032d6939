//go:build unix

package malloc

import "unsafe"

import "golang.org/x/sys/unix"

// sysmmap backend obtains anonymous private mappings. Pool memory
// lives outside the go heap, the garbage collector never scans it.
type sysmmap struct {
	regions map[uintptr][]byte
}

func newsysmmap() *sysmmap {
	return &sysmmap{regions: make(map[uintptr][]byte)}
}

func (sys *sysmmap) alloc(size int64) (unsafe.Pointer, error) {
	buf, err := unix.Mmap(
		-1, 0, int(size),
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANON)
	if err != nil {
		return nil, err
	}
	ptr := unsafe.Pointer(&buf[0])
	sys.regions[uintptr(ptr)] = buf
	return ptr, nil
}

func (sys *sysmmap) free(ptr unsafe.Pointer, size int64) {
	if buf, ok := sys.regions[uintptr(ptr)]; ok {
		unix.Munmap(buf)
		delete(sys.regions, uintptr(ptr))
	}
}

func (sys *sysmmap) release() {
	for _, buf := range sys.regions {
		unix.Munmap(buf)
	}
	sys.regions = make(map[uintptr][]byte)
}
