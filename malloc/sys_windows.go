//go:build windows

package malloc

func newsysmmap() sysAllocator {
	panicerr(`allocator "mmap" not supported on windows, use "heap"`)
	return nil
}
