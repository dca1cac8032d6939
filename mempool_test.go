package mempool

import "testing"
import "unsafe"

func TestAllocFree(t *testing.T) {
	ptrs := []unsafe.Pointer{}
	for n := int64(1); n <= 128; n++ {
		ptr := Alloc(n)
		if ptr == nil {
			t.Fatalf("unexpected nil pointer for %v", n)
		} else if x := uintptr(ptr) % 8; x != 0 {
			t.Errorf("Alloc(%v) pointer %p misaligned by %v", n, ptr, x)
		}
		ptrs = append(ptrs, ptr)
	}
	for i, ptr := range ptrs {
		Free(ptr, int64(i)+1)
	}
	if _, heap, _, _ := Info(); heap <= 0 {
		t.Errorf("unexpected heap %v", heap)
	}
	Logstatistics("mempool", true)
}

func TestLargeAllocFree(t *testing.T) {
	ptr := Alloc(4096)
	if ptr == nil {
		t.Fatalf("unexpected nil pointer")
	}
	Free(ptr, 4096)
}
