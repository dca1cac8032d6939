package malloc

import "unsafe"

// freelists is a bank of per-slab LIFO stacks of freed chunks. The
// link to the next free chunk lives in the first word of the chunk
// itself, so a chunk is either caller-owned opaque bytes or a link,
// never both.
type freelists struct {
	heads [Freelists]uintptr // 0 means empty
	nfree [Freelists]int64   // chunks parked per slab
}

// push chunk to the head of its slab's stack, overwrites the chunk's
// first word.
func (fl *freelists) push(slab int, chunk uintptr) {
	*(*uintptr)(unsafe.Pointer(chunk)) = fl.heads[slab]
	fl.heads[slab] = chunk
	fl.nfree[slab]++
}

// pop the head chunk of slab's stack, 0 if the stack is empty. On
// return the chunk is plain memory again.
func (fl *freelists) pop(slab int) uintptr {
	chunk := fl.heads[slab]
	if chunk != 0 {
		fl.heads[slab] = *(*uintptr)(unsafe.Pointer(chunk))
		fl.nfree[slab]--
	}
	return chunk
}

// freebytes total bytes parked across all slabs.
func (fl *freelists) freebytes() int64 {
	bytes := int64(0)
	for slab, n := range fl.nfree {
		bytes += n * Slabsize(slab)
	}
	return bytes
}
