package malloc

import "os"
import "errors"
import "testing"
import "unsafe"

import "github.com/bnclabs/mempool/api"
import s "github.com/prataprc/gosettings"

func testsettings() s.Settings {
	setts := Defaultsettings()
	setts["allocator"] = "heap"
	return setts
}

// OS allocator stub that can be switched to fail.
type testsys struct {
	*sysheap
	fail     bool
	n_allocs int
}

func (sys *testsys) alloc(size int64) (unsafe.Pointer, error) {
	if sys.fail {
		return nil, errors.New("testsys: no memory")
	}
	sys.n_allocs++
	return sys.sysheap.alloc(size)
}

func TestPoolAlignment(t *testing.T) {
	pool := New(testsettings())
	for n := int64(1); n <= Maxblock; n++ {
		ptr := pool.Alloc(n)
		if ptr == nil {
			t.Fatalf("unexpected nil pointer for %v", n)
		} else if x := uintptr(ptr) % uintptr(Alignment); x != 0 {
			t.Errorf("Alloc(%v) pointer %p misaligned by %v", n, ptr, x)
		}
	}
	pool.Release()
}

func TestPoolLifoReuse(t *testing.T) {
	pool := New(testsettings())

	// 9 and 16 byte requests share a slab, most recently freed wins.
	p1 := pool.Alloc(16)
	pool.Free(p1, 16)
	p2 := pool.Alloc(9)
	if p1 != p2 {
		t.Errorf("expected %p, got %p", p1, p2)
	}

	// 8 byte requests come from the slab below.
	p3 := pool.Alloc(8)
	if p3 == p2 {
		t.Errorf("unexpected same chunk for different slabs")
	} else if x, y := Slabof(8), Slabof(9); x+1 != y {
		t.Errorf("expected adjacent slabs, got %v and %v", x, y)
	}
	// 128 byte requests come from the last slab.
	if x := Slabof(128); x != Freelists-1 {
		t.Errorf("expected %v, got %v", Freelists-1, x)
	}
	pool.Release()
}

func TestPoolBypass(t *testing.T) {
	pool := New(testsettings())

	ptr := pool.Alloc(Maxblock + 1)
	if ptr == nil {
		t.Fatalf("unexpected nil pointer")
	} else if x := pool.n_bypass; x != 1 {
		t.Errorf("expected %v, got %v", 1, x)
	}
	regions := pool.sys.(*sysheap).regions
	if x := len(regions); x != 1 {
		t.Errorf("expected %v, got %v", 1, x)
	}
	pool.Free(ptr, Maxblock+1)
	if x := len(regions); x != 0 {
		t.Errorf("expected %v, got %v", 0, x)
	}
	// bypassed memory never lands in a free list
	for slab, n := range pool.fl.nfree {
		if n != 0 {
			t.Errorf("slab %v expected empty, got %v chunks", slab, n)
		}
	}
	pool.Release()
}

func TestPoolZerosize(t *testing.T) {
	pool := New(testsettings())
	ptr := pool.Alloc(0) // served as a 1 byte request
	if ptr == nil {
		t.Fatalf("unexpected nil pointer")
	}
	pool.Free(ptr, 0)
	// the refill parked the batch surplus, the free adds one more
	if x := pool.fl.nfree[0]; x != Refillblocks {
		t.Errorf("expected %v, got %v", Refillblocks, x)
	}
	pool.Release()
}

func TestPoolNegativesize(t *testing.T) {
	pool := New(testsettings())
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		pool.Alloc(-1)
	}()
	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Errorf("expected panic")
			}
		}()
		pool.Free(unsafe.Pointer(&struct{}{}), -1)
	}()
	pool.Release()
}

func TestPoolExitOnOOM(t *testing.T) {
	pool := New(testsettings())
	pool.sys = &testsys{sysheap: newsysheap(), fail: true}

	exitcode := 0
	exit = func(code int) {
		exitcode = code
		panic("exited")
	}
	defer func() {
		exit = os.Exit
		if r := recover(); r == nil {
			t.Errorf("expected process exit")
		} else if exitcode != api.ExitOutofmemory {
			t.Errorf("expected %v, got %v", api.ExitOutofmemory, exitcode)
		}
	}()
	pool.Alloc(8) // must not return
	t.Errorf("unreachable")
}

func TestPoolReleased(t *testing.T) {
	pool := New(testsettings())
	pool.Release()
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("expected panic")
		}
	}()
	pool.Alloc(8)
}

func TestPoolInfo(t *testing.T) {
	pool := New(testsettings())
	ptrs := []unsafe.Pointer{}
	for i := 0; i < 100; i++ {
		ptrs = append(ptrs, pool.Alloc(24))
	}
	_, heap, alloc, overhead := pool.Info()
	if alloc != 100*24 {
		t.Errorf("expected %v, got %v", 100*24, alloc)
	} else if heap < alloc {
		t.Errorf("heap %v below alloc %v", heap, alloc)
	} else if overhead <= 0 {
		t.Errorf("unexpected overhead %v", overhead)
	}

	sizes, utils := pool.Utilization()
	found := false
	for i, size := range sizes {
		if size == 24 {
			found = true
			if utils[i] <= 0 || utils[i] > 100 {
				t.Errorf("unexpected %v", utils[i])
			}
		}
	}
	if found == false {
		t.Errorf("24 byte slab missing in %v", sizes)
	}

	for _, ptr := range ptrs {
		pool.Free(ptr, 24)
	}
	_, _, alloc, _ = pool.Info()
	if alloc != 0 {
		t.Errorf("expected %v, got %v", 0, alloc)
	}

	stats := pool.Stats()
	if x := stats["n_allocs"].(int64); x != 100 {
		t.Errorf("expected %v, got %v", 100, x)
	} else if y := stats["n_frees"].(int64); y != 100 {
		t.Errorf("expected %v, got %v", 100, y)
	}
	pool.Logstatistics("testpool", true)
	pool.Release()
}

func TestDefaultpool(t *testing.T) {
	if Default() != Default() {
		t.Errorf("expected the same pool")
	}
}

func BenchmarkPoolAlloc(b *testing.B) {
	pool := New(testsettings())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pool.Free(pool.Alloc(64), 64)
	}
}

func BenchmarkPoolBypass(b *testing.B) {
	pool := New(testsettings())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pool.Free(pool.Alloc(1024), 1024)
	}
}
