package main

import "flag"
import "fmt"
import "time"
import "strings"
import "strconv"
import "unsafe"
import "math/rand"

import hm "github.com/dustin/go-humanize"
import "github.com/bnclabs/golog"

import "github.com/bnclabs/mempool/malloc"

var options struct {
	n         int
	window    int
	sizes     [2]int // min-size, max-size
	allocator string
	batch     int
}

func argParse() {
	var sizes string

	flag.IntVar(&options.n, "n", 1000000,
		"number of alloc/free operations")
	flag.IntVar(&options.window, "window", 10000,
		"number of live allocations to hold before freeing")
	flag.StringVar(&sizes, "sizes", "",
		"minsize,maxsize - allocate between [minsize,maxsize]")
	flag.StringVar(&options.allocator, "allocator", "mmap",
		"allocator backend, mmap or heap")
	flag.IntVar(&options.batch, "batch", int(malloc.Refillblocks),
		"number of chunks per refill")
	flag.Parse()

	options.sizes = [2]int{1, int(malloc.Maxblock)}
	if sizes != "" {
		for i, s := range strings.Split(sizes, ",") {
			ln, _ := strconv.Atoi(s)
			options.sizes[i] = ln
		}
	}
}

func main() {
	argParse()
	log.SetLogger(nil, map[string]interface{}{
		"log.level": "info", "log.file": "",
	})
	malloc.LogComponents("all")

	setts := malloc.Defaultsettings()
	setts["allocator"] = options.allocator
	setts["refill.blocks"] = int64(options.batch)
	pool := malloc.New(setts)

	type live struct {
		ptr  unsafe.Pointer
		size int64
	}
	window := make([]live, 0, options.window)
	minsz, maxsz := options.sizes[0], options.sizes[1]

	start := time.Now()
	for i := 0; i < options.n; i++ {
		size := int64(minsz + rand.Intn(maxsz-minsz+1))
		ptr := pool.Alloc(size)
		if len(window) == cap(window) {
			off := rand.Intn(len(window))
			pool.Free(window[off].ptr, window[off].size)
			window[off] = live{ptr, size}
		} else {
			window = append(window, live{ptr, size})
		}
	}
	elapsed := time.Since(start)
	for _, l := range window {
		pool.Free(l.ptr, l.size)
	}

	rate := float64(options.n) / elapsed.Seconds()
	fmt.Printf("%v operations in %v, %v ops/sec\n",
		options.n, elapsed.Round(time.Millisecond), hm.Comma(int64(rate)))
	_, heap, _, overhead := pool.Info()
	fmt.Printf("heap %v, overhead %v\n",
		hm.Bytes(uint64(heap)), hm.Bytes(uint64(overhead)))
	pool.Logstatistics("mempool", true)
	pool.Release()
}
