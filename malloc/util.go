package malloc

import "os"
import "fmt"

// Roundup smallest multiple of Alignment >= bytes.
func Roundup(bytes int64) int64 {
	return (bytes + Alignment - 1) &^ (Alignment - 1)
}

// Slabof index of the slab serving `bytes` sized requests, valid for
// 1 <= bytes <= Maxblock.
func Slabof(bytes int64) int {
	return int((bytes+Alignment-1)/Alignment) - 1
}

// Slabsize chunk size served by slab.
func Slabsize(slab int) int64 {
	return int64(slab+1) * Alignment
}

func panicerr(fmsg string, args ...interface{}) {
	panic(fmt.Errorf(fmsg, args...))
}

// exit hook for the never-nil allocation path, tests override it.
var exit = os.Exit
