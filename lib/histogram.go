package lib

import "fmt"
import "strings"

// SizeHistogram statistical histogram over allocation request sizes.
// Buckets are one per slab between `align` and `maxblock`, plus a
// trailing bucket for requests that bypass the slabs.
type SizeHistogram struct {
	// stats
	n      int64
	minval int64
	maxval int64
	sum    int64
	// setup
	init     bool
	align    int64
	maxblock int64
	buckets  []int64
}

// NewSizeHistogram return a new histogram object, maxblock should be
// a multiple of align.
func NewSizeHistogram(maxblock, align int64) *SizeHistogram {
	h := &SizeHistogram{align: align, maxblock: maxblock}
	h.buckets = make([]int64, (maxblock/align)+1)
	return h
}

// Add a sample to this histogram.
func (h *SizeHistogram) Add(sample int64) {
	h.n++
	h.sum += sample
	if h.init == false || sample < h.minval {
		h.minval = sample
		h.init = true
	}
	if h.maxval < sample {
		h.maxval = sample
	}
	if sample > h.maxblock {
		h.buckets[len(h.buckets)-1]++
	} else {
		h.buckets[(sample+h.align-1)/h.align-1]++
	}
}

// Min return minimum sample value.
func (h *SizeHistogram) Min() int64 {
	return h.minval
}

// Max return maximum sample value.
func (h *SizeHistogram) Max() int64 {
	return h.maxval
}

// Samples return total number of samples in the set.
func (h *SizeHistogram) Samples() int64 {
	return h.n
}

// Mean return the average sample value.
func (h *SizeHistogram) Mean() int64 {
	if h.n == 0 {
		return 0
	}
	return h.sum / h.n
}

// Fullstats return a map of histogram stats that can be used for
// marshaling or logging.
func (h *SizeHistogram) Fullstats() map[string]interface{} {
	buckets := map[string]int64{}
	for i, count := range h.buckets[:len(h.buckets)-1] {
		if count > 0 {
			slabsize := int64(i+1) * h.align
			buckets[fmt.Sprintf("%v", slabsize)] = count
		}
	}
	if count := h.buckets[len(h.buckets)-1]; count > 0 {
		buckets[fmt.Sprintf(">%v", h.maxblock)] = count
	}
	return map[string]interface{}{
		"samples": h.Samples(),
		"min":     h.Min(),
		"max":     h.Max(),
		"mean":    h.Mean(),
		"buckets": buckets,
	}
}

// Logstring return human readable string of bucket counts.
func (h *SizeHistogram) Logstring() string {
	outs := []string{}
	for i, count := range h.buckets[:len(h.buckets)-1] {
		if count > 0 {
			slabsize := int64(i+1) * h.align
			outs = append(outs, fmt.Sprintf("%v:%v", slabsize, count))
		}
	}
	if count := h.buckets[len(h.buckets)-1]; count > 0 {
		outs = append(outs, fmt.Sprintf(">%v:%v", h.maxblock, count))
	}
	return strings.Join(outs, ", ")
}
