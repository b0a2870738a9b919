package catalog

import "math/bits"

// residencyBitmap tracks, for one column, which segments are GPU-resident:
// one bit per segment index, meaning "segment resides on GPU". It is stored
// as packed uint64 words so the popcount used for tot_seg_in_GPU is a
// handful of machine words rather than a loop over bool.
type residencyBitmap struct {
	words []uint64
	n     int // number of segments tracked.
}

// newResidencyBitmap allocates a bitmap sized to hold n segment bits, all
// initially clear (CPU-only).
func newResidencyBitmap(n int) *residencyBitmap {
	return &residencyBitmap{words: make([]uint64, (n+63)/64), n: n}
}

// set marks segmentIndex resident (gpu=true) or not resident (gpu=false) on
// the GPU. Returns whether the bit actually changed, so callers can keep an
// incremental popcount without rescanning.
func (b *residencyBitmap) set(segmentIndex int, gpu bool) bool {
	word, bit := segmentIndex/64, uint(segmentIndex%64)
	before := b.words[word]&(1<<bit) != 0
	if gpu {
		b.words[word] |= 1 << bit
	} else {
		b.words[word] &^= 1 << bit
	}
	return before != gpu
}

// get reports whether segmentIndex currently resides on the GPU.
func (b *residencyBitmap) get(segmentIndex int) bool {
	word, bit := segmentIndex/64, uint(segmentIndex%64)
	return b.words[word]&(1<<bit) != 0
}

// popcount returns the number of segments currently resident on the GPU —
// tot_seg_in_GPU equals the popcount of that column's bitmap row.
func (b *residencyBitmap) popcount() int {
	total := 0
	for _, w := range b.words {
		total += bits.OnesCount64(w)
	}
	return total
}
