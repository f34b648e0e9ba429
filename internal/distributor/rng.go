package distributor

import (
	"os"
	"time"
)

// zeroSeedSubstitute replaces a zero seed, which would jam the generator in
// the all-zero state.
const zeroSeedSubstitute = 0xA5A5A5A55A5A5A5A

// xorShift64 is the xorshift64 generator used for shuffling. The algorithm
// is fixed: plans must be reproducible from their seed alone, independent of
// platform or release.
type xorShift64 struct {
	state uint64
}

func newXorShift64(seed uint64) *xorShift64 {
	if seed == 0 {
		seed = zeroSeedSubstitute
	}
	return &xorShift64{state: seed}
}

func (r *xorShift64) next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	r.state = x
	return x
}

// randomSeed derives a run seed from the clock and process id, for callers
// that did not supply one. The chosen value is reported in the plan.
func randomSeed() uint64 {
	nanos := uint64(time.Now().UnixNano())
	return nanos ^ uint64(os.Getpid())*0x9E3779B97F4A7C15
}

// shuffle applies a Fisher-Yates permutation driven by rng.
func shuffle[T any](items []T, rng *xorShift64) {
	for i := len(items) - 1; i >= 1; i-- {
		j := int(rng.next() % uint64(i+1))
		items[i], items[j] = items[j], items[i]
	}
}
