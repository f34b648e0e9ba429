package distributor

import "testing"

func TestXorShift64Deterministic(t *testing.T) {
	t.Parallel()

	a := newXorShift64(12345)
	b := newXorShift64(12345)
	for i := 0; i < 100; i++ {
		if got, want := a.next(), b.next(); got != want {
			t.Fatalf("streams diverged at step %d: %d != %d", i, got, want)
		}
	}
}

func TestXorShift64ZeroSeedSubstitution(t *testing.T) {
	t.Parallel()

	zero := newXorShift64(0)
	fallback := newXorShift64(zeroSeedSubstitute)
	for i := 0; i < 10; i++ {
		if zero.next() != fallback.next() {
			t.Fatalf("zero seed does not follow the substitute stream at step %d", i)
		}
	}
}

func TestXorShift64NeverZero(t *testing.T) {
	t.Parallel()

	rng := newXorShift64(1)
	for i := 0; i < 10_000; i++ {
		if rng.next() == 0 {
			t.Fatalf("generator reached the absorbing zero state at step %d", i)
		}
	}
}

func TestShufflePreservesElements(t *testing.T) {
	t.Parallel()

	items := []int{0, 1, 2, 3, 4, 5, 6, 7}
	shuffle(items, newXorShift64(77))

	seen := make(map[int]bool, len(items))
	for _, v := range items {
		seen[v] = true
	}
	if len(seen) != 8 {
		t.Fatalf("shuffle lost or duplicated elements: %v", items)
	}
}

// TestShuffleFairness checks that over many shuffles each element lands in
// each position at roughly the uniform rate, guarding against positional
// bias in the permutation.
func TestShuffleFairness(t *testing.T) {
	t.Parallel()

	const (
		n      = 8
		rounds = 4000
	)

	rng := newXorShift64(424242)
	counts := make([][]int, n)
	for i := range counts {
		counts[i] = make([]int, n)
	}

	for r := 0; r < rounds; r++ {
		items := make([]int, n)
		for i := range items {
			items[i] = i
		}
		shuffle(items, rng)
		for pos, v := range items {
			counts[v][pos]++
		}
	}

	// Expected rounds/n = 500 per cell; allow a wide band so only a broken
	// generator or a biased shuffle trips this.
	const lo, hi = 350, 650
	for v := range counts {
		for pos, c := range counts[v] {
			if c < lo || c > hi {
				t.Fatalf("element %d landed in position %d %d times, expected roughly %d",
					v, pos, c, rounds/n)
			}
		}
	}
}
