// Package distributor partitions an inventory of files into numbered bins in
// reproducibly-randomised order, honouring a per-bin file count cap and a
// per-bin cumulative byte cap.
package distributor

import (
	"sort"

	"github.com/framepack/framepack/internal/inventory"
)

type greedyDistributor struct{}

// New creates a Distributor based on greedy sequential packing of a seeded
// uniform permutation.
func New() Distributor {
	return &greedyDistributor{}
}

// Distribute permutes the entries with the given seed (or a freshly chosen
// one when seed is nil) and packs the permuted sequence left to right,
// closing the current bin whenever the next entry would push it past either
// cap. Entries larger than limits.MaxBytes are placed alone in a bin of
// their own. Every input entry lands in exactly one bin.
func (d *greedyDistributor) Distribute(entries []inventory.FileEntry, seed *uint64, limits Limits) (*Plan, error) {
	if limits.MaxFiles < 1 || limits.MaxBytes < 1 {
		return nil, ErrInvalidLimits
	}

	used := randomSeed()
	if seed != nil {
		used = *seed
	}

	// Order by ID before permuting so the plan depends only on the entry set
	// and the seed, not on directory enumeration order.
	permuted := make([]inventory.FileEntry, len(entries))
	copy(permuted, entries)
	sort.Slice(permuted, func(i, j int) bool { return permuted[i].ID < permuted[j].ID })
	shuffle(permuted, newXorShift64(used))

	plan := &Plan{Seed: used}
	var cur Bin

	closeBin := func() {
		cur.Index = len(plan.Bins) + 1
		plan.Bins = append(plan.Bins, cur)
		cur = Bin{}
	}

	for _, entry := range permuted {
		if entry.Size > limits.MaxBytes {
			// No bin can hold this entry within the byte cap; isolate it so
			// every other bin still honours the cap strictly.
			if len(cur.Entries) > 0 {
				closeBin()
			}
			cur = Bin{Entries: []inventory.FileEntry{entry}, TotalBytes: entry.Size}
			closeBin()
			plan.TotalFiles++
			plan.TotalBytes += entry.Size
			continue
		}

		if len(cur.Entries) > 0 &&
			(len(cur.Entries)+1 > limits.MaxFiles || cur.TotalBytes+entry.Size > limits.MaxBytes) {
			closeBin()
		}

		cur.Entries = append(cur.Entries, entry)
		cur.TotalBytes += entry.Size
		plan.TotalFiles++
		plan.TotalBytes += entry.Size
	}

	if len(cur.Entries) > 0 {
		closeBin()
	}

	return plan, nil
}
