package distributor

import "github.com/framepack/framepack/internal/inventory"

const (
	// DefaultMaxFiles is the default file-count cap per bin.
	DefaultMaxFiles = 1200
	// DefaultMaxBytes is the default cumulative-size cap per bin (4 GiB).
	DefaultMaxBytes = 4 * 1024 * 1024 * 1024
)

// Limits holds the two capacity caps every bin must honour.
type Limits struct {
	// MaxFiles is the maximum number of entries per bin.
	MaxFiles int
	// MaxBytes is the maximum cumulative entry size per bin. A single entry
	// larger than MaxBytes is isolated in a bin of its own, which is the one
	// permitted over-cap case.
	MaxBytes int64
}

// DefaultLimits returns the default capacity caps.
func DefaultLimits() Limits {
	return Limits{MaxFiles: DefaultMaxFiles, MaxBytes: DefaultMaxBytes}
}

// Bin is one destination subdirectory's planned contents. Entries are listed
// in copy order.
type Bin struct {
	// Index is 1-based and contiguous across the plan.
	Index      int
	Entries    []inventory.FileEntry
	TotalBytes int64
}

// Plan is the complete assignment of every input entry to a bin, together
// with the seed that produced it. Re-running with the same entry set and
// seed yields an identical plan.
type Plan struct {
	Seed       uint64
	Bins       []Bin
	TotalFiles int
	TotalBytes int64
}

// Distributor describes the behaviour required from a distribution planner.
type Distributor interface {
	Distribute(entries []inventory.FileEntry, seed *uint64, limits Limits) (*Plan, error)
}
