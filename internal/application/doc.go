// Package application wires the inventory scanner, the distributor, and the
// materializer into one run pipeline. It owns the per-run identity, the
// destination lock that keeps concurrent runs from interleaving, and the run
// report handed back to the CLI.
package application
