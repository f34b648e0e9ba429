// Package materializer turns a finalised distribution plan into directories
// and file copies on a destination filesystem. It owns the "destination must
// be empty" precondition and performs the only writes in the system.
package materializer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/framepack/framepack/internal/distributor"
)

var (
	// ErrDestinationNotEmpty is returned when the destination root already
	// contains entries, to avoid mixing old and new output.
	ErrDestinationNotEmpty = errors.New("destination directory is not empty")
)

// Materializer copies planned bins onto a filesystem.
type Materializer struct {
	fs      afero.Fs
	logger  *zap.Logger
	limiter copyLimiter
}

// Option configures a Materializer.
type Option func(*Materializer)

// WithCopyRate throttles copies to roughly filesPerSecond, smoothing the
// write load on slow destinations. Zero or negative disables throttling.
func WithCopyRate(filesPerSecond float64) Option {
	return func(m *Materializer) {
		m.limiter = newTokenBucketLimiter(filesPerSecond)
	}
}

// New creates a Materializer writing through the provided filesystem.
func New(fs afero.Fs, logger *zap.Logger, opts ...Option) *Materializer {
	m := &Materializer{fs: fs, logger: logger}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// PrepareDestination creates the destination root if needed and verifies it
// holds nothing yet.
func (m *Materializer) PrepareDestination(root string) error {
	if err := m.fs.MkdirAll(root, 0o755); err != nil {
		return fmt.Errorf("create destination %s: %w", root, err)
	}
	infos, err := afero.ReadDir(m.fs, root)
	if err != nil {
		return fmt.Errorf("read destination %s: %w", root, err)
	}
	if len(infos) > 0 {
		return fmt.Errorf("%w: %s", ErrDestinationNotEmpty, root)
	}
	return nil
}

// Materialize creates one numbered directory per bin under root and copies
// every entry into it, in plan order. It stops at the first failure or when
// ctx is cancelled; partially copied output is left in place for inspection.
func (m *Materializer) Materialize(ctx context.Context, plan *distributor.Plan, root string) error {
	for _, bin := range plan.Bins {
		dir := filepath.Join(root, strconv.Itoa(bin.Index))
		if err := m.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create bin directory %s: %w", dir, err)
		}
		m.logger.Debug("materializing bin",
			zap.Int("bin", bin.Index),
			zap.Int("files", len(bin.Entries)),
			zap.Int64("bytes", bin.TotalBytes))

		for _, entry := range bin.Entries {
			if err := m.limiter.wait(ctx); err != nil {
				return err
			}
			if err := m.copyFile(entry.ID, filepath.Join(dir, entry.Name)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (m *Materializer) copyFile(src, dst string) error {
	if _, err := m.fs.Stat(dst); err == nil {
		return fmt.Errorf("destination file already exists: %s", dst)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("check destination file %s: %w", dst, err)
	}

	in, err := m.fs.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := m.fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s -> %s: %w", src, dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close %s: %w", dst, err)
	}
	return nil
}
