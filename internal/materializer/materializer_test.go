package materializer

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/framepack/framepack/internal/distributor"
	"github.com/framepack/framepack/internal/inventory"
)

func sourceFile(t *testing.T, fs afero.Fs, path string, content []byte) inventory.FileEntry {
	t.Helper()

	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
	if err := afero.WriteFile(fs, path, content, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return inventory.FileEntry{ID: path, Name: filepath.Base(path), Size: int64(len(content))}
}

func planOf(bins ...distributor.Bin) *distributor.Plan {
	plan := &distributor.Plan{Bins: bins}
	for _, bin := range bins {
		plan.TotalFiles += len(bin.Entries)
		plan.TotalBytes += bin.TotalBytes
	}
	return plan
}

func TestMaterializeCreatesNumberedFolders(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	a := sourceFile(t, fs, "/src/a.jpg", []byte("aaaa"))
	b := sourceFile(t, fs, "/src/b.jpg", []byte("bb"))
	c := sourceFile(t, fs, "/src/c.jpg", []byte("c"))

	plan := planOf(
		distributor.Bin{Index: 1, Entries: []inventory.FileEntry{a, b}, TotalBytes: 6},
		distributor.Bin{Index: 2, Entries: []inventory.FileEntry{c}, TotalBytes: 1},
	)

	m := New(fs, zap.NewNop())
	if err := m.PrepareDestination("/dst"); err != nil {
		t.Fatalf("PrepareDestination: %v", err)
	}
	if err := m.Materialize(context.Background(), plan, "/dst"); err != nil {
		t.Fatalf("Materialize: %v", err)
	}

	checks := map[string]string{
		"/dst/1/a.jpg": "aaaa",
		"/dst/1/b.jpg": "bb",
		"/dst/2/c.jpg": "c",
	}
	for path, want := range checks {
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			t.Fatalf("read %s: %v", path, err)
		}
		if string(data) != want {
			t.Fatalf("%s: got %q, want %q", path, data, want)
		}
	}
}

func TestPrepareDestinationCreatesMissingRoot(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	if err := New(fs, zap.NewNop()).PrepareDestination("/brand/new"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok, _ := afero.DirExists(fs, "/brand/new"); !ok {
		t.Fatalf("destination root was not created")
	}
}

func TestPrepareDestinationRefusesNonEmpty(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	sourceFile(t, fs, "/dst/leftover.jpg", []byte("x"))

	err := New(fs, zap.NewNop()).PrepareDestination("/dst")
	if !errors.Is(err, ErrDestinationNotEmpty) {
		t.Fatalf("expected ErrDestinationNotEmpty, got %v", err)
	}
}

func TestMaterializeRefusesToOverwrite(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	a := sourceFile(t, fs, "/src/a.jpg", []byte("aaaa"))
	sourceFile(t, fs, "/dst/1/a.jpg", []byte("old"))

	plan := planOf(distributor.Bin{Index: 1, Entries: []inventory.FileEntry{a}, TotalBytes: 4})
	if err := New(fs, zap.NewNop()).Materialize(context.Background(), plan, "/dst"); err == nil {
		t.Fatalf("expected error for existing destination file")
	}
}

func TestMaterializeHonoursCancellation(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	a := sourceFile(t, fs, "/src/a.jpg", []byte("aaaa"))
	plan := planOf(distributor.Bin{Index: 1, Entries: []inventory.FileEntry{a}, TotalBytes: 4})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := New(fs, zap.NewNop()).Materialize(ctx, plan, "/dst")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestCopyLimiterZeroValueNeverBlocks(t *testing.T) {
	t.Parallel()

	var limiter copyLimiter
	if err := limiter.wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
