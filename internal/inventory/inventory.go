// Package inventory enumerates the candidate image files of a source
// directory, recording each file's path and byte size for the distributor.
// Enumeration is flat (subdirectories are not traversed) and read-only.
package inventory

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// Scanner builds file inventories from a filesystem.
type Scanner struct {
	fs afero.Fs
}

// NewScanner creates a Scanner reading from the provided filesystem.
func NewScanner(fs afero.Fs) *Scanner {
	return &Scanner{fs: fs}
}

// Scan returns a FileEntry for every regular file directly inside dir whose
// extension is accepted. The returned order is the directory's enumeration
// order and carries no meaning; the distributor imposes its own.
func (s *Scanner) Scan(dir string, extensions ExtensionSet) ([]FileEntry, error) {
	infos, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSourceUnreadable, dir, err)
	}

	entries := make([]FileEntry, 0, len(infos))
	for _, info := range infos {
		if !info.Mode().IsRegular() {
			continue
		}
		if !extensions.Match(info.Name()) {
			continue
		}
		entries = append(entries, FileEntry{
			ID:   filepath.Join(dir, info.Name()),
			Name: info.Name(),
			Size: info.Size(),
		})
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptySource, dir)
	}
	return entries, nil
}
