package inventory

import (
	"path/filepath"
	"strings"
)

var defaultExtensions = []string{"jpg", "jpeg"}

// ExtensionSet is a normalised set of accepted file extensions, matched
// case-insensitively and without leading dots.
type ExtensionSet map[string]struct{}

// DefaultExtensions returns a copy of the default accepted extensions.
func DefaultExtensions() []string {
	out := make([]string, len(defaultExtensions))
	copy(out, defaultExtensions)
	return out
}

// NewExtensionSet validates and normalises the provided extensions.
// Entries are trimmed, lowercased, and stripped of a leading dot; duplicates
// collapse. An empty result is rejected.
func NewExtensionSet(extensions []string) (ExtensionSet, error) {
	set := make(ExtensionSet, len(extensions))
	for _, ext := range extensions {
		ext = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(ext)), ".")
		if ext == "" {
			continue
		}
		set[ext] = struct{}{}
	}
	if len(set) == 0 {
		return nil, ErrInvalidExtensions
	}
	return set, nil
}

// Match reports whether the file name carries one of the accepted extensions.
func (s ExtensionSet) Match(name string) bool {
	ext := filepath.Ext(name)
	if ext == "" {
		return false
	}
	_, ok := s[strings.ToLower(ext[1:])]
	return ok
}
