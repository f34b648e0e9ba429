package inventory

import "errors"

var (
	// ErrSourceUnreadable is returned when the source directory or one of its
	// entries cannot be inspected.
	ErrSourceUnreadable = errors.New("source directory is not readable")
	// ErrEmptySource is returned when no file in the source directory matches
	// the accepted extensions.
	ErrEmptySource = errors.New("no matching image files in source directory")
	// ErrInvalidExtensions is returned when the accepted-extension set is
	// empty after normalisation.
	ErrInvalidExtensions = errors.New("accepted extensions must contain at least one entry")
)
