package inventory

// FileEntry represents one candidate source file.
// Size is recorded once at enumeration time and never re-checked; the
// distributor and materializer treat it as immutable.
type FileEntry struct {
	// ID is the file's path and uniquely identifies the entry within a run.
	ID string
	// Name is the base file name, used as the copy target name.
	Name string
	// Size is the file length in bytes.
	Size int64
}
