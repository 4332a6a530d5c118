package ports

// FileSystem is the file access the jobs need: output folders, temp file
// cleanup, debug snapshots and folder listing.
type FileSystem interface {
	// WriteFile replaces path with data, creating parent directories.
	WriteFile(path string, data []byte) error

	MkdirAll(path string) error
	Exists(path string) (bool, error)
	Remove(path string) error

	// ReadDir returns the names of the regular files in dir, sorted by name.
	ReadDir(dir string) ([]string, error)

	// Size returns the size of the file at path in bytes.
	Size(path string) (int64, error)
}
