package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// Provider reads and writes whole SQL text files.
//
// Missing files are reported with errors that satisfy
// errors.Is(err, fs.ErrNotExist) for every implementation.
type Provider interface {
	// ReadFile reads the entire file at path.
	ReadFile(path string) ([]byte, error)

	// WriteFile replaces the file at path with data.
	// Implementations never leave a partially written file behind.
	WriteFile(path string, data []byte) error

	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)
}
