// Package filesys provides a small collection of file system utilities used
// by stardb's test fixtures to materialize synthetic columnar data. The
// binary column-file format itself — a flat binary of 32-bit little-endian
// integers — is produced and consumed by an external loader in a real
// deployment; loaders are out of scope for the core. These helpers exist
// only so the test suite can build that format.
package filesys

import (
	"errors"
	"os"
)

var (
	// ErrIsNotDir is returned when a path expected to be a directory turns
	// out to be a regular file.
	ErrIsNotDir = errors.New("path isn't a directory")
)

// CreateDir creates a directory at the specified path with the given
// permissions.
//
// If the directory already exists:
//   - If 'force' is true, it proceeds without error.
//   - If 'force' is false, it returns an error.
//
// It also returns an error if the existing path is a file (not a directory).
func CreateDir(dirPath string, permission os.FileMode, force bool) error {
	stat, err := os.Stat(dirPath)
	if !force && err != nil && !os.IsNotExist(err) {
		return err
	}

	if stat != nil && !stat.IsDir() {
		return ErrIsNotDir
	}
	if stat != nil && !force {
		return os.ErrExist
	}

	if err := os.MkdirAll(dirPath, permission); err != nil {
		return err
	}

	return os.Chmod(dirPath, permission)
}

// WriteFile writes the provided contents to the file at filePath with the
// given permission. If the file does not exist, it is created; if it
// exists, it is truncated.
func WriteFile(filePath string, permission os.FileMode, contents []byte) error {
	return os.WriteFile(filePath, contents, permission)
}

// ReadFile reads the entire content of the file at filePath into a byte slice.
func ReadFile(filePath string) ([]byte, error) {
	return os.ReadFile(filePath)
}

// Exists checks if a file or directory at the given path exists.
func Exists(file string) (bool, error) {
	_, err := os.Stat(file)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}
