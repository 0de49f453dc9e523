package diff

import (
	"errors"
	"fmt"
)

var (
	// ErrFileSystem matches every FileSystemError through errors.Is.
	ErrFileSystem = errors.New("filesystem error")
	// ErrInvalidRecord matches every DataError through errors.Is.
	ErrInvalidRecord = errors.New("invalid manifest record")
)

// FileSystemError is returned when a tree cannot be read during a directory comparison.
type FileSystemError struct {
	Op   string
	Path string
	Err  error
}

func (e *FileSystemError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileSystemError) Unwrap() error { return e.Err }

func (e *FileSystemError) Is(target error) bool { return target == ErrFileSystem }

// DataError is returned when a manifest record is missing a field or holds a value
// that would make its reconciliation key ambiguous.
type DataError struct {
	// Manifest names the manifest the record belongs to ("left", "right" or a file/object name).
	Manifest string
	// Index is the position of the record inside its manifest.
	Index  int
	Field  string
	Reason string
}

func (e *DataError) Error() string {
	if e.Manifest == "" {
		return fmt.Sprintf("invalid record: %s %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid record %d in %s manifest: %s %s", e.Index, e.Manifest, e.Field, e.Reason)
}

func (e *DataError) Is(target error) bool { return target == ErrInvalidRecord }
