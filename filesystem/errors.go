package filesystem

import (
	"errors"
	"fmt"
)

// Sentinel errors for tree operations. Callers distinguish them with errors.Is.
var (
	ErrNotFound          = errors.New("no such file or directory")
	ErrWrongKind         = errors.New("wrong kind of node")
	ErrAlreadyExists     = errors.New("file exists")
	ErrDirectoryNotEmpty = errors.New("directory not empty")
	ErrInvalidName       = errors.New("invalid name")

	// ErrNotADirectory and ErrNotAFile also match ErrWrongKind
	ErrNotADirectory error = &kindError{"not a directory"}
	ErrNotAFile      error = &kindError{"is a directory"}
)

type kindError struct {
	msg string
}

func (e *kindError) Error() string {
	return e.msg
}

func (e *kindError) Is(target error) bool {
	return target == ErrWrongKind
}

func pathError(path string, err error) error {
	return fmt.Errorf("%s: %w", path, err)
}
