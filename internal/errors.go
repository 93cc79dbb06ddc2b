package internal

import (
	"errors"
	"fmt"
	iofs "io/fs"
)

// errInvalidUTF8 is the reason recorded for a line that is not UTF-8.
var errInvalidUTF8 = errors.New("stream did not contain valid UTF-8")

// TraversalError is recorded when a directory cannot be listed (Entry false)
// or when reading its entries fails part way (Entry true).
type TraversalError struct {
	Dir   string
	Entry bool
	Err   error
}

func (e *TraversalError) Error() string {
	if e.Entry {
		return fmt.Sprintf("Could not read entry in %s: %v", e.Dir, reason(e.Err))
	}
	return fmt.Sprintf("Could not read directory %s: %v", e.Dir, reason(e.Err))
}

func (e *TraversalError) Unwrap() error { return e.Err }

// FileError is recorded when a file cannot be opened (Line 0) or line Line cannot be read.
type FileError struct {
	Path string
	Line int
	Err  error
}

func (e *FileError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("Could not open file %s: %v", e.Path, reason(e.Err))
	}
	return fmt.Sprintf("Could not read line %d in file %s: %v", e.Line, e.Path, reason(e.Err))
}

func (e *FileError) Unwrap() error { return e.Err }

// SinkError means the report destination could not be created. It is fatal.
type SinkError struct {
	Path string
	Err  error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("Search failed: could not create output file %s: %v", e.Path, reason(e.Err))
}

func (e *SinkError) Unwrap() error { return e.Err }

// reason drops the op/path prefix of a *fs.PathError; our messages already name the path.
func reason(err error) error {
	var pe *iofs.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}
