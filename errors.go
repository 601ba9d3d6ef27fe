package main

import (
	"errors"
	"fmt"
	"io/fs"
)

// InvalidArgumentError is returned for unrecognized flags or unexpected
// positional arguments. It is always reported before any input is opened.
type InvalidArgumentError struct {
	Arg string
	Err error
}

func (e *InvalidArgumentError) Error() string {
	if e.Arg == "" {
		return fmt.Sprintf("invalid argument: %v", e.Err)
	}
	return fmt.Sprintf("invalid argument %s: %v", e.Arg, e.Err)
}

func (e *InvalidArgumentError) Unwrap() error { return e.Err }

// IOError is returned when the input cannot be opened or read. Err keeps
// the underlying *fs.PathError when there is one.
type IOError struct {
	Path string // stdinName for standard input
	Err  error
}

// Error reads "path: reason"; the operation and path inside a
// *fs.PathError are not repeated.
func (e *IOError) Error() string {
	var pe *fs.PathError
	if errors.As(e.Err, &pe) {
		return fmt.Sprintf("%s: %v", e.Path, pe.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
