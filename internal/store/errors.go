package store

import "fmt"

// FormatError reports a store file that exists but is structurally invalid.
type FormatError struct {
	Path string // Store file path
	Err  error  // Underlying error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid store file %s: %s", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *FormatError) Unwrap() error {
	return e.Err
}

// IOError reports a failed filesystem operation on the store file.
type IOError struct {
	Op   string // Operation, e.g. "read" or "write"
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s store file %s: %s", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *IOError) Unwrap() error {
	return e.Err
}
