package config

import "fmt"

// Error reports an unreadable or invalid configuration source.
type Error struct {
	// Path is the file or setting that was rejected
	Path string

	// Err is the underlying cause
	Err error
}

// Error returns the error message
func (e *Error) Error() string {
	return fmt.Sprintf("invalid configuration %s: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Err
}
