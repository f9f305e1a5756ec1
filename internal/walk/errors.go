package walk

import (
	"errors"
	"fmt"
)

// Error kinds reported by Scan. Use errors.Is to classify an *Error.
var (
	// ErrRootUnreadable means the scan root could not be opened as a directory.
	// It is the only fatal kind.
	ErrRootUnreadable = errors.New("root directory unreadable")
	// ErrSubtreeUnreadable means a nested directory could not be read.
	// The subtree contributes no records and the scan continues.
	ErrSubtreeUnreadable = errors.New("directory unreadable")
	// ErrEntryUnreadable means the metadata of a single entry could not be read.
	// The entry is skipped and the scan continues.
	ErrEntryUnreadable = errors.New("entry metadata unreadable")
)

// Error describes a failure at a specific path during a scan.
type Error struct {
	Kind error  // One of the Err* kinds above
	Path string // Path that failed
	Err  error  // Underlying filesystem error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%v: %s: %v", e.Kind, e.Path, e.Err)
}

// Unwrap exposes both the kind and the underlying cause to errors.Is and errors.As.
func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// Fatal reports whether the error stops the scan.
func (e *Error) Fatal() bool {
	return errors.Is(e.Kind, ErrRootUnreadable)
}
