package state

import (
	"errors"
	"fmt"
)

// ErrLockTimeout is returned when the state lock could not be acquired
// before the context expired.
var ErrLockTimeout = errors.New("timed out waiting for state lock")

// CorruptError reports a persisted state file that exists but cannot be used.
type CorruptError struct {
	Path string
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("state file %s is corrupt: %v", e.Path, e.Err)
}

func (e *CorruptError) Unwrap() error { return e.Err }

// WriteError reports an I/O failure while persisting state. The in-flight
// operation must be treated as failed.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write state file %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
