// Package platform defines the workspace-control service hypract drives and
// picks the concrete backend for the running session.
package platform

import (
	"context"
	"fmt"
)

// Workspace is a live compositor workspace.
type Workspace struct {
	ID   int
	Name string
}

// Service abstracts the compositor operations hypract depends on.
// Every error returned by an implementation is an *ExternalServiceError.
type Service interface {
	ActiveWorkspace(ctx context.Context) (Workspace, error)
	Workspaces(ctx context.Context) ([]Workspace, error)
	RenameWorkspace(ctx context.Context, id int, name string) error
	SwitchToWorkspace(ctx context.Context, name string) error
}

// ExternalServiceError reports a failed or unexpected compositor call.
type ExternalServiceError struct {
	Op  string
	Err error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ExternalServiceError) Unwrap() error { return e.Err }

// Wrap returns err as an *ExternalServiceError for op, or nil when err is nil.
// An error that already is one is returned unchanged.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*ExternalServiceError); ok {
		return err
	}
	return &ExternalServiceError{Op: op, Err: err}
}
