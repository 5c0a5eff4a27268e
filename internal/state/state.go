// Package state owns the persisted activity mapping: the known activities,
// the current activity, and the composite-name to raw-name table.
//
// Every mutating Store method ends with exactly one write of the whole file,
// so a crash leaves the file matching the last completed mutation.
package state

import (
	"fmt"
	"slices"

	"github.com/1broseidon/hypract/internal/naming"
)

// DefaultActivity is the activity a fresh state starts with.
const DefaultActivity = "default"

// State is the single persisted aggregate.
type State struct {
	Activities      []string          `json:"activities"`
	CurrentActivity string            `json:"current_activity"`
	Workspaces      map[string]string `json:"workspaces"`
}

// Default returns the first-run state.
func Default() State {
	return State{
		Activities:      []string{DefaultActivity},
		CurrentActivity: DefaultActivity,
		Workspaces:      map[string]string{},
	}
}

// Clone returns a deep copy.
func (s State) Clone() State {
	out := State{
		Activities:      slices.Clone(s.Activities),
		CurrentActivity: s.CurrentActivity,
		Workspaces:      make(map[string]string, len(s.Workspaces)),
	}
	for k, v := range s.Workspaces {
		out.Workspaces[k] = v
	}
	return out
}

// HasActivity reports whether name is a known activity.
func (s State) HasActivity(name string) bool {
	return slices.Contains(s.Activities, name)
}

// RawWorkspace decodes a live workspace name to its raw name, preferring the
// mapping table.
func (s State) RawWorkspace(name string) (string, error) {
	return naming.Decode(s.Workspaces, name)
}

func (s *State) addActivity(name string) {
	if !s.HasActivity(name) {
		s.Activities = append(s.Activities, name)
	}
}

func (s *State) setActivity(name string) bool {
	if s.CurrentActivity == name {
		return false
	}
	s.addActivity(name)
	s.CurrentActivity = name
	return true
}

func (s *State) addWorkspace(composite, raw string) {
	if s.Workspaces == nil {
		s.Workspaces = map[string]string{}
	}
	s.Workspaces[composite] = raw
}

// validate checks the invariants a loaded file must satisfy.
func (s *State) validate() error {
	if len(s.Activities) == 0 {
		return fmt.Errorf("activities is empty")
	}
	seen := make(map[string]struct{}, len(s.Activities))
	for _, a := range s.Activities {
		if _, dup := seen[a]; dup {
			return fmt.Errorf("duplicate activity %q", a)
		}
		seen[a] = struct{}{}
	}
	if !s.HasActivity(s.CurrentActivity) {
		return fmt.Errorf("current_activity %q is not a known activity", s.CurrentActivity)
	}
	for composite, raw := range s.Workspaces {
		if raw == "" {
			return fmt.Errorf("workspace %q maps to an empty raw name", composite)
		}
	}
	return nil
}
