package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/1broseidon/hypract/internal/naming"
)

var errNotLoaded = errors.New("state not loaded (call LoadOrInit first)")

// Store loads, mutates and writes through a single state file.
// A Store is not safe for concurrent use; cross-process exclusion is
// provided by Lock.
type Store struct {
	path   string
	logger *slog.Logger
	state  State
	loaded bool
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for persistence events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Open returns a Store for path. Nothing is read until LoadOrInit.
func Open(path string, opts ...Option) *Store {
	s := &Store{
		path:   path,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the state file path.
func (s *Store) Path() string {
	return s.path
}

// LoadOrInit reads the state file, or creates and persists the default state
// when the file does not exist. Calling it again re-reads the file.
func (s *Store) LoadOrInit() (State, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			return State{}, fmt.Errorf("failed to read state file %s: %w", s.path, err)
		}
		s.state = Default()
		s.loaded = true
		if err := s.Persist(); err != nil {
			s.loaded = false
			return State{}, err
		}
		s.logger.Info("initialized state", "path", s.path)
		return s.state.Clone(), nil
	}

	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		return State{}, &CorruptError{Path: s.path, Err: err}
	}
	if st.Workspaces == nil {
		st.Workspaces = map[string]string{}
	}
	if err := st.validate(); err != nil {
		return State{}, &CorruptError{Path: s.path, Err: err}
	}

	s.state = st
	s.loaded = true
	return s.state.Clone(), nil
}

// Persist writes the whole aggregate, replacing the file atomically.
func (s *Store) Persist() error {
	if !s.loaded {
		return errNotLoaded
	}

	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return &WriteError{Path: s.path, Err: err}
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return &WriteError{Path: s.path, Err: err}
	}

	tmpPath := s.path + ".tmp"
	if err := writeSynced(tmpPath, data); err != nil {
		_ = os.Remove(tmpPath)
		return &WriteError{Path: s.path, Err: err}
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return &WriteError{Path: s.path, Err: err}
	}

	s.logger.Debug("persisted state",
		"path", s.path,
		"current_activity", s.state.CurrentActivity,
		"workspaces", len(s.state.Workspaces))
	return nil
}

func writeSynced(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// State returns a snapshot of the in-memory aggregate.
func (s *Store) State() State {
	return s.state.Clone()
}

// CurrentActivity returns the current activity.
func (s *Store) CurrentActivity() string {
	return s.state.CurrentActivity
}

// RawWorkspace decodes a live workspace name using the stored mapping first.
func (s *Store) RawWorkspace(name string) (string, error) {
	return naming.Decode(s.state.Workspaces, name)
}

// SetActivity makes name current, registering it first if it is new.
// It does nothing, and writes nothing, when name is already current.
func (s *Store) SetActivity(name string) error {
	if !s.loaded {
		return errNotLoaded
	}
	if !s.state.setActivity(name) {
		return nil
	}
	return s.Persist()
}

// AddActivity registers name if it is not already known.
func (s *Store) AddActivity(name string) error {
	if !s.loaded {
		return errNotLoaded
	}
	s.state.addActivity(name)
	return s.Persist()
}

// AddWorkspace records that composite is the live name of raw.
func (s *Store) AddWorkspace(composite, raw string) error {
	if !s.loaded {
		return errNotLoaded
	}
	s.state.addWorkspace(composite, raw)
	return s.Persist()
}

// Batch applies several workspace records and persists once. It writes
// nothing when records is empty.
func (s *Store) Batch(records map[string]string) error {
	if !s.loaded {
		return errNotLoaded
	}
	if len(records) == 0 {
		return nil
	}
	for composite, raw := range records {
		s.state.addWorkspace(composite, raw)
	}
	return s.Persist()
}
