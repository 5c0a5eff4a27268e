package state

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sys/unix"
)

const lockPollInterval = 10 * time.Millisecond

// Lock takes an exclusive advisory lock on "<path>.lock", polling until it
// is acquired or ctx is done. The returned func releases it.
//
// Two hypract processes (for example a launcher session and a keybinding
// invocation) serialise their load-modify-persist cycles through this lock.
func (s *Store) Lock(ctx context.Context) (func(), error) {
	lockPath := s.path + ".lock"
	if err := os.MkdirAll(filepath.Dir(lockPath), 0o700); err != nil {
		return nil, fmt.Errorf("failed to create state dir: %w", err)
	}
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open state lock: %w", err)
	}

	start := time.Now()
	for {
		err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB)
		if err == nil {
			break
		}
		if !errors.Is(err, unix.EWOULDBLOCK) && !errors.Is(err, unix.EAGAIN) {
			f.Close()
			return nil, fmt.Errorf("failed to lock %s: %w", lockPath, err)
		}
		select {
		case <-ctx.Done():
			f.Close()
			return nil, fmt.Errorf("%w after %s (%s): %w", ErrLockTimeout, time.Since(start).Round(time.Millisecond), lockPath, ctx.Err())
		case <-time.After(lockPollInterval):
		}
	}

	if waited := time.Since(start); waited > lockPollInterval {
		s.logger.Debug("acquired state lock", "path", lockPath, "waited", waited)
	}

	return func() {
		_ = unix.Flock(int(f.Fd()), unix.LOCK_UN)
		f.Close()
	}, nil
}

// Locked runs fn while holding the lock, after re-reading the state file so
// fn sees writes made by other processes.
func (s *Store) Locked(ctx context.Context, fn func() error) error {
	unlock, err := s.Lock(ctx)
	if err != nil {
		return err
	}
	defer unlock()

	if _, err := s.LoadOrInit(); err != nil {
		return err
	}
	return fn()
}
