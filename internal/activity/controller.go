// Package activity switches workspaces and activities on top of the state
// store and a platform.Service, and keeps live workspace names inside the
// naming convention.
package activity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/1broseidon/hypract/internal/naming"
	"github.com/1broseidon/hypract/internal/platform"
	"github.com/1broseidon/hypract/internal/state"
)

// ErrEmptyName is returned for blank workspace or activity targets.
var ErrEmptyName = errors.New("name must not be empty")

// Controller computes composite names, drives the compositor and records
// the resulting mapping. Methods other than Exclusive expect the store to be
// loaded and, when other processes may write it, locked by the caller.
type Controller struct {
	store       *state.Store
	svc         platform.Service
	reconciler  *Reconciler
	lockTimeout time.Duration
	logger      *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithLockTimeout bounds how long Exclusive waits for the state lock.
// Zero waits until ctx is done.
func WithLockTimeout(d time.Duration) Option {
	return func(c *Controller) { c.lockTimeout = d }
}

// NewController wires a controller to store and svc.
func NewController(store *state.Store, svc platform.Service, logger *slog.Logger, opts ...Option) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	c := &Controller{
		store:      store,
		svc:        svc,
		reconciler: NewReconciler(store, svc, logger),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Store returns the underlying state store.
func (c *Controller) Store() *state.Store {
	return c.store
}

// Reconciler returns the reconciler bound to the same store and service.
func (c *Controller) Reconciler() *Reconciler {
	return c.reconciler
}

// Exclusive takes the state lock, reloads state, runs one reconciliation
// pass and then fn. Every command goes through here.
func (c *Controller) Exclusive(ctx context.Context, fn func(ctx context.Context) error) error {
	return c.locked(ctx, func(ctx context.Context) error {
		if _, err := c.reconciler.Reconcile(ctx); err != nil {
			return fmt.Errorf("reconcile: %w", err)
		}
		return fn(ctx)
	})
}

// Shared is Exclusive without the reconciliation pass. Long-lived pickers
// use it for queries so typing never renames live workspaces.
func (c *Controller) Shared(ctx context.Context, fn func(ctx context.Context) error) error {
	return c.locked(ctx, fn)
}

func (c *Controller) locked(ctx context.Context, fn func(ctx context.Context) error) error {
	lockCtx := ctx
	if c.lockTimeout > 0 {
		var cancel context.CancelFunc
		lockCtx, cancel = context.WithTimeout(ctx, c.lockTimeout)
		defer cancel()
	}

	unlock, err := c.store.Lock(lockCtx)
	if err != nil {
		return err
	}
	defer unlock()

	if _, err := c.store.LoadOrInit(); err != nil {
		return err
	}
	return fn(ctx)
}

// SwitchWorkspace focuses raw within the current activity.
func (c *Controller) SwitchWorkspace(ctx context.Context, raw string) error {
	if strings.TrimSpace(raw) == "" {
		return ErrEmptyName
	}
	composite := naming.Encode(c.store.CurrentActivity(), raw)
	if err := c.svc.SwitchToWorkspace(ctx, composite); err != nil {
		return err
	}
	c.logger.Debug("switched workspace", "raw", raw, "name", composite)
	return c.store.AddWorkspace(composite, raw)
}

// SwitchActivity moves to target, staying on the same raw workspace.
func (c *Controller) SwitchActivity(ctx context.Context, target string) error {
	if strings.TrimSpace(target) == "" {
		return ErrEmptyName
	}
	raw, err := c.CurrentRawWorkspace(ctx)
	if err != nil {
		return err
	}
	composite := naming.Encode(target, raw)
	if err := c.svc.SwitchToWorkspace(ctx, composite); err != nil {
		return err
	}
	if err := c.store.AddWorkspace(composite, raw); err != nil {
		return err
	}
	if err := c.store.SetActivity(target); err != nil {
		return err
	}
	c.logger.Info("switched activity", "activity", target, "workspace", raw)
	return nil
}

// CurrentRawWorkspace decodes the active workspace's name.
func (c *Controller) CurrentRawWorkspace(ctx context.Context) (string, error) {
	ws, err := c.svc.ActiveWorkspace(ctx)
	if err != nil {
		return "", err
	}
	return c.store.RawWorkspace(ws.Name)
}

// Candidates returns the known activities and the raw names of every live
// workspace that decodes. Undecodable names are skipped.
func (c *Controller) Candidates(ctx context.Context) (activities, workspaces []string, err error) {
	list, err := c.svc.Workspaces(ctx)
	if err != nil {
		return nil, nil, err
	}
	st := c.store.State()
	for _, ws := range list {
		raw, err := st.RawWorkspace(ws.Name)
		if err != nil {
			continue
		}
		workspaces = append(workspaces, raw)
	}
	return st.Activities, workspaces, nil
}
