package activity

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/1broseidon/hypract/internal/naming"
	"github.com/1broseidon/hypract/internal/platform"
	"github.com/1broseidon/hypract/internal/state"
)

// Reconciler renames live workspaces that are not yet in the naming
// convention so they belong to the current activity.
type Reconciler struct {
	store  *state.Store
	svc    platform.Service
	logger *slog.Logger
}

// NewReconciler creates a reconciler.
func NewReconciler(store *state.Store, svc platform.Service, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Reconciler{store: store, svc: svc, logger: logger}
}

// Reconcile performs a single pass and returns how many workspaces it
// renamed. The first failed rename stops the pass; mappings for renames
// that already happened are still persisted, once, before returning.
func (r *Reconciler) Reconcile(ctx context.Context) (int, error) {
	live, err := r.svc.Workspaces(ctx)
	if err != nil {
		return 0, err
	}

	current := r.store.CurrentActivity()
	records := make(map[string]string)
	var renameErr error
	for _, ws := range live {
		if ws.Name == "" || naming.IsComposite(ws.Name) {
			continue
		}
		composite := naming.Encode(current, ws.Name)
		if err := r.svc.RenameWorkspace(ctx, ws.ID, composite); err != nil {
			r.logger.Error("reconciler: rename failed", "id", ws.ID, "name", ws.Name, "error", err)
			renameErr = err
			break
		}
		r.logger.Info("reconciler: adopted workspace", "id", ws.ID, "raw", ws.Name, "name", composite)
		records[composite] = ws.Name
	}

	if err := r.store.Batch(records); err != nil {
		return 0, errors.Join(renameErr, err)
	}
	return len(records), renameErr
}

// Run reconciles every interval until ctx is cancelled, taking the state
// lock and reloading state for each pass. Pass failures are logged.
func (r *Reconciler) Run(ctx context.Context, interval, lockTimeout time.Duration) {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	r.logger.Info("reconciler started", "interval", interval)
	r.pass(ctx, lockTimeout)
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reconciler stopped")
			return
		case <-ticker.C:
			r.pass(ctx, lockTimeout)
		}
	}
}

func (r *Reconciler) pass(ctx context.Context, lockTimeout time.Duration) {
	lockCtx := ctx
	if lockTimeout > 0 {
		var cancel context.CancelFunc
		lockCtx, cancel = context.WithTimeout(ctx, lockTimeout)
		defer cancel()
	}
	unlock, err := r.store.Lock(lockCtx)
	if err != nil {
		if ctx.Err() == nil {
			r.logger.Warn("reconciler: skipped pass", "error", err)
		}
		return
	}
	defer unlock()

	if _, err := r.store.LoadOrInit(); err != nil {
		r.logger.Error("reconciler: failed to load state", "error", err)
		return
	}
	if n, err := r.Reconcile(ctx); err != nil {
		r.logger.Error("reconciler: pass failed", "renamed", n, "error", err)
	}
}
