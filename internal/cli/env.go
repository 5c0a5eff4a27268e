package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/1broseidon/hypract/internal/activity"
	"github.com/1broseidon/hypract/internal/config"
	"github.com/1broseidon/hypract/internal/ewmh"
	"github.com/1broseidon/hypract/internal/hyprland"
	"github.com/1broseidon/hypract/internal/logging"
	"github.com/1broseidon/hypract/internal/platform"
	"github.com/1broseidon/hypract/internal/state"
)

// env is everything a command needs, built from config and flags.
type env struct {
	res    *config.LoadResult
	cfg    *config.Config
	logger *slog.Logger
	ctrl   *activity.Controller

	closers []func()
}

// newService connects to the compositor the config selects. Tests replace it.
var newService = func(cfg *config.Config, logger *slog.Logger) (platform.Service, func(), error) {
	kind, err := platform.ParseKind(cfg.Backend)
	if err != nil {
		return nil, nil, err
	}
	kind, err = platform.Detect(kind)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("selected backend", "backend", kind)

	switch kind {
	case platform.KindHyprland:
		c, err := hyprland.NewClient(
			hyprland.WithTimeout(cfg.IPCTimeout()),
			hyprland.WithLogger(logger),
		)
		if err != nil {
			return nil, nil, err
		}
		return c, func() {}, nil
	case platform.KindEWMH:
		b, err := ewmh.New(logger)
		if err != nil {
			return nil, nil, err
		}
		return b, b.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported backend %q", kind)
	}
}

// loadConfig reads the config file and applies flag overrides.
func (o *rootOptions) loadConfig() (*config.LoadResult, error) {
	var (
		res *config.LoadResult
		err error
	)
	if o.configPath == "" {
		res, err = config.Load()
	} else {
		res, err = config.LoadFromPath(o.configPath)
	}
	if err != nil {
		return nil, err
	}

	cfg := res.Config
	if o.statePath != "" {
		cfg.StatePath = o.statePath
	}
	if o.backend != "" {
		cfg.Backend = strings.ToLower(strings.TrimSpace(o.backend))
	}
	if o.logLevel != "" {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(o.logLevel))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return res, nil
}

// newEnv loads config, opens the log, connects to the compositor and
// wires the controller. The caller must Close it.
func (o *rootOptions) newEnv(cmd *cobra.Command) (*env, error) {
	res, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	cfg := res.Config

	logFile, err := cfg.ResolvedLogFile()
	if err != nil {
		return nil, err
	}
	logger, logCloser, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		File:   logFile,
		Stderr: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open log: %w", err)
	}

	e := &env{res: res, cfg: cfg, logger: logger}
	e.closers = append(e.closers, func() { _ = logCloser.Close() })

	statePath, err := cfg.ResolvedStatePath()
	if err != nil {
		e.Close()
		return nil, err
	}

	svc, closeSvc, err := newService(cfg, logger)
	if err != nil {
		e.Close()
		return nil, err
	}
	e.closers = append(e.closers, closeSvc)

	store := state.Open(statePath, state.WithLogger(logger))
	e.ctrl = activity.NewController(store, svc, logger, activity.WithLockTimeout(cfg.LockTimeout()))
	return e, nil
}

// Close releases resources in reverse order of acquisition.
func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i]()
	}
	e.closers = nil
}

// run builds an env for cmd, runs fn and closes the env.
func (o *rootOptions) run(cmd *cobra.Command, fn func(ctx context.Context, e *env) error) error {
	e, err := o.newEnv(cmd)
	if err != nil {
		return err
	}
	defer e.Close()
	return fn(cmd.Context(), e)
}

// exclusive is run plus the controller's lock and reconcile pass.
func (o *rootOptions) exclusive(cmd *cobra.Command, fn func(ctx context.Context, e *env) error) error {
	return o.run(cmd, func(ctx context.Context, e *env) error {
		return e.ctrl.Exclusive(ctx, func(ctx context.Context) error {
			return fn(ctx, e)
		})
	})
}

func stdout(cmd *cobra.Command) io.Writer { return cmd.OutOrStdout() }
