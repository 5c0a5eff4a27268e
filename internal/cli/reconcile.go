package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newReconcileCmd(opts *rootOptions) *cobra.Command {
	var (
		watch    bool
		interval time.Duration
	)
	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Adopt workspaces created outside hypract into the current activity",
		Long: `Rename every live workspace that does not carry an activity yet so that it
belongs to the current activity. Every other command does this first; run it
explicitly after creating workspaces by hand, or with --watch to keep doing it.`,
		Args:    cobra.NoArgs,
		GroupID: groupTooling,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, func(ctx context.Context, e *env) error {
				if watch {
					e.logger.Info("watching for foreign workspaces", "interval", interval)
					e.ctrl.Reconciler().Run(ctx, interval, e.cfg.LockTimeout())
					return nil
				}

				lockCtx := ctx
				if d := e.cfg.LockTimeout(); d > 0 {
					var cancel context.CancelFunc
					lockCtx, cancel = context.WithTimeout(ctx, d)
					defer cancel()
				}
				unlock, err := e.ctrl.Store().Lock(lockCtx)
				if err != nil {
					return err
				}
				defer unlock()
				if _, err := e.ctrl.Store().LoadOrInit(); err != nil {
					return err
				}
				n, err := e.ctrl.Reconciler().Reconcile(ctx)
				if err != nil {
					return err
				}
				if n == 0 {
					printInfo(stdout(cmd), "Nothing to adopt")
					return nil
				}
				printSuccess(stdout(cmd), fmt.Sprintf("Adopted %d workspace(s) into %s", n, e.ctrl.Store().CurrentActivity()))
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "Keep reconciling until interrupted")
	cmd.Flags().DurationVar(&interval, "interval", 2*time.Second, "Time between passes with --watch")
	return cmd
}
