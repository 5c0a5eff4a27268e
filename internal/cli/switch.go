package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/1broseidon/hypract/internal/ranker"
	"github.com/1broseidon/hypract/internal/tui"
)

func newSwitchWorkspaceCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "switch-workspace [name]",
		Short: "Switch to a workspace of the current activity",
		Long: `Focus the workspace called <name> inside the current activity, creating it if
it does not exist yet. Without a name, asks for one in the terminal.`,
		Args:    cobra.MaximumNArgs(1),
		GroupID: groupSwitching,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, e *env) error {
				name, err := e.nameArg(ctx, args, ranker.KindWorkspace)
				if errors.Is(err, tui.ErrCancelled) {
					return nil
				}
				if err != nil {
					return err
				}
				err = e.ctrl.Exclusive(ctx, func(ctx context.Context) error {
					return e.ctrl.SwitchWorkspace(ctx, name)
				})
				if err != nil {
					return err
				}
				printInfo(stdout(cmd), fmt.Sprintf("Switching to %s workspace", name))
				return nil
			})
		},
	}
}

func newSwitchActivityCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "switch-activity [name]",
		Short: "Switch to an activity, keeping the same workspace",
		Long: `Make <name> the current activity and focus the workspace with the same short
name in it. Unknown activities are created. Without a name, asks for one in
the terminal.`,
		Args:    cobra.MaximumNArgs(1),
		GroupID: groupSwitching,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, e *env) error {
				name, err := e.nameArg(ctx, args, ranker.KindActivity)
				if errors.Is(err, tui.ErrCancelled) {
					return nil
				}
				if err != nil {
					return err
				}
				err = e.ctrl.Exclusive(ctx, func(ctx context.Context) error {
					return e.ctrl.SwitchActivity(ctx, name)
				})
				if err != nil {
					return err
				}
				printInfo(stdout(cmd), fmt.Sprintf("Switching to %s activity", name))
				return nil
			})
		},
	}
}

// nameArg returns the name argument, or asks for one. The state lock is not
// held while asking.
func (e *env) nameArg(ctx context.Context, args []string, kind ranker.Kind) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	snap, err := e.takeSnapshot(ctx)
	if err != nil {
		return "", err
	}
	if kind == ranker.KindActivity {
		return tui.AskName(ctx, kind.String(), snap.activities, snap.current)
	}
	return tui.AskName(ctx, kind.String(), snap.workspaces, snap.workspace)
}
