package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/1broseidon/hypract/internal/activity"
)

type cycleTarget int

const (
	cycleWorkspace cycleTarget = iota
	cycleActivity
)

func (t cycleTarget) String() string {
	if t == cycleActivity {
		return "activity"
	}
	return "workspace"
}

func newCycleCmd(opts *rootOptions, use, short string, target cycleTarget, dir int) *cobra.Command {
	return &cobra.Command{
		Use:     use,
		Short:   short,
		Args:    cobra.NoArgs,
		GroupID: groupSwitching,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.exclusive(cmd, func(ctx context.Context, e *env) error {
				step := stepFunc(e.ctrl, target, dir)
				name, err := step(ctx)
				if errors.Is(err, activity.ErrNothingToCycle) {
					printWarning(cmd.ErrOrStderr(), fmt.Sprintf("No other %s to switch to", target))
					return nil
				}
				if err != nil {
					return err
				}
				printInfo(stdout(cmd), fmt.Sprintf("Switching to %s %s", name, target))
				return nil
			})
		},
	}
}

func stepFunc(c *activity.Controller, target cycleTarget, dir int) func(context.Context) (string, error) {
	switch {
	case target == cycleActivity && dir > 0:
		return c.NextActivity
	case target == cycleActivity:
		return c.PreviousActivity
	case dir > 0:
		return c.NextWorkspace
	default:
		return c.PreviousWorkspace
	}
}
