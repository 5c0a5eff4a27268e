package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/1broseidon/hypract/internal/tui"
)

func newPickCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "pick [query]",
		Short:   "Pick an activity or workspace in the terminal",
		Args:    cobra.ArbitraryArgs,
		GroupID: groupHosts,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(ctx context.Context, e *env) error {
				snap, err := e.takeSnapshot(ctx)
				if err != nil {
					return err
				}
				p := e.newPlugin()
				defer p.Close()

				entry, err := tui.Run(ctx, p, tui.Options{
					Status: snap.status(),
					Query:  strings.Join(args, " "),
				})
				if errors.Is(err, tui.ErrCancelled) {
					return nil
				}
				if err != nil {
					return err
				}
				printInfo(stdout(cmd), fmt.Sprintf("Switching to %s %s", entry.Text, entry.Kind))
				return nil
			})
		},
	}
}
