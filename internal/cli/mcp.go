package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/1broseidon/hypract/internal/mcp"
)

func newMCPCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "mcp",
		Short:   "Model Context Protocol server",
		GroupID: groupHosts,
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Serve activity tools over stdio",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, func(ctx context.Context, e *env) error {
				e.logger.Info("starting mcp server")
				return mcp.NewServer(e.ctrl, e.cfg.Launcher.MaxEntries, e.logger).Run(ctx)
			})
		},
	})
	return cmd
}
