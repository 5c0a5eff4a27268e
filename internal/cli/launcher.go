package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/1broseidon/hypract/internal/launcher"
	"github.com/1broseidon/hypract/internal/ranker"
)

// entryJSON is how launcher entries are printed for external hosts.
type entryJSON struct {
	Kind        string `json:"kind"`
	Text        string `json:"text"`
	Score       int    `json:"score"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Info        string `json:"info"`
}

func toEntryJSON(e ranker.Entry) entryJSON {
	return entryJSON{
		Kind:        e.Kind.String(),
		Text:        e.Text,
		Score:       e.Score,
		Title:       launcher.Title(e),
		Description: launcher.Description(e),
		Icon:        launcher.Icon(e),
		Info:        launcher.EncodeInfo(e),
	}
}

func newLauncherCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "launcher",
		Short:   "Launcher plugin protocol for external hosts",
		GroupID: groupHosts,
	}
	cmd.AddCommand(newLauncherMatchCmd(opts), newLauncherSelectCmd(opts))
	return cmd
}

func newLauncherMatchCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "match <input>",
		Short: "Rank targets for launcher input (JSON)",
		Long: `Rank activities and workspaces for the raw launcher input, prefix included.
Input without the configured prefix yields an empty list.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, func(_ context.Context, e *env) error {
				p := e.newPlugin()
				defer p.Close()

				entries := p.Match(strings.Join(args, " "))
				out := make([]entryJSON, 0, len(entries))
				for _, entry := range entries {
					out = append(out, toEntryJSON(entry))
				}
				return outputJSON(stdout(cmd), out)
			})
		},
	}
}

func newLauncherSelectCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "select <kind> <text> | select <info>",
		Short: "Switch to a launcher entry",
		Long: `Switch to the entry identified by kind (activity or workspace) and text, or by
the info token printed by "launcher match".`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			info := args[0]
			if len(args) == 2 {
				info = args[0] + ":" + args[1]
			}
			entry, err := launcher.DecodeInfo(info)
			if err != nil {
				return err
			}
			return opts.run(cmd, func(_ context.Context, e *env) error {
				p := e.newPlugin()
				defer p.Close()

				if res := p.Select(entry); res.Err != nil {
					return res.Err
				}
				printInfo(stdout(cmd), fmt.Sprintf("Switching to %s %s", entry.Text, entry.Kind))
				return nil
			})
		},
	}
}
