package cli

import (
	"context"
	"os"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/1broseidon/hypract/internal/launcher"
	"github.com/1broseidon/hypract/internal/palette"
)

func newRofiScriptCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rofi-script [selection]",
		Short: "Run as a rofi script mode",
		Long: `Act as a rofi script mode:

    rofi -show hypract -modes "hypract:hypract rofi-script"

The first call lists activities and workspaces. Typing a name and pressing
Enter ranks it; choosing a row switches to it.`,
		Args:    cobra.MaximumNArgs(1),
		GroupID: groupHosts,
		RunE: func(cmd *cobra.Command, args []string) error {
			call, err := palette.ParseScriptCall(args, os.Getenv)
			if err != nil {
				return err
			}
			return opts.run(cmd, func(ctx context.Context, e *env) error {
				return runRofiScript(ctx, e, call, palette.NewScriptWriter(stdout(cmd)))
			})
		},
	}
}

func runRofiScript(ctx context.Context, e *env, call palette.ScriptCall, out *palette.ScriptWriter) error {
	p := e.newPlugin()
	defer p.Close()

	switch call.Retv {
	case palette.RetvSelected, palette.RetvCustom:
		if call.Retv == palette.RetvSelected && call.Info != "" {
			entry, err := launcher.DecodeInfo(call.Info)
			if err != nil {
				return err
			}
			// Errors were already shown as a notification; rofi just closes.
			_ = p.Select(entry)
			return nil
		}

		query := strings.TrimLeftFunc(call.Arg, unicode.IsSpace)
		entries := p.Rank(query)
		out.Header("hypract", "")
		if len(entries) == 0 {
			out.Option("message", "No targets for "+query)
		}
		for _, entry := range entries {
			out.Row(entryItem(entry, false))
		}
		return out.Err()

	default:
		snap, err := e.takeSnapshot(ctx)
		if err != nil {
			return err
		}
		out.Header("hypract", snap.status()+". Type a name and press Enter to search or create.")
		for _, entry := range snap.entries() {
			item := entryItem(entry, snap.isActive(entry))
			item.Label = entry.Text
			out.Row(item)
		}
		return out.Err()
	}
}
