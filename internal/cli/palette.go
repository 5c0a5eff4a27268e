package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/1broseidon/hypract/internal/launcher"
	"github.com/1broseidon/hypract/internal/palette"
	"github.com/1broseidon/hypract/internal/ranker"
)

const (
	actionSelect = "select"
	actionSearch = "search"
)

func newPaletteCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "palette",
		Short: "Pick an activity or workspace with rofi, fuzzel, wofi or dmenu",
		Long: `Show a menu of activities and workspaces in an external picker. "Search or
create" asks for a name and ranks it the same way the launcher does.

The picker comes from palette.backend in the config (default: the first of
rofi, fuzzel, wofi, dmenu found in PATH).`,
		Args:    cobra.NoArgs,
		GroupID: groupHosts,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd, func(ctx context.Context, e *env) error {
				backend, err := palette.NewBackend(e.cfg.Palette.Backend)
				if err != nil {
					return err
				}
				if setter, ok := backend.(interface{ SetFuzzyMatching(bool) }); ok {
					setter.SetFuzzyMatching(e.cfg.Palette.FuzzyMatching)
				}

				snap, err := e.takeSnapshot(ctx)
				if err != nil {
					return err
				}
				p := e.newPlugin()
				defer p.Close()

				entry, err := runPalette(ctx, backend, p, snap)
				if errors.Is(err, palette.ErrCancelled) {
					return nil
				}
				if err != nil {
					return err
				}
				// Select already notified the user on failure.
				if res := p.Select(entry); res.Err != nil {
					return res.Err
				}
				return nil
			})
		},
	}
}

// runPalette walks the menu and returns the chosen entry.
func runPalette(ctx context.Context, backend palette.Backend, p queryRanker, snap snapshot) (ranker.Entry, error) {
	menu := palette.NewMenu(backend, "hypract", buildRootMenu(snap))
	if backend.Capabilities().MessageBar {
		menu.SetMessage(snap.status())
	}

	res, err := menu.Show(ctx)
	if err != nil {
		return ranker.Entry{}, err
	}
	if res.Action == actionSearch {
		return searchPalette(ctx, backend, p)
	}
	return launcher.DecodeInfo(res.Info)
}

// queryRanker is the ranking half of the launcher plugin.
type queryRanker interface {
	Rank(query string) []ranker.Entry
}

func searchPalette(ctx context.Context, backend palette.Backend, p queryRanker) (ranker.Entry, error) {
	query, err := backend.Prompt(ctx, "name", "Switch to or create an activity or workspace")
	if err != nil {
		return ranker.Entry{}, err
	}
	entries := p.Rank(query)
	if len(entries) == 0 {
		return ranker.Entry{}, fmt.Errorf("no targets for %q", query)
	}

	items := make([]palette.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, entryItem(e, false))
	}
	chosen, err := backend.Show(ctx, query, items, "")
	if err != nil {
		return ranker.Entry{}, err
	}
	return launcher.DecodeInfo(chosen.Item.Info)
}

func entryItem(e ranker.Entry, active bool) palette.Item {
	return palette.Item{
		Label:    launcher.Title(e),
		Action:   actionSelect,
		Icon:     launcher.Icon(e),
		Info:     launcher.EncodeInfo(e),
		Meta:     e.Text,
		IsActive: active,
	}
}

func buildRootMenu(snap snapshot) []palette.MenuItem {
	var activities, workspaces []palette.MenuItem
	for _, e := range snap.entries() {
		item := palette.MenuItem{
			Label:    e.Text,
			Action:   actionSelect,
			Icon:     launcher.Icon(e),
			Info:     launcher.EncodeInfo(e),
			IsActive: snap.isActive(e),
		}
		if e.Kind == ranker.KindActivity {
			activities = append(activities, item)
		} else {
			workspaces = append(workspaces, item)
		}
	}

	root := []palette.MenuItem{
		{Label: "Switch activity", Icon: "theater-symbolic", Submenu: activities},
	}
	if len(workspaces) > 0 {
		root = append(root, palette.MenuItem{Label: "Switch workspace", Icon: "overlapping-windows-symbolic", Submenu: workspaces})
	}
	return append(root, palette.MenuItem{Label: "Search or create…", Action: actionSearch, Icon: "system-search"})
}
