package cli

import (
	"context"
	"slices"

	"github.com/1broseidon/hypract/internal/launcher"
	"github.com/1broseidon/hypract/internal/ranker"
)

// newPlugin starts a launcher plugin over the env's controller. The caller
// must Close it.
func (e *env) newPlugin() *launcher.Plugin {
	opts := []launcher.Option{launcher.WithLogger(e.logger)}
	if !e.cfg.Notify {
		opts = append(opts, launcher.WithNotifier(nil))
	}
	return launcher.New(launcher.Config{
		Prefix:     e.cfg.Launcher.Prefix,
		MaxEntries: e.cfg.Launcher.MaxEntries,
	}, e.ctrl, opts...)
}

// snapshot is what the pickers show before anything is typed.
type snapshot struct {
	current    string
	workspace  string
	activities []string
	workspaces []string
}

// takeSnapshot collects the current activity, the focused workspace and
// every candidate, deduplicated and sorted for display.
func (e *env) takeSnapshot(ctx context.Context) (snapshot, error) {
	var snap snapshot
	err := e.ctrl.Exclusive(ctx, func(ctx context.Context) error {
		activities, workspaces, err := e.ctrl.Candidates(ctx)
		if err != nil {
			return err
		}
		snap.current = e.ctrl.Store().CurrentActivity()
		snap.activities = activities
		if raw, err := e.ctrl.CurrentRawWorkspace(ctx); err == nil {
			snap.workspace = raw
		}
		snap.workspaces = slices.Compact(slices.Sorted(slices.Values(workspaces)))
		return nil
	})
	return snap, err
}

func (s snapshot) status() string {
	if s.workspace == "" {
		return "activity: " + s.current
	}
	return "activity: " + s.current + " • workspace: " + s.workspace
}

// entries lists every candidate as an unranked entry.
func (s snapshot) entries() []ranker.Entry {
	out := make([]ranker.Entry, 0, len(s.activities)+len(s.workspaces))
	for _, a := range s.activities {
		out = append(out, ranker.Entry{Kind: ranker.KindActivity, Text: a})
	}
	for _, w := range s.workspaces {
		out = append(out, ranker.Entry{Kind: ranker.KindWorkspace, Text: w})
	}
	return out
}

func (s snapshot) isActive(e ranker.Entry) bool {
	if e.Kind == ranker.KindActivity {
		return e.Text == s.current
	}
	return e.Text == s.workspace
}
