// Package tui is an in-terminal picker over the same ranking and selection
// the launcher plugin serves.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/hypract/internal/launcher"
	"github.com/1broseidon/hypract/internal/ranker"
)

// ErrCancelled is returned when the picker is closed without a selection.
var ErrCancelled = errors.New("picker cancelled")

// Picker ranks queries and carries out selections. *launcher.Plugin
// implements it.
type Picker interface {
	Rank(query string) []ranker.Entry
	Select(entry ranker.Entry) launcher.Result
}

// Options tunes the picker.
type Options struct {
	// Status is shown in the top bar, typically the current activity.
	Status string
	// Query pre-fills the input.
	Query string
}

// Run shows the picker until an entry is selected or the user quits. It
// returns the selected entry.
func Run(ctx context.Context, p Picker, opts Options) (ranker.Entry, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return ranker.Entry{}, fmt.Errorf("picker requires an interactive terminal (stdin/stdout must be TTYs)")
	}

	prog := tea.NewProgram(newModel(p, opts), tea.WithContext(ctx), tea.WithAltScreen())
	final, err := prog.Run()
	if err != nil {
		return ranker.Entry{}, fmt.Errorf("picker failed: %w", err)
	}

	m := final.(model)
	switch {
	case m.err != nil:
		return ranker.Entry{}, m.err
	case m.chosen == nil:
		return ranker.Entry{}, ErrCancelled
	default:
		return *m.chosen, nil
	}
}
