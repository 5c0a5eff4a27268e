package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

// newName is the select value that opens the free-text input.
const newName = "\x00new"

// AskName asks for an activity or workspace name with a short form: a list of
// existing names plus a "New…" entry that prompts for one. kind is used in
// titles only.
func AskName(ctx context.Context, kind string, existing []string, current string) (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return "", fmt.Errorf("no %s name given and no interactive terminal to ask for one", kind)
	}

	choice := newName
	if len(existing) > 0 {
		choice = existing[0]
	}
	var typed string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("choice").
				Title("Switch " + kind).
				Options(nameOptions(existing, current)...).
				Value(&choice),
		),
		huh.NewGroup(
			huh.NewInput().
				Key("name").
				Title("New " + kind).
				Placeholder("name").
				Validate(validateName).
				Value(&typed),
		).WithHideFunc(func() bool { return choice != newName }),
	).WithShowHelp(true)

	if err := form.RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return "", ErrCancelled
		}
		return "", err
	}
	if choice == newName {
		return strings.TrimSpace(typed), nil
	}
	return choice, nil
}

func nameOptions(existing []string, current string) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(existing)+1)
	for _, name := range existing {
		label := name
		if name == current {
			label += " (current)"
		}
		opts = append(opts, huh.NewOption(label, name))
	}
	return append(opts, huh.NewOption("New…", newName))
}

func validateName(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("name must not be empty")
	}
	return nil
}
