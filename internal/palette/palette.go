// Package palette drives external dmenu-style pickers (rofi, fuzzel, wofi,
// dmenu) and rofi's script mode.
package palette

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Item is one row of a palette.
type Item struct {
	Label  string
	Action string
	Icon   string
	// Info travels with the row and comes back as ROFI_INFO in script mode.
	Info      string
	Meta      string // extra search terms
	IsHeader  bool
	IsDivider bool
	IsActive  bool
}

// SelectResult contains the result of a palette selection.
type SelectResult struct {
	Item  Item
	Index int
}

// Capabilities lists what a picker can render.
type Capabilities struct {
	Icons         bool
	Markup        bool // pango markup in labels
	NonSelectable bool
	IndexOutput   bool // answers with the row index rather than its text
	MessageBar    bool
	RowStates     bool
}

// Backend shows a palette to the user.
type Backend interface {
	// Show displays items and returns the one picked. message is an
	// optional context line for backends with a message bar.
	Show(ctx context.Context, prompt string, items []Item, message string) (SelectResult, error)

	// Prompt asks for a line of free text.
	Prompt(ctx context.Context, prompt, message string) (string, error)

	// Capabilities returns the features supported by this backend.
	Capabilities() Capabilities
}

// AutoDetect selects the first available backend in priority order.
func AutoDetect() (Backend, error) {
	name, err := DetectBackend()
	if err != nil {
		return nil, err
	}
	return NewBackend(name)
}

// NewBackend returns the picker called name: auto, rofi, fuzzel, wofi or
// dmenu. The program must be in PATH.
func NewBackend(name string) (Backend, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "auto" {
		return AutoDetect()
	}
	f, ok := flavors[name]
	if !ok {
		return nil, fmt.Errorf("unknown palette backend: %q (expected: auto, %s)", name, strings.Join(backendPriority, ", "))
	}
	if _, err := exec.LookPath(f.command); err != nil {
		return nil, fmt.Errorf("palette backend %q not found in PATH", name)
	}
	return newPicker(f), nil
}
