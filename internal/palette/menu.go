package palette

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	backAction    = "__back__"
	noopAction    = "noop"
	submenuPrefix = "__submenu__:"
)

// MenuItem is a node in the menu hierarchy.
type MenuItem struct {
	Label     string
	Action    string // Empty for parent items
	Icon      string
	Info      string
	Meta      string
	IsHeader  bool
	IsDivider bool
	IsActive  bool
	Submenu   []MenuItem
}

// IsParent reports whether the item opens a submenu.
func (m MenuItem) IsParent() bool {
	return len(m.Submenu) > 0
}

// MenuResult is the leaf the user finally chose.
type MenuResult struct {
	Action string
	Info   string
}

// Menu handles hierarchical menu navigation using a palette backend.
// Cancelling inside a submenu returns to its parent.
type Menu struct {
	backend Backend
	prompt  string
	root    []MenuItem
	message string
}

// NewMenu creates a menu whose top level shows prompt.
func NewMenu(backend Backend, prompt string, items []MenuItem) *Menu {
	return &Menu{
		backend: backend,
		prompt:  prompt,
		root:    items,
	}
}

// SetMessage sets the context line shown by backends with a message bar.
func (m *Menu) SetMessage(msg string) {
	m.message = msg
}

// Show runs the menu until a leaf is chosen or the top level is cancelled.
func (m *Menu) Show(ctx context.Context) (MenuResult, error) {
	return m.showLevel(ctx, m.root, nil)
}

func (m *Menu) showLevel(ctx context.Context, items []MenuItem, breadcrumb []string) (MenuResult, error) {
	if len(items) == 0 {
		return MenuResult{}, fmt.Errorf("menu: no items to show")
	}

	for {
		paletteItems := make([]Item, 0, len(items)+1)
		if len(breadcrumb) > 0 {
			paletteItems = append(paletteItems, Item{
				Label:  "← Back",
				Action: backAction,
				Icon:   "go-previous",
			})
		}

		for i, item := range items {
			label := item.Label
			icon := item.Icon
			action := item.Action
			if item.IsParent() {
				label += " →"
				if icon == "" {
					icon = "folder"
				}
				action = submenuPrefix + strconv.Itoa(i)
			} else if strings.TrimSpace(action) == "" {
				action = noopAction
			}
			paletteItems = append(paletteItems, Item{
				Label:     label,
				Action:    action,
				Icon:      icon,
				Info:      item.Info,
				Meta:      item.Meta,
				IsHeader:  item.IsHeader,
				IsDivider: item.IsDivider,
				IsActive:  item.IsActive,
			})
		}

		prompt := m.prompt
		if len(breadcrumb) > 0 {
			prompt = breadcrumb[len(breadcrumb)-1]
		}

		result, err := m.backend.Show(ctx, prompt, paletteItems, m.message)
		if err != nil {
			return MenuResult{}, err
		}

		// Some backends can't enforce non-selectable rows.
		if result.Item.IsHeader || result.Item.IsDivider || result.Item.Action == noopAction {
			continue
		}
		if result.Item.Action == backAction {
			return MenuResult{}, ErrCancelled
		}

		if idxStr, ok := strings.CutPrefix(result.Item.Action, submenuPrefix); ok {
			idx, err := strconv.Atoi(idxStr)
			if err != nil || idx < 0 || idx >= len(items) || !items[idx].IsParent() {
				continue
			}
			next := append(breadcrumb[:len(breadcrumb):len(breadcrumb)], items[idx].Label)
			sub, err := m.showLevel(ctx, items[idx].Submenu, next)
			if errors.Is(err, ErrCancelled) {
				continue
			}
			return sub, err
		}

		return MenuResult{Action: result.Item.Action, Info: result.Item.Info}, nil
	}
}
