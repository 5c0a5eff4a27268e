// Package ewmh implements platform.Service for X11 window managers that
// publish virtual desktops through EWMH root properties. Desktops play the
// role of workspaces; _NET_DESKTOP_NAMES carries their names.
package ewmh

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/1broseidon/hypract/internal/platform"
)

// Backend drives EWMH desktops over one X connection.
type Backend struct {
	conn   desktops
	logger *slog.Logger
}

var _ platform.Service = (*Backend)(nil)

// New connects to the X server named by $DISPLAY.
func New(logger *slog.Logger) (*Backend, error) {
	conn, err := dialX()
	if err != nil {
		return nil, platform.Wrap("connect to X11", err)
	}
	return newBackend(conn, logger), nil
}

func newBackend(conn desktops, logger *slog.Logger) *Backend {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Backend{conn: conn, logger: logger}
}

// Close disconnects from the X server.
func (b *Backend) Close() {
	b.conn.Close()
}

// ActiveWorkspace returns the current desktop.
func (b *Backend) ActiveWorkspace(ctx context.Context) (platform.Workspace, error) {
	if err := ctx.Err(); err != nil {
		return platform.Workspace{}, platform.Wrap("get active workspace", err)
	}
	current, err := b.conn.Current()
	if err != nil {
		return platform.Workspace{}, platform.Wrap("get active workspace", err)
	}
	list, err := b.list()
	if err != nil {
		return platform.Workspace{}, platform.Wrap("get active workspace", err)
	}
	if current < 0 || current >= len(list) {
		return platform.Workspace{}, platform.Wrap("get active workspace",
			fmt.Errorf("current desktop %d out of range (%d desktops)", current, len(list)))
	}
	return list[current], nil
}

// Workspaces lists every desktop. Unnamed desktops are reported by their
// one-based number.
func (b *Backend) Workspaces(ctx context.Context) ([]platform.Workspace, error) {
	if err := ctx.Err(); err != nil {
		return nil, platform.Wrap("list workspaces", err)
	}
	list, err := b.list()
	return list, platform.Wrap("list workspaces", err)
}

// RenameWorkspace sets the name of desktop id.
func (b *Backend) RenameWorkspace(ctx context.Context, id int, name string) error {
	if err := ctx.Err(); err != nil {
		return platform.Wrap("rename workspace", err)
	}
	list, err := b.list()
	if err != nil {
		return platform.Wrap("rename workspace", err)
	}
	if id < 0 || id >= len(list) {
		return platform.Wrap("rename workspace", fmt.Errorf("no desktop %d", id))
	}
	names := namesOf(list)
	names[id] = name
	return platform.Wrap("rename workspace", b.conn.SetNames(names))
}

// SwitchToWorkspace activates the desktop called name, appending a new
// desktop with that name when none exists.
func (b *Backend) SwitchToWorkspace(ctx context.Context, name string) error {
	if err := ctx.Err(); err != nil {
		return platform.Wrap("switch workspace", err)
	}
	list, err := b.list()
	if err != nil {
		return platform.Wrap("switch workspace", err)
	}
	for _, ws := range list {
		if ws.Name == name {
			return platform.Wrap("switch workspace", b.conn.RequestCurrent(ws.ID))
		}
	}

	index := len(list)
	b.logger.Info("creating desktop", "index", index, "name", name)
	if err := b.conn.RequestCount(index + 1); err != nil {
		return platform.Wrap("switch workspace", err)
	}
	names := append(namesOf(list), name)
	if err := b.conn.SetNames(names); err != nil {
		return platform.Wrap("switch workspace", err)
	}
	return platform.Wrap("switch workspace", b.conn.RequestCurrent(index))
}

func (b *Backend) list() ([]platform.Workspace, error) {
	count, err := b.conn.Count()
	if err != nil {
		return nil, err
	}
	names, err := b.conn.Names()
	if err != nil {
		return nil, err
	}
	list := make([]platform.Workspace, count)
	for i := range list {
		name := strconv.Itoa(i + 1)
		if i < len(names) && names[i] != "" {
			name = names[i]
		}
		list[i] = platform.Workspace{ID: i, Name: name}
	}
	return list, nil
}

func namesOf(list []platform.Workspace) []string {
	names := make([]string, len(list))
	for i, ws := range list {
		names[i] = ws.Name
	}
	return names
}
