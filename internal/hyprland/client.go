// Package hyprland implements platform.Service over Hyprland's request
// socket ($XDG_RUNTIME_DIR/hypr/$HYPRLAND_INSTANCE_SIGNATURE/.socket.sock).
//
// Each request is one connection: the client writes the command, the
// compositor writes its reply and closes the socket.
package hyprland

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/1broseidon/hypract/internal/paths"
	"github.com/1broseidon/hypract/internal/platform"
)

// Client talks to a single Hyprland instance.
type Client struct {
	socketPath string
	timeout    time.Duration
	logger     *slog.Logger
}

var _ platform.Service = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithTimeout bounds every request. Zero means no timeout beyond ctx.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithLogger sets the logger for request tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSocketPath overrides the socket discovered from the environment.
func WithSocketPath(path string) Option {
	return func(c *Client) { c.socketPath = path }
}

// NewClient returns a client for the instance named by the environment.
func NewClient(opts ...Option) (*Client, error) {
	c := &Client{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(c)
	}
	if c.socketPath == "" {
		path, err := paths.HyprlandSocketPath()
		if err != nil {
			return nil, platform.Wrap("locate hyprland socket", err)
		}
		c.socketPath = path
	}
	return c, nil
}

type workspaceReply struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ActiveWorkspace returns the focused workspace.
func (c *Client) ActiveWorkspace(ctx context.Context) (platform.Workspace, error) {
	var ws workspaceReply
	if err := c.queryJSON(ctx, "activeworkspace", &ws); err != nil {
		return platform.Workspace{}, platform.Wrap("get active workspace", err)
	}
	return platform.Workspace{ID: ws.ID, Name: ws.Name}, nil
}

// Workspaces lists every live workspace. Special (scratchpad) workspaces,
// which Hyprland gives negative ids, are left out.
func (c *Client) Workspaces(ctx context.Context) ([]platform.Workspace, error) {
	var list []workspaceReply
	if err := c.queryJSON(ctx, "workspaces", &list); err != nil {
		return nil, platform.Wrap("list workspaces", err)
	}
	out := make([]platform.Workspace, 0, len(list))
	for _, ws := range list {
		if ws.ID < 0 {
			continue
		}
		out = append(out, platform.Workspace{ID: ws.ID, Name: ws.Name})
	}
	return out, nil
}

// RenameWorkspace gives workspace id a new name.
func (c *Client) RenameWorkspace(ctx context.Context, id int, name string) error {
	return platform.Wrap("rename workspace", c.dispatch(ctx, fmt.Sprintf("renameworkspace %d %s", id, name)))
}

// SwitchToWorkspace focuses the workspace called name, creating it if needed.
func (c *Client) SwitchToWorkspace(ctx context.Context, name string) error {
	return platform.Wrap("switch workspace", c.dispatch(ctx, "workspace name:"+name))
}

func (c *Client) queryJSON(ctx context.Context, command string, out any) error {
	reply, err := c.request(ctx, "j/"+command)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(reply, out); err != nil {
		return fmt.Errorf("failed to parse %s reply: %w", command, err)
	}
	return nil
}

func (c *Client) dispatch(ctx context.Context, args string) error {
	reply, err := c.request(ctx, "dispatch "+args)
	if err != nil {
		return err
	}
	if text := strings.TrimSpace(string(reply)); text != "ok" {
		return fmt.Errorf("hyprland rejected %q: %s", args, text)
	}
	return nil
}

func (c *Client) request(ctx context.Context, command string) ([]byte, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to hyprland: %w", err)
	}
	defer conn.Close()

	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	if _, err := io.WriteString(conn, command); err != nil {
		return nil, fmt.Errorf("failed to send %q: %w", command, ctxErr(ctx, err))
	}
	if uc, ok := conn.(*net.UnixConn); ok {
		_ = uc.CloseWrite()
	}

	reply, err := io.ReadAll(conn)
	if err != nil {
		return nil, fmt.Errorf("failed to read reply to %q: %w", command, ctxErr(ctx, err))
	}

	c.logger.Debug("hyprland request", "command", command, "reply_bytes", len(reply))
	return reply, nil
}

func ctxErr(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}
