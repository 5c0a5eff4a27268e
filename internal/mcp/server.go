// Package mcp exposes activity switching as Model Context Protocol tools
// over stdio.
package mcp

import (
	"context"
	"log/slog"
	"sync"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/hypract/internal/activity"
)

const (
	ServerName    = "hypract"
	ServerVersion = "0.1.0"
)

// Server is the MCP server. Tool calls are serialised; each one runs under
// the controller's state lock.
type Server struct {
	mcpServer  *mcpsdk.Server
	ctrl       *activity.Controller
	maxEntries int
	logger     *slog.Logger

	mu sync.Mutex
}

// NewServer creates a server backed by ctrl. maxEntries bounds rank results
// when the caller does not pass one.
func NewServer(ctrl *activity.Controller, maxEntries int, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{
		ctrl:       ctrl,
		maxEntries: maxEntries,
		logger:     logger,
	}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run serves on stdio until the client disconnects or ctx is done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_current_activity",
		Description: "Return the current activity and the raw name of the focused workspace.",
	}, s.handleGetCurrentActivity)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_activities",
		Description: "List every known activity in creation order, with the current one.",
	}, s.handleListActivities)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "switch_workspace",
		Description: "Focus the workspace with the given raw name inside the current activity, creating it if needed.",
	}, s.handleSwitchWorkspace)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "switch_activity",
		Description: "Make the named activity current while staying on the same raw workspace. Unknown activities are created.",
	}, s.handleSwitchActivity)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "cycle",
		Description: "Step to the next or previous activity, or to the next or previous workspace of the current activity, with wraparound.",
	}, s.handleCycle)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "rank",
		Description: "Rank activity and workspace names against a query the way the launcher does. The first two entries are always the query itself as an activity and as a workspace.",
	}, s.handleRank)
}

// exclusive serialises tool calls within this process and across processes.
func (s *Server) exclusive(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Exclusive(ctx, fn)
}
