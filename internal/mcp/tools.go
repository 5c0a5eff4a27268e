package mcp

import (
	"context"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/hypract/internal/ranker"
)

func (s *Server) handleGetCurrentActivity(ctx context.Context, _ *mcpsdk.CallToolRequest, _ Empty) (*mcpsdk.CallToolResult, CurrentActivityOutput, error) {
	var out CurrentActivityOutput
	err := s.exclusive(ctx, func(ctx context.Context) error {
		out.Activity = s.ctrl.Store().CurrentActivity()
		raw, err := s.ctrl.CurrentRawWorkspace(ctx)
		if err != nil {
			// The activity is known from state alone.
			s.logger.Warn("mcp: could not decode active workspace", "error", err)
			return nil
		}
		out.Workspace = raw
		return nil
	})
	if err != nil {
		return nil, CurrentActivityOutput{}, err
	}
	return nil, out, nil
}

func (s *Server) handleListActivities(ctx context.Context, _ *mcpsdk.CallToolRequest, _ Empty) (*mcpsdk.CallToolResult, ListActivitiesOutput, error) {
	var out ListActivitiesOutput
	err := s.exclusive(ctx, func(context.Context) error {
		st := s.ctrl.Store().State()
		out.Current = st.CurrentActivity
		out.Activities = st.Activities
		return nil
	})
	if err != nil {
		return nil, ListActivitiesOutput{}, err
	}
	return nil, out, nil
}

func (s *Server) handleSwitchWorkspace(ctx context.Context, _ *mcpsdk.CallToolRequest, args SwitchInput) (*mcpsdk.CallToolResult, SwitchOutput, error) {
	var out SwitchOutput
	err := s.exclusive(ctx, func(ctx context.Context) error {
		if err := s.ctrl.SwitchWorkspace(ctx, args.Name); err != nil {
			return err
		}
		out = SwitchOutput{Activity: s.ctrl.Store().CurrentActivity(), Workspace: args.Name}
		return nil
	})
	if err != nil {
		return nil, SwitchOutput{}, err
	}
	s.logger.Info("mcp: switched workspace", "workspace", args.Name)
	return nil, out, nil
}

func (s *Server) handleSwitchActivity(ctx context.Context, _ *mcpsdk.CallToolRequest, args SwitchInput) (*mcpsdk.CallToolResult, SwitchOutput, error) {
	var out SwitchOutput
	err := s.exclusive(ctx, func(ctx context.Context) error {
		if err := s.ctrl.SwitchActivity(ctx, args.Name); err != nil {
			return err
		}
		out.Activity = args.Name
		// The switch already happened; report it without the workspace.
		raw, err := s.ctrl.CurrentRawWorkspace(ctx)
		if err != nil {
			s.logger.Debug("mcp: cannot read workspace after switch", "activity", args.Name, "error", err)
			return nil
		}
		out.Workspace = raw
		return nil
	})
	if err != nil {
		return nil, SwitchOutput{}, err
	}
	s.logger.Info("mcp: switched activity", "activity", args.Name)
	return nil, out, nil
}

func (s *Server) handleCycle(ctx context.Context, _ *mcpsdk.CallToolRequest, args CycleInput) (*mcpsdk.CallToolResult, SwitchOutput, error) {
	dir := strings.ToLower(strings.TrimSpace(args.Direction))
	if dir == "" {
		dir = "next"
	}
	if dir != "next" && dir != "previous" {
		return nil, SwitchOutput{}, fmt.Errorf("direction must be next or previous, got %q", args.Direction)
	}

	var step func(context.Context) (string, error)
	switch strings.ToLower(strings.TrimSpace(args.Target)) {
	case "activity":
		step = s.ctrl.NextActivity
		if dir == "previous" {
			step = s.ctrl.PreviousActivity
		}
	case "workspace":
		step = s.ctrl.NextWorkspace
		if dir == "previous" {
			step = s.ctrl.PreviousWorkspace
		}
	default:
		return nil, SwitchOutput{}, fmt.Errorf("target must be activity or workspace, got %q", args.Target)
	}

	var out SwitchOutput
	err := s.exclusive(ctx, func(ctx context.Context) error {
		if _, err := step(ctx); err != nil {
			return err
		}
		out.Activity = s.ctrl.Store().CurrentActivity()
		// The switch already happened; report it without the workspace.
		raw, err := s.ctrl.CurrentRawWorkspace(ctx)
		if err != nil {
			s.logger.Debug("mcp: cannot read workspace after cycle", "target", args.Target, "error", err)
			return nil
		}
		out.Workspace = raw
		return nil
	})
	if err != nil {
		return nil, SwitchOutput{}, err
	}
	return nil, out, nil
}

func (s *Server) handleRank(ctx context.Context, _ *mcpsdk.CallToolRequest, args RankInput) (*mcpsdk.CallToolResult, RankOutput, error) {
	limit := args.MaxEntries
	if limit <= 0 {
		limit = s.maxEntries
	}

	var activities, workspaces []string
	err := s.exclusive(ctx, func(ctx context.Context) error {
		var err error
		activities, workspaces, err = s.ctrl.Candidates(ctx)
		return err
	})
	if err != nil {
		return nil, RankOutput{}, err
	}

	entries := ranker.New(limit).Rank(args.Query, activities, workspaces)
	out := RankOutput{Entries: make([]RankedEntry, 0, len(entries))}
	for _, e := range entries {
		out.Entries = append(out.Entries, RankedEntry{Kind: e.Kind.String(), Text: e.Text, Score: e.Score})
	}
	return nil, out, nil
}
