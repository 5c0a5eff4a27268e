package activity

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/1broseidon/hypract/internal/platform"
	"github.com/1broseidon/hypract/internal/state"
)

func TestSwitchWorkspace_DefaultState(t *testing.T) {
	store := newLoadedStore(t)
	svc := newFakeService("hact-[1]-[default]")
	c := NewController(store, svc, nil)

	if err := c.SwitchWorkspace(context.Background(), "web"); err != nil {
		t.Fatalf("SwitchWorkspace: %v", err)
	}
	if !slices.Equal(svc.switches, []string{"hact-[web]-[default]"}) {
		t.Fatalf("switches = %q", svc.switches)
	}
	reloaded, err := state.Open(store.Path()).LoadOrInit()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Workspaces["hact-[web]-[default]"] != "web" {
		t.Fatalf("workspaces = %v", reloaded.Workspaces)
	}
}

func TestSwitchWorkspace_Idempotent(t *testing.T) {
	store := newLoadedStore(t)
	svc := newFakeService()
	c := NewController(store, svc, nil)

	for i := 0; i < 2; i++ {
		if err := c.SwitchWorkspace(context.Background(), "web"); err != nil {
			t.Fatalf("SwitchWorkspace: %v", err)
		}
	}
	if svc.switches[0] != svc.switches[1] {
		t.Fatalf("switch targets differ: %q", svc.switches)
	}
	if got := len(store.State().Workspaces); got != 1 {
		t.Fatalf("workspaces = %d entries, want 1", got)
	}
}

func TestSwitchActivity_KeepsRawWorkspace(t *testing.T) {
	store := newLoadedStore(t)
	svc := newFakeService()
	c := NewController(store, svc, nil)

	if err := c.SwitchWorkspace(context.Background(), "web"); err != nil {
		t.Fatalf("SwitchWorkspace: %v", err)
	}
	if err := c.SwitchActivity(context.Background(), "work"); err != nil {
		t.Fatalf("SwitchActivity: %v", err)
	}

	if got := svc.switches[len(svc.switches)-1]; got != "hact-[web]-[work]" {
		t.Fatalf("last switch = %q", got)
	}
	reloaded, err := state.Open(store.Path()).LoadOrInit()
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.CurrentActivity != "work" {
		t.Fatalf("current_activity = %q", reloaded.CurrentActivity)
	}
	if !slices.Equal(reloaded.Activities, []string{"default", "work"}) {
		t.Fatalf("activities = %v", reloaded.Activities)
	}
	if reloaded.Workspaces["hact-[web]-[work]"] != "web" {
		t.Fatalf("workspaces = %v", reloaded.Workspaces)
	}
}

func TestSwitch_ServiceFailureRecordsNothing(t *testing.T) {
	store := newLoadedStore(t)
	svc := newFakeService("hact-[1]-[default]")
	svc.failSwitch = errors.New("compositor gone")
	c := NewController(store, svc, nil)

	err := c.SwitchWorkspace(context.Background(), "web")
	var svcErr *platform.ExternalServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("SwitchWorkspace error = %v, want *ExternalServiceError", err)
	}
	if err := c.SwitchActivity(context.Background(), "work"); !errors.As(err, &svcErr) {
		t.Fatalf("SwitchActivity error = %v, want *ExternalServiceError", err)
	}

	st := store.State()
	if len(st.Workspaces) != 0 || st.CurrentActivity != "default" || len(st.Activities) != 1 {
		t.Fatalf("state changed after failures: %+v", st)
	}
}

func TestSwitch_RejectsEmptyNames(t *testing.T) {
	store := newLoadedStore(t)
	svc := newFakeService()
	c := NewController(store, svc, nil)

	if err := c.SwitchWorkspace(context.Background(), "  "); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("SwitchWorkspace error = %v", err)
	}
	if err := c.SwitchActivity(context.Background(), ""); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("SwitchActivity error = %v", err)
	}
	if len(svc.switches) != 0 {
		t.Fatalf("service called: %q", svc.switches)
	}
}

func TestSwitchActivity_UndecodableActiveWorkspace(t *testing.T) {
	store := newLoadedStore(t)
	svc := newFakeService("hact-")
	c := NewController(store, svc, nil)

	err := c.SwitchActivity(context.Background(), "work")
	if err == nil {
		t.Fatal("expected decode error")
	}
	if len(svc.switches) != 0 {
		t.Fatalf("service called: %q", svc.switches)
	}
}

func TestCandidates(t *testing.T) {
	store := newLoadedStore(t)
	if err := store.AddActivity("work"); err != nil {
		t.Fatalf("AddActivity: %v", err)
	}
	svc := newFakeService("hact-[1]-[default]", "hact-[web]-[work]", "hact-", "hact-[1]-[work]")
	c := NewController(store, svc, nil)

	acts, raws, err := c.Candidates(context.Background())
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}
	if !slices.Equal(acts, []string{"default", "work"}) {
		t.Fatalf("activities = %v", acts)
	}
	if !slices.Equal(raws, []string{"1", "web", "1"}) {
		t.Fatalf("workspaces = %v", raws)
	}
}

func TestExclusive_ReconcilesBeforeRunning(t *testing.T) {
	store := state.Open(newLoadedStore(t).Path())
	svc := newFakeService("1", "2")
	c := NewController(store, svc, nil)

	var seen []string
	err := c.Exclusive(context.Background(), func(ctx context.Context) error {
		for _, ws := range svc.workspaces {
			seen = append(seen, ws.Name)
		}
		return c.SwitchWorkspace(ctx, "2")
	})
	if err != nil {
		t.Fatalf("Exclusive: %v", err)
	}
	if !slices.Equal(seen, []string{"hact-[1]-[default]", "hact-[2]-[default]"}) {
		t.Fatalf("workspaces seen by fn = %q", seen)
	}
	if svc.activeName() != "hact-[2]-[default]" {
		t.Fatalf("active = %q", svc.activeName())
	}
}

func TestExclusive_ReconcileFailureStops(t *testing.T) {
	store := state.Open(newLoadedStore(t).Path())
	svc := newFakeService("1")
	svc.failList = errors.New("socket closed")
	c := NewController(store, svc, nil)

	ran := false
	err := c.Exclusive(context.Background(), func(context.Context) error {
		ran = true
		return nil
	})
	if err == nil || ran {
		t.Fatalf("Exclusive err = %v, ran = %v", err, ran)
	}
}

func TestShared_DoesNotReconcile(t *testing.T) {
	store := state.Open(newLoadedStore(t).Path())
	svc := newFakeService("hact-[1]-[default]", "scratch")
	svc.failRename = map[int]error{2: errors.New("busy")}
	c := NewController(store, svc, nil)

	var activities, workspaces []string
	err := c.Shared(context.Background(), func(ctx context.Context) error {
		var err error
		activities, workspaces, err = c.Candidates(ctx)
		return err
	})
	if err != nil {
		t.Fatalf("Shared: %v", err)
	}
	if len(svc.renames) != 0 {
		t.Fatalf("renames = %q, want none", svc.renames)
	}
	if !slices.Equal(activities, []string{"default"}) || !slices.Equal(workspaces, []string{"1"}) {
		t.Fatalf("candidates = %q, %q", activities, workspaces)
	}
	noop := func(context.Context) error { return nil }
	if err := c.Exclusive(context.Background(), noop); err == nil {
		t.Fatal("Exclusive succeeded, want the reconcile rename failure")
	}
}
