package activity

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/1broseidon/hypract/internal/platform"
	"github.com/1broseidon/hypract/internal/state"
)

// fakeService is an in-memory compositor. Switching to an unknown name
// creates the workspace, as Hyprland does.
type fakeService struct {
	workspaces []platform.Workspace
	active     int // index into workspaces
	nextID     int

	switches []string
	renames  []string

	failSwitch error
	failRename map[int]error
	failList   error
}

func newFakeService(names ...string) *fakeService {
	f := &fakeService{nextID: 1}
	for _, n := range names {
		f.workspaces = append(f.workspaces, platform.Workspace{ID: f.nextID, Name: n})
		f.nextID++
	}
	return f
}

func (f *fakeService) ActiveWorkspace(context.Context) (platform.Workspace, error) {
	if len(f.workspaces) == 0 {
		return platform.Workspace{}, platform.Wrap("get active workspace", errors.New("no workspaces"))
	}
	return f.workspaces[f.active], nil
}

func (f *fakeService) Workspaces(context.Context) ([]platform.Workspace, error) {
	if f.failList != nil {
		return nil, platform.Wrap("list workspaces", f.failList)
	}
	return append([]platform.Workspace(nil), f.workspaces...), nil
}

func (f *fakeService) RenameWorkspace(_ context.Context, id int, name string) error {
	if err := f.failRename[id]; err != nil {
		return platform.Wrap("rename workspace", err)
	}
	for i := range f.workspaces {
		if f.workspaces[i].ID == id {
			f.workspaces[i].Name = name
			f.renames = append(f.renames, fmt.Sprintf("%d=%s", id, name))
			return nil
		}
	}
	return platform.Wrap("rename workspace", fmt.Errorf("no workspace %d", id))
}

func (f *fakeService) SwitchToWorkspace(_ context.Context, name string) error {
	if f.failSwitch != nil {
		return platform.Wrap("switch workspace", f.failSwitch)
	}
	f.switches = append(f.switches, name)
	for i, ws := range f.workspaces {
		if ws.Name == name {
			f.active = i
			return nil
		}
	}
	f.workspaces = append(f.workspaces, platform.Workspace{ID: f.nextID, Name: name})
	f.nextID++
	f.active = len(f.workspaces) - 1
	return nil
}

func (f *fakeService) activeName() string {
	return f.workspaces[f.active].Name
}

func newLoadedStore(t *testing.T) *state.Store {
	t.Helper()
	s := state.Open(filepath.Join(t.TempDir(), "state.json"))
	if _, err := s.LoadOrInit(); err != nil {
		t.Fatalf("LoadOrInit: %v", err)
	}
	return s
}
