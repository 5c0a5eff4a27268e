package activity

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strconv"

	"github.com/1broseidon/hypract/internal/naming"
)

// ErrNothingToCycle is returned when there is no other target to step to.
var ErrNothingToCycle = errors.New("nothing to cycle to")

// NextActivity switches to the activity after the current one, wrapping
// around, and returns its name.
func (c *Controller) NextActivity(ctx context.Context) (string, error) {
	return c.stepActivity(ctx, 1)
}

// PreviousActivity switches to the activity before the current one.
func (c *Controller) PreviousActivity(ctx context.Context) (string, error) {
	return c.stepActivity(ctx, -1)
}

func (c *Controller) stepActivity(ctx context.Context, dir int) (string, error) {
	st := c.store.State()
	if len(st.Activities) < 2 {
		return "", ErrNothingToCycle
	}
	target := step(st.Activities, st.CurrentActivity, dir)
	return target, c.SwitchActivity(ctx, target)
}

// NextWorkspace switches to the next workspace of the current activity.
func (c *Controller) NextWorkspace(ctx context.Context) (string, error) {
	return c.stepWorkspace(ctx, 1)
}

// PreviousWorkspace switches to the previous workspace of the current activity.
func (c *Controller) PreviousWorkspace(ctx context.Context) (string, error) {
	return c.stepWorkspace(ctx, -1)
}

func (c *Controller) stepWorkspace(ctx context.Context, dir int) (string, error) {
	raws, err := c.activityWorkspaces(ctx)
	if err != nil {
		return "", err
	}
	if len(raws) == 0 {
		return "", ErrNothingToCycle
	}

	active, err := c.CurrentRawWorkspace(ctx)
	if err != nil {
		return "", err
	}
	target := step(raws, active, dir)
	if target == active {
		return "", ErrNothingToCycle
	}
	return target, c.SwitchWorkspace(ctx, target)
}

// activityWorkspaces returns the raw names of live workspaces that belong to
// the current activity, in natural order.
func (c *Controller) activityWorkspaces(ctx context.Context) ([]string, error) {
	live, err := c.svc.Workspaces(ctx)
	if err != nil {
		return nil, err
	}
	st := c.store.State()
	var raws []string
	for _, ws := range live {
		raw, err := st.RawWorkspace(ws.Name)
		if err != nil {
			continue
		}
		if naming.Encode(st.CurrentActivity, raw) != ws.Name {
			continue
		}
		if !slices.Contains(raws, raw) {
			raws = append(raws, raw)
		}
	}
	slices.SortFunc(raws, naturalCompare)
	return raws, nil
}

// step returns the element dir positions from cur in list, wrapping around.
// When cur is absent, forward steps start at the first element and backward
// steps at the last.
func step(list []string, cur string, dir int) string {
	i := slices.Index(list, cur)
	if i < 0 {
		if dir > 0 {
			return list[0]
		}
		return list[len(list)-1]
	}
	n := len(list)
	return list[((i+dir)%n+n)%n]
}

// naturalCompare orders numeric names numerically ahead of other names,
// which sort lexically.
func naturalCompare(a, b string) int {
	na, aErr := strconv.Atoi(a)
	nb, bErr := strconv.Atoi(b)
	switch {
	case aErr == nil && bErr == nil:
		if na != nb {
			return cmp.Compare(na, nb)
		}
	case aErr == nil:
		return -1
	case bErr == nil:
		return 1
	}
	return cmp.Compare(a, b)
}
