package launcher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/1broseidon/hypract/internal/ranker"
)

type fakeSwitcher struct {
	mu         sync.Mutex
	activities []string
	workspaces []string
	listErr    error
	switchErr  error
	calls      []string
	block      chan struct{}

	exclusive int
	shared    int
}

func (f *fakeSwitcher) Exclusive(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	f.exclusive++
	f.mu.Unlock()
	return f.wait(ctx, fn)
}

func (f *fakeSwitcher) Shared(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	f.shared++
	f.mu.Unlock()
	return f.wait(ctx, fn)
}

func (f *fakeSwitcher) wait(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return fn(ctx)
}

func (f *fakeSwitcher) Candidates(context.Context) ([]string, []string, error) {
	return f.activities, f.workspaces, f.listErr
}

func (f *fakeSwitcher) SwitchActivity(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "activity:"+name)
	return f.switchErr
}

func (f *fakeSwitcher) SwitchWorkspace(_ context.Context, raw string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "workspace:"+raw)
	return f.switchErr
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages []string
}

func (n *recordingNotifier) Notify(summary, body string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, summary+": "+body)
}

func newTestPlugin(t *testing.T, sw Switcher, opts ...Option) *Plugin {
	t.Helper()
	p := New(DefaultConfig(), sw, append([]Option{WithNotifier(nil)}, opts...)...)
	t.Cleanup(p.Close)
	return p
}

func TestQuery(t *testing.T) {
	p := newTestPlugin(t, &fakeSwitcher{})
	tests := []struct {
		input  string
		want   string
		wantOK bool
	}{
		{":ha web", "web", true},
		{":ha   \tmy work", "my work", true},
		{":haweb", "web", true},
		{":ha", "", true},
		{"web", "", false},
		{" :ha web", "", false},
	}
	for _, tt := range tests {
		got, ok := p.Query(tt.input)
		if got != tt.want || ok != tt.wantOK {
			t.Fatalf("Query(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestMatch_RequiresPrefix(t *testing.T) {
	p := newTestPlugin(t, &fakeSwitcher{activities: []string{"web"}})
	if got := p.Match("web"); len(got) != 0 {
		t.Fatalf("Match without prefix = %+v", got)
	}
	if got := p.Match(":ha "); len(got) != 0 {
		t.Fatalf("Match with empty query = %+v", got)
	}
}

func TestMatch_RanksCandidates(t *testing.T) {
	p := newTestPlugin(t, &fakeSwitcher{
		activities: []string{"default", "work"},
		workspaces: []string{"1", "web", "1"},
	})
	got := p.Match(":ha w")
	if len(got) == 0 || len(got) > 5 {
		t.Fatalf("Match = %+v", got)
	}
	if got[0] != (ranker.Entry{Kind: ranker.KindActivity, Text: "w", Score: ranker.MaxScore}) {
		t.Fatalf("first = %+v", got[0])
	}
	if len(got) != 4 {
		t.Fatalf("Match = %+v, want pinned pair plus work and web", got)
	}
}

func TestMatch_CandidateErrorDegradesToEmpty(t *testing.T) {
	p := newTestPlugin(t, &fakeSwitcher{listErr: errors.New("compositor down")})
	if got := p.Match(":ha web"); got != nil {
		t.Fatalf("Match = %+v, want nil", got)
	}
}

func TestSelect_DispatchesByKind(t *testing.T) {
	sw := &fakeSwitcher{}
	p := newTestPlugin(t, sw)

	res := p.Select(ranker.Entry{Kind: ranker.KindWorkspace, Text: "web"})
	if !res.Close || res.Err != nil {
		t.Fatalf("Select workspace = %+v", res)
	}
	res = p.Select(ranker.Entry{Kind: ranker.KindActivity, Text: "work"})
	if !res.Close || res.Err != nil {
		t.Fatalf("Select activity = %+v", res)
	}
	if len(sw.calls) != 2 || sw.calls[0] != "workspace:web" || sw.calls[1] != "activity:work" {
		t.Fatalf("calls = %q", sw.calls)
	}
}

func TestSelect_ErrorNotifiesAndCloses(t *testing.T) {
	sw := &fakeSwitcher{switchErr: errors.New("rename failed")}
	n := &recordingNotifier{}
	p := newTestPlugin(t, sw, WithNotifier(n))

	res := p.Select(ranker.Entry{Kind: ranker.KindActivity, Text: "work"})
	if !res.Close || res.Err == nil {
		t.Fatalf("Select = %+v, want close with error", res)
	}
	if len(n.messages) != 1 {
		t.Fatalf("notifications = %q", n.messages)
	}
}

func TestClose_DrainsQueuedJobs(t *testing.T) {
	sw := &fakeSwitcher{block: make(chan struct{})}
	p := New(DefaultConfig(), sw, WithNotifier(nil))

	results := make(chan Result, 3)
	for i := 0; i < 3; i++ {
		go func() {
			results <- p.Select(ranker.Entry{Kind: ranker.KindWorkspace, Text: "web"})
		}()
	}
	time.Sleep(20 * time.Millisecond)

	closed := make(chan struct{})
	go func() {
		p.Close()
		close(closed)
	}()

	for i := 0; i < 3; i++ {
		select {
		case res := <-results:
			if res.Err == nil {
				t.Fatalf("Select after Close = %+v, want error", res)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Select blocked after Close")
		}
	}
	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not return")
	}

	if res := p.Select(ranker.Entry{Kind: ranker.KindWorkspace, Text: "web"}); !errors.Is(res.Err, ErrPluginClosed) {
		t.Fatalf("Select on closed plugin = %+v", res)
	}
	p.Close()
	if len(sw.calls) != 0 {
		t.Fatalf("switches ran after close: %q", sw.calls)
	}
}

func TestEntryText(t *testing.T) {
	e := ranker.Entry{Kind: ranker.KindWorkspace, Text: "web"}
	if got := Title(e); got != `Switch to the workspace "web"` {
		t.Fatalf("Title = %q", got)
	}
	if got := Description(e); got != "Switch to the workspace named web" {
		t.Fatalf("Description = %q", got)
	}
	if Icon(e) == Icon(ranker.Entry{Kind: ranker.KindActivity}) {
		t.Fatal("activity and workspace icons should differ")
	}
}

func TestInfoRoundTrip(t *testing.T) {
	for _, e := range []ranker.Entry{
		{Kind: ranker.KindActivity, Text: "work"},
		{Kind: ranker.KindWorkspace, Text: "a:b c"},
	} {
		got, err := DecodeInfo(EncodeInfo(e))
		if err != nil {
			t.Fatalf("DecodeInfo(%q): %v", EncodeInfo(e), err)
		}
		if got != e {
			t.Fatalf("round trip = %+v, want %+v", got, e)
		}
	}

	for _, bad := range []string{"", "work", "window:x", "activity:", "workspace:  "} {
		if _, err := DecodeInfo(bad); err == nil {
			t.Fatalf("DecodeInfo(%q) succeeded, want error", bad)
		}
	}
}

func TestRank_ReadsWithoutReconciling(t *testing.T) {
	sw := &fakeSwitcher{activities: []string{"default"}, workspaces: []string{"web"}}
	p := newTestPlugin(t, sw)

	for _, q := range []string{"w", "we", "web"} {
		if got := p.Rank(q); len(got) == 0 {
			t.Fatalf("Rank(%q) = no entries", q)
		}
	}
	if sw.shared != 3 || sw.exclusive != 0 {
		t.Fatalf("shared = %d, exclusive = %d; queries must not reconcile", sw.shared, sw.exclusive)
	}

	p.Select(ranker.Entry{Kind: ranker.KindWorkspace, Text: "web"})
	if sw.exclusive != 1 {
		t.Fatalf("exclusive = %d after Select, want 1", sw.exclusive)
	}
}

func TestClose_WithFullQueue(t *testing.T) {
	sw := &fakeSwitcher{block: make(chan struct{})}
	p := New(DefaultConfig(), sw, WithNotifier(nil))

	const callers = 40
	results := make(chan Result, callers)
	for i := 0; i < callers; i++ {
		go func() {
			results <- p.Select(ranker.Entry{Kind: ranker.KindActivity, Text: "work"})
		}()
	}
	time.Sleep(50 * time.Millisecond)

	closed := make(chan struct{})
	go func() {
		p.Close()
		close(closed)
	}()
	select {
	case <-closed:
	case <-time.After(2 * time.Second):
		t.Fatal("Close deadlocked with more callers than queue slots")
	}
	for i := 0; i < callers; i++ {
		select {
		case res := <-results:
			if res.Err == nil {
				t.Fatalf("Select = %+v, want error after Close", res)
			}
		case <-time.After(2 * time.Second):
			t.Fatal("Select blocked after Close")
		}
	}
}
