// Package launcher is the surface interactive pickers drive: it gates input
// on a trigger prefix, ranks targets and performs the selected switch on a
// background worker so the host only blocks the calling callback.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unicode"

	"github.com/1broseidon/hypract/internal/ranker"
)

// ErrPluginClosed is returned for work submitted to, or still queued in, a
// closed plugin.
var ErrPluginClosed = errors.New("launcher plugin closed")

// Config holds the launcher options.
type Config struct {
	Prefix     string `yaml:"prefix" json:"prefix"`
	MaxEntries int    `yaml:"max_entries" json:"max_entries"`
}

// DefaultConfig returns the stock trigger prefix and result bound.
func DefaultConfig() Config {
	return Config{Prefix: ":ha", MaxEntries: 5}
}

// Switcher is the part of activity.Controller the plugin uses.
type Switcher interface {
	// Exclusive locks, reloads and reconciles before fn; used for switches.
	Exclusive(ctx context.Context, fn func(ctx context.Context) error) error
	// Shared locks and reloads without reconciling; used for queries.
	Shared(ctx context.Context, fn func(ctx context.Context) error) error
	Candidates(ctx context.Context) (activities, workspaces []string, err error)
	SwitchActivity(ctx context.Context, name string) error
	SwitchWorkspace(ctx context.Context, raw string) error
}

// Result tells the host what to do after a selection.
type Result struct {
	Close bool
	Err   error
}

type job struct {
	run   func(ctx context.Context) error
	reply chan error
}

// Plugin serialises all switcher access onto one worker goroutine.
type Plugin struct {
	cfg      Config
	sw       Switcher
	rank     *ranker.Ranker
	notifier Notifier
	logger   *slog.Logger

	jobs   chan job
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	mu     sync.RWMutex
	closed bool
}

// Option configures a Plugin.
type Option func(*Plugin)

// WithLogger sets the plugin logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Plugin) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithNotifier sets where selection errors are reported. nil disables
// notifications.
func WithNotifier(n Notifier) Option {
	return func(p *Plugin) { p.notifier = n }
}

// New starts a plugin and its worker. Call Close when the host unloads it.
func New(cfg Config, sw Switcher, opts ...Option) *Plugin {
	ctx, cancel := context.WithCancel(context.Background())
	p := &Plugin{
		cfg:      cfg,
		sw:       sw,
		rank:     ranker.New(cfg.MaxEntries),
		notifier: DesktopNotifier{},
		logger:   slog.New(slog.DiscardHandler),
		jobs:     make(chan job, 16),
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(p)
	}
	go p.worker()
	return p
}

// Config returns the plugin configuration.
func (p *Plugin) Config() Config {
	return p.cfg
}

// Query strips the trigger prefix and any whitespace after it. ok is false
// when input does not start with the prefix.
func (p *Plugin) Query(input string) (query string, ok bool) {
	rest, ok := strings.CutPrefix(input, p.cfg.Prefix)
	if !ok {
		return "", false
	}
	return strings.TrimLeftFunc(rest, unicode.IsSpace), true
}

// Match ranks targets for input. Input without the prefix, an empty query
// and any failure to collect candidates all yield no entries.
func (p *Plugin) Match(input string) []ranker.Entry {
	query, ok := p.Query(input)
	if !ok || query == "" {
		return nil
	}
	return p.Rank(query)
}

// Rank ranks targets for an already-stripped query. It only reads state and
// never renames workspaces; hosts reconcile once before they open.
func (p *Plugin) Rank(query string) []ranker.Entry {
	if query == "" {
		return nil
	}
	var activities, workspaces []string
	err := p.submit(func(ctx context.Context) error {
		return p.sw.Shared(ctx, func(ctx context.Context) error {
			var err error
			activities, workspaces, err = p.sw.Candidates(ctx)
			return err
		})
	})
	if err != nil {
		p.logger.Warn("launcher: failed to collect candidates", "query", query, "error", err)
		return nil
	}
	return p.rank.Rank(query, activities, workspaces)
}

// Select switches to entry. The host should close its picker afterwards;
// errors have already been reported through the notifier.
func (p *Plugin) Select(entry ranker.Entry) Result {
	err := p.submit(func(ctx context.Context) error {
		return p.sw.Exclusive(ctx, func(ctx context.Context) error {
			switch entry.Kind {
			case ranker.KindActivity:
				return p.sw.SwitchActivity(ctx, entry.Text)
			case ranker.KindWorkspace:
				return p.sw.SwitchWorkspace(ctx, entry.Text)
			default:
				return fmt.Errorf("unknown entry kind %d", entry.Kind)
			}
		})
	})
	if err != nil {
		p.logger.Error("launcher: selection failed", "kind", entry.Kind, "text", entry.Text, "error", err)
		if p.notifier != nil {
			p.notifier.Notify(fmt.Sprintf("hypract: cannot switch to %s %q", entry.Kind, entry.Text), err.Error())
		}
	}
	return Result{Close: true, Err: err}
}

// Close stops the worker. Queued jobs fail with ErrPluginClosed. Close
// waits for the worker to exit and is safe to call more than once.
func (p *Plugin) Close() {
	// Cancel first so submitters blocked on a full queue let go of mu.
	p.cancel()
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		<-p.done
		return
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()
	<-p.done
}

func (p *Plugin) submit(run func(ctx context.Context) error) error {
	reply := make(chan error, 1)

	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return ErrPluginClosed
	}
	select {
	case p.jobs <- job{run: run, reply: reply}:
	case <-p.ctx.Done():
		p.mu.RUnlock()
		return ErrPluginClosed
	}
	p.mu.RUnlock()

	return <-reply
}

func (p *Plugin) worker() {
	defer close(p.done)
	for j := range p.jobs {
		if p.ctx.Err() != nil {
			j.reply <- ErrPluginClosed
			continue
		}
		j.reply <- p.run(j)
	}
}

func (p *Plugin) run(j job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("launcher: job panicked: %v", r)
		}
	}()
	return j.run(p.ctx)
}
