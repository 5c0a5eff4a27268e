package palette

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"os/exec"
	"slices"
	"strconv"
	"strings"
)

// ErrCancelled is returned when the user closes the palette without choosing.
var ErrCancelled = errors.New("palette cancelled")

// listOpts is what a flavor needs to build the arguments for one list.
type listOpts struct {
	prompt  string
	message string
	fuzzy   bool
	// active rows and the row to preselect; selected is -1 for none.
	active   []int
	selected int
}

// flavor describes one dmenu-style program.
type flavor struct {
	command string
	caps    Capabilities
	list    func(o listOpts) []string
	ask     func(prompt, message string) []string
}

func withPrompt(args []string, flag, prompt string) []string {
	if prompt == "" {
		return args
	}
	return append(args, flag, prompt)
}

var rofi = flavor{
	command: "rofi",
	caps: Capabilities{
		Icons:         true,
		Markup:        true,
		NonSelectable: true,
		IndexOutput:   true,
		MessageBar:    true,
		RowStates:     true,
	},
	list: func(o listOpts) []string {
		args := withPrompt([]string{"-dmenu", "-i"}, "-p", o.prompt)
		// Rows carry markup, so answer with the row index.
		args = append(args, "-format", "i", "-no-custom")
		if o.fuzzy {
			args = append(args, "-matching", "fuzzy")
		}
		args = append(args, "-markup-rows", "-show-icons")
		if len(o.active) > 0 {
			args = append(args, "-a", joinInts(o.active))
		}
		if o.selected >= 0 {
			args = append(args, "-selected-row", strconv.Itoa(o.selected))
		}
		if o.message != "" {
			args = append(args, "-mesg", o.message)
		}
		return args
	},
	ask: func(prompt, message string) []string {
		args := withPrompt([]string{"-dmenu", "-l", "0"}, "-p", prompt)
		if message != "" {
			args = append(args, "-mesg", message)
		}
		return args
	},
}

var fuzzel = flavor{
	command: "fuzzel",
	caps:    Capabilities{Icons: true, IndexOutput: true},
	list: func(o listOpts) []string {
		return withPrompt([]string{"--dmenu", "--index"}, "--prompt", o.prompt)
	},
	ask: func(prompt, _ string) []string {
		return withPrompt([]string{"--dmenu", "--lines", "0"}, "--prompt", prompt)
	},
}

var wofi = flavor{
	command: "wofi",
	caps:    Capabilities{Icons: true, Markup: true},
	list: func(o listOpts) []string {
		return withPrompt([]string{"--dmenu", "--allow-markup", "--allow-images"}, "--prompt", o.prompt)
	},
	ask: func(prompt, _ string) []string {
		return withPrompt([]string{"--dmenu", "--lines", "1"}, "--prompt", prompt)
	},
}

var dmenu = flavor{
	command: "dmenu",
	list: func(o listOpts) []string {
		return withPrompt([]string{"-i"}, "-p", o.prompt)
	},
	ask: func(prompt, _ string) []string {
		return withPrompt(nil, "-p", prompt)
	},
}

var flavors = map[string]flavor{
	"rofi":   rofi,
	"fuzzel": fuzzel,
	"wofi":   wofi,
	"dmenu":  dmenu,
}

// picker runs a dmenu-style program once per Show or Prompt.
type picker struct {
	flavor
	fuzzy bool
}

func newPicker(f flavor) *picker {
	return &picker{flavor: f}
}

func (p *picker) Capabilities() Capabilities {
	return p.caps
}

// SetFuzzyMatching switches rofi to fuzzy matching. Other programs ignore it.
func (p *picker) SetFuzzyMatching(enabled bool) {
	p.fuzzy = enabled
}

func (p *picker) Show(ctx context.Context, prompt string, items []Item, message string) (SelectResult, error) {
	if len(items) == 0 {
		return SelectResult{}, errors.New("palette: no items to show")
	}

	rows := slices.Clone(items)
	input, opts := p.render(rows)
	opts.prompt = prompt
	opts.message = message
	opts.fuzzy = p.fuzzy

	out, err := p.exec(ctx, p.list(opts), input)
	if err != nil {
		return SelectResult{}, err
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return SelectResult{}, ErrCancelled
	}

	idx, err := p.choose(out, rows)
	if err != nil {
		return SelectResult{}, err
	}
	return SelectResult{Item: rows[idx], Index: idx}, nil
}

func (p *picker) Prompt(ctx context.Context, prompt, message string) (string, error) {
	out, err := p.exec(ctx, p.ask(prompt, message), "")
	if err != nil {
		return "", err
	}
	text := strings.TrimRight(out, "\r\n")
	if strings.TrimSpace(text) == "" {
		return "", ErrCancelled
	}
	return text, nil
}

func (p *picker) exec(ctx context.Context, args []string, input string) (string, error) {
	cmd := exec.CommandContext(ctx, p.command, args...)
	cmd.Stdin = strings.NewReader(input)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	switch {
	case err == nil:
		return string(out), nil
	case ctx.Err() != nil:
		return "", ctx.Err()
	case len(bytes.TrimSpace(out)) == 0 && cancelled(err):
		return "", ErrCancelled
	}
	if msg := strings.TrimSpace(stderr.String()); msg != "" {
		return "", fmt.Errorf("%s failed: %s", p.command, msg)
	}
	return "", fmt.Errorf("%s failed: %w", p.command, err)
}

// render writes one line per row and works out which rows to highlight.
// Programs that echo the chosen text get unique labels; rows is updated in
// place so choose can match them.
func (p *picker) render(rows []Item) (string, listOpts) {
	if !p.caps.IndexOutput {
		dedupeLabels(rows)
	}

	opts := listOpts{selected: -1}
	firstActive := -1
	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = p.line(row)
		if row.IsHeader || row.IsDivider {
			continue
		}
		if opts.selected == -1 {
			opts.selected = i
		}
		if row.IsActive {
			if firstActive == -1 {
				firstActive = i
			}
			if p.caps.RowStates {
				opts.active = append(opts.active, i)
			}
		}
	}
	if firstActive != -1 {
		opts.selected = firstActive
	}
	return strings.Join(lines, "\n"), opts
}

func dedupeLabels(rows []Item) {
	counts := map[string]int{}
	for i := range rows {
		if rows[i].IsHeader || rows[i].IsDivider {
			continue
		}
		label := cleanLabel(rows[i].Label)
		if label == "" {
			continue
		}
		counts[label]++
		if n := counts[label]; n > 1 {
			rows[i].Label = fmt.Sprintf("%s (%d)", label, n)
		}
	}
}

func (p *picker) line(row Item) string {
	text := cleanLabel(row.Label)
	if p.caps.Markup {
		text = html.EscapeString(text)
		switch {
		case row.IsHeader:
			text = "<b>" + text + "</b>"
		case row.IsDivider:
			text = "<span foreground='#666666'>" + text + "</span>"
		}
	}
	if p.command != rofi.command {
		return text
	}
	return text + rowOptions(row, p.caps)
}

// rowOptions renders rofi's per-row properties: a single NUL followed by
// key/value pairs separated by \x1f.
func rowOptions(row Item, caps Capabilities) string {
	var kv []string
	if (row.IsHeader || row.IsDivider) && caps.NonSelectable {
		kv = append(kv, "nonselectable", "true")
	}
	if row.Icon != "" && caps.Icons {
		kv = append(kv, "icon", cleanField(row.Icon))
	}
	if row.Info != "" {
		kv = append(kv, "info", cleanField(row.Info))
	}
	if row.Meta != "" {
		kv = append(kv, "meta", cleanField(row.Meta))
	}
	if row.IsActive {
		kv = append(kv, "active", "true")
	}
	if len(kv) == 0 {
		return ""
	}
	return "\x00" + strings.Join(kv, "\x1f")
}

// choose maps the program's answer back to a row. Index answers fall back
// to label matching when they do not parse.
func (p *picker) choose(answer string, rows []Item) (int, error) {
	if p.caps.IndexOutput {
		if idx, err := strconv.Atoi(answer); err == nil {
			if idx < 0 || idx >= len(rows) {
				return 0, fmt.Errorf("palette: index %d out of range", idx)
			}
			return idx, nil
		}
	}
	if idx := slices.IndexFunc(rows, func(r Item) bool { return cleanLabel(r.Label) == answer }); idx >= 0 {
		return idx, nil
	}
	return 0, fmt.Errorf("palette: unknown selection %q", answer)
}

var (
	labelCleaner = strings.NewReplacer("\r", " ", "\n", " ")
	fieldCleaner = strings.NewReplacer("\x00", " ", "\x1f", " ", "\r", " ", "\n", " ")
)

func cleanLabel(s string) string { return strings.TrimSpace(labelCleaner.Replace(s)) }

func cleanField(s string) string { return strings.TrimSpace(fieldCleaner.Replace(s)) }

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}

// cancelled reports whether err is the exit status dmenu-style programs use
// for Escape (1) or Ctrl+C (130).
func cancelled(err error) bool {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return false
	}
	code := exitErr.ExitCode()
	return code == 1 || code == 130
}
