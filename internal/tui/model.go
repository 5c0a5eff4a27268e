package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/hypract/internal/launcher"
	"github.com/1broseidon/hypract/internal/ranker"
)

// rankedMsg carries results for the query typed at seq. Stale results are
// dropped.
type rankedMsg struct {
	seq     int
	entries []ranker.Entry
}

type selectedMsg struct {
	entry  ranker.Entry
	result launcher.Result
}

type model struct {
	picker Picker
	status string

	input   textinput.Model
	entries []ranker.Entry
	cursor  int
	seq     int
	busy    bool

	chosen *ranker.Entry
	err    error

	width  int
	height int
}

func newModel(p Picker, opts Options) model {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.Placeholder = "activity or workspace name"
	ti.CharLimit = 128
	ti.SetValue(opts.Query)
	ti.Focus()

	return model{
		picker: p,
		status: opts.Status,
		input:  ti,
	}
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.input.Value() != "" {
		cmds = append(cmds, m.rank(m.seq, m.input.Value()))
	}
	return tea.Batch(cmds...)
}

func (m model) rank(seq int, query string) tea.Cmd {
	p := m.picker
	return func() tea.Msg {
		return rankedMsg{seq: seq, entries: p.Rank(query)}
	}
}

func (m model) selectEntry(e ranker.Entry) tea.Cmd {
	p := m.picker
	return func() tea.Msg {
		return selectedMsg{entry: e, result: p.Select(e)}
	}
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = max(msg.Width-4, 10)
		return m, nil

	case rankedMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.entries = msg.entries
		m.cursor = 0
		return m, nil

	case selectedMsg:
		m.busy = false
		if msg.result.Err != nil {
			m.err = msg.result.Err
			return m, nil
		}
		e := msg.entry
		m.chosen = &e
		if msg.result.Close {
			return m, tea.Quit
		}
		return m, nil

	case tea.KeyMsg:
		if m.err != nil {
			return m, tea.Quit
		}
		if m.busy {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m, nil
		}
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "ctrl+p", "ctrl+k":
			m.move(-1)
			return m, nil
		case "down", "ctrl+n", "ctrl+j", "tab":
			m.move(1)
			return m, nil
		case "enter":
			if len(m.entries) == 0 {
				return m, nil
			}
			m.busy = true
			return m, m.selectEntry(m.entries[m.cursor])
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.seq++
		if strings.TrimSpace(after) == "" {
			m.entries = nil
			m.cursor = 0
			return m, cmd
		}
		return m, tea.Batch(cmd, m.rank(m.seq, after))
	}
	return m, cmd
}

func (m *model) move(delta int) {
	if len(m.entries) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.entries)) % len(m.entries)
}

// View implements tea.Model.
func (m model) View() string {
	width := m.width
	if width == 0 {
		width = 80
	}

	var b strings.Builder
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	switch {
	case strings.TrimSpace(m.input.Value()) == "":
		b.WriteString(descStyle.Render("Type to switch to or create an activity or workspace."))
	case len(m.entries) == 0:
		b.WriteString(descStyle.Render("No matches."))
	}

	for i, e := range m.entries {
		title := titleTextStyle.Render(launcher.Title(e))
		pointer := "  "
		if i == m.cursor {
			title = selectedTitleStyle.Render(launcher.Title(e))
			pointer = cursorStyle.Render("▌ ")
		}
		b.WriteString(pointer + badge(e.Kind) + " " + title + "\n")
		b.WriteString("    " + descStyle.Render(launcher.Description(e)) + "\n")
	}

	if m.err != nil {
		b.WriteString("\n" + errorStyle.Render("✗ "+m.err.Error()) + "\n")
		b.WriteString(descStyle.Render("Press any key to close."))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		renderStatusBar(m.status, width),
		lipgloss.NewStyle().Padding(1, 1).Render(b.String()),
		renderHelpBar(width),
	)
}
