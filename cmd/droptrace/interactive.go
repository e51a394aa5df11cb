package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/wippyai/droptrace/scenario"
	"github.com/wippyai/droptrace/trace"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#87CEEB"))

	dropStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	ownerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	noteStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#98FB98"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// styledEntry is the terminal rendering of a trace entry. The text is the
// same as trace.PlainText; only colour is added.
func styledEntry(e trace.Entry) string {
	switch e.Kind {
	case trace.KindHeader:
		return "\n" + headerStyle.Render("=== "+e.Text+" ===")
	case trace.KindDrop:
		return dropStyle.Render("Drop: ") + e.Text
	default:
		return noteStyle.Render(e.Text)
	}
}

type keyMap struct {
	Next key.Binding
	Prev key.Binding
	All  key.Binding
	Quit key.Binding
}

var keys = keyMap{
	Next: key.NewBinding(
		key.WithKeys("enter", " ", "j", "down"),
		key.WithHelp("enter/space", "next event"),
	),
	Prev: key.NewBinding(
		key.WithKeys("backspace", "k", "up"),
		key.WithHelp("k", "back"),
	),
	All: key.NewBinding(
		key.WithKeys("a", "end"),
		key.WithHelp("a", "reveal all"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c", "esc"),
		key.WithHelp("q", "quit"),
	),
}

// chrome is the number of lines View uses around the viewport.
const chrome = 4

type interactiveModel struct {
	entries  []trace.Entry
	viewport viewport.Model
	shown    int
	ready    bool
}

func newInteractiveModel(entries []trace.Entry) *interactiveModel {
	return &interactiveModel{entries: entries}
}

func runInteractive(scs []scenario.Scenario, log *zap.Logger) error {
	rec := trace.NewRecorder()
	if err := scenario.NewRunner(rec, log).Run(scs); err != nil {
		return fmt.Errorf("run scenarios: %w", err)
	}

	p := tea.NewProgram(newInteractiveModel(rec.Entries()), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("interactive: %w", err)
	}
	return nil
}

func (m *interactiveModel) Init() tea.Cmd {
	return nil
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		height := max(msg.Height-chrome, 1)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Next):
			if m.shown < len(m.entries) {
				m.shown++
			}
		case key.Matches(msg, keys.Prev):
			if m.shown > 0 {
				m.shown--
			}
		case key.Matches(msg, keys.All):
			m.shown = len(m.entries)
		default:
			return m, nil
		}
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *interactiveModel) content() string {
	var b strings.Builder
	for _, e := range m.entries[:m.shown] {
		b.WriteString(styledEntry(e))
		if e.Kind == trace.KindDrop && e.Owner != "" {
			b.WriteString(ownerStyle.Render("  (owner: " + e.Owner + ")"))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (m *interactiveModel) refresh() {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.content())
	m.viewport.GotoBottom()
}

func (m *interactiveModel) View() string {
	if !m.ready {
		return "Loading trace..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("droptrace"))
	b.WriteString(fmt.Sprintf(" event %d/%d", m.shown, len(m.entries)))
	b.WriteString("\n\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter/space next • k back • a all • q quit"))
	return b.String()
}
