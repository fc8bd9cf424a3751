// Package ui renders a Bubble Tea progress view over repeated checker runs,
// the watch-mode counterpart to the one-shot plain/JSON output
// internal/diagfmt produces.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tschecker/internal/driver"
)

// WatchRunner re-runs the checker over its configured file set and returns
// each file's diagnostics, the same outcome a single `tschk check`
// invocation produces.
type WatchRunner func(ctx context.Context) ([]driver.FileResult, error)

type tickMsg time.Time

type runDoneMsg struct {
	results []driver.FileResult
	err     error
}

// watchModel polls run on every interval tick and renders the latest
// pass/fail status per file: the same spinner-plus-status-list shape a
// one-shot build progress view uses, adapted to repeat on its own schedule
// instead of ending once the work is done.
type watchModel struct {
	ctx      context.Context
	run      WatchRunner
	interval time.Duration
	spinner  spinner.Model
	results  []driver.FileResult
	err      error
	running  bool
	lastRun  time.Time
	width    int
}

// NewWatchModel returns a Bubble Tea model that reruns run every interval
// and displays each file's diagnostic status, until stopped with 'q',
// Esc, or Ctrl+C.
func NewWatchModel(ctx context.Context, run WatchRunner, interval time.Duration) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	return &watchModel{ctx: ctx, run: run, interval: interval, spinner: sp, width: 80}
}

func (m *watchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.runOnce())
}

func (m *watchModel) runOnce() tea.Cmd {
	m.running = true
	run := m.run
	ctx := m.ctx
	return func() tea.Msg {
		results, err := run(ctx)
		return runDoneMsg{results: results, err: err}
	}
}

func (m *watchModel) scheduleTick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
		return m, nil

	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
		}
		return m, nil

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tickMsg:
		if m.running {
			return m, nil
		}
		return m, m.runOnce()

	case runDoneMsg:
		m.running = false
		m.results = msg.results
		m.err = msg.err
		m.lastRun = time.Now()
		return m, m.scheduleTick()
	}
	return m, nil
}

func (m *watchModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	var b strings.Builder
	header := "watching"
	if m.running {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	} else if !m.lastRun.IsZero() {
		header = fmt.Sprintf("%s (last run %s)", header, m.lastRun.Format("15:04:05"))
	}
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Render(fmt.Sprintf("run failed: %v", m.err)))
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("press q to stop watching"))
		b.WriteString("\n")
		return b.String()
	}

	for _, r := range m.results {
		status := "ok"
		style := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
		if r.Bag != nil && r.Bag.HasErrors() {
			status = fmt.Sprintf("%d error(s)", r.Bag.Len())
			style = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", style.Render(fmt.Sprintf("%12s", status)), r.Path))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("press q to stop watching"))
	b.WriteString("\n")
	return b.String()
}
