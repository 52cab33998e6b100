// Package tui implements the bubbletea progress dashboard, mirroring
// executor/main.go's model/Update/View shape (gamesPlayed counter,
// rolling recent-results window, tick-driven elapsed-time display).
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tanktourney/tanktourney/progress"
)

type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func waitForUpdate(updates <-chan progress.Event) tea.Cmd {
	return func() tea.Msg { return <-updates }
}

// Model is the bubbletea model driving a tournament run's dashboard.
type Model struct {
	title     string
	total     int
	completed int
	startTime time.Time
	recent    []string
	updates   <-chan progress.Event
	done      bool
}

// New builds a Model. total is the known number of scheduled games (0
// if unknown); updates is closed by the caller once the run finishes.
func New(title string, total int, updates <-chan progress.Event) Model {
	return Model{title: title, total: total, startTime: time.Now(), updates: updates}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForUpdate(m.updates), tickCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case tickMsg:
		return m, tickCmd()
	case progress.Event:
		m.completed++
		line := fmt.Sprintf("%s: %s", msg.Label, msg.Summary)
		m.recent = append([]string{line}, m.recent...)
		if len(m.recent) > 10 {
			m.recent = m.recent[:10]
		}
		if m.total > 0 && m.completed >= m.total {
			m.done = true
			return m, tea.Quit
		}
		return m, waitForUpdate(m.updates)
	}
	return m, nil
}

func (m Model) View() string {
	duration := time.Since(m.startTime).Round(time.Second)

	s := fmt.Sprintf("%s\n\n", m.title)
	if m.total > 0 {
		s += fmt.Sprintf("Games:    %d / %d\n", m.completed, m.total)
	} else {
		s += fmt.Sprintf("Games:    %d\n", m.completed)
	}
	s += fmt.Sprintf("Elapsed:  %s\n\n", duration)

	s += "Recent:\n"
	for _, line := range m.recent {
		s += "  " + line + "\n"
	}

	if !m.done {
		s += "\nPress q to quit.\n"
	}
	return s
}
