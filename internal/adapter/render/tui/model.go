// Package tui is a live terminal viewer that advances a game one round per
// tick.
package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"gridclash/internal/adapter/render/text"
	"gridclash/internal/domain/sim"
)

const DefaultInterval = 300 * time.Millisecond

type TickMsg time.Time

type Model struct {
	game     *sim.Game
	interval time.Duration
	paused   bool
	frame    sim.Frame
}

// New starts g and returns a model that owns it until the program exits.
func New(g *sim.Game, interval time.Duration) Model {
	if interval <= 0 {
		interval = DefaultInterval
	}
	g.Start()
	return Model{game: g, interval: interval, frame: g.Frame()}
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "p":
			m.paused = !m.paused
			if !m.paused {
				return m, m.tickCmd()
			}
		case "n":
			if m.paused {
				m.step()
			}
		}
	case TickMsg:
		if m.paused || m.Over() {
			return m, nil
		}
		m.step()
		if m.Over() {
			return m, nil
		}
		return m, m.tickCmd()
	}
	return m, nil
}

func (m *Model) step() {
	if m.Over() {
		return
	}
	m.game.Round()
	m.frame = m.game.Frame()
}

func (m Model) Over() bool   { return m.game.Status() == sim.StatusOver }
func (m Model) Paused() bool { return m.paused }
func (m Model) Frame() sim.Frame {
	return m.frame
}

func (m Model) View() string {
	s := text.Format(m.frame)
	s += fmt.Sprintf("Agents: %d  Resources: %d\n\n", m.game.NumAgents(), m.game.NumResources())
	switch {
	case m.Over():
		s += "Press q to quit.\n"
	case m.paused:
		s += "Paused. space resumes, n steps, q quits.\n"
	default:
		s += "space pauses, q quits.\n"
	}
	return s
}

// Run blocks until the viewer is closed.
func Run(g *sim.Game, interval time.Duration) error {
	_, err := tea.NewProgram(New(g, interval)).Run()
	return err
}
