package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/coin-catcher/internal/core"
	"github.com/vovakirdan/coin-catcher/internal/replay"
)

// PlaybackKeyMap defines the key bindings of the replay viewer.
type PlaybackKeyMap struct {
	Pause  key.Binding
	Faster key.Binding
	Slower key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// DefaultPlaybackKeyMap returns default key bindings.
func DefaultPlaybackKeyMap() PlaybackKeyMap {
	return PlaybackKeyMap{
		Pause:  key.NewBinding(key.WithKeys(" ", "p"), key.WithHelp("space", "pause")),
		Faster: key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "faster")),
		Slower: key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "slower")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

const maxPlaybackSpeed = 8

// PlaybackModel re-runs a recording in the terminal.
type PlaybackModel struct {
	player   *replay.Player
	screen   *core.Screen
	keys     PlaybackKeyMap
	tickRate int
	speed    int // Steps per tick
	paused   bool
	quitting bool
	back     bool
}

// NewPlaybackModel creates a viewer for a recording.
func NewPlaybackModel(rec *replay.Recording) (PlaybackModel, error) {
	p, err := replay.NewPlayer(rec)
	if err != nil {
		return PlaybackModel{}, err
	}

	tickRate := rec.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}

	return PlaybackModel{
		player:   p,
		screen:   core.NewScreen(rec.ScreenW, rec.ScreenH),
		keys:     DefaultPlaybackKeyMap(),
		tickRate: tickRate,
		speed:    1,
	}, nil
}

// Init starts the tick loop.
func (m PlaybackModel) Init() tea.Cmd {
	return tickCmd(m.tickRate)
}

// Update handles messages for the viewer.
func (m PlaybackModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.back = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
		case key.Matches(msg, m.keys.Faster):
			m.speed = min(m.speed*2, maxPlaybackSpeed)
		case key.Matches(msg, m.keys.Slower):
			m.speed = max(m.speed/2, 1)
		}
		return m, nil

	case TickMsg:
		if !m.paused {
			for i := 0; i < m.speed && !m.player.Done(); i++ {
				m.player.Step()
			}
		}
		return m, tickCmd(m.tickRate)
	}

	return m, nil
}

// View renders the recorded game at its recorded size plus a status line.
func (m PlaybackModel) View() string {
	if m.quitting || m.back {
		return ""
	}

	rec := m.player.Recording()
	if w, h := m.player.ScreenSize(); w != m.screen.Width() || h != m.screen.Height() {
		m.screen.Resize(w, h)
	}
	m.screen.Clear()
	m.player.Game().Render(m.screen)

	status := fmt.Sprintf("replay %s  %d/%d  x%d", shortID(rec.ID), m.player.Tick(), rec.Ticks, m.speed)
	switch {
	case m.player.Done():
		status += "  [end]"
	case m.paused:
		status += "  [paused]"
	}

	return RenderScreen(m.screen) + "\n" + helpStyle.Render(status)
}

// IsGoingBack returns true if the viewer was left with the back key.
func (m PlaybackModel) IsGoingBack() bool {
	return m.back
}

// RunPlayback plays a recording. Returns true if the user asked to go back.
func RunPlayback(rec *replay.Recording) (goBack bool, err error) {
	model, err := NewPlaybackModel(rec)
	if err != nil {
		return false, err
	}

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(PlaybackModel)
	if !ok {
		return false, nil
	}
	return m.IsGoingBack(), nil
}

// shortID returns the first block of a recording ID.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
