package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/coin-catcher/internal/core"
	"github.com/vovakirdan/coin-catcher/internal/platform/audio"
	"github.com/vovakirdan/coin-catcher/internal/registry"
	"github.com/vovakirdan/coin-catcher/internal/replay"
	"github.com/vovakirdan/coin-catcher/internal/storage"
)

// Options configures a play session.
type Options struct {
	Store  *storage.Store // Replay journal, nil disables recording
	Audio  *audio.Player  // Cue player, nil for silent sessions
	Player string         // Recorded as the session owner
	Info   string         // Shown in the info panel of the start screen
}

// Model is the Bubble Tea model for one play session.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	opts       Options
	config     core.RuntimeConfig
	recorder   *replay.Recorder
	inputFrame core.InputFrame
	gameState  core.GameState
	keys       KeyMap
	help       help.Model
	showInfo   bool
	played     bool // A round was started, so the session is worth saving
	quitting   bool
	savedID    string
	saveErr    error
}

// NewModel resets the game and creates a model for it.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	defaults := core.DefaultConfig()
	if cfg.TickRate <= 0 {
		cfg.TickRate = defaults.TickRate
	}
	if cfg.ScreenW <= 0 || cfg.ScreenH <= 0 {
		cfg.ScreenW, cfg.ScreenH = defaults.ScreenW, defaults.ScreenH
	}

	game.Reset(cfg)

	m := Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:       opts,
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
		keys:       DefaultKeyMap(),
		help:       help.New(),
	}

	if opts.Store != nil {
		if rec, err := replay.NewRecorder(game, opts.Player, cfg); err == nil {
			m.recorder = rec
		}
	}

	return m
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		MapMouse(msg, &m.inputFrame)
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Host-level keys
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Mute):
		m.toggleMute()
		return m, nil
	case key.Matches(msg, m.keys.Info):
		m.showInfo = !m.showInfo
		return m, nil
	}

	switch action := m.keys.MapKey(msg); action {
	case core.ActionQuit:
		return m.quit()
	case core.ActionBack:
		// Back pauses a running round and leaves from anywhere else.
		if m.gameState.Phase != core.PhasePlaying {
			return m.quit()
		}
		m.inputFrame.Set(core.ActionPause)
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize keeps the round and maps it onto the new terminal size.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	if msg.Width == m.config.ScreenW && msg.Height == m.config.ScreenH {
		return m, nil
	}

	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.game.Resize(m.config)
	m.help.Width = msg.Width

	if m.recorder != nil {
		m.recorder.RecordResize(msg.Width, msg.Height)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.recorder != nil {
		m.recorder.RecordFrame(m.inputFrame)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	if m.gameState.Phase != core.PhaseNotStarted {
		m.played = true
	}

	if m.opts.Audio != nil {
		m.opts.Audio.HandleEvents(result.Events)
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.config.TickRate)
}

// quit saves the recording, if any, and stops the program.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.savedID, m.saveErr = m.saveRecording()
	return m, tea.Quit
}

// saveRecording stores the session in the replay journal.
func (m Model) saveRecording() (string, error) {
	if m.recorder == nil || m.opts.Store == nil || !m.played {
		return "", nil
	}

	var hash uint64
	if h, ok := m.game.(replay.Hasher); ok {
		hash = h.StateHash()
	}

	rec := m.recorder.Finish(hash)
	if err := m.opts.Store.SaveRecording(rec); err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (m Model) toggleMute() {
	if m.opts.Audio == nil {
		return
	}
	muted := !m.opts.Audio.Muted()
	m.opts.Audio.SetMuted(muted)
	if !muted {
		//nolint:errcheck // Audio is optional; the game runs silently on failure
		m.opts.Audio.Init()
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".catcher", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	// Generate filename with timestamp
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp)
	path := filepath.Join(dir, filename)

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.gameState.Phase == core.PhaseNotStarted {
		return renderStartScreen(m.config.ScreenW, m.config.ScreenH, m.game.Title(), m.help.View(m.keys), m.infoText())
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	drawHint(m.screen, m.gameState)

	return RenderScreen(m.screen)
}

func (m Model) infoText() string {
	if !m.showInfo {
		return ""
	}
	text := fmt.Sprintf("seed %d, %d ticks/s", m.config.Seed, m.config.TickRate)
	if m.opts.Info != "" {
		text = m.opts.Info + "\n" + text
	}
	if m.recorder != nil {
		text += "\nrecording " + m.recorder.ID()
	}
	return text
}

// SavedRecording returns the journal ID written on quit, if any.
func (m Model) SavedRecording() (string, error) {
	return m.savedID, m.saveErr
}

// Run starts the Bubble Tea program for a local session and returns the
// ID of the saved recording, if any.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) (string, error) {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Drag to move the collector
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	m, ok := finalModel.(Model)
	if !ok {
		return "", nil
	}
	return m.SavedRecording()
}
