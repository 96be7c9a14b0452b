// Package catcher implements Coin Catcher: a collector paddle catches falling
// coins and hearts. The Engine is the simulation, Draw is the renderer, and
// Game adapts both to the terminal grid for the platform layer.
package catcher

import (
	"github.com/vovakirdan/coin-catcher/internal/config"
	"github.com/vovakirdan/coin-catcher/internal/core"
	"github.com/vovakirdan/coin-catcher/internal/registry"
)

// GameID is the registry identifier of Coin Catcher.
const GameID = "catcher"

// configPath stores the custom config path set via CLI
var configPath string

// preset stores the preset set via CLI
var preset config.Preset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetPreset sets the preset applied on top of the loaded config.
func SetPreset(p config.Preset) {
	preset = p
}

// Game adapts the Engine to the cell-based registry.Game interface.
// Terminal cells map to play-field pixels with a fixed field height.
type Game struct {
	runtime core.RuntimeConfig
	cfg     config.CatcherConfig
	pinned  *config.CatcherConfig // Settings restored from a recording
	engine  *Engine

	pxPerCol float64
	pxPerRow float64

	events []core.EventKind // Raised during the current step
}

// New creates a new Coin Catcher game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Coin Catcher"
}

// Reset builds a fresh engine in the NotStarted phase.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.cfg = g.loadConfig()

	g.engine = NewEngine(g.cfg, runtime.Seed)
	g.engine.OnCoinCollected(func() { g.events = append(g.events, core.EventCoinCollected) })
	g.engine.OnLifeCollected(func() { g.events = append(g.events, core.EventLifeCollected) })
	g.engine.OnGameOver(func() { g.events = append(g.events, core.EventGameOver) })

	g.Resize(runtime)
}

func (g *Game) loadConfig() config.CatcherConfig {
	if g.pinned != nil {
		return *g.pinned
	}

	cfg, err := config.LoadCatcher(configPath)
	if err != nil {
		cfg = config.DefaultCatcherConfig()
	}
	if preset != "" {
		config.ApplyCatcherPreset(&cfg, preset)
	}
	return cfg
}

// Resize maps a new terminal size onto the play field. The round in progress
// is preserved.
func (g *Game) Resize(runtime core.RuntimeConfig) {
	g.runtime.ScreenW = runtime.ScreenW
	g.runtime.ScreenH = runtime.ScreenH
	if g.engine == nil {
		return
	}

	if runtime.ScreenW <= 0 || runtime.ScreenH <= 0 {
		g.pxPerCol, g.pxPerRow = 0, 0
		g.engine.Configure(0, 0)
		return
	}

	g.pxPerRow = g.cfg.Field.Height / float64(runtime.ScreenH)
	g.pxPerCol = g.pxPerRow * g.cfg.Field.CellAspect
	g.engine.Configure(float64(runtime.ScreenW)*g.pxPerCol, g.cfg.Field.Height)
}

// Step applies one frame of input, then advances the engine by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.events = nil

	switch g.engine.Phase() {
	case core.PhaseNotStarted:
		if in.Has(core.ActionStart) {
			g.engine.Start()
		}
	case core.PhaseGameOver:
		if in.Has(core.ActionStart) || in.Has(core.ActionRestart) {
			g.engine.Start()
		}
	}

	if in.Has(core.ActionPause) {
		g.engine.TogglePause()
	}

	if in.HasPointer {
		g.engine.SetCollectorCenter((float64(in.PointerX) + 0.5) * g.pxPerCol)
	}

	if in.Has(core.ActionLeft) {
		g.nudge(-1)
	}
	if in.Has(core.ActionRight) {
		g.nudge(1)
	}

	g.engine.Tick()

	return core.StepResult{State: g.State(), Events: g.events}
}

// nudge moves the collector by one key step in the given direction.
func (g *Game) nudge(dir float64) {
	width, _ := g.engine.Field()
	center := g.engine.Collector().CenterX()
	g.engine.SetCollectorCenter(center + dir*width*g.cfg.Collector.KeyStep)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	if g.pxPerCol <= 0 || g.pxPerRow <= 0 {
		return
	}
	core.Rasterize(dst, Draw(g.engine.View()), 1/g.pxPerCol, 1/g.pxPerRow)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	phase := g.engine.Phase()
	return core.GameState{
		Score:    g.engine.Score(),
		Lives:    g.engine.Lives(),
		Phase:    phase,
		GameOver: phase == core.PhaseGameOver,
		Paused:   phase == core.PhasePaused,
	}
}

// Engine exposes the underlying simulation.
func (g *Game) Engine() *Engine {
	return g.engine
}

// MarshalSettings returns the YAML config the current engine runs with.
func (g *Game) MarshalSettings() ([]byte, error) {
	return config.MarshalCatcher(g.cfg)
}

// UnmarshalSettings pins the config used by subsequent Resets.
func (g *Game) UnmarshalSettings(data []byte) error {
	cfg, err := config.ParseCatcher(data)
	if err != nil {
		return err
	}
	g.pinned = &cfg
	return nil
}

func init() {
	registry.Register(GameID, func() registry.Game {
		return New()
	})
}
