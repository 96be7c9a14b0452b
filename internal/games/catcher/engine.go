package catcher

import (
	"math/rand"

	"github.com/vovakirdan/coin-catcher/internal/config"
	"github.com/vovakirdan/coin-catcher/internal/core"
)

// Engine owns the whole simulation state of one Coin Catcher session.
// It is advanced once per frame by its host and is not safe for concurrent use.
type Engine struct {
	cfg config.CatcherConfig
	rng *rand.Rand

	width  float64
	height float64

	score     int
	lives     int
	phase     core.Phase
	items     []FallingItem
	collector Collector
	tick      uint64

	gameOverFired bool

	onGameOver      func()
	onCoinCollected func()
	onLifeCollected func()
}

// NewEngine creates an engine in the NotStarted phase.
// The seed drives every random decision, so equal seeds and inputs give equal rounds.
func NewEngine(cfg config.CatcherConfig, seed int64) *Engine {
	return &Engine{
		cfg:   cfg,
		rng:   rand.New(rand.NewSource(seed)), //#nosec G404 -- game randomness, not crypto
		lives: cfg.Lives.Initial,
		phase: core.PhaseNotStarted,
		collector: Collector{
			Height:       cfg.Collector.Height,
			BottomOffset: cfg.Collector.BottomOffset,
		},
	}
}

// OnGameOver registers the callback fired once per round when lives reach zero.
func (e *Engine) OnGameOver(fn func()) { e.onGameOver = fn }

// OnCoinCollected registers the coin cue callback.
func (e *Engine) OnCoinCollected(fn func()) { e.onCoinCollected = fn }

// OnLifeCollected registers the life cue callback.
func (e *Engine) OnLifeCollected(fn func()) { e.onLifeCollected = fn }

// Configure sets the play-field bounds and recomputes the collector around its
// current center. Before the first round the collector is sized and centered.
func (e *Engine) Configure(width, height float64) {
	e.width = width
	e.height = height
	if width <= 0 || height <= 0 {
		return
	}

	center := e.collector.CenterX()
	if e.collector.Width == 0 || e.phase == core.PhaseNotStarted {
		e.collector.Width = width * e.cfg.Collector.InitialWidthRatio
		center = width / 2
	} else {
		e.collector.Width = min(e.collector.Width, e.maxCollectorWidth())
	}
	e.collector.place(center, width, height)
}

// Start begins a new round. Only effective from NotStarted or GameOver.
func (e *Engine) Start() {
	if e.phase != core.PhaseNotStarted && e.phase != core.PhaseGameOver {
		return
	}

	e.score = 0
	e.lives = e.cfg.Lives.Initial
	e.items = e.items[:0]
	e.gameOverFired = false
	e.collector.Width = e.width * e.cfg.Collector.InitialWidthRatio
	if e.width > 0 && e.height > 0 {
		e.collector.place(e.width/2, e.width, e.height)
	}
	e.phase = core.PhasePlaying
}

// TogglePause flips between Playing and Paused.
func (e *Engine) TogglePause() {
	switch e.phase {
	case core.PhasePlaying:
		e.phase = core.PhasePaused
	case core.PhasePaused:
		e.phase = core.PhasePlaying
	}
}

// SetCollectorCenter moves the collector while playing. Out-of-field
// positions are clamped by shifting the collector, never by shrinking it.
func (e *Engine) SetCollectorCenter(x float64) {
	if e.phase != core.PhasePlaying || e.width <= 0 || e.height <= 0 {
		return
	}
	e.collector.place(x, e.width, e.height)
}

// Tick advances the simulation by one frame.
func (e *Engine) Tick() {
	if e.phase != core.PhasePlaying || e.width <= 0 || e.height <= 0 {
		return
	}
	e.tick++

	radius := e.cfg.Items.CoinRadius
	kept := e.items[:0]
	for _, it := range e.items {
		// The round ended earlier in this tick; leave the rest untouched.
		if e.phase != core.PhasePlaying {
			kept = append(kept, it)
			continue
		}

		it.Y += it.Speed

		if it.HitBox(radius).Intersects(e.collector.rect) {
			e.collect(it)
			continue
		}
		if it.Y > e.height {
			e.miss(it)
			continue
		}
		kept = append(kept, it)
	}
	e.items = kept

	if e.phase == core.PhasePlaying {
		e.spawn()
	}
}

func (e *Engine) collect(it FallingItem) {
	switch it.Kind {
	case ItemCoin:
		e.score++
		center := e.collector.CenterX()
		e.collector.Width = min(e.collector.Width*e.cfg.Collector.GrowthFactor, e.maxCollectorWidth())
		e.collector.place(center, e.width, e.height)
		fire(e.onCoinCollected)
	case ItemLife:
		if e.lives < e.cfg.Lives.Max {
			e.lives++
			fire(e.onLifeCollected)
		}
	}
}

func (e *Engine) miss(it FallingItem) {
	if it.Kind != ItemCoin {
		return
	}
	if e.lives > 0 {
		e.lives--
	}
	if e.lives == 0 {
		e.phase = core.PhaseGameOver
		if !e.gameOverFired {
			e.gameOverFired = true
			fire(e.onGameOver)
		}
	}
}

// spawn rolls the per-tick spawn chance and appends at most one item.
func (e *Engine) spawn() {
	if e.rng.Intn(100) >= e.cfg.Spawn.ChancePercent {
		return
	}

	radius := e.cfg.Items.CoinRadius
	x := e.width / 2
	if span := e.width - 2*radius; span > 0 {
		x = e.rng.Float64()*span + radius
	}
	speed := e.cfg.Items.MinSpeed + e.rng.Float64()*(e.cfg.Items.MaxSpeed-e.cfg.Items.MinSpeed)

	kind := ItemCoin
	if e.rng.Intn(100) < e.cfg.Spawn.LifeChancePercent {
		kind = ItemLife
	}

	e.items = append(e.items, FallingItem{X: x, Y: -radius, Speed: speed, Kind: kind})
}

func (e *Engine) maxCollectorWidth() float64 {
	return e.width * e.cfg.Collector.MaxWidthRatio
}

func fire(fn func()) {
	if fn != nil {
		fn()
	}
}

// Score returns the current score.
func (e *Engine) Score() int { return e.score }

// Lives returns the remaining lives.
func (e *Engine) Lives() int { return e.lives }

// Phase returns the current phase.
func (e *Engine) Phase() core.Phase { return e.phase }

// Field returns the play-field size.
func (e *Engine) Field() (width, height float64) { return e.width, e.height }

// Collector returns a copy of the collector.
func (e *Engine) Collector() Collector { return e.collector }

// Items returns a copy of the active items in spawn order.
func (e *Engine) Items() []FallingItem {
	out := make([]FallingItem, len(e.items))
	copy(out, e.items)
	return out
}

// View returns the read-only state consumed by the renderer.
func (e *Engine) View() View {
	return View{
		Width:      e.width,
		Height:     e.height,
		Phase:      e.phase,
		Score:      e.score,
		Lives:      e.lives,
		Collector:  e.collector.rect,
		Items:      e.Items(),
		CoinRadius: e.cfg.Items.CoinRadius,
	}
}
