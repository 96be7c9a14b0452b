package catcher

import (
	"math"

	"github.com/vovakirdan/coin-catcher/internal/core"
)

// Snapshot captures the complete simulation state for determinism testing and replay.
// Uses primitive types only for stable comparison.
type Snapshot struct {
	Tick       uint64
	Phase      core.Phase
	Score      int
	Lives      int
	FieldW     float64
	FieldH     float64
	CollectorX float64
	CollectorW float64

	// Items flattened in spawn order, 4 values each: X, Y, Speed, Kind
	ItemCount int
	ItemData  []float64
}

// Snapshot returns the current engine state.
func (e *Engine) Snapshot() Snapshot {
	data := make([]float64, 0, 4*len(e.items))
	for _, it := range e.items {
		data = append(data, it.X, it.Y, it.Speed, float64(it.Kind))
	}

	return Snapshot{
		Tick:       e.tick,
		Phase:      e.phase,
		Score:      e.score,
		Lives:      e.lives,
		FieldW:     e.width,
		FieldH:     e.height,
		CollectorX: e.collector.rect.X,
		CollectorW: e.collector.rect.W,
		ItemCount:  len(e.items),
		ItemData:   data,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Tick
	h = h*31 + uint64(snap.Phase)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.ItemCount) //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.FieldW)
	h = h*31 + math.Float64bits(snap.FieldH)
	h = h*31 + math.Float64bits(snap.CollectorX)
	h = h*31 + math.Float64bits(snap.CollectorW)

	for _, v := range snap.ItemData {
		h = h*31 + math.Float64bits(v)
	}

	return h
}

// Snapshot returns the engine snapshot of the current round.
func (g *Game) Snapshot() Snapshot {
	return g.engine.Snapshot()
}

// StateHash returns the snapshot hash, used to verify replays.
func (g *Game) StateHash() uint64 {
	snap := g.engine.Snapshot()
	return snap.Hash()
}
