// Package replay records the per-tick input of a session and plays it back.
// A recording holds everything needed to rebuild the session: the game ID,
// the RNG seed, the initial screen, the game's settings and the input events.
package replay

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/coin-catcher/internal/core"
	"github.com/vovakirdan/coin-catcher/internal/registry"
)

var (
	// ErrHashMismatch is returned by Verify when the re-simulated state differs.
	ErrHashMismatch = errors.New("replay: final state hash mismatch")
	// ErrNotVerifiable is returned for games that cannot report a state hash.
	ErrNotVerifiable = errors.New("replay: game does not report a state hash")
)

// EventKind identifies what a recorded event carries.
type EventKind int

const (
	EventAction  EventKind = iota // A = core.Action
	EventPointer                  // A = pointer column
	EventResize                   // A, B = screen width, height
)

// Event is one input applied before the step with the given tick index.
type Event struct {
	Tick uint64
	Kind EventKind
	A, B int
}

// Recording is a complete, replayable session.
type Recording struct {
	ID        string
	GameID    string
	Player    string
	Seed      int64
	ScreenW   int
	ScreenH   int
	TickRate  int
	Ticks     uint64 // Number of steps in the session
	FinalHash uint64 // State hash after the last step, 0 if unknown
	Settings  []byte // Game settings, for games that have them
	Events    []Event
	CreatedAt time.Time
}

// Hasher is implemented by games that can summarize their state.
type Hasher interface {
	StateHash() uint64
}

// Tunable is implemented by games whose behavior depends on loaded settings.
type Tunable interface {
	MarshalSettings() ([]byte, error)
	UnmarshalSettings(data []byte) error
}

// Recorder accumulates the input of a live session.
// Not safe for concurrent use; the host calls it from its update loop.
type Recorder struct {
	rec  Recording
	tick uint64
}

// NewRecorder starts a recording for a game that was just Reset with cfg.
func NewRecorder(g registry.Game, player string, cfg core.RuntimeConfig) (*Recorder, error) {
	rec := Recording{
		ID:       uuid.NewString(),
		GameID:   g.ID(),
		Player:   player,
		Seed:     cfg.Seed,
		ScreenW:  cfg.ScreenW,
		ScreenH:  cfg.ScreenH,
		TickRate: cfg.TickRate,
	}

	if t, ok := g.(Tunable); ok {
		data, err := t.MarshalSettings()
		if err != nil {
			return nil, fmt.Errorf("replay: capture settings: %w", err)
		}
		rec.Settings = data
	}

	return &Recorder{rec: rec}, nil
}

// ID returns the recording ID.
func (r *Recorder) ID() string {
	return r.rec.ID
}

// Ticks returns the number of frames recorded so far.
func (r *Recorder) Ticks() uint64 {
	return r.tick
}

// RecordResize records a screen change applied before the next frame.
func (r *Recorder) RecordResize(w, h int) {
	r.rec.Events = append(r.rec.Events, Event{Tick: r.tick, Kind: EventResize, A: w, B: h})
}

// RecordFrame records the input passed to one Step call.
func (r *Recorder) RecordFrame(in core.InputFrame) {
	if in.Empty() {
		r.tick++
		return
	}

	actions := make([]int, 0, len(in.Actions))
	for a, on := range in.Actions {
		if on {
			actions = append(actions, int(a))
		}
	}
	sort.Ints(actions)

	for _, a := range actions {
		r.rec.Events = append(r.rec.Events, Event{Tick: r.tick, Kind: EventAction, A: a})
	}
	if in.HasPointer {
		r.rec.Events = append(r.rec.Events, Event{Tick: r.tick, Kind: EventPointer, A: in.PointerX})
	}
	r.tick++
}

// Finish closes the recording with the final state hash.
func (r *Recorder) Finish(finalHash uint64) Recording {
	rec := r.rec
	rec.Ticks = r.tick
	rec.FinalHash = finalHash
	rec.CreatedAt = time.Now()
	rec.Events = append([]Event(nil), r.rec.Events...)
	return rec
}

// Player re-runs a recording step by step.
type Player struct {
	rec     *Recording
	game    registry.Game
	next    int
	tick    uint64
	screenW int
	screenH int
}

// NewPlayer rebuilds the recorded game in its initial state.
func NewPlayer(rec *Recording) (*Player, error) {
	g, err := registry.Create(rec.GameID)
	if err != nil {
		return nil, err
	}

	if t, ok := g.(Tunable); ok && len(rec.Settings) > 0 {
		if err := t.UnmarshalSettings(rec.Settings); err != nil {
			return nil, fmt.Errorf("replay: restore settings: %w", err)
		}
	}

	g.Reset(core.RuntimeConfig{
		ScreenW:  rec.ScreenW,
		ScreenH:  rec.ScreenH,
		TickRate: rec.TickRate,
		Seed:     rec.Seed,
	})

	return &Player{rec: rec, game: g, screenW: rec.ScreenW, screenH: rec.ScreenH}, nil
}

// Game returns the game being replayed.
func (p *Player) Game() registry.Game {
	return p.game
}

// Recording returns the recording being replayed.
func (p *Player) Recording() *Recording {
	return p.rec
}

// Tick returns the number of steps already replayed.
func (p *Player) Tick() uint64 {
	return p.tick
}

// ScreenSize returns the screen size in effect at the current tick.
func (p *Player) ScreenSize() (width, height int) {
	return p.screenW, p.screenH
}

// Done reports whether every recorded step was replayed.
func (p *Player) Done() bool {
	return p.tick >= p.rec.Ticks
}

// Step replays one frame. Calling Step after Done is a no-op.
func (p *Player) Step() core.StepResult {
	if p.Done() {
		return core.StepResult{State: p.game.State()}
	}

	in := core.NewInputFrame()
	for p.next < len(p.rec.Events) && p.rec.Events[p.next].Tick == p.tick {
		ev := p.rec.Events[p.next]
		switch ev.Kind {
		case EventAction:
			in.Set(core.Action(ev.A))
		case EventPointer:
			in.SetPointer(ev.A)
		case EventResize:
			p.screenW, p.screenH = ev.A, ev.B
			p.game.Resize(core.RuntimeConfig{ScreenW: ev.A, ScreenH: ev.B})
		}
		p.next++
	}

	res := p.game.Step(in)
	p.tick++
	return res
}

// Simulate replays the whole recording headlessly and returns the final hash.
func Simulate(rec *Recording) (uint64, error) {
	p, err := NewPlayer(rec)
	if err != nil {
		return 0, err
	}

	h, ok := p.game.(Hasher)
	if !ok {
		return 0, ErrNotVerifiable
	}

	for !p.Done() {
		p.Step()
	}
	return h.StateHash(), nil
}

// Verify re-simulates a recording and compares the result with its final hash.
func Verify(rec *Recording) error {
	got, err := Simulate(rec)
	if err != nil {
		return err
	}
	if got != rec.FinalHash {
		return fmt.Errorf("%w: recorded %d, simulated %d", ErrHashMismatch, rec.FinalHash, got)
	}
	return nil
}
