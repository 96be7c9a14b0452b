package catcher

import (
	"strings"
	"testing"

	"github.com/vovakirdan/coin-catcher/internal/core"
	"github.com/vovakirdan/coin-catcher/internal/registry"
)

func newTestGame(seed int64) *Game {
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed})
	return g
}

func press(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestRegistered(t *testing.T) {
	if !registry.Exists(GameID) {
		t.Fatalf("%q should be registered", GameID)
	}
	g, err := registry.Create(GameID)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if g.Title() != "Coin Catcher" {
		t.Errorf("Title() = %q", g.Title())
	}
}

func TestFieldMapping(t *testing.T) {
	g := newTestGame(1)

	w, h := g.Engine().Field()
	if h != 2000 {
		t.Errorf("field height = %v, expected 2000", h)
	}
	// 80 columns at half the row height each
	if !approx(w, 80*(2000.0/24)*0.5) {
		t.Errorf("field width = %v", w)
	}
}

func TestStepPhases(t *testing.T) {
	g := newTestGame(1)

	res := g.Step(core.NewInputFrame())
	if res.State.Phase != core.PhaseNotStarted {
		t.Fatalf("phase = %v, expected NotStarted", res.State.Phase)
	}

	res = g.Step(press(core.ActionRestart))
	if res.State.Phase != core.PhaseNotStarted {
		t.Error("Restart should only act after game over")
	}

	res = g.Step(press(core.ActionStart))
	if res.State.Phase != core.PhasePlaying || res.State.Lives != 3 {
		t.Fatalf("state after start = %+v", res.State)
	}

	res = g.Step(press(core.ActionPause))
	if !res.State.Paused {
		t.Error("Pause should pause the round")
	}
	res = g.Step(press(core.ActionPause))
	if res.State.Paused {
		t.Error("second Pause should resume")
	}

	g.Engine().lives = 1
	g.Engine().items = append(g.Engine().items, FallingItem{X: 10, Y: 1995, Speed: 10, Kind: ItemCoin})
	res = g.Step(core.NewInputFrame())
	if !res.State.GameOver || !res.Has(core.EventGameOver) {
		t.Fatalf("expected game over event, got %+v", res)
	}

	res = g.Step(press(core.ActionStart))
	if res.State.Phase != core.PhasePlaying || res.State.Lives != 3 || res.State.Score != 0 {
		t.Fatalf("Start should play again after game over, got %+v", res.State)
	}

	g.Engine().lives = 1
	g.Engine().items = append(g.Engine().items, FallingItem{X: 10, Y: 1995, Speed: 10, Kind: ItemCoin})
	res = g.Step(core.NewInputFrame())
	if !res.State.GameOver {
		t.Fatalf("expected second game over, got %+v", res.State)
	}
	res = g.Step(press(core.ActionRestart))
	if res.State.Phase != core.PhasePlaying || res.State.Score != 0 {
		t.Errorf("Restart should begin a new round, got %+v", res.State)
	}
}

func TestStepEvents(t *testing.T) {
	g := newTestGame(1)
	g.Step(press(core.ActionStart))

	e := g.Engine()
	c := e.Collector()
	top := c.Rect().Y
	e.items = append(e.items,
		FallingItem{X: c.CenterX(), Y: top - 30, Speed: 10, Kind: ItemCoin},
		FallingItem{X: c.CenterX(), Y: top - 30, Speed: 10, Kind: ItemLife},
	)

	res := g.Step(core.NewInputFrame())
	if !res.Has(core.EventCoinCollected) || !res.Has(core.EventLifeCollected) {
		t.Errorf("expected both cues, got %v", res.Events)
	}
	if res.State.Score != 1 || res.State.Lives != 4 {
		t.Errorf("state = %+v", res.State)
	}

	res = g.Step(core.NewInputFrame())
	if len(res.Events) != 0 {
		t.Errorf("events must not leak into the next step: %v", res.Events)
	}
}

func TestPointerAndKeys(t *testing.T) {
	g := newTestGame(1)
	g.Step(press(core.ActionStart))
	pxPerCol := (2000.0 / 24) * 0.5

	in := core.NewInputFrame()
	in.SetPointer(40)
	g.Step(in)
	if got := g.Engine().Collector().CenterX(); !approx(got, 40.5*pxPerCol) {
		t.Errorf("pointer center = %v, expected %v", got, 40.5*pxPerCol)
	}

	w, _ := g.Engine().Field()
	before := g.Engine().Collector().CenterX()
	g.Step(press(core.ActionLeft))
	if got := g.Engine().Collector().CenterX(); !approx(got, before-0.04*w) {
		t.Errorf("left nudge center = %v, expected %v", got, before-0.04*w)
	}
	g.Step(press(core.ActionRight))
	if got := g.Engine().Collector().CenterX(); !approx(got, before) {
		t.Errorf("right nudge center = %v, expected %v", got, before)
	}

	in = core.NewInputFrame()
	in.SetPointer(-20)
	g.Step(in)
	if r := g.Engine().Collector().Rect(); r.X != 0 {
		t.Errorf("pointer left of the field should clamp, got x=%v", r.X)
	}
}

func TestResizeKeepsRound(t *testing.T) {
	g := newTestGame(1)
	g.Step(press(core.ActionStart))
	g.Engine().score = 5

	g.Resize(core.RuntimeConfig{ScreenW: 120, ScreenH: 40})

	if g.State().Score != 5 || g.State().Phase != core.PhasePlaying {
		t.Errorf("resize lost the round: %+v", g.State())
	}
	w, h := g.Engine().Field()
	if h != 2000 || !approx(w, 120*(2000.0/40)*0.5) {
		t.Errorf("field = %vx%v after resize", w, h)
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(1)
	g.Step(press(core.ActionStart))

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	if got := screen.GetCell(40, 21).Rune; got != core.RectFillGlyph {
		t.Errorf("collector interior = %q, expected %q", got, core.RectFillGlyph)
	}
	if !strings.Contains(screen.Row(2), "Score: 0") {
		t.Errorf("score row = %q", screen.Row(2))
	}
	if !strings.Contains(screen.Row(1), "♥ ♥ ♥") {
		t.Errorf("lives row = %q", screen.Row(1))
	}

	g.Step(press(core.ActionPause))
	screen.Clear()
	g.Render(screen)
	if !strings.Contains(screen.Row(12), PausedText) {
		t.Errorf("paused row = %q", screen.Row(12))
	}
}

func TestGameDeterminism(t *testing.T) {
	run := func() uint64 {
		g := newTestGame(12345)
		restart := false
		for i := 0; i < 600; i++ {
			in := core.NewInputFrame()
			if restart {
				in.Set(core.ActionRestart)
			}
			switch {
			case i == 0:
				in.Set(core.ActionStart)
			case i%50 == 0:
				in.SetPointer(i % 80)
			case i%7 == 0:
				in.Set(core.ActionLeft)
			}
			res := g.Step(in)
			restart = res.State.GameOver
		}
		return g.StateHash()
	}

	if h1, h2 := run(), run(); h1 != h2 {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", h1, h2)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	g := newTestGame(1)
	data, err := g.MarshalSettings()
	if err != nil {
		t.Fatalf("MarshalSettings() error = %v", err)
	}

	g2 := New()
	if err := g2.UnmarshalSettings([]byte("spawn:\n  chance_percent: 9\n")); err != nil {
		t.Fatalf("UnmarshalSettings() error = %v", err)
	}
	g2.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1})
	if g2.Engine().cfg.Spawn.ChancePercent != 9 {
		t.Error("pinned settings should be used by Reset")
	}

	if err := g2.UnmarshalSettings(data); err != nil {
		t.Fatalf("UnmarshalSettings() error = %v", err)
	}
	g2.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 1})
	if g2.Engine().cfg.Items != g.Engine().cfg.Items {
		t.Error("settings should survive a round trip")
	}

	if err := g2.UnmarshalSettings([]byte("lives:\n  initial: 0\n")); err == nil {
		t.Error("invalid settings should be rejected")
	}
}
