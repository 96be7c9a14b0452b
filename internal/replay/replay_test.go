package replay

import (
	"errors"
	"testing"

	"github.com/vovakirdan/coin-catcher/internal/core"
	_ "github.com/vovakirdan/coin-catcher/internal/games/catcher"
	"github.com/vovakirdan/coin-catcher/internal/registry"
)

// recordSession plays a scripted session and returns its recording.
func recordSession(t *testing.T, seed int64) Recording {
	t.Helper()

	g, err := registry.Create("catcher")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}
	g.Reset(cfg)

	rec, err := NewRecorder(g, "tester", cfg)
	if err != nil {
		t.Fatalf("NewRecorder() error = %v", err)
	}

	for i := 0; i < 1500; i++ {
		if i == 400 {
			g.Resize(core.RuntimeConfig{ScreenW: 100, ScreenH: 30})
			rec.RecordResize(100, 30)
		}

		in := core.NewInputFrame()
		switch {
		case i == 0:
			in.Set(core.ActionStart)
		case i%45 == 0:
			in.SetPointer((i / 3) % 80)
		case i%11 == 0:
			in.Set(core.ActionRight)
		case i == 700 || i == 760:
			in.Set(core.ActionPause)
		}
		if g.State().GameOver {
			in.Set(core.ActionRestart)
		}

		rec.RecordFrame(in)
		g.Step(in)
	}

	h, ok := g.(Hasher)
	if !ok {
		t.Fatal("catcher should report a state hash")
	}
	return rec.Finish(h.StateHash())
}

func TestVerifyRoundTrip(t *testing.T) {
	rec := recordSession(t, 2024)

	if rec.ID == "" || rec.GameID != "catcher" || rec.Player != "tester" {
		t.Errorf("recording header = %+v", rec)
	}
	if rec.Ticks != 1500 {
		t.Errorf("Ticks = %d, expected 1500", rec.Ticks)
	}
	if len(rec.Settings) == 0 {
		t.Error("catcher settings should be captured")
	}

	if err := Verify(&rec); err != nil {
		t.Errorf("Verify() error = %v", err)
	}
}

func TestVerifyDetectsMismatch(t *testing.T) {
	rec := recordSession(t, 7)
	rec.FinalHash++

	err := Verify(&rec)
	if !errors.Is(err, ErrHashMismatch) {
		t.Errorf("Verify() error = %v, expected ErrHashMismatch", err)
	}
}

func TestPlayerMatchesLiveSession(t *testing.T) {
	rec := recordSession(t, 99)

	p, err := NewPlayer(&rec)
	if err != nil {
		t.Fatalf("NewPlayer() error = %v", err)
	}

	if w, h := p.ScreenSize(); w != 80 || h != 24 {
		t.Errorf("initial screen = %dx%d", w, h)
	}

	steps := 0
	for !p.Done() {
		p.Step()
		steps++
	}
	if uint64(steps) != rec.Ticks || p.Tick() != rec.Ticks {
		t.Errorf("replayed %d steps, expected %d", steps, rec.Ticks)
	}
	if w, h := p.ScreenSize(); w != 100 || h != 30 {
		t.Errorf("screen after resize = %dx%d, expected 100x30", w, h)
	}

	// Stepping past the end changes nothing.
	before := p.Game().(Hasher).StateHash()
	p.Step()
	if p.Game().(Hasher).StateHash() != before {
		t.Error("Step after Done should be a no-op")
	}
	if before != rec.FinalHash {
		t.Errorf("replayed hash %d, recorded %d", before, rec.FinalHash)
	}
}

func TestRecordFrameOrder(t *testing.T) {
	g, err := registry.Create("catcher")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	cfg := core.DefaultConfig()
	g.Reset(cfg)
	rec, err := NewRecorder(g, "", cfg)
	if err != nil {
		t.Fatalf("NewRecorder() error = %v", err)
	}

	rec.RecordFrame(core.NewInputFrame())
	in := core.NewInputFrame()
	in.Set(core.ActionPause)
	in.Set(core.ActionLeft)
	in.SetPointer(12)
	rec.RecordResize(90, 30)
	rec.RecordFrame(in)

	got := rec.Finish(0)
	want := []Event{
		{Tick: 1, Kind: EventResize, A: 90, B: 30},
		{Tick: 1, Kind: EventAction, A: int(core.ActionLeft)},
		{Tick: 1, Kind: EventAction, A: int(core.ActionPause)},
		{Tick: 1, Kind: EventPointer, A: 12},
	}
	if len(got.Events) != len(want) {
		t.Fatalf("events = %+v", got.Events)
	}
	for i := range want {
		if got.Events[i] != want[i] {
			t.Errorf("event %d = %+v, expected %+v", i, got.Events[i], want[i])
		}
	}
	if got.Ticks != 2 {
		t.Errorf("Ticks = %d, expected 2", got.Ticks)
	}
}

func TestUnknownGame(t *testing.T) {
	rec := Recording{GameID: "missing"}
	if _, err := NewPlayer(&rec); err == nil {
		t.Error("NewPlayer() should fail for unknown games")
	}
}
