package core

import "testing"

func TestInputFrameActions(t *testing.T) {
	f := NewInputFrame()
	if !f.Empty() {
		t.Error("New frame should be empty")
	}

	f.Set(ActionLeft)
	f.Set(ActionPause)

	if !f.Has(ActionLeft) || !f.Has(ActionPause) {
		t.Error("Frame should report actions that were set")
	}
	if f.Has(ActionRight) {
		t.Error("Frame should not report actions that were not set")
	}

	f.Clear()
	if !f.Empty() {
		t.Error("Cleared frame should be empty")
	}
}

func TestInputFramePointer(t *testing.T) {
	f := NewInputFrame()
	f.SetPointer(12)
	f.SetPointer(30)

	if !f.HasPointer || f.PointerX != 30 {
		t.Errorf("Latest pointer should win, got %d (has=%v)", f.PointerX, f.HasPointer)
	}
	if f.Empty() {
		t.Error("Frame with a pointer should not be empty")
	}

	f.Clear()
	if f.HasPointer {
		t.Error("Clear should drop the pointer")
	}
}

func TestInputFrameZeroValue(t *testing.T) {
	var f InputFrame
	if f.Has(ActionStart) {
		t.Error("Zero frame should have no actions")
	}
	f.Set(ActionStart)
	if !f.Has(ActionStart) {
		t.Error("Set on a zero frame should allocate and record the action")
	}
}

func TestActionString(t *testing.T) {
	if ActionPause.String() != "Pause" {
		t.Errorf("ActionPause.String() = %q", ActionPause.String())
	}
	if Action(99).String() != "Unknown" {
		t.Errorf("Unknown action should stringify as Unknown")
	}
	if PhaseGameOver.String() != "GameOver" {
		t.Errorf("PhaseGameOver.String() = %q", PhaseGameOver.String())
	}
}

func TestStepResultHas(t *testing.T) {
	r := StepResult{Events: []EventKind{EventCoinCollected}}
	if !r.Has(EventCoinCollected) {
		t.Error("Has should find a raised event")
	}
	if r.Has(EventGameOver) {
		t.Error("Has should not find an event that was not raised")
	}
}
