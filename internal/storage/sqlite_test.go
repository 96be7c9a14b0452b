package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/coin-catcher/internal/replay"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRecording(id string, created time.Time) replay.Recording {
	return replay.Recording{
		ID:        id,
		GameID:    "catcher",
		Player:    "alice",
		Seed:      -42,
		ScreenW:   80,
		ScreenH:   24,
		TickRate:  60,
		Ticks:     600,
		FinalHash: 1<<63 + 12345,
		Settings:  []byte("spawn:\n  chance_percent: 2\n"),
		Events: []replay.Event{
			{Tick: 0, Kind: replay.EventAction, A: 3},
			{Tick: 10, Kind: replay.EventResize, A: 100, B: 30},
			{Tick: 10, Kind: replay.EventPointer, A: 17},
		},
		CreatedAt: created,
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestSaveAndLoadRecording(t *testing.T) {
	store := openTestStore(t)
	created := time.Date(2026, 3, 1, 12, 0, 0, 500, time.UTC)
	want := sampleRecording("0f8e2c1a-aaaa-bbbb-cccc-000000000001", created)

	if err := store.SaveRecording(want); err != nil {
		t.Fatalf("SaveRecording() failed: %v", err)
	}

	got, err := store.LoadRecording(want.ID)
	if err != nil {
		t.Fatalf("LoadRecording() failed: %v", err)
	}

	if got.GameID != want.GameID || got.Player != want.Player || got.Seed != want.Seed {
		t.Errorf("header = %+v", got)
	}
	if got.ScreenW != 80 || got.ScreenH != 24 || got.TickRate != 60 || got.Ticks != 600 {
		t.Errorf("runtime fields = %+v", got)
	}
	if got.FinalHash != want.FinalHash {
		t.Errorf("FinalHash = %d, expected %d", got.FinalHash, want.FinalHash)
	}
	if string(got.Settings) != string(want.Settings) {
		t.Errorf("Settings = %q", got.Settings)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, expected %v", got.CreatedAt, created)
	}
	if len(got.Events) != len(want.Events) {
		t.Fatalf("events = %+v", got.Events)
	}
	for i := range want.Events {
		if got.Events[i] != want.Events[i] {
			t.Errorf("event %d = %+v, expected %+v", i, got.Events[i], want.Events[i])
		}
	}
}

func TestLoadRecordingByPrefix(t *testing.T) {
	store := openTestStore(t)
	now := time.Now()
	for _, id := range []string{"abc-111", "abc-222", "def-333"} {
		if err := store.SaveRecording(sampleRecording(id, now)); err != nil {
			t.Fatalf("SaveRecording() failed: %v", err)
		}
	}

	rec, err := store.LoadRecording("def")
	if err != nil || rec.ID != "def-333" {
		t.Errorf("LoadRecording(def) = %v, %v", rec, err)
	}

	if _, err := store.LoadRecording("abc"); !errors.Is(err, ErrAmbiguous) {
		t.Errorf("LoadRecording(abc) error = %v, expected ErrAmbiguous", err)
	}
	if _, err := store.LoadRecording("zzz"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadRecording(zzz) error = %v, expected ErrNotFound", err)
	}
	if _, err := store.LoadRecording(""); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadRecording(\"\") error = %v, expected ErrNotFound", err)
	}
}

func TestRecentRounds(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"first", "second", "third"} {
		rec := sampleRecording(id, base.Add(time.Duration(i)*time.Hour+time.Duration(i)*time.Millisecond))
		if err := store.SaveRecording(rec); err != nil {
			t.Fatalf("SaveRecording() failed: %v", err)
		}
	}

	rounds, err := store.RecentRounds(2)
	if err != nil {
		t.Fatalf("RecentRounds() failed: %v", err)
	}
	if len(rounds) != 2 {
		t.Fatalf("expected 2 rounds, got %d", len(rounds))
	}
	if rounds[0].ID != "third" || rounds[1].ID != "second" {
		t.Errorf("expected newest first, got %s, %s", rounds[0].ID, rounds[1].ID)
	}
	if rounds[0].EventCount != 3 {
		t.Errorf("EventCount = %d, expected 3", rounds[0].EventCount)
	}
	if rounds[0].Duration() != 10*time.Second {
		t.Errorf("Duration() = %v, expected 10s", rounds[0].Duration())
	}
}

func TestDeleteRound(t *testing.T) {
	store := openTestStore(t)
	if err := store.SaveRecording(sampleRecording("gone", time.Now())); err != nil {
		t.Fatalf("SaveRecording() failed: %v", err)
	}

	if err := store.DeleteRound("gone"); err != nil {
		t.Fatalf("DeleteRound() failed: %v", err)
	}
	if _, err := store.LoadRecording("gone"); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted recording still loads: %v", err)
	}
	if err := store.DeleteRound("gone"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteRound() error = %v, expected ErrNotFound", err)
	}
}

func TestDuplicateIDRejected(t *testing.T) {
	store := openTestStore(t)
	rec := sampleRecording("dup", time.Now())
	if err := store.SaveRecording(rec); err != nil {
		t.Fatalf("SaveRecording() failed: %v", err)
	}
	if err := store.SaveRecording(rec); err == nil {
		t.Error("saving the same ID twice should fail")
	}

	// The failed transaction must not leave extra events behind.
	got, err := store.LoadRecording("dup")
	if err != nil {
		t.Fatalf("LoadRecording() failed: %v", err)
	}
	if len(got.Events) != 3 {
		t.Errorf("events = %d, expected 3", len(got.Events))
	}
}
