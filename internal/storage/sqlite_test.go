package storage

import (
	"math"
	"path/filepath"
	"testing"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "driftline.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndBestLap(t *testing.T) {
	s := testStore(t)

	for _, lap := range []float64{12.0, 9.5, 11.0} {
		if _, err := s.SaveLap("race", lap, 42); err != nil {
			t.Fatalf("SaveLap: %v", err)
		}
	}

	best, err := s.BestLap("race")
	if err != nil {
		t.Fatalf("BestLap: %v", err)
	}
	if math.Abs(best-9.5) > 1e-9 {
		t.Errorf("best lap %f, want 9.5", best)
	}
}

func TestBestLapEmpty(t *testing.T) {
	s := testStore(t)

	best, err := s.BestLap("race")
	if err != nil {
		t.Fatalf("BestLap: %v", err)
	}
	if best != 0 {
		t.Errorf("empty store best lap %f, want 0", best)
	}
}

func TestTopLapsOrderedAndLimited(t *testing.T) {
	s := testStore(t)

	laps := []float64{14.2, 9.5, 11.0, 10.1, 13.3}
	for _, lap := range laps {
		if _, err := s.SaveLap("race", lap, 1); err != nil {
			t.Fatalf("SaveLap: %v", err)
		}
	}

	top, err := s.TopLaps("race", 3)
	if err != nil {
		t.Fatalf("TopLaps: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("got %d entries, want 3", len(top))
	}
	want := []float64{9.5, 10.1, 11.0}
	for i, e := range top {
		if math.Abs(e.LapSeconds-want[i]) > 1e-9 {
			t.Errorf("entry %d = %f, want %f", i, e.LapSeconds, want[i])
		}
	}
}

func TestLapsIsolatedByMode(t *testing.T) {
	s := testStore(t)

	s.SaveLap("race", 9.5, 1)
	s.SaveLap("timetrial", 7.0, 1)

	best, err := s.BestLap("race")
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(best-9.5) > 1e-9 {
		t.Errorf("mode leak: race best %f", best)
	}
}

func TestClearLaps(t *testing.T) {
	s := testStore(t)

	s.SaveLap("race", 9.5, 1)
	if err := s.ClearLaps("race"); err != nil {
		t.Fatalf("ClearLaps: %v", err)
	}

	top, err := s.TopLaps("race", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(top) != 0 {
		t.Errorf("%d laps survived the clear", len(top))
	}
}

func TestSaveAndRecentRaces(t *testing.T) {
	s := testStore(t)

	for i := 0; i < 3; i++ {
		_, err := s.SaveRace(RaceEntry{
			ModeID:       "race",
			PlayerLaps:   5,
			BotLaps:      3 + i,
			Winner:       0,
			DurationSecs: 120 + i,
			Seed:         int64(i),
		})
		if err != nil {
			t.Fatalf("SaveRace: %v", err)
		}
	}

	recent, err := s.RecentRaces("race", 2)
	if err != nil {
		t.Fatalf("RecentRaces: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("got %d races, want 2", len(recent))
	}
	// Most recent first.
	if recent[0].Seed != 2 || recent[1].Seed != 1 {
		t.Errorf("recent ordering wrong: seeds %d, %d", recent[0].Seed, recent[1].Seed)
	}
	if recent[0].PlayerLaps != 5 || recent[0].Winner != 0 {
		t.Errorf("race fields lost: %+v", recent[0])
	}
}

func TestOpenCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "driftline.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open with nested path: %v", err)
	}
	s.Close()
}
