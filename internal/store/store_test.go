package store

import (
	"testing"
	"time"
)

func open(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestHighScoreEmpty(t *testing.T) {
	s := open(t)
	best, err := s.HighScore()
	if err != nil {
		t.Fatalf("high score: %v", err)
	}
	if best != 0 {
		t.Fatalf("empty store high score = %d, want 0", best)
	}
}

func TestSaveAndHighScore(t *testing.T) {
	s := open(t)
	for _, score := range []int{40, 120, 85} {
		if err := s.SaveRun(score, score/10, 20, 90*time.Second); err != nil {
			t.Fatalf("save %d: %v", score, err)
		}
	}
	best, err := s.HighScore()
	if err != nil {
		t.Fatalf("high score: %v", err)
	}
	if best != 120 {
		t.Fatalf("high score = %d, want 120", best)
	}
}

func TestTopScores(t *testing.T) {
	s := open(t)
	for _, score := range []int{10, 50, 30, 70, 20} {
		if err := s.SaveRun(score, 5, 20, time.Minute); err != nil {
			t.Fatalf("save: %v", err)
		}
	}

	top, err := s.TopScores(3)
	if err != nil {
		t.Fatalf("top scores: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("got %d runs, want 3", len(top))
	}
	want := []int{70, 50, 30}
	for i, r := range top {
		if r.Score != want[i] {
			t.Errorf("top[%d].Score = %d, want %d", i, r.Score, want[i])
		}
		if r.ID == "" {
			t.Errorf("top[%d] has empty id", i)
		}
		if r.Duration != time.Minute {
			t.Errorf("top[%d].Duration = %v, want 1m", i, r.Duration)
		}
	}
}
