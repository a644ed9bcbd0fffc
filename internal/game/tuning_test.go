package game

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultTuningValid(t *testing.T) {
	if err := DefaultTuning().Validate(); err != nil {
		t.Fatalf("default tuning invalid: %v", err)
	}
}

func TestTuningValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Tuning)
	}{
		{"luck probability above one", func(tn *Tuning) { tn.LuckProbability = 1.5 }},
		{"negative tailcut probability", func(tn *Tuning) { tn.TailCutProbability = -0.1 }},
		{"accel factor above one", func(tn *Tuning) { tn.AccelFactor = 1.2 }},
		{"brake factor below one", func(tn *Tuning) { tn.BrakeFactor = 0.9 }},
		{"zero base interval", func(tn *Tuning) { tn.BaseIntervalMs = 0 }},
		{"negative transition", func(tn *Tuning) { tn.TransitionMs = -5 }},
		{"inverted ambient range", func(tn *Tuning) { tn.AmbientLifeMaxMs = -1 }},
		{"inverted spawn gap", func(tn *Tuning) { tn.SpawnGapMaxMs = tn.SpawnGapMinMs - 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tn := DefaultTuning()
			tt.mutate(tn)
			if err := tn.Validate(); err == nil {
				t.Error("Validate accepted a bad value")
			}
		})
	}
}

func TestLoadTuningWritesDefaultsWhenAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.json")
	tn, err := LoadTuning(path)
	if err != nil {
		t.Fatalf("LoadTuning: %v", err)
	}
	if *tn != *DefaultTuning() {
		t.Errorf("first load = %+v, want defaults", tn)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("defaults file not written: %v", err)
	}

	// Second load reads the written file back.
	again, err := LoadTuning(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if *again != *tn {
		t.Errorf("reload = %+v, want %+v", again, tn)
	}
}

func TestLoadTuningRejectsInvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tuning.json")
	if err := os.WriteFile(path, []byte(`{"luck_probability": 7}`), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTuning(path); err == nil {
		t.Fatal("LoadTuning accepted an out-of-range probability")
	}
}

func TestTuningHolderSwap(t *testing.T) {
	h := NewTuningHolder(DefaultTuning())
	tn := DefaultTuning()
	tn.BaseIntervalMs = 99
	h.Set(tn)
	if h.Get().BaseIntervalMs != 99 {
		t.Errorf("holder returned stale tuning")
	}
}
