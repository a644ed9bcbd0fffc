package game

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Tuning holds the gameplay constants that are deliberately tunable: the
// luck/tail-cut probabilities, the speed factors, and the food timing
// ranges. Durations are stored as milliseconds so the JSON file stays
// hand-editable.
type Tuning struct {
	LuckProbability    float64 `json:"luck_probability"`
	TailCutProbability float64 `json:"tailcut_probability"`

	AccelFactor  float64 `json:"accel_factor"`  // same-direction input, <1
	BrakeFactor  float64 `json:"brake_factor"`  // reverse input, >1
	EatFactor    float64 `json:"eat_factor"`    // food eaten, <1
	EscapeFactor float64 `json:"escape_factor"` // luck escape, >1

	BaseIntervalMs int `json:"base_interval_ms"`
	FoodTickMs     int `json:"food_tick_ms"`
	TransitionMs   int `json:"transition_ms"`

	AmbientLifeMinMs int `json:"ambient_life_min_ms"`
	AmbientLifeMaxMs int `json:"ambient_life_max_ms"`
	CheatLifeMinMs   int `json:"cheat_life_min_ms"`
	CheatLifeMaxMs   int `json:"cheat_life_max_ms"`
	SpawnGapMinMs    int `json:"spawn_gap_min_ms"`
	SpawnGapMaxMs    int `json:"spawn_gap_max_ms"`
}

func DefaultTuning() *Tuning {
	return &Tuning{
		LuckProbability:    0.8,
		TailCutProbability: 0.5,
		AccelFactor:        0.90,
		BrakeFactor:        1.12,
		EatFactor:          0.95,
		EscapeFactor:       1.3,
		BaseIntervalMs:     160,
		FoodTickMs:         100,
		TransitionMs:       1000,
		AmbientLifeMinMs:   0,
		AmbientLifeMaxMs:   15000,
		CheatLifeMinMs:     10000,
		CheatLifeMaxMs:     15000,
		SpawnGapMinMs:      1667,
		SpawnGapMaxMs:      2500,
	}
}

func msDur(ms int) time.Duration { return time.Duration(ms) * time.Millisecond }

func (t *Tuning) BaseInterval() time.Duration { return msDur(t.BaseIntervalMs) }
func (t *Tuning) FoodTick() time.Duration     { return msDur(t.FoodTickMs) }
func (t *Tuning) Transition() time.Duration   { return msDur(t.TransitionMs) }

// Validate rejects values that would stall or break the simulation.
func (t *Tuning) Validate() error {
	probs := []struct {
		name string
		v    float64
	}{
		{"luck_probability", t.LuckProbability},
		{"tailcut_probability", t.TailCutProbability},
	}
	for _, p := range probs {
		if p.v < 0 || p.v > 1 {
			return fmt.Errorf("%s = %v: must be in [0,1]", p.name, p.v)
		}
	}
	if t.AccelFactor <= 0 || t.AccelFactor >= 1 {
		return fmt.Errorf("accel_factor = %v: must be in (0,1)", t.AccelFactor)
	}
	if t.EatFactor <= 0 || t.EatFactor >= 1 {
		return fmt.Errorf("eat_factor = %v: must be in (0,1)", t.EatFactor)
	}
	if t.BrakeFactor <= 1 {
		return fmt.Errorf("brake_factor = %v: must be > 1", t.BrakeFactor)
	}
	if t.EscapeFactor <= 1 {
		return fmt.Errorf("escape_factor = %v: must be > 1", t.EscapeFactor)
	}
	if t.BaseIntervalMs <= 0 || t.FoodTickMs <= 0 || t.TransitionMs <= 0 {
		return fmt.Errorf("intervals must be positive (base=%d food=%d transition=%d)",
			t.BaseIntervalMs, t.FoodTickMs, t.TransitionMs)
	}
	if t.AmbientLifeMinMs < 0 || t.AmbientLifeMaxMs < t.AmbientLifeMinMs {
		return fmt.Errorf("ambient lifetime range [%d,%d] invalid", t.AmbientLifeMinMs, t.AmbientLifeMaxMs)
	}
	if t.CheatLifeMinMs < 0 || t.CheatLifeMaxMs < t.CheatLifeMinMs {
		return fmt.Errorf("cheat lifetime range [%d,%d] invalid", t.CheatLifeMinMs, t.CheatLifeMaxMs)
	}
	if t.SpawnGapMinMs <= 0 || t.SpawnGapMaxMs < t.SpawnGapMinMs {
		return fmt.Errorf("spawn gap range [%d,%d] invalid", t.SpawnGapMinMs, t.SpawnGapMaxMs)
	}
	return nil
}

// TuningHolder is the live tuning value, swapped atomically so the fsnotify
// watcher goroutine can replace it while the frame loop reads it.
type TuningHolder struct {
	v atomic.Pointer[Tuning]
}

func NewTuningHolder(t *Tuning) *TuningHolder {
	h := &TuningHolder{}
	h.v.Store(t)
	return h
}

func (h *TuningHolder) Get() *Tuning  { return h.v.Load() }
func (h *TuningHolder) Set(t *Tuning) { h.v.Store(t) }

// LoadTuning reads the tuning file, writing one with defaults when it does
// not exist yet.
func LoadTuning(path string) (*Tuning, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t := DefaultTuning()
		if err := saveTuning(path, t); err != nil {
			return nil, err
		}
		return t, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read tuning: %w", err)
	}
	t := DefaultTuning()
	if err := json.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("parse tuning: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("tuning %s: %w", path, err)
	}
	return t, nil
}

func saveTuning(path string, t *Tuning) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// WatchTuning hot-reloads the tuning file into holder. Bad values are
// logged and the previous tuning kept. Blocks; run in a goroutine.
func WatchTuning(path string, holder *TuningHolder) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("tuning watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors replace files instead of writing in place.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}
	base := filepath.Base(path)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			t, err := LoadTuning(path)
			if err != nil {
				log.Printf("tuning reload rejected: %v", err)
				continue
			}
			holder.Set(t)
			log.Printf("tuning reloaded from %s", path)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("tuning watcher: %v", err)
		}
	}
}
