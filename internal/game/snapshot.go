package game

import "time"

// Snapshot is the immutable per-tick view handed to renderers and the
// spectator feed. All slices are copies; consumers may hold it across
// ticks.
type Snapshot struct {
	Segments     []Cell        `json:"segments"`
	Food         []FoodItem    `json:"food"`
	Direction    Dir           `json:"direction"`
	Score        int           `json:"score"`
	HighScore    int           `json:"high_score"`
	Phase        Phase         `json:"phase"`
	LuckEnabled  bool          `json:"luck_enabled"`
	ShakeEnabled bool          `json:"shake_enabled"`
	LastEatenAt  time.Duration `json:"last_eaten_at"`
	Clock        time.Duration `json:"clock"`
	TileCount    int           `json:"tile_count"`
}

// Hash folds the simulation-relevant fields into one value, for
// determinism tests comparing whole runs.
func (s Snapshot) Hash() uint64 {
	h := uint64(1469598103934665603)
	mix := func(v uint64) {
		h = splitmix64(h ^ v)
	}
	mix(uint64(s.TileCount))
	mix(uint64(s.Score))
	mix(uint64(s.HighScore))
	mix(uint64(s.Direction))
	mix(uint64(s.Phase))
	for _, seg := range s.Segments {
		mix(uint64(uint32(seg.X))<<32 | uint64(uint32(seg.Y)))
	}
	for _, f := range s.Food {
		mix(uint64(uint32(f.Pos.X))<<32 | uint64(uint32(f.Pos.Y)))
		mix(uint64(f.Kind))
	}
	return h
}
