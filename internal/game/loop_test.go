package game

import (
	"testing"
	"time"
)

// quietTuning suppresses ambient food spawns so scenarios stay exact.
func quietTuning() *Tuning {
	tn := DefaultTuning()
	tn.SpawnGapMinMs = 1 << 30
	tn.SpawnGapMaxMs = 1 << 30
	return tn
}

func newTestGame(tiles int, seed uint64, tn *Tuning) *Game {
	return NewGame(tiles, seed, NewTuningHolder(tn), nil)
}

func TestTickScenarioPlainMove(t *testing.T) {
	g := newTestGame(10, 1, quietTuning())
	g.Start()
	g.Grid.segments = []Cell{{5, 5}, {4, 5}, {3, 5}}
	g.Session.LuckEnabled = false

	g.Advance(g.Speed.Interval())

	if head := g.Grid.Head(); head != (Cell{6, 5}) {
		t.Errorf("head = %v, want (6,5)", head)
	}
	if g.Grid.Len() != 3 {
		t.Errorf("length = %d, want 3 (tail dropped)", g.Grid.Len())
	}
	if snap := g.Snapshot(); snap.Segments[0] != (Cell{6, 5}) {
		t.Errorf("snapshot head = %v, want (6,5)", snap.Segments[0])
	}
}

func TestTickScenarioEatAndGrow(t *testing.T) {
	g := newTestGame(10, 1, quietTuning())
	g.Start()
	g.Grid.segments = []Cell{{5, 5}, {4, 5}, {3, 5}}
	g.Session.LuckEnabled = false
	g.Food.Items = []FoodItem{{Pos: Cell{6, 5}, Kind: FoodApple, Lifetime: time.Hour}}

	eaten := 0
	g.Events.Subscribe(EventFoodEaten, func(e Event) {
		eaten++
		if FoodKind(e.Data) != FoodApple {
			t.Errorf("eaten kind = %v, want apple", FoodKind(e.Data))
		}
	})

	before := g.Speed.Interval()
	g.Advance(g.Speed.Interval())

	if eaten != 1 {
		t.Fatalf("eat events = %d, want 1", eaten)
	}
	if len(g.Food.Items) != 0 {
		t.Error("food not removed after eating")
	}
	if g.Session.Score != FoodApple.Points() {
		t.Errorf("score = %d, want %d", g.Session.Score, FoodApple.Points())
	}
	if g.Grid.Len() != 3 {
		t.Errorf("length = %d right after eating, want 3 (growth applies next move)", g.Grid.Len())
	}
	if g.Speed.Interval() >= before {
		t.Error("eating did not hasten the interval")
	}

	// The armed growth flag keeps the tail on the next move.
	g.Advance(g.Speed.Interval())
	if g.Grid.Len() != 4 {
		t.Errorf("length = %d after post-eat move, want 4", g.Grid.Len())
	}
}

func TestTickScenarioWallDeathRoutesThroughTransition(t *testing.T) {
	tn := quietTuning()
	g := newTestGame(10, 1, tn)
	g.Start()
	g.Grid.segments = []Cell{{9, 5}, {8, 5}, {7, 5}}
	g.Session.LuckEnabled = false

	var phases []Phase
	g.Events.Subscribe(EventPhaseChanged, func(e Event) { phases = append(phases, Phase(e.Data)) })

	g.Advance(g.Speed.Interval())
	if g.Session.Phase != PhaseTransition {
		t.Fatalf("phase = %v after wall hit, want transition", g.Session.Phase)
	}

	g.Advance(tn.Transition() / 2)
	if g.Session.Phase != PhaseTransition {
		t.Fatalf("phase = %v mid-delay, want transition", g.Session.Phase)
	}
	g.Advance(tn.Transition())
	if g.Session.Phase != PhaseGameOver {
		t.Fatalf("phase = %v after delay, want game-over", g.Session.Phase)
	}

	want := []Phase{PhaseTransition, PhaseGameOver}
	if len(phases) != len(want) {
		t.Fatalf("phase events = %v, want %v", phases, want)
	}
	for i := range want {
		if phases[i] != want[i] {
			t.Fatalf("phase events = %v, want %v (transition never skipped)", phases, want)
		}
	}
}

func TestTailCutScoreReduction(t *testing.T) {
	// Snake of length 10 with the colliding segment at body index 6:
	// 4 segments removed from a score of 100 costs floor(100*4/10) = 40.
	tn := quietTuning()
	tn.TailCutProbability = 1
	g := newTestGame(12, 5, tn)
	g.Start()
	g.Grid.segments = []Cell{
		{5, 5}, {4, 5}, {3, 5}, {2, 5}, {2, 4}, {2, 3}, {6, 5}, {7, 5}, {8, 5}, {9, 5},
	}
	g.Session.Score = 100

	removed := 0
	g.Events.Subscribe(EventTailCut, func(e Event) { removed = e.Data })

	g.Advance(g.Speed.Interval())

	if removed != 4 {
		t.Fatalf("removed = %d, want 4", removed)
	}
	if g.Session.Score != 60 {
		t.Errorf("score = %d, want 60", g.Session.Score)
	}
	if g.Grid.Head() != (Cell{6, 5}) {
		t.Errorf("head = %v, want the vacated (6,5)", g.Grid.Head())
	}
	if g.Grid.Len() != 6 {
		t.Errorf("length = %d, want 6", g.Grid.Len())
	}
	if len(g.Banners) == 0 || g.Banners[len(g.Banners)-1].Text != "TAIL CUT -40" {
		t.Errorf("banners = %v, want a TAIL CUT -40 message", g.Banners)
	}
}

func TestLuckEscapeBoostsSpeedAndRedirects(t *testing.T) {
	tn := quietTuning()
	tn.LuckProbability = 1
	g := newTestGame(10, 2, tn)
	g.Start()
	g.Grid.segments = []Cell{{9, 0}, {8, 0}, {7, 0}} // only down is safe

	misses := 0
	g.Events.Subscribe(EventNearMiss, func(Event) { misses++ })

	before := g.Speed.Interval()
	g.Advance(g.Speed.Interval())

	if misses != 1 {
		t.Fatalf("near-miss events = %d, want 1", misses)
	}
	if g.Grid.Head() != (Cell{9, 1}) {
		t.Errorf("head = %v, want (9,1)", g.Grid.Head())
	}
	if g.currentDir != DirDown || g.requestedDir != DirDown {
		t.Errorf("directions = %v/%v, want down/down", g.currentDir, g.requestedDir)
	}
	if g.Speed.Interval() <= before {
		t.Error("luck escape did not slow the pace")
	}
	if g.Session.Phase != PhaseRunning {
		t.Errorf("phase = %v, want running", g.Session.Phase)
	}
}

func TestPauseRoundTripPreservesState(t *testing.T) {
	tn := DefaultTuning()
	g := newTestGame(16, 9, tn)
	g.Start()
	g.Food.Items = []FoodItem{{Pos: Cell{1, 1}, Kind: FoodBanana, Lifetime: time.Hour}}

	// Let it run a bit with speed input to move off the defaults.
	g.RequestDirection(DirRight)
	for i := 0; i < 3; i++ {
		g.Advance(g.Speed.Interval())
	}

	segs := append([]Cell(nil), g.Grid.Segments()...)
	food := append([]FoodItem(nil), g.Food.Items...)
	dir := g.currentDir
	interval := g.Speed.Interval()

	g.TogglePause()
	for i := 0; i < 50; i++ {
		g.Advance(100 * time.Millisecond) // paused time must not tick anything
	}
	g.TogglePause()

	if g.Speed.Interval() != interval {
		t.Errorf("interval drifted across pause: %v -> %v", interval, g.Speed.Interval())
	}
	if g.currentDir != dir {
		t.Errorf("direction changed across pause: %v -> %v", dir, g.currentDir)
	}
	if len(g.Grid.Segments()) != len(segs) {
		t.Fatalf("segment count changed across pause")
	}
	for i, s := range g.Grid.Segments() {
		if s != segs[i] {
			t.Errorf("segment %d changed across pause: %v -> %v", i, segs[i], s)
		}
	}
	if len(g.Food.Items) != len(food) {
		t.Fatalf("food count changed across pause")
	}
	for i, f := range g.Food.Items {
		if f != food[i] {
			t.Errorf("food %d changed across pause: %v -> %v", i, food[i], f)
		}
	}
}

func TestAccumulatorSubtractsExactInterval(t *testing.T) {
	tn := quietTuning()
	g := newTestGame(64, 3, tn)
	g.Start()
	g.Session.LuckEnabled = false
	startX := g.Grid.Head().X

	// 4 x 100ms against a 160ms interval: exactly 2 ticks, 80ms carried.
	for i := 0; i < 4; i++ {
		g.Advance(100 * time.Millisecond)
	}
	if moved := g.Grid.Head().X - startX; moved != 2 {
		t.Fatalf("ticks fired = %d over 400ms at 160ms interval, want 2", moved)
	}
	// The 80ms residue means one more tick after another 80ms, not 160ms.
	g.Advance(80 * time.Millisecond)
	if moved := g.Grid.Head().X - startX; moved != 3 {
		t.Fatalf("residue lost: %d ticks after 480ms, want 3", moved)
	}
}

func TestReversalIsBrakeNotLatch(t *testing.T) {
	g := newTestGame(16, 4, quietTuning())
	g.Start()

	before := g.Speed.Interval()
	if g.RequestDirection(DirLeft) {
		t.Error("reverse request reported latched")
	}
	if g.requestedDir != DirRight {
		t.Errorf("requested direction = %v after reverse input, want right", g.requestedDir)
	}
	if g.Speed.Interval() <= before {
		t.Error("reverse input did not brake")
	}

	// Perpendicular input latches without touching the interval.
	mid := g.Speed.Interval()
	if !g.RequestDirection(DirUp) {
		t.Fatal("perpendicular request refused")
	}
	if g.Speed.Interval() != mid {
		t.Error("perpendicular input changed the interval")
	}
	g.Advance(g.Speed.Interval())
	if g.currentDir != DirUp {
		t.Errorf("direction after tick = %v, want up", g.currentDir)
	}
}

func TestDeterministicRunsHashEqual(t *testing.T) {
	run := func() uint64 {
		tn := DefaultTuning()
		g := newTestGame(20, 12345, tn)
		g.Start()
		dirs := []Dir{DirRight, DirDown, DirLeft, DirUp, DirDown, DirRight}
		h := uint64(0)
		for i := 0; i < 300; i++ {
			g.RequestDirection(dirs[i%len(dirs)])
			g.Advance(33 * time.Millisecond)
			h = splitmix64(h ^ g.Snapshot().Hash())
		}
		return h
	}
	if a, b := run(), run(); a != b {
		t.Fatalf("same-seed runs diverged: %x vs %x", a, b)
	}
}

type recordingStore struct {
	high  int
	runs  int
	score int
}

func (r *recordingStore) HighScore() (int, error) { return r.high, nil }
func (r *recordingStore) SaveRun(score, peakLen, tileCount int, d time.Duration) error {
	r.runs++
	r.score = score
	return nil
}

func TestRunPersistedOnceAtSettle(t *testing.T) {
	tn := quietTuning()
	st := &recordingStore{high: 30}
	g := NewGame(10, 6, NewTuningHolder(tn), st)

	if g.Session.HighScore != 30 {
		t.Fatalf("high score not loaded from store: %d", g.Session.HighScore)
	}

	g.Start()
	g.Grid.segments = []Cell{{9, 5}, {8, 5}, {7, 5}}
	g.Session.LuckEnabled = false
	g.Session.Score = 55

	g.Advance(g.Speed.Interval()) // wall death
	if st.runs != 0 {
		t.Fatal("run saved before the session settled")
	}
	g.Advance(tn.Transition() * 2)
	if st.runs != 1 || st.score != 55 {
		t.Fatalf("runs saved = %d (score %d), want 1 run with score 55", st.runs, st.score)
	}
	g.Advance(time.Second)
	if st.runs != 1 {
		t.Errorf("runs saved = %d after settling, want still 1", st.runs)
	}
}

func TestCheatSpawnOnlyWhileRunning(t *testing.T) {
	g := newTestGame(10, 8, quietTuning())
	if g.CheatSpawn() {
		t.Error("cheat spawn allowed before start")
	}
	g.Start()
	if !g.CheatSpawn() {
		t.Fatal("cheat spawn refused while running")
	}
	if len(g.Food.Items) != 1 || g.Food.Items[0].Kind != FoodCherry {
		t.Fatalf("food after cheat spawn = %v, want one cherry", g.Food.Items)
	}
	g.TogglePause()
	if g.CheatSpawn() {
		t.Error("cheat spawn allowed while paused")
	}
}
