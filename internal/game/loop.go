package game

import (
	"fmt"
	"log"
	"time"
)

// ScoreStore persists finished runs. A nil store keeps the high score
// session-local.
type ScoreStore interface {
	HighScore() (int, error)
	SaveRun(score, peakLen, tileCount int, duration time.Duration) error
}

// Banner is a short-lived floating HUD message.
type Banner struct {
	Text string
	Col  RGB
	Life float64 // seconds remaining
}

// Game wires the grid, food set, speed controller, resolver and session
// together and advances them from the frame loop. Two independent
// accumulators exist: the variable-rate snake tick and the fixed-rate food
// tick. Both run only while the session is in the running phase, so a
// pause freezes the whole simulation at once.
type Game struct {
	Grid    *Grid
	Food    *FoodSet
	Speed   *SpeedController
	Session *GameSession
	Events  *EventBus
	Banners []Banner

	resolver *Resolver
	tuning   *TuningHolder
	rng      *Rand
	store    ScoreStore

	tileCount    int
	currentDir   Dir
	requestedDir Dir

	clock       time.Duration // game clock, frozen outside running
	tickAcc     time.Duration
	foodAcc     time.Duration
	lastEatenAt time.Duration

	snap Snapshot
}

func NewGame(tileCount int, seed uint64, tuning *TuningHolder, store ScoreStore) *Game {
	if tuning == nil {
		tuning = NewTuningHolder(DefaultTuning())
	}
	bus := NewEventBus()
	rng := NewRand(seed)
	grid := NewGrid(tileCount)
	food := NewFoodSet(rng)
	tn := tuning.Get()

	g := &Game{
		Grid:      grid,
		Food:      food,
		Speed:     NewSpeedController(tn.BaseInterval()),
		Session:   NewGameSession(bus),
		Events:    bus,
		resolver:  NewResolver(grid, food, rng),
		tuning:    tuning,
		rng:       rng,
		store:     store,
		tileCount: grid.TileCount(),
	}
	g.currentDir = DirRight
	g.requestedDir = DirRight

	if store != nil {
		if hs, err := store.HighScore(); err != nil {
			log.Printf("load high score: %v", err)
		} else {
			g.Session.HighScore = hs
		}
	}
	g.rebuildSnapshot()
	return g
}

func (g *Game) Tuning() *Tuning { return g.tuning.Get() }

// Start begins a new run; legal only from not-started and game-over.
func (g *Game) Start() bool {
	if !g.Session.Start() {
		return false
	}
	tn := g.Tuning()
	g.Grid.Reset(g.tileCount)
	g.Food.Reset(tn)
	g.Speed.Reset(tn.BaseInterval())
	g.currentDir = DirRight
	g.requestedDir = DirRight
	g.clock = 0
	g.tickAcc = 0
	g.foodAcc = 0
	g.lastEatenAt = -time.Hour
	g.Banners = g.Banners[:0]
	g.Session.PeakLen = g.Grid.Len()
	g.rebuildSnapshot()
	return true
}

func (g *Game) TogglePause() bool {
	ok := g.Session.TogglePause()
	if ok {
		g.rebuildSnapshot()
	}
	return ok
}

func (g *Game) ToggleLuck() bool {
	g.Session.LuckEnabled = !g.Session.LuckEnabled
	g.rebuildSnapshot()
	return g.Session.LuckEnabled
}

func (g *Game) ToggleShake() bool {
	g.Session.ShakeEnabled = !g.Session.ShakeEnabled
	g.rebuildSnapshot()
	return g.Session.ShakeEnabled
}

// IsValidDirectionChange reports whether d could be latched this tick:
// everything except the exact reverse of the applied direction.
func (g *Game) IsValidDirectionChange(d Dir) bool {
	return d != g.currentDir.Opposite()
}

// RequestDirection latches d for the next tick boundary. Holding the
// current direction accelerates; requesting the exact reverse brakes and
// is never latched (a mid-tick reversal would self-collide immediately).
func (g *Game) RequestDirection(d Dir) bool {
	if g.Session.Phase != PhaseRunning {
		return false
	}
	g.Speed.OnDirectionInput(d, g.currentDir, g.Tuning())
	if !g.IsValidDirectionChange(d) {
		return false
	}
	g.requestedDir = d
	return true
}

// CheatSpawn drops a player-triggered cherry on a free cell.
func (g *Game) CheatSpawn() bool {
	if g.Session.Phase != PhaseRunning {
		return false
	}
	item, ok := g.Food.CheatSpawn(g.Grid, g.clock, g.Tuning())
	if !ok {
		return false
	}
	g.Events.Emit(Event{Type: EventFoodSpawned, Cell: item.Pos, Data: int(item.Kind)})
	g.rebuildSnapshot()
	return true
}

// Advance accumulates frame time and fires simulation and food ticks.
// Each fired tick subtracts exactly one interval instead of zeroing the
// accumulator, so high frame rates cannot drift the tick rate.
func (g *Game) Advance(dt time.Duration) {
	g.updateBanners(dt.Seconds())

	if settled := g.Session.Update(dt); settled {
		g.persistRun()
		g.rebuildSnapshot()
	}
	if g.Session.Phase != PhaseRunning {
		return
	}

	tn := g.Tuning()
	g.clock += dt

	g.foodAcc += dt
	for g.foodAcc >= tn.FoodTick() {
		g.foodAcc -= tn.FoodTick()
		before := len(g.Food.Items)
		g.Food.ManageTick(g.Grid, g.clock, tn.FoodTick(), tn, g.Events)
		if len(g.Food.Items) != before {
			g.rebuildSnapshot()
		}
	}

	g.tickAcc += dt
	for g.tickAcc >= g.Speed.Interval() {
		g.tickAcc -= g.Speed.Interval()
		g.step(tn)
		if g.Session.Phase != PhaseRunning {
			g.tickAcc = 0
			g.foodAcc = 0
			break
		}
	}
}

// step runs one simulation tick in strict order: latch the requested
// direction, classify the next head cell, apply the outcome, then resolve
// eating.
func (g *Game) step(tn *Tuning) {
	g.currentDir = g.requestedDir

	next := g.Grid.NextHead(g.currentDir)
	res := g.resolver.Resolve(next, g.currentDir, g.Session.LuckEnabled, tn)

	switch res.Kind {
	case OutcomeMove:
		g.Grid.Move(res.Next)

	case OutcomeTailCut:
		original := g.Grid.Len()
		removed := g.Grid.CutTailAt(res.CutIndex)
		if removed == 0 {
			// Index no longer resolvable; treat as the fatal case.
			g.Session.Die(tn)
			g.rebuildSnapshot()
			return
		}
		loss := g.Session.Score * removed / original
		g.Session.Score -= loss
		g.Grid.Move(res.Next)
		g.AddBanner(fmt.Sprintf("TAIL CUT -%d", loss), Palette.CutFlash)
		g.Events.Emit(Event{Type: EventTailCut, Cell: res.Next, Data: removed})

	case OutcomeLuck:
		g.currentDir = res.Dir
		g.requestedDir = res.Dir
		g.Speed.OnLuckEscape(tn)
		g.Grid.Move(res.Next)
		g.AddBanner("LUCKY!", Palette.SnakeLucky)
		g.Events.Emit(Event{Type: EventNearMiss, Cell: res.Next})

	case OutcomeDeath:
		g.Session.Die(tn)
		g.rebuildSnapshot()
		return
	}

	if i := g.Food.CheckEaten(g.Grid.Head()); i >= 0 {
		item := g.Food.Remove(i)
		g.Session.Score += item.Kind.Points()
		g.Grid.Grow()
		g.Speed.OnFoodEaten(tn)
		g.lastEatenAt = g.clock
		g.Events.Emit(Event{Type: EventFoodEaten, Cell: item.Pos, Data: int(item.Kind)})
	}

	if g.Grid.Len() > g.Session.PeakLen {
		g.Session.PeakLen = g.Grid.Len()
	}
	g.rebuildSnapshot()
}

func (g *Game) persistRun() {
	if g.store == nil {
		return
	}
	s := g.Session
	if err := g.store.SaveRun(s.Score, s.PeakLen, g.tileCount, s.PlayTime); err != nil {
		log.Printf("save run: %v", err)
	}
}

// AddBanner queues a floating HUD message; the oldest is dropped when full.
func (g *Game) AddBanner(text string, col RGB) {
	if len(g.Banners) >= 4 {
		g.Banners = g.Banners[1:]
	}
	g.Banners = append(g.Banners, Banner{Text: text, Col: col, Life: BannerTime})
}

func (g *Game) updateBanners(dt float64) {
	for i := 0; i < len(g.Banners); {
		g.Banners[i].Life -= dt
		if g.Banners[i].Life <= 0 {
			g.Banners = append(g.Banners[:i], g.Banners[i+1:]...)
			continue
		}
		i++
	}
}

func (g *Game) rebuildSnapshot() {
	s := g.Session
	g.snap = Snapshot{
		Segments:     append([]Cell(nil), g.Grid.Segments()...),
		Food:         append([]FoodItem(nil), g.Food.Items...),
		Direction:    g.currentDir,
		Score:        s.Score,
		HighScore:    s.HighScore,
		Phase:        s.Phase,
		LuckEnabled:  s.LuckEnabled,
		ShakeEnabled: s.ShakeEnabled,
		LastEatenAt:  g.lastEatenAt,
		Clock:        g.clock,
		TileCount:    g.Grid.TileCount(),
	}
}

// Snapshot returns the read-only view built at the last tick.
func (g *Game) Snapshot() Snapshot { return g.snap }
