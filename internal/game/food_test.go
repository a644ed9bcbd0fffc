package game

import (
	"testing"
	"time"
)

func TestFoodSpawnValidity(t *testing.T) {
	tn := DefaultTuning()
	for trial := 0; trial < 50; trial++ {
		rng := NewRand(uint64(trial + 1))
		g := NewGrid(12)
		// Random-walk the snake into a varied configuration.
		dir := DirRight
		for step := 0; step < 30; step++ {
			if step%2 == 0 {
				g.Grow()
			}
			d, ok := g.FindSafeDirection(dir, rng, func(c Cell) bool {
				return g.InBounds(c) && !g.Occupies(c.X, c.Y, true)
			})
			if !ok {
				break
			}
			dir = d
			g.Move(g.NextHead(dir))
		}

		fs := NewFoodSet(rng)
		fs.Reset(tn)
		for n := 0; n < 20; n++ {
			item, ok := fs.Generate(g, 0, tn)
			if !ok {
				t.Fatalf("trial %d: board reported full with %d segments, %d food",
					trial, g.Len(), len(fs.Items))
			}
			if g.Occupies(item.Pos.X, item.Pos.Y, false) {
				t.Fatalf("trial %d: food spawned on snake at %v", trial, item.Pos)
			}
			for i, other := range fs.Items[:len(fs.Items)-1] {
				if other.Pos == item.Pos {
					t.Fatalf("trial %d: food spawned on food %d at %v", trial, i, item.Pos)
				}
			}
			if !g.InBounds(item.Pos) {
				t.Fatalf("trial %d: food out of bounds at %v", trial, item.Pos)
			}
		}
	}
}

func TestFoodExpiry(t *testing.T) {
	tn := DefaultTuning()
	tn.SpawnGapMinMs = 1 << 30 // no ambient spawns during the test
	tn.SpawnGapMaxMs = 1 << 30
	rng := NewRand(7)
	g := NewGrid(10)
	fs := NewFoodSet(rng)
	fs.Reset(tn)

	fs.Items = append(fs.Items,
		FoodItem{Pos: Cell{1, 1}, Kind: FoodApple, SpawnedAt: 0, Lifetime: 2 * time.Second},
		FoodItem{Pos: Cell{2, 2}, Kind: FoodBanana, SpawnedAt: 0, Lifetime: 10 * time.Second},
	)

	bus := NewEventBus()
	var expired []Cell
	bus.Subscribe(EventFoodExpired, func(e Event) { expired = append(expired, e.Cell) })

	fs.ManageTick(g, 3*time.Second, 100*time.Millisecond, tn, bus)

	if len(fs.Items) != 1 || fs.Items[0].Pos != (Cell{2, 2}) {
		t.Fatalf("items after expiry = %v, want only (2,2)", fs.Items)
	}
	if len(expired) != 1 || expired[0] != (Cell{1, 1}) {
		t.Errorf("expired events = %v, want [(1,1)]", expired)
	}
}

func TestFoodAmbientSpawnCadence(t *testing.T) {
	tn := DefaultTuning()
	rng := NewRand(3)
	g := NewGrid(16)
	fs := NewFoodSet(rng)
	fs.Reset(tn)

	bus := NewEventBus()
	spawns := 0
	bus.Subscribe(EventFoodSpawned, func(Event) { spawns++ })

	// Drive the food clock for 30 seconds at the fixed cadence; the gap is
	// uniform in [1667ms, 2500ms] so the spawn count is bounded both ways.
	step := tn.FoodTick()
	var clock time.Duration
	for clock < 30*time.Second {
		clock += step
		fs.ManageTick(g, clock, step, tn, bus)
	}
	if spawns < 30000/tn.SpawnGapMaxMs || spawns > 30000/tn.SpawnGapMinMs+1 {
		t.Fatalf("%d ambient spawns in 30s, outside the configured gap range", spawns)
	}
}

func TestFoodCheckEatenAndRemove(t *testing.T) {
	rng := NewRand(5)
	fs := NewFoodSet(rng)
	fs.Items = []FoodItem{
		{Pos: Cell{3, 3}, Kind: FoodApple},
		{Pos: Cell{6, 5}, Kind: FoodOrange},
	}

	if got := fs.CheckEaten(Cell{4, 4}); got != -1 {
		t.Errorf("CheckEaten(empty) = %d, want -1", got)
	}
	idx := fs.CheckEaten(Cell{6, 5})
	if idx != 1 {
		t.Fatalf("CheckEaten((6,5)) = %d, want 1", idx)
	}
	item := fs.Remove(idx)
	if item.Kind != FoodOrange {
		t.Errorf("removed kind = %v, want orange", item.Kind)
	}
	if len(fs.Items) != 1 || fs.Items[0].Pos != (Cell{3, 3}) {
		t.Errorf("items after remove = %v", fs.Items)
	}
}

func TestCheatSpawnIsCherryWithCheatLifetime(t *testing.T) {
	tn := DefaultTuning()
	rng := NewRand(11)
	g := NewGrid(10)
	fs := NewFoodSet(rng)
	fs.Reset(tn)

	for i := 0; i < 10; i++ {
		item, ok := fs.CheatSpawn(g, 0, tn)
		if !ok {
			t.Fatal("cheat spawn failed on a near-empty board")
		}
		if item.Kind != FoodCherry {
			t.Errorf("cheat spawn kind = %v, want cherry", item.Kind)
		}
		if item.Lifetime < msDur(tn.CheatLifeMinMs) || item.Lifetime > msDur(tn.CheatLifeMaxMs) {
			t.Errorf("cheat lifetime %v outside [%dms, %dms]",
				item.Lifetime, tn.CheatLifeMinMs, tn.CheatLifeMaxMs)
		}
	}
}

func TestFoodNearest(t *testing.T) {
	fs := NewFoodSet(NewRand(1))
	if _, ok := fs.Nearest(Cell{0, 0}); ok {
		t.Error("Nearest on empty set reported food")
	}
	fs.Items = []FoodItem{
		{Pos: Cell{9, 9}},
		{Pos: Cell{2, 1}},
		{Pos: Cell{5, 5}},
	}
	item, ok := fs.Nearest(Cell{1, 1})
	if !ok || item.Pos != (Cell{2, 1}) {
		t.Errorf("Nearest((1,1)) = %v, want (2,1)", item.Pos)
	}
}
