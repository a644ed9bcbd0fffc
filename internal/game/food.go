package game

import "time"

type FoodKind int

const (
	FoodApple FoodKind = iota
	FoodBanana
	FoodOrange
	FoodStrawberry
	FoodCherry

	FoodKindCount // must stay last
)

func (k FoodKind) String() string {
	switch k {
	case FoodApple:
		return "apple"
	case FoodBanana:
		return "banana"
	case FoodOrange:
		return "orange"
	case FoodStrawberry:
		return "strawberry"
	case FoodCherry:
		return "cherry"
	}
	return "food"
}

// Points returns the score value of eating this kind.
func (k FoodKind) Points() int {
	switch k {
	case FoodApple:
		return 10
	case FoodBanana:
		return 15
	case FoodOrange:
		return 20
	case FoodStrawberry:
		return 30
	case FoodCherry:
		return 50
	}
	return 10
}

func (k FoodKind) Color() RGB {
	switch k {
	case FoodApple:
		return RGB{R: 220, G: 60, B: 50}
	case FoodBanana:
		return RGB{R: 250, G: 220, B: 70}
	case FoodOrange:
		return RGB{R: 255, G: 150, B: 40}
	case FoodStrawberry:
		return RGB{R: 250, G: 80, B: 120}
	case FoodCherry:
		return RGB{R: 180, G: 30, B: 60}
	}
	return RGB{R: 220, G: 60, B: 50}
}

type FoodItem struct {
	Pos       Cell
	Kind      FoodKind
	SpawnedAt time.Duration // game clock at creation
	Lifetime  time.Duration
}

// FoodSet owns the live food items, their spawn timing and their expiry.
// It runs on the fixed food clock, never on the variable snake tick.
type FoodSet struct {
	Items []FoodItem

	rng      *Rand
	lastKind int
	nextGap  time.Duration // re-rolled after every ambient spawn
	gapLeft  time.Duration
}

func NewFoodSet(rng *Rand) *FoodSet {
	return &FoodSet{
		rng:      rng,
		lastKind: -1,
	}
}

// Reset clears all items and re-arms the ambient spawn timer.
func (fs *FoodSet) Reset(tn *Tuning) {
	fs.Items = fs.Items[:0]
	fs.lastKind = -1
	fs.rollGap(tn)
}

func (fs *FoodSet) rollGap(tn *Tuning) {
	fs.nextGap = msDur(fs.rng.Range(tn.SpawnGapMinMs, tn.SpawnGapMaxMs))
	fs.gapLeft = fs.nextGap
}

// At returns the index of the item on c, or -1.
func (fs *FoodSet) At(c Cell) int {
	for i := range fs.Items {
		if fs.Items[i].Pos == c {
			return i
		}
	}
	return -1
}

// pickKind avoids obvious repeated same-kind streaks.
func (fs *FoodSet) pickKind() FoodKind {
	kind := FoodKind(fs.rng.Intn(int(FoodKindCount)))
	if int(kind) == fs.lastKind && FoodKindCount > 1 {
		off := 1 + fs.rng.Intn(int(FoodKindCount)-1)
		kind = FoodKind((int(kind) + off) % int(FoodKindCount))
	}
	fs.lastKind = int(kind)
	return kind
}

// pickFreeCell rejection-samples a cell occupied by neither the snake nor
// another item. Returns false when the board is effectively full.
func (fs *FoodSet) pickFreeCell(grid *Grid) (Cell, bool) {
	n := grid.TileCount()
	maxTries := n * n * 2
	for tries := 0; tries < maxTries; tries++ {
		c := Cell{X: fs.rng.Intn(n), Y: fs.rng.Intn(n)}
		if grid.Occupies(c.X, c.Y, false) {
			continue
		}
		if fs.At(c) >= 0 {
			continue
		}
		return c, true
	}
	return Cell{}, false
}

// Generate spawns one ambient item with a lifetime drawn from the ambient
// range. Returns false when no free cell was found.
func (fs *FoodSet) Generate(grid *Grid, clock time.Duration, tn *Tuning) (FoodItem, bool) {
	c, ok := fs.pickFreeCell(grid)
	if !ok {
		return FoodItem{}, false
	}
	item := FoodItem{
		Pos:       c,
		Kind:      fs.pickKind(),
		SpawnedAt: clock,
		Lifetime:  msDur(fs.rng.Range(tn.AmbientLifeMinMs, tn.AmbientLifeMaxMs)),
	}
	fs.Items = append(fs.Items, item)
	return item, true
}

// CheatSpawn spawns a player-triggered cherry with a lifetime from the
// cheat range.
func (fs *FoodSet) CheatSpawn(grid *Grid, clock time.Duration, tn *Tuning) (FoodItem, bool) {
	c, ok := fs.pickFreeCell(grid)
	if !ok {
		return FoodItem{}, false
	}
	item := FoodItem{
		Pos:       c,
		Kind:      FoodCherry,
		SpawnedAt: clock,
		Lifetime:  msDur(fs.rng.Range(tn.CheatLifeMinMs, tn.CheatLifeMaxMs)),
	}
	fs.Items = append(fs.Items, item)
	return item, true
}

// ManageTick expires aged items and ambient-spawns when the randomized gap
// has elapsed. dt is the time since the previous food tick.
func (fs *FoodSet) ManageTick(grid *Grid, clock, dt time.Duration, tn *Tuning, bus *EventBus) {
	for i := 0; i < len(fs.Items); {
		it := fs.Items[i]
		if clock-it.SpawnedAt >= it.Lifetime {
			fs.Items = append(fs.Items[:i], fs.Items[i+1:]...)
			if bus != nil {
				bus.Emit(Event{Type: EventFoodExpired, Cell: it.Pos, Data: int(it.Kind)})
			}
			continue
		}
		i++
	}

	fs.gapLeft -= dt
	if fs.gapLeft > 0 {
		return
	}
	if item, ok := fs.Generate(grid, clock, tn); ok && bus != nil {
		bus.Emit(Event{Type: EventFoodSpawned, Cell: item.Pos, Data: int(item.Kind)})
	}
	fs.rollGap(tn)
}

// CheckEaten returns the index of the item under head, or -1.
func (fs *FoodSet) CheckEaten(head Cell) int { return fs.At(head) }

// Remove pops and returns the item at index.
func (fs *FoodSet) Remove(index int) FoodItem {
	it := fs.Items[index]
	fs.Items = append(fs.Items[:index], fs.Items[index+1:]...)
	return it
}

// Nearest returns the item closest to c by squared Euclidean distance.
// ok is false when no food is live.
func (fs *FoodSet) Nearest(c Cell) (FoodItem, bool) {
	best := -1
	bestD := 0
	for i := range fs.Items {
		dx := fs.Items[i].Pos.X - c.X
		dy := fs.Items[i].Pos.Y - c.Y
		d := dx*dx + dy*dy
		if best < 0 || d < bestD {
			best = i
			bestD = d
		}
	}
	if best < 0 {
		return FoodItem{}, false
	}
	return fs.Items[best], true
}
