package game

// OutcomeKind classifies what happens when the head enters its next cell.
type OutcomeKind int

const (
	OutcomeMove OutcomeKind = iota
	OutcomeTailCut
	OutcomeLuck
	OutcomeDeath
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeMove:
		return "move"
	case OutcomeTailCut:
		return "tail-cut"
	case OutcomeLuck:
		return "luck"
	case OutcomeDeath:
		return "death"
	}
	return "outcome(?)"
}

// Resolution is the resolver's verdict for one tick. Next is the cell the
// head moves into (unset for death); Dir is the redirected heading on a
// luck escape; CutIndex is where the tail is severed on a tail-cut.
type Resolution struct {
	Kind     OutcomeKind
	Next     Cell
	Dir      Dir
	CutIndex int
}

// Resolver classifies the next head cell each tick: safe move, tail-cut,
// luck-redirect, or death.
type Resolver struct {
	grid *Grid
	food *FoodSet
	rng  *Rand
}

func NewResolver(grid *Grid, food *FoodSet, rng *Rand) *Resolver {
	return &Resolver{grid: grid, food: food, rng: rng}
}

func (r *Resolver) isSafe(c Cell) bool {
	return r.grid.InBounds(c) && !r.grid.Occupies(c.X, c.Y, true)
}

// Resolve decides the outcome of moving into next while heading current.
//
// Order: wall check, then self check; no collision means a plain move.
// A self-collision rolls for a tail-cut first; a failed roll (or any wall
// hit, which has no tail to cut) rolls for a luck escape; only when both
// ways out are exhausted does the snake die. A self-collision whose
// segment index resolves to the head goes straight to death rather than
// risking an empty snake.
func (r *Resolver) Resolve(next Cell, current Dir, luckEnabled bool, tn *Tuning) Resolution {
	wall := !r.grid.InBounds(next)
	self := !wall && r.grid.Occupies(next.X, next.Y, true)

	if !wall && !self {
		return Resolution{Kind: OutcomeMove, Next: next}
	}

	if self && r.rng.Chance(tn.TailCutProbability) {
		idx := r.grid.SegmentAt(next)
		if idx > 0 {
			return Resolution{Kind: OutcomeTailCut, Next: next, CutIndex: idx}
		}
		return Resolution{Kind: OutcomeDeath}
	}

	if luckEnabled && r.rng.Chance(tn.LuckProbability) {
		if d, ok := r.escapeDirection(current); ok {
			return Resolution{Kind: OutcomeLuck, Next: r.grid.NextHead(d), Dir: d}
		}
	}

	return Resolution{Kind: OutcomeDeath}
}

// escapeDirection picks among ALL safe non-reverse directions the one whose
// resulting cell is closest to the nearest live food, so escapes steer
// toward fruit instead of wandering. With no food live the randomized
// candidate order makes the pick arbitrary.
func (r *Resolver) escapeDirection(current Dir) (Dir, bool) {
	safe := r.grid.SafeDirections(current, r.rng, r.isSafe)
	if len(safe) == 0 {
		return current, false
	}

	target, hasFood := r.food.Nearest(r.grid.Head())
	if !hasFood {
		return safe[0], true
	}

	best := safe[0]
	bestD := -1
	for _, d := range safe {
		c := r.grid.NextHead(d)
		dx := c.X - target.Pos.X
		dy := c.Y - target.Pos.Y
		dist := dx*dx + dy*dy
		if bestD < 0 || dist < bestD {
			best = d
			bestD = dist
		}
	}
	return best, true
}
