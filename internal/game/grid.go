package game

import "fmt"

// Dir is a cardinal movement direction.
type Dir uint8

const (
	DirUp Dir = iota
	DirDown
	DirLeft
	DirRight
)

// Delta returns the one-cell offset for the direction.
// Up decreases Y (screen coordinates).
func (d Dir) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	}
	return 0, 0
}

func (d Dir) Opposite() Dir {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	case DirRight:
		return DirLeft
	}
	return d
}

func (d Dir) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	}
	return fmt.Sprintf("dir(%d)", uint8(d))
}

// Cell is one grid coordinate.
type Cell struct {
	X, Y int
}

// Grid owns the snake segment list and every occupancy query against it.
// segments[0] is the head; the slice never becomes empty.
type Grid struct {
	tileCount int
	segments  []Cell
	growing   bool
}

// NewGrid creates a board with the snake at its start position:
// head on the centre cell, body extending left, heading right.
func NewGrid(tileCount int) *Grid {
	g := &Grid{}
	g.Reset(tileCount)
	return g
}

// Reset re-places the start snake on a (possibly resized) board.
func (g *Grid) Reset(tileCount int) {
	g.tileCount = clamp(tileCount, MinTileCount, MaxTileCount)
	cx := g.tileCount / 2
	cy := g.tileCount / 2
	g.segments = g.segments[:0]
	for i := 0; i < StartLength; i++ {
		g.segments = append(g.segments, Cell{X: cx - i, Y: cy})
	}
	g.growing = false
}

func (g *Grid) TileCount() int { return g.tileCount }

func (g *Grid) Len() int { return len(g.segments) }

func (g *Grid) Head() Cell { return g.segments[0] }

// Segments returns the live segment slice. Callers that need to keep the
// data across ticks must copy it (Snapshot does).
func (g *Grid) Segments() []Cell { return g.segments }

// NextHead returns the head translated one cell in d. Pure; no bounds clamp.
func (g *Grid) NextHead(d Dir) Cell {
	dx, dy := d.Delta()
	h := g.segments[0]
	return Cell{X: h.X + dx, Y: h.Y + dy}
}

// InBounds reports whether c lies inside [0,tileCount) on both axes.
func (g *Grid) InBounds(c Cell) bool {
	return c.X >= 0 && c.X < g.tileCount && c.Y >= 0 && c.Y < g.tileCount
}

// Occupies reports whether any segment sits on (x, y).
// skipHead excludes segment 0 from the check.
func (g *Grid) Occupies(x, y int, skipHead bool) bool {
	start := 0
	if skipHead {
		start = 1
	}
	for i := start; i < len(g.segments); i++ {
		if g.segments[i].X == x && g.segments[i].Y == y {
			return true
		}
	}
	return false
}

// SegmentAt returns the index of the segment on c, or -1.
func (g *Grid) SegmentAt(c Cell) int {
	for i := range g.segments {
		if g.segments[i] == c {
			return i
		}
	}
	return -1
}

// Move prepends c as the new head. Unless a Grow is pending the tail is
// dropped, keeping length constant; a pending Grow is consumed instead.
func (g *Grid) Move(c Cell) {
	g.segments = append(g.segments, Cell{})
	copy(g.segments[1:], g.segments)
	g.segments[0] = c
	if g.growing {
		g.growing = false
		return
	}
	g.segments = g.segments[:len(g.segments)-1]
}

// Grow arms a one-shot flag consumed by the next Move.
func (g *Grid) Grow() { g.growing = true }

// CutTailAt truncates the snake to [0, index) and returns the number of
// segments removed. Index 0 would empty the snake; such calls are refused.
func (g *Grid) CutTailAt(index int) int {
	if index <= 0 || index >= len(g.segments) {
		return 0
	}
	removed := len(g.segments) - index
	g.segments = g.segments[:index]
	return removed
}

// dirCandidates returns the three directions that are not the reverse of
// current, in randomized order.
func dirCandidates(current Dir, rng *Rand) [3]Dir {
	var cand [3]Dir
	n := 0
	for _, d := range [4]Dir{DirUp, DirDown, DirLeft, DirRight} {
		if d == current.Opposite() {
			continue
		}
		cand[n] = d
		n++
	}
	// Fisher-Yates over the fixed three entries.
	for i := 2; i > 0; i-- {
		j := rng.Intn(i + 1)
		cand[i], cand[j] = cand[j], cand[i]
	}
	return cand
}

// SafeDirections returns, in randomized order, every non-reverse direction
// whose next head cell satisfies isSafe.
func (g *Grid) SafeDirections(current Dir, rng *Rand, isSafe func(Cell) bool) []Dir {
	cand := dirCandidates(current, rng)
	safe := make([]Dir, 0, 3)
	for _, d := range cand {
		if isSafe(g.NextHead(d)) {
			safe = append(safe, d)
		}
	}
	return safe
}

// FindSafeDirection returns the first safe non-reverse direction in
// randomized try order, or false when none exists. The randomized order
// keeps repeated escapes from always favouring the same turn.
func (g *Grid) FindSafeDirection(current Dir, rng *Rand, isSafe func(Cell) bool) (Dir, bool) {
	cand := dirCandidates(current, rng)
	for _, d := range cand {
		if isSafe(g.NextHead(d)) {
			return d, true
		}
	}
	return current, false
}
