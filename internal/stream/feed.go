// Package stream serves a read-only spectator view of a running game over
// HTTP and WebSocket.
package stream

import (
	"sync"

	"github.com/adrianov/snake-sub000/internal/game"
)

// Feed hands the latest snapshot from the game loop to HTTP handlers. The
// game loop publishes from the render thread; handlers read from goroutines.
type Feed struct {
	mu   sync.RWMutex
	snap game.Snapshot
	seen bool
}

func NewFeed() *Feed { return &Feed{} }

// Publish replaces the latest snapshot. Safe for one writer, many readers.
func (f *Feed) Publish(s game.Snapshot) {
	f.mu.Lock()
	f.snap = s
	f.seen = true
	f.mu.Unlock()
}

// Latest returns the most recent snapshot and whether one has been
// published yet.
func (f *Feed) Latest() (game.Snapshot, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.snap, f.seen
}
