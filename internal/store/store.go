// Package store persists finished runs to a local SQLite database.
package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	played_at   TIMESTAMP NOT NULL,
	score       INTEGER NOT NULL,
	peak_len    INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	tile_count  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS runs_score ON runs(score DESC);
`

// Run is one finished game.
type Run struct {
	ID        string        `json:"id"`
	PlayedAt  time.Time     `json:"played_at"`
	Score     int           `json:"score"`
	PeakLen   int           `json:"peak_len"`
	Duration  time.Duration `json:"-"`
	TileCount int           `json:"tile_count"`

	DurationMS int64 `json:"duration_ms"`
}

// Store wraps the runs database. It satisfies game.ScoreStore.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the database at path. Use ":memory:" for
// an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// SaveRun records one finished game.
func (s *Store) SaveRun(score, peakLen, tileCount int, duration time.Duration) error {
	_, err := s.db.Exec(
		`INSERT INTO runs (id, played_at, score, peak_len, duration_ms, tile_count)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), time.Now().UTC(), score, peakLen,
		duration.Milliseconds(), tileCount,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// HighScore returns the best score across all recorded runs, zero when the
// table is empty.
func (s *Store) HighScore() (int, error) {
	var best sql.NullInt64
	err := s.db.QueryRow(`SELECT MAX(score) FROM runs`).Scan(&best)
	if err != nil {
		return 0, fmt.Errorf("query high score: %w", err)
	}
	return int(best.Int64), nil
}

// TopScores returns up to n best runs ordered by score descending.
func (s *Store) TopScores(n int) ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT id, played_at, score, peak_len, duration_ms, tile_count
		 FROM runs ORDER BY score DESC, played_at ASC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("query top scores: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.PlayedAt, &r.Score, &r.PeakLen,
			&r.DurationMS, &r.TileCount); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.Duration = time.Duration(r.DurationMS) * time.Millisecond
		out = append(out, r)
	}
	return out, rows.Err()
}
