// Package scoreboard persists retired players' final scores in a
// SQLite database and serves the public /api/v1/game/records feed.
package scoreboard

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/dogwalk/server/internal/game/world"
)

const schema = `
CREATE TABLE IF NOT EXISTS retired_players (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	score INTEGER NOT NULL,
	play_time_ms INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_retired_players_rank
	ON retired_players (score DESC, play_time_ms ASC, name ASC);
`

// maxRecordsPerQuery caps GetRecords regardless of what the caller asks
// for, per spec §6's /records contract.
const maxRecordsPerQuery = 100

// Store is a world.Database backed by SQLite, opened with a bounded
// connection pool sized to workerCount.
type Store struct {
	db   *sql.DB
	pool *connectionPool
}

// Open creates (or attaches to) the SQLite database at dbURL, ensures
// the schema exists, and sizes the connection pool to workerCount.
func Open(dbURL string, workerCount int) (*Store, error) {
	db, err := sql.Open("sqlite", dbURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	if workerCount < 1 {
		workerCount = 1
	}
	pool, err := newConnectionPool(context.Background(), db, workerCount)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("build connection pool: %w", err)
	}

	return &Store{db: db, pool: pool}, nil
}

func (s *Store) Close() error {
	s.pool.Close()
	return s.db.Close()
}

// SaveRecord inserts one retired-player row, satisfying world.Database.
func (s *Store) SaveRecord(name string, score int, playMs uint64) error {
	conn, slot := s.pool.acquire()
	defer s.pool.release(slot)

	_, err := conn.ExecContext(context.Background(),
		`INSERT INTO retired_players (id, name, score, play_time_ms) VALUES (?, ?, ?, ?)`,
		uuid.NewString(), name, score, playMs,
	)
	if err != nil {
		return fmt.Errorf("save record: %w", err)
	}
	return nil
}

// GetRecords returns up to limit records (clamped to
// maxRecordsPerQuery; limit<=0 defaults to maxRecordsPerQuery) starting
// at offset, ranked by score desc, then play time asc, then name asc.
func (s *Store) GetRecords(limit, offset int) ([]world.Record, error) {
	if limit <= 0 || limit > maxRecordsPerQuery {
		limit = maxRecordsPerQuery
	}
	if offset < 0 {
		offset = 0
	}

	conn, slot := s.pool.acquire()
	defer s.pool.release(slot)

	rows, err := conn.QueryContext(context.Background(),
		`SELECT name, score, play_time_ms FROM retired_players
		 ORDER BY score DESC, play_time_ms ASC, name ASC
		 LIMIT ? OFFSET ?`,
		limit, offset,
	)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var records []world.Record
	for rows.Next() {
		var r world.Record
		if err := rows.Scan(&r.Name, &r.Score, &r.PlayTimeMs); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
