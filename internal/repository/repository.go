// Package repository persists finished matches and their event logs to
// PostgreSQL. Persistence is optional at runtime; the engine core never
// imports this package.
package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/emberforge/ember-server-go/internal/config"
	"github.com/emberforge/ember-server-go/internal/game/state"
)

// DB wraps the shared connection pool.
type DB struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewDB opens and pings a connection pool.
func NewDB(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*DB, error) {
	pool, err := pgxpool.New(ctx, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("create postgres pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &DB{pool: pool, logger: logger}, nil
}

func (db *DB) Close() { db.pool.Close() }

// Stats exposes pool statistics for startup logging.
func (db *DB) Stats() *pgxpool.Stat { return db.pool.Stat() }

const schema = `
CREATE TABLE IF NOT EXISTS matches (
	id           TEXT PRIMARY KEY,
	winner       TEXT NOT NULL DEFAULT '',
	turns        INT NOT NULL,
	seed         BIGINT NOT NULL,
	checksum     TEXT NOT NULL,
	finished_at  TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS match_events (
	match_id  TEXT NOT NULL REFERENCES matches(id) ON DELETE CASCADE,
	seq       INT NOT NULL,
	kind      TEXT NOT NULL,
	turn      INT NOT NULL,
	player    TEXT NOT NULL DEFAULT '',
	entity    TEXT NOT NULL DEFAULT '',
	action    TEXT NOT NULL DEFAULT '',
	amount    INT NOT NULL DEFAULT 0,
	PRIMARY KEY (match_id, seq)
);
`

// Migrate creates the schema if it does not exist.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}

// MatchRecord is one finished game's summary row.
type MatchRecord struct {
	ID         string
	Winner     string
	Turns      int
	Seed       int64
	Checksum   string
	FinishedAt time.Time
}

// MatchRepository stores match summaries and event logs.
type MatchRepository struct {
	db *DB
}

func NewMatchRepository(db *DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) SaveMatch(ctx context.Context, rec MatchRecord) error {
	_, err := r.db.pool.Exec(ctx,
		`INSERT INTO matches (id, winner, turns, seed, checksum, finished_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		rec.ID, rec.Winner, rec.Turns, rec.Seed, rec.Checksum, rec.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("insert match %s: %w", rec.ID, err)
	}
	return nil
}

// SaveEvents stores a match's full event log in stream order.
func (r *MatchRepository) SaveEvents(ctx context.Context, matchID string, events []state.Event) error {
	batch := &pgx.Batch{}
	for i, ev := range events {
		batch.Queue(
			`INSERT INTO match_events (match_id, seq, kind, turn, player, entity, action, amount)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			matchID, i, ev.Kind, ev.Turn, ev.Player, ev.Entity, ev.Action, ev.Amount,
		)
	}
	results := r.db.pool.SendBatch(ctx, batch)
	defer results.Close()
	for range events {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("insert events for match %s: %w", matchID, err)
		}
	}
	return nil
}

// RecentMatches returns the latest finished matches, newest first.
func (r *MatchRepository) RecentMatches(ctx context.Context, limit int) ([]MatchRecord, error) {
	rows, err := r.db.pool.Query(ctx,
		`SELECT id, winner, turns, seed, checksum, finished_at
		 FROM matches ORDER BY finished_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("query matches: %w", err)
	}
	defer rows.Close()

	var out []MatchRecord
	for rows.Next() {
		var rec MatchRecord
		if err := rows.Scan(&rec.ID, &rec.Winner, &rec.Turns, &rec.Seed, &rec.Checksum, &rec.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan match row: %w", err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
