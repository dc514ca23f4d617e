// Package persistence provides a SQLite journal of simulation runs: one row
// per run, one per turn report, and the events each turn produced. The
// journal is append-only analytics; games are never restored from it.
package persistence

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/hexsim/internal/engine"
)

// Journal wraps a SQLite connection for run records.
type Journal struct {
	conn *sqlx.DB
}

// Run describes one recorded simulation.
type Run struct {
	ID         string `db:"id"`
	Seed       int64  `db:"seed"`
	Radius     int    `db:"radius"`
	Terrain    string `db:"terrain"`
	StartedAt  int64  `db:"started_at"`  // Unix seconds
	FinishedAt *int64 `db:"finished_at"` // Nil while running
	Turns      int    `db:"turns"`
	GameOver   bool   `db:"game_over"`
}

// Started returns the start time of the run.
func (r Run) Started() time.Time {
	return time.Unix(r.StartedAt, 0)
}

// TurnRecord is the stored form of an engine.TurnReport.
type TurnRecord struct {
	Turn      int  `db:"turn"`
	Produced  int  `db:"produced"`
	Delivered int  `db:"delivered"`
	Rejected  int  `db:"rejected"`
	Lost      int  `db:"lost"`
	InTransit int  `db:"in_transit"`
	Destroyed int  `db:"destroyed"`
	Grown     bool `db:"grown"`
	GameOver  bool `db:"game_over"`
}

// Open opens or creates a SQLite journal at the given path.
func Open(path string) (*Journal, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	j := &Journal{conn: conn}
	if err := j.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return j, nil
}

// Close closes the database connection.
func (j *Journal) Close() error {
	return j.conn.Close()
}

func (j *Journal) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		radius INTEGER NOT NULL,
		terrain TEXT NOT NULL,
		started_at INTEGER NOT NULL,
		finished_at INTEGER,
		turns INTEGER NOT NULL DEFAULT 0,
		game_over INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS turns (
		run_id TEXT NOT NULL REFERENCES runs(id),
		turn INTEGER NOT NULL,
		produced INTEGER NOT NULL,
		delivered INTEGER NOT NULL,
		rejected INTEGER NOT NULL,
		lost INTEGER NOT NULL,
		in_transit INTEGER NOT NULL,
		destroyed INTEGER NOT NULL,
		grown INTEGER NOT NULL,
		game_over INTEGER NOT NULL,
		PRIMARY KEY (run_id, turn)
	);

	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES runs(id),
		turn INTEGER NOT NULL,
		description TEXT NOT NULL,
		category TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS journal_meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_run_turn ON events(run_id, turn);
	`
	_, err := j.conn.Exec(schema)
	return err
}

// StartRun records a new run and returns its identifier.
func (j *Journal) StartRun(seed int64, radius int, terrain string) (string, error) {
	id := uuid.NewString()
	_, err := j.conn.Exec(
		"INSERT INTO runs (id, seed, radius, terrain, started_at) VALUES (?, ?, ?, ?, ?)",
		id, seed, radius, terrain, time.Now().Unix(),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	slog.Info("journal run started", "run", id, "seed", seed)
	return id, nil
}

// RecordTurn appends a turn report and its events.
func (j *Journal) RecordTurn(runID string, r engine.TurnReport) error {
	tx, err := j.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO turns
		(run_id, turn, produced, delivered, rejected, lost, in_transit, destroyed, grown, game_over)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, r.Turn, r.Produced, r.Delivered, r.Rejected, r.Lost,
		r.InTransit, len(r.Destroyed), r.Grown, r.GameOver,
	)
	if err != nil {
		return fmt.Errorf("insert turn %d: %w", r.Turn, err)
	}

	for _, e := range r.Events {
		_, err := tx.Exec(
			"INSERT INTO events (run_id, turn, description, category) VALUES (?, ?, ?, ?)",
			runID, e.Turn, e.Description, e.Category,
		)
		if err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
	}

	if _, err := tx.Exec("UPDATE runs SET turns = ? WHERE id = ?", r.Turn, runID); err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	return tx.Commit()
}

// FinishRun marks a run as complete.
func (j *Journal) FinishRun(runID string, turns int, gameOver bool) error {
	res, err := j.conn.Exec(
		"UPDATE runs SET finished_at = ?, turns = ?, game_over = ? WHERE id = ?",
		time.Now().Unix(), turns, gameOver, runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("finish run: unknown run %s", runID)
	}
	slog.Info("journal run finished", "run", runID, "turns", turns, "game_over", gameOver)
	return nil
}

// Runs returns the most recent runs, newest first.
func (j *Journal) Runs(limit int) ([]Run, error) {
	var runs []Run
	err := j.conn.Select(&runs,
		"SELECT id, seed, radius, terrain, started_at, finished_at, turns, game_over FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?",
		limit,
	)
	return runs, err
}

// Turns returns every recorded turn of a run in order.
func (j *Journal) Turns(runID string) ([]TurnRecord, error) {
	var turns []TurnRecord
	err := j.conn.Select(&turns,
		`SELECT turn, produced, delivered, rejected, lost, in_transit, destroyed, grown, game_over
		FROM turns WHERE run_id = ? ORDER BY turn`,
		runID,
	)
	return turns, err
}

// RecentEvents returns the most recent N events of a run.
func (j *Journal) RecentEvents(runID string, limit int) ([]engine.Event, error) {
	var events []engine.Event
	err := j.conn.Select(&events,
		"SELECT turn, description, category FROM events WHERE run_id = ? ORDER BY id DESC LIMIT ?",
		runID, limit,
	)
	return events, err
}

// SaveMeta stores a key-value pair in journal metadata.
func (j *Journal) SaveMeta(key, value string) error {
	_, err := j.conn.Exec(
		"INSERT OR REPLACE INTO journal_meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (j *Journal) GetMeta(key string) (string, error) {
	var value string
	err := j.conn.Get(&value, "SELECT value FROM journal_meta WHERE key = ?", key)
	return value, err
}
