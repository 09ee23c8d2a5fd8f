package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"github.com/oklog/ulid/v2"

	"github.com/DVNghiem/veloxloop-bench/internal/report"
	"github.com/DVNghiem/veloxloop-bench/internal/results"
)

// Store persists benchmark runs to PostgreSQL so that historical runs can
// be compared across veloxloop releases.
type Store struct {
	db *sql.DB
}

// Open connects to PostgreSQL and creates the schema if needed.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) createSchema() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS bench_runs (
			id TEXT PRIMARY KEY,
			run_at TIMESTAMPTZ NOT NULL,
			env TEXT NOT NULL,
			cpu INT NOT NULL,
			pyver TEXT NOT NULL,
			veloxloop TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS bench_records (
			id TEXT PRIMARY KEY,
			run_id TEXT NOT NULL REFERENCES bench_runs(id) ON DELETE CASCADE,
			section TEXT NOT NULL,
			config_key TEXT NOT NULL,
			loop TEXT NOT NULL,
			rps DOUBLE PRECISION NOT NULL,
			mean_ms DOUBLE PRECISION NOT NULL,
			p99_ms DOUBLE PRECISION NOT NULL,
			min_ms DOUBLE PRECISION NOT NULL,
			max_ms DOUBLE PRECISION NOT NULL,
			UNIQUE (run_id, section, config_key, loop)
		)`,
	}
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// Save inserts one run and all of its records in a single transaction.
// Record rows get ULID keys, which sort by insertion time.
func (s *Store) Save(run *results.Run) error {
	runID := run.RunID
	if runID == "" {
		runID = uuid.NewString()
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO bench_runs (id, run_at, env, cpu, pyver, veloxloop) VALUES ($1, $2, $3, $4, $5, $6)`,
		runID, time.Unix(run.RunAt, 0).UTC(), run.Env, run.CPU, run.PyVer, run.Veloxloop,
	)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", runID, err)
	}

	for _, plan := range report.Select(run.Results) {
		for _, key := range plan.Keys {
			records := run.Results.Records(plan.Section.Key, key)
			for _, loop := range report.Loops {
				rec, ok := records[loop]
				if !ok {
					continue
				}
				_, err = tx.Exec(
					`INSERT INTO bench_records (id, run_id, section, config_key, loop, rps, mean_ms, p99_ms, min_ms, max_ms)
					 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
					ulid.Make().String(), runID, plan.Section.Key, key, loop,
					rec.RPS, rec.Mean, rec.P99, rec.Min, rec.Max,
				)
				if err != nil {
					return fmt.Errorf("insert record %s/%s/%s: %w", plan.Section.Key, key, loop, err)
				}
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run %s: %w", runID, err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
