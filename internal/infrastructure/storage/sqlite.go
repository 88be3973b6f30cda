package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"svw.info/any4/internal/domain"
)

// DefaultPoolDB is the SQLite file name used inside the data dir.
const DefaultPoolDB = "difficulty_pools.db"

// SQLite stores the pool map as one row per multiset in pools, plus one row
// per target in targets so targets with no multisets survive a round trip.
type SQLite struct {
	path string
	db   *sql.DB
}

// NewSQLite opens (creating if needed) the database at path.
func NewSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir %s: %w", dir, err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	return &SQLite{path: path, db: db}, nil
}

func (s *SQLite) Close() error { return s.db.Close() }

// Prepare runs the schema migration.
func (s *SQLite) Prepare(ctx context.Context) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS pools (
			target TEXT NOT NULL,
			difficulty TEXT NOT NULL,
			position INTEGER NOT NULL,
			input TEXT NOT NULL,
			PRIMARY KEY (target, difficulty, position)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_pools_target ON pools(target)`,
		`CREATE TABLE IF NOT EXISTS targets (
			target TEXT PRIMARY KEY
		)`,
	}
	for _, m := range migrations {
		if _, err := s.db.ExecContext(ctx, m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// Exists reports whether any target has been written.
func (s *SQLite) Exists(ctx context.Context) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'targets'`).Scan(&n)
	if err != nil || n == 0 {
		return false, err
	}
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM targets`).Scan(&n); err != nil {
		return false, err
	}
	return n > 0, nil
}

// Save replaces the stored pools wholesale in one transaction.
func (s *SQLite) Save(ctx context.Context, m domain.PoolMap) error {
	if err := s.Prepare(ctx); err != nil {
		return err
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"pools", "targets"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	targets, err := tx.PrepareContext(ctx, `INSERT INTO targets (target) VALUES (?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer targets.Close()
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO pools (target, difficulty, position, input) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, target := range m.Targets() {
		p := m[target]
		if _, err := targets.ExecContext(ctx, target); err != nil {
			return fmt.Errorf("failed to insert target row: %w", err)
		}
		if p == nil {
			continue
		}
		for _, d := range domain.Difficulties {
			for pos, in := range *p.Pool(d) {
				b, err := json.Marshal(in)
				if err != nil {
					return err
				}
				if _, err := stmt.ExecContext(ctx, target, d.String(), pos, string(b)); err != nil {
					return fmt.Errorf("failed to insert pool row: %w", err)
				}
			}
		}
	}
	return tx.Commit()
}

func (s *SQLite) Load(ctx context.Context) (domain.PoolMap, error) {
	out, err := s.loadTargets(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT target, difficulty, input FROM pools ORDER BY target, difficulty, position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query pools: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var target, diff, raw string
		if err := rows.Scan(&target, &diff, &raw); err != nil {
			return nil, err
		}
		d, err := domain.ParseDifficulty(diff)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		var in []int
		if err := json.Unmarshal([]byte(raw), &in); err != nil {
			return nil, fmt.Errorf("%w: target %s: %v", ErrMalformed, target, err)
		}
		p, ok := out[target]
		if !ok {
			p = domain.NewDifficultyPools()
			out[target] = p
		}
		p.Add(d, in)
	}
	return out, rows.Err()
}

func (s *SQLite) loadTargets(ctx context.Context) (domain.PoolMap, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT target FROM targets`)
	if err != nil {
		return nil, fmt.Errorf("failed to query targets: %w", err)
	}
	defer rows.Close()

	out := domain.PoolMap{}
	for rows.Next() {
		var target string
		if err := rows.Scan(&target); err != nil {
			return nil, err
		}
		out[target] = domain.NewDifficultyPools()
	}
	return out, rows.Err()
}
