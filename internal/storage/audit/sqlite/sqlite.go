// Package sqlite implements the audit store on an embedded SQLite database.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/fundvault/fundvaultd/internal/core/types"
	"github.com/fundvault/fundvaultd/internal/storage/audit"
)

const schema = `
CREATE TABLE IF NOT EXISTS contributions (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	funder     TEXT NOT NULL,
	native     TEXT NOT NULL,
	reference  TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS withdrawals (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	owner      TEXT NOT NULL,
	native     TEXT NOT NULL,
	funders    INTEGER NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_contributions_funder ON contributions(funder);
`

// Store is a SQLite backed audit.Store.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the audit database at path and initializes the
// schema.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open audit db: %w", err)
	}
	// modernc sqlite serializes writes itself; one connection avoids
	// SQLITE_BUSY under concurrent RPC handlers.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init audit schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) RecordContribution(ctx context.Context, c audit.Contribution) error {
	const query = `INSERT INTO contributions (funder, native, reference, created_at) VALUES (?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query, c.Funder.String(), c.Native, c.Reference, c.CreatedAt.UTC())
	return err
}

func (s *Store) RecordWithdrawal(ctx context.Context, w audit.Withdrawal) error {
	const query = `INSERT INTO withdrawals (owner, native, funders, created_at) VALUES (?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query, w.Owner.String(), w.Native, w.Funders, w.CreatedAt.UTC())
	return err
}

func (s *Store) Contributions(ctx context.Context, limit int) ([]audit.Contribution, error) {
	const query = `SELECT funder, native, reference, created_at FROM contributions ORDER BY id DESC LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []audit.Contribution
	for rows.Next() {
		var (
			funder    string
			c         audit.Contribution
			createdAt time.Time
		)
		if err := rows.Scan(&funder, &c.Native, &c.Reference, &createdAt); err != nil {
			return nil, err
		}
		addr, err := types.ParseAddress(funder)
		if err != nil {
			return nil, fmt.Errorf("corrupt funder column: %w", err)
		}
		c.Funder = addr
		c.CreatedAt = createdAt
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) Close() error {
	return s.db.Close()
}

var _ audit.Store = (*Store)(nil)
