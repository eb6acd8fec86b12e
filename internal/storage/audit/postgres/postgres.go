// Package postgres implements the audit store on PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/fundvault/fundvaultd/internal/core/types"
	"github.com/fundvault/fundvaultd/internal/storage/audit"
)

const schema = `
CREATE TABLE IF NOT EXISTS contributions (
	id         BIGSERIAL PRIMARY KEY,
	funder     TEXT NOT NULL,
	native     TEXT NOT NULL,
	reference  TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS withdrawals (
	id         BIGSERIAL PRIMARY KEY,
	owner      TEXT NOT NULL,
	native     TEXT NOT NULL,
	funders    INTEGER NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_contributions_funder ON contributions(funder);
`

// Store is a PostgreSQL backed audit.Store.
type Store struct {
	db *sql.DB
}

// Open connects to the database described by dsn, verifies the
// connection and initializes the schema.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open audit db: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping audit db: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init audit schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) RecordContribution(ctx context.Context, c audit.Contribution) error {
	const query = `INSERT INTO contributions (funder, native, reference, created_at) VALUES ($1, $2, $3, $4)`
	_, err := s.db.ExecContext(ctx, query, c.Funder.String(), c.Native, c.Reference, c.CreatedAt.UTC())
	return err
}

func (s *Store) RecordWithdrawal(ctx context.Context, w audit.Withdrawal) error {
	const query = `INSERT INTO withdrawals (owner, native, funders, created_at) VALUES ($1, $2, $3, $4)`
	_, err := s.db.ExecContext(ctx, query, w.Owner.String(), w.Native, w.Funders, w.CreatedAt.UTC())
	return err
}

func (s *Store) Contributions(ctx context.Context, limit int) ([]audit.Contribution, error) {
	const query = `SELECT funder, native, reference, created_at FROM contributions ORDER BY id DESC LIMIT $1`

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
