// Package audit records accepted contributions and withdrawals in a
// relational database for offline inspection. The vault treats the audit
// write as part of the operation: if it fails, the operation fails.
package audit

import (
	"context"
	"time"

	"github.com/fundvault/fundvaultd/internal/core/types"
)

// Contribution is one accepted fund operation.
type Contribution struct {
	Funder    types.Address
	Native    string // native base units, decimal
	Reference string // reference base units at acceptance time, decimal
	CreatedAt time.Time
}

// Withdrawal is one successful withdraw operation.
type Withdrawal struct {
	Owner     types.Address
	Native    string // native base units transferred, decimal
	Funders   int    // number of funder entries cleared
	CreatedAt time.Time
}

// Store is the audit sink. Implementations must be safe for concurrent use.
type Store interface {
	RecordContribution(ctx context.Context, c Contribution) error
	RecordWithdrawal(ctx context.Context, w Withdrawal) error

	// Contributions returns recorded contributions, newest first, up to limit.
	Contributions(ctx context.Context, limit int) ([]Contribution, error)

	Close() error
}

// Nop is a Store that records nothing. Used when auditing is disabled.
type Nop struct{}

func (Nop) RecordContribution(ctx context.Context, c Contribution) error { return nil }
func (Nop) RecordWithdrawal(ctx context.Context, w Withdrawal) error     { return nil }
func (Nop) Contributions(ctx context.Context, limit int) ([]Contribution, error) {
	return nil, nil
}
func (Nop) Close() error { return nil }

var _ Store = Nop{}
