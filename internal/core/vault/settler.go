package vault

import (
	"context"

	"github.com/fundvault/fundvaultd/internal/core/amount"
	"github.com/fundvault/fundvaultd/internal/core/types"
)

// Settler is the host's native value transfer mechanism. The vault calls
// it exactly once per successful withdrawal, for the full held amount.
// A zero-amount transfer must succeed as a no-op.
type Settler interface {
	Transfer(ctx context.Context, to types.Address, amt amount.Native) error
}

// SettlerFunc adapts a function to the Settler interface.
type SettlerFunc func(ctx context.Context, to types.Address, amt amount.Native) error

func (f SettlerFunc) Transfer(ctx context.Context, to types.Address, amt amount.Native) error {
	return f(ctx, to, amt)
}

// NopSettler always succeeds. It models a host environment where value
// movement is carried by the surrounding transaction.
type NopSettler struct{}

func (NopSettler) Transfer(ctx context.Context, to types.Address, amt amount.Native) error {
	return nil
}

var _ Settler = NopSettler{}
