package oracle

import (
	"context"
	"errors"
	"fmt"
	"math/big"
)

// MaxPriceDecimals is the largest fixed-point scale a feed may report.
// Anything above the native 18-digit scale cannot be represented.
const MaxPriceDecimals = 18

// ErrUnavailable indicates the feed could not supply a usable price:
// the upstream call failed, or it reported a zero or negative value.
// Callers treat this as a hard failure, never as a value to clamp.
var ErrUnavailable = errors.New("oracle: price unavailable")

// Price is one snapshot from a feed. Value is an integer scaled by
// 10^Decimals (a Decimals of 8 means Value is the price times 10^8).
// Snapshots are ephemeral: nothing in this package caches them.
type Price struct {
	Value    *big.Int
	Decimals uint8
}

// PriceFeed is the consumed side of an external price oracle.
type PriceFeed interface {
	// LatestPrice returns the current price snapshot. Implementations
	// must fetch fresh on every call.
	LatestPrice(ctx context.Context) (Price, error)

	// Version forwards the feed's own version integer. Diagnostics only;
	// it has no effect on correctness.
	Version(ctx context.Context) (uint64, error)
}

// Validate rejects degenerate snapshots. A feed MAY hand back non-positive
// or over-scaled values; they surface here as ErrUnavailable.
func (p Price) Validate() error {
	if p.Value == nil || p.Value.Sign() <= 0 {
		return fmt.Errorf("%w: non-positive price", ErrUnavailable)
	}
	if p.Decimals > MaxPriceDecimals {
		return fmt.Errorf("%w: price scale %d exceeds maximum %d", ErrUnavailable, p.Decimals, MaxPriceDecimals)
	}
	return nil
}
