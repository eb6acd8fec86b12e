package oracle

import (
	"context"
	"math/big"
	"sync"
)

// Default values for a local fixed feed: 2000 reference units per native
// unit at 8-digit scale, matching common test deployments.
const (
	DefaultFixedPrice    = 2000_00000000
	DefaultFixedDecimals = 8
	DefaultFixedVersion  = 4
)

// FixedFeed is a PriceFeed returning a constant price. It stands in for a
// live oracle on local and test networks.
type FixedFeed struct {
	mu       sync.RWMutex
	price    *big.Int
	decimals uint8
	version  uint64
	err      error
}

// NewFixedFeed creates a feed pinned to the given price and scale.
func NewFixedFeed(price *big.Int, decimals uint8, version uint64) *FixedFeed {
	return &FixedFeed{
		price:    new(big.Int).Set(price),
		decimals: decimals,
		version:  version,
	}
}

// NewDefaultFixedFeed creates a feed with the standard local values.
func NewDefaultFixedFeed() *FixedFeed {
	return NewFixedFeed(big.NewInt(DefaultFixedPrice), DefaultFixedDecimals, DefaultFixedVersion)
}

// LatestPrice returns the pinned price.
func (f *FixedFeed) LatestPrice(ctx context.Context) (Price, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.err != nil {
		return Price{}, f.err
	}
	p := Price{Value: new(big.Int).Set(f.price), Decimals: f.decimals}
	if err := p.Validate(); err != nil {
		return Price{}, err
	}
	return p, nil
}

// Version returns the pinned version.
func (f *FixedFeed) Version(ctx context.Context) (uint64, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.version, nil
}

// SetPrice repins the feed, letting tests move the market.
func (f *FixedFeed) SetPrice(price *big.Int, decimals uint8) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.price = new(big.Int).Set(price)
	f.decimals = decimals
}

// Fail makes every subsequent LatestPrice call return err. Pass nil to
// restore normal operation.
func (f *FixedFeed) Fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

var _ PriceFeed = (*FixedFeed)(nil)
