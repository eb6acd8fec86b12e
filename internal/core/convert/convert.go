// Package convert turns native-unit amounts into reference-currency amounts
// using a live price feed.
package convert

import (
	"context"
	"math/big"

	"github.com/fundvault/fundvaultd/internal/core/amount"
	"github.com/fundvault/fundvaultd/internal/core/oracle"
)

var ten = big.NewInt(10)

// ToReference converts a native amount to the reference currency at the
// feed's current price. The price is re-read on every call; nothing is
// cached, so the result tracks the live market.
//
// The computation is ref = native * price * 10^(18-decimals) / 10^18 in
// integer arithmetic: multiply first to preserve precision, then one final
// truncating division (round toward zero, never up).
func ToReference(ctx context.Context, n amount.Native, feed oracle.PriceFeed) (amount.Reference, error) {
	p, err := feed.LatestPrice(ctx)
	if err != nil {
		return amount.Reference{}, err
	}
	if err := p.Validate(); err != nil {
		return amount.Reference{}, err
	}

	// Rescale the price to 18 fractional digits, multiply, then strip the
	// doubled scale.
	rescale := new(big.Int).Exp(ten, big.NewInt(int64(amount.Decimals-p.Decimals)), nil)
	ref := new(big.Int).Mul(n.Base(), p.Value)
	ref.Mul(ref, rescale)
	ref.Quo(ref, amount.UnitScale)

	return amount.NewReference(ref), nil
}
