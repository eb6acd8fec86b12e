package vault

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/fundvault/fundvaultd/internal/core/types"
	"github.com/fundvault/fundvaultd/internal/storage/statestore"
)

// snapshot captures the vault's current state for persistence.
func (v *Vault) snapshot() statestore.Snapshot {
	return makeSnapshot(v.owner, v.balances, v.funders, v.held)
}

func makeSnapshot(owner types.Address, balances map[types.Address]*big.Int, funders []types.Address, held *big.Int) statestore.Snapshot {
	snap := statestore.Snapshot{
		Owner: owner.String(),
		Held:  held.String(),
	}

	snap.Balances = make([]statestore.BalanceRecord, 0, len(balances))
	for addr, b := range balances {
		snap.Balances = append(snap.Balances, statestore.BalanceRecord{
			Address: addr.String(),
			Amount:  b.String(),
		})
	}
	// Deterministic record order keeps snapshots byte-comparable.
	sort.Slice(snap.Balances, func(i, j int) bool {
		return snap.Balances[i].Address < snap.Balances[j].Address
	})

	snap.Funders = make([]string, len(funders))
	for i, addr := range funders {
		snap.Funders[i] = addr.String()
	}
	return snap
}

// restore replaces the vault's state with a stored snapshot. The stored
// owner must match the configured one: ownership is set exactly once.
func (v *Vault) restore(snap statestore.Snapshot) error {
	storedOwner, err := types.ParseAddress(snap.Owner)
	if err != nil {
		return fmt.Errorf("corrupt stored owner: %w", err)
	}
	if storedOwner != v.owner {
		return fmt.Errorf("stored owner %s does not match configured owner %s", storedOwner, v.owner)
	}

	balances := make(map[types.Address]*big.Int, len(snap.Balances))
	for _, rec := range snap.Balances {
		addr, err := types.ParseAddress(rec.Address)
		if err != nil {
			return fmt.Errorf("corrupt stored balance address: %w", err)
		}
		b, ok := new(big.Int).SetString(rec.Amount, 10)
		if !ok {
			return fmt.Errorf("corrupt stored balance amount %q", rec.Amount)
		}
		balances[addr] = b
	}

	funders := make([]types.Address, len(snap.Funders))
	for i, s := range snap.Funders {
		addr, err := types.ParseAddress(s)
		if err != nil {
			return fmt.Errorf("corrupt stored funder address: %w", err)
		}
		funders[i] = addr
	}

	held, ok := new(big.Int).SetString(snap.Held, 10)
	if !ok {
		return fmt.Errorf("corrupt stored held amount %q", snap.Held)
	}

	v.balances = balances
	v.funders = funders
	v.held = held
	return nil
}
