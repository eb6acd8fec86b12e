// Package vault implements the contribution ledger: per-funder balances,
// an append-only funder log, oracle-valued acceptance and the owner-only
// withdrawal state machine. Every operation is all-or-nothing.
package vault

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/fundvault/fundvaultd/internal/core/amount"
	"github.com/fundvault/fundvaultd/internal/core/convert"
	"github.com/fundvault/fundvaultd/internal/core/oracle"
	"github.com/fundvault/fundvaultd/internal/core/types"
	"github.com/fundvault/fundvaultd/internal/events"
	"github.com/fundvault/fundvaultd/internal/storage/audit"
	"github.com/fundvault/fundvaultd/internal/storage/statestore"
)

// MinimumReference is the smallest accepted contribution value: 5
// reference units at 18-digit scale. Fixed at construction time.
var MinimumReference = amount.ReferenceFromUnits(5)

// Vault is one deployed contribution ledger. The owner and feed are set
// at construction and never change; balances, the funder log and the
// held total are mutated only by Fund and Withdraw.
//
// Operations are serialized by one mutex: the host delivers calls one at
// a time and no operation ever observes another mid-flight.
type Vault struct {
	mu sync.Mutex

	owner   types.Address
	feed    oracle.PriceFeed
	settler Settler
	state   *statestore.Store
	audit   audit.Store
	events  events.Publisher

	balances map[types.Address]*big.Int // cumulative native base units
	funders  []types.Address            // append log, duplicates intended
	held     *big.Int                   // total native base units held
}

// Options configures collaborators. Zero fields get no-op defaults;
// State may be nil for a purely in-memory vault.
type Options struct {
	Settler Settler
	State   *statestore.Store
	Audit   audit.Store
	Events  events.Publisher
}

// New creates a vault owned by owner, valuing contributions through
// feed. If a state store is supplied and holds a snapshot, the vault
// resumes from it; the stored owner must match.
func New(ctx context.Context, owner types.Address, feed oracle.PriceFeed, opts Options) (*Vault, error) {
	if feed == nil {
		return nil, errors.New("vault: price feed is required")
	}
	if opts.Settler == nil {
		opts.Settler = NopSettler{}
	}
	if opts.Audit == nil {
		opts.Audit = audit.Nop{}
	}
	if opts.Events == nil {
		opts.Events = events.NopPublisher{}
	}

	v := &Vault{
		owner:    owner,
		feed:     feed,
		settler:  opts.Settler,
		state:    opts.State,
		audit:    opts.Audit,
		events:   opts.Events,
		balances: make(map[types.Address]*big.Int),
		held:     new(big.Int),
	}

	if v.state != nil {
		snap, ok, err := v.state.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load vault state: %w", err)
		}
		if ok {
			if err := v.restore(snap); err != nil {
				return nil, err
			}
		} else if err := v.state.Save(ctx, v.snapshot()); err != nil {
			return nil, fmt.Errorf("save initial vault state: %w", err)
		}
	}
	return v, nil
}

// staged holds the next state of every mutable field. Nothing becomes
// visible until commit succeeds in full.
type staged struct {
	balances map[types.Address]*big.Int
	funders  []types.Address
	held     *big.Int
}

// Fund accepts a contribution from caller. The native amount is valued
// at the feed's current price; below-minimum contributions are rejected
// with no effect, so the caller keeps the funds.
func (v *Vault) Fund(ctx context.Context, caller types.Address, amt amount.Native) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	ref, err := convert.ToReference(ctx, amt, v.feed)
	if err != nil {
		if errors.Is(err, oracle.ErrUnavailable) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
	}
	if ref.Cmp(MinimumReference) < 0 {
		return fmt.Errorf("%w: %s reference units, minimum is %s",
			ErrInsufficientContribution, ref, MinimumReference)
	}

	next := staged{
		balances: cloneBalances(v.balances),
		funders:  append(v.funders[:len(v.funders):len(v.funders)], caller),
		held:     new(big.Int).Add(v.held, amt.Base()),
	}
	prev := next.balances[caller]
	if prev == nil {
		prev = new(big.Int)
	}
	next.balances[caller] = new(big.Int).Add(prev, amt.Base())

	if err := v.commit(ctx, next); err != nil {
		return err
	}

	now := time.Now()
	if err := v.audit.RecordContribution(ctx, audit.Contribution{
		Funder:    caller,
		Native:    amt.Base().String(),
		Reference: ref.Base().String(),
		CreatedAt: now,
	}); err != nil {
		// Roll the durable snapshot back so disk and memory agree.
		return errors.Join(fmt.Errorf("audit contribution: %w", err), v.persist(ctx, v.snapshot()))
	}

	v.apply(next)
	v.events.Publish(events.Event{
		Type:      events.TypeContribution,
		Account:   caller,
		Native:    amt.Base().String(),
		Reference: ref.Base().String(),
		Time:      now,
	})
	return nil
}

// Withdraw moves the entire held balance to the owner and resets all
// funder bookkeeping. Only the owner may call it. A withdrawal with
// nothing held succeeds as a zero-value no-op.
func (v *Vault) Withdraw(ctx context.Context, caller types.Address) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.withdraw(ctx, caller, false)
}

// CheapWithdraw is behaviorally identical to Withdraw; it captures the
// funder count once before the reset loop instead of re-reading it each
// iteration. Offered because the two access patterns price differently
// in storage-metered hosts.
func (v *Vault) CheapWithdraw(ctx context.Context, caller types.Address) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.withdraw(ctx, caller, true)
}

func (v *Vault) withdraw(ctx context.Context, caller types.Address, snapshotCount bool) error {
	if caller != v.owner {
		return ErrNotOwner
	}

	next := staged{
		balances: cloneBalances(v.balances),
		funders:  nil,
		held:     new(big.Int),
	}
	if snapshotCount {
		count := len(v.funders)
		for i := 0; i < count; i++ {
			next.balances[v.funders[i]] = new(big.Int)
		}
	} else {
		for i := 0; i < len(v.funders); i++ {
			next.balances[v.funders[i]] = new(big.Int)
		}
	}

	out := amount.NewNative(v.held)
	cleared := len(v.funders)

	// The external transfer goes first: if the recipient rejects it, no
	// durable write has happened and the reset simply never applies.
	if err := v.settler.Transfer(ctx, v.owner, out); err != nil {
		return fmt.Errorf("%w: %v", ErrTransferFailed, err)
	}

	if err := v.commit(ctx, next); err != nil {
		return err
	}

	now := time.Now()
	if err := v.audit.RecordWithdrawal(ctx, audit.Withdrawal{
		Owner:     v.owner,
		Native:    out.Base().String(),
		Funders:   cleared,
		CreatedAt: now,
	}); err != nil {
		return errors.Join(fmt.Errorf("audit withdrawal: %w", err), v.persist(ctx, v.snapshot()))
	}

	v.apply(next)
	v.events.Publish(events.Event{
		Type:    events.TypeWithdrawal,
		Account: v.owner,
		Native:  out.Base().String(),
		Funders: cleared,
		Time:    now,
	})
	return nil
}

// Balance returns caller's cumulative contributed amount; zero for
// unknown addresses. Never fails.
func (v *Vault) Balance(addr types.Address) amount.Native {
	v.mu.Lock()
	defer v.mu.Unlock()

	b, ok := v.balances[addr]
	if !ok {
		return amount.Native{}
	}
	return amount.NewNative(b)
}

// FunderAt returns the funder log entry at index i.
func (v *Vault) FunderAt(i int) (types.Address, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if i < 0 || i >= len(v.funders) {
		return types.Address{}, fmt.Errorf("%w: index %d, %d funders", ErrIndexOutOfRange, i, len(v.funders))
	}
	return v.funders[i], nil
}

// FunderCount returns the number of entries in the funder log.
func (v *Vault) FunderCount() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.funders)
}

// Owner returns the withdrawal-privileged identity.
func (v *Vault) Owner() types.Address {
	return v.owner
}

// Held returns the total native value currently held.
func (v *Vault) Held() amount.Native {
	v.mu.Lock()
	defer v.mu.Unlock()
	return amount.NewNative(v.held)
}

// Minimum returns the minimum accepted contribution value.
func (v *Vault) Minimum() amount.Reference {
	return MinimumReference
}

// FeedVersion forwards the price feed's version integer. Diagnostics
// only.
func (v *Vault) FeedVersion(ctx context.Context) (uint64, error) {
	return v.feed.Version(ctx)
}

// commit makes next durable. In-memory state is untouched; the caller
// applies next only after commit (and auditing) succeed.
func (v *Vault) commit(ctx context.Context, next staged) error {
	if v.state == nil {
		return nil
	}
	if err := v.state.Save(ctx, makeSnapshot(v.owner, next.balances, next.funders, next.held)); err != nil {
		return fmt.Errorf("persist vault state: %w", err)
	}
	return nil
}

func (v *Vault) persist(ctx context.Context, snap statestore.Snapshot) error {
	if v.state == nil {
		return nil
	}
	return v.state.Save(ctx, snap)
}

func (v *Vault) apply(next staged) {
	v.balances = next.balances
	v.funders = next.funders
	v.held = next.held
}

func cloneBalances(in map[types.Address]*big.Int) map[types.Address]*big.Int {
	out := make(map[types.Address]*big.Int, len(in))
	for k, val := range in {
		out[k] = val
	}
	return out
}
