package vault

import (
	"errors"

	"github.com/fundvault/fundvaultd/internal/core/oracle"
)

var (
	// ErrInsufficientContribution is returned when a contribution's
	// reference-currency value is below MinimumReference. State is
	// untouched, so the value never leaves the caller's custody.
	ErrInsufficientContribution = errors.New("vault: contribution below minimum")

	// ErrNotOwner is returned when anyone but the owner attempts a
	// withdrawal. No state changes on this path.
	ErrNotOwner = errors.New("vault: caller is not the owner")

	// ErrTransferFailed is returned when the settlement transfer to the
	// owner fails. The whole withdrawal rolls back; the caller may retry.
	ErrTransferFailed = errors.New("vault: settlement transfer failed")

	// ErrIndexOutOfRange is returned by FunderAt for an index past the
	// end of the funder log.
	ErrIndexOutOfRange = errors.New("vault: funder index out of range")

	// ErrOracleUnavailable is returned when the price feed cannot supply
	// a usable price. The contribution is rejected outright rather than
	// valued against a degenerate quote.
	ErrOracleUnavailable = oracle.ErrUnavailable
)
