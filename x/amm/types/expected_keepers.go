package types

import (
	"context"

	sdkmath "cosmossdk.io/math"
)

// AssetLedger is the external bookkeeping collaborator that moves one
// asset between accounts and the pool. The pool holds one ledger per
// asset. A ledger error aborts the enclosing pool operation; the ledger
// itself is not trusted and may call back into the pool, which the
// keeper's reentrancy guard rejects.
type AssetLedger interface {
	// TransferIn moves amount of the asset from the account into the
	// pool. It fails if the account's balance or pre-authorized
	// allowance is insufficient.
	TransferIn(ctx context.Context, from string, amount sdkmath.Int) error

	// TransferOut moves amount of the asset from the pool to the
	// account. It fails if the pool's tracked balance is insufficient,
	// which indicates a reserve-accounting bug in the caller.
	TransferOut(ctx context.Context, to string, amount sdkmath.Int) error
}
