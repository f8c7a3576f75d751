package types

import (
	sdkmath "cosmossdk.io/math"
)

const (
	// ModuleName defines the module name
	ModuleName = "amm"

	// FeeNumerator and FeeDenominator encode the fixed 0.3% swap fee as
	// integer scaling factors: the effective input is amountIn*997/1000.
	// Keeping the fee in integer space means the pricing math never
	// leaves exact arithmetic; the 3/1000 fee portion stays in the
	// reserves and accrues to liquidity providers.
	FeeNumerator   = 997
	FeeDenominator = 1000
)

// Pool is the canonical record for a single asset pair: the two reserve
// balances and the total outstanding provider shares. Per-provider share
// balances live alongside it in the keeper and are reconciled against
// TotalShares by the module invariants.
type Pool struct {
	AssetA      string
	AssetB      string
	ReserveA    sdkmath.Int
	ReserveB    sdkmath.Int
	TotalShares sdkmath.Int
}

// NewPool returns an empty (uninitialized) pool for the given pair.
func NewPool(assetA, assetB string) Pool {
	return Pool{
		AssetA:      assetA,
		AssetB:      assetB,
		ReserveA:    sdkmath.ZeroInt(),
		ReserveB:    sdkmath.ZeroInt(),
		TotalShares: sdkmath.ZeroInt(),
	}
}

// IsInitialized reports whether the pool holds outstanding shares. A pool
// with zero total shares is in the uninitialized state and the next
// deposit is a bootstrap deposit.
func (p Pool) IsInitialized() bool {
	return !p.TotalShares.IsZero()
}

// Validate checks structural pool sanity: named assets, initialized
// integers, no negative balances, and the empty-or-backed rule
// (TotalShares == 0 exactly when both reserves are zero; positive shares
// require both reserves positive).
func (p Pool) Validate() error {
	if p.AssetA == "" || p.AssetB == "" {
		return ErrInvalidPoolState.Wrap("asset denoms cannot be empty")
	}
	if p.AssetA == p.AssetB {
		return ErrInvalidPoolState.Wrap("pool assets must differ")
	}
	if p.ReserveA.IsNil() || p.ReserveB.IsNil() || p.TotalShares.IsNil() {
		return ErrInvalidPoolState.Wrap("pool balances must be initialized")
	}
	if p.ReserveA.IsNegative() || p.ReserveB.IsNegative() {
		return ErrInvalidPoolState.Wrapf("negative reserves %s/%s", p.ReserveA, p.ReserveB)
	}
	if p.TotalShares.IsNegative() {
		return ErrInvalidPoolState.Wrapf("negative total shares %s", p.TotalShares)
	}
	if p.TotalShares.IsZero() {
		if !p.ReserveA.IsZero() || !p.ReserveB.IsZero() {
			return ErrInvalidPoolState.Wrap("pool has reserves but zero shares")
		}
	} else {
		if p.ReserveA.IsZero() || p.ReserveB.IsZero() {
			return ErrInvalidPoolState.Wrap("pool has shares but zero reserves")
		}
	}
	return nil
}
