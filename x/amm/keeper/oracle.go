package keeper

import (
	sdkmath "cosmossdk.io/math"
)

// GetPrice returns the pool's spot price of asset A denominated in asset
// B, truncated to an integer: floor(reserveB / reserveA), or 0 for an
// empty pool. The truncation is deliberate and matches the pool's
// integer-only arithmetic; sub-unit price resolution is out of scope.
func (k *Keeper) GetPrice() sdkmath.Int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if k.pool.ReserveA.IsZero() {
		return sdkmath.ZeroInt()
	}
	return k.pool.ReserveB.Quo(k.pool.ReserveA)
}
