package keeper

import (
	"fmt"

	sdkmath "cosmossdk.io/math"

	"github.com/driftswap/amm/x/amm/types"
)

// Invariant is a named consistency check over the pool state. It returns
// a human-readable report and whether the invariant is broken.
type Invariant func() (string, bool)

// FormatInvariant returns a standardized invariant report.
func FormatInvariant(module, name, msg string) string {
	return fmt.Sprintf("%s:\t%s invariant\n\t%s\n", module, name, msg)
}

// AllInvariants runs every invariant of the AMM module and stops at the
// first broken one.
func AllInvariants(k *Keeper) Invariant {
	return func() (string, bool) {
		res, stop := ShareConservationInvariant(k)()
		if stop {
			return res, stop
		}
		return ReserveBackingInvariant(k)()
	}
}

// ShareConservationInvariant checks that the sum of all provider share
// balances equals the pool's total share supply.
func ShareConservationInvariant(k *Keeper) Invariant {
	return func() (string, bool) {
		k.mu.RLock()
		defer k.mu.RUnlock()

		sum := sdkmath.ZeroInt()
		for _, shares := range k.shares {
			sum = sum.Add(shares)
		}

		broken := !sum.Equal(k.pool.TotalShares)
		return FormatInvariant(
			types.ModuleName, "share-conservation",
			fmt.Sprintf("positions sum to %s, pool total is %s", sum, k.pool.TotalShares),
		), broken
	}
}

// ReserveBackingInvariant checks that the pool is either wholly empty or
// holds positive reserves behind a positive share supply, with nothing
// negative anywhere.
func ReserveBackingInvariant(k *Keeper) Invariant {
	return func() (string, bool) {
		k.mu.RLock()
		pool := k.pool
		k.mu.RUnlock()

		err := pool.Validate()
		broken := err != nil
		msg := "pool state is consistent"
		if broken {
			msg = err.Error()
		}
		return FormatInvariant(types.ModuleName, "reserve-backing", msg), broken
	}
}
