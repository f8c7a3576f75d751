package keeper

import (
	sdkmath "cosmossdk.io/math"

	"github.com/driftswap/amm/x/amm/types"
)

// GetPool returns a copy of the current pool record.
func (k *Keeper) GetPool() types.Pool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.pool
}

// GetReserves returns the current reserve balances for asset A and asset B.
func (k *Keeper) GetReserves() (sdkmath.Int, sdkmath.Int) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.pool.ReserveA, k.pool.ReserveB
}

// GetTotalShares returns the total outstanding provider shares.
func (k *Keeper) GetTotalShares() sdkmath.Int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	return k.pool.TotalShares
}

// GetLiquidity returns a provider's share balance. A provider that never
// deposited, or whose balance returned to zero, reads as zero.
func (k *Keeper) GetLiquidity(provider string) sdkmath.Int {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if shares, ok := k.shares[provider]; ok {
		return shares
	}
	return sdkmath.ZeroInt()
}

// The mutation primitives below are the only path that changes the
// invariant-protected fields. Callers must hold k.mu and must pair them
// with the surrounding ledger transfers so that an aborted operation
// leaves no observable change.

// creditReserves increases both reserves by the given deltas.
func (k *Keeper) creditReserves(dA, dB sdkmath.Int) error {
	newA, err := SafeAdd(k.pool.ReserveA, dA)
	if err != nil {
		return err
	}
	newB, err := SafeAdd(k.pool.ReserveB, dB)
	if err != nil {
		return err
	}
	k.pool.ReserveA = newA
	k.pool.ReserveB = newB
	return nil
}

// debitReserves decreases both reserves by the given deltas. A debit
// that would drive a reserve negative fails without partial effect.
func (k *Keeper) debitReserves(dA, dB sdkmath.Int) error {
	newA, err := SafeSub(k.pool.ReserveA, dA)
	if err != nil {
		return err
	}
	newB, err := SafeSub(k.pool.ReserveB, dB)
	if err != nil {
		return err
	}
	k.pool.ReserveA = newA
	k.pool.ReserveB = newB
	return nil
}

// mintShares credits amount to the provider and grows the total supply.
func (k *Keeper) mintShares(provider string, amount sdkmath.Int) error {
	current := sdkmath.ZeroInt()
	if shares, ok := k.shares[provider]; ok {
		current = shares
	}
	newBalance, err := SafeAdd(current, amount)
	if err != nil {
		return err
	}
	newTotal, err := SafeAdd(k.pool.TotalShares, amount)
	if err != nil {
		return err
	}
	k.shares[provider] = newBalance
	k.pool.TotalShares = newTotal
	return nil
}

// burnShares debits amount from the provider and shrinks the total
// supply. A position that reaches zero is removed from the map; a zero
// balance is operationally equivalent to absence.
func (k *Keeper) burnShares(provider string, amount sdkmath.Int) error {
	current, ok := k.shares[provider]
	if !ok || current.LT(amount) {
		have := sdkmath.ZeroInt()
		if ok {
			have = current
		}
		return types.ErrInsufficientShares.Wrapf("have %s, need %s", have, amount)
	}
	newTotal, err := SafeSub(k.pool.TotalShares, amount)
	if err != nil {
		return err
	}
	newBalance := current.Sub(amount)
	if newBalance.IsZero() {
		delete(k.shares, provider)
	} else {
		k.shares[provider] = newBalance
	}
	k.pool.TotalShares = newTotal
	return nil
}
