package keeper

import (
	"context"

	sdkmath "cosmossdk.io/math"

	"github.com/driftswap/amm/x/amm/types"
)

// AddLiquidity deposits amountA/amountB into the pool and mints
// proportional shares to the provider.
//
// The first deposit bootstraps the pool and mints the geometric mean
// floor(sqrt(amountA*amountB)), seeding the invariant product. Every
// later deposit must match the current reserve ratio exactly
// (amountB*reserveA == amountA*reserveB) so that an off-market deposit
// cannot dilute existing providers, and mints
// floor(amountA*totalShares/reserveA).
//
// Assets are pulled from the provider before anything is committed; if
// the asset B pull fails after asset A succeeded, asset A is refunded.
func (k *Keeper) AddLiquidity(ctx context.Context, provider string, amountA, amountB sdkmath.Int) (sdkmath.Int, error) {
	minted := sdkmath.ZeroInt()
	err := k.withPoolGuard("add_liquidity", func() error {
		var err error
		minted, err = k.addLiquidity(ctx, provider, amountA, amountB)
		return err
	})
	if err != nil {
		return sdkmath.ZeroInt(), err
	}
	return minted, nil
}

func (k *Keeper) addLiquidity(ctx context.Context, provider string, amountA, amountB sdkmath.Int) (sdkmath.Int, error) {
	zero := sdkmath.ZeroInt()

	if amountA.IsNil() || amountA.IsZero() || amountB.IsNil() || amountB.IsZero() {
		return zero, types.ErrZeroAmount.Wrap("liquidity amounts must be positive")
	}
	if amountA.IsNegative() || amountB.IsNegative() {
		return zero, types.ErrArithmetic.Wrapf("negative liquidity amounts %s/%s", amountA, amountB)
	}

	pool := k.GetPool()

	var minted sdkmath.Int
	if !pool.IsInitialized() {
		// Bootstrap: shares are the geometric mean of the deposit, which
		// makes the initial mint independent of the arbitrary A/B split.
		product, err := SafeMul(amountA, amountB)
		if err != nil {
			return zero, err
		}
		minted, err = IntegerSqrt(product)
		if err != nil {
			return zero, err
		}
	} else {
		lhs, err := SafeMul(amountB, pool.ReserveA)
		if err != nil {
			return zero, err
		}
		rhs, err := SafeMul(amountA, pool.ReserveB)
		if err != nil {
			return zero, err
		}
		if !lhs.Equal(rhs) {
			return zero, types.ErrRatioMismatch.Wrapf(
				"deposit %s/%s does not match reserves %s/%s",
				amountA, amountB, pool.ReserveA, pool.ReserveB,
			)
		}
		minted, err = SafeMulDiv(amountA, pool.TotalShares, pool.ReserveA)
		if err != nil {
			return zero, err
		}
	}

	if minted.IsZero() {
		return zero, types.ErrInsufficientLiquidity.Wrap("deposit too small to mint shares")
	}

	// Pull both assets before committing any state.
	if err := k.ledgerA.TransferIn(ctx, provider, amountA); err != nil {
		return zero, types.ErrTransferFailed.Wrapf("pull %s %s from %s: %v", amountA, pool.AssetA, provider, err)
	}
	if err := k.ledgerB.TransferIn(ctx, provider, amountB); err != nil {
		if refundErr := k.ledgerA.TransferOut(ctx, provider, amountA); refundErr != nil {
			k.Logger().Error("failed to refund asset A after asset B pull failure",
				"provider", provider,
				"amount", amountA.String(),
				"error", refundErr,
			)
		}
		return zero, types.ErrTransferFailed.Wrapf("pull %s %s from %s: %v", amountB, pool.AssetB, provider, err)
	}

	// Commit. Both primitives apply under one lock section so no reader
	// observes credited reserves without the matching minted shares.
	k.mu.Lock()
	err := k.creditReserves(amountA, amountB)
	if err == nil {
		if err = k.mintShares(provider, minted); err != nil {
			if revertErr := k.debitReserves(amountA, amountB); revertErr != nil {
				k.Logger().Error("failed to revert reserve credit", "error", revertErr)
			}
		}
	}
	k.mu.Unlock()
	if err != nil {
		k.refundDeposit(ctx, provider, amountA, amountB)
		return zero, err
	}

	k.Logger().Info("liquidity added",
		types.AttributeKeyProvider, provider,
		types.AttributeKeyAmountA, amountA.String(),
		types.AttributeKeyAmountB, amountB.String(),
		types.AttributeKeyShares, minted.String(),
	)

	if k.hooks != nil {
		if err := k.hooks.AfterLiquidityAdded(ctx, provider, amountA, amountB, minted); err != nil {
			k.Logger().Error("liquidity added hook failed", "provider", provider, "error", err)
		}
	}

	if k.metrics != nil {
		k.metrics.LiquidityAdded.WithLabelValues(pool.AssetA).Add(gaugeValue(amountA))
		k.metrics.LiquidityAdded.WithLabelValues(pool.AssetB).Add(gaugeValue(amountB))
		k.recordPoolGauges()
	}

	return minted, nil
}

// RemoveLiquidity burns shareAmount of the provider's shares and pays
// out the proportional slice of both reserves, floored. Flooring means a
// departing provider may leave dust behind for the remaining providers;
// that is accepted, not corrected.
//
// State is committed before the outbound transfers
// (checks-effects-interactions); a failed payout rolls the commit back
// and compensates any transfer that already happened.
func (k *Keeper) RemoveLiquidity(ctx context.Context, provider string, shareAmount sdkmath.Int) (sdkmath.Int, sdkmath.Int, error) {
	amountA, amountB := sdkmath.ZeroInt(), sdkmath.ZeroInt()
	err := k.withPoolGuard("remove_liquidity", func() error {
		var err error
		amountA, amountB, err = k.removeLiquidity(ctx, provider, shareAmount)
		return err
	})
	if err != nil {
		return sdkmath.ZeroInt(), sdkmath.ZeroInt(), err
	}
	return amountA, amountB, nil
}

func (k *Keeper) removeLiquidity(ctx context.Context, provider string, shareAmount sdkmath.Int) (sdkmath.Int, sdkmath.Int, error) {
	zero := sdkmath.ZeroInt()

	if shareAmount.IsNil() || shareAmount.IsZero() {
		return zero, zero, types.ErrZeroAmount.Wrap("cannot remove zero liquidity")
	}
	if shareAmount.IsNegative() {
		return zero, zero, types.ErrArithmetic.Wrapf("negative share amount %s", shareAmount)
	}

	pool := k.GetPool()
	userShares := k.GetLiquidity(provider)
	if userShares.LT(shareAmount) {
		return zero, zero, types.ErrInsufficientShares.Wrapf("have %s, need %s", userShares, shareAmount)
	}

	amountA, err := SafeMulDiv(shareAmount, pool.ReserveA, pool.TotalShares)
	if err != nil {
		return zero, zero, err
	}
	amountB, err := SafeMulDiv(shareAmount, pool.ReserveB, pool.TotalShares)
	if err != nil {
		return zero, zero, err
	}

	// Commit first: burn the shares and debit the reserves before any
	// value leaves the pool.
	k.mu.Lock()
	err = k.burnShares(provider, shareAmount)
	if err == nil {
		if err = k.debitReserves(amountA, amountB); err != nil {
			if revertErr := k.mintShares(provider, shareAmount); revertErr != nil {
				k.Logger().Error("failed to revert share burn", "error", revertErr)
			}
		}
	}
	k.mu.Unlock()
	if err != nil {
		return zero, zero, err
	}

	// Interactions last. Zero payouts (floored dust) skip the ledger.
	if !amountA.IsZero() {
		if err := k.ledgerA.TransferOut(ctx, provider, amountA); err != nil {
			k.rollbackRemove(provider, shareAmount, amountA, amountB)
			return zero, zero, types.ErrTransferFailed.Wrapf("pay out %s %s to %s: %v", amountA, pool.AssetA, provider, err)
		}
	}
	if !amountB.IsZero() {
		if err := k.ledgerB.TransferOut(ctx, provider, amountB); err != nil {
			k.rollbackRemove(provider, shareAmount, amountA, amountB)
			if !amountA.IsZero() {
				if clawErr := k.ledgerA.TransferIn(ctx, provider, amountA); clawErr != nil {
					k.Logger().Error("failed to recover asset A after asset B payout failure; manual reconciliation required",
						"provider", provider,
						"amount", amountA.String(),
						"error", clawErr,
					)
				}
			}
			return zero, zero, types.ErrTransferFailed.Wrapf("pay out %s %s to %s: %v", amountB, pool.AssetB, provider, err)
		}
	}

	k.Logger().Info("liquidity removed",
		types.AttributeKeyProvider, provider,
		types.AttributeKeyAmountA, amountA.String(),
		types.AttributeKeyAmountB, amountB.String(),
		types.AttributeKeyShares, shareAmount.String(),
	)

	if k.hooks != nil {
		if err := k.hooks.AfterLiquidityRemoved(ctx, provider, amountA, amountB, shareAmount); err != nil {
			k.Logger().Error("liquidity removed hook failed", "provider", provider, "error", err)
		}
	}

	if k.metrics != nil {
		k.metrics.LiquidityRemoved.WithLabelValues(pool.AssetA).Add(gaugeValue(amountA))
		k.metrics.LiquidityRemoved.WithLabelValues(pool.AssetB).Add(gaugeValue(amountB))
		k.recordPoolGauges()
	}

	return amountA, amountB, nil
}

// rollbackRemove restores a committed withdrawal after a payout failure.
func (k *Keeper) rollbackRemove(provider string, shareAmount, amountA, amountB sdkmath.Int) {
	k.mu.Lock()
	defer k.mu.Unlock()
	if err := k.creditReserves(amountA, amountB); err != nil {
		k.Logger().Error("failed to restore reserves during withdrawal rollback", "error", err)
	}
	if err := k.mintShares(provider, shareAmount); err != nil {
		k.Logger().Error("failed to restore shares during withdrawal rollback", "error", err)
	}
}

// refundDeposit returns both pulled assets after a failed deposit commit.
func (k *Keeper) refundDeposit(ctx context.Context, provider string, amountA, amountB sdkmath.Int) {
	if err := k.ledgerA.TransferOut(ctx, provider, amountA); err != nil {
		k.Logger().Error("failed to refund asset A after aborted deposit", "provider", provider, "error", err)
	}
	if err := k.ledgerB.TransferOut(ctx, provider, amountB); err != nil {
		k.Logger().Error("failed to refund asset B after aborted deposit", "provider", provider, "error", err)
	}
}
