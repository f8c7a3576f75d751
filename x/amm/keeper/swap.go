package keeper

import (
	"context"

	sdkmath "cosmossdk.io/math"

	"github.com/driftswap/amm/x/amm/types"
)

// CalculateSwapOutput prices a swap against the given reserves using the
// fee-adjusted constant product formula. It is a pure function: no state
// is read or written, and identical arguments always yield identical
// results.
//
//	amountInWithFee = amountIn * 997
//	amountOut = floor(amountInWithFee * reserveOut / (reserveIn*1000 + amountInWithFee))
//
// The formula guarantees amountOut < reserveOut strictly, so one swap can
// never drain the output reserve, and guarantees the reserve product
// grows whenever amountIn > 0 because the 0.3% fee portion stays in the
// pool. A tiny input can legitimately floor to zero output; the caller
// decides whether that is an error.
func CalculateSwapOutput(amountIn, reserveIn, reserveOut sdkmath.Int) (sdkmath.Int, error) {
	if amountIn.IsNil() || amountIn.IsZero() {
		return sdkmath.Int{}, types.ErrZeroAmount.Wrap("swap input must be positive")
	}
	if amountIn.IsNegative() {
		return sdkmath.Int{}, types.ErrArithmetic.Wrapf("negative swap input %s", amountIn)
	}
	if reserveIn.IsNil() || reserveOut.IsNil() || reserveIn.IsZero() || reserveOut.IsZero() {
		return sdkmath.Int{}, types.ErrNoLiquidity.Wrap("pool reserves must be positive")
	}

	amountInWithFee, err := SafeMul(amountIn, sdkmath.NewInt(types.FeeNumerator))
	if err != nil {
		return sdkmath.Int{}, err
	}
	numerator, err := SafeMul(amountInWithFee, reserveOut)
	if err != nil {
		return sdkmath.Int{}, err
	}
	scaledReserveIn, err := SafeMul(reserveIn, sdkmath.NewInt(types.FeeDenominator))
	if err != nil {
		return sdkmath.Int{}, err
	}
	denominator, err := SafeAdd(scaledReserveIn, amountInWithFee)
	if err != nil {
		return sdkmath.Int{}, err
	}
	return SafeQuo(numerator, denominator)
}

// SwapAForB trades amountIn of asset A for asset B at the pool's
// fee-adjusted constant product price.
func (k *Keeper) SwapAForB(ctx context.Context, trader string, amountIn sdkmath.Int) (sdkmath.Int, error) {
	return k.swap(ctx, trader, amountIn, true)
}

// SwapBForA trades amountIn of asset B for asset A.
func (k *Keeper) SwapBForA(ctx context.Context, trader string, amountIn sdkmath.Int) (sdkmath.Int, error) {
	return k.swap(ctx, trader, amountIn, false)
}

// SimulateSwap quotes a swap of amountIn of assetIn without executing
// it. It goes through the same pure pricing path as the real swaps.
func (k *Keeper) SimulateSwap(assetIn string, amountIn sdkmath.Int) (sdkmath.Int, error) {
	pool := k.GetPool()
	switch assetIn {
	case pool.AssetA:
		return CalculateSwapOutput(amountIn, pool.ReserveA, pool.ReserveB)
	case pool.AssetB:
		return CalculateSwapOutput(amountIn, pool.ReserveB, pool.ReserveA)
	default:
		return sdkmath.Int{}, types.ErrInvalidAsset.Wrapf("%s is not in pool %s/%s", assetIn, pool.AssetA, pool.AssetB)
	}
}

func (k *Keeper) swap(ctx context.Context, trader string, amountIn sdkmath.Int, aForB bool) (sdkmath.Int, error) {
	amountOut := sdkmath.ZeroInt()
	err := k.withPoolGuard("swap", func() error {
		var err error
		amountOut, err = k.executeSwap(ctx, trader, amountIn, aForB)
		return err
	})
	if err != nil {
		if k.metrics != nil {
			assetIn, assetOut := k.swapAssets(aForB)
			k.metrics.SwapsTotal.WithLabelValues(assetIn, assetOut, "failed").Inc()
		}
		return sdkmath.ZeroInt(), err
	}
	return amountOut, nil
}

func (k *Keeper) swapAssets(aForB bool) (string, string) {
	pool := k.GetPool()
	if aForB {
		return pool.AssetA, pool.AssetB
	}
	return pool.AssetB, pool.AssetA
}

func (k *Keeper) executeSwap(ctx context.Context, trader string, amountIn sdkmath.Int, aForB bool) (sdkmath.Int, error) {
	zero := sdkmath.ZeroInt()

	pool := k.GetPool()
	var (
		reserveIn, reserveOut sdkmath.Int
		assetIn, assetOut     string
		ledgerIn, ledgerOut   types.AssetLedger
	)
	if aForB {
		reserveIn, reserveOut = pool.ReserveA, pool.ReserveB
		assetIn, assetOut = pool.AssetA, pool.AssetB
		ledgerIn, ledgerOut = k.ledgerA, k.ledgerB
	} else {
		reserveIn, reserveOut = pool.ReserveB, pool.ReserveA
		assetIn, assetOut = pool.AssetB, pool.AssetA
		ledgerIn, ledgerOut = k.ledgerB, k.ledgerA
	}

	amountOut, err := CalculateSwapOutput(amountIn, reserveIn, reserveOut)
	if err != nil {
		return zero, err
	}
	if amountOut.IsZero() {
		return zero, types.ErrZeroOutput.Wrapf("input %s %s is too small against reserves %s/%s",
			amountIn, assetIn, reserveIn, reserveOut)
	}

	// Pull the input, commit the reserve deltas, push the output last.
	if err := ledgerIn.TransferIn(ctx, trader, amountIn); err != nil {
		return zero, types.ErrTransferFailed.Wrapf("pull %s %s from %s: %v", amountIn, assetIn, trader, err)
	}

	if err := k.commitSwap(amountIn, amountOut, aForB); err != nil {
		if refundErr := ledgerIn.TransferOut(ctx, trader, amountIn); refundErr != nil {
			k.Logger().Error("failed to refund swap input after aborted commit",
				"trader", trader,
				"amount", amountIn.String(),
				"error", refundErr,
			)
		}
		return zero, err
	}

	if err := ledgerOut.TransferOut(ctx, trader, amountOut); err != nil {
		k.rollbackSwap(amountIn, amountOut, aForB)
		if refundErr := ledgerIn.TransferOut(ctx, trader, amountIn); refundErr != nil {
			k.Logger().Error("failed to refund swap input after output transfer failure",
				"trader", trader,
				"amount", amountIn.String(),
				"error", refundErr,
			)
		}
		return zero, types.ErrTransferFailed.Wrapf("pay out %s %s to %s: %v", amountOut, assetOut, trader, err)
	}

	k.Logger().Info("swap executed",
		types.AttributeKeyTrader, trader,
		types.AttributeKeyAssetIn, assetIn,
		types.AttributeKeyAssetOut, assetOut,
		types.AttributeKeyAmountIn, amountIn.String(),
		types.AttributeKeyAmountOut, amountOut.String(),
	)

	if k.hooks != nil {
		if err := k.hooks.AfterSwap(ctx, trader, assetIn, assetOut, amountIn, amountOut); err != nil {
			k.Logger().Error("swap hook failed", "trader", trader, "error", err)
		}
	}

	if k.metrics != nil {
		k.metrics.SwapsTotal.WithLabelValues(assetIn, assetOut, "success").Inc()
		k.metrics.SwapVolume.WithLabelValues(assetIn).Add(gaugeValue(amountIn))
		k.recordPoolGauges()
	}

	return amountOut, nil
}

// commitSwap applies the reserve deltas under the state lock and asserts
// the constant product did not shrink. A shrinking product means a
// pricing bug, and the commit is unwound rather than persisted.
func (k *Keeper) commitSwap(amountIn, amountOut sdkmath.Int, aForB bool) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	oldK, err := SafeMul(k.pool.ReserveA, k.pool.ReserveB)
	if err != nil {
		return err
	}

	creditA, creditB, debitA, debitB := k.swapDeltas(amountIn, amountOut, aForB)
	if err := k.creditReserves(creditA, creditB); err != nil {
		return err
	}
	if err := k.debitReserves(debitA, debitB); err != nil {
		if revertErr := k.debitReserves(creditA, creditB); revertErr != nil {
			k.Logger().Error("failed to revert reserve credit", "error", revertErr)
		}
		return err
	}

	newK, err := SafeMul(k.pool.ReserveA, k.pool.ReserveB)
	if err == nil && newK.LT(oldK) {
		err = types.ErrInvariantViolation.Wrapf("constant product decreased: %s -> %s", oldK, newK)
	}
	if err != nil {
		if revertErr := k.creditReserves(debitA, debitB); revertErr != nil {
			k.Logger().Error("failed to revert swap commit", "error", revertErr)
		}
		if revertErr := k.debitReserves(creditA, creditB); revertErr != nil {
			k.Logger().Error("failed to revert swap commit", "error", revertErr)
		}
		return err
	}
	return nil
}

// rollbackSwap unwinds a committed swap after the output transfer failed.
func (k *Keeper) rollbackSwap(amountIn, amountOut sdkmath.Int, aForB bool) {
	k.mu.Lock()
	defer k.mu.Unlock()
	creditA, creditB, debitA, debitB := k.swapDeltas(amountIn, amountOut, aForB)
	if err := k.creditReserves(debitA, debitB); err != nil {
		k.Logger().Error("failed to restore output reserve during swap rollback", "error", err)
	}
	if err := k.debitReserves(creditA, creditB); err != nil {
		k.Logger().Error("failed to restore input reserve during swap rollback", "error", err)
	}
}

func (k *Keeper) swapDeltas(amountIn, amountOut sdkmath.Int, aForB bool) (creditA, creditB, debitA, debitB sdkmath.Int) {
	zero := sdkmath.ZeroInt()
	if aForB {
		return amountIn, zero, zero, amountOut
	}
	return zero, amountIn, amountOut, zero
}
