package types

import (
	"context"

	sdkmath "cosmossdk.io/math"
)

// AmmHooks defines the interface for pool event callbacks. Hooks are
// invoked synchronously after an operation has committed, never before;
// a hook error cannot unwind the commit and is surfaced to the caller's
// logger instead.
type AmmHooks interface {
	// AfterLiquidityAdded is called after a successful deposit.
	AfterLiquidityAdded(ctx context.Context, provider string, amountA, amountB, sharesMinted sdkmath.Int) error

	// AfterLiquidityRemoved is called after a successful withdrawal.
	AfterLiquidityRemoved(ctx context.Context, provider string, amountA, amountB, sharesBurned sdkmath.Int) error

	// AfterSwap is called after a successful swap in either direction.
	AfterSwap(ctx context.Context, trader string, assetIn, assetOut string, amountIn, amountOut sdkmath.Int) error
}

// MultiAmmHooks combines multiple pool hooks into a single hook that calls all of them.
type MultiAmmHooks []AmmHooks

// NewMultiAmmHooks creates a new MultiAmmHooks from a list of hooks.
func NewMultiAmmHooks(hooks ...AmmHooks) MultiAmmHooks {
	return hooks
}

// AfterLiquidityAdded calls AfterLiquidityAdded on all registered hooks.
func (h MultiAmmHooks) AfterLiquidityAdded(ctx context.Context, provider string, amountA, amountB, sharesMinted sdkmath.Int) error {
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.AfterLiquidityAdded(ctx, provider, amountA, amountB, sharesMinted); err != nil {
			return err
		}
	}
	return nil
}

// AfterLiquidityRemoved calls AfterLiquidityRemoved on all registered hooks.
func (h MultiAmmHooks) AfterLiquidityRemoved(ctx context.Context, provider string, amountA, amountB, sharesBurned sdkmath.Int) error {
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.AfterLiquidityRemoved(ctx, provider, amountA, amountB, sharesBurned); err != nil {
			return err
		}
	}
	return nil
}

// AfterSwap calls AfterSwap on all registered hooks.
func (h MultiAmmHooks) AfterSwap(ctx context.Context, trader string, assetIn, assetOut string, amountIn, amountOut sdkmath.Int) error {
	for _, hook := range h {
		if hook == nil {
			continue
		}
		if err := hook.AfterSwap(ctx, trader, assetIn, assetOut, amountIn, amountOut); err != nil {
			return err
		}
	}
	return nil
}
