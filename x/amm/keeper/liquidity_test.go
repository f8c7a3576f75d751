package keeper_test

import (
	"context"
	"testing"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"

	"github.com/driftswap/amm/testutil"
	"github.com/driftswap/amm/x/amm/types"
)

func TestAddLiquidity_Bootstrap(t *testing.T) {
	k, ledgerA, ledgerB := testutil.AMMKeeper(t)
	ctx := context.Background()

	minted, err := k.AddLiquidity(ctx, testutil.Provider, sdkmath.NewInt(100), sdkmath.NewInt(200))
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(141), minted) // isqrt(100*200) = isqrt(20000)

	reserveA, reserveB := k.GetReserves()
	require.Equal(t, sdkmath.NewInt(100), reserveA)
	require.Equal(t, sdkmath.NewInt(200), reserveB)
	require.Equal(t, sdkmath.NewInt(141), k.GetTotalShares())
	require.True(t, k.GetLiquidity(testutil.Provider).IsPositive())

	// The ledgers moved the assets into the pool.
	require.Equal(t, sdkmath.NewInt(100), ledgerA.PoolBalance())
	require.Equal(t, sdkmath.NewInt(200), ledgerB.PoolBalance())
}

func TestAddLiquidity_ZeroAmount(t *testing.T) {
	k, _, _ := testutil.AMMKeeper(t)
	ctx := context.Background()

	for _, amounts := range [][2]int64{{0, 50}, {50, 0}, {0, 0}} {
		_, err := k.AddLiquidity(ctx, testutil.Provider, sdkmath.NewInt(amounts[0]), sdkmath.NewInt(amounts[1]))
		require.Error(t, err)
		require.True(t, errorsmod.IsOf(err, types.ErrZeroAmount))
	}

	require.True(t, k.GetTotalShares().IsZero())
}

func TestAddLiquidity_RatioEnforcement(t *testing.T) {
	k, _, _ := testutil.AMMKeeper(t)
	ctx := context.Background()

	_, err := k.AddLiquidity(ctx, testutil.Provider, sdkmath.NewInt(100), sdkmath.NewInt(200))
	require.NoError(t, err)

	// Off-ratio deposit is rejected without tolerance.
	_, err = k.AddLiquidity(ctx, testutil.Provider, sdkmath.NewInt(50), sdkmath.NewInt(50))
	require.Error(t, err)
	require.True(t, errorsmod.IsOf(err, types.ErrRatioMismatch))
	require.Contains(t, err.Error(), "does not match")

	// Exact ratio succeeds and mints proportionally.
	minted, err := k.AddLiquidity(ctx, testutil.Provider, sdkmath.NewInt(50), sdkmath.NewInt(100))
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(70), minted) // floor(50*141/100)

	reserveA, reserveB := k.GetReserves()
	require.Equal(t, sdkmath.NewInt(150), reserveA)
	require.Equal(t, sdkmath.NewInt(300), reserveB)
	require.Equal(t, sdkmath.NewInt(211), k.GetTotalShares())
}

func TestAddLiquidity_ZeroSharesMinted(t *testing.T) {
	k, _, _ := testutil.AMMKeeper(t)
	ctx := context.Background()

	// A share supply far below the reserve scale makes a small deposit
	// floor to zero shares. Reachable only through imported state.
	err := k.InitGenesis(&types.GenesisState{
		Pool: types.Pool{
			AssetA:      testutil.AssetA,
			AssetB:      testutil.AssetB,
			ReserveA:    sdkmath.NewInt(1000),
			ReserveB:    sdkmath.NewInt(1000),
			TotalShares: sdkmath.NewInt(5),
		},
		Positions: []types.Position{{Provider: testutil.Provider, Shares: sdkmath.NewInt(5)}},
	})
	require.NoError(t, err)

	_, err = k.AddLiquidity(ctx, testutil.Provider, sdkmath.NewInt(100), sdkmath.NewInt(100))
	require.Error(t, err)
	require.True(t, errorsmod.IsOf(err, types.ErrInsufficientLiquidity))
}

func TestAddLiquidity_TransferFailureRefunds(t *testing.T) {
	k, ledgerA, ledgerB := testutil.AMMKeeper(t)
	ctx := context.Background()

	before := ledgerA.Balance(testutil.Provider)
	ledgerB.SetFailTransferIn(true)

	_, err := k.AddLiquidity(ctx, testutil.Provider, sdkmath.NewInt(100), sdkmath.NewInt(200))
	require.Error(t, err)
	require.True(t, errorsmod.IsOf(err, types.ErrTransferFailed))

	// Asset A was pulled first and must come back.
	require.Equal(t, before, ledgerA.Balance(testutil.Provider))
	require.True(t, ledgerA.PoolBalance().IsZero())
	require.True(t, k.GetTotalShares().IsZero())
}

func TestRemoveLiquidity_Partial(t *testing.T) {
	k, _, _ := testutil.AMMKeeper(t)
	ctx := context.Background()

	_, err := k.AddLiquidity(ctx, testutil.Provider, sdkmath.NewInt(100), sdkmath.NewInt(200))
	require.NoError(t, err)

	amountA, amountB, err := k.RemoveLiquidity(ctx, testutil.Provider, sdkmath.NewInt(70))
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(49), amountA)  // floor(70*100/141)
	require.Equal(t, sdkmath.NewInt(99), amountB)  // floor(70*200/141)

	reserveA, reserveB := k.GetReserves()
	require.Equal(t, sdkmath.NewInt(51), reserveA)
	require.Equal(t, sdkmath.NewInt(101), reserveB)
	require.Equal(t, sdkmath.NewInt(71), k.GetTotalShares())
	require.Equal(t, sdkmath.NewInt(71), k.GetLiquidity(testutil.Provider))
}

func TestRemoveLiquidity_FullDrainReturnsToUninitialized(t *testing.T) {
	k, ledgerA, ledgerB := testutil.AMMKeeper(t)
	ctx := context.Background()

	minted, err := k.AddLiquidity(ctx, testutil.Provider, sdkmath.NewInt(100), sdkmath.NewInt(200))
	require.NoError(t, err)

	amountA, amountB, err := k.RemoveLiquidity(ctx, testutil.Provider, minted)
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(100), amountA)
	require.Equal(t, sdkmath.NewInt(200), amountB)

	reserveA, reserveB := k.GetReserves()
	require.True(t, reserveA.IsZero())
	require.True(t, reserveB.IsZero())
	require.True(t, k.GetTotalShares().IsZero())
	require.True(t, k.GetLiquidity(testutil.Provider).IsZero())
	require.True(t, ledgerA.PoolBalance().IsZero())
	require.True(t, ledgerB.PoolBalance().IsZero())

	// The pool can bootstrap again after a full drain.
	minted, err = k.AddLiquidity(ctx, testutil.Provider, sdkmath.NewInt(400), sdkmath.NewInt(100))
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(200), minted) // isqrt(40000)
}

func TestRemoveLiquidity_Validation(t *testing.T) {
	k, _, _ := testutil.AMMKeeper(t)
	ctx := context.Background()

	_, _, err := k.RemoveLiquidity(ctx, testutil.Provider, sdkmath.ZeroInt())
	require.Error(t, err)
	require.True(t, errorsmod.IsOf(err, types.ErrZeroAmount))

	_, err = k.AddLiquidity(ctx, testutil.Provider, sdkmath.NewInt(100), sdkmath.NewInt(200))
	require.NoError(t, err)

	_, _, err = k.RemoveLiquidity(ctx, testutil.Provider, sdkmath.NewInt(142))
	require.Error(t, err)
	require.True(t, errorsmod.IsOf(err, types.ErrInsufficientShares))
	require.Contains(t, err.Error(), "have 141, need 142")

	_, _, err = k.RemoveLiquidity(ctx, "stranger", sdkmath.NewInt(1))
	require.Error(t, err)
	require.True(t, errorsmod.IsOf(err, types.ErrInsufficientShares))
}

func TestRemoveLiquidity_PayoutFailureRollsBack(t *testing.T) {
	k, ledgerA, ledgerB := testutil.AMMKeeper(t)
	ctx := context.Background()

	minted, err := k.AddLiquidity(ctx, testutil.Provider, sdkmath.NewInt(100), sdkmath.NewInt(200))
	require.NoError(t, err)

	balanceA := ledgerA.Balance(testutil.Provider)
	ledgerB.SetFailTransferOut(true)

	_, _, err = k.RemoveLiquidity(ctx, testutil.Provider, minted)
	require.Error(t, err)
	require.True(t, errorsmod.IsOf(err, types.ErrTransferFailed))

	// Committed state was rolled back and the asset A payout recovered.
	reserveA, reserveB := k.GetReserves()
	require.Equal(t, sdkmath.NewInt(100), reserveA)
	require.Equal(t, sdkmath.NewInt(200), reserveB)
	require.Equal(t, minted, k.GetLiquidity(testutil.Provider))
	require.Equal(t, balanceA, ledgerA.Balance(testutil.Provider))
	require.Equal(t, sdkmath.NewInt(100), ledgerA.PoolBalance())
}

func TestLiquidity_Notifications(t *testing.T) {
	k, _, _ := testutil.AMMKeeper(t)
	hooks := &testutil.RecordingHooks{}
	k.SetHooks(hooks)
	ctx := context.Background()

	minted, err := k.AddLiquidity(ctx, testutil.Provider, sdkmath.NewInt(100), sdkmath.NewInt(200))
	require.NoError(t, err)

	n := hooks.Last()
	require.Equal(t, types.EventTypeLiquidityAdded, n.Type)
	require.Equal(t, testutil.Provider, n.Account)
	require.Equal(t, sdkmath.NewInt(100), n.AmountA)
	require.Equal(t, sdkmath.NewInt(200), n.AmountB)
	require.Equal(t, minted, n.Shares)

	_, _, err = k.RemoveLiquidity(ctx, testutil.Provider, minted)
	require.NoError(t, err)

	n = hooks.Last()
	require.Equal(t, types.EventTypeLiquidityRemoved, n.Type)
	require.Equal(t, minted, n.Shares)
	require.Equal(t, 2, hooks.Count())
}

func TestLiquidity_HookErrorDoesNotUnwindCommit(t *testing.T) {
	k, _, _ := testutil.AMMKeeper(t)
	hooks := &testutil.RecordingHooks{Err: context.Canceled}
	k.SetHooks(hooks)
	ctx := context.Background()

	minted, err := k.AddLiquidity(ctx, testutil.Provider, sdkmath.NewInt(100), sdkmath.NewInt(200))
	require.NoError(t, err)
	require.Equal(t, sdkmath.NewInt(141), minted)
	require.Equal(t, sdkmath.NewInt(141), k.GetTotalShares())
}
