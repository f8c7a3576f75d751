package keeper_test

import (
	"context"
	"testing"

	"cosmossdk.io/log"
	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/driftswap/amm/testutil"
	"github.com/driftswap/amm/x/amm/keeper"
)

type KeeperTestSuite struct {
	suite.Suite

	ctx     context.Context
	keeper  *keeper.Keeper
	ledgerA *testutil.Ledger
	ledgerB *testutil.Ledger
}

func TestKeeperTestSuite(t *testing.T) {
	suite.Run(t, new(KeeperTestSuite))
}

func (s *KeeperTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.keeper, s.ledgerA, s.ledgerB = testutil.AMMKeeper(s.T())
}

func (s *KeeperTestSuite) requireInvariants() {
	msg, broken := keeper.AllInvariants(s.keeper)()
	s.Require().False(broken, msg)
}

// Full pool lifecycle: bootstrap, trade, drain, re-bootstrap.
func (s *KeeperTestSuite) TestLifecycle() {
	// Uninitialized pool rejects trades and quotes zero.
	_, err := s.keeper.SwapAForB(s.ctx, testutil.Trader, sdkmath.NewInt(10))
	s.Require().Error(err)
	s.Require().True(s.keeper.GetPrice().IsZero())

	// Bootstrap.
	minted, err := s.keeper.AddLiquidity(s.ctx, testutil.Provider, sdkmath.NewInt(100), sdkmath.NewInt(200))
	s.Require().NoError(err)
	s.Require().Equal(sdkmath.NewInt(141), minted)
	s.Require().True(s.keeper.GetPool().IsInitialized())
	s.requireInvariants()

	// Trade in both directions.
	out, err := s.keeper.SwapAForB(s.ctx, testutil.Trader, sdkmath.NewInt(10))
	s.Require().NoError(err)
	s.Require().Equal(sdkmath.NewInt(18), out)
	_, err = s.keeper.SwapBForA(s.ctx, testutil.Trader, sdkmath.NewInt(20))
	s.Require().NoError(err)
	s.requireInvariants()

	// Drain the pool completely.
	reserveA, reserveB := s.keeper.GetReserves()
	amountA, amountB, err := s.keeper.RemoveLiquidity(s.ctx, testutil.Provider, minted)
	s.Require().NoError(err)
	s.Require().Equal(reserveA, amountA)
	s.Require().Equal(reserveB, amountB)
	s.Require().False(s.keeper.GetPool().IsInitialized())
	s.Require().True(s.keeper.GetTotalShares().IsZero())
	s.Require().True(s.ledgerA.PoolBalance().IsZero())
	s.Require().True(s.ledgerB.PoolBalance().IsZero())
	s.requireInvariants()

	// A drained pool bootstraps again at a fresh ratio.
	minted, err = s.keeper.AddLiquidity(s.ctx, testutil.Trader, sdkmath.NewInt(400), sdkmath.NewInt(100))
	s.Require().NoError(err)
	s.Require().Equal(sdkmath.NewInt(200), minted)
	s.requireInvariants()
}

// Fees accrue to providers: after trading, a full withdrawal returns
// more of the traded-in asset than was deposited.
func (s *KeeperTestSuite) TestFeesAccrueToProviders() {
	minted, err := s.keeper.AddLiquidity(s.ctx, testutil.Provider, sdkmath.NewInt(100_000), sdkmath.NewInt(100_000))
	s.Require().NoError(err)

	for i := 0; i < 10; i++ {
		_, err = s.keeper.SwapAForB(s.ctx, testutil.Trader, sdkmath.NewInt(1000))
		s.Require().NoError(err)
		_, err = s.keeper.SwapBForA(s.ctx, testutil.Trader, sdkmath.NewInt(1000))
		s.Require().NoError(err)
	}

	amountA, amountB, err := s.keeper.RemoveLiquidity(s.ctx, testutil.Provider, minted)
	s.Require().NoError(err)

	// The product grew with every swap, so the withdrawal value exceeds
	// the deposit.
	withdrawn := amountA.Mul(amountB)
	deposited := sdkmath.NewInt(100_000).Mul(sdkmath.NewInt(100_000))
	s.Require().True(withdrawn.GT(deposited),
		"withdrawal product %s should exceed deposit product %s", withdrawn, deposited)
}

func TestNewKeeper_RequiresWiring(t *testing.T) {
	ledger := testutil.NewLedger(testutil.AssetA)

	require.Panics(t, func() {
		keeper.NewKeeper("", testutil.AssetB, ledger, ledger, log.NewNopLogger())
	})
	require.Panics(t, func() {
		keeper.NewKeeper(testutil.AssetA, testutil.AssetA, ledger, ledger, log.NewNopLogger())
	})
	require.Panics(t, func() {
		keeper.NewKeeper(testutil.AssetA, testutil.AssetB, nil, ledger, log.NewNopLogger())
	})
}

func TestSetHooks_Twice(t *testing.T) {
	k, _, _ := testutil.AMMKeeper(t)
	k.SetHooks(&testutil.RecordingHooks{})
	require.Panics(t, func() {
		k.SetHooks(&testutil.RecordingHooks{})
	})
}
