package testutil

import (
	"testing"

	"cosmossdk.io/log"
	sdkmath "cosmossdk.io/math"

	"github.com/driftswap/amm/x/amm/keeper"
)

// Default test identities and asset denoms.
const (
	AssetA = "udrift"
	AssetB = "uusdc"

	Provider = "lp1"
	Trader   = "trader1"
)

// DefaultFunding is the balance every test account starts with.
var DefaultFunding = sdkmath.NewInt(1_000_000_000)

// AMMKeeper returns a wired pool keeper with in-memory ledgers. Both
// default accounts are funded on each ledger.
func AMMKeeper(t testing.TB) (*keeper.Keeper, *Ledger, *Ledger) {
	t.Helper()

	ledgerA := NewLedger(AssetA)
	ledgerB := NewLedger(AssetB)
	for _, account := range []string{Provider, Trader} {
		ledgerA.Fund(account, DefaultFunding)
		ledgerB.Fund(account, DefaultFunding)
	}

	k := keeper.NewKeeper(AssetA, AssetB, ledgerA, ledgerB, log.NewTestLogger(t))
	return k, ledgerA, ledgerB
}
