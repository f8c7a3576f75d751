package keeper

import (
	"sync"

	"cosmossdk.io/log"
	sdkmath "cosmossdk.io/math"

	"github.com/driftswap/amm/x/amm/types"
)

// Keeper owns the pool state for one asset pair: the two reserves, the
// total outstanding shares and the per-provider share map. All mutation
// flows through the liquidity and swap entrypoints; nothing else touches
// these fields. mu guards every read and every commit and is never held
// across a ledger call, so a concurrent reader can never observe a
// half-applied operation. The reentrancy guard spans whole operations,
// ledger calls included.
type Keeper struct {
	mu     sync.RWMutex
	pool   types.Pool
	shares map[string]sdkmath.Int

	ledgerA types.AssetLedger
	ledgerB types.AssetLedger
	hooks   types.AmmHooks
	guard   *ReentrancyGuard
	logger  log.Logger
	metrics *Metrics
}

// NewKeeper creates a new pool Keeper instance for the given asset pair.
// The two ledgers are the external transfer collaborators for asset A
// and asset B respectively. Miswiring is a programmer error and panics.
func NewKeeper(assetA, assetB string, ledgerA, ledgerB types.AssetLedger, logger log.Logger) *Keeper {
	if assetA == "" || assetB == "" || assetA == assetB {
		panic("amm keeper requires two distinct asset denoms")
	}
	if ledgerA == nil || ledgerB == nil {
		panic("amm keeper requires a ledger per asset")
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Keeper{
		pool:    types.NewPool(assetA, assetB),
		shares:  make(map[string]sdkmath.Int),
		ledgerA: ledgerA,
		ledgerB: ledgerB,
		guard:   NewReentrancyGuard(),
		logger:  logger,
	}
}

// SetHooks sets the pool notification hooks. Panics if called more than
// once, so wiring bugs surface at startup rather than as silently
// replaced subscribers.
func (k *Keeper) SetHooks(h types.AmmHooks) *Keeper {
	if k.hooks != nil {
		panic("cannot set amm hooks twice")
	}
	k.hooks = h
	return k
}

// SetMetrics attaches Prometheus metrics. A nil metrics set disables
// recording; every call site is nil-guarded.
func (k *Keeper) SetMetrics(m *Metrics) {
	k.metrics = m
}

// Logger returns a module-tagged logger.
func (k *Keeper) Logger() log.Logger {
	return k.logger.With("module", "x/"+types.ModuleName)
}
