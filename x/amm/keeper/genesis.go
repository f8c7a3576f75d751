package keeper

import (
	"sort"

	sdkmath "cosmossdk.io/math"

	"github.com/driftswap/amm/x/amm/types"
)

// InitGenesis replaces the keeper's state with the given snapshot. The
// snapshot must validate and must describe the same asset pair the
// keeper was constructed for.
func (k *Keeper) InitGenesis(gs *types.GenesisState) error {
	if err := gs.Validate(); err != nil {
		return err
	}

	k.mu.Lock()
	defer k.mu.Unlock()

	if gs.Pool.AssetA != k.pool.AssetA || gs.Pool.AssetB != k.pool.AssetB {
		return types.ErrInvalidPoolState.Wrapf(
			"snapshot pair %s/%s does not match keeper pair %s/%s",
			gs.Pool.AssetA, gs.Pool.AssetB, k.pool.AssetA, k.pool.AssetB,
		)
	}

	shares := make(map[string]sdkmath.Int, len(gs.Positions))
	for _, pos := range gs.Positions {
		shares[pos.Provider] = pos.Shares
	}

	k.pool = gs.Pool
	k.shares = shares
	return nil
}

// ExportGenesis returns a snapshot of the current pool state. Positions
// are sorted by provider for deterministic output.
func (k *Keeper) ExportGenesis() *types.GenesisState {
	k.mu.RLock()
	defer k.mu.RUnlock()

	positions := make([]types.Position, 0, len(k.shares))
	for provider, shares := range k.shares {
		positions = append(positions, types.Position{Provider: provider, Shares: shares})
	}
	sort.Slice(positions, func(i, j int) bool {
		return positions[i].Provider < positions[j].Provider
	})

	return &types.GenesisState{
		Pool:      k.pool,
		Positions: positions,
	}
}
