package types

import (
	sdkmath "cosmossdk.io/math"
)

// Position records one provider's share balance for import/export.
type Position struct {
	Provider string
	Shares   sdkmath.Int
}

// GenesisState is a full snapshot of the pool: reserves, total shares
// and every provider position. It is the unit of state import/export.
type GenesisState struct {
	Pool      Pool
	Positions []Position
}

// DefaultGenesis returns an empty pool snapshot for the given pair.
func DefaultGenesis(assetA, assetB string) *GenesisState {
	return &GenesisState{
		Pool:      NewPool(assetA, assetB),
		Positions: []Position{},
	}
}

// Validate ensures the snapshot is well-formed: a valid pool record,
// unique providers with positive share balances, and exact conservation
// of shares (the position sum must equal the pool's total).
func (gs GenesisState) Validate() error {
	if err := gs.Pool.Validate(); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(gs.Positions))
	sum := sdkmath.ZeroInt()
	for _, pos := range gs.Positions {
		if pos.Provider == "" {
			return ErrInvalidPoolState.Wrap("position provider cannot be empty")
		}
		if _, ok := seen[pos.Provider]; ok {
			return ErrInvalidPoolState.Wrapf("duplicate position for provider %s", pos.Provider)
		}
		seen[pos.Provider] = struct{}{}

		if pos.Shares.IsNil() || !pos.Shares.IsPositive() {
			return ErrInvalidPoolState.Wrapf("position for %s must hold positive shares", pos.Provider)
		}
		sum = sum.Add(pos.Shares)
	}

	if !sum.Equal(gs.Pool.TotalShares) {
		return ErrInvariantViolation.Wrapf(
			"share conservation broken: positions sum to %s, pool total is %s",
			sum, gs.Pool.TotalShares,
		)
	}
	return nil
}
