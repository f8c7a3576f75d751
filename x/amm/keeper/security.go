package keeper

import (
	"sync"

	"github.com/driftswap/amm/x/amm/types"
)

// poolLockKey is the single pool-wide occupancy key. Every mutating
// operation competes for the same key, so a ledger implementation that
// calls back into any pool entrypoint mid-operation is rejected, not
// deadlocked.
const poolLockKey = "pool"

// ReentrancyGuard provides non-blocking occupancy locks. Lock fails
// instead of waiting: an in-flight operation holding the key means any
// second entry, reentrant or concurrent, gets ErrReentrancy and the
// caller retries once the first operation has settled.
type ReentrancyGuard struct {
	mu    sync.Mutex
	locks map[string]struct{}
}

// NewReentrancyGuard creates a new guard instance.
func NewReentrancyGuard() *ReentrancyGuard {
	return &ReentrancyGuard{locks: make(map[string]struct{})}
}

// Lock acquires the key or fails with ErrReentrancy if it is held.
func (g *ReentrancyGuard) Lock(key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, exists := g.locks[key]; exists {
		return types.ErrReentrancy.Wrapf("reentrancy detected for %s", key)
	}

	g.locks[key] = struct{}{}
	return nil
}

// Unlock releases the key.
func (g *ReentrancyGuard) Unlock(key string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.locks, key)
}

// withPoolGuard executes fn with the pool-wide operation-in-progress
// flag held. The flag spans the whole operation body including external
// ledger calls; it is released even if fn panics.
func (k *Keeper) withPoolGuard(operation string, fn func() error) error {
	if err := k.guard.Lock(poolLockKey); err != nil {
		return types.ErrReentrancy.Wrapf("%s: pool operation already in progress", operation)
	}
	defer k.guard.Unlock(poolLockKey)

	return fn()
}
