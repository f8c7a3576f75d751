package testutil

import (
	"context"
	"fmt"
	"sync"

	sdkmath "cosmossdk.io/math"
)

// Ledger is an in-memory AssetLedger for one asset. It tracks account
// balances and the pool's balance, and can be programmed to fail
// transfers to exercise abort paths.
type Ledger struct {
	mu          sync.Mutex
	denom       string
	balances    map[string]sdkmath.Int
	poolBalance sdkmath.Int

	failTransferIn  bool
	failTransferOut bool
}

// NewLedger creates an empty ledger for the given denom.
func NewLedger(denom string) *Ledger {
	return &Ledger{
		denom:       denom,
		balances:    make(map[string]sdkmath.Int),
		poolBalance: sdkmath.ZeroInt(),
	}
}

// Fund credits an account balance.
func (l *Ledger) Fund(account string, amount sdkmath.Int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.balances[account] = l.balance(account).Add(amount)
}

// Balance returns an account's balance.
func (l *Ledger) Balance(account string) sdkmath.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance(account)
}

// PoolBalance returns the asset amount the ledger tracks for the pool.
func (l *Ledger) PoolBalance() sdkmath.Int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.poolBalance
}

// SetFailTransferIn makes every subsequent TransferIn fail.
func (l *Ledger) SetFailTransferIn(fail bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failTransferIn = fail
}

// SetFailTransferOut makes every subsequent TransferOut fail.
func (l *Ledger) SetFailTransferOut(fail bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failTransferOut = fail
}

// TransferIn moves amount from the account to the pool.
func (l *Ledger) TransferIn(_ context.Context, from string, amount sdkmath.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.failTransferIn {
		return fmt.Errorf("%s ledger: transfer rejected", l.denom)
	}
	balance := l.balance(from)
	if balance.LT(amount) {
		return fmt.Errorf("%s ledger: %s has %s, needs %s", l.denom, from, balance, amount)
	}
	l.balances[from] = balance.Sub(amount)
	l.poolBalance = l.poolBalance.Add(amount)
	return nil
}

// TransferOut moves amount from the pool to the account.
func (l *Ledger) TransferOut(_ context.Context, to string, amount sdkmath.Int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.failTransferOut {
		return fmt.Errorf("%s ledger: transfer rejected", l.denom)
	}
	if l.poolBalance.LT(amount) {
		return fmt.Errorf("%s ledger: pool has %s, needs %s", l.denom, l.poolBalance, amount)
	}
	l.poolBalance = l.poolBalance.Sub(amount)
	l.balances[to] = l.balance(to).Add(amount)
	return nil
}

func (l *Ledger) balance(account string) sdkmath.Int {
	if b, ok := l.balances[account]; ok {
		return b
	}
	return sdkmath.ZeroInt()
}

// ReentrantLedger wraps a Ledger and runs Attack during TransferOut,
// before delegating. It models a malicious asset implementation that
// calls back into the pool mid-operation; the attack's error is captured
// in AttackErr for assertion.
type ReentrantLedger struct {
	*Ledger
	Attack    func(ctx context.Context) error
	AttackErr error
}

func (l *ReentrantLedger) TransferOut(ctx context.Context, to string, amount sdkmath.Int) error {
	if l.Attack != nil {
		l.AttackErr = l.Attack(ctx)
	}
	return l.Ledger.TransferOut(ctx, to, amount)
}
