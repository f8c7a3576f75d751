package testutil

import (
	"context"
	"sync"

	sdkmath "cosmossdk.io/math"

	"github.com/driftswap/amm/x/amm/types"
)

// Notification is one recorded hook invocation.
type Notification struct {
	Type      string
	Account   string
	AssetIn   string
	AssetOut  string
	AmountA   sdkmath.Int
	AmountB   sdkmath.Int
	AmountIn  sdkmath.Int
	AmountOut sdkmath.Int
	Shares    sdkmath.Int
}

// RecordingHooks captures every pool notification for assertions.
type RecordingHooks struct {
	mu            sync.Mutex
	Notifications []Notification
	Err           error // returned from every hook when set
}

var _ types.AmmHooks = (*RecordingHooks)(nil)

func (h *RecordingHooks) AfterLiquidityAdded(_ context.Context, provider string, amountA, amountB, sharesMinted sdkmath.Int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Notifications = append(h.Notifications, Notification{
		Type:    types.EventTypeLiquidityAdded,
		Account: provider,
		AmountA: amountA,
		AmountB: amountB,
		Shares:  sharesMinted,
	})
	return h.Err
}

func (h *RecordingHooks) AfterLiquidityRemoved(_ context.Context, provider string, amountA, amountB, sharesBurned sdkmath.Int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Notifications = append(h.Notifications, Notification{
		Type:    types.EventTypeLiquidityRemoved,
		Account: provider,
		AmountA: amountA,
		AmountB: amountB,
		Shares:  sharesBurned,
	})
	return h.Err
}

func (h *RecordingHooks) AfterSwap(_ context.Context, trader string, assetIn, assetOut string, amountIn, amountOut sdkmath.Int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.Notifications = append(h.Notifications, Notification{
		Type:      types.EventTypeSwap,
		Account:   trader,
		AssetIn:   assetIn,
		AssetOut:  assetOut,
		AmountIn:  amountIn,
		AmountOut: amountOut,
	})
	return h.Err
}

// Last returns the most recent notification, or a zero value if none.
func (h *RecordingHooks) Last() Notification {
	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.Notifications) == 0 {
		return Notification{}
	}
	return h.Notifications[len(h.Notifications)-1]
}

// Count returns the number of recorded notifications.
func (h *RecordingHooks) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.Notifications)
}
