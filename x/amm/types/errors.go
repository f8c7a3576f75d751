package types

import (
	"cosmossdk.io/errors"
)

// AMM module sentinel errors
var (
	ErrZeroAmount            = errors.Register(ModuleName, 2, "amount cannot be zero")
	ErrRatioMismatch         = errors.Register(ModuleName, 3, "deposit does not match pool ratio")
	ErrInsufficientLiquidity = errors.Register(ModuleName, 4, "insufficient liquidity")
	ErrInsufficientShares    = errors.Register(ModuleName, 5, "insufficient liquidity shares")
	ErrNoLiquidity           = errors.Register(ModuleName, 6, "no liquidity in pool")
	ErrZeroOutput            = errors.Register(ModuleName, 7, "swap output is zero")
	ErrArithmetic            = errors.Register(ModuleName, 8, "arithmetic overflow or underflow")
	ErrTransferFailed        = errors.Register(ModuleName, 9, "asset transfer failed")
	ErrReentrancy            = errors.Register(ModuleName, 10, "reentrant pool operation")
	ErrInvalidPoolState      = errors.Register(ModuleName, 11, "invalid pool state")
	ErrInvariantViolation    = errors.Register(ModuleName, 12, "pool invariant violated")
	ErrInvalidAsset          = errors.Register(ModuleName, 13, "asset not in pool")
)
