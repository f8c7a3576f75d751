// Package keeper implements the constant-product AMM engine for a
// single asset pair: provider share accounting, fee-adjusted swap
// pricing and the atomicity discipline around the external asset
// ledgers. Every public operation is a single indivisible transition on
// the pool state; it either commits fully or leaves no observable
// change.
package keeper
