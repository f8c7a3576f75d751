package keeper

import (
	"math/big"
	"sync"

	sdkmath "cosmossdk.io/math"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the AMM module.
type Metrics struct {
	SwapsTotal       *prometheus.CounterVec
	SwapVolume       *prometheus.CounterVec
	LiquidityAdded   *prometheus.CounterVec
	LiquidityRemoved *prometheus.CounterVec
	PoolReserves     *prometheus.GaugeVec
	ShareSupply      prometheus.Gauge
}

var (
	ammMetricsOnce sync.Once
	ammMetrics     *Metrics
)

// NewMetrics creates and registers AMM metrics (singleton pattern).
func NewMetrics() *Metrics {
	ammMetricsOnce.Do(func() {
		ammMetrics = &Metrics{
			SwapsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "driftswap",
					Subsystem: "amm",
					Name:      "swaps_total",
					Help:      "Total number of swaps executed",
				},
				[]string{"asset_in", "asset_out", "status"},
			),
			SwapVolume: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "driftswap",
					Subsystem: "amm",
					Name:      "swap_volume_total",
					Help:      "Total swap input volume in base units",
				},
				[]string{"asset"},
			),
			LiquidityAdded: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "driftswap",
					Subsystem: "amm",
					Name:      "liquidity_added_total",
					Help:      "Total liquidity deposited in base units",
				},
				[]string{"asset"},
			),
			LiquidityRemoved: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Namespace: "driftswap",
					Subsystem: "amm",
					Name:      "liquidity_removed_total",
					Help:      "Total liquidity withdrawn in base units",
				},
				[]string{"asset"},
			),
			PoolReserves: promauto.NewGaugeVec(
				prometheus.GaugeOpts{
					Namespace: "driftswap",
					Subsystem: "amm",
					Name:      "pool_reserves",
					Help:      "Current pool reserve per asset in base units",
				},
				[]string{"asset"},
			),
			ShareSupply: promauto.NewGauge(
				prometheus.GaugeOpts{
					Namespace: "driftswap",
					Subsystem: "amm",
					Name:      "share_supply",
					Help:      "Total outstanding provider shares",
				},
			),
		}
	})
	return ammMetrics
}

// recordPoolGauges refreshes the reserve and share supply gauges.
func (k *Keeper) recordPoolGauges() {
	if k.metrics == nil {
		return
	}
	pool := k.GetPool()
	k.metrics.PoolReserves.WithLabelValues(pool.AssetA).Set(gaugeValue(pool.ReserveA))
	k.metrics.PoolReserves.WithLabelValues(pool.AssetB).Set(gaugeValue(pool.ReserveB))
	k.metrics.ShareSupply.Set(gaugeValue(pool.TotalShares))
}

// gaugeValue converts an sdkmath.Int to a float64 for metric export.
// Reserves can exceed int64 range, so this goes through big.Float
// instead of Int64.
func gaugeValue(i sdkmath.Int) float64 {
	f, _ := new(big.Float).SetInt(i.BigInt()).Float64()
	return f
}
