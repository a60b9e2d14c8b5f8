package backtest

import (
	"time"

	"portfolio-backtest/internal/model"
)

// Direction says which sleeve a rebalance sold out of.
// Keep these values stable; they are intended for CSV/JSON output.
type Direction string

const (
	DirectionSellDividend Direction = "sell_dividend"
	DirectionBuyDividend  Direction = "buy_dividend"
)

// Snapshot is one row of per-date output.
// The ordered snapshot sequence is the primary artifact for "what happened"
// in a simulation.
type Snapshot struct {
	Date time.Time

	TotalValue     float64
	BenchmarkValue float64
	DividendValue  float64
	GrowthValue    float64

	DividendFraction float64
	GrowthFraction   float64

	Regime         model.Regime
	TargetFraction float64
}

// RebalanceEvent records one tolerance-band trade. Immutable once appended.
type RebalanceEvent struct {
	Date           time.Time
	Direction      Direction
	Regime         model.Regime
	TargetFraction float64
	AmountMoved    float64

	DividendFractionBefore float64
	DividendFractionAfter  float64
}

// RegimeVisit summarizes how often a regime was seen and what it targeted.
type RegimeVisit struct {
	Days              int     `json:"days"`
	AvgTargetFraction float64 `json:"avg_target_fraction"`
}

type Result struct {
	Snapshots []Snapshot
	Events    []RebalanceEvent

	FinalDividendValue float64
	FinalGrowthValue   float64

	Regimes map[model.Regime]RegimeVisit
}
