package strategy

import (
	"time"

	"portfolio-backtest/internal/model"
)

// Target dividend-sleeve fractions per regime. Bull markets lean into growth,
// bear markets into dividend defense, sideways is neutral.
const (
	BullDividendFraction     = 0.55
	BearDividendFraction     = 0.85
	SidewaysDividendFraction = 0.70

	DefaultLookbackDays = 60
	DefaultThreshold    = 0.05
)

// Classify maps benchmark momentum on a date to a regime target.
//
// The change is computed over lookbackDays *index offsets* into the benchmark
// series, not calendar days, so weekends and data gaps do not stretch the
// window. Dates with fewer than lookbackDays prior observations, and any
// lookup miss, fall back to the sideways default: classification never fails.
func Classify(date time.Time, benchmark *model.PriceSeries, lookbackDays int, threshold float64) model.RegimeTarget {
	sideways := model.RegimeTarget{Regime: model.RegimeSideways, DividendFraction: SidewaysDividendFraction}
	if benchmark == nil {
		return sideways
	}
	idx, ok := benchmark.Index(date)
	if !ok || idx < lookbackDays {
		return sideways
	}
	past := benchmark.CloseAt(idx - lookbackDays)
	if past <= 0 {
		return sideways
	}
	change := (benchmark.CloseAt(idx) - past) / past
	switch {
	case change > threshold:
		return model.RegimeTarget{Regime: model.RegimeBull, DividendFraction: BullDividendFraction}
	case change < -threshold:
		return model.RegimeTarget{Regime: model.RegimeBear, DividendFraction: BearDividendFraction}
	default:
		return sideways
	}
}

// MarketRegimeStrategy rebalances toward regime-dependent targets derived
// from benchmark momentum.
type MarketRegimeStrategy struct {
	LookbackDays int
	Threshold    float64
}

func (s *MarketRegimeStrategy) Name() string { return "market_regime" }

func (s *MarketRegimeStrategy) Target(ctx Context) model.RegimeTarget {
	lookback := s.LookbackDays
	if lookback <= 0 {
		lookback = DefaultLookbackDays
	}
	threshold := s.Threshold
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return Classify(ctx.Date, ctx.Benchmark, lookback, threshold)
}
