package analysis

import (
	"math"
	"sort"
	"time"

	"portfolio-backtest/internal/backtest"
	"portfolio-backtest/internal/model"
)

const (
	// RiskFreeRate is the annual rate used in the Sharpe ratio.
	RiskFreeRate = 0.02
	// TradingDaysPerYear annualizes daily return statistics.
	TradingDaysPerYear = 252
)

// Summary is a run-level report derived from the snapshot sequence. It is
// presentation-only; nothing in the simulation consumes it.
type Summary struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`

	InitialCapital      float64 `json:"initial_capital"`
	FinalValue          float64 `json:"final_value"`
	FinalBenchmarkValue float64 `json:"final_benchmark_value"`

	TotalReturn     float64 `json:"total_return"`
	BenchmarkReturn float64 `json:"benchmark_return"`
	ExcessReturn    float64 `json:"excess_return"`

	AnnualizedReturn float64 `json:"annualized_return"`
	Volatility       float64 `json:"volatility"`
	SharpeRatio      float64 `json:"sharpe_ratio"`
	MaxDrawdown      float64 `json:"max_drawdown"`

	P05DailyReturn float64 `json:"p05_daily_return"`
	P95DailyReturn float64 `json:"p95_daily_return"`

	FinalDividendValue float64 `json:"final_dividend_value"`
	FinalGrowthValue   float64 `json:"final_growth_value"`
	DividendReturn     float64 `json:"dividend_return"`
	GrowthReturn       float64 `json:"growth_return"`

	TradingDays      int     `json:"trading_days"`
	RebalanceCount   int     `json:"rebalance_count"`
	TotalAmountMoved float64 `json:"total_amount_moved"`

	Regimes map[model.Regime]backtest.RegimeVisit `json:"regimes"`
}

// Summarize computes the summary for a completed run. dividendAlloc is the
// initial dividend-sleeve fraction, needed to attribute per-sleeve returns
// against their initial budgets.
func Summarize(res *backtest.Result, initialCapital, dividendAlloc float64) Summary {
	s := Summary{
		InitialCapital: initialCapital,
		Regimes:        res.Regimes,
		TradingDays:    len(res.Snapshots),
	}
	if len(res.Snapshots) == 0 {
		return s
	}

	first := res.Snapshots[0]
	last := res.Snapshots[len(res.Snapshots)-1]
	s.StartDate = first.Date
	s.EndDate = last.Date
	s.FinalValue = last.TotalValue
	s.FinalBenchmarkValue = last.BenchmarkValue
	s.FinalDividendValue = res.FinalDividendValue
	s.FinalGrowthValue = res.FinalGrowthValue

	if initialCapital > 0 {
		s.TotalReturn = (s.FinalValue - initialCapital) / initialCapital
		s.BenchmarkReturn = (s.FinalBenchmarkValue - initialCapital) / initialCapital
		s.ExcessReturn = s.TotalReturn - s.BenchmarkReturn
	}

	initialDividend := initialCapital * dividendAlloc
	initialGrowth := initialCapital * (1 - dividendAlloc)
	if initialDividend > 0 {
		s.DividendReturn = (s.FinalDividendValue - initialDividend) / initialDividend
	}
	if initialGrowth > 0 {
		s.GrowthReturn = (s.FinalGrowthValue - initialGrowth) / initialGrowth
	}

	returns := dailyReturns(res.Snapshots)
	if len(returns) > 0 {
		mean := meanOf(returns)
		s.AnnualizedReturn = mean * TradingDaysPerYear
		s.Volatility = stdOf(returns, mean) * math.Sqrt(TradingDaysPerYear)
		if s.Volatility > 0 {
			s.SharpeRatio = (s.AnnualizedReturn - RiskFreeRate) / s.Volatility
		}
		sorted := append([]float64(nil), returns...)
		sort.Float64s(sorted)
		s.P05DailyReturn = percentileSorted(sorted, 0.05)
		s.P95DailyReturn = percentileSorted(sorted, 0.95)
	}
	s.MaxDrawdown = maxDrawdown(res.Snapshots)

	s.RebalanceCount = len(res.Events)
	for _, e := range res.Events {
		s.TotalAmountMoved += e.AmountMoved
	}
	return s
}

func dailyReturns(snapshots []backtest.Snapshot) []float64 {
	out := make([]float64, 0, len(snapshots))
	for i := 1; i < len(snapshots); i++ {
		prev := snapshots[i-1].TotalValue
		if prev <= 0 {
			continue
		}
		out = append(out, (snapshots[i].TotalValue-prev)/prev)
	}
	return out
}

// maxDrawdown is the most negative excursion below the expanding running
// maximum of total value. Always <= 0.
func maxDrawdown(snapshots []backtest.Snapshot) float64 {
	peak := math.Inf(-1)
	worst := 0.0
	for _, snap := range snapshots {
		if snap.TotalValue > peak {
			peak = snap.TotalValue
		}
		if peak > 0 {
			dd := (snap.TotalValue - peak) / peak
			if dd < worst {
				worst = dd
			}
		}
	}
	return worst
}

func meanOf(xs []float64) float64 {
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// stdOf is the sample standard deviation (n-1 denominator).
func stdOf(xs []float64, mean float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	ss := 0.0
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}

func percentileSorted(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	// Linear interpolation between order stats.
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}
