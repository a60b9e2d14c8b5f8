package backtest

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"portfolio-backtest/internal/model"
	"portfolio-backtest/internal/strategy"
)

// DefaultTolerance is the band around the target dividend fraction within
// which no trade fires.
const DefaultTolerance = 0.05

type Engine struct {
	Tolerance float64
	// MaxDays truncates the walk to the first N common dates. Zero runs the
	// full range. Useful for quick API previews over large datasets.
	MaxDays int
}

func New() *Engine { return &Engine{Tolerance: DefaultTolerance} }

// Run executes the simulation over the catalog's common trading dates.
//
// The walk is strictly sequential: each date's outcome depends on the ledger
// state the previous date left behind. Per date, in fixed order: dividend
// reinvestment, valuation, regime classification, tolerance-banded rebalance
// (with revaluation after a trade), benchmark tracking, snapshot. A failure
// on one date skips that date only; a run with zero snapshots fails.
func (e *Engine) Run(cat *model.Catalog, ledger *Ledger, strat strategy.Strategy) (*Result, error) {
	if cat == nil {
		return nil, fmt.Errorf("catalog is nil")
	}
	if ledger == nil {
		return nil, fmt.Errorf("ledger is nil")
	}
	if strat == nil {
		return nil, fmt.Errorf("strategy is nil")
	}
	dates := cat.CommonDates()
	if len(dates) == 0 {
		return nil, fmt.Errorf("no common trading dates across series")
	}
	if e.MaxDays > 0 && len(dates) > e.MaxDays {
		dates = dates[:e.MaxDays]
	}
	benchmarkFirst, ok := cat.Benchmark.Price(dates[0])
	if !ok {
		return nil, &model.DataError{Symbol: cat.BenchmarkSymbol, Date: dates[0], Msg: "no benchmark price on first date"}
	}

	res := &Result{Snapshots: make([]Snapshot, 0, len(dates))}
	visits := map[model.Regime]*regimeAccum{}

	for idx, date := range dates {
		snap, event, err := e.step(cat, ledger, strat, idx, date, benchmarkFirst)
		if err != nil {
			log.Warn().Err(err).Str("date", date.Format(model.DateLayout)).Msg("date skipped")
			continue
		}
		res.Snapshots = append(res.Snapshots, snap)
		if event != nil {
			res.Events = append(res.Events, *event)
		}
		acc := visits[snap.Regime]
		if acc == nil {
			acc = &regimeAccum{}
			visits[snap.Regime] = acc
		}
		acc.days++
		acc.targetSum += snap.TargetFraction
	}

	if len(res.Snapshots) == 0 {
		return nil, model.ErrEmptyResult
	}

	last := res.Snapshots[len(res.Snapshots)-1]
	res.FinalDividendValue = last.DividendValue
	res.FinalGrowthValue = last.GrowthValue
	res.Regimes = make(map[model.Regime]RegimeVisit, len(visits))
	for regime, acc := range visits {
		res.Regimes[regime] = RegimeVisit{
			Days:              acc.days,
			AvgTargetFraction: acc.targetSum / float64(acc.days),
		}
	}
	return res, nil
}

type regimeAccum struct {
	days      int
	targetSum float64
}

func (e *Engine) step(cat *model.Catalog, ledger *Ledger, strat strategy.Strategy, idx int, date time.Time, benchmarkFirst float64) (Snapshot, *RebalanceEvent, error) {
	ledger.ReinvestDividends(date, cat.Price, cat.Dividend)

	dividendValue, growthValue, totalValue := ledger.ValueBySleeve(date, cat.Price)
	currentFraction := 0.0
	if totalValue > 0 {
		currentFraction = dividendValue / totalValue
	}

	target := strat.Target(strategy.Context{Index: idx, Date: date, Benchmark: cat.Benchmark})

	var event *RebalanceEvent
	switch {
	case currentFraction > target.DividendFraction+e.Tolerance:
		amount := dividendValue - totalValue*target.DividendFraction
		if err := ledger.Rebalance(date, cat.Price, amount, model.SleeveDividend, model.SleeveGrowth); err != nil {
			return Snapshot{}, nil, err
		}
		event = &RebalanceEvent{
			Date:                   date,
			Direction:              DirectionSellDividend,
			Regime:                 target.Regime,
			TargetFraction:         target.DividendFraction,
			AmountMoved:            amount,
			DividendFractionBefore: currentFraction,
		}
	case currentFraction < target.DividendFraction-e.Tolerance:
		amount := totalValue*target.DividendFraction - dividendValue
		if err := ledger.Rebalance(date, cat.Price, amount, model.SleeveGrowth, model.SleeveDividend); err != nil {
			return Snapshot{}, nil, err
		}
		event = &RebalanceEvent{
			Date:                   date,
			Direction:              DirectionBuyDividend,
			Regime:                 target.Regime,
			TargetFraction:         target.DividendFraction,
			AmountMoved:            amount,
			DividendFractionBefore: currentFraction,
		}
	}

	if event != nil {
		// Snapshot must reflect post-trade state.
		dividendValue, growthValue, totalValue = ledger.ValueBySleeve(date, cat.Price)
		currentFraction = 0.0
		if totalValue > 0 {
			currentFraction = dividendValue / totalValue
		}
		event.DividendFractionAfter = currentFraction
	}

	benchmarkPrice, ok := cat.Benchmark.Price(date)
	if !ok {
		return Snapshot{}, nil, &model.DataError{Symbol: cat.BenchmarkSymbol, Date: date, Msg: "no benchmark price"}
	}

	snap := Snapshot{
		Date:           date,
		TotalValue:     totalValue,
		BenchmarkValue: ledger.InitialCapital * (benchmarkPrice / benchmarkFirst),
		DividendValue:  dividendValue,
		GrowthValue:    growthValue,
		Regime:         target.Regime,
		TargetFraction: target.DividendFraction,
	}
	if totalValue > 0 {
		snap.DividendFraction = dividendValue / totalValue
		snap.GrowthFraction = growthValue / totalValue
	}
	return snap, event, nil
}
