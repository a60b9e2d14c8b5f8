package backtest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-backtest/internal/model"
	"portfolio-backtest/internal/strategy"
)

func testDates(n int) []time.Time {
	out := make([]time.Time, n)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range out {
		out[i] = start.AddDate(0, 0, i)
	}
	return out
}

func seriesOf(t *testing.T, dates []time.Time, closes []float64) *model.PriceSeries {
	t.Helper()
	require.Equal(t, len(dates), len(closes))
	points := make([]model.ClosePoint, len(dates))
	for i := range dates {
		points[i] = model.ClosePoint{Date: dates[i], Close: closes[i]}
	}
	s, err := model.NewPriceSeries(points)
	require.NoError(t, err)
	return s
}

func flatCloses(n int, px float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = px
	}
	return out
}

// testCatalog builds a constant-price catalog: A and B in the dividend
// sleeve, C in growth, SPY as benchmark.
func testCatalog(t *testing.T, dates []time.Time, benchCloses []float64) *model.Catalog {
	t.Helper()
	n := len(dates)
	return &model.Catalog{
		BenchmarkSymbol: "SPY",
		Benchmark:       seriesOf(t, dates, benchCloses),
		Prices: map[string]*model.PriceSeries{
			"A": seriesOf(t, dates, flatCloses(n, 50)),
			"B": seriesOf(t, dates, flatCloses(n, 100)),
			"C": seriesOf(t, dates, flatCloses(n, 20)),
		},
		Dividends:       map[string]*model.DividendSeries{},
		DividendSymbols: []string{"A", "B"},
		GrowthSymbols:   []string{"C"},
		Weights:         map[string]float64{"A": 0.5, "B": 0.5},
	}
}

func testLedger(t *testing.T, cat *model.Catalog, alloc float64) *Ledger {
	t.Helper()
	ledger, err := NewLedgerFromCatalog(cat, 100_000, alloc, nil)
	require.NoError(t, err)
	return ledger
}

func TestRunAtTargetProducesNoEvents(t *testing.T) {
	dates := testDates(20)
	cat := testCatalog(t, dates, flatCloses(20, 400))
	ledger := testLedger(t, cat, 0.70)

	res, err := New().Run(cat, ledger, &strategy.FixedTargetStrategy{DividendFraction: 0.70})
	require.NoError(t, err)

	assert.Len(t, res.Snapshots, 20)
	assert.Empty(t, res.Events)
	for _, snap := range res.Snapshots {
		assert.InDelta(t, 100_000, snap.TotalValue, 1e-6)
		assert.InDelta(t, 100_000, snap.BenchmarkValue, 1e-6)
		assert.InDelta(t, 0.70, snap.DividendFraction, 1e-9)
	}
	assert.InDelta(t, 70_000, res.FinalDividendValue, 1e-6)
	assert.InDelta(t, 30_000, res.FinalGrowthValue, 1e-6)
}

func TestRunRebalancesOutOfBandThenHolds(t *testing.T) {
	dates := testDates(10)
	cat := testCatalog(t, dates, flatCloses(10, 400))
	// 0.77 starting fraction against a 0.70 target breaches the 0.05 band.
	ledger := testLedger(t, cat, 0.77)

	res, err := New().Run(cat, ledger, &strategy.FixedTargetStrategy{DividendFraction: 0.70})
	require.NoError(t, err)

	require.Len(t, res.Events, 1)
	e := res.Events[0]
	assert.Equal(t, DirectionSellDividend, e.Direction)
	assert.Equal(t, dates[0], e.Date)
	assert.InDelta(t, 0.77, e.DividendFractionBefore, 1e-9)
	assert.InDelta(t, 0.70, e.DividendFractionAfter, 1e-9)
	assert.InDelta(t, 7_000, e.AmountMoved, 1e-6)

	// Prices never move, so one trade is enough for the whole run.
	for _, snap := range res.Snapshots {
		assert.InDelta(t, 100_000, snap.TotalValue, 1e-6)
		assert.InDelta(t, 0.70, snap.DividendFraction, 1e-9)
	}
}

func TestRunBuysDividendSleeveWhenUnderweight(t *testing.T) {
	dates := testDates(5)
	cat := testCatalog(t, dates, flatCloses(5, 400))
	ledger := testLedger(t, cat, 0.60)

	res, err := New().Run(cat, ledger, &strategy.FixedTargetStrategy{DividendFraction: 0.70})
	require.NoError(t, err)

	require.Len(t, res.Events, 1)
	assert.Equal(t, DirectionBuyDividend, res.Events[0].Direction)
	assert.InDelta(t, 0.70, res.Events[0].DividendFractionAfter, 1e-9)
}

func TestRunKeepsSleeveMembership(t *testing.T) {
	dates := testDates(10)
	cat := testCatalog(t, dates, flatCloses(10, 400))
	ledger := testLedger(t, cat, 0.77)

	_, err := New().Run(cat, ledger, &strategy.FixedTargetStrategy{DividendFraction: 0.70})
	require.NoError(t, err)

	for _, sym := range []string{"A", "B"} {
		p, ok := ledger.Position(sym)
		require.True(t, ok)
		assert.Equal(t, model.SleeveDividend, p.Sleeve)
	}
	c, _ := ledger.Position("C")
	assert.Equal(t, model.SleeveGrowth, c.Sleeve)
}

func TestRunEmptyGrowthSleeveFailsEveryDate(t *testing.T) {
	dates := testDates(5)
	n := len(dates)
	cat := &model.Catalog{
		BenchmarkSymbol: "SPY",
		Benchmark:       seriesOf(t, dates, flatCloses(n, 400)),
		Prices: map[string]*model.PriceSeries{
			"A": seriesOf(t, dates, flatCloses(n, 50)),
		},
		Dividends:       map[string]*model.DividendSeries{},
		DividendSymbols: []string{"A"},
		Weights:         map[string]float64{"A": 1},
	}
	ledger, err := NewLedger(100_000, 1.0, cat.Weights, map[string]float64{"A": 50}, nil)
	require.NoError(t, err)

	// Every date wants to sell dividend into a sleeve that has no symbols,
	// so every date is skipped and the run comes back empty.
	_, err = New().Run(cat, ledger, &strategy.FixedTargetStrategy{DividendFraction: 0.20})
	require.ErrorIs(t, err, model.ErrEmptyResult)
}

func TestRunTracksBenchmark(t *testing.T) {
	dates := testDates(4)
	cat := testCatalog(t, dates, []float64{400, 440, 480, 800})
	ledger := testLedger(t, cat, 0.70)

	res, err := New().Run(cat, ledger, &strategy.FixedTargetStrategy{DividendFraction: 0.70})
	require.NoError(t, err)

	require.Len(t, res.Snapshots, 4)
	assert.InDelta(t, 110_000, res.Snapshots[1].BenchmarkValue, 1e-6)
	assert.InDelta(t, 200_000, res.Snapshots[3].BenchmarkValue, 1e-6)
}

func TestRunMaxDaysTruncates(t *testing.T) {
	dates := testDates(30)
	cat := testCatalog(t, dates, flatCloses(30, 400))
	ledger := testLedger(t, cat, 0.70)

	eng := New()
	eng.MaxDays = 7
	res, err := eng.Run(cat, ledger, &strategy.FixedTargetStrategy{DividendFraction: 0.70})
	require.NoError(t, err)
	assert.Len(t, res.Snapshots, 7)
}

func TestRunReinvestsDividendsIntoSnapshots(t *testing.T) {
	dates := testDates(3)
	cat := testCatalog(t, dates, flatCloses(3, 400))
	cat.Dividends["A"] = model.NewDividendSeries(map[time.Time]float64{dates[1]: 1.0})
	ledger := testLedger(t, cat, 0.70)

	res, err := New().Run(cat, ledger, &strategy.FixedTargetStrategy{DividendFraction: 0.70})
	require.NoError(t, err)

	// 700 shares of A pay $1 each, reinvested at $50 into 14 more shares.
	a, _ := ledger.Position("A")
	assert.InDelta(t, 714, a.Shares, 1e-9)
	assert.Greater(t, res.Snapshots[1].TotalValue, res.Snapshots[0].TotalValue)
}

func TestRunAggregatesRegimes(t *testing.T) {
	dates := testDates(20)
	// 1% daily rise: past the warm-up, every 5-day window clears the 5% bar.
	closes := make([]float64, 20)
	for i := range closes {
		closes[i] = 400 * pow(1.011, i)
	}
	cat := testCatalog(t, dates, closes)
	ledger := testLedger(t, cat, 0.70)

	res, err := New().Run(cat, ledger, &strategy.MarketRegimeStrategy{LookbackDays: 5, Threshold: 0.05})
	require.NoError(t, err)

	totalDays := 0
	for _, visit := range res.Regimes {
		totalDays += visit.Days
	}
	assert.Equal(t, len(res.Snapshots), totalDays)

	bull, ok := res.Regimes[model.RegimeBull]
	require.True(t, ok)
	assert.Equal(t, 15, bull.Days)
	assert.InDelta(t, 0.55, bull.AvgTargetFraction, 1e-9)

	sideways := res.Regimes[model.RegimeSideways]
	assert.Equal(t, 5, sideways.Days)
}

func pow(base float64, n int) float64 {
	out := 1.0
	for i := 0; i < n; i++ {
		out *= base
	}
	return out
}
