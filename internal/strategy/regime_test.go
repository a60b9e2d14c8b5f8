package strategy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-backtest/internal/model"
)

func benchmarkSeries(t *testing.T, closes []float64) *model.PriceSeries {
	t.Helper()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	points := make([]model.ClosePoint, len(closes))
	for i, px := range closes {
		points[i] = model.ClosePoint{Date: start.AddDate(0, 0, i), Close: px}
	}
	s, err := model.NewPriceSeries(points)
	require.NoError(t, err)
	return s
}

func TestClassifyBullBearSideways(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		closes []float64
		regime model.Regime
		target float64
	}{
		{"bull on +10%", []float64{100, 101, 102, 103, 104, 110}, model.RegimeBull, BullDividendFraction},
		{"bear on -10%", []float64{100, 99, 98, 97, 96, 90}, model.RegimeBear, BearDividendFraction},
		{"sideways on +2%", []float64{100, 101, 100, 101, 100, 102}, model.RegimeSideways, SidewaysDividendFraction},
		{"sideways exactly at threshold", []float64{100, 101, 102, 103, 104, 105}, model.RegimeSideways, SidewaysDividendFraction},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bench := benchmarkSeries(t, tc.closes)
			got := Classify(start.AddDate(0, 0, 5), bench, 5, 0.05)
			assert.Equal(t, tc.regime, got.Regime)
			assert.Equal(t, tc.target, got.DividendFraction)
		})
	}
}

func TestClassifyWarmupIsSideways(t *testing.T) {
	bench := benchmarkSeries(t, []float64{100, 120, 140, 160})
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	// Fewer than lookback observations behind the date.
	for i := 0; i < 4; i++ {
		got := Classify(start.AddDate(0, 0, i), bench, 5, 0.05)
		assert.Equal(t, model.RegimeSideways, got.Regime, "day %d", i)
		assert.Equal(t, SidewaysDividendFraction, got.DividendFraction)
	}
}

func TestClassifyLookupMissIsSideways(t *testing.T) {
	bench := benchmarkSeries(t, []float64{100, 101, 102})

	got := Classify(time.Date(2030, 6, 1, 0, 0, 0, 0, time.UTC), bench, 2, 0.05)
	assert.Equal(t, model.RegimeSideways, got.Regime)

	got = Classify(time.Now(), nil, 2, 0.05)
	assert.Equal(t, model.RegimeSideways, got.Regime)
}

func TestClassifyUsesIndexOffsetsNotCalendarDays(t *testing.T) {
	// A gap in the series: the lookback must count observations, not days.
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	points := []model.ClosePoint{
		{Date: start, Close: 100},
		{Date: start.AddDate(0, 0, 1), Close: 101},
		{Date: start.AddDate(0, 0, 10), Close: 102}, // long gap
		{Date: start.AddDate(0, 0, 11), Close: 120},
	}
	bench, err := model.NewPriceSeries(points)
	require.NoError(t, err)

	// Three observations back from the last one is the first, +20%.
	got := Classify(start.AddDate(0, 0, 11), bench, 3, 0.05)
	assert.Equal(t, model.RegimeBull, got.Regime)
}

func TestMarketRegimeStrategyDefaults(t *testing.T) {
	bench := benchmarkSeries(t, []float64{100, 101, 102})
	s := &MarketRegimeStrategy{}
	assert.Equal(t, "market_regime", s.Name())

	// Defaults kick in; with only 3 observations everything is warm-up.
	got := s.Target(Context{Date: time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), Benchmark: bench})
	assert.Equal(t, model.RegimeSideways, got.Regime)
}

func TestFixedTargetStrategy(t *testing.T) {
	s := &FixedTargetStrategy{DividendFraction: 0.85}
	assert.Equal(t, "fixed_target", s.Name())
	got := s.Target(Context{})
	assert.Equal(t, 0.85, got.DividendFraction)
	assert.Equal(t, model.RegimeSideways, got.Regime)

	// Unset fraction falls back to the sideways default.
	got = (&FixedTargetStrategy{}).Target(Context{})
	assert.Equal(t, SidewaysDividendFraction, got.DividendFraction)
}

func TestBuild(t *testing.T) {
	s, err := Build("market_regime", map[string]any{"lookback_days": 30, "threshold": 0.03})
	require.NoError(t, err)
	mr, ok := s.(*MarketRegimeStrategy)
	require.True(t, ok)
	assert.Equal(t, 30, mr.LookbackDays)
	assert.Equal(t, 0.03, mr.Threshold)

	s, err = Build("fixed_target", map[string]any{"dividend_fraction": 0.6})
	require.NoError(t, err)
	ft, ok := s.(*FixedTargetStrategy)
	require.True(t, ok)
	assert.Equal(t, 0.6, ft.DividendFraction)

	_, err = Build("martingale", nil)
	require.Error(t, err)
}

func TestBuildDefaultsOnMissingParams(t *testing.T) {
	s, err := Build("market_regime", nil)
	require.NoError(t, err)
	mr := s.(*MarketRegimeStrategy)
	assert.Equal(t, DefaultLookbackDays, mr.LookbackDays)
	assert.Equal(t, DefaultThreshold, mr.Threshold)
}
