package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSeries(t *testing.T, days []int, px float64) *PriceSeries {
	t.Helper()
	points := make([]ClosePoint, len(days))
	for i, d := range days {
		points[i] = ClosePoint{Date: day(d), Close: px}
	}
	s, err := NewPriceSeries(points)
	require.NoError(t, err)
	return s
}

func TestCommonDatesIntersectsAllSeries(t *testing.T) {
	cat := &Catalog{
		BenchmarkSymbol: "SPY",
		Benchmark:       mustSeries(t, []int{0, 1, 2, 3, 4}, 400),
		Prices: map[string]*PriceSeries{
			"A": mustSeries(t, []int{0, 1, 3, 4}, 50),
			"C": mustSeries(t, []int{0, 1, 2, 3}, 20),
		},
		DividendSymbols: []string{"A"},
		GrowthSymbols:   []string{"C"},
	}

	dates := cat.CommonDates()
	require.Len(t, dates, 3)
	assert.Equal(t, []time.Time{day(0), day(1), day(3)}, dates)
}

func TestCommonDatesNilBenchmark(t *testing.T) {
	assert.Nil(t, (&Catalog{}).CommonDates())
}

func TestInitialPricesSkipsMissing(t *testing.T) {
	cat := &Catalog{
		Prices: map[string]*PriceSeries{
			"A": mustSeries(t, []int{0, 1}, 50),
			"B": mustSeries(t, []int{1, 2}, 100),
		},
	}
	got := cat.InitialPrices([]string{"A", "B"}, day(0))
	assert.Equal(t, map[string]float64{"A": 50}, got)
}

func TestCatalogValidate(t *testing.T) {
	valid := &Catalog{
		BenchmarkSymbol: "SPY",
		Benchmark:       mustSeries(t, []int{0, 1}, 400),
		Prices: map[string]*PriceSeries{
			"A": mustSeries(t, []int{0, 1}, 50),
		},
		DividendSymbols: []string{"A"},
		Weights:         map[string]float64{"A": 1},
	}
	require.NoError(t, valid.Validate())

	noBenchmark := &Catalog{DividendSymbols: []string{"A"}}
	require.Error(t, noBenchmark.Validate())

	var dataErr *DataError
	missingSeries := &Catalog{
		Benchmark:       mustSeries(t, []int{0}, 400),
		Prices:          map[string]*PriceSeries{},
		DividendSymbols: []string{"A"},
	}
	require.ErrorAs(t, missingSeries.Validate(), &dataErr)

	var cfgErr *ConfigError
	strayWeight := &Catalog{
		Benchmark: mustSeries(t, []int{0}, 400),
		Prices: map[string]*PriceSeries{
			"A": mustSeries(t, []int{0}, 50),
		},
		DividendSymbols: []string{"A"},
		Weights:         map[string]float64{"C": 1},
	}
	require.ErrorAs(t, strayWeight.Validate(), &cfgErr)
}

func TestSortSymbols(t *testing.T) {
	cat := &Catalog{
		DividendSymbols: []string{"PG", "KO", "JNJ"},
		GrowthSymbols:   []string{"ZS", "PLTR"},
	}
	cat.SortSymbols()
	assert.Equal(t, []string{"JNJ", "KO", "PG"}, cat.DividendSymbols)
	assert.Equal(t, []string{"PLTR", "ZS"}, cat.GrowthSymbols)
}
