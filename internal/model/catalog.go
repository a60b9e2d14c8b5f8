package model

import (
	"sort"
	"time"
)

// Catalog bundles everything the simulation consumes: the benchmark series,
// per-symbol price series for both sleeves, dividend payment series for the
// dividend sleeve, and the static dividend-sleeve weight vector.
//
// All series are fully materialized before a run starts; the simulation loop
// never performs I/O.
type Catalog struct {
	BenchmarkSymbol string
	Benchmark       *PriceSeries

	Prices    map[string]*PriceSeries
	Dividends map[string]*DividendSeries

	DividendSymbols []string
	GrowthSymbols   []string

	// Weights is the dividend-sleeve weight vector (must sum to 1).
	Weights map[string]float64
}

// Price returns the close for symbol on date, if present.
func (c *Catalog) Price(symbol string, date time.Time) (float64, bool) {
	s, ok := c.Prices[symbol]
	if !ok {
		return 0, false
	}
	return s.Price(date)
}

// Dividend returns the per-share payment for symbol on date, if any.
func (c *Catalog) Dividend(symbol string, date time.Time) (float64, bool) {
	return c.Dividends[symbol].Amount(date)
}

// CommonDates returns the ordered intersection of the benchmark's trading
// dates with every symbol's trading dates. A date absent from any series is
// excluded from the whole walk, not skipped per symbol.
func (c *Catalog) CommonDates() []time.Time {
	if c.Benchmark == nil {
		return nil
	}
	out := make([]time.Time, 0, c.Benchmark.Len())
	for _, d := range c.Benchmark.Dates() {
		if c.allHave(d) {
			out = append(out, d)
		}
	}
	return out
}

func (c *Catalog) allHave(date time.Time) bool {
	for _, sym := range c.DividendSymbols {
		if _, ok := c.Price(sym, date); !ok {
			return false
		}
	}
	for _, sym := range c.GrowthSymbols {
		if _, ok := c.Price(sym, date); !ok {
			return false
		}
	}
	return true
}

// InitialPrices returns the first-date close per symbol for one sleeve,
// used by ledger construction.
func (c *Catalog) InitialPrices(symbols []string, date time.Time) map[string]float64 {
	out := make(map[string]float64, len(symbols))
	for _, sym := range symbols {
		if px, ok := c.Price(sym, date); ok {
			out[sym] = px
		}
	}
	return out
}

// Validate checks internal consistency: every listed symbol has a price
// series and every weighted symbol is in the dividend sleeve.
func (c *Catalog) Validate() error {
	if c.Benchmark == nil || c.Benchmark.Len() == 0 {
		return Configf("benchmark series is empty")
	}
	if len(c.DividendSymbols) == 0 && len(c.GrowthSymbols) == 0 {
		return Configf("catalog has no symbols")
	}
	for _, sym := range append(append([]string{}, c.DividendSymbols...), c.GrowthSymbols...) {
		if s, ok := c.Prices[sym]; !ok || s.Len() == 0 {
			return &DataError{Symbol: sym, Msg: "no price series"}
		}
	}
	inDividend := make(map[string]bool, len(c.DividendSymbols))
	for _, sym := range c.DividendSymbols {
		inDividend[sym] = true
	}
	for sym := range c.Weights {
		if !inDividend[sym] {
			return Configf("weight for %s but symbol is not in the dividend sleeve", sym)
		}
	}
	return nil
}

// SortSymbols normalizes symbol ordering so runs are deterministic regardless
// of map iteration order upstream.
func (c *Catalog) SortSymbols() {
	sort.Strings(c.DividendSymbols)
	sort.Strings(c.GrowthSymbols)
}
