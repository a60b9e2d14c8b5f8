package analysis

import (
	"sort"

	"portfolio-backtest/internal/backtest"
)

type RankedHolding struct {
	backtest.Holding

	// Weight is the holding's share of the summed portfolio value.
	Weight float64
}

// RankByValue sorts holdings descending by value and attaches each one's
// weight within the total.
func RankByValue(holdings []backtest.Holding) []RankedHolding {
	total := 0.0
	for _, h := range holdings {
		total += h.Value
	}
	out := make([]RankedHolding, 0, len(holdings))
	for _, h := range holdings {
		r := RankedHolding{Holding: h}
		if total > 0 {
			r.Weight = h.Value / total
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Value > out[j].Value
	})
	return out
}
