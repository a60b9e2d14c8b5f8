package model

// Regime is a coarse market-trend classification derived from benchmark
// momentum over a lookback window.
type Regime string

const (
	RegimeBull     Regime = "bull"
	RegimeBear     Regime = "bear"
	RegimeSideways Regime = "sideways"
)

// RegimeTarget is the per-date output of the classifier: the detected regime
// and the dividend-sleeve fraction the portfolio should hold under it.
// Derived fresh each date; never persisted.
type RegimeTarget struct {
	Regime           Regime
	DividendFraction float64
}
