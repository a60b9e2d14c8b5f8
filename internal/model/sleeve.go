package model

// Sleeve is the sub-portfolio a symbol belongs to.
// Membership is fixed at initialization; a symbol never changes sleeve.
// Keep these values stable; they are intended for CSV/JSON output.
type Sleeve string

const (
	SleeveDividend Sleeve = "dividend"
	SleeveGrowth   Sleeve = "growth"
)
