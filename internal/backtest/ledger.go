package backtest

import (
	"math"
	"sort"
	"time"

	"github.com/rs/zerolog/log"

	"portfolio-backtest/internal/model"
)

// PriceFn resolves a symbol's close on a date.
type PriceFn func(symbol string, date time.Time) (float64, bool)

// DividendFn resolves a symbol's per-share payment on a date, if any.
type DividendFn func(symbol string, date time.Time) (float64, bool)

// weightSumTolerance is how far a weight vector may drift from summing to 1
// before construction fails.
const weightSumTolerance = 1e-6

// Position is one symbol's holding. Sleeve membership is immutable; shares
// are mutated in place by reinvestment and rebalancing.
type Position struct {
	Symbol string
	Sleeve model.Sleeve
	Shares float64
}

// Holding is a valued position, used for reporting.
type Holding struct {
	Symbol string
	Sleeve model.Sleeve
	Shares float64
	Value  float64
}

// Ledger owns every Position plus the cash balance. It is mutated only by
// the simulation loop, one date at a time. Cash is a residual: it holds the
// sub-dollar remainder of the initial allocation and passes sale proceeds
// through within a single rebalance call.
type Ledger struct {
	positions map[string]*Position
	order     []string // deterministic iteration: dividend sleeve then growth, each sorted

	Cash           float64
	InitialCapital float64
}

// NewLedger allocates capital across the two sleeves.
//
// The dividend budget (capital * dividendAlloc) is split across the weight
// vector's symbols proportionally; the growth budget is split equally across
// growthPrices' symbols. Shares are fractional: allocated value / initial
// price. Symbols with zero weight get no position at all.
func NewLedger(capital, dividendAlloc float64, weights map[string]float64, dividendPrices, growthPrices map[string]float64) (*Ledger, error) {
	if capital <= 0 {
		return nil, model.Configf("capital must be > 0, got %.2f", capital)
	}
	if dividendAlloc < 0 || dividendAlloc > 1 {
		return nil, model.Configf("dividend allocation must be in [0,1], got %.4f", dividendAlloc)
	}
	if dividendAlloc > 0 && len(weights) == 0 {
		return nil, model.Configf("dividend allocation is %.2f but weight vector is empty", dividendAlloc)
	}
	sum := 0.0
	for _, w := range weights {
		if w < 0 {
			return nil, model.Configf("negative weight in weight vector")
		}
		sum += w
	}
	if len(weights) > 0 && math.Abs(sum-1) > weightSumTolerance {
		return nil, model.Configf("weight vector sums to %.8f, want 1", sum)
	}

	l := &Ledger{
		positions:      map[string]*Position{},
		Cash:           capital,
		InitialCapital: capital,
	}

	for _, sym := range sortedKeys(weights) {
		w := weights[sym]
		if w == 0 {
			continue
		}
		px, ok := dividendPrices[sym]
		if !ok || px <= 0 {
			return nil, &model.DataError{Symbol: sym, Msg: "missing or non-positive initial price"}
		}
		value := capital * dividendAlloc * w
		l.add(&Position{Symbol: sym, Sleeve: model.SleeveDividend, Shares: value / px})
		l.Cash -= value
	}

	growthSyms := sortedKeys(growthPrices)
	if len(growthSyms) > 0 {
		perSymbol := 1.0 / float64(len(growthSyms))
		for _, sym := range growthSyms {
			px := growthPrices[sym]
			if px <= 0 {
				return nil, &model.DataError{Symbol: sym, Msg: "missing or non-positive initial price"}
			}
			value := capital * (1 - dividendAlloc) * perSymbol
			l.add(&Position{Symbol: sym, Sleeve: model.SleeveGrowth, Shares: value / px})
			l.Cash -= value
		}
	}

	return l, nil
}

// NewLedgerFromCatalog builds a ledger priced at the catalog's first common
// trading date. An explicit weight vector overrides the catalog's; with
// neither, the dividend sleeve is split equally.
func NewLedgerFromCatalog(cat *model.Catalog, capital, dividendAlloc float64, weights map[string]float64) (*Ledger, error) {
	dates := cat.CommonDates()
	if len(dates) == 0 {
		return nil, model.Configf("no common trading dates across series")
	}
	if len(weights) == 0 {
		weights = cat.Weights
	}
	if len(weights) == 0 && len(cat.DividendSymbols) > 0 {
		weights = EqualWeights(cat.DividendSymbols)
	}
	first := dates[0]
	return NewLedger(capital, dividendAlloc, weights,
		cat.InitialPrices(cat.DividendSymbols, first),
		cat.InitialPrices(cat.GrowthSymbols, first))
}

// EqualWeights assigns 1/n to every symbol.
func EqualWeights(symbols []string) map[string]float64 {
	out := make(map[string]float64, len(symbols))
	for _, sym := range symbols {
		out[sym] = 1.0 / float64(len(symbols))
	}
	return out
}

func (l *Ledger) add(p *Position) {
	l.positions[p.Symbol] = p
	l.order = append(l.order, p.Symbol)
}

// Position returns a copy of the named position.
func (l *Ledger) Position(symbol string) (Position, bool) {
	p, ok := l.positions[symbol]
	if !ok {
		return Position{}, false
	}
	return *p, true
}

// Symbols returns the ledger's symbols in iteration order.
func (l *Ledger) Symbols() []string {
	return append([]string(nil), l.order...)
}

// ReinvestDividends converts each dividend payment recorded on date into
// additional shares of the paying position at that date's close. Payments
// are reinvested in kind; cash is never touched. A payment whose symbol has
// no quote on date is skipped, not fatal.
func (l *Ledger) ReinvestDividends(date time.Time, prices PriceFn, dividends DividendFn) {
	for _, sym := range l.order {
		pos := l.positions[sym]
		if pos.Sleeve != model.SleeveDividend {
			continue
		}
		perShare, ok := dividends(sym, date)
		if !ok || perShare <= 0 {
			continue
		}
		received := pos.Shares * perShare
		px, ok := prices(sym, date)
		if !ok || px <= 0 {
			log.Warn().Str("symbol", sym).Time("date", date).
				Float64("amount", received).
				Msg("no quote for dividend reinvestment, payment skipped")
			continue
		}
		pos.Shares += received / px
		log.Debug().Str("symbol", sym).Time("date", date).
			Float64("amount", received).Float64("price", px).
			Msg("dividend reinvested")
	}
}

// ValueBySleeve values the portfolio on a date. A position with no quote on
// the date contributes zero for that date; a single missing quote must not
// sink the whole run. Total includes cash.
func (l *Ledger) ValueBySleeve(date time.Time, prices PriceFn) (dividendValue, growthValue, totalValue float64) {
	for _, sym := range l.order {
		pos := l.positions[sym]
		px, ok := prices(sym, date)
		if !ok {
			continue
		}
		v := pos.Shares * px
		if pos.Sleeve == model.SleeveDividend {
			dividendValue += v
		} else {
			growthValue += v
		}
	}
	return dividendValue, growthValue, dividendValue + growthValue + l.Cash
}

// Holdings returns every position valued on a date (zero value when the
// quote is missing).
func (l *Ledger) Holdings(date time.Time, prices PriceFn) []Holding {
	out := make([]Holding, 0, len(l.order))
	for _, sym := range l.order {
		pos := l.positions[sym]
		v := 0.0
		if px, ok := prices(sym, date); ok {
			v = pos.Shares * px
		}
		out = append(out, Holding{Symbol: sym, Sleeve: pos.Sleeve, Shares: pos.Shares, Value: v})
	}
	return out
}

// trade is one leg of a rebalance plan.
type trade struct {
	pos    *Position
	price  float64
	shares float64 // always positive; direction comes from the plan
	amount float64 // shares * price
}

// Rebalance moves `amount` of value from one sleeve to the other. Sales and
// purchases are proportional to each position's share of its sleeve's
// current value; a sleeve valued at zero falls back to an equal split.
//
// Both legs are planned before anything is applied, so a missing quote
// returns a DataError with the ledger untouched. Cash absorbs the proceeds
// between the two legs and ends where it started, modulo rounding.
func (l *Ledger) Rebalance(date time.Time, prices PriceFn, amount float64, from, to model.Sleeve) error {
	if amount <= 0 {
		return nil
	}
	sells, err := l.plan(date, prices, amount, from)
	if err != nil {
		return err
	}
	buys, err := l.plan(date, prices, amount, to)
	if err != nil {
		return err
	}
	for _, t := range sells {
		if t.shares > t.pos.Shares {
			// Rounding can ask for a hair more than the position holds.
			t.shares = t.pos.Shares
			t.amount = t.shares * t.price
		}
		t.pos.Shares -= t.shares
		l.Cash += t.amount
	}
	for _, t := range buys {
		t.pos.Shares += t.shares
		l.Cash -= t.amount
	}
	return nil
}

// plan computes the per-position trade amounts for one sleeve without
// mutating anything.
func (l *Ledger) plan(date time.Time, prices PriceFn, amount float64, sleeve model.Sleeve) ([]trade, error) {
	var syms []string
	sleeveValue := 0.0
	values := map[string]float64{}
	for _, sym := range l.order {
		pos := l.positions[sym]
		if pos.Sleeve != sleeve {
			continue
		}
		syms = append(syms, sym)
		if px, ok := prices(sym, date); ok {
			values[sym] = pos.Shares * px
			sleeveValue += values[sym]
		}
	}
	if len(syms) == 0 {
		return nil, &model.DataError{Date: date, Msg: "rebalance into empty " + string(sleeve) + " sleeve"}
	}

	plan := make([]trade, 0, len(syms))
	for _, sym := range syms {
		var share float64
		if sleeveValue > 0 {
			share = values[sym] / sleeveValue
		} else {
			share = 1.0 / float64(len(syms))
		}
		tradeAmount := amount * share
		if tradeAmount == 0 {
			continue
		}
		px, ok := prices(sym, date)
		if !ok || px <= 0 {
			return nil, &model.DataError{Symbol: sym, Date: date, Msg: "no quote for rebalance leg"}
		}
		plan = append(plan, trade{pos: l.positions[sym], price: px, shares: tradeAmount / px, amount: tradeAmount})
	}
	return plan, nil
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
