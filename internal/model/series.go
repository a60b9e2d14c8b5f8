package model

import "time"

// DateLayout is the canonical trading-date format used across dataset files,
// CSV output and map keys.
const DateLayout = "2006-01-02"

// Day normalizes a timestamp to its trading date (midnight UTC).
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ClosePoint is one (date, close) observation.
type ClosePoint struct {
	Date  time.Time
	Close float64
}

// PriceSeries is an ordered daily close series for one symbol.
// Dates are strictly increasing and closes strictly positive; missing days
// are simply absent, never zero-filled.
type PriceSeries struct {
	dates  []time.Time
	closes []float64
	index  map[string]int
}

func NewPriceSeries(points []ClosePoint) (*PriceSeries, error) {
	s := &PriceSeries{
		dates:  make([]time.Time, 0, len(points)),
		closes: make([]float64, 0, len(points)),
		index:  make(map[string]int, len(points)),
	}
	for _, p := range points {
		d := Day(p.Date)
		if p.Close <= 0 {
			return nil, &DataError{Date: d, Msg: "non-positive close"}
		}
		if n := len(s.dates); n > 0 && !s.dates[n-1].Before(d) {
			return nil, &DataError{Date: d, Msg: "dates not strictly increasing"}
		}
		s.index[d.Format(DateLayout)] = len(s.dates)
		s.dates = append(s.dates, d)
		s.closes = append(s.closes, p.Close)
	}
	return s, nil
}

func (s *PriceSeries) Len() int { return len(s.dates) }

// Dates returns the ordered trading dates of the series.
// Callers must not mutate the returned slice.
func (s *PriceSeries) Dates() []time.Time { return s.dates }

// Price returns the close for a trading date, if present.
func (s *PriceSeries) Price(date time.Time) (float64, bool) {
	i, ok := s.index[Day(date).Format(DateLayout)]
	if !ok {
		return 0, false
	}
	return s.closes[i], true
}

// Index returns the position of a trading date within the series.
// The regime classifier works on index offsets, not calendar arithmetic.
func (s *PriceSeries) Index(date time.Time) (int, bool) {
	i, ok := s.index[Day(date).Format(DateLayout)]
	return i, ok
}

// CloseAt returns the close at position i. Panics on out-of-range i, like a
// slice access; callers index via Index.
func (s *PriceSeries) CloseAt(i int) float64 { return s.closes[i] }

// DividendSeries is a sparse per-share payment series for one symbol.
// A date with no entry means no payment.
type DividendSeries struct {
	amounts map[string]float64
}

func NewDividendSeries(payments map[time.Time]float64) *DividendSeries {
	s := &DividendSeries{amounts: make(map[string]float64, len(payments))}
	for d, amt := range payments {
		s.amounts[Day(d).Format(DateLayout)] = amt
	}
	return s
}

// Amount returns the per-share payment on a date, if any.
func (s *DividendSeries) Amount(date time.Time) (float64, bool) {
	if s == nil {
		return 0, false
	}
	amt, ok := s.amounts[Day(date).Format(DateLayout)]
	return amt, ok
}

func (s *DividendSeries) Len() int {
	if s == nil {
		return 0
	}
	return len(s.amounts)
}
