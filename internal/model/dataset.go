package model

// Dataset matches the JSON shape of a fetched dataset file.
//
// Example:
//
//	{
//	  "benchmark": {"symbol": "SPY", "bars": [{"date": "2014-01-02", "close": 182.92}]},
//	  "dividend": [{"symbol": "KO", "bars": [...], "dividends": [{"date": "2014-03-14", "amount": 0.305}]}],
//	  "growth":   [{"symbol": "UBER", "bars": [...]}]
//	}
//
// Dates are "YYYY-MM-DD" strings; the data layer parses them into series.
type Dataset struct {
	Benchmark SymbolData   `json:"benchmark"`
	Dividend  []SymbolData `json:"dividend"`
	Growth    []SymbolData `json:"growth"`
}

// SymbolData holds one symbol's daily bars and, for dividend-sleeve symbols,
// its sparse payment history.
type SymbolData struct {
	Symbol    string            `json:"symbol"`
	Bars      []PriceBar        `json:"bars"`
	Dividends []DividendPayment `json:"dividends,omitempty"`
}

type PriceBar struct {
	Date  string  `json:"date"`
	Close float64 `json:"close"`
}

type DividendPayment struct {
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}
