package data

import (
	"fmt"
	"sort"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"portfolio-backtest/internal/model"
)

// YahooClient fetches daily bars and dividend history from Yahoo Finance.
// Bars come through finance-go's chart iterator; dividend events come from
// the raw chart endpoint because finance-go does not expose them.
type YahooClient struct {
	rest *resty.Client
}

func NewYahooClient() *YahooClient {
	return &YahooClient{
		rest: resty.New().
			SetBaseURL("https://query1.finance.yahoo.com").
			SetTimeout(30 * time.Second).
			SetHeader("User-Agent", "portfolio-backtest/1.0"),
	}
}

// FetchBars returns the daily close bars for a symbol, sorted by date.
func (c *YahooClient) FetchBars(symbol string, start, end time.Time) ([]model.PriceBar, error) {
	params := &chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.OneDay,
	}
	iter := chart.Get(params)

	bars := make([]model.PriceBar, 0, 256)
	seen := map[string]bool{}
	for iter.Next() {
		b := iter.Bar()
		if !b.Close.IsPositive() {
			continue
		}
		closePx := b.Close.Round(4).InexactFloat64()
		date := model.Day(time.Unix(int64(b.Timestamp), 0)).Format(model.DateLayout)
		if seen[date] {
			continue
		}
		seen[date] = true
		bars = append(bars, model.PriceBar{Date: date, Close: closePx})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to get bars for %s: %w", symbol, err)
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Date < bars[j].Date })
	return bars, nil
}

// chartEventsResponse is the slice of Yahoo's v8 chart payload we care about.
type chartEventsResponse struct {
	Chart struct {
		Result []struct {
			Events struct {
				Dividends map[string]struct {
					Amount float64 `json:"amount"`
					Date   int64   `json:"date"`
				} `json:"dividends"`
			} `json:"events"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// FetchDividends returns the per-share payment history for a symbol, sorted
// by date.
func (c *YahooClient) FetchDividends(symbol string, start, end time.Time) ([]model.DividendPayment, error) {
	var out chartEventsResponse
	resp, err := c.rest.R().
		SetPathParam("symbol", symbol).
		SetQueryParams(map[string]string{
			"period1":  fmt.Sprintf("%d", start.Unix()),
			"period2":  fmt.Sprintf("%d", end.Unix()),
			"interval": "1d",
			"events":   "div",
		}).
		SetResult(&out).
		Get("/v8/finance/chart/{symbol}")
	if err != nil {
		return nil, fmt.Errorf("failed to get dividends for %s: %w", symbol, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("dividend request for %s returned status %d", symbol, resp.StatusCode())
	}
	if e := out.Chart.Error; e != nil {
		return nil, fmt.Errorf("dividend request for %s failed: %s: %s", symbol, e.Code, e.Description)
	}
	if len(out.Chart.Result) == 0 {
		return nil, nil
	}

	events := out.Chart.Result[0].Events.Dividends
	payments := make([]model.DividendPayment, 0, len(events))
	for _, ev := range events {
		// Yahoo reports amounts with float noise; keep them at cent-ish
		// precision so dataset files diff cleanly between fetches.
		amount := decimal.NewFromFloat(ev.Amount).Round(6)
		if !amount.IsPositive() {
			continue
		}
		payments = append(payments, model.DividendPayment{
			Date:   model.Day(time.Unix(ev.Date, 0)).Format(model.DateLayout),
			Amount: amount.InexactFloat64(),
		})
	}
	sort.Slice(payments, func(i, j int) bool { return payments[i].Date < payments[j].Date })
	return payments, nil
}

// FetchDataset pulls the whole universe into a dataset. A symbol whose fetch
// fails is logged and left out rather than failing the run; the benchmark is
// required.
func (c *YahooClient) FetchDataset(u *Universe, start, end time.Time) (*model.Dataset, error) {
	benchBars, err := c.FetchBars(u.Benchmark, start, end)
	if err != nil {
		return nil, fmt.Errorf("benchmark %s: %w", u.Benchmark, err)
	}
	if len(benchBars) == 0 {
		return nil, fmt.Errorf("benchmark %s: no bars in range", u.Benchmark)
	}
	ds := &model.Dataset{
		Benchmark: model.SymbolData{Symbol: u.Benchmark, Bars: benchBars},
	}

	for _, sym := range u.Dividend {
		bars, err := c.FetchBars(sym, start, end)
		if err != nil || len(bars) == 0 {
			log.Warn().Err(err).Str("symbol", sym).Msg("skipping dividend symbol")
			continue
		}
		dividends, err := c.FetchDividends(sym, start, end)
		if err != nil {
			log.Warn().Err(err).Str("symbol", sym).Msg("no dividend history, keeping bars only")
		}
		ds.Dividend = append(ds.Dividend, model.SymbolData{Symbol: sym, Bars: bars, Dividends: dividends})
		log.Info().Str("symbol", sym).Int("bars", len(bars)).Int("dividends", len(dividends)).Msg("loaded")
	}

	for _, sym := range u.Growth {
		bars, err := c.FetchBars(sym, start, end)
		if err != nil || len(bars) == 0 {
			log.Warn().Err(err).Str("symbol", sym).Msg("skipping growth symbol")
			continue
		}
		ds.Growth = append(ds.Growth, model.SymbolData{Symbol: sym, Bars: bars})
		log.Info().Str("symbol", sym).Int("bars", len(bars)).Msg("loaded")
	}

	return ds, nil
}
