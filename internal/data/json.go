package data

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"portfolio-backtest/internal/model"
)

func LoadDataset(path string) (*model.Dataset, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var ds model.Dataset
	if err := json.Unmarshal(raw, &ds); err != nil {
		return nil, err
	}
	return &ds, nil
}

// BuildCatalog parses a dataset's string dates into concrete series and
// assembles the catalog the simulation consumes. Weights are attached by the
// caller (they come from config, not from the dataset).
func BuildCatalog(ds *model.Dataset) (*model.Catalog, error) {
	if ds == nil {
		return nil, fmt.Errorf("dataset is nil")
	}
	benchmark, err := parseSeries(ds.Benchmark)
	if err != nil {
		return nil, fmt.Errorf("benchmark %s: %w", ds.Benchmark.Symbol, err)
	}

	cat := &model.Catalog{
		BenchmarkSymbol: ds.Benchmark.Symbol,
		Benchmark:       benchmark,
		Prices:          map[string]*model.PriceSeries{},
		Dividends:       map[string]*model.DividendSeries{},
	}

	for _, sd := range ds.Dividend {
		series, err := parseSeries(sd)
		if err != nil {
			return nil, fmt.Errorf("dividend symbol %s: %w", sd.Symbol, err)
		}
		cat.Prices[sd.Symbol] = series
		cat.DividendSymbols = append(cat.DividendSymbols, sd.Symbol)
		payments := make(map[time.Time]float64, len(sd.Dividends))
		for _, p := range sd.Dividends {
			d, err := time.Parse(model.DateLayout, p.Date)
			if err != nil {
				return nil, fmt.Errorf("dividend symbol %s: bad payment date %q", sd.Symbol, p.Date)
			}
			payments[d] = p.Amount
		}
		cat.Dividends[sd.Symbol] = model.NewDividendSeries(payments)
	}

	for _, sd := range ds.Growth {
		series, err := parseSeries(sd)
		if err != nil {
			return nil, fmt.Errorf("growth symbol %s: %w", sd.Symbol, err)
		}
		cat.Prices[sd.Symbol] = series
		cat.GrowthSymbols = append(cat.GrowthSymbols, sd.Symbol)
	}

	cat.SortSymbols()
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

// LoadCatalog is the common load-then-build path.
func LoadCatalog(path string) (*model.Catalog, error) {
	ds, err := LoadDataset(path)
	if err != nil {
		return nil, err
	}
	return BuildCatalog(ds)
}

func parseSeries(sd model.SymbolData) (*model.PriceSeries, error) {
	points := make([]model.ClosePoint, 0, len(sd.Bars))
	for _, b := range sd.Bars {
		d, err := time.Parse(model.DateLayout, b.Date)
		if err != nil {
			return nil, fmt.Errorf("bad bar date %q", b.Date)
		}
		points = append(points, model.ClosePoint{Date: d, Close: b.Close})
	}
	return model.NewPriceSeries(points)
}

// SaveDataset writes a dataset file, creating the directory if needed.
func SaveDataset(ds *model.Dataset, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	raw, err := json.MarshalIndent(ds, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal dataset: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write dataset file: %w", err)
	}
	return nil
}
