package backtest

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"portfolio-backtest/internal/model"
)

func WriteSnapshotsCSV(path string, snapshots []Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"date",
		"total_value",
		"benchmark_value",
		"dividend_value",
		"growth_value",
		"dividend_fraction",
		"growth_fraction",
		"regime",
		"target_fraction",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, s := range snapshots {
		row := []string{
			fmtDate(s.Date),
			fmtFloat(s.TotalValue),
			fmtFloat(s.BenchmarkValue),
			fmtFloat(s.DividendValue),
			fmtFloat(s.GrowthValue),
			fmtFloat(s.DividendFraction),
			fmtFloat(s.GrowthFraction),
			string(s.Regime),
			fmtFloat(s.TargetFraction),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func WriteEventsCSV(path string, events []RebalanceEvent) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"date",
		"direction",
		"regime",
		"target_fraction",
		"amount_moved",
		"dividend_fraction_before",
		"dividend_fraction_after",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, e := range events {
		row := []string{
			fmtDate(e.Date),
			string(e.Direction),
			string(e.Regime),
			fmtFloat(e.TargetFraction),
			fmtFloat(e.AmountMoved),
			fmtFloat(e.DividendFractionBefore),
			fmtFloat(e.DividendFractionAfter),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(model.DateLayout)
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
