package handlers

import (
	"portfolio-backtest/internal/analysis"
	"portfolio-backtest/internal/api/models"
	"portfolio-backtest/internal/backtest"
	"portfolio-backtest/internal/model"
)

func toSummary(s analysis.Summary) models.BacktestSummary {
	out := models.BacktestSummary{
		InitialCapital:      s.InitialCapital,
		FinalValue:          s.FinalValue,
		FinalBenchmarkValue: s.FinalBenchmarkValue,
		TotalReturn:         s.TotalReturn,
		BenchmarkReturn:     s.BenchmarkReturn,
		ExcessReturn:        s.ExcessReturn,
		AnnualizedReturn:    s.AnnualizedReturn,
		Volatility:          s.Volatility,
		SharpeRatio:         s.SharpeRatio,
		MaxDrawdown:         s.MaxDrawdown,
		P05DailyReturn:      s.P05DailyReturn,
		P95DailyReturn:      s.P95DailyReturn,
		FinalDividendValue:  s.FinalDividendValue,
		FinalGrowthValue:    s.FinalGrowthValue,
		DividendReturn:      s.DividendReturn,
		GrowthReturn:        s.GrowthReturn,
		TradingDays:         s.TradingDays,
		RebalanceCount:      s.RebalanceCount,
		TotalAmountMoved:    s.TotalAmountMoved,
		Regimes:             make(map[string]models.RegimeVisit, len(s.Regimes)),
	}
	if !s.StartDate.IsZero() {
		out.StartDate = s.StartDate.Format(model.DateLayout)
		out.EndDate = s.EndDate.Format(model.DateLayout)
	}
	for regime, visit := range s.Regimes {
		out.Regimes[string(regime)] = models.RegimeVisit{
			Days:              visit.Days,
			AvgTargetFraction: visit.AvgTargetFraction,
		}
	}
	return out
}

func toSnapshots(snaps []backtest.Snapshot) []models.Snapshot {
	out := make([]models.Snapshot, len(snaps))
	for i, s := range snaps {
		out[i] = models.Snapshot{
			Date:             s.Date.Format(model.DateLayout),
			TotalValue:       s.TotalValue,
			BenchmarkValue:   s.BenchmarkValue,
			DividendValue:    s.DividendValue,
			GrowthValue:      s.GrowthValue,
			DividendFraction: s.DividendFraction,
			GrowthFraction:   s.GrowthFraction,
			Regime:           string(s.Regime),
			TargetFraction:   s.TargetFraction,
		}
	}
	return out
}

func toEvents(events []backtest.RebalanceEvent) []models.RebalanceEvent {
	out := make([]models.RebalanceEvent, len(events))
	for i, e := range events {
		out[i] = models.RebalanceEvent{
			Date:                   e.Date.Format(model.DateLayout),
			Direction:              string(e.Direction),
			Regime:                 string(e.Regime),
			TargetFraction:         e.TargetFraction,
			AmountMoved:            e.AmountMoved,
			DividendFractionBefore: e.DividendFractionBefore,
			DividendFractionAfter:  e.DividendFractionAfter,
		}
	}
	return out
}
