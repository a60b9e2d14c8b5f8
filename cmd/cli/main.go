package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"portfolio-backtest/internal/analysis"
	"portfolio-backtest/internal/backtest"
	"portfolio-backtest/internal/config"
	"portfolio-backtest/internal/data"
	"portfolio-backtest/internal/model"
	"portfolio-backtest/internal/strategy"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "backtest":
		cmdBacktest(os.Args[2:])
	case "rank":
		cmdRank(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli backtest --data data/sp500_2020.json --config examples/config.yaml --out results")
	fmt.Println("  cli rank --data data/sp500_2020.json --config examples/config.yaml --top 10")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - backtest writes snapshots.csv and events.csv under --out and prints a summary")
	fmt.Println("  - rank runs the backtest and lists holdings by final value")
}

func cmdBacktest(args []string) {
	fs := flag.NewFlagSet("backtest", flag.ExitOnError)
	dataPath := fs.String("data", "", "Path to dataset JSON")
	cfgPath := fs.String("config", "", "Path to YAML config")
	outDir := fs.String("out", "results", "Output directory for CSVs")
	summaryPath := fs.String("summary", "", "Optional path to write the summary as JSON")
	n := fs.Int("n", 0, "Optional: limit to first N trading days (0=all)")
	_ = fs.Parse(args)

	if *dataPath == "" || *cfgPath == "" {
		fmt.Println("--data and --config are required")
		os.Exit(2)
	}

	cfg, cat, ledger, strat := load(*cfgPath, *dataPath)

	engine := backtest.New()
	if cfg.Engine.Tolerance > 0 {
		engine.Tolerance = cfg.Engine.Tolerance
	}
	engine.MaxDays = *n

	res, err := engine.Run(cat, ledger, strat)
	if err != nil {
		panic(err)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		panic(err)
	}
	snapPath := filepath.Join(*outDir, "snapshots.csv")
	eventPath := filepath.Join(*outDir, "events.csv")
	if err := backtest.WriteSnapshotsCSV(snapPath, res.Snapshots); err != nil {
		panic(err)
	}
	if err := backtest.WriteEventsCSV(eventPath, res.Events); err != nil {
		panic(err)
	}
	fmt.Printf("Wrote %d snapshots to %s and %d events to %s\n",
		len(res.Snapshots), snapPath, len(res.Events), eventPath)

	summary := analysis.Summarize(res, cfg.Portfolio.InitialCapital, cfg.Portfolio.DividendAllocation)
	if *summaryPath != "" {
		raw, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			panic(err)
		}
		if err := os.WriteFile(*summaryPath, raw, 0o644); err != nil {
			panic(err)
		}
		fmt.Printf("Wrote summary to %s\n", *summaryPath)
	}
	printSummary(summary)
}

func cmdRank(args []string) {
	fs := flag.NewFlagSet("rank", flag.ExitOnError)
	dataPath := fs.String("data", "", "Path to dataset JSON")
	cfgPath := fs.String("config", "", "Path to YAML config")
	top := fs.Int("top", 0, "Optional: show only the top N holdings (0=all)")
	_ = fs.Parse(args)

	if *dataPath == "" || *cfgPath == "" {
		fmt.Println("--data and --config are required")
		os.Exit(2)
	}

	cfg, cat, ledger, strat := load(*cfgPath, *dataPath)

	engine := backtest.New()
	if cfg.Engine.Tolerance > 0 {
		engine.Tolerance = cfg.Engine.Tolerance
	}
	if _, err := engine.Run(cat, ledger, strat); err != nil {
		panic(err)
	}

	dates := cat.CommonDates()
	last := dates[len(dates)-1]
	ranked := analysis.RankByValue(ledger.Holdings(last, cat.Price))
	if *top > 0 && *top < len(ranked) {
		ranked = ranked[:*top]
	}

	fmt.Printf("%-4s %-8s %-10s %-14s %-14s %-8s\n", "rank", "symbol", "sleeve", "shares", "value$", "weight")
	for i, r := range ranked {
		fmt.Printf("%-4d %-8s %-10s %-14.4f %-14.2f %-8.4f\n",
			i+1, r.Symbol, r.Sleeve, r.Shares, r.Value, r.Weight)
	}
}

func load(cfgPath, dataPath string) (*config.Config, *model.Catalog, *backtest.Ledger, strategy.Strategy) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		panic(err)
	}
	cat, err := data.LoadCatalog(dataPath)
	if err != nil {
		panic(err)
	}
	ledger, err := backtest.NewLedgerFromCatalog(cat,
		cfg.Portfolio.InitialCapital, cfg.Portfolio.DividendAllocation, cfg.Portfolio.Weights)
	if err != nil {
		panic(err)
	}
	strat, err := strategy.Build(cfg.Strategy.Name, cfg.Strategy.Params)
	if err != nil {
		panic(err)
	}
	return cfg, cat, ledger, strat
}

func printSummary(s analysis.Summary) {
	fmt.Println("")
	fmt.Printf("%s .. %s (%d trading days)\n",
		s.StartDate.Format(model.DateLayout), s.EndDate.Format(model.DateLayout), s.TradingDays)
	fmt.Printf("Final value      $%.2f (%.2f%%)\n", s.FinalValue, s.TotalReturn*100)
	fmt.Printf("Benchmark        $%.2f (%.2f%%)\n", s.FinalBenchmarkValue, s.BenchmarkReturn*100)
	fmt.Printf("Excess return    %.2f%%\n", s.ExcessReturn*100)
	fmt.Printf("Annualized       %.2f%%  vol %.2f%%  sharpe %.2f  maxDD %.2f%%\n",
		s.AnnualizedReturn*100, s.Volatility*100, s.SharpeRatio, s.MaxDrawdown*100)
	fmt.Printf("Daily p05/p95    %.3f%% / %.3f%%\n", s.P05DailyReturn*100, s.P95DailyReturn*100)
	fmt.Printf("Dividend sleeve  $%.2f (%.2f%%)\n", s.FinalDividendValue, s.DividendReturn*100)
	fmt.Printf("Growth sleeve    $%.2f (%.2f%%)\n", s.FinalGrowthValue, s.GrowthReturn*100)
	fmt.Printf("Rebalances       %d moving $%.2f total\n", s.RebalanceCount, s.TotalAmountMoved)
	for regime, visit := range s.Regimes {
		fmt.Printf("  %-9s %4d days, avg target %.2f\n", regime, visit.Days, visit.AvgTargetFraction)
	}
}
