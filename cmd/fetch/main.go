package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"portfolio-backtest/internal/data"
	"portfolio-backtest/internal/model"
)

// Fetch:
// - Load the symbol universe (or fall back to the built-in one)
// - Pull daily bars and dividend history from Yahoo Finance
// - Write a dataset JSON the backtester can run against
func main() {
	_ = godotenv.Load()
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	universePath := flag.String("universe", "", "Path to universe JSON (default: built-in universe)")
	startStr := flag.String("start", "2020-01-01", "Start date (YYYY-MM-DD)")
	endStr := flag.String("end", "", "End date (YYYY-MM-DD, default today)")
	outPath := flag.String("out", "./data/dataset.json", "Output dataset path")
	writeUniverse := flag.Bool("write-universe", false, "Also write the built-in universe to its default path")
	flag.Parse()

	start, err := time.Parse(model.DateLayout, *startStr)
	if err != nil {
		panic(fmt.Errorf("bad --start: %w", err))
	}
	end := time.Now().UTC()
	if *endStr != "" {
		end, err = time.Parse(model.DateLayout, *endStr)
		if err != nil {
			panic(fmt.Errorf("bad --end: %w", err))
		}
	}

	var u *data.Universe
	if *universePath != "" {
		u, err = data.LoadUniverse(*universePath)
		if err != nil {
			panic(err)
		}
	} else {
		u = data.DefaultUniverse()
	}
	if *writeUniverse {
		u.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
		path := data.GetDefaultUniversePath()
		if err := data.SaveUniverse(u, path); err != nil {
			panic(err)
		}
		log.Info().Str("path", path).Msg("wrote universe")
	}

	log.Info().Str("benchmark", u.Benchmark).
		Int("dividend", len(u.Dividend)).Int("growth", len(u.Growth)).
		Str("start", start.Format(model.DateLayout)).Str("end", end.Format(model.DateLayout)).
		Msg("fetching")

	client := data.NewYahooClient()
	ds, err := client.FetchDataset(u, start, end)
	if err != nil {
		panic(err)
	}
	if err := data.SaveDataset(ds, *outPath); err != nil {
		panic(err)
	}
	fmt.Printf("Wrote %s: benchmark %s, %d dividend symbols, %d growth symbols\n",
		*outPath, ds.Benchmark.Symbol, len(ds.Dividend), len(ds.Growth))
}
