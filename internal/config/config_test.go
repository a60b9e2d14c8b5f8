package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-backtest/internal/model"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFullConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
portfolio:
  initial_capital: 100000
  dividend_allocation: 0.7
  weights:
    KO: 0.6
    PG: 0.4
strategy:
  name: market_regime
  params:
    lookback_days: 40
    threshold: 0.04
engine:
  tolerance: 0.03
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 100_000.0, cfg.Portfolio.InitialCapital)
	assert.Equal(t, 0.7, cfg.Portfolio.DividendAllocation)
	assert.Equal(t, 0.6, cfg.Portfolio.Weights["KO"])
	assert.Equal(t, "market_regime", cfg.Strategy.Name)
	assert.Equal(t, 0.03, cfg.Engine.Tolerance)
}

func TestLoadDefaultsDividendAllocation(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yaml", `
portfolio:
  initial_capital: 50000
  weights:
    KO: 1.0
strategy:
  name: fixed_target
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.70, cfg.Portfolio.DividendAllocation)
}

func TestLoadMergesWeightsFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "preset.yaml", `
weights:
  KO: 0.5
  PG: 0.5
`)
	path := writeFile(t, dir, "config.yaml", `
portfolio:
  initial_capital: 100000
  weights_file: preset.yaml
  weights:
    KO: 0.6
    PG: 0.4
strategy:
  name: market_regime
`)

	// Explicit entries override the preset; the path resolves relative to
	// the config file.
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.6, cfg.Portfolio.Weights["KO"])
	assert.Equal(t, 0.4, cfg.Portfolio.Weights["PG"])
}

func TestLoadRejectsInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	var cfgErr *model.ConfigError

	path := writeFile(t, dir, "capital.yaml", `
portfolio:
  initial_capital: 0
strategy:
  name: market_regime
`)
	_, err := Load(path)
	require.ErrorAs(t, err, &cfgErr)

	path = writeFile(t, dir, "weights.yaml", `
portfolio:
  initial_capital: 100000
  weights:
    KO: 0.6
    PG: 0.6
strategy:
  name: market_regime
`)
	_, err = Load(path)
	require.ErrorAs(t, err, &cfgErr)

	path = writeFile(t, dir, "strategy.yaml", `
portfolio:
  initial_capital: 100000
strategy:
  name: martingale
`)
	_, err = Load(path)
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestMergeWeights(t *testing.T) {
	base := map[string]float64{"KO": 0.5, "PG": 0.5}
	out := MergeWeights(base, map[string]float64{"PG": 0.3, "JNJ": 0.2})
	assert.Equal(t, 0.5, out["KO"])
	assert.Equal(t, 0.3, out["PG"])
	assert.Equal(t, 0.2, out["JNJ"])

	// Empty base passes the override through.
	override := map[string]float64{"KO": 1}
	assert.Equal(t, override, MergeWeights(nil, override))
}
