package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"portfolio-backtest/internal/model"
	"portfolio-backtest/internal/strategy"
)

// Config is the on-disk configuration shape (YAML).
type Config struct {
	Portfolio PortfolioConfig `yaml:"portfolio"`
	Strategy  StrategyConfig  `yaml:"strategy"`
	Engine    EngineConfig    `yaml:"engine"`
}

type PortfolioConfig struct {
	InitialCapital     float64 `yaml:"initial_capital"`
	DividendAllocation float64 `yaml:"dividend_allocation"`

	// Optional: load the dividend-sleeve weight vector from a separate YAML
	// (e.g. examples/portfolios/*.yaml). Explicit entries in Weights override
	// entries loaded from WeightsFile per symbol.
	WeightsFile string             `yaml:"weights_file"`
	Weights     map[string]float64 `yaml:"weights"`
}

type StrategyConfig struct {
	Name   string         `yaml:"name"`
	Params map[string]any `yaml:"params"`
}

type EngineConfig struct {
	// Tolerance is the no-trade band around the target fraction.
	// Zero means the engine default.
	Tolerance float64 `yaml:"tolerance"`
}

func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	// Default to the original 70/30 split when the allocation is omitted.
	if c.Portfolio.DividendAllocation == 0 {
		c.Portfolio.DividendAllocation = 0.70
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	if c.Portfolio.WeightsFile != "" {
		weightsPath := c.Portfolio.WeightsFile
		if !filepath.IsAbs(weightsPath) {
			// Prefer interpreting relative paths as relative to the config file
			// directory, but fall back to cwd-relative if that doesn't exist.
			cand := filepath.Join(filepath.Dir(path), weightsPath)
			if _, err := os.Stat(cand); err == nil {
				weightsPath = cand
			}
		}
		loaded, err := LoadWeightsFile(weightsPath)
		if err != nil {
			return nil, err
		}
		c.Portfolio.Weights = MergeWeights(loaded, c.Portfolio.Weights)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Portfolio.InitialCapital <= 0 {
		return model.Configf("portfolio.initial_capital must be > 0")
	}
	if c.Portfolio.DividendAllocation < 0 || c.Portfolio.DividendAllocation > 1 {
		return model.Configf("portfolio.dividend_allocation must be in [0,1]")
	}
	if len(c.Portfolio.Weights) > 0 {
		sum := 0.0
		for sym, w := range c.Portfolio.Weights {
			if w < 0 {
				return model.Configf("portfolio.weights[%s] is negative", sym)
			}
			sum += w
		}
		if math.Abs(sum-1) > 1e-6 {
			return model.Configf("portfolio.weights sum to %.8f, want 1", sum)
		}
	}
	if c.Engine.Tolerance < 0 {
		return model.Configf("engine.tolerance must be >= 0")
	}
	if c.Strategy.Name == "" {
		return errors.New("strategy.name is required")
	}
	// Validate strategy config by constructing the strategy.
	if _, err := strategy.Build(c.Strategy.Name, c.Strategy.Params); err != nil {
		return err
	}
	return nil
}

type weightsFileWrapper struct {
	Weights map[string]float64 `yaml:"weights"`
}

// LoadWeightsFile reads a weight-vector preset (shape: `weights: {SYM: w}`).
func LoadWeightsFile(path string) (map[string]float64, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var w weightsFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return w.Weights, nil
}

// MergeWeights overlays override entries onto base, symbol by symbol.
// This is used when loading a weights file and then applying explicit
// overrides from the config or request.
func MergeWeights(base, override map[string]float64) map[string]float64 {
	if len(base) == 0 {
		return override
	}
	out := make(map[string]float64, len(base)+len(override))
	for sym, w := range base {
		out[sym] = w
	}
	for sym, w := range override {
		out[sym] = w
	}
	return out
}
