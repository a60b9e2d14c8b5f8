package models

// BacktestRequest is the payload for POST /api/v1/backtest.
type BacktestRequest struct {
	// Dataset names a JSON dataset under the data directory ("sp500_2020")
	// or gives an explicit path ("./data/sp500_2020.json").
	Dataset string         `json:"dataset" binding:"required"`
	Config  BacktestConfig `json:"config" binding:"required"`
	Options RequestOptions `json:"options"`
}

// BacktestConfig mirrors the YAML config file so the same knobs work over
// HTTP and the CLI.
type BacktestConfig struct {
	InitialCapital     float64            `json:"initial_capital" binding:"required,gt=0"`
	DividendAllocation float64            `json:"dividend_allocation"`
	Weights            map[string]float64 `json:"weights"`

	Strategy StrategyConfig `json:"strategy"`

	Tolerance float64 `json:"tolerance"`
}

// StrategyConfig selects and parameterizes a strategy by name.
type StrategyConfig struct {
	Name   string                 `json:"name"`
	Params map[string]interface{} `json:"params"`
}

// RequestOptions controls how much of the run is echoed back.
type RequestOptions struct {
	IncludeSnapshots bool `json:"include_snapshots"`
	IncludeEvents    bool `json:"include_events"`
	// LimitDays truncates the simulation to the first N common dates.
	// Zero means the full range.
	LimitDays int `json:"limit_days"`
}
