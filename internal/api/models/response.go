package models

// BacktestResponse is the payload returned by POST /api/v1/backtest.
type BacktestResponse struct {
	ID      string          `json:"id"`
	Summary BacktestSummary `json:"summary"`

	Snapshots []Snapshot       `json:"snapshots,omitempty"`
	Events    []RebalanceEvent `json:"events,omitempty"`
}

// BacktestSummary is the run-level report.
type BacktestSummary struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	InitialCapital      float64 `json:"initial_capital"`
	FinalValue          float64 `json:"final_value"`
	FinalBenchmarkValue float64 `json:"final_benchmark_value"`

	TotalReturn     float64 `json:"total_return"`
	BenchmarkReturn float64 `json:"benchmark_return"`
	ExcessReturn    float64 `json:"excess_return"`

	AnnualizedReturn float64 `json:"annualized_return"`
	Volatility       float64 `json:"volatility"`
	SharpeRatio      float64 `json:"sharpe_ratio"`
	MaxDrawdown      float64 `json:"max_drawdown"`

	P05DailyReturn float64 `json:"p05_daily_return"`
	P95DailyReturn float64 `json:"p95_daily_return"`

	FinalDividendValue float64 `json:"final_dividend_value"`
	FinalGrowthValue   float64 `json:"final_growth_value"`
	DividendReturn     float64 `json:"dividend_return"`
	GrowthReturn       float64 `json:"growth_return"`

	TradingDays      int     `json:"trading_days"`
	RebalanceCount   int     `json:"rebalance_count"`
	TotalAmountMoved float64 `json:"total_amount_moved"`

	Regimes map[string]RegimeVisit `json:"regimes"`
}

// RegimeVisit summarizes one regime's share of the run.
type RegimeVisit struct {
	Days              int     `json:"days"`
	AvgTargetFraction float64 `json:"avg_target_fraction"`
}

// Snapshot is one per-date row of run output.
type Snapshot struct {
	Date string `json:"date"`

	TotalValue     float64 `json:"total_value"`
	BenchmarkValue float64 `json:"benchmark_value"`
	DividendValue  float64 `json:"dividend_value"`
	GrowthValue    float64 `json:"growth_value"`

	DividendFraction float64 `json:"dividend_fraction"`
	GrowthFraction   float64 `json:"growth_fraction"`

	Regime         string  `json:"regime"`
	TargetFraction float64 `json:"target_fraction"`
}

// RebalanceEvent is one tolerance-band trade.
type RebalanceEvent struct {
	Date           string  `json:"date"`
	Direction      string  `json:"direction"`
	Regime         string  `json:"regime"`
	TargetFraction float64 `json:"target_fraction"`
	AmountMoved    float64 `json:"amount_moved"`

	DividendFractionBefore float64 `json:"dividend_fraction_before"`
	DividendFractionAfter  float64 `json:"dividend_fraction_after"`
}

// SnapshotsResponse is the payload for GET /api/v1/backtest/:id/snapshots.
type SnapshotsResponse struct {
	ID        string     `json:"id"`
	Count     int        `json:"count"`
	Snapshots []Snapshot `json:"snapshots"`
}

// EventsResponse is the payload for GET /api/v1/backtest/:id/events.
type EventsResponse struct {
	ID     string           `json:"id"`
	Count  int              `json:"count"`
	Events []RebalanceEvent `json:"events"`
}

// StrategyInfo describes one selectable strategy.
type StrategyInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  []ParameterInfo `json:"parameters"`
}

// ParameterInfo describes one strategy parameter.
type ParameterInfo struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Default     float64 `json:"default"`
	Description string  `json:"description"`
}

// DatasetInfo describes one dataset file available to the API.
type DatasetInfo struct {
	ID   string `json:"id"`
	File string `json:"file"`
}

// PortfolioInfo describes one weight preset available to the API.
type PortfolioInfo struct {
	ID      string `json:"id"`
	File    string `json:"file"`
	Symbols int    `json:"symbols"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable machine code plus a human message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}
