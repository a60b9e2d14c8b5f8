package strategy

import (
	"time"

	"portfolio-backtest/internal/model"
)

type Context struct {
	Index     int
	Date      time.Time
	Benchmark *model.PriceSeries
}

type Strategy interface {
	Name() string
	Target(ctx Context) model.RegimeTarget
}
