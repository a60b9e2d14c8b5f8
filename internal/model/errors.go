package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrEmptyResult is returned when a simulation produced no snapshots at all.
// Individual skipped dates are tolerated; a fully empty run is not.
var ErrEmptyResult = errors.New("simulation produced no snapshots")

// ConfigError reports invalid static inputs (weights not summing to 1,
// allocation fractions out of range, non-positive capital).
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return "config: " + e.Msg }

func Configf(format string, args ...any) error {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}

// DataError reports a missing or unusable data point at a step that cannot
// degrade gracefully, e.g. no positive price for a symbol at initial
// allocation or at a rebalance leg.
type DataError struct {
	Symbol string
	Date   time.Time
	Msg    string
}

func (e *DataError) Error() string {
	if e.Date.IsZero() {
		return fmt.Sprintf("data: %s: %s", e.Symbol, e.Msg)
	}
	return fmt.Sprintf("data: %s on %s: %s", e.Symbol, e.Date.Format("2006-01-02"), e.Msg)
}
