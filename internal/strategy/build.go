package strategy

import (
	"fmt"
	"strings"
)

// Build constructs a strategy from a config name and loosely-typed params
// (as decoded from YAML or JSON request bodies).
func Build(name string, params map[string]any) (Strategy, error) {
	switch name {
	case "market_regime":
		return &MarketRegimeStrategy{
			LookbackDays: int(numParam(params, "lookback_days", DefaultLookbackDays)),
			Threshold:    numParam(params, "threshold", DefaultThreshold),
		}, nil
	case "fixed_target":
		return &FixedTargetStrategy{
			DividendFraction: numParam(params, "dividend_fraction", SidewaysDividendFraction),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported strategy: %q", strings.TrimSpace(name))
	}
}

func numParam(m map[string]any, key string, def float64) float64 {
	v, ok := m[key]
	if !ok || v == nil {
		return def
	}
	switch x := v.(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	case int:
		return float64(x)
	case int64:
		return float64(x)
	case uint:
		return float64(x)
	case uint64:
		return float64(x)
	default:
		return def
	}
}
