package strategy

import "portfolio-backtest/internal/model"

// FixedTargetStrategy holds a constant dividend-sleeve target regardless of
// market conditions. Reported regime is always sideways.
type FixedTargetStrategy struct {
	DividendFraction float64
}

func (s *FixedTargetStrategy) Name() string { return "fixed_target" }

func (s *FixedTargetStrategy) Target(ctx Context) model.RegimeTarget {
	frac := s.DividendFraction
	if frac <= 0 {
		frac = SidewaysDividendFraction
	}
	return model.RegimeTarget{Regime: model.RegimeSideways, DividendFraction: frac}
}
