package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-backtest/internal/api/models"
	"portfolio-backtest/internal/strategy"
)

// ListStrategies handles GET /api/v1/strategies.
func ListStrategies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"strategies": []models.StrategyInfo{
		{
			Name:        "market_regime",
			Description: "Classifies the benchmark trend into bull, bear, or sideways and shifts the dividend-sleeve target accordingly.",
			Parameters: []models.ParameterInfo{
				{
					Name: "lookback_days", Type: "int",
					Default:     float64(strategy.DefaultLookbackDays),
					Description: "Trading days of benchmark history used for the trend test.",
				},
				{
					Name: "threshold", Type: "float",
					Default:     strategy.DefaultThreshold,
					Description: "Minimum benchmark move over the lookback to leave the sideways regime.",
				},
			},
		},
		{
			Name:        "fixed_target",
			Description: "Holds one dividend-sleeve target for the entire run.",
			Parameters: []models.ParameterInfo{
				{
					Name: "dividend_fraction", Type: "float",
					Default:     strategy.SidewaysDividendFraction,
					Description: "Constant target fraction of total value held in the dividend sleeve.",
				},
			},
		},
	}})
}
