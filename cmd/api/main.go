package main

import (
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"portfolio-backtest/internal/api/handlers"
	"portfolio-backtest/internal/api/middleware"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	dataDir := envOr("DATA_DIR", "./data")
	portfoliosDir := envOr("PORTFOLIOS_DIR", "./examples/portfolios")

	router := gin.New()
	router.Use(middleware.CORS())
	router.Use(middleware.Logger())
	router.Use(middleware.ErrorHandler())

	store := handlers.NewRunStore(handlers.DefaultStoreCapacity)
	backtestHandler := handlers.NewBacktestHandler(dataDir, store)
	datasetsHandler := handlers.NewDatasetsHandler(dataDir)
	portfoliosHandler := handlers.NewPortfoliosHandler(portfoliosDir)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/backtest", backtestHandler.RunBacktest)
		api.GET("/backtest/:id/snapshots", backtestHandler.GetSnapshots)
		api.GET("/backtest/:id/events", backtestHandler.GetEvents)

		api.GET("/strategies", handlers.ListStrategies)
		api.GET("/datasets", datasetsHandler.ListDatasets)
		api.GET("/portfolios", portfoliosHandler.ListPortfolios)
	}

	addr := fmt.Sprintf(":%s", envOr("API_PORT", "8080"))
	log.Info().Str("addr", addr).Str("data_dir", dataDir).Msg("starting API server")
	if err := router.Run(addr); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
