package handlers

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"portfolio-backtest/internal/analysis"
	"portfolio-backtest/internal/api/models"
	"portfolio-backtest/internal/backtest"
	"portfolio-backtest/internal/data"
	"portfolio-backtest/internal/model"
	"portfolio-backtest/internal/strategy"
)

// BacktestHandler runs simulations over datasets in dataDir and keeps
// completed runs in the store for later retrieval.
type BacktestHandler struct {
	dataDir string
	store   *RunStore
}

func NewBacktestHandler(dataDir string, store *RunStore) *BacktestHandler {
	return &BacktestHandler{dataDir: dataDir, store: store}
}

// RunBacktest handles POST /api/v1/backtest.
func (h *BacktestHandler) RunBacktest(c *gin.Context) {
	var req models.BacktestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", "request body is invalid", err.Error())
		return
	}

	stratName := req.Config.Strategy.Name
	if stratName == "" {
		stratName = "market_regime"
	}
	strat, err := strategy.Build(stratName, req.Config.Strategy.Params)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_STRATEGY", err.Error(), "")
		return
	}

	cat, err := data.LoadCatalogCached(h.resolveDataset(req.Dataset))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			respondError(c, http.StatusNotFound, "DATASET_NOT_FOUND", "dataset not found: "+req.Dataset, "")
			return
		}
		respondDomainError(c, err)
		return
	}

	alloc := req.Config.DividendAllocation
	if alloc == 0 {
		alloc = 0.70
	}
	ledger, err := backtest.NewLedgerFromCatalog(cat, req.Config.InitialCapital, alloc, req.Config.Weights)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	eng := backtest.New()
	if req.Config.Tolerance > 0 {
		eng.Tolerance = req.Config.Tolerance
	}
	eng.MaxDays = req.Options.LimitDays

	res, err := eng.Run(cat, ledger, strat)
	if err != nil {
		respondDomainError(c, err)
		return
	}

	summary := analysis.Summarize(res, req.Config.InitialCapital, alloc)
	id := uuid.NewString()
	h.store.Put(id, res, summary)
	log.Info().Str("run_id", id).Str("dataset", req.Dataset).Str("strategy", strat.Name()).
		Int("days", summary.TradingDays).Int("rebalances", summary.RebalanceCount).
		Msg("backtest complete")

	resp := models.BacktestResponse{ID: id, Summary: toSummary(summary)}
	if req.Options.IncludeSnapshots {
		resp.Snapshots = toSnapshots(res.Snapshots)
	}
	if req.Options.IncludeEvents {
		resp.Events = toEvents(res.Events)
	}
	c.JSON(http.StatusOK, resp)
}

// GetSnapshots handles GET /api/v1/backtest/:id/snapshots.
func (h *BacktestHandler) GetSnapshots(c *gin.Context) {
	id := c.Param("id")
	res, _, ok := h.store.Get(id)
	if !ok {
		respondError(c, http.StatusNotFound, "RUN_NOT_FOUND", "no run with id "+id, "")
		return
	}
	snaps := toSnapshots(res.Snapshots)
	c.JSON(http.StatusOK, models.SnapshotsResponse{ID: id, Count: len(snaps), Snapshots: snaps})
}

// GetEvents handles GET /api/v1/backtest/:id/events.
func (h *BacktestHandler) GetEvents(c *gin.Context) {
	id := c.Param("id")
	res, _, ok := h.store.Get(id)
	if !ok {
		respondError(c, http.StatusNotFound, "RUN_NOT_FOUND", "no run with id "+id, "")
		return
	}
	events := toEvents(res.Events)
	c.JSON(http.StatusOK, models.EventsResponse{ID: id, Count: len(events), Events: events})
}

// resolveDataset maps a dataset id onto a file path. Anything that looks
// like a path is used as given.
func (h *BacktestHandler) resolveDataset(name string) string {
	if strings.ContainsRune(name, os.PathSeparator) || strings.HasSuffix(name, ".json") {
		return name
	}
	return filepath.Join(h.dataDir, name+".json")
}

func respondDomainError(c *gin.Context, err error) {
	var cfgErr *model.ConfigError
	var dataErr *model.DataError
	switch {
	case errors.As(err, &cfgErr):
		respondError(c, http.StatusBadRequest, "INVALID_CONFIG", cfgErr.Error(), "")
	case errors.As(err, &dataErr):
		respondError(c, http.StatusBadRequest, "DATA_ERROR", dataErr.Error(), "")
	case errors.Is(err, model.ErrEmptyResult):
		respondError(c, http.StatusUnprocessableEntity, "EMPTY_RESULT", err.Error(), "")
	default:
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error(), "")
	}
}

func respondError(c *gin.Context, status int, code, message, details string) {
	c.JSON(status, models.ErrorResponse{Error: models.ErrorDetail{
		Code:    code,
		Message: message,
		Details: details,
	}})
}
