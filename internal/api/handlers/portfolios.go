package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"portfolio-backtest/internal/api/models"
	"portfolio-backtest/internal/config"
)

// PortfoliosHandler lists the weight-vector presets available on disk.
type PortfoliosHandler struct {
	dir string
}

func NewPortfoliosHandler(dir string) *PortfoliosHandler {
	return &PortfoliosHandler{dir: dir}
}

// ListPortfolios handles GET /api/v1/portfolios.
func (h *PortfoliosHandler) ListPortfolios(c *gin.Context) {
	entries, err := os.ReadDir(h.dir)
	if err != nil {
		if os.IsNotExist(err) {
			c.JSON(http.StatusOK, gin.H{"portfolios": []models.PortfolioInfo{}})
			return
		}
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to read portfolios directory", err.Error())
		return
	}

	portfolios := make([]models.PortfolioInfo, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		ext := filepath.Ext(name)
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(h.dir, name)
		weights, err := config.LoadWeightsFile(path)
		if err != nil {
			log.Warn().Err(err).Str("file", path).Msg("skipping unreadable portfolio preset")
			continue
		}
		portfolios = append(portfolios, models.PortfolioInfo{
			ID:      strings.TrimSuffix(name, ext),
			File:    path,
			Symbols: len(weights),
		})
	}
	c.JSON(http.StatusOK, gin.H{"portfolios": portfolios})
}
