package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"portfolio-backtest/internal/api/models"
)

// DatasetsHandler lists the dataset files the API can run against.
type DatasetsHandler struct {
	dataDir string
}

func NewDatasetsHandler(dataDir string) *DatasetsHandler {
	return &DatasetsHandler{dataDir: dataDir}
}

// ListDatasets handles GET /api/v1/datasets.
func (h *DatasetsHandler) ListDatasets(c *gin.Context) {
	entries, err := os.ReadDir(h.dataDir)
	if err != nil {
		if os.IsNotExist(err) {
			c.JSON(http.StatusOK, gin.H{"datasets": []models.DatasetInfo{}})
			return
		}
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to read data directory", err.Error())
		return
	}

	datasets := make([]models.DatasetInfo, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".json") || name == "universe.json" {
			continue
		}
		datasets = append(datasets, models.DatasetInfo{
			ID:   strings.TrimSuffix(name, ".json"),
			File: filepath.Join(h.dataDir, name),
		})
	}
	c.JSON(http.StatusOK, gin.H{"datasets": datasets})
}
