package handlers

import (
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"route-profitability/internal/api/models"
	"route-profitability/internal/config"
	"route-profitability/internal/model"
	"route-profitability/pkg/logger"

	"github.com/gin-gonic/gin"
)

// ListAircraft handles GET /api/v1/aircraft
func (c *Catalog) ListAircraft(ctx *gin.Context) {
	aircraft := c.Aircraft
	if aircraft == nil {
		aircraft = []model.AircraftProfile{}
	}
	ctx.JSON(http.StatusOK, gin.H{"aircraft": aircraft})
}

// ListRoutes handles GET /api/v1/routes
func (c *Catalog) ListRoutes(ctx *gin.Context) {
	routes := c.Routes
	if routes == nil {
		routes = []model.Route{}
	}
	ctx.JSON(http.StatusOK, gin.H{"routes": routes})
}

// PresetHandler lists aircraft preset files
type PresetHandler struct {
	presetDir string
	log       *logger.Logger
}

// NewPresetHandler creates a preset handler reading *.yaml and *.toml files from dir.
func NewPresetHandler(dir string, log *logger.Logger) *PresetHandler {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	log = log.Named("presets")
	log.Info("using preset directory", logger.String("dir", dir))
	return &PresetHandler{presetDir: dir, log: log}
}

// ListPresets handles GET /api/v1/presets
func (h *PresetHandler) ListPresets(c *gin.Context) {
	presets := []models.PresetInfo{}

	entries, err := os.ReadDir(h.presetDir)
	if err != nil {
		h.log.Warn("failed to read preset directory", logger.String("dir", h.presetDir), logger.Error(err))
		c.JSON(http.StatusOK, gin.H{"presets": presets})
		return
	}

	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml" && ext != ".toml") {
			continue
		}

		path := filepath.Join(h.presetDir, entry.Name())
		aircraft, err := config.LoadAircraftFile(path)
		if err == nil {
			err = aircraft.Validate()
		}
		if err != nil {
			h.log.Warn("skipping preset", logger.String("file", path), logger.Error(err))
			continue
		}

		// "a320_neo.yaml" -> "a320_neo"
		id := strings.TrimSuffix(entry.Name(), ext)
		presets = append(presets, models.PresetInfo{
			ID:       id,
			Name:     aircraft.AircraftType,
			File:     path,
			Aircraft: aircraft,
		})
	}
	sort.Slice(presets, func(i, j int) bool { return presets[i].ID < presets[j].ID })

	c.JSON(http.StatusOK, gin.H{"presets": presets})
}
