// Package api wires the HTTP handlers into a gin engine.
package api

import (
	"net/http"

	"route-profitability/internal/api/handlers"
	"route-profitability/internal/api/middleware"
	"route-profitability/internal/data"
	"route-profitability/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Options are the dependencies of the router.
type Options struct {
	Catalog      *handlers.Catalog
	Cache        *data.GridCache // nil disables caching
	PresetDir    string
	CORSOrigins  []string
	Workers      int
	MaxGridCells int
	Logger       *logger.Logger
}

func NewRouter(opts Options) *gin.Engine {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	catalog := opts.Catalog
	if catalog == nil {
		catalog = &handlers.Catalog{}
	}

	router := gin.New()
	router.Use(middleware.CORS(opts.CORSOrigins))
	router.Use(middleware.Logger(log))
	router.Use(middleware.ErrorHandler(log))

	profitHandler := handlers.NewProfitHandler(catalog)
	gridHandler := handlers.NewGridHandler(catalog, opts.Cache, opts.Workers, opts.MaxGridCells, log)
	rankHandler := handlers.NewRankHandler(catalog)
	presetHandler := handlers.NewPresetHandler(opts.PresetDir, log)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		v1.POST("/profit", profitHandler.ComputeProfit)
		v1.POST("/grid", gridHandler.RunGrid)
		v1.POST("/grid/surface", gridHandler.Surface)
		v1.POST("/rank", rankHandler.RankAircraft)

		v1.GET("/aircraft", catalog.ListAircraft)
		v1.GET("/routes", catalog.ListRoutes)
		v1.GET("/presets", presetHandler.ListPresets)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
	})
	return router
}
