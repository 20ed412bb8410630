package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"syscall"
	"time"

	"route-profitability/internal/api"
	"route-profitability/internal/api/handlers"
	"route-profitability/internal/data"
	"route-profitability/pkg/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:  os.Getenv("LOG_LEVEL"),
		Format: os.Getenv("LOG_FORMAT"),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(2)
	}
	defer func() { _ = log.Sync() }()

	if err := run(log); err != nil {
		log.Error("API server failed", logger.Error(err))
		os.Exit(1)
	}
}

func run(log *logger.Logger) error {
	// Get configuration from environment
	port := getenv("API_PORT", "8080")
	dataDir := getenv("DATA_DIR", "data")
	presetDir := getenv("PRESET_DIR", filepath.Join("examples", "aircraft"))

	cacheTTL, err := time.ParseDuration(getenv("GRID_CACHE_TTL", "10m"))
	if err != nil {
		return fmt.Errorf("GRID_CACHE_TTL: %w", err)
	}
	maxCells, err := strconv.Atoi(getenv("MAX_GRID_CELLS", strconv.Itoa(handlers.DefaultMaxGridCells)))
	if err != nil {
		return fmt.Errorf("MAX_GRID_CELLS: %w", err)
	}
	workers, err := strconv.Atoi(getenv("SWEEP_WORKERS", strconv.Itoa(runtime.NumCPU())))
	if err != nil {
		return fmt.Errorf("SWEEP_WORKERS: %w", err)
	}

	catalog, err := handlers.LoadCatalog(dataDir)
	if err != nil {
		return err
	}
	log.Info("catalog loaded",
		logger.String("data_dir", dataDir),
		logger.Int("aircraft", len(catalog.Aircraft)),
		logger.Int("routes", len(catalog.Routes)),
	)

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cache := data.NewGridCache(cacheTTL)
	if cache != nil {
		go cache.Run(ctx, cacheTTL)
	}

	router := api.NewRouter(api.Options{
		Catalog:      catalog,
		Cache:        cache,
		PresetDir:    presetDir,
		CORSOrigins:  splitList(os.Getenv("CORS_ORIGINS")),
		Workers:      workers,
		MaxGridCells: maxCells,
		Logger:       log,
	})

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting API server", logger.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
