package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/roadsafe/go-accident-analytics/internal/api"
	"github.com/roadsafe/go-accident-analytics/internal/config"
	"github.com/roadsafe/go-accident-analytics/internal/dataset"
	"github.com/roadsafe/go-accident-analytics/internal/logging"
	"github.com/roadsafe/go-accident-analytics/internal/observability"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logging.Setup(cfg.Logging.Level)

	slog.Info("Server starting", "host", cfg.Server.Host, "port", cfg.Server.Port)

	metrics := observability.NewMetrics()

	// The canonical dataset is built exactly once; a failure here is
	// fatal since the service has nothing to serve without it.
	store := dataset.NewStore(cfg.Data.Path)
	loadStart := time.Now()
	ds, err := store.Dataset()
	if err != nil {
		logging.Fatalf("Failed to load dataset from %s: %v", cfg.Data.Path, err)
	}
	loadDuration := time.Since(loadStart)

	metrics.RowsLoaded.Set(float64(len(ds.Records)))
	metrics.RowsDropped.Set(float64(ds.Dropped))
	metrics.LoadSeconds.Set(loadDuration.Seconds())

	slog.Info("dataset loaded",
		"rows", len(ds.Records),
		"dropped", ds.Dropped,
		"states", len(ds.Universe.States),
		"duration", loadDuration,
	)

	// Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false, // Set to false when using wildcard origins
	}))
	router.Use(api.RateLimitMiddleware(cfg.API.RateLimitRPS))
	router.Use(api.MetricsMiddleware(metrics))

	handler := api.NewHandler(ds, cfg.API, metrics)
	handler.RegisterRoutes(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
}
