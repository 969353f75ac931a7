package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pratham-associates/listings/internal/ai"
	"github.com/pratham-associates/listings/internal/config"
	"github.com/pratham-associates/listings/internal/database"
	"github.com/pratham-associates/listings/internal/handlers"
	"github.com/pratham-associates/listings/internal/logger"
	"github.com/pratham-associates/listings/internal/repository"
	"github.com/pratham-associates/listings/internal/seed"
	"github.com/pratham-associates/listings/internal/server"
)

const (
	shutdownTimeout = 30 * time.Second
	startupTimeout  = 30 * time.Second
)

func main() {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.Server.Env, cfg.Server.LogLevel)
	log.Info("Starting listings API", map[string]interface{}{
		"version":     handlers.APIVersion,
		"environment": cfg.Server.Env,
		"port":        cfg.Server.Port,
		"store":       cfg.Store.Driver,
		"ai_enabled":  cfg.AI.Enabled(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), startupTimeout)
	defer cancel()

	store, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal("Failed to open store", err, map[string]interface{}{
			"driver": cfg.Store.Driver,
		})
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Error("Failed to close store", err, nil)
		}
	}()

	if err := store.Migrate(ctx); err != nil {
		log.Fatal("Failed to prepare store schema", err, map[string]interface{}{
			"driver": store.Driver(),
		})
	}

	if cfg.Catalog.SeedSampleData {
		catalog, err := seed.DefaultCatalog()
		if err != nil {
			log.Fatal("Failed to load sample catalog", err, nil)
		}
		if _, err := seed.Seed(ctx, store, catalog, log.WithComponent("seed")); err != nil {
			log.Fatal("Failed to seed store", err, nil)
		}
	}

	generator, closeGenerator, err := newGenerator(ctx, cfg.AI, log)
	if err != nil {
		log.Fatal("Failed to create AI client", err, nil)
	}
	defer closeGenerator()

	advisor, err := ai.NewAdvisor(generator, ai.Options{
		RecommendationModel: cfg.AI.RecommendationModel,
		AnalysisModel:       cfg.AI.AnalysisModel,
		Timeout:             cfg.AI.Timeout,
	})
	if err != nil {
		log.Fatal("Failed to build AI advisor", err, nil)
	}

	// Setup Gin router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := server.NewRouter(server.Dependencies{
		Config:  cfg,
		Store:   store,
		Advisor: advisor,
		Logger:  log,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server listening", map[string]interface{}{
			"port":  cfg.Server.Port,
			"addr":  srv.Addr,
			"admin": cfg.Server.AdminEnabled,
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start", err, nil)
		}
	}()

	// Wait for interrupt signal (SIGINT or SIGTERM)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	log.Info("Shutting down server...", nil)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err, map[string]interface{}{
			"timeout": shutdownTimeout.String(),
		})
	}

	log.Info("Server exited", nil)
}

// openStore connects the backend selected by STORE_DRIVER.
func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (*repository.Store, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		db, err := database.NewPostgresPool(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		log.Info("Database connection established", map[string]interface{}{
			"pool_min": cfg.Database.PoolMin,
			"pool_max": cfg.Database.PoolMax,
		})
		return repository.NewPostgresStore(db), nil

	case config.DriverSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLite)
		if err != nil {
			return nil, err
		}
		log.Info("SQLite database opened", map[string]interface{}{
			"path": cfg.SQLite.Path,
		})
		return repository.NewSQLiteStore(db), nil

	default:
		log.Warn("Using in-memory store, data is lost on restart", nil)
		return repository.NewMemoryStore(), nil
	}
}

// newGenerator returns the Gemini client when an API key is configured and a
// generator that always fails otherwise, leaving the service on its fallbacks.
func newGenerator(ctx context.Context, cfg config.AIConfig, log *logger.Logger) (ai.Generator, func(), error) {
	if !cfg.Enabled() {
		log.Warn("GEMINI_API_KEY not set, AI features will use fallbacks", nil)
		return ai.NewDisabledGenerator(), func() {}, nil
	}

	gen, err := ai.NewGeminiGenerator(ctx, cfg.APIKey)
	if err != nil {
		return nil, nil, err
	}
	return gen, func() {
		if err := gen.Close(); err != nil {
			log.Error("Failed to close AI client", err, nil)
		}
	}, nil
}
