// Command catalogd serves the catalog query API over HTTP.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-catalog-query/config"
	"github.com/goliatone/go-catalog-query/internal/httpapi"
	"github.com/goliatone/go-catalog-query/internal/seed"
	"github.com/goliatone/go-catalog-query/pkg/di"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		l := zerolog.New(os.Stderr)
		l.Fatal().Err(err).Msg("load config")
	}

	logger := newLogger(cfg)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	container, err := di.NewContainer(di.Options{
		Cache:           cfg.CacheSettings(),
		Resilience:      cfg.ResilienceSettings(),
		AccessorTimeout: cfg.Resilience.AccessorTimeout,
		Logger:          logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("build container")
	}
	defer container.Close()

	ctx := context.Background()
	if err := seed.Load(ctx, container.ProductStore(), container.CategoryStore(), container.ImageStore(), logger); err != nil {
		logger.Fatal().Err(err).Msg("seed catalog")
	}

	handlers := httpapi.NewHandlers(
		container.Products(),
		container.Categories(),
		container.Images(),
		container.ProductViews(),
		container.CategoryViews(),
		container.Breakers(),
		cfg.Server.MaxPageSize,
	)
	router := httpapi.NewRouter(handlers, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutdown")
	}
	logger.Info().Msg("server stopped")
}

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	if cfg.Log.Format == "json" {
		return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}
