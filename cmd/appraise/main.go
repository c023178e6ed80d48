package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/MikeSquared-Agency/Appraise/internal/api"
	"github.com/MikeSquared-Agency/Appraise/internal/broker"
	"github.com/MikeSquared-Agency/Appraise/internal/config"
	"github.com/MikeSquared-Agency/Appraise/internal/hermes"
	"github.com/MikeSquared-Agency/Appraise/internal/metrics"
	"github.com/MikeSquared-Agency/Appraise/internal/scoring"
	"github.com/MikeSquared-Agency/Appraise/internal/store"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = newLogger(cfg.Logging)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Rankings
	sessions := store.NewSessions()
	defer sessions.Close()

	// Hermes (optional)
	var hermesClient hermes.Client
	if cfg.Hermes.URL != "" {
		hc, err := hermes.NewNATSClient(ctx, cfg.Hermes.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to hermes, running without events", "error", err)
		} else {
			hermesClient = hc
			defer hc.Close()
			logger.Info("connected to hermes")
		}
	}

	policy, _ := cfg.Policy()
	scorer := scoring.NewScorer(policy, logger)
	if cfg.Scoring.CacheSize > 0 {
		if err := scorer.EnableCache(cfg.Scoring.CacheSize); err != nil {
			logger.Error("failed to create evaluation cache", "error", err)
			os.Exit(1)
		}
	}
	m := metrics.New(prometheus.DefaultRegisterer)

	// Broker
	b := broker.New(sessions, hermesClient, scorer, m, cfg.StatsInterval(), logger)
	if err := b.SetupSubscriptions(); err != nil {
		logger.Warn("failed to subscribe to evaluation requests", "error", err)
	}
	b.Start(ctx)
	defer b.Stop()
	logger.Info("broker started", "stats_interval", cfg.StatsInterval())

	// API server
	router := api.NewRouter(sessions, hermesClient, scorer, m, cfg.Server.AdminToken, cfg.API.RateLimitPerMinute, logger)
	apiServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Metrics server
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.MetricsPort),
		Handler: api.NewMetricsRouter(prometheus.DefaultGatherer),
	}

	go func() {
		logger.Info("API server starting", "port", cfg.Server.Port, "input_policy", policy)
		if err := apiServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("API server error", "error", err)
		}
	}()

	go func() {
		logger.Info("metrics server starting", "port", cfg.Server.MetricsPort)
		if err := metricsServer.ListenAndServe(); err != http.ErrServerClosed {
			logger.Error("metrics server error", "error", err)
		}
	}()

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = apiServer.Shutdown(shutdownCtx)
	_ = metricsServer.Shutdown(shutdownCtx)

	logger.Info("shutdown complete")
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(cfg.Level))); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
