package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"cryptosentinel/internal/anomaly"
	"cryptosentinel/internal/chart"
	"cryptosentinel/internal/config"
	"cryptosentinel/internal/market/coingecko"
	"cryptosentinel/internal/narrative"
	"cryptosentinel/internal/server"
	"cryptosentinel/internal/service"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	narrator, err := narrative.NewGemini(ctx, cfg.GeminiAPIKey)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create narrator")
	}
	defer narrator.Close()

	marketClient := coingecko.NewClient(coingecko.ClientOptions{
		BaseURL:        cfg.CoinGeckoBaseURL,
		RequestTimeout: time.Duration(cfg.RequestTimeout) * time.Second,
		RequestsPerSec: cfg.RequestsPerSec,
		MaxRetries:     cfg.MaxRetries,
	})

	detector := anomaly.NewDetector(anomaly.Config{
		Contamination: cfg.AnomalyContamination,
		Seed:          cfg.AnomalySeed,
		Trees:         cfg.AnomalyTrees,
		SampleSize:    cfg.AnomalySampleSize,
		MinSamples:    cfg.AnomalyMinSamples,
	})

	snapshots := chart.NewSnapshotStore(cfg.SnapshotDir)
	analyzer := service.NewAnalyzer(marketClient, detector, narrator, snapshots, cfg.PriceDays)
	handler := server.NewAnalyzeHandler(analyzer)

	router := server.NewRouter(&server.Config{
		AnalyzeHandler: handler,
		AllowOrigins:   cfg.CORSAllowOrigins,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}
}
