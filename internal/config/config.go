package config

import (
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration
type Config struct {
	GeminiAPIKey string `env:"GEMINI_API_KEY" envDefault:"-"`
	Port         string `env:"PORT" envDefault:"8080"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`

	CoinGeckoBaseURL string `env:"COINGECKO_BASE_URL" envDefault:"https://api.coingecko.com/api/v3"`
	RequestTimeout   int    `env:"REQUEST_TIMEOUT" envDefault:"30"` // seconds
	RequestsPerSec   int    `env:"REQUESTS_PER_SEC" envDefault:"5"`
	MaxRetries       int    `env:"MAX_RETRIES" envDefault:"3"`
	PriceDays        int    `env:"PRICE_DAYS" envDefault:"30"`

	SnapshotDir      string   `env:"SNAPSHOT_DIR" envDefault:"public/pred"`
	CORSAllowOrigins []string `env:"CORS_ALLOW_ORIGINS" envDefault:"*"`

	AnomalyContamination float64 `env:"ANOMALY_CONTAMINATION" envDefault:"0.05"`
	AnomalySeed          int64   `env:"ANOMALY_SEED" envDefault:"42"`
	AnomalyTrees         int     `env:"ANOMALY_TREES" envDefault:"100"`
	AnomalySampleSize    int     `env:"ANOMALY_SAMPLE_SIZE" envDefault:"256"`
	AnomalyMinSamples    int     `env:"ANOMALY_MIN_SAMPLES" envDefault:"20"`
}

// Load initializes configuration from environment variables
func Load() (*Config, error) {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, relying on actual environment variables")
	}

	var cfg Config

	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.Port = getEnvWithDefault("PORT", "8080")
	cfg.LogLevel = getEnvWithDefault("LOG_LEVEL", "info")

	cfg.CoinGeckoBaseURL = getEnvWithDefault("COINGECKO_BASE_URL", "https://api.coingecko.com/api/v3")
	cfg.RequestTimeout = getEnvIntWithDefault("REQUEST_TIMEOUT", 30)
	cfg.RequestsPerSec = getEnvIntWithDefault("REQUESTS_PER_SEC", 5)
	cfg.MaxRetries = getEnvIntWithDefault("MAX_RETRIES", 3)
	cfg.PriceDays = getEnvIntWithDefault("PRICE_DAYS", 30)

	cfg.SnapshotDir = getEnvWithDefault("SNAPSHOT_DIR", "public/pred")
	cfg.CORSAllowOrigins = splitAndTrim(getEnvWithDefault("CORS_ALLOW_ORIGINS", "*"))

	cfg.AnomalyContamination = getEnvFloatWithDefault("ANOMALY_CONTAMINATION", 0.05)
	cfg.AnomalySeed = int64(getEnvIntWithDefault("ANOMALY_SEED", 42))
	cfg.AnomalyTrees = getEnvIntWithDefault("ANOMALY_TREES", 100)
	cfg.AnomalySampleSize = getEnvIntWithDefault("ANOMALY_SAMPLE_SIZE", 256)
	cfg.AnomalyMinSamples = getEnvIntWithDefault("ANOMALY_MIN_SAMPLES", 20)

	if cfg.GeminiAPIKey == "" {
		return nil, errors.New("GEMINI_API_KEY is not set")
	}

	return &cfg, nil
}

// Helper functions for environment variable handling
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntWithDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatWithDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
