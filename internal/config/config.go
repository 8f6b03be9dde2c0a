package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	DatabaseURL string
	Port        string
	Environment string

	// Upstream quote sources
	GoldAPIURL string
	GoldAPIKey string
	FXAPIURL   string
	FXAPIKey   string

	// Snapshot sampler
	SampleInterval time.Duration
}

func Load() *Config {
	defaultDSN := "root:password@tcp(127.0.0.1:3306)/asset_tracker?charset=utf8mb4&parseTime=True&loc=Local"

	return &Config{
		DatabaseURL: getEnv("DATABASE_URL", defaultDSN),
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		GoldAPIURL: getEnv("GOLD_API_URL", "https://api.quotegold.example.com"),
		GoldAPIKey: getEnv("GOLD_API_KEY", ""),
		FXAPIURL:   getEnv("FX_API_URL", "https://api.quotefx.example.com"),
		FXAPIKey:   getEnv("FX_API_KEY", ""),

		SampleInterval: getEnvMinutes("SAMPLE_INTERVAL_MINUTES", 60),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvMinutes(key string, defaultMinutes int) time.Duration {
	minutes := defaultMinutes
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			minutes = n
		}
	}
	return time.Duration(minutes) * time.Minute
}
