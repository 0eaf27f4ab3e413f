package service

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Environment string
	Port        string
	DBPath      string

	Rating struct {
		BaseURL string
		APIKey  string
	}

	Analysis struct {
		BatchSize  int
		BatchDelay time.Duration
	}
}

func LoadConfig() (*Config, error) {
	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "8000"),
		DBPath:      getEnv("DB_PATH", "./db/rfqtool.db"),
	}

	// Rating API
	config.Rating.BaseURL = getEnv("RATING_API_BASE_URL", "")
	config.Rating.APIKey = getEnv("RATING_API_KEY", "")

	// Analysis defaults; sized so a full batch of concurrent quote
	// pairs plus the cooldown stays under the rating API's
	// requests-per-minute ceiling.
	config.Analysis.BatchSize = 50
	if raw := getEnv("ANALYSIS_BATCH_SIZE", ""); raw != "" {
		if size, err := strconv.Atoi(raw); err == nil && size > 0 {
			config.Analysis.BatchSize = size
		}
	}
	config.Analysis.BatchDelay = 500 * time.Millisecond
	if raw := getEnv("ANALYSIS_BATCH_DELAY_MS", ""); raw != "" {
		if ms, err := strconv.Atoi(raw); err == nil && ms > 0 {
			config.Analysis.BatchDelay = time.Duration(ms) * time.Millisecond
		}
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
