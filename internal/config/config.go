// Package config provides configuration management for the application.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"premium-leave-engine/internal/services/classifier"
)

// Config holds all configuration values for the application.
type Config struct {
	// Classification
	Thresholds classifier.Thresholds

	// Batch processing
	Workers int
	Memoize bool

	// Application
	Stage    string
	LogLevel string
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	_ = godotenv.Load()

	defaults := classifier.DefaultThresholds()

	cfg := &Config{
		// Classification
		Thresholds: classifier.Thresholds{
			UrgentGapYears:      getEnvFloat("URGENT_GAP_YEARS", defaults.UrgentGapYears),
			MediumGapYears:      getEnvFloat("MEDIUM_GAP_YEARS", defaults.MediumGapYears),
			UnusedMediumMonths:  getEnvInt("UNUSED_MEDIUM_MONTHS", defaults.UnusedMediumMonths),
			UnusedUrgentMonths:  getEnvInt("UNUSED_URGENT_MONTHS", defaults.UnusedUrgentMonths),
			ScoreHorizonYears:   getEnvFloat("SCORE_HORIZON_YEARS", defaults.ScoreHorizonYears),
			ScorePerUnusedMonth: getEnvInt("SCORE_PER_UNUSED_MONTH", defaults.ScorePerUnusedMonth),
			NoLeaveScore:        defaults.NoLeaveScore,
			NoRetirementScore:   defaults.NoRetirementScore,
		},

		// Batch processing
		Workers: getEnvInt("WORKERS", 4),
		Memoize: getEnvBool("MEMOIZE", false),

		// Application
		Stage:    getEnv("STAGE", "dev"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an environment variable as int or returns a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
