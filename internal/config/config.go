// Package config loads pipeline settings from the environment with
// defaults suitable for a scheduled batch run.
package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	// Input/output paths
	FeedsConfigPath   string
	ManualEntriesPath string
	OutputPath        string

	// Merge settings
	MaxArticles int

	// Gemini settings
	GeminiAPIKey     string
	GeminiDailyCap   int // maximum summarization calls per UTC day
	UsageCounterPath string

	// Digest delivery (optional)
	ChatWebhookURL  string
	SlackWebhookURL string
	DigestTopN      int

	// App settings
	Debug bool
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		FeedsConfigPath:   "configs/feeds.yaml",
		ManualEntriesPath: "configs/manual.yaml",
		OutputPath:        "data/articles.json",
		MaxArticles:       36,
		GeminiDailyCap:    45,
		UsageCounterPath:  "data/usage.json",
		DigestTopN:        5,
	}

	// Load from environment
	cfg.FeedsConfigPath = getEnvOrDefault("FEEDS_CONFIG_PATH", cfg.FeedsConfigPath)
	cfg.ManualEntriesPath = getEnvOrDefault("MANUAL_ENTRIES_PATH", cfg.ManualEntriesPath)
	cfg.OutputPath = getEnvOrDefault("OUTPUT_PATH", cfg.OutputPath)
	cfg.UsageCounterPath = getEnvOrDefault("USAGE_COUNTER_PATH", cfg.UsageCounterPath)

	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.ChatWebhookURL = os.Getenv("CHAT_WEBHOOK_URL")
	cfg.SlackWebhookURL = os.Getenv("SLACK_WEBHOOK_URL")

	cfg.MaxArticles = getEnvIntOrDefault("MAX_ARTICLES", cfg.MaxArticles)
	cfg.GeminiDailyCap = getEnvIntOrDefault("GEMINI_DAILY_CAP", cfg.GeminiDailyCap)
	cfg.DigestTopN = getEnvIntOrDefault("DIGEST_TOP_N", cfg.DigestTopN)

	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.FeedsConfigPath == "" {
		return fmt.Errorf("FEEDS_CONFIG_PATH is required")
	}
	if c.OutputPath == "" {
		return fmt.Errorf("OUTPUT_PATH is required")
	}
	if c.MaxArticles <= 0 {
		return fmt.Errorf("MAX_ARTICLES must be positive")
	}
	if c.GeminiDailyCap < 0 {
		return fmt.Errorf("GEMINI_DAILY_CAP must not be negative")
	}
	if c.DigestTopN <= 0 {
		return fmt.Errorf("DIGEST_TOP_N must be positive")
	}
	return nil
}
