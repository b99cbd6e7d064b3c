package config

import "testing"

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"FEEDS_CONFIG_PATH", "MANUAL_ENTRIES_PATH", "OUTPUT_PATH",
		"USAGE_COUNTER_PATH", "GEMINI_API_KEY", "CHAT_WEBHOOK_URL",
		"SLACK_WEBHOOK_URL", "MAX_ARTICLES", "GEMINI_DAILY_CAP",
		"DIGEST_TOP_N", "DEBUG",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.FeedsConfigPath != "configs/feeds.yaml" {
		t.Errorf("FeedsConfigPath = %q", cfg.FeedsConfigPath)
	}
	if cfg.OutputPath != "data/articles.json" {
		t.Errorf("OutputPath = %q", cfg.OutputPath)
	}
	if cfg.MaxArticles != 36 {
		t.Errorf("MaxArticles = %d, want 36", cfg.MaxArticles)
	}
	if cfg.GeminiDailyCap != 45 {
		t.Errorf("GeminiDailyCap = %d, want 45", cfg.GeminiDailyCap)
	}
	if cfg.UsageCounterPath != "data/usage.json" {
		t.Errorf("UsageCounterPath = %q", cfg.UsageCounterPath)
	}
	if cfg.DigestTopN != 5 {
		t.Errorf("DigestTopN = %d, want 5", cfg.DigestTopN)
	}
	if cfg.Debug {
		t.Error("Debug should default to false")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("FEEDS_CONFIG_PATH", "/etc/avianews/feeds.yaml")
	t.Setenv("MAX_ARTICLES", "12")
	t.Setenv("GEMINI_DAILY_CAP", "10")
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("SLACK_WEBHOOK_URL", "https://hooks.slack.example/x")
	t.Setenv("DEBUG", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.FeedsConfigPath != "/etc/avianews/feeds.yaml" {
		t.Errorf("FeedsConfigPath = %q", cfg.FeedsConfigPath)
	}
	if cfg.MaxArticles != 12 {
		t.Errorf("MaxArticles = %d, want 12", cfg.MaxArticles)
	}
	if cfg.GeminiDailyCap != 10 {
		t.Errorf("GeminiDailyCap = %d, want 10", cfg.GeminiDailyCap)
	}
	if cfg.GeminiAPIKey != "test-key" {
		t.Errorf("GeminiAPIKey = %q", cfg.GeminiAPIKey)
	}
	if cfg.SlackWebhookURL != "https://hooks.slack.example/x" {
		t.Errorf("SlackWebhookURL = %q", cfg.SlackWebhookURL)
	}
	if !cfg.Debug {
		t.Error("Debug should be true")
	}
}

func TestLoad_BadIntKeepsDefault(t *testing.T) {
	clearEnv(t)
	t.Setenv("MAX_ARTICLES", "a lot")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MaxArticles != 36 {
		t.Errorf("MaxArticles = %d, want default 36 for unparseable value", cfg.MaxArticles)
	}
}

func TestValidate(t *testing.T) {
	clearEnv(t)

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero max articles", func(c *Config) { c.MaxArticles = 0 }},
		{"negative daily cap", func(c *Config) { c.GeminiDailyCap = -1 }},
		{"empty output path", func(c *Config) { c.OutputPath = "" }},
		{"zero digest size", func(c *Config) { c.DigestTopN = 0 }},
	}
	for _, tc := range cases {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		tc.mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected validation error", tc.name)
		}
	}
}
