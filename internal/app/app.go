// Package app wires the pipeline together: fetch, merge, takeaways, output,
// digests.
package app

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/avianews/avianews/internal/config"
	"github.com/avianews/avianews/internal/digest"
	"github.com/avianews/avianews/internal/feeds"
	"github.com/avianews/avianews/internal/gemini"
	"github.com/avianews/avianews/internal/logger"
	"github.com/avianews/avianews/internal/manual"
	"github.com/avianews/avianews/internal/metrics"
	"github.com/avianews/avianews/internal/news"
	"github.com/avianews/avianews/internal/quota"
	"github.com/avianews/avianews/internal/takeaway"
)

// Output is the contract the static page renderer depends on: the final
// ordered article list plus the generation timestamp.
type Output struct {
	GeneratedAt time.Time      `json:"generatedAt"`
	Articles    []news.Article `json:"articles"`
}

// Run executes one batch. Feed-level and summarization failures degrade;
// missing feed configuration and output write errors are fatal.
func Run() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Config error: %v", err)
	}

	sources, err := feeds.LoadSources(cfg.FeedsConfigPath)
	if err != nil {
		log.Fatalf("Failed to load feed sources from %s: %v", cfg.FeedsConfigPath, err)
	}
	if len(sources) == 0 {
		log.Fatalf("No feed sources configured in %s", cfg.FeedsConfigPath)
	}

	ctx := context.Background()
	start := time.Now()

	fetcher := feeds.NewFetcher()
	feedArticles := fetcher.FetchAll(ctx, sources)
	log.Printf("Collected %d articles from %d feeds", len(feedArticles), len(sources))

	manualArticles, err := manual.Load(cfg.ManualEntriesPath)
	if err != nil {
		log.Printf("Warning: failed to load manual entries from %s: %v (continuing without them)", cfg.ManualEntriesPath, err)
		manualArticles = nil
	}

	merged := news.Merge(feedArticles, manualArticles, cfg.MaxArticles)
	metrics.Global.AddArticlesProcessed(len(merged))
	log.Printf("Merged down to %d articles (max %d)", len(merged), cfg.MaxArticles)

	limiter := quota.NewLimiter(cfg.UsageCounterPath, cfg.GeminiDailyCap)

	var summarizer takeaway.Summarizer
	if cfg.GeminiAPIKey == "" {
		log.Println("GEMINI_API_KEY not set, using rule-based takeaways only")
	} else {
		client, err := gemini.NewClient(cfg.GeminiAPIKey)
		if err != nil {
			log.Printf("Warning: Gemini client init failed: %v (using rule-based takeaways)", err)
		} else {
			defer client.Close()
			summarizer = client
		}
	}

	takeaway.NewGenerator(summarizer, limiter).Apply(ctx, merged)
	log.Printf("Summarization quota remaining today: %d", limiter.Remaining())

	if cfg.Debug {
		for i, a := range merged {
			if i >= 2 {
				break
			}
			logger.Debug("article preview", "headline", a.Headline, "source", a.Source.Name, "takeaway", a.Takeaway)
		}
	}

	out := Output{GeneratedAt: time.Now().UTC(), Articles: merged}
	if err := writeOutput(cfg.OutputPath, out); err != nil {
		metrics.Global.SetError(err.Error())
		log.Fatalf("Failed to write output: %v", err)
	}

	postDigests(ctx, cfg, merged, out.GeneratedAt)

	metrics.Global.RecordProcessingTime(time.Since(start))
	metrics.Global.SetLastRun()
	log.Printf("Done: %d articles written to %s", len(merged), cfg.OutputPath)
}

func writeOutput(path string, out Output) error {
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// postDigests delivers the top-N subset to the configured webhooks.
// Best-effort: failures are logged, never fatal.
func postDigests(ctx context.Context, cfg *config.Config, articles []news.Article, generatedAt time.Time) {
	if cfg.ChatWebhookURL == "" && cfg.SlackWebhookURL == "" {
		return
	}

	top := digest.Top(articles, cfg.DigestTopN)
	if len(top) == 0 {
		log.Println("No articles for digest delivery, skipping webhooks")
		return
	}

	if cfg.ChatWebhookURL != "" {
		if err := digest.Post(ctx, cfg.ChatWebhookURL, digest.BuildCards(top, generatedAt)); err != nil {
			log.Printf("Warning: chat webhook delivery failed: %v", err)
			metrics.Global.IncrementWebhooksFailed()
		} else {
			log.Printf("Digest delivered to chat webhook (%d articles)", len(top))
			metrics.Global.IncrementWebhooksSent()
		}
	}

	if cfg.SlackWebhookURL != "" {
		if err := digest.Post(ctx, cfg.SlackWebhookURL, digest.BuildBlocks(top, generatedAt)); err != nil {
			log.Printf("Warning: Slack webhook delivery failed: %v", err)
			metrics.Global.IncrementWebhooksFailed()
		} else {
			log.Printf("Digest delivered to Slack webhook (%d articles)", len(top))
			metrics.Global.IncrementWebhooksSent()
		}
	}
}
