// Package feeds loads the configured source list and fetches every feed
// concurrently, converting parsed documents into uniform article records.
package feeds

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
	"gopkg.in/yaml.v3"

	"github.com/avianews/avianews/internal/metrics"
	"github.com/avianews/avianews/internal/news"
)

const (
	fetchTimeout = 15 * time.Second
	userAgent    = "avianews/1.0 (+https://github.com/avianews/avianews)"
)

// Source is one configured feed.
type Source struct {
	Name     string `yaml:"name"`
	URL      string `yaml:"url"`
	Category string `yaml:"category"`
}

// SourcesConfig is the YAML config structure
// feeds:
//   - name: ...
//     url: https://...
//     category: ...
type SourcesConfig struct {
	Feeds []Source `yaml:"feeds"`
}

// LoadSources reads the feed source list from a YAML file.
func LoadSources(path string) ([]Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg SourcesConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	return cfg.Feeds, nil
}

// Fetcher downloads and parses feeds.
type Fetcher struct {
	client *http.Client
	parser *gofeed.Parser
}

func NewFetcher() *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: fetchTimeout},
		parser: gofeed.NewParser(),
	}
}

// FetchAll fetches every source concurrently. Each feed gets its own timeout
// and failure path: one slow or broken feed is logged and contributes zero
// articles without delaying or cancelling the others.
func (f *Fetcher) FetchAll(ctx context.Context, sources []Source) []news.Article {
	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		all []news.Article
	)

	for _, src := range sources {
		wg.Add(1)
		go func(src Source) {
			defer wg.Done()

			articles, err := f.fetchOne(ctx, src)
			if err != nil {
				log.Printf("Error fetching feed %s (%s): %v", src.Name, src.URL, err)
				metrics.Global.IncrementFeedsFailed()
				return
			}
			metrics.Global.IncrementFeedsFetched()
			log.Printf("Loaded %d articles from %s", len(articles), src.Name)

			mu.Lock()
			all = append(all, articles...)
			mu.Unlock()
		}(src)
	}
	wg.Wait()

	return all
}

func (f *Fetcher) fetchOne(ctx context.Context, src Source) ([]news.Article, error) {
	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("want 200, got %d", resp.StatusCode)
	}

	feed, err := f.parser.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	return news.FromFeed(feed, src.Name, src.Category), nil
}
