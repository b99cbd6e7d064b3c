// Package manual loads operator-supplied article entries that bypass feed
// ingestion.
package manual

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/avianews/avianews/internal/news"
)

// Entry is one manual article as written by an operator. Only headline and
// url are required; everything else has a sensible default. A pre-set
// takeaway is kept as-is and never overwritten by the generator.
type Entry struct {
	Headline string `yaml:"headline"`
	Blurb    string `yaml:"blurb"`
	Source   string `yaml:"source"`
	URL      string `yaml:"url"`
	Date     string `yaml:"date"`
	Category string `yaml:"category"`
	Priority string `yaml:"priority"`
	Takeaway string `yaml:"takeaway"`
}

type entriesConfig struct {
	Entries []Entry `yaml:"entries"`
}

const defaultSourceName = "Newsroom"

var dateLayouts = []string{
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02 15:04",
	"2006-01-02",
}

// Load reads manual entries from a YAML file and normalizes them into
// article records. The caller decides how to handle a load error; the
// pipeline degrades to an empty list with a warning.
func Load(path string) ([]news.Article, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg entriesConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}

	articles := make([]news.Article, 0, len(cfg.Entries))
	for _, e := range cfg.Entries {
		articles = append(articles, fromEntry(e))
	}
	return articles, nil
}

func fromEntry(e Entry) news.Article {
	headline := news.CleanHeadline(e.Headline)
	blurb := news.CleanBlurb(e.Blurb)

	sourceName := e.Source
	if sourceName == "" {
		sourceName = defaultSourceName
	}

	priority := e.Priority
	if priority != news.PriorityHigh {
		priority = news.PriorityNormal
	}

	return news.Article{
		ID:          news.MakeID(headline, e.URL),
		Headline:    headline,
		Blurb:       blurb,
		Source:      news.Source{Name: sourceName, URL: e.URL},
		Category:    e.Category,
		Keywords:    news.ExtractKeywords(headline, blurb),
		PublishedAt: parseDate(e.Date),
		Takeaway:    e.Takeaway,
		Priority:    priority,
	}
}

// parseDate tries the known layouts and falls back to load time, never an
// error.
func parseDate(s string) time.Time {
	if s == "" {
		return time.Now()
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	log.Printf("Warning: unparseable manual entry date %q, using current time", s)
	return time.Now()
}
