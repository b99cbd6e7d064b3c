// Package digest renders the top articles into chat webhook payloads and
// posts them best-effort.
package digest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/avianews/avianews/internal/news"
)

const (
	// DefaultTopN is how many articles a digest carries when unconfigured.
	DefaultTopN = 5

	postTimeout = 10 * time.Second
	digestTitle = "Aviation News Digest"
)

// Top returns the first n articles, which are already in final merge order.
func Top(articles []news.Article, n int) []news.Article {
	if n <= 0 {
		n = DefaultTopN
	}
	if len(articles) < n {
		n = len(articles)
	}
	return articles[:n]
}

// BuildCards renders articles into a Google Chat cardsV2 message.
func BuildCards(articles []news.Article, generatedAt time.Time) map[string]interface{} {
	widgets := make([]map[string]interface{}, 0, len(articles))
	for _, a := range articles {
		widgets = append(widgets, map[string]interface{}{
			"decoratedText": map[string]interface{}{
				"topLabel":    a.Source.Name,
				"text":        fmt.Sprintf("<a href=\"%s\">%s</a>", a.Source.URL, a.Headline),
				"bottomLabel": a.Takeaway,
				"wrapText":    true,
			},
		})
	}

	return map[string]interface{}{
		"cardsV2": []map[string]interface{}{
			{
				"cardId": "avianews-digest",
				"card": map[string]interface{}{
					"header": map[string]interface{}{
						"title":    digestTitle,
						"subtitle": generatedAt.Format("Mon, 2 Jan 2006 15:04 MST"),
					},
					"sections": []map[string]interface{}{
						{"widgets": widgets},
					},
				},
			},
		},
	}
}

// BuildBlocks renders articles into a Slack Block Kit message.
func BuildBlocks(articles []news.Article, generatedAt time.Time) map[string]interface{} {
	blocks := []map[string]interface{}{
		{
			"type": "header",
			"text": map[string]interface{}{
				"type": "plain_text",
				"text": digestTitle,
			},
		},
	}

	for _, a := range articles {
		blocks = append(blocks, map[string]interface{}{
			"type": "section",
			"text": map[string]interface{}{
				"type": "mrkdwn",
				"text": fmt.Sprintf("*<%s|%s>*\n%s _(%s)_", a.Source.URL, a.Headline, a.Takeaway, a.Source.Name),
			},
		})
	}

	blocks = append(blocks, map[string]interface{}{
		"type": "context",
		"elements": []map[string]interface{}{
			{
				"type": "mrkdwn",
				"text": "Generated " + generatedAt.Format("Mon, 2 Jan 2006 15:04 MST"),
			},
		},
	})

	return map[string]interface{}{"blocks": blocks}
}

// Post sends one payload to a webhook URL. Single attempt with a timeout;
// the caller logs failures and moves on, delivery is fire-and-forget.
func Post(ctx context.Context, webhookURL string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("error make JSON: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, postTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("error build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: postTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("error HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("webhook error: status %d", resp.StatusCode)
	}
	return nil
}
