// Package gemini wraps the Gemini API for one-sentence article takeaways.
package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	modelName       = "gemini-1.5-flash"
	maxOutputTokens = 60
	temperature     = 0.4
	requestTimeout  = 20 * time.Second
)

const promptTemplate = `You are an aviation industry analyst. In one sentence of at most 20 words, state why this story matters to the industry. Do not begin the sentence with "This" or "The".

Headline: %s
Summary: %s`

type Client struct {
	client *genai.Client
}

func NewClient(apiKey string) (*Client, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{client: client}, nil
}

func (c *Client) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

// Summarize issues one generation request for the given article. Any
// transport error, timeout or unusable response surfaces as an error; the
// caller degrades to a rule-based takeaway and never propagates it further.
func (c *Client) Summarize(ctx context.Context, headline, blurb string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	model := c.client.GenerativeModel(modelName)
	model.SetMaxOutputTokens(maxOutputTokens)
	model.SetTemperature(temperature)

	resp, err := model.GenerateContent(ctx, genai.Text(fmt.Sprintf(promptTemplate, headline, blurb)))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := extractText(resp)
	if text == "" {
		return "", fmt.Errorf("no usable text in Gemini response")
	}
	return text, nil
}

// extractText walks the possible response shapes in order and returns the
// first non-empty text part. Any shape mismatch means "no text".
func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	for _, cand := range resp.Candidates {
		if cand == nil || cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			t, ok := part.(genai.Text)
			if !ok {
				continue
			}
			if s := strings.TrimSpace(string(t)); s != "" {
				return s
			}
		}
	}
	return ""
}
