// Package takeaway attaches a one-sentence editorial insight to each
// article, using the summarization API when a credential and daily quota
// allow and a fixed rule cascade otherwise.
package takeaway

import (
	"context"
	"log"
	"strings"

	"github.com/avianews/avianews/internal/metrics"
	"github.com/avianews/avianews/internal/news"
	"github.com/avianews/avianews/internal/quota"
)

// Summarizer produces a one-sentence insight for an article.
type Summarizer interface {
	Summarize(ctx context.Context, headline, blurb string) (string, error)
}

type Generator struct {
	ai    Summarizer // nil means fallback-only mode
	quota *quota.Limiter
}

func NewGenerator(ai Summarizer, q *quota.Limiter) *Generator {
	return &Generator{ai: ai, quota: q}
}

// Apply fills in the Takeaway field of every article that does not already
// have one. External calls are issued strictly sequentially so the quota
// check-and-record pair stays race-free, and each attempted call records
// exactly one unit, success or failure.
func (g *Generator) Apply(ctx context.Context, articles []news.Article) {
	quotaNoticeLogged := false

	for i := range articles {
		a := &articles[i]
		if a.Takeaway != "" {
			continue
		}

		if g.ai == nil {
			a.Takeaway = Fallback(*a)
			metrics.Global.IncrementFallbackTakeaways()
			continue
		}

		if !g.quota.CanSpend(1) {
			if !quotaNoticeLogged {
				log.Printf("Daily summarization quota reached, remaining articles get rule-based takeaways")
				quotaNoticeLogged = true
			}
			a.Takeaway = Fallback(*a)
			metrics.Global.IncrementFallbackTakeaways()
			continue
		}

		text, err := g.ai.Summarize(ctx, a.Headline, a.Blurb)
		g.quota.Record(1)
		if err != nil || text == "" {
			if err != nil {
				log.Printf("Summarization failed for %q: %v", a.Headline, err)
			}
			a.Takeaway = Fallback(*a)
			metrics.Global.IncrementFallbackTakeaways()
			continue
		}

		a.Takeaway = text
		metrics.Global.IncrementAITakeaways()
	}
}

// fallbackRules is evaluated in order, first match wins. Several conditions
// can match the same article, so the order is load-bearing.
var fallbackRules = []struct {
	match    func(category, text string) bool
	takeaway string
}{
	{
		func(c, t string) bool {
			return c == "safety" || containsAny(t, "crash", "incident", "accident", "emergency landing")
		},
		"Safety events like this typically trigger investigations that reshape operating procedures across the industry.",
	},
	{
		func(c, t string) bool {
			return c == "regulatory" || containsAny(t, "faa", "easa", "regulation", "certification")
		},
		"Regulatory moves of this kind set the certification tempo for every program in the pipeline.",
	},
	{
		func(c, t string) bool { return c == "evtol" || containsAny(t, "evtol", "air taxi") },
		"Advanced air mobility keeps inching from demonstrators toward certified revenue service.",
	},
	{
		func(c, t string) bool { return c == "drone" || containsAny(t, "drone", "uas", "unmanned") },
		"Uncrewed systems continue absorbing missions that once required a pilot on board.",
	},
	{
		func(c, t string) bool { return containsAny(t, "electric", "hybrid", "sustainable", "hydrogen") },
		"Propulsion and fuel innovation signals where the industry expects its next efficiency gains.",
	},
	{
		func(c, t string) bool { return strings.Contains(t, "boeing") },
		"Boeing's trajectory remains a bellwether for the entire commercial aerospace supply chain.",
	},
	{
		func(c, t string) bool { return strings.Contains(t, "airbus") },
		"Airbus moves like this ripple through order books and supplier schedules worldwide.",
	},
	{
		func(c, t string) bool {
			return c == "aerospace" || containsAny(t, "nasa", "space", "rocket", "satellite")
		},
		"Aerospace programs of this scale tend to pull new technology down into civil aviation.",
	},
	{
		func(c, t string) bool { return c == "military" },
		"Defense procurement shifts shape industrial capacity that civil aviation later draws on.",
	},
	{
		func(c, t string) bool {
			return c == "commercial" || containsAny(t, "airline", "airport", "passenger")
		},
		"Network and fleet decisions like this reveal where carriers see demand heading next.",
	},
	{
		func(c, t string) bool { return c == "business-aviation" || containsAny(t, "business jet", "bizjet", "charter") },
		"Business aviation activity is an early indicator for the wider aircraft transaction market.",
	},
}

const genericTakeaway = "Worth watching as a signal of where aviation operations and technology are heading."

// Fallback evaluates the rule cascade against the article's category and
// lowercased headline+blurb.
func Fallback(a news.Article) string {
	category := strings.ToLower(a.Category)
	text := strings.ToLower(a.Headline + " " + a.Blurb)

	for _, r := range fallbackRules {
		if r.match(category, text) {
			return r.takeaway
		}
	}
	return genericTakeaway
}

func containsAny(text string, keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
