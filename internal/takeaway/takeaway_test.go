package takeaway

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/avianews/avianews/internal/news"
	"github.com/avianews/avianews/internal/quota"
)

type stubSummarizer struct {
	text  string
	err   error
	calls int
}

func (s *stubSummarizer) Summarize(_ context.Context, _, _ string) (string, error) {
	s.calls++
	return s.text, s.err
}

func testLimiter(t *testing.T, cap int) *quota.Limiter {
	t.Helper()
	return quota.NewLimiter(filepath.Join(t.TempDir(), "usage.json"), cap)
}

func TestFallback_SafetyCategory(t *testing.T) {
	a := news.Article{Category: "safety", Headline: "Runway excursion at hub airport"}
	if got := Fallback(a); got != fallbackRules[0].takeaway {
		t.Errorf("Fallback = %q, want the safety sentence", got)
	}
}

func TestFallback_GenericWhenNothingMatches(t *testing.T) {
	a := news.Article{Category: "misc", Headline: "Quarterly results published", Blurb: "Revenue held steady."}
	if got := Fallback(a); got != genericTakeaway {
		t.Errorf("Fallback = %q, want generic sentence", got)
	}
}

func TestFallback_FirstMatchWins(t *testing.T) {
	// Matches both the safety rule and the Boeing rule; safety comes first.
	a := news.Article{Category: "safety", Headline: "Boeing jet in landing incident"}
	if got := Fallback(a); got != fallbackRules[0].takeaway {
		t.Errorf("Fallback = %q, want safety sentence to win over Boeing", got)
	}
}

func TestFallback_KeywordRules(t *testing.T) {
	cases := []struct {
		article news.Article
		want    string
	}{
		{news.Article{Headline: "FAA updates certification guidance"}, fallbackRules[1].takeaway},
		{news.Article{Headline: "Air taxi startup flies crewed demo"}, fallbackRules[2].takeaway},
		{news.Article{Headline: "Drone delivery trial expands"}, fallbackRules[3].takeaway},
		{news.Article{Headline: "Hydrogen demonstrator completes tour"}, fallbackRules[4].takeaway},
		{news.Article{Headline: "Airbus raises output target"}, fallbackRules[6].takeaway},
		{news.Article{Category: "military", Headline: "Order placed"}, fallbackRules[8].takeaway},
		{news.Article{Category: "business-aviation", Headline: "Deliveries up"}, fallbackRules[10].takeaway},
	}
	for _, c := range cases {
		if got := Fallback(c.article); got != c.want {
			t.Errorf("Fallback(%q/%q) = %q, want %q", c.article.Category, c.article.Headline, got, c.want)
		}
	}
}

func TestApply_NoSummarizerUsesFallback(t *testing.T) {
	articles := []news.Article{{Category: "safety", Headline: "Incident report"}}
	g := NewGenerator(nil, testLimiter(t, 5))

	g.Apply(context.Background(), articles)
	if articles[0].Takeaway != fallbackRules[0].takeaway {
		t.Errorf("takeaway = %q, want safety fallback", articles[0].Takeaway)
	}
}

func TestApply_SuccessRecordsExactlyOnce(t *testing.T) {
	limiter := testLimiter(t, 5)
	stub := &stubSummarizer{text: "Deliveries signal supply chain recovery ahead of schedule."}
	articles := []news.Article{{Headline: "Deliveries up"}}

	NewGenerator(stub, limiter).Apply(context.Background(), articles)

	if stub.calls != 1 {
		t.Errorf("summarizer calls = %d, want 1", stub.calls)
	}
	if got := limiter.Remaining(); got != 4 {
		t.Errorf("remaining = %d, want 4 (exactly one unit recorded)", got)
	}
	if articles[0].Takeaway != stub.text {
		t.Errorf("takeaway = %q, want summarizer text", articles[0].Takeaway)
	}
}

func TestApply_FailureStillRecordsExactlyOnce(t *testing.T) {
	limiter := testLimiter(t, 5)
	stub := &stubSummarizer{err: errors.New("boom")}
	articles := []news.Article{{Category: "safety", Headline: "Incident report"}}

	NewGenerator(stub, limiter).Apply(context.Background(), articles)

	if got := limiter.Remaining(); got != 4 {
		t.Errorf("remaining = %d, want 4 (failed attempt still costs one unit)", got)
	}
	if articles[0].Takeaway != fallbackRules[0].takeaway {
		t.Errorf("takeaway = %q, want fallback after failure", articles[0].Takeaway)
	}
}

func TestApply_EmptyResponseFallsBack(t *testing.T) {
	limiter := testLimiter(t, 5)
	stub := &stubSummarizer{text: ""}
	articles := []news.Article{{Category: "misc", Headline: "Quarterly results published"}}

	NewGenerator(stub, limiter).Apply(context.Background(), articles)

	if articles[0].Takeaway != genericTakeaway {
		t.Errorf("takeaway = %q, want generic fallback for empty response", articles[0].Takeaway)
	}
	if got := limiter.Remaining(); got != 4 {
		t.Errorf("remaining = %d, want 4", got)
	}
}

func TestApply_QuotaExhaustedSkipsAPI(t *testing.T) {
	limiter := testLimiter(t, 0)
	stub := &stubSummarizer{text: "should never be used"}
	articles := []news.Article{
		{Category: "safety", Headline: "First"},
		{Category: "misc", Headline: "Second"},
	}

	NewGenerator(stub, limiter).Apply(context.Background(), articles)

	if stub.calls != 0 {
		t.Errorf("summarizer calls = %d, want 0 when quota is exhausted", stub.calls)
	}
	for i, a := range articles {
		if a.Takeaway == "" || a.Takeaway == stub.text {
			t.Errorf("article %d takeaway = %q, want a fallback sentence", i, a.Takeaway)
		}
	}
}

func TestApply_PresetTakeawayNeverOverwritten(t *testing.T) {
	limiter := testLimiter(t, 5)
	stub := &stubSummarizer{text: "fresh takeaway"}
	articles := []news.Article{{Headline: "Curated", Takeaway: "Hand-written insight."}}

	NewGenerator(stub, limiter).Apply(context.Background(), articles)

	if stub.calls != 0 {
		t.Errorf("summarizer calls = %d, want 0 for preset takeaway", stub.calls)
	}
	if articles[0].Takeaway != "Hand-written insight." {
		t.Errorf("preset takeaway was overwritten: %q", articles[0].Takeaway)
	}
}
