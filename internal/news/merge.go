package news

import (
	"sort"

	"github.com/avianews/avianews/internal/metrics"
)

// DefaultMaxArticles is the cap applied when no explicit maximum is set.
const DefaultMaxArticles = 36

// Merge combines feed-derived and manual articles into the final ordered
// list:
//
//  1. high-priority manual entries, in input order
//  2. feed articles sorted by publish date descending, deduplicated by
//     article URL (first occurrence wins)
//  3. normal-priority manual entries whose URL was not already emitted by
//     the feed set (manual entries are never deduplicated against each other)
//
// The result is truncated from the tail to max, so high-priority entries are
// only ever dropped if they alone exceed the cap. No article is mutated,
// only order and membership change.
func Merge(feedArticles, manualArticles []Article, max int) []Article {
	if max <= 0 {
		max = DefaultMaxArticles
	}

	var high, normal []Article
	for _, a := range manualArticles {
		if a.Priority == PriorityHigh {
			high = append(high, a)
		} else {
			normal = append(normal, a)
		}
	}

	sorted := make([]Article, len(feedArticles))
	copy(sorted, feedArticles)
	// Stable, with a deterministic tie-break so identical timestamps don't
	// reshuffle between runs of concurrent fetches.
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].PublishedAt.Equal(sorted[j].PublishedAt) {
			return sorted[i].PublishedAt.After(sorted[j].PublishedAt)
		}
		if sorted[i].Source.Name != sorted[j].Source.Name {
			return sorted[i].Source.Name < sorted[j].Source.Name
		}
		return sorted[i].Headline < sorted[j].Headline
	})

	merged := make([]Article, 0, len(high)+len(sorted)+len(normal))
	merged = append(merged, high...)

	feedSeen := make(map[string]struct{}, len(sorted))
	for _, a := range sorted {
		if a.Source.URL != "" {
			if _, dup := feedSeen[a.Source.URL]; dup {
				metrics.Global.IncrementDuplicatesFiltered()
				continue
			}
			feedSeen[a.Source.URL] = struct{}{}
		}
		merged = append(merged, a)
	}

	for _, a := range normal {
		if a.Source.URL != "" {
			if _, dup := feedSeen[a.Source.URL]; dup {
				metrics.Global.IncrementDuplicatesFiltered()
				continue
			}
		}
		merged = append(merged, a)
	}

	if len(merged) > max {
		merged = merged[:max]
	}
	return merged
}
