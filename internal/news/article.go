// Package news defines the uniform article record and the pipeline stages
// that produce it: normalization of parsed feeds, text cleanup and the
// merge/dedup/ordering step that combines feed articles with manual entries.
package news

import (
	"strconv"
	"strings"
	"time"
)

// Manual entry priorities. Anything else is treated as normal.
const (
	PriorityHigh   = "high"
	PriorityNormal = "normal"
)

// PlaceholderHeadline is used when a feed item carries no title at all.
const PlaceholderHeadline = "(untitled)"

// Source identifies where an article came from.
type Source struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Article is the uniform record every pipeline stage works with.
type Article struct {
	ID          string    `json:"id"`
	Headline    string    `json:"headline"`
	Blurb       string    `json:"blurb"`
	Source      Source    `json:"source"`
	Category    string    `json:"category"`
	Keywords    []string  `json:"keywords"`
	PublishedAt time.Time `json:"publishedAt"`
	Takeaway    string    `json:"takeaway,omitempty"`
	Priority    string    `json:"priority,omitempty"`
}

// MakeID derives a stable id from headline and link. Two feeds publishing
// the same title+URL get the same id, which is what makes cross-feed dedup
// work. 32-bit additive rolling hash rendered as unsigned base-36; collisions
// are tolerated.
func MakeID(headline, link string) string {
	var h int32
	for _, r := range headline + "-" + link {
		h = h<<5 - h + int32(r)
	}
	return strconv.FormatUint(uint64(uint32(h)), 36)
}

// keywordVocabulary is the fixed list matched against headline+blurb.
// Extraction preserves this order, so keep related terms grouped.
var keywordVocabulary = []string{
	"boeing", "airbus", "embraer", "bombardier",
	"faa", "easa", "ntsb", "icao",
	"evtol", "air taxi", "drone", "uas",
	"electric", "hybrid", "hydrogen", "sustainable",
	"airline", "airport", "pilot", "cargo",
	"safety", "crash", "incident", "accident",
	"nasa", "spacex", "space", "satellite",
	"military", "defense", "fighter",
	"helicopter", "business jet",
}

// ExtractKeywords returns the vocabulary terms found in headline+blurb,
// case-insensitive substring match, in vocabulary order, no duplicates.
func ExtractKeywords(headline, blurb string) []string {
	text := strings.ToLower(headline + " " + blurb)
	var found []string
	for _, kw := range keywordVocabulary {
		if strings.Contains(text, kw) {
			found = append(found, kw)
		}
	}
	return found
}
