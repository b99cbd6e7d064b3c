package news

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// maxBlurbLen caps blurb length including the trailing ellipsis marker.
const maxBlurbLen = 300

// sourceSuffixRe matches a trailing " – SourceName" style suffix: a spaced
// dash or pipe followed by a short capitalized token, anchored to the end of
// the string. The surrounding whitespace requirement keeps interior
// hyphenated identifiers (A321-200, 737-800) intact.
var sourceSuffixRe = regexp.MustCompile(`\s+[-–—|]\s+[A-Z][^-–—|]{0,18}$`)

// CleanText strips markup tags, decodes HTML/XML character entities (named,
// decimal and hex, exactly one pass) and collapses whitespace. Running it on
// already-clean text changes nothing.
func CleanText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		// The HTML parser is tolerant enough that this is nearly
		// unreachable; fall back to a manual strip + single decode.
		return collapseWhitespace(html.UnescapeString(stripTags(s)))
	}
	return collapseWhitespace(doc.Text())
}

// CleanBlurb cleans description text and truncates it to maxBlurbLen.
func CleanBlurb(s string) string {
	return truncate(CleanText(s), maxBlurbLen)
}

// CleanHeadline cleans title text and strips a trailing source suffix.
// Never returns an empty string.
func CleanHeadline(s string) string {
	s = CleanText(s)
	s = sourceSuffixRe.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if s == "" {
		return PlaceholderHeadline
	}
	return s
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max-3])) + "..."
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}
