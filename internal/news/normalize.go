package news

import (
	"time"

	"github.com/mmcdole/gofeed"
)

// FromFeed converts one parsed feed into uniform article records. gofeed has
// already resolved the format differences between RSS 2.0, Atom and RDF
// (including Atom link candidates and single-item feeds); this layer owns
// text cleanup, date fallback, keyword and id assignment.
//
// Items with unparseable or missing dates get the ingestion time, never an
// error: one bad item must not sink the feed.
func FromFeed(feed *gofeed.Feed, sourceName, category string) []Article {
	if feed == nil {
		return nil
	}
	now := time.Now()
	articles := make([]Article, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil {
			continue
		}
		headline := CleanHeadline(item.Title)

		desc := item.Description
		if desc == "" {
			desc = item.Content
		}
		blurb := CleanBlurb(desc)

		published := now
		if item.PublishedParsed != nil {
			published = *item.PublishedParsed
		} else if item.UpdatedParsed != nil {
			published = *item.UpdatedParsed
		}

		articles = append(articles, Article{
			ID:          MakeID(headline, item.Link),
			Headline:    headline,
			Blurb:       blurb,
			Source:      Source{Name: sourceName, URL: item.Link},
			Category:    category,
			Keywords:    ExtractKeywords(headline, blurb),
			PublishedAt: published,
		})
	}
	return articles
}
