package newsharvest

import (
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

// FetchFeed fetches and parses an RSS or Atom feed from the given URL.
// The gofeed library detects and handles both formats.
func FetchFeed(url string) (*gofeed.Feed, error) {
	fp := gofeed.NewParser()
	feed, err := fp.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}
	return feed, nil
}

// FeedItemToArticle converts an RSS or Atom feed item to an Article with
// the same field rules the page extractor applies: truncated title and
// summary, fixed timestamp format. Feed items carry explicit publish
// dates in their metadata, so those are used when present instead of the
// extraction time. Returns nil when the item has no title or no link,
// the same discard rule the page extractor uses.
func FeedItemToArticle(item *gofeed.Item, source string) *Article {
	title := strings.TrimSpace(item.Title)
	if title == "" || item.Link == "" {
		return nil
	}

	summary := strings.TrimSpace(item.Description)

	published := time.Now()
	if item.PublishedParsed != nil {
		published = *item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		published = *item.UpdatedParsed
	}

	article := &Article{
		Title:         truncate(title, MaxTitleLength),
		URL:           item.Link,
		Summary:       truncate(summary, MaxSummaryLength),
		PublishedDate: extractionTimestamp(published),
		Source:        source,
	}

	if item.Author != nil && item.Author.Name != "" {
		author := item.Author.Name
		article.Author = &author
	}

	return article
}

// FeedToArticles converts up to maxArticles items of a feed.
func FeedToArticles(feed *gofeed.Feed, source string, maxArticles int) []Article {
	var articles []Article
	for _, item := range feed.Items {
		if maxArticles > 0 && len(articles) >= maxArticles {
			break
		}
		if article := FeedItemToArticle(item, source); article != nil {
			articles = append(articles, *article)
		}
	}
	return articles
}
