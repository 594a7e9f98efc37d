package newsharvest

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultMaxArticles is the per-page record cap used when a session is
// created without one.
const DefaultMaxArticles = 10

// Fetcher retrieves the raw HTML document for a URL. Network behavior
// (timeouts, headers, pacing between requests) belongs entirely to the
// implementation; the extraction engine performs no I/O of its own.
type Fetcher interface {
	Fetch(url string) ([]byte, error)
}

// Session extracts articles from single pages. It carries no state
// across pages beyond its injected fetcher and configuration, so one
// session may be shared by concurrent page harvests.
type Session struct {
	fetcher     Fetcher
	maxArticles int
}

// NewSession creates an extraction session. A maxArticles of zero or
// less falls back to DefaultMaxArticles.
func NewSession(fetcher Fetcher, maxArticles int) *Session {
	if maxArticles <= 0 {
		maxArticles = DefaultMaxArticles
	}
	return &Session{
		fetcher:     fetcher,
		maxArticles: maxArticles,
	}
}

// HarvestPage fetches one page and runs the extraction cascade over it.
// Fetch and parse failures are returned as errors; a page that simply
// yields no articles returns an empty slice and no error.
func (s *Session) HarvestPage(pageURL string) ([]Article, error) {
	body, err := s.fetcher.Fetch(pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	source := SourceName(pageURL)
	articles := ExtractPage(doc, pageURL, source, s.maxArticles)

	// Tier accumulation can slightly overshoot the cap, so enforce it at
	// the session boundary.
	if len(articles) > s.maxArticles {
		articles = articles[:s.maxArticles]
	}

	return articles, nil
}

// SourceName derives the source label for a page URL: its hostname with
// a leading "www." stripped.
func SourceName(pageURL string) string {
	u, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
