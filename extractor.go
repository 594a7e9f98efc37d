package newsharvest

import (
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// minSummaryLength is the substantiveness threshold: summary candidates
// with shorter trimmed text are skipped so captions and labels are never
// used as summaries.
const minSummaryLength = 20

// titleSelectors locate the title/link pair inside a container, in
// priority order: heading-nested links first, class-hinted links next,
// any link as a last resort.
var titleSelectors = []string{
	"h1 a", "h2 a", "h3 a", "h4 a",
	".title a", ".headline a", ".entry-title a",
	"a[href]",
}

// summarySelectors locate excerpt-like text inside a container, in
// priority order.
var summarySelectors = []string{
	".excerpt", ".summary", ".description", ".intro",
	"p", ".content",
}

// authorSelectors locate byline-like text inside a container, in
// priority order.
var authorSelectors = []string{
	".author", ".byline", ".writer", `[class*="author"]`,
}

// FieldExtractor fills Articles from candidate DOM elements on a single
// page. The base URL, source name and extraction timestamp are fixed when
// the extractor is created, so every record from one page carries the
// same source and timestamp.
type FieldExtractor struct {
	base        *url.URL
	source      string
	publishedAt string
}

// NewFieldExtractor creates a field extractor for one page. An
// unparseable page URL leaves relative hrefs unresolved; callers that
// need the absolute-URL guarantee must validate the page URL first.
func NewFieldExtractor(pageURL, source string) *FieldExtractor {
	base, err := url.Parse(pageURL)
	if err != nil {
		base = nil
	}
	return &FieldExtractor{
		base:        base,
		source:      source,
		publishedAt: extractionTimestamp(time.Now()),
	}
}

// FromContainer extracts an Article from a container element expected to
// wrap one article listing. Returns nil when no selector yields a
// non-empty title+href pair.
func (fe *FieldExtractor) FromContainer(container *goquery.Selection) *Article {
	title, href := fe.findTitleLink(container)
	if title == "" || href == "" {
		return nil
	}

	article := fe.newArticle(title, href)
	article.Summary = truncate(fe.findSummary(container), MaxSummaryLength)

	if author := fe.findAuthor(container); author != "" {
		article.Author = &author
	}

	return article
}

// FromLink extracts an Article from a bare link element. The summary is
// recovered from up to three text-bearing elements near the link, and
// must not simply echo the link text. Returns nil when the link has no
// text or no href.
func (fe *FieldExtractor) FromLink(link *goquery.Selection) *Article {
	title := strings.TrimSpace(link.Text())
	href, _ := link.Attr("href")
	if title == "" || href == "" {
		return nil
	}

	article := fe.newArticle(title, href)
	article.Summary = truncate(fe.findNearbySummary(link, title), MaxSummaryLength)

	return article
}

// newArticle builds an Article with the shared page fields filled in and
// the title/URL rules applied.
func (fe *FieldExtractor) newArticle(title, href string) *Article {
	return &Article{
		Title:         truncate(title, MaxTitleLength),
		URL:           fe.resolve(href),
		PublishedDate: fe.publishedAt,
		Source:        fe.source,
	}
}

// resolve makes href absolute against the page's base URL.
// Already-absolute URLs pass through unchanged.
func (fe *FieldExtractor) resolve(href string) string {
	if strings.HasPrefix(href, "http") {
		return href
	}
	if fe.base == nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return fe.base.ResolveReference(ref).String()
}

// findTitleLink returns the first non-empty title+href pair found by the
// title selector list.
func (fe *FieldExtractor) findTitleLink(container *goquery.Selection) (title, href string) {
	for _, selector := range titleSelectors {
		link := container.Find(selector).First()
		if link.Length() == 0 {
			continue
		}
		title = strings.TrimSpace(link.Text())
		href, _ = link.Attr("href")
		if title != "" && href != "" {
			return title, href
		}
	}
	return "", ""
}

// findSummary returns the first summary candidate whose trimmed text
// exceeds the substantiveness threshold, or "" when none qualifies.
func (fe *FieldExtractor) findSummary(container *goquery.Selection) string {
	for _, selector := range summarySelectors {
		candidate := container.Find(selector).First()
		if candidate.Length() == 0 {
			continue
		}
		text := strings.TrimSpace(candidate.Text())
		if len([]rune(text)) > minSummaryLength {
			return text
		}
	}
	return ""
}

// findNearbySummary scans up to three text-bearing elements under the
// link's parent for substantive text that differs from the title.
func (fe *FieldExtractor) findNearbySummary(link *goquery.Selection, title string) string {
	parent := link.Parent()
	if parent.Length() == 0 {
		return ""
	}

	summary := ""
	parent.Find("p, div, span").EachWithBreak(func(i int, sel *goquery.Selection) bool {
		if i >= 3 {
			return false
		}
		text := strings.TrimSpace(sel.Text())
		if len([]rune(text)) > minSummaryLength && text != title {
			summary = text
			return false
		}
		return true
	})
	return summary
}

// findAuthor returns the first non-empty byline text, or "" when none of
// the author selectors match.
func (fe *FieldExtractor) findAuthor(container *goquery.Selection) string {
	for _, selector := range authorSelectors {
		candidate := container.Find(selector).First()
		if candidate.Length() == 0 {
			continue
		}
		if text := strings.TrimSpace(candidate.Text()); text != "" {
			return text
		}
	}
	return ""
}
