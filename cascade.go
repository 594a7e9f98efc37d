package newsharvest

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// minSelectorMatches is how many elements a selector must match before it
// is worth extracting from: fewer matches usually means the selector hit
// page furniture rather than a listing.
const minSelectorMatches = 3

// headlineAcceptTarget is how many accepted records make the headline
// tier sufficient, ending the selector scan early.
const headlineAcceptTarget = 3

// minLinkTextLength is the shortest visible link text the generic sweep
// will consider.
const minLinkTextLength = 10

// containerSelectors are tried in order by the container tier. Each is
// expected to match elements that wrap one article listing apiece.
var containerSelectors = []string{
	"article",
	".post", ".entry", ".story",
	`[class*="article"]`, `[class*="post"]`, `[class*="story"]`,
	".content-item", ".feed-item", ".news-item",
}

// headlineSelectors are tried in order by the headline tier: heading
// links, class-hinted links, and year-qualified hrefs.
var headlineSelectors = []string{
	"h1 a[href]", "h2 a[href]", "h3 a[href]",
	".headline a", ".title a", ".entry-title a",
	`[class*="headline"] a`, `[class*="title"] a`,
	`a[href*="/2024/"]`, `a[href*="/2025/"]`,
}

// navigationWords mark link text that belongs to site chrome rather than
// articles. Matched case-insensitively as substrings.
var navigationWords = []string{
	"home", "about", "contact", "subscribe", "login", "menu",
}

// selectorTier describes one selector-driven extraction strategy: which
// selectors to try, how many matches a selector needs before extraction
// is attempted, how to turn a matched element into a record, which
// records to accept, and when the accumulated records are sufficient.
type selectorTier struct {
	selectors  []string
	minMatches int
	extract    func(fe *FieldExtractor, sel *goquery.Selection) *Article
	accept     func(a *Article) bool
	sufficient func(accepted int) bool
}

// containerTier scans article container elements. The first selector that
// yields any record at all ends the tier.
var containerTier = selectorTier{
	selectors:  containerSelectors,
	minMatches: minSelectorMatches,
	extract: func(fe *FieldExtractor, sel *goquery.Selection) *Article {
		return fe.FromContainer(sel)
	},
	sufficient: func(accepted int) bool { return accepted > 0 },
}

// headlineTier scans headline links directly. Records must additionally
// pass URL validation, and the tier keeps trying selectors until enough
// records have accumulated.
var headlineTier = selectorTier{
	selectors:  headlineSelectors,
	minMatches: minSelectorMatches,
	extract: func(fe *FieldExtractor, sel *goquery.Selection) *Article {
		return fe.FromLink(sel)
	},
	accept:     func(a *Article) bool { return IsValidArticleURL(a.URL) },
	sufficient: func(accepted int) bool { return accepted >= headlineAcceptTarget },
}

// ExtractPage runs the extraction cascade over a parsed page: container
// scan first, headline-link scan if that produced nothing, generic link
// sweep as the last resort. Zero records is a valid outcome, never an
// error; the caller simply gets an empty slice.
//
// Running the cascade twice over the same document yields the same
// records; there is no state shared across calls beyond the document
// itself.
func ExtractPage(doc *goquery.Document, pageURL, source string, maxArticles int) []Article {
	fe := NewFieldExtractor(pageURL, source)

	articles := runSelectorTier(doc, fe, containerTier, maxArticles)
	if len(articles) == 0 {
		articles = runSelectorTier(doc, fe, headlineTier, maxArticles)
	}
	if len(articles) == 0 {
		articles = sweepGenericLinks(doc, fe, maxArticles)
	}

	return articles
}

// runSelectorTier executes one selector-driven tier. Selectors are tried
// in order; a selector matching fewer than minMatches elements is
// skipped, otherwise up to maxArticles of its matches are extracted.
// Accepted records accumulate across selectors until the tier's
// sufficiency condition holds.
func runSelectorTier(doc *goquery.Document, fe *FieldExtractor, tier selectorTier, maxArticles int) []Article {
	var articles []Article

	for _, selector := range tier.selectors {
		matches := doc.Find(selector)
		if matches.Length() < tier.minMatches {
			continue
		}

		matches.EachWithBreak(func(i int, sel *goquery.Selection) bool {
			if i >= maxArticles {
				return false
			}
			article := tier.extract(fe, sel)
			if article == nil {
				return true
			}
			if tier.accept != nil && !tier.accept(article) {
				return true
			}
			articles = append(articles, *article)
			return true
		})

		if tier.sufficient(len(articles)) {
			break
		}
	}

	return articles
}

// sweepGenericLinks scans every hyperlink on the page in document order,
// keeping links with substantive non-navigation text whose URL both looks
// like an article and passes validity filtering. Records built this way
// have no summary.
func sweepGenericLinks(doc *goquery.Document, fe *FieldExtractor, maxArticles int) []Article {
	var articles []Article

	doc.Find("a[href]").EachWithBreak(func(_ int, link *goquery.Selection) bool {
		if len(articles) >= maxArticles {
			return false
		}

		text := strings.TrimSpace(link.Text())
		if utf8.RuneCountInString(text) < minLinkTextLength {
			return true
		}
		if containsNavigationWord(text) {
			return true
		}

		href, _ := link.Attr("href")
		if !LooksLikeArticle(href) || !IsValidArticleURL(href) {
			return true
		}

		articles = append(articles, *fe.newArticle(text, href))
		return true
	})

	return articles
}

// containsNavigationWord reports whether the text contains any blocked
// navigation word, case-insensitively.
func containsNavigationWord(text string) bool {
	lower := strings.ToLower(text)
	for _, word := range navigationWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}
