package newsharvest

import "regexp"

// articleURLPatterns match URLs that are shaped like article permalinks:
// dated paths, common article path segments, .html pages, and slugs
// ending in a numeric ID.
var articleURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/\d{4}/`),
	regexp.MustCompile(`(?i)/article/`),
	regexp.MustCompile(`(?i)/post/`),
	regexp.MustCompile(`(?i)/story/`),
	regexp.MustCompile(`(?i)/news/`),
	regexp.MustCompile(`(?i)/blog/`),
	regexp.MustCompile(`(?i)\.html`),
	regexp.MustCompile(`-\d+$`),
}

// skipURLPatterns match URLs that are never articles: fragment and
// non-HTTP schemes, taxonomy and utility paths, and non-document files.
var skipURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`#`),
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)mailto:`),
	regexp.MustCompile(`(?i)/tag/`),
	regexp.MustCompile(`(?i)/category/`),
	regexp.MustCompile(`(?i)/author/`),
	regexp.MustCompile(`(?i)/search`),
	regexp.MustCompile(`(?i)/login`),
	regexp.MustCompile(`(?i)/register`),
	regexp.MustCompile(`(?i)\.pdf$`),
	regexp.MustCompile(`(?i)\.jpg$`),
	regexp.MustCompile(`(?i)\.png$`),
	regexp.MustCompile(`(?i)\.gif$`),
}

// LooksLikeArticle reports whether the URL matches at least one
// article-shaped pattern. An empty URL never matches.
func LooksLikeArticle(url string) bool {
	if url == "" {
		return false
	}
	for _, pattern := range articleURLPatterns {
		if pattern.MatchString(url) {
			return true
		}
	}
	return false
}

// IsValidArticleURL reports whether the URL is free of navigation, media
// and utility markers. An empty URL is invalid.
func IsValidArticleURL(url string) bool {
	if url == "" {
		return false
	}
	for _, pattern := range skipURLPatterns {
		if pattern.MatchString(url) {
			return false
		}
	}
	return true
}
