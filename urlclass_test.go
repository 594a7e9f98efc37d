package newsharvest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestLooksLikeArticle verifies article-shaped URL detection across the
// pattern list.
func TestLooksLikeArticle(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"dated path", "https://example.com/2025/05/01/foo.html", true},
		{"article segment", "https://example.com/article/123", true},
		{"post segment", "https://example.com/post/something", true},
		{"story segment", "https://example.com/story/big-story", true},
		{"news segment", "https://example.com/news/today", true},
		{"blog segment", "https://example.com/blog/entry", true},
		{"html page", "https://example.com/some-page.html", true},
		{"numeric slug suffix", "https://example.com/headline-12345", true},
		{"uppercase segment", "https://example.com/ARTICLE/123", true},
		{"relative article path", "/article/123", true},
		{"relative about path", "/about", false},
		{"plain about page", "https://example.com/about", false},
		{"bare root", "https://example.com/", false},
		{"empty url", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LooksLikeArticle(tt.url))
		})
	}
}

// TestIsValidArticleURL verifies that navigation, media and utility URLs
// are rejected.
func TestIsValidArticleURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"clean article url", "https://example.com/2025/05/01/foo.html", true},
		{"fragment", "https://example.com/page#section", false},
		{"javascript scheme", "javascript:void(0)", false},
		{"mailto scheme", "mailto:editor@example.com", false},
		{"tag page", "https://example.com/tag/ai", false},
		{"relative tag path", "/tag/ai", false},
		{"relative dated path", "/2025/05/01/foo.html", true},
		{"category page", "https://example.com/category/tech", false},
		{"author page", "https://example.com/author/jane", false},
		{"search page", "https://example.com/search?q=go", false},
		{"login page", "https://example.com/login", false},
		{"register page", "https://example.com/register", false},
		{"pdf file", "https://example.com/report.pdf", false},
		{"jpeg file", "https://example.com/photo.jpg", false},
		{"png file", "https://example.com/chart.png", false},
		{"gif file", "https://example.com/anim.gif", false},
		{"pdf mid-path", "https://example.com/report.pdf/view", true},
		{"empty url", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidArticleURL(tt.url))
		})
	}
}
