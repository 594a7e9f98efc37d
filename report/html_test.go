package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSaveHTML verifies the default template render.
func TestSaveHTML(t *testing.T) {
	writer := NewWriter(t.TempDir())

	path, err := writer.SaveHTML(sampleResults(), "security_news", "security", "")
	require.NoError(t, err)
	assert.Equal(t, "html", filepath.Base(filepath.Dir(path)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(data)

	assert.Contains(t, html, "Cybersecurity News")
	assert.Contains(t, html, "security-theme")
	assert.Contains(t, html, "First Alpha Story")
	assert.Contains(t, html, "https://beta.example/post/1")
	assert.Contains(t, html, "By Jane Reporter")
	assert.Contains(t, html, "No summary available.", "articles without a summary get placeholder text")
}

// TestSaveHTML_UnknownCategory verifies the theme fallback.
func TestSaveHTML_UnknownCategory(t *testing.T) {
	writer := NewWriter(t.TempDir())

	path, err := writer.SaveHTML(sampleResults(), "misc_news", "misc", "")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "tech-theme")
}

// TestSaveHTML_ExternalTemplate verifies that a user template replaces
// the built-in one.
func TestSaveHTML_ExternalTemplate(t *testing.T) {
	tmpDir := t.TempDir()
	templatePath := filepath.Join(tmpDir, "custom.html")
	custom := `<html><body><h1>CUSTOM {{.HeaderTitle}}</h1>{{range .Sections}}<p>{{.Display}}</p>{{end}}</body></html>`
	require.NoError(t, os.WriteFile(templatePath, []byte(custom), 0o644))

	writer := NewWriter(tmpDir)
	path, err := writer.SaveHTML(sampleResults(), "tech_news", "tech", templatePath)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "CUSTOM")
	assert.NotContains(t, string(data), "article-card")
}

// TestSaveHTML_MissingTemplateFallsBack verifies that an unreadable
// template path falls back to the default template instead of failing.
func TestSaveHTML_MissingTemplateFallsBack(t *testing.T) {
	writer := NewWriter(t.TempDir())

	path, err := writer.SaveHTML(sampleResults(), "tech_news", "tech", "/nonexistent/custom.html")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Tech News")
}

// TestDisplayName verifies source headings, including combined-report
// keys with category prefixes.
func TestDisplayName(t *testing.T) {
	assert.Equal(t, "🔒 Thehackernews", displayName("thehackernews.com", "security"))
	assert.Equal(t, "🚀 Techcrunch", displayName("tech_techcrunch.com", "combined"))
	assert.Equal(t, "🐧 Lwn Net", displayName("linux_lwn.net", "combined"))
	assert.Equal(t, "📰 Example", displayName("example.com", "misc"))
}

// TestFormatDate verifies display formatting and the pass-through for
// unparseable values.
func TestFormatDate(t *testing.T) {
	assert.Equal(t, "May 1, 2025 at 10:00", formatDate("2025-05-01 10:00:00"))
	assert.Equal(t, "yesterday", formatDate("yesterday"))
}

// TestInitial verifies the icon badge letter.
func TestInitial(t *testing.T) {
	assert.Equal(t, "T", initial("techcrunch.com"))
	assert.Equal(t, "L", initial("linux_lwn.net"))
	assert.Equal(t, "?", initial(""))
}

// TestTitleCase verifies word capitalization.
func TestTitleCase(t *testing.T) {
	assert.Equal(t, "Tech", titleCase("tech"))
	assert.Equal(t, "Lwn Net", titleCase("lwn net"))
	assert.Equal(t, "", titleCase(""))
}
