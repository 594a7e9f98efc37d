package sites

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCategories verifies the built-in category names come back sorted.
func TestCategories(t *testing.T) {
	assert.Equal(t, []string{"linux", "robotics", "security", "tech"}, Categories())
}

// TestCatalog verifies built-in catalog lookup and kind defaulting.
func TestCatalog(t *testing.T) {
	siteList, err := Catalog("tech")
	require.NoError(t, err)
	require.NotEmpty(t, siteList)

	for _, site := range siteList {
		assert.NotEmpty(t, site.URL)
		assert.Equal(t, KindHTML, site.Kind, "built-in sites default to html")
	}
}

// TestCatalog_UnknownCategory verifies the error for a missing category.
func TestCatalog_UnknownCategory(t *testing.T) {
	siteList, err := Catalog("gardening")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown category")
	assert.Nil(t, siteList)
}

// TestLoadFile verifies YAML catalog loading with kind defaulting.
func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sites.yaml")
	content := `tech:
  - url: https://custom.example/news
  - url: https://feeds.example/rss.xml
    kind: rss
gardening:
  - url: https://plants.example
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, loaded, 2)

	tech := loaded["tech"]
	require.Len(t, tech, 2)
	assert.Equal(t, "https://custom.example/news", tech[0].URL)
	assert.Equal(t, KindHTML, tech[0].Kind)
	assert.Equal(t, KindRSS, tech[1].Kind)

	assert.Len(t, loaded["gardening"], 1)
}

// TestLoadFile_MissingFile verifies the error for a nonexistent path.
func TestLoadFile_MissingFile(t *testing.T) {
	loaded, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Nil(t, loaded)
}

// TestLoadFile_InvalidYAML verifies the parse error path.
func TestLoadFile_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tech: [unclosed"), 0644))

	loaded, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse sites file")
	assert.Nil(t, loaded)
}
