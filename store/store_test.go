package store

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	newsharvest "github.com/pevans/newsharvest"
)

// Test helper: open a store in a temporary directory
func newTestStore(t *testing.T) *HarvestStore {
	t.Helper()
	store, err := NewHarvestStore(filepath.Join(t.TempDir(), "harvest.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

// Test helper: a small result map for recording
func testResults() map[string][]newsharvest.Article {
	author := "Jane Reporter"
	return map[string][]newsharvest.Article{
		"alpha.example": {
			{
				Title:         "Alpha One",
				URL:           "https://alpha.example/1",
				Summary:       "First alpha summary.",
				PublishedDate: "2025-05-01 10:00:00",
				Source:        "alpha.example",
				Author:        &author,
			},
			{
				Title:         "Alpha Two",
				URL:           "https://alpha.example/2",
				PublishedDate: "2025-05-01 10:00:01",
				Source:        "alpha.example",
			},
		},
		"beta.example": {
			{
				Title:         "Beta One",
				URL:           "https://beta.example/1",
				Summary:       "Beta summary.",
				PublishedDate: "2025-05-01 10:00:02",
				Source:        "beta.example",
			},
		},
	}
}

// TestSaveRun verifies run recording and article counting.
func TestSaveRun(t *testing.T) {
	store := newTestStore(t)

	run, err := store.SaveRun("tech", testResults())
	require.NoError(t, err)
	require.NotNil(t, run)

	assert.NotEqual(t, uuid.Nil, run.RunID)
	assert.Equal(t, "tech", run.Category)
	assert.Equal(t, 3, run.ArticleCount)
	assert.False(t, run.StartedAt.IsZero())
}

// TestGetRun verifies run retrieval by ID and the not-found error.
func TestGetRun(t *testing.T) {
	store := newTestStore(t)

	saved, err := store.SaveRun("security", testResults())
	require.NoError(t, err)

	got, err := store.GetRun(saved.RunID)
	require.NoError(t, err)
	assert.Equal(t, saved.RunID, got.RunID)
	assert.Equal(t, "security", got.Category)
	assert.Equal(t, 3, got.ArticleCount)

	_, err = store.GetRun(uuid.New())
	assert.ErrorIs(t, err, ErrRunNotFound)
}

// TestListRuns verifies listing in most-recent-first order.
func TestListRuns(t *testing.T) {
	store := newTestStore(t)

	runs, err := store.ListRuns()
	require.NoError(t, err)
	assert.Empty(t, runs)

	_, err = store.SaveRun("tech", testResults())
	require.NoError(t, err)
	_, err = store.SaveRun("linux", nil)
	require.NoError(t, err)

	runs, err = store.ListRuns()
	require.NoError(t, err)
	require.Len(t, runs, 2)
}

// TestLatestRun verifies the most-recent lookup and the empty-store
// error.
func TestLatestRun(t *testing.T) {
	store := newTestStore(t)

	_, err := store.LatestRun()
	assert.ErrorIs(t, err, ErrRunNotFound)

	saved, err := store.SaveRun("robotics", testResults())
	require.NoError(t, err)

	latest, err := store.LatestRun()
	require.NoError(t, err)
	assert.Equal(t, saved.RunID, latest.RunID)
}

// TestRunArticles verifies round-tripping articles grouped by source.
func TestRunArticles(t *testing.T) {
	store := newTestStore(t)

	saved, err := store.SaveRun("tech", testResults())
	require.NoError(t, err)

	results, err := store.RunArticles(saved.RunID)
	require.NoError(t, err)
	require.Len(t, results, 2)

	alpha := results["alpha.example"]
	require.Len(t, alpha, 2)
	assert.Equal(t, "Alpha One", alpha[0].Title)
	assert.Equal(t, "https://alpha.example/1", alpha[0].URL)
	assert.Equal(t, "First alpha summary.", alpha[0].Summary)
	require.NotNil(t, alpha[0].Author)
	assert.Equal(t, "Jane Reporter", *alpha[0].Author)
	assert.Nil(t, alpha[1].Author, "missing author round-trips as nil")

	require.Len(t, results["beta.example"], 1)

	_, err = store.RunArticles(uuid.New())
	assert.ErrorIs(t, err, ErrRunNotFound)
}

// TestListArticles verifies flat paging and source filtering.
func TestListArticles(t *testing.T) {
	store := newTestStore(t)

	saved, err := store.SaveRun("tech", testResults())
	require.NoError(t, err)

	all, err := store.ListArticles(saved.RunID, "", 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	alpha, err := store.ListArticles(saved.RunID, "alpha.example", 0, 0)
	require.NoError(t, err)
	require.Len(t, alpha, 2)
	for _, article := range alpha {
		assert.Equal(t, "alpha.example", article.Source)
	}

	paged, err := store.ListArticles(saved.RunID, "alpha.example", 1, 1)
	require.NoError(t, err)
	require.Len(t, paged, 1)

	none, err := store.ListArticles(saved.RunID, "missing.example", 0, 0)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = store.ListArticles(uuid.New(), "", 0, 0)
	assert.ErrorIs(t, err, ErrRunNotFound)
}

// TestSaveRun_EmptyResults verifies that a run with no articles is still
// recorded.
func TestSaveRun_EmptyResults(t *testing.T) {
	store := newTestStore(t)

	run, err := store.SaveRun("tech", map[string][]newsharvest.Article{})
	require.NoError(t, err)
	assert.Equal(t, 0, run.ArticleCount)

	got, err := store.GetRun(run.RunID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.ArticleCount)
}
