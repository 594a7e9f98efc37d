// Package store records harvest runs and their articles in SQLite, so
// past results can be re-read and served without re-scraping.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	newsharvest "github.com/pevans/newsharvest"
)

// ErrRunNotFound is returned when a run ID does not exist in the store.
var ErrRunNotFound = errors.New("run not found")

// HarvestStore persists harvest runs using SQLite.
type HarvestStore struct {
	db *sql.DB
}

// Run describes one recorded harvest run.
type Run struct {
	RunID        uuid.UUID `json:"run_id"`
	Category     string    `json:"category"`
	StartedAt    time.Time `json:"started_at"`
	ArticleCount int       `json:"article_count"`
}

// NewHarvestStore opens (or creates) the store at the given database
// path.
func NewHarvestStore(dbPath string) (*HarvestStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &HarvestStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the database tables if they don't exist.
func (s *HarvestStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		category TEXT NOT NULL,
		started_at TEXT NOT NULL,
		article_count INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS articles (
		run_id TEXT NOT NULL,
		title TEXT NOT NULL,
		url TEXT NOT NULL,
		summary TEXT NOT NULL,
		published_date TEXT NOT NULL,
		source TEXT NOT NULL,
		author TEXT,
		FOREIGN KEY (run_id) REFERENCES runs (run_id)
	);

	CREATE INDEX IF NOT EXISTS idx_articles_run ON articles (run_id);
	CREATE INDEX IF NOT EXISTS idx_articles_source ON articles (source);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *HarvestStore) Close() error {
	return s.db.Close()
}

// SaveRun records a harvest run and all of its articles in one
// transaction. The result map's insertion order is not significant;
// articles are stored with their source field intact.
func (s *HarvestStore) SaveRun(category string, results map[string][]newsharvest.Article) (*Run, error) {
	run := &Run{
		RunID:     uuid.New(),
		Category:  category,
		StartedAt: time.Now(),
	}
	for _, articles := range results {
		run.ArticleCount += len(articles)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO runs (run_id, category, started_at, article_count) VALUES (?, ?, ?, ?)",
		run.RunID.String(), run.Category, run.StartedAt.Format(time.RFC3339), run.ArticleCount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert run: %w", err)
	}

	insert, err := tx.Prepare(`
		INSERT INTO articles (run_id, title, url, summary, published_date, source, author)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare article insert: %w", err)
	}
	defer insert.Close()

	for _, articles := range results {
		for _, article := range articles {
			var author any
			if article.Author != nil {
				author = *article.Author
			}
			_, err := insert.Exec(
				run.RunID.String(),
				article.Title,
				article.URL,
				article.Summary,
				article.PublishedDate,
				article.Source,
				author,
			)
			if err != nil {
				return nil, fmt.Errorf("failed to insert article: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit run: %w", err)
	}

	return run, nil
}

// ListRuns lists all recorded runs, most recent first.
func (s *HarvestStore) ListRuns() ([]Run, error) {
	rows, err := s.db.Query(`
		SELECT run_id, category, started_at, article_count
		FROM runs
		ORDER BY started_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}

	return runs, rows.Err()
}

// LatestRun returns the most recent run, or ErrRunNotFound when the
// store is empty.
func (s *HarvestStore) LatestRun() (*Run, error) {
	row := s.db.QueryRow(`
		SELECT run_id, category, started_at, article_count
		FROM runs
		ORDER BY started_at DESC
		LIMIT 1
	`)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// GetRun retrieves a run by ID.
func (s *HarvestStore) GetRun(runID uuid.UUID) (*Run, error) {
	row := s.db.QueryRow(`
		SELECT run_id, category, started_at, article_count
		FROM runs
		WHERE run_id = ?
	`, runID.String())

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// RunArticles returns a run's articles grouped by source, in insertion
// order within each source.
func (s *HarvestStore) RunArticles(runID uuid.UUID) (map[string][]newsharvest.Article, error) {
	if _, err := s.GetRun(runID); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(`
		SELECT title, url, summary, published_date, source, author
		FROM articles
		WHERE run_id = ?
		ORDER BY rowid
	`, runID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}
	defer rows.Close()

	results := make(map[string][]newsharvest.Article)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		results[article.Source] = append(results[article.Source], *article)
	}

	return results, rows.Err()
}

// ListArticles returns a flat page of a run's articles, optionally
// filtered by source.
func (s *HarvestStore) ListArticles(runID uuid.UUID, source string, limit, offset int) ([]newsharvest.Article, error) {
	if _, err := s.GetRun(runID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT title, url, summary, published_date, source, author
		FROM articles
		WHERE run_id = ?
	`
	args := []any{runID.String()}
	if source != "" {
		query += " AND source = ?"
		args = append(args, source)
	}
	query += " ORDER BY rowid LIMIT ? OFFSET ?"
	args = append(args, limit, offset)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}
	defer rows.Close()

	articles := []newsharvest.Article{}
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, *article)
	}

	return articles, rows.Err()
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRun reads one run row.
func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var runIDStr, startedAtStr string

	if err := row.Scan(&runIDStr, &run.Category, &startedAtStr, &run.ArticleCount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}

	runID, err := uuid.Parse(runIDStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse run ID: %w", err)
	}
	run.RunID = runID

	startedAt, err := time.Parse(time.RFC3339, startedAtStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse run timestamp: %w", err)
	}
	run.StartedAt = startedAt

	return &run, nil
}

// scanArticle reads one article row.
func scanArticle(row rowScanner) (*newsharvest.Article, error) {
	var article newsharvest.Article
	var author sql.NullString

	err := row.Scan(
		&article.Title,
		&article.URL,
		&article.Summary,
		&article.PublishedDate,
		&article.Source,
		&author,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan article: %w", err)
	}

	if author.Valid {
		article.Author = &author.String
	}

	return &article, nil
}
