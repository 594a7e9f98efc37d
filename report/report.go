// Package report renders harvest results to JSON, CSV and styled HTML
// files under a configurable output directory.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	newsharvest "github.com/pevans/newsharvest"
)

// Writer saves reports below OutputDir, creating one subdirectory per
// format (json/, csv/, html/).
type Writer struct {
	OutputDir string
}

// NewWriter creates a report writer rooted at outputDir. An empty
// outputDir writes to the current directory.
func NewWriter(outputDir string) *Writer {
	return &Writer{OutputDir: outputDir}
}

// timestampedName builds "<prefix>_<YYYYMMDD_HHMMSS>.<ext>".
func timestampedName(prefix, ext string) string {
	return fmt.Sprintf("%s_%s.%s", prefix, time.Now().Format("20060102_150405"), ext)
}

// prepare creates the format subdirectory and returns the full file path.
func (w *Writer) prepare(format, filename string) (string, error) {
	dir := filepath.Join(w.OutputDir, format)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	return filepath.Join(dir, filename), nil
}

// sortedSources returns the result map's keys in stable order, so report
// sections never reshuffle between runs.
func sortedSources(results map[string][]newsharvest.Article) []string {
	sources := make([]string, 0, len(results))
	for source := range results {
		sources = append(sources, source)
	}
	sort.Strings(sources)
	return sources
}

// SaveJSON writes the results grouped by source as indented JSON and
// returns the file path.
func (w *Writer) SaveJSON(results map[string][]newsharvest.Article, prefix string) (string, error) {
	path, err := w.prepare("json", timestampedName(prefix, "json"))
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal articles: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write JSON report: %w", err)
	}

	return path, nil
}

// SaveCSV writes all articles as a flat CSV table and returns the file
// path.
func (w *Writer) SaveCSV(results map[string][]newsharvest.Article, prefix string) (string, error) {
	path, err := w.prepare("csv", timestampedName(prefix, "csv"))
	if err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create CSV report: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write([]string{"Title", "URL", "Summary", "Published Date", "Source", "Author"}); err != nil {
		return "", fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, source := range sortedSources(results) {
		for _, article := range results[source] {
			author := ""
			if article.Author != nil {
				author = *article.Author
			}
			record := []string{
				article.Title,
				article.URL,
				article.Summary,
				article.PublishedDate,
				article.Source,
				author,
			}
			if err := cw.Write(record); err != nil {
				return "", fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return "", fmt.Errorf("failed to flush CSV report: %w", err)
	}

	return path, nil
}
