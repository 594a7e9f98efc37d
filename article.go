package newsharvest

import "time"

// Display limits for extracted fields. Longer values are cut and marked
// with an ellipsis.
const (
	MaxTitleLength   = 100
	MaxSummaryLength = 200
)

// TimestampLayout is the format used for Article.PublishedDate.
const TimestampLayout = "2006-01-02 15:04:05"

// Article is a single extracted article record. Title and URL are always
// non-empty and URL is always absolute; candidates missing either are
// discarded during extraction rather than emitted with placeholders.
//
// PublishedDate is the extraction wall-clock time, not a true publish
// time: the pages this engine targets rarely expose a reliably parseable
// date, so no attempt is made to recover one from page content. This is a
// known limitation.
type Article struct {
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	Summary       string  `json:"summary"`
	PublishedDate string  `json:"published_date"`
	Source        string  `json:"source"`
	Author        *string `json:"author"`
}

// truncate cuts s to at most max runes, appending an ellipsis marker when
// anything was cut.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// extractionTimestamp formats t in the fixed PublishedDate layout.
func extractionTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}
