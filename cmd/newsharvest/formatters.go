package main

import (
	"fmt"
	"sort"

	newsharvest "github.com/pevans/newsharvest"
)

// printHarvestSummary prints a per-source breakdown of one category's
// results, with the first few titles of each source.
func printHarvestSummary(category string, results map[string][]newsharvest.Article) {
	total := 0
	sources := make([]string, 0, len(results))
	for source, articles := range results {
		total += len(articles)
		sources = append(sources, source)
	}
	sort.Strings(sources)

	fmt.Println()
	fmt.Println("==================================================")
	fmt.Printf("HARVEST RESULTS: %s\n", category)
	fmt.Println("==================================================")
	fmt.Printf("Total articles: %d\n", total)

	for _, source := range sources {
		articles := results[source]
		fmt.Printf("\n%s: %d articles\n", source, len(articles))

		shown := min(len(articles), 3)
		for i := 0; i < shown; i++ {
			article := articles[i]
			fmt.Printf("  %d. %s\n", i+1, article.Title)
			if article.Summary != "" {
				fmt.Printf("     Summary: %s\n", truncateForDisplay(article.Summary, 100))
			}
		}
	}
	fmt.Println()
}

// truncateForDisplay shortens console output lines.
func truncateForDisplay(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
