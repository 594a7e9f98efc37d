package report

import (
	_ "embed"
	"fmt"
	"html/template"
	"log"
	"os"
	"strings"
	"time"

	newsharvest "github.com/pevans/newsharvest"
)

//go:embed template/default.html
var defaultTemplate string

// Theme controls the header text and styling class of an HTML report.
type Theme struct {
	HeaderTitle string
	Subtitle    string
	ThemeClass  string
}

// themes maps harvest categories to their report themes.
var themes = map[string]Theme{
	"tech": {
		HeaderTitle: "🚀 Tech News",
		Subtitle:    "Latest articles from top technology news sources",
		ThemeClass:  "tech-theme",
	},
	"security": {
		HeaderTitle: "🔒 Cybersecurity News",
		Subtitle:    "Latest cybersecurity articles from top security news sources",
		ThemeClass:  "security-theme",
	},
	"robotics": {
		HeaderTitle: "🤖 Robotics News",
		Subtitle:    "Latest robotics articles from top robotics and automation sources",
		ThemeClass:  "robotics-theme",
	},
	"linux": {
		HeaderTitle: "🐧 Linux News",
		Subtitle:    "Latest Linux and open source articles from top Linux news sources",
		ThemeClass:  "linux-theme",
	},
	"combined": {
		HeaderTitle: "🔄 Combined News Report",
		Subtitle:    "Latest articles from multiple news categories",
		ThemeClass:  "combined-theme",
	},
}

// pageData is the root template context for an HTML report.
type pageData struct {
	Title         string
	HeaderTitle   string
	Subtitle      string
	ThemeClass    string
	TotalArticles int
	TotalSources  int
	GeneratedAt   string
	Timestamp     string
	Sections      []section
}

// section is one source's block in the report.
type section struct {
	Display  string
	Initial  string
	Count    int
	Articles []articleView
}

// articleView is one rendered article card.
type articleView struct {
	Title   string
	URL     string
	Summary string
	Author  string
	Date    string
}

// SaveHTML renders the results as a styled HTML report and returns the
// file path. templatePath may name an external template file; when it is
// empty, missing or unreadable the built-in default template is used
// instead (with a logged warning), never an error.
func (w *Writer) SaveHTML(results map[string][]newsharvest.Article, prefix, category, templatePath string) (string, error) {
	path, err := w.prepare("html", timestampedName(prefix, "html"))
	if err != nil {
		return "", err
	}

	tmpl := loadTemplate(templatePath)

	now := time.Now()
	theme, ok := themes[category]
	if !ok {
		theme = themes["tech"]
	}

	data := pageData{
		Title:       fmt.Sprintf("%s News - %s", titleCase(category), now.Format("2006-01-02 15:04")),
		HeaderTitle: theme.HeaderTitle,
		Subtitle:    theme.Subtitle,
		ThemeClass:  theme.ThemeClass,
		GeneratedAt: now.Format("15:04"),
		Timestamp:   now.Format("Monday, January 2, 2006 at 15:04:05"),
	}

	for _, source := range sortedSources(results) {
		articles := results[source]
		data.TotalSources++
		data.TotalArticles += len(articles)
		data.Sections = append(data.Sections, buildSection(source, category, articles))
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create HTML report: %w", err)
	}
	defer f.Close()

	if err := tmpl.Execute(f, data); err != nil {
		return "", fmt.Errorf("failed to render HTML report: %w", err)
	}

	return path, nil
}

// loadTemplate parses the external template at path when possible,
// falling back to the built-in default.
func loadTemplate(path string) *template.Template {
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("WARN: Template file %s not readable, using default template: %v", path, err)
		} else {
			tmpl, err := template.New("report").Parse(string(data))
			if err != nil {
				log.Printf("WARN: Failed to parse template %s, using default template: %v", path, err)
			} else {
				return tmpl
			}
		}
	}
	return template.Must(template.New("report").Parse(defaultTemplate))
}

// buildSection renders one source's articles into a template section.
func buildSection(source, category string, articles []newsharvest.Article) section {
	display := displayName(source, category)
	sec := section{
		Display: display,
		Initial: initial(source),
		Count:   len(articles),
	}

	for _, article := range articles {
		summary := strings.TrimSpace(strings.ReplaceAll(article.Summary, "\n", " "))
		if summary == "" {
			summary = "No summary available."
		}
		author := "Unknown Author"
		if article.Author != nil {
			author = "By " + *article.Author
		}
		sec.Articles = append(sec.Articles, articleView{
			Title:   article.Title,
			URL:     article.URL,
			Summary: summary,
			Author:  author,
			Date:    formatDate(article.PublishedDate),
		})
	}

	return sec
}

// categoryEmojis decorate source headings, keyed by the category prefix
// combined reports use.
var categoryEmojis = map[string]string{
	"tech":     "🚀",
	"security": "🔒",
	"robotics": "🤖",
	"linux":    "🐧",
}

// displayName turns a source key like "techcrunch.com" (or a combined
// key like "tech_techcrunch.com") into a heading.
func displayName(source, category string) string {
	emoji, ok := categoryEmojis[category]
	if !ok {
		emoji = "📰"
	}
	if prefix, rest, found := strings.Cut(source, "_"); found {
		if e, ok := categoryEmojis[prefix]; ok {
			emoji = e
			source = rest
		}
	}
	name := strings.TrimSuffix(source, ".com")
	name = strings.ReplaceAll(name, ".", " ")
	return emoji + " " + titleCase(name)
}

// titleCase uppercases the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

// initial returns the source's first letter, uppercased, for the site
// icon badge.
func initial(source string) string {
	if _, rest, found := strings.Cut(source, "_"); found && rest != "" {
		source = rest
	}
	if source == "" {
		return "?"
	}
	return strings.ToUpper(source[:1])
}

// formatDate reformats a stored timestamp for display, passing it
// through unchanged when it does not parse.
func formatDate(published string) string {
	t, err := time.Parse(newsharvest.TimestampLayout, published)
	if err != nil {
		return published
	}
	return t.Format("Jan 2, 2006 at 15:04")
}
