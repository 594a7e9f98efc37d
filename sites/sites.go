// Package sites provides the built-in news site catalogs and optional
// user overrides loaded from a YAML file.
package sites

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Kind describes how a site's articles are retrieved.
type Kind string

const (
	// KindHTML sites are scraped with the adaptive extraction cascade.
	KindHTML Kind = "html"
	// KindRSS sites expose a feed that is parsed directly.
	KindRSS Kind = "rss"
)

// Site is one entry in a category catalog.
type Site struct {
	URL  string `yaml:"url"`
	Kind Kind   `yaml:"kind,omitempty"`
}

// catalogs holds the built-in site lists per category.
var catalogs = map[string][]Site{
	"tech": {
		{URL: "https://techcrunch.com"},
		{URL: "https://www.theverge.com"},
		{URL: "https://www.wired.com"},
		{URL: "https://arstechnica.com"},
		{URL: "https://www.zdnet.com"},
		{URL: "https://thenextweb.com"},
		{URL: "https://gizmodo.com"},
		{URL: "https://www.cnet.com"},
		{URL: "https://www.techradar.com"},
		{URL: "https://www.digitaltrends.com"},
	},
	"security": {
		{URL: "https://thehackernews.com"},
		{URL: "https://www.csoonline.com"},
		{URL: "https://www.darkreading.com"},
		{URL: "https://www.securityweek.com"},
		{URL: "https://www.infosecurity-magazine.com"},
		{URL: "https://krebsonsecurity.com"},
		{URL: "https://threatpost.com"},
		{URL: "https://www.bleepingcomputer.com"},
		{URL: "https://grahamcluley.com"},
		{URL: "https://securitytrails.com/blog"},
		{URL: "https://nakedsecurity.sophos.com"},
		{URL: "https://www.schneier.com"},
		{URL: "https://www.tripwire.com/state-of-security"},
		{URL: "https://cyberscoop.com"},
		{URL: "https://www.helpnetsecurity.com"},
	},
	"robotics": {
		{URL: "https://www.therobotreport.com"},
		{URL: "https://robohub.org"},
		{URL: "https://spectrum.ieee.org"},
		{URL: "https://roboticsandautomationnews.com"},
		{URL: "https://www.science.org/journal/scirobotics"},
		{URL: "https://www.robotics247.com"},
		{URL: "https://www.roboticstomorrow.com"},
		{URL: "https://news.mit.edu/topic/robotics"},
		{URL: "https://www.iotworldtoday.com"},
		{URL: "https://www.nasa.gov/news/robotics"},
	},
	"linux": {
		{URL: "https://lwn.net"},
		{URL: "https://www.phoronix.com"},
		{URL: "https://www.linuxtoday.com"},
		{URL: "https://www.linuxjournal.com"},
		{URL: "https://www.omgubuntu.co.uk"},
		{URL: "https://www.linux.com"},
		{URL: "https://distrowatch.com"},
		{URL: "https://linux.slashdot.org"},
		{URL: "https://www.tecmint.com"},
		{URL: "https://www.unixmen.com"},
		{URL: "https://www.xmodulo.com"},
	},
}

// Categories returns the built-in category names in sorted order.
func Categories() []string {
	names := make([]string, 0, len(catalogs))
	for name := range catalogs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Catalog returns the site list for a category. Sites without an
// explicit kind default to KindHTML.
func Catalog(category string) ([]Site, error) {
	entries, ok := catalogs[category]
	if !ok {
		return nil, fmt.Errorf("unknown category: %s (supported: %v)", category, Categories())
	}
	return withDefaults(entries), nil
}

// LoadFile reads category catalogs from a YAML file, keyed by category
// name. Loaded catalogs replace the built-in list for the categories
// they name; categories the file omits keep their built-in sites.
func LoadFile(path string) (map[string][]Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sites file: %w", err)
	}

	var loaded map[string][]Site
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("failed to parse sites file: %w", err)
	}

	for category, entries := range loaded {
		loaded[category] = withDefaults(entries)
	}

	return loaded, nil
}

// withDefaults fills in the default kind for entries that omit it.
func withDefaults(entries []Site) []Site {
	out := make([]Site, len(entries))
	for i, entry := range entries {
		if entry.Kind == "" {
			entry.Kind = KindHTML
		}
		out[i] = entry
	}
	return out
}
