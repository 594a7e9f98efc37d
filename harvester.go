package newsharvest

import (
	"log"
	"sync"

	"github.com/pevans/newsharvest/sites"
)

// HarvesterConfig holds configuration for multi-site harvesting.
type HarvesterConfig struct {
	// Maximum number of articles to keep per site
	MaxPerSite int
	// Maximum number of sites to harvest in parallel
	Concurrency int
}

// DefaultHarvesterConfig returns the default harvester configuration.
func DefaultHarvesterConfig() *HarvesterConfig {
	return &HarvesterConfig{
		MaxPerSite:  5,
		Concurrency: 1,
	}
}

// Harvester runs the extraction session across many sites, grouping
// results by source name. Sites degrade independently: one site's fetch
// or parse failure is logged and yields an empty result for that source
// without affecting the others.
type Harvester struct {
	fetcher Fetcher
	config  *HarvesterConfig
}

// NewHarvester creates a harvester with the given fetcher and
// configuration. A nil config uses the defaults.
func NewHarvester(fetcher Fetcher, config *HarvesterConfig) *Harvester {
	if config == nil {
		config = DefaultHarvesterConfig()
	}
	if config.Concurrency < 1 {
		config.Concurrency = 1
	}
	return &Harvester{
		fetcher: fetcher,
		config:  config,
	}
}

// HarvestSites harvests every site in the list and returns articles
// keyed by source name. Request pacing is the fetcher's responsibility;
// the harvester only bounds how many sites are in flight at once.
func (h *Harvester) HarvestSites(siteList []sites.Site) map[string][]Article {
	results := make(map[string][]Article, len(siteList))

	var mu sync.Mutex
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, h.config.Concurrency)

	for _, site := range siteList {
		semaphore <- struct{}{}
		wg.Add(1)
		go func(site sites.Site) {
			defer wg.Done()
			defer func() { <-semaphore }()

			articles := h.harvestSite(site)

			mu.Lock()
			results[SourceName(site.URL)] = articles
			mu.Unlock()
		}(site)
	}

	wg.Wait()
	return results
}

// harvestSite harvests one site according to its kind. Failures are
// logged and produce an empty result rather than an error.
func (h *Harvester) harvestSite(site sites.Site) []Article {
	log.Printf("INFO: Harvesting %s...", site.URL)

	var articles []Article
	var err error

	switch site.Kind {
	case sites.KindRSS:
		articles, err = h.harvestFeed(site.URL)
	default:
		session := NewSession(h.fetcher, h.config.MaxPerSite)
		articles, err = session.HarvestPage(site.URL)
	}

	if err != nil {
		log.Printf("ERROR: Failed to harvest %s: %v", site.URL, err)
		return nil
	}

	log.Printf("INFO: Harvested %d articles from %s", len(articles), SourceName(site.URL))
	return articles
}

// harvestFeed fetches an RSS/Atom site and converts its items.
func (h *Harvester) harvestFeed(feedURL string) ([]Article, error) {
	feed, err := FetchFeed(feedURL)
	if err != nil {
		return nil, err
	}
	return FeedToArticles(feed, SourceName(feedURL), h.config.MaxPerSite), nil
}
