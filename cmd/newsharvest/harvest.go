package main

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	newsharvest "github.com/pevans/newsharvest"
	"github.com/pevans/newsharvest/config"
	"github.com/pevans/newsharvest/fetch"
	"github.com/pevans/newsharvest/report"
	"github.com/pevans/newsharvest/sites"
	"github.com/pevans/newsharvest/store"
)

// harvestOptions is the merged view of flags, the config file and the
// built-in defaults (flags win, then the file, then defaults).
type harvestOptions struct {
	categories   []string
	maxPerSite   int
	delay        time.Duration
	userAgent    string
	concurrency  int
	formats      []string
	templatePath string
	sitesFile    string
	outputDir    string
	dbPath       string
	noStore      bool
}

func handleHarvest(args []string) {
	fs := flag.NewFlagSet("harvest", flag.ExitOnError)
	categories := fs.String("categories", "tech", "Comma-separated categories to harvest, or 'all'")
	maxPerSite := fs.Int("max", 0, "Maximum articles per site")
	delay := fs.String("delay", "", "Minimum delay between requests (e.g. 2s)")
	concurrency := fs.Int("concurrency", 0, "Maximum sites harvested in parallel")
	formats := fs.String("formats", "json,csv,html", "Comma-separated report formats")
	templatePath := fs.String("template", "", "External HTML template file")
	sitesFile := fs.String("sites", "", "YAML site catalog override file")
	outputDir := fs.String("output", "", "Report output directory")
	dbPath := fs.String("db", "", "Run-history database path")
	noStore := fs.Bool("no-store", false, "Skip recording the run in the history store")
	fs.Parse(args)

	opts, err := resolveOptions(fs, *categories, *maxPerSite, *delay, *concurrency,
		*formats, *templatePath, *sitesFile, *outputDir, *dbPath, *noStore)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	overrides := loadSiteOverrides(opts.sitesFile)

	harvester := newsharvest.NewHarvester(
		fetch.NewClient(&fetch.Config{
			Timeout:   15 * time.Second,
			Delay:     opts.delay,
			UserAgent: opts.userAgent,
		}),
		&newsharvest.HarvesterConfig{
			MaxPerSite:  opts.maxPerSite,
			Concurrency: opts.concurrency,
		},
	)

	writer := report.NewWriter(opts.outputDir)

	var historyStore *store.HarvestStore
	if !opts.noStore {
		historyStore, err = store.NewHarvestStore(opts.dbPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to open history store: %v\n", err)
			os.Exit(1)
		}
		defer historyStore.Close()
	}

	// Combined results accumulate across categories with prefixed source
	// keys, mirroring the per-category maps.
	combined := make(map[string][]newsharvest.Article)
	grandTotal := 0

	for _, category := range opts.categories {
		siteList, err := categorySites(category, overrides)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Harvesting %s news from %d sites...\n", category, len(siteList))
		results := harvester.HarvestSites(siteList)

		printHarvestSummary(category, results)

		total := 0
		for source, articles := range results {
			total += len(articles)
			combined[category+"_"+source] = articles
		}
		grandTotal += total

		if total > 0 {
			saveReports(writer, results, category+"_news", category, opts)
		}

		if historyStore != nil {
			run, err := historyStore.SaveRun(category, results)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: failed to record run: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Recorded run %s (%d articles)\n", run.RunID, run.ArticleCount)
		}
	}

	// Multi-category runs additionally get one combined report.
	if len(opts.categories) > 1 && grandTotal > 0 {
		fmt.Println("\nWriting combined report...")
		saveReports(writer, combined, "combined_news", "combined", opts)
	}

	if grandTotal == 0 {
		fmt.Println("\nNo articles were harvested. Sites may be blocking requests or have changed structure.")
		return
	}

	fmt.Printf("\n✓ Harvesting completed! Total articles: %d\n", grandTotal)
}

// resolveOptions merges flags with the config file and defaults. The
// explicit-flag check matters because a flag left at its zero value must
// not shadow a config-file setting.
func resolveOptions(
	fs *flag.FlagSet,
	categories string,
	maxPerSite int,
	delay string,
	concurrency int,
	formats, templatePath, sitesFile, outputDir, dbPath string,
	noStore bool,
) (*harvestOptions, error) {
	fileCfg, err := config.LoadConfigFile()
	if err != nil {
		return nil, err
	}
	if fileCfg == nil {
		fileCfg = &config.FileConfig{}
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	opts := &harvestOptions{
		maxPerSite:   maxPerSite,
		concurrency:  concurrency,
		formats:      splitList(formats),
		templatePath: templatePath,
		sitesFile:    sitesFile,
		outputDir:    outputDir,
		dbPath:       dbPath,
		noStore:      noStore,
		userAgent:    fileCfg.UserAgent,
	}

	opts.categories, err = resolveCategories(categories)
	if err != nil {
		return nil, err
	}

	if !set["max"] {
		opts.maxPerSite = fileCfg.MaxArticles
	}
	if opts.maxPerSite <= 0 {
		opts.maxPerSite = 5
	}

	if !set["concurrency"] {
		opts.concurrency = fileCfg.Concurrency
	}
	if opts.concurrency < 1 {
		opts.concurrency = 1
	}

	delayStr := delay
	if !set["delay"] && fileCfg.Delay != "" {
		delayStr = fileCfg.Delay
	}
	if delayStr == "" {
		opts.delay = 2 * time.Second
	} else {
		opts.delay, err = time.ParseDuration(delayStr)
		if err != nil {
			return nil, fmt.Errorf("invalid delay: %w", err)
		}
	}

	if opts.sitesFile == "" {
		opts.sitesFile = fileCfg.SitesFile
	}
	if !set["output"] {
		opts.outputDir = getEnv("NEWSHARVEST_OUTPUT", fileCfg.OutputDir)
	}
	if !set["db"] {
		opts.dbPath = getEnv("NEWSHARVEST_DB", fileCfg.Storage.DSN)
	}
	if opts.dbPath == "" {
		opts.dbPath = "harvest.db"
	}

	return opts, nil
}

// resolveCategories expands the -categories flag into a validated list.
func resolveCategories(raw string) ([]string, error) {
	if raw == "all" {
		return sites.Categories(), nil
	}

	known := sites.Categories()
	categories := splitList(raw)
	if len(categories) == 0 {
		return nil, fmt.Errorf("no categories given (supported: %v)", known)
	}
	for _, category := range categories {
		if !slices.Contains(known, category) {
			return nil, fmt.Errorf("unknown category: %s (supported: %v)", category, known)
		}
	}
	return categories, nil
}

// loadSiteOverrides reads the site override file when one is configured.
func loadSiteOverrides(path string) map[string][]sites.Site {
	if path == "" {
		return nil
	}
	overrides, err := sites.LoadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return overrides
}

// categorySites returns the (possibly overridden) site list for a
// category.
func categorySites(category string, overrides map[string][]sites.Site) ([]sites.Site, error) {
	if siteList, ok := overrides[category]; ok {
		return siteList, nil
	}
	return sites.Catalog(category)
}

// saveReports writes the selected report formats, printing each saved
// path.
func saveReports(writer *report.Writer, results map[string][]newsharvest.Article, prefix, category string, opts *harvestOptions) {
	for _, format := range opts.formats {
		var path string
		var err error

		switch format {
		case "json":
			path, err = writer.SaveJSON(results, prefix)
		case "csv":
			path, err = writer.SaveCSV(results, prefix)
		case "html":
			path, err = writer.SaveHTML(results, prefix, category, opts.templatePath)
		default:
			fmt.Fprintf(os.Stderr, "Error: unknown report format: %s\n", format)
			os.Exit(1)
		}

		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to save %s report: %v\n", format, err)
			os.Exit(1)
		}
		fmt.Printf("Saved %s\n", path)
	}
}

// splitList splits a comma-separated flag value, dropping empty entries.
func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
