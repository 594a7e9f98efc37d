package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pevans/newsharvest/sites"
)

func handleSites(args []string) {
	fs := flag.NewFlagSet("sites", flag.ExitOnError)
	sitesFile := fs.String("sites", "", "YAML site catalog override file")
	category := fs.String("category", "", "Only show one category")
	fs.Parse(args)

	overrides := loadSiteOverrides(*sitesFile)

	categories := sites.Categories()
	if *category != "" {
		categories = []string{*category}
	}

	for _, cat := range categories {
		siteList, err := categorySites(cat, overrides)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("%s (%d sites):\n", cat, len(siteList))
		for _, site := range siteList {
			if site.Kind == sites.KindRSS {
				fmt.Printf("  %s (rss)\n", site.URL)
			} else {
				fmt.Printf("  %s\n", site.URL)
			}
		}
		fmt.Println()
	}
}
