package main

import (
	"fmt"
	"os"
)

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	subcommand := os.Args[1]
	args := os.Args[2:]

	switch subcommand {
	case "harvest":
		handleHarvest(args)
	case "sites":
		handleSites(args)
	case "serve":
		handleServe(args)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command: %s\n\n", subcommand)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("newsharvest - Adaptive news scraping CLI")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  newsharvest <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  harvest    Scrape configured news sites and save reports")
	fmt.Println("  sites      List site catalogs")
	fmt.Println("  serve      Serve recorded harvest runs over HTTP")
	fmt.Println("  help       Show this help message")
	fmt.Println()
	fmt.Println("Environment Variables:")
	fmt.Println("  NEWSHARVEST_DB      Path to run-history database (default: harvest.db)")
	fmt.Println("  NEWSHARVEST_OUTPUT  Report output directory (default: current directory)")
}
