package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pevans/newsharvest/store"
)

func handleServe(args []string) {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", ":8080", "HTTP listen address")
	dbPath := fs.String("db", getEnv("NEWSHARVEST_DB", "harvest.db"), "Run-history database path")
	fs.Parse(args)

	historyStore, err := store.NewHarvestStore(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to open history store: %v\n", err)
		os.Exit(1)
	}
	defer historyStore.Close()

	server := store.NewAPIServer(historyStore)
	router := server.SetupRouter()

	fmt.Printf("Serving harvest API on %s\n", *addr)
	if err := router.Run(*addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: server failed: %v\n", err)
		os.Exit(1)
	}
}
