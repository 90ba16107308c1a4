// Package main is a diagnostic utility: fetch one persisted document and
// pretty-print it, to verify what the dashboard will actually see.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"nuclear-grid-lab/internal/config"
	"nuclear-grid-lab/internal/storage"
	"nuclear-grid-lab/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config (optional, env overrides apply)")
	collection := flag.String("collection", "simulation_results", "Collection to inspect")
	docID := flag.String("doc", "latest_italy", "Document id to inspect")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Store init error: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	store := postgres.NewDocumentStore(pool)
	doc, err := store.Get(ctx, *collection, *docID)
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Printf("Document %s/%s not found. Run the pipeline first.\n", *collection, *docID)
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Read error: %v\n", err)
		os.Exit(1)
	}

	pretty, err := json.MarshalIndent(doc.Doc, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Encode error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("%s/%s (updated %s):\n%s\n", doc.Collection, doc.DocID, doc.UpdatedAt.Format("2006-01-02 15:04:05 MST"), pretty)
}
