// Package main serves the dashboard API: the latest simulation result and
// the per-country generation mixes.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"nuclear-grid-lab/internal/config"
	"nuclear-grid-lab/internal/dashboard"
	"nuclear-grid-lab/internal/storage/migrations"
	"nuclear-grid-lab/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config (optional, env overrides apply)")
	addr := flag.String("addr", ":8080", "Listen address")
	flag.Parse()

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

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

	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		fmt.Fprintf(os.Stderr, "Migration error: %v\n", err)
		os.Exit(1)
	}

	reader := dashboard.NewReader(postgres.NewDocumentStore(pool))
	router := dashboard.NewRouter(reader)

	if err := router.Run(*addr); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
