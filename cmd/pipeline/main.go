// Package main runs the batch pipeline once:
// acquire → parse → normalize → simulate → persist → report.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nuclear-grid-lab/internal/config"
	"nuclear-grid-lab/internal/connector"
	"nuclear-grid-lab/internal/domain"
	"nuclear-grid-lab/internal/normalize"
	"nuclear-grid-lab/internal/parser"
	"nuclear-grid-lab/internal/pipeline"
	"nuclear-grid-lab/internal/storage"
	"nuclear-grid-lab/internal/storage/clickhouse"
	"nuclear-grid-lab/internal/storage/memory"
	"nuclear-grid-lab/internal/storage/migrations"
	"nuclear-grid-lab/internal/storage/postgres"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config (optional, env overrides apply)")
	dateStr := flag.String("date", "", "Reporting day YYYY-MM-DD (default: today minus two days)")
	verbose := flag.Bool("verbose", false, "Verbose output")
	dryRun := flag.Bool("dry-run", false, "Use an in-memory store instead of Postgres")
	flag.Parse()

	// Create context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		fmt.Printf("\nReceived signal %v, cancelling run...\n", sig)
		cancel()
	}()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	day, err := reportingDay(*dateStr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid -date: %v\n", err)
		os.Exit(1)
	}

	// A store that cannot be constructed is an init failure: abort before
	// any provider call.
	store, archive, cleanup, err := buildStores(ctx, cfg, *dryRun)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Store init error: %v\n", err)
		os.Exit(1)
	}
	defer cleanup()

	simCountry := cfg.Countries[0].Name

	runner := pipeline.NewRunner(pipeline.RunnerOptions{
		Sources:     buildSources(cfg),
		Store:       store,
		Archive:     archive,
		Params:      cfg.Params(),
		ResultDocID: "latest_" + simCountry,
		Concurrency: cfg.Fetch.Concurrency,
		Verbose:     *verbose,
	})

	result, err := runner.Run(ctx, day)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Pipeline error: %v\n", err)
		os.Exit(1)
	}

	if degraded := result.Degraded(); len(degraded) > 0 {
		fmt.Printf("Run completed with degraded sources: %v\n", degraded)
	}
	if report := pipeline.RenderReport(result.Result); report != "" {
		fmt.Print("\n" + report)
	}
}

// reportingDay parses -date, defaulting to today minus two days: providers
// publish realised data with a lag.
func reportingDay(dateStr string) (time.Time, error) {
	if dateStr == "" {
		return time.Now().UTC().AddDate(0, 0, -2).Truncate(24 * time.Hour), nil
	}
	return time.Parse("2006-01-02", dateStr)
}

// buildStores constructs the document store and the optional observation
// archive, running migrations on real backends.
func buildStores(ctx context.Context, cfg *config.Config, dryRun bool) (storage.DocumentStore, storage.ObservationArchive, func(), error) {
	if dryRun {
		return memory.NewDocumentStore(), nil, func() {}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := migrations.RunPostgresMigrations(ctx, pool); err != nil {
		pool.Close()
		return nil, nil, nil, err
	}

	var archive storage.ObservationArchive
	cleanup := func() { pool.Close() }

	if cfg.Clickhouse.Enabled {
		conn, err := clickhouse.NewConn(ctx, cfg.Clickhouse.DSN)
		if err != nil {
			// Archival is optional; the run proceeds without it.
			fmt.Fprintf(os.Stderr, "Warning: observation archive unavailable: %v\n", err)
		} else if err := migrations.RunClickhouseMigrations(ctx, conn); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: archive migrations failed: %v\n", err)
			conn.Close()
		} else {
			archive = clickhouse.NewObservationArchive(conn)
			cleanup = func() {
				conn.Close()
				pool.Close()
			}
		}
	}

	return postgres.NewDocumentStore(pool), archive, cleanup, nil
}

// buildSources wires the configured providers into pipeline sources. The
// first configured country is the simulation target: its load series is
// mandatory, with the Terna feed as a secondary demand source when
// credentials are present.
func buildSources(cfg *config.Config) []pipeline.Source {
	timeout := connector.WithTimeout(cfg.Timeout())
	simCountry := cfg.Countries[0]

	loadClient := connector.NewENTSOEClient(cfg.ENTSOE.BaseURL, cfg.ENTSOE.Token, domain.MetricLoad, timeout)
	generationClient := connector.NewENTSOEClient(cfg.ENTSOE.BaseURL, cfg.ENTSOE.Token, domain.MetricGeneration, timeout)

	sources := []pipeline.Source{
		{
			Name:      simCountry.Name + "-load",
			Connector: loadClient,
			Parse:     parser.ParseGLDocument,
			Target: normalize.Target{
				Provider: domain.ProviderENTSOE,
				Country:  simCountry.Name,
				Zone:     simCountry.Zone,
				Metric:   domain.MetricLoad,
			},
			Collection: "daily_load_" + simCountry.Name,
			Mandatory:  true,
		},
	}

	if cfg.Terna.Enabled() {
		sources = append(sources, pipeline.Source{
			Name: simCountry.Name + "-load-terna",
			Connector: connector.NewTernaClient(connector.TernaOptions{
				TokenURL:        cfg.Terna.TokenURL,
				DataURL:         cfg.Terna.DataURL,
				ClientID:        cfg.Terna.ClientID,
				ClientSecret:    cfg.Terna.ClientSecret,
				SubscriptionKey: cfg.Terna.SubscriptionKey,
			}, timeout),
			Parse: parser.ParseTotalLoadJSON,
			Target: normalize.Target{
				Provider: domain.ProviderTerna,
				Country:  simCountry.Name,
				Zone:     "Italy",
				Metric:   domain.MetricLoad,
			},
			Collection: "daily_load_terna",
			Mandatory:  true,
		})
	}

	for _, country := range cfg.Countries {
		sources = append(sources, pipeline.Source{
			Name:      country.Name + "-generation",
			Connector: generationClient,
			Parse:     parser.ParseGLDocument,
			Target: normalize.Target{
				Provider: domain.ProviderENTSOE,
				Country:  country.Name,
				Zone:     country.Zone,
				Metric:   domain.MetricGeneration,
			},
			Collection: "daily_generation_" + country.Name,
		})
	}

	return sources
}
