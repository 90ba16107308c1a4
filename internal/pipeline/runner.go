// Package pipeline drives the batch run:
// acquire → parse → normalize → simulate → persist → report.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"nuclear-grid-lab/internal/domain"
	"nuclear-grid-lab/internal/normalize"
	"nuclear-grid-lab/internal/simulation"
	"nuclear-grid-lab/internal/storage"
)

// DefaultConcurrency bounds how many sources are fetched in parallel.
const DefaultConcurrency = 3

// Runner executes one batch run over a configured list of sources.
// Per-source failures degrade that source to an empty series; persistence
// failures abort the remainder of the run.
type Runner struct {
	sources          []Source
	store            storage.DocumentStore
	archive          storage.ObservationArchive // optional
	params           domain.SimulationParams
	resultCollection string
	resultDocID      string
	concurrency      int
	logger           *log.Logger
	verbose          bool
}

// RunnerOptions contains configuration for creating a Runner.
type RunnerOptions struct {
	Sources          []Source
	Store            storage.DocumentStore
	Archive          storage.ObservationArchive // optional dated archival sink
	Params           domain.SimulationParams
	ResultCollection string // default "simulation_results"
	ResultDocID      string // e.g. "latest_italy"
	Concurrency      int    // default DefaultConcurrency
	Logger           *log.Logger
	Verbose          bool
}

// NewRunner creates a new pipeline runner.
func NewRunner(opts RunnerOptions) *Runner {
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCollection := opts.ResultCollection
	if resultCollection == "" {
		resultCollection = "simulation_results"
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Runner{
		sources:          opts.Sources,
		store:            opts.Store,
		archive:          opts.Archive,
		params:           opts.Params,
		resultCollection: resultCollection,
		resultDocID:      opts.ResultDocID,
		concurrency:      concurrency,
		logger:           logger,
		verbose:          opts.Verbose,
	}
}

// RunResult summarizes one pipeline run.
type RunResult struct {
	Day             time.Time
	Outcomes        []Outcome
	Result          domain.SimulationResult
	ResultPersisted bool
}

// Degraded returns the names of sources that degraded during the run.
func (r *RunResult) Degraded() []string {
	var names []string
	for _, o := range r.Outcomes {
		if o.Status == StatusDegraded {
			names = append(names, o.Source)
		}
	}
	return names
}

// Run executes the full pipeline for one reporting day. The returned error
// is non-nil only for fatal failures (persistence); degraded sources are
// reported through the RunResult.
func (r *Runner) Run(ctx context.Context, day time.Time) (*RunResult, error) {
	result := &RunResult{Day: day}

	r.log("acquiring %d sources for %s...", len(r.sources), day.Format("2006-01-02"))
	result.Outcomes = r.acquireAll(ctx, day)

	for _, o := range result.Outcomes {
		if o.Status == StatusDegraded {
			r.logger.Printf("[pipeline] source %s degraded: %v", o.Source, o.Reason)
		}
	}

	// Persist raw series. A store failure here is fatal to the run.
	docID := day.Format("2006-01-02")
	for i, o := range result.Outcomes {
		if o.Status != StatusOK {
			continue
		}
		if err := r.store.UpsertRecords(ctx, r.sources[i].Collection, docID, o.Series.Observations); err != nil {
			return result, fmt.Errorf("persist %s: %w", o.Source, err)
		}
		r.log("persisted %d records to %s/%s", len(o.Series.Observations), r.sources[i].Collection, docID)

		// Archival is best effort: a missing warehouse never fails the run.
		if r.archive != nil {
			if err := r.archive.Archive(ctx, o.Series); err != nil {
				r.logger.Printf("[pipeline] archive %s: %v", o.Source, err)
			}
		}
	}

	// Simulate from the mandatory national load series.
	demand := r.demandSeries(result.Outcomes)
	simResult, err := simulation.Simulate(demand, r.params)
	if err != nil {
		// Soft failure: no result document is written, the previously good
		// "latest" slot survives, and the run still exits cleanly.
		r.logger.Printf("[pipeline] simulation skipped: %v", err)
		return result, nil
	}
	result.Result = simResult

	if err := r.store.UpsertResult(ctx, r.resultCollection, r.resultDocID, simResult); err != nil {
		return result, fmt.Errorf("persist result: %w", err)
	}
	result.ResultPersisted = true
	r.log("persisted result to %s/%s", r.resultCollection, r.resultDocID)

	return result, nil
}

// acquireAll fetches, parses and normalizes every source with bounded
// parallelism. Sources are independent; each one's interval ordering is
// preserved internally, and outcomes come back in configuration order.
func (r *Runner) acquireAll(ctx context.Context, day time.Time) []Outcome {
	outcomes := make([]Outcome, len(r.sources))
	sem := make(chan struct{}, r.concurrency)
	var wg sync.WaitGroup

	for i, src := range r.sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			outcomes[i] = r.acquireOne(ctx, day, src)
		}(i, src)
	}

	wg.Wait()
	return outcomes
}

// acquireOne runs the acquire → parse → normalize stages for a single
// source. Any failure degrades the source.
func (r *Runner) acquireOne(ctx context.Context, day time.Time, src Source) Outcome {
	raw, err := src.Connector.Fetch(ctx, day, src.Target.Zone)
	if err != nil {
		return Degraded(src.Name, fmt.Errorf("acquire: %w", err))
	}

	observations, resolution, err := src.Parse(raw)
	if err != nil {
		return Degraded(src.Name, fmt.Errorf("parse: %w", err))
	}

	target := src.Target
	target.Day = day
	series, err := normalize.Normalize(observations, resolution, target)
	if err != nil {
		return Degraded(src.Name, fmt.Errorf("normalize: %w", err))
	}

	r.log("source %s: %d observations", src.Name, len(series.Observations))
	return Ok(src.Name, series)
}

// demandSeries picks the first healthy mandatory series in configuration
// order, so a secondary load feed can stand in when the primary degraded.
func (r *Runner) demandSeries(outcomes []Outcome) *domain.Series {
	for i, o := range outcomes {
		if r.sources[i].Mandatory && o.Status == StatusOK {
			return o.Series
		}
	}
	return nil
}

func (r *Runner) log(format string, args ...interface{}) {
	if r.verbose {
		r.logger.Printf("[pipeline] "+format, args...)
	}
}
