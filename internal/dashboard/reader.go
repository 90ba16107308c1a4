// Package dashboard reads persisted documents for display.
package dashboard

import (
	"context"
	"errors"
	"fmt"

	"nuclear-grid-lab/internal/domain"
	"nuclear-grid-lab/internal/storage"
)

// ResultCollection is the collection holding the "latest" result slots.
const ResultCollection = "simulation_results"

// Reader reads latest-result and generation-mix documents. A missing
// document is presented as an empty payload, never as an error: the
// dashboard must render before the first pipeline run has ever completed.
type Reader struct {
	store storage.DocumentStore
}

// NewReader creates a new Reader.
func NewReader(store storage.DocumentStore) *Reader {
	return &Reader{store: store}
}

// LatestResult returns the latest simulation result payload for a country.
// The result fields are nested under the document's "records" key.
func (r *Reader) LatestResult(ctx context.Context, country string) (map[string]any, error) {
	doc, err := r.store.Get(ctx, ResultCollection, "latest_"+country)
	if errors.Is(err, storage.ErrNotFound) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read latest result for %s: %w", country, err)
	}

	if records, ok := doc.Doc["records"].(map[string]any); ok {
		return records, nil
	}
	return map[string]any{}, nil
}

// GenerationMix returns a country's generation for one day, aggregated in
// MW-interval sums per human-readable source name, ready for chart display.
func (r *Reader) GenerationMix(ctx context.Context, country, date string) (map[string]float64, error) {
	doc, err := r.store.Get(ctx, "daily_generation_"+country, date)
	if errors.Is(err, storage.ErrNotFound) {
		return map[string]float64{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read generation mix for %s/%s: %w", country, date, err)
	}

	mix := make(map[string]float64)
	records, ok := doc.Doc["records"].([]any)
	if !ok {
		return mix, nil
	}

	for _, rec := range records {
		m, ok := rec.(map[string]any)
		if !ok {
			continue
		}
		psrType, _ := m["psrType"].(string)
		quantity, _ := m["quantity_MW"].(float64)
		mix[domain.PSRName(psrType)] += quantity
	}
	return mix, nil
}
