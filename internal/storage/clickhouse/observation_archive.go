package clickhouse

import (
	"context"
	"fmt"

	"nuclear-grid-lab/internal/domain"
	"nuclear-grid-lab/internal/storage"
)

// ObservationArchive implements storage.ObservationArchive using ClickHouse.
// Each observation becomes one flat row; the ReplacingMergeTree key makes
// re-archiving the same day idempotent.
type ObservationArchive struct {
	conn *Conn
}

// NewObservationArchive creates a new ObservationArchive.
func NewObservationArchive(conn *Conn) *ObservationArchive {
	return &ObservationArchive{conn: conn}
}

// Compile-time interface check.
var _ storage.ObservationArchive = (*ObservationArchive)(nil)

// Archive batch-inserts the series observations. An empty series is a no-op.
func (a *ObservationArchive) Archive(ctx context.Context, series *domain.Series) error {
	if series.IsEmpty() {
		return nil
	}

	batch, err := a.conn.PrepareBatch(ctx, `
		INSERT INTO observations (
			provider, country, metric, day, position, quantity_mw, psr_type
		)
	`)
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, obs := range series.Observations {
		err = batch.Append(
			series.Provider, series.Country, string(series.Metric),
			series.Day, uint16(obs.Position), obs.QuantityMW, obs.PSRType,
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}

	return nil
}
