package clickhouse_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nuclear-grid-lab/internal/domain"
	"nuclear-grid-lab/internal/storage/clickhouse"
)

func testSeries() *domain.Series {
	return &domain.Series{
		Provider:   domain.ProviderENTSOE,
		Country:    "italy",
		Metric:     domain.MetricGeneration,
		Day:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Resolution: domain.ResolutionHourly,
		Observations: []domain.Observation{
			{Position: 1, QuantityMW: 500.5, PSRType: "B14"},
			{Position: 2, QuantityMW: 510, PSRType: "B14"},
			{Position: 1, QuantityMW: 120, PSRType: "B16"},
		},
	}
}

func TestObservationArchive_Archive(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	archive := clickhouse.NewObservationArchive(conn)
	ctx := context.Background()

	err := archive.Archive(ctx, testSeries())
	require.NoError(t, err)

	var count uint64
	err = conn.QueryRow(ctx, `
		SELECT count() FROM observations
		WHERE provider = 'entsoe' AND country = 'italy' AND metric = 'A75'
	`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)

	var quantity float64
	err = conn.QueryRow(ctx, `
		SELECT quantity_mw FROM observations
		WHERE psr_type = 'B16' AND position = 1
	`).Scan(&quantity)
	require.NoError(t, err)
	assert.Equal(t, float64(120), quantity)
}

func TestObservationArchive_ReArchiveIsIdempotent(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	archive := clickhouse.NewObservationArchive(conn)
	ctx := context.Background()

	require.NoError(t, archive.Archive(ctx, testSeries()))
	require.NoError(t, archive.Archive(ctx, testSeries()))

	// ReplacingMergeTree collapses duplicates on the ordering key
	var count uint64
	err := conn.QueryRow(ctx, `SELECT count() FROM observations FINAL`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), count)
}

func TestObservationArchive_EmptySeriesIsNoOp(t *testing.T) {
	conn, cleanup := setupTestDB(t)
	defer cleanup()

	archive := clickhouse.NewObservationArchive(conn)

	err := archive.Archive(context.Background(), &domain.Series{})
	require.NoError(t, err)

	var count uint64
	err = conn.QueryRow(context.Background(), `SELECT count() FROM observations`).Scan(&count)
	require.NoError(t, err)
	assert.Zero(t, count)
}
