package storage

import (
	"context"
	"time"

	"nuclear-grid-lab/internal/domain"
)

// Document is a persisted document as read back from the store: the merged
// payload plus the server-assigned write timestamp.
type Document struct {
	Collection string
	DocID      string
	Doc        map[string]any
	UpdatedAt  time.Time
}

// DocumentStore is the persistence gateway. Writes are merge-upserts into
// one logical document per (collection, doc id): fields not present in a
// write survive, fields present are replaced, and updated_at is set to a
// server-assigned timestamp on every successful write.
//
// An empty records slice or zero result is a logged no-op, never an error,
// so a failed run cannot clobber a previously good "latest" document.
// Implementations must be safe for concurrent writes to distinct documents.
type DocumentStore interface {
	// UpsertRecords merge-upserts a raw observation series under the
	// document's "records" field.
	UpsertRecords(ctx context.Context, collection, docID string, records []domain.Observation) error

	// UpsertResult merge-upserts a simulation result under the document's
	// "records" field.
	UpsertResult(ctx context.Context, collection, docID string, result domain.SimulationResult) error

	// Get retrieves a document. Returns ErrNotFound if it does not exist.
	Get(ctx context.Context, collection, docID string) (*Document, error)
}

// ObservationArchive is the optional dated archival sink: raw observations
// flattened to per-point rows for later analysis. Archive failures are not
// fatal to a run.
type ObservationArchive interface {
	Archive(ctx context.Context, series *domain.Series) error
}
