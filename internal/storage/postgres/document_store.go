package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"nuclear-grid-lab/internal/domain"
	"nuclear-grid-lab/internal/storage"
)

// DocumentStore implements storage.DocumentStore using PostgreSQL.
// Documents live in a single JSONB table keyed by (collection, doc_id);
// merge semantics come from the JSONB || operator, and updated_at is
// assigned by the database on every write.
type DocumentStore struct {
	pool   *Pool
	logger *log.Logger
}

// NewDocumentStore creates a new DocumentStore.
func NewDocumentStore(pool *Pool) *DocumentStore {
	return &DocumentStore{pool: pool, logger: log.Default()}
}

// WithLogger sets a custom logger.
func (s *DocumentStore) WithLogger(logger *log.Logger) *DocumentStore {
	s.logger = logger
	return s
}

// Compile-time interface check.
var _ storage.DocumentStore = (*DocumentStore)(nil)

const upsertQuery = `
	INSERT INTO documents (collection, doc_id, doc, updated_at)
	VALUES ($1, $2, $3, now())
	ON CONFLICT (collection, doc_id)
	DO UPDATE SET doc = documents.doc || EXCLUDED.doc, updated_at = now()
`

// UpsertRecords merge-upserts a raw observation series. An empty slice is a
// logged no-op.
func (s *DocumentStore) UpsertRecords(ctx context.Context, collection, docID string, records []domain.Observation) error {
	if len(records) == 0 {
		s.logger.Printf("[postgres] no data to write for %s/%s, skipping", collection, docID)
		return nil
	}
	return s.upsert(ctx, collection, docID, map[string]any{"records": records})
}

// UpsertResult merge-upserts a simulation result. A zero result is a logged
// no-op.
func (s *DocumentStore) UpsertResult(ctx context.Context, collection, docID string, result domain.SimulationResult) error {
	if result.IsZero() {
		s.logger.Printf("[postgres] no result to write for %s/%s, skipping", collection, docID)
		return nil
	}
	return s.upsert(ctx, collection, docID, map[string]any{"records": result})
}

func (s *DocumentStore) upsert(ctx context.Context, collection, docID string, payload map[string]any) error {
	doc, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal document %s/%s: %w", collection, docID, err)
	}

	if _, err := s.pool.Exec(ctx, upsertQuery, collection, docID, doc); err != nil {
		return storage.Unavailable(fmt.Sprintf("upsert %s/%s", collection, docID), err)
	}
	return nil
}

// Get retrieves a document. Returns storage.ErrNotFound if it does not exist.
func (s *DocumentStore) Get(ctx context.Context, collection, docID string) (*storage.Document, error) {
	query := `
		SELECT doc, updated_at
		FROM documents
		WHERE collection = $1 AND doc_id = $2
	`

	var raw []byte
	doc := &storage.Document{Collection: collection, DocID: docID}
	err := s.pool.QueryRow(ctx, query, collection, docID).Scan(&raw, &doc.UpdatedAt)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, storage.Unavailable(fmt.Sprintf("get %s/%s", collection, docID), err)
	}

	if err := json.Unmarshal(raw, &doc.Doc); err != nil {
		return nil, fmt.Errorf("unmarshal document %s/%s: %w", collection, docID, err)
	}
	return doc, nil
}
