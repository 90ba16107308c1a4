package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"nuclear-grid-lab/internal/domain"
	"nuclear-grid-lab/internal/storage"
)

// DocumentStore is an in-memory implementation of storage.DocumentStore.
// Backs unit tests and dry runs; merge semantics match the Postgres store.
type DocumentStore struct {
	mu     sync.RWMutex
	docs   map[string]*storage.Document // keyed by collection + "/" + doc_id
	logger *log.Logger
	now    func() time.Time
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		docs:   make(map[string]*storage.Document),
		logger: log.Default(),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// WithClock sets a custom clock function for deterministic timestamps.
func (s *DocumentStore) WithClock(now func() time.Time) *DocumentStore {
	s.now = now
	return s
}

// Compile-time interface check.
var _ storage.DocumentStore = (*DocumentStore)(nil)

// UpsertRecords merge-upserts a raw observation series. An empty slice is a
// logged no-op.
func (s *DocumentStore) UpsertRecords(_ context.Context, collection, docID string, records []domain.Observation) error {
	if len(records) == 0 {
		s.logger.Printf("[memory] no data to write for %s/%s, skipping", collection, docID)
		return nil
	}
	return s.upsert(collection, docID, map[string]any{"records": records})
}

// UpsertResult merge-upserts a simulation result. A zero result is a logged
// no-op.
func (s *DocumentStore) UpsertResult(_ context.Context, collection, docID string, result domain.SimulationResult) error {
	if result.IsZero() {
		s.logger.Printf("[memory] no result to write for %s/%s, skipping", collection, docID)
		return nil
	}
	return s.upsert(collection, docID, map[string]any{"records": result})
}

func (s *DocumentStore) upsert(collection, docID string, payload map[string]any) error {
	if collection == "" || docID == "" {
		return storage.ErrInvalidInput
	}

	// Round-trip through JSON so stored values match what a real document
	// store would hand back (maps and float64s, not Go structs).
	merged, err := toJSONValue(payload)
	if err != nil {
		return fmt.Errorf("encode document %s/%s: %w", collection, docID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := collection + "/" + docID
	doc, exists := s.docs[key]
	if !exists {
		doc = &storage.Document{
			Collection: collection,
			DocID:      docID,
			Doc:        make(map[string]any),
		}
		s.docs[key] = doc
	}
	for k, v := range merged {
		doc.Doc[k] = v
	}
	doc.UpdatedAt = s.now()
	return nil
}

// Get retrieves a document. Returns storage.ErrNotFound if it does not exist.
func (s *DocumentStore) Get(_ context.Context, collection, docID string) (*storage.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, exists := s.docs[collection+"/"+docID]
	if !exists {
		return nil, storage.ErrNotFound
	}

	// Return a copy to prevent external mutation.
	docCopy := *doc
	copied, err := toJSONValue(doc.Doc)
	if err != nil {
		return nil, fmt.Errorf("copy document %s/%s: %w", collection, docID, err)
	}
	docCopy.Doc = copied
	return &docCopy, nil
}

func toJSONValue(payload map[string]any) (map[string]any, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
