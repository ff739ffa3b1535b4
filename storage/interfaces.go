package storage

import (
	"context"

	"github.com/poiesic/helpdesk/core"
)

// DocumentRepository provides operations for managing indexed document chunks.
// Implementations must be thread-safe and support concurrent access.
type DocumentRepository interface {
	// AddDocuments adds one or more documents to storage.
	// For documents with ID=0, derives a content-based ID from Contents.
	// Sets InsertedAt timestamp if not already set.
	// Re-adding a document with identical contents overwrites the stored
	// record, so repeated ingestion of the same chunk is idempotent.
	// Returns the documents with IDs and timestamps populated.
	AddDocuments(ctx context.Context, docs ...*core.Document) ([]*core.Document, error)

	// GetDocument retrieves a single document by ID.
	// Returns ErrNotFound if the document doesn't exist.
	GetDocument(ctx context.Context, id core.ID) (*core.Document, error)

	// DeleteDocuments removes documents by their IDs.
	// Returns ErrNotFound if any document doesn't exist.
	DeleteDocuments(ctx context.Context, ids ...core.ID) error

	// DeleteSource removes every chunk originating from the given source file.
	// Missing sources are not an error; returns the number of chunks removed.
	DeleteSource(ctx context.Context, source string) (int, error)

	// CountDocuments returns the number of stored document chunks.
	CountDocuments(ctx context.Context) (int, error)

	// FindSimilar finds documents similar to the given vector, restricted to
	// documents matching the filter. Results are ordered by similarity score
	// (highest first), up to limit results. No minimum score is applied; the
	// caller's classifier owns all thresholds.
	FindSimilar(ctx context.Context, vector []float32, filter Filter, limit int) ([]*core.SearchResult, error)

	// Close closes the storage backend and releases resources.
	Close() error
}
