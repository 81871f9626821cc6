package driven

import (
	"context"

	"github.com/wrenchworks/wrench-cli/internal/core/domain"
)

// DocumentStore persists document records.
// Backed by SQLite.
type DocumentStore interface {
	// Create records a new document in processing state and returns
	// its assigned id.
	Create(ctx context.Context, filename string) (int64, error)

	// Finalize sets the terminal status and chunk count. It is called
	// exactly once per document.
	Finalize(ctx context.Context, id int64, status domain.DocumentStatus, chunkCount int) error

	// Get retrieves a document by id.
	Get(ctx context.Context, id int64) (*domain.Document, error)

	// List returns all documents, newest first.
	List(ctx context.Context) ([]domain.Document, error)
}
