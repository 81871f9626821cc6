package driving

import (
	"context"

	"github.com/wrenchworks/wrench-cli/internal/core/domain"
)

// DocumentService exposes the ingested document library.
type DocumentService interface {
	// List returns all documents, newest first.
	List(ctx context.Context) ([]domain.Document, error)
}
