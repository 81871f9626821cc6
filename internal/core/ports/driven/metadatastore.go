package driven

import (
	"context"

	"github.com/wrenchworks/wrench-cli/internal/core/domain"
)

// VectorMetadataStore correlates vector ids to their source document
// and chunk. Rows are insert-only; insertion order matches vector id
// order so the index metadata can be rebuilt from this table alone.
type VectorMetadataStore interface {
	// Insert writes one row per appended vector id, in batch order,
	// within a single transaction.
	Insert(ctx context.Context, rows []domain.VectorMetadata) error

	// Lookup returns the rows for the given vector ids with the source
	// filename joined in. Result order is not guaranteed to match the
	// input; callers re-associate by vector id. Ids without a row are
	// simply absent from the result.
	Lookup(ctx context.Context, vectorIDs []int64) ([]domain.VectorMetadata, error)

	// All returns every row ordered by vector id.
	All(ctx context.Context) ([]domain.VectorMetadata, error)

	// MarkOrphaned tombstones vector ids whose metadata write failed
	// after a successful index append, so they can be reconciled later
	// instead of being left unexplained.
	MarkOrphaned(ctx context.Context, vectorIDs []int64, reason string) error
}
