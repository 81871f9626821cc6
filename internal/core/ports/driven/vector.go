package driven

import (
	"context"

	"github.com/wrenchworks/wrench-cli/internal/core/domain"
)

// VectorIndex holds all chunk embeddings in one flat, exact
// nearest-neighbour collection under squared-Euclidean distance.
// Vector ids are the position of insertion: dense, contiguous and
// monotonically assigned. They are the join key to the metadata store.
type VectorIndex interface {
	// Append atomically reserves the id range [n, n+len(vectors)) where
	// n is the current count, appends the batch, and persists the
	// updated snapshot before returning the starting id. Concurrent
	// appends never interleave their id ranges. On persistence failure
	// the in-memory state is rolled back and an error returned.
	Append(ctx context.Context, vectors [][]float32) (int64, error)

	// Search returns the k nearest vectors in ascending distance order.
	// The result has min(k, Count()) entries; an empty index returns an
	// empty result, never an error.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Count returns the number of stored vectors.
	Count() int

	// Health reports the index state.
	Health() domain.IndexHealth

	// Close releases resources.
	Close() error
}

// VectorHit is a similarity search result.
type VectorHit struct {
	// VectorID is the matched vector's insertion position.
	VectorID int64

	// Distance is the squared-Euclidean distance to the query.
	Distance float32
}
