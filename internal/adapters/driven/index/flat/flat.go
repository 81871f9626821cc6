// Package flat provides an exact brute-force vector index with a
// durable single-file snapshot.
package flat

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/wrenchworks/wrench-cli/internal/core/domain"
	"github.com/wrenchworks/wrench-cli/internal/core/ports/driven"
	"github.com/wrenchworks/wrench-cli/internal/logger"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// DefaultDimension is the embedding size the index is created with when
// none is configured. It matches text-embedding-004 and nomic-embed-text.
const DefaultDimension = 768

// Options contains configuration for the flat index.
type Options struct {
	// Path is the snapshot file location.
	Path string

	// Dimension is the fixed vector dimensionality, enforced on every
	// append and search.
	Dimension int
}

// Index is a flat exact-search index over fixed-dimension float32
// vectors using squared-Euclidean distance.
//
// Appends run under a single writer lock covering reserve, append and
// persist, so concurrent appends never interleave id ranges. Searches
// take a read lock and may run concurrently with each other; a search
// overlapping an in-flight append observes the pre-append state.
type Index struct {
	mu        sync.RWMutex
	path      string
	dimension int
	vectors   [][]float32
	persisted bool // a snapshot file exists on disk
	loadErr   error
}

// Open loads the index snapshot at opts.Path. An absent file
// initialises an empty index rather than failing; a present but
// undecodable file yields an index whose Health reports error.
func Open(opts Options) (*Index, error) {
	if opts.Dimension <= 0 {
		opts.Dimension = DefaultDimension
	}
	if opts.Path == "" {
		return nil, fmt.Errorf("open index: %w: empty snapshot path", domain.ErrInvalidInput)
	}

	idx := &Index{
		path:      opts.Path,
		dimension: opts.Dimension,
	}

	vectors, found, err := readSnapshot(opts.Path, opts.Dimension)
	if err != nil {
		idx.loadErr = err
		logger.Warn("Index snapshot load failed: %v", err)
		return idx, nil
	}

	idx.vectors = vectors
	idx.persisted = found
	if found {
		logger.Debug("Index loaded: %d vectors, dimension %d", len(vectors), opts.Dimension)
	} else {
		logger.Debug("No index snapshot at %s, starting empty", opts.Path)
	}

	return idx, nil
}

// Append reserves the contiguous id range [n, n+len(vectors)), appends
// the batch and persists the snapshot, all under the writer lock.
func (idx *Index) Append(_ context.Context, vectors [][]float32) (int64, error) {
	if len(vectors) == 0 {
		return 0, fmt.Errorf("append: %w: empty batch", domain.ErrInvalidInput)
	}

	for i, v := range vectors {
		if len(v) != idx.dimension {
			return 0, fmt.Errorf("append vector %d: %w: got %d, index expects %d",
				i, domain.ErrDimensionMismatch, len(v), idx.dimension)
		}
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.loadErr != nil {
		return 0, fmt.Errorf("append: index unusable: %w", idx.loadErr)
	}

	startID := int64(len(idx.vectors))

	// Copy the batch so callers cannot mutate stored vectors.
	for _, v := range vectors {
		stored := make([]float32, len(v))
		copy(stored, v)
		idx.vectors = append(idx.vectors, stored)
	}

	if err := writeSnapshot(idx.path, idx.dimension, idx.vectors); err != nil {
		// Roll back the in-memory append so ids stay contiguous with
		// the durable state.
		idx.vectors = idx.vectors[:startID]
		return 0, fmt.Errorf("persist index: %w", err)
	}
	idx.persisted = true

	logger.Debug("Index append: %d vectors at ids [%d,%d)", len(vectors), startID, startID+int64(len(vectors)))
	return startID, nil
}

// Search returns the min(k, count) nearest vectors in ascending
// squared-Euclidean distance order. An empty index returns an empty
// result.
func (idx *Index) Search(_ context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	if len(query) != idx.dimension {
		return nil, fmt.Errorf("search: %w: got %d, index expects %d",
			domain.ErrDimensionMismatch, len(query), idx.dimension)
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if idx.loadErr != nil {
		return nil, fmt.Errorf("search: index unusable: %w", idx.loadErr)
	}

	if k <= 0 || len(idx.vectors) == 0 {
		return []driven.VectorHit{}, nil
	}
	if k > len(idx.vectors) {
		k = len(idx.vectors)
	}

	hits := make([]driven.VectorHit, len(idx.vectors))
	for i, v := range idx.vectors {
		hits[i] = driven.VectorHit{
			VectorID: int64(i),
			Distance: squaredL2(query, v),
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Distance != hits[j].Distance {
			return hits[i].Distance < hits[j].Distance
		}
		return hits[i].VectorID < hits[j].VectorID
	})

	return hits[:k], nil
}

// Count returns the number of stored vectors.
func (idx *Index) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.vectors)
}

// Dimension returns the fixed vector dimensionality.
func (idx *Index) Dimension() int {
	return idx.dimension
}

// Health reports the index state: error when the snapshot failed to
// decode, not_ready when no snapshot exists yet and the index is empty,
// ok otherwise.
func (idx *Index) Health() domain.IndexHealth {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	switch {
	case idx.loadErr != nil:
		return domain.IndexError
	case !idx.persisted && len(idx.vectors) == 0:
		return domain.IndexNotReady
	default:
		return domain.IndexOK
	}
}

// Close releases resources. The snapshot is already durable after every
// append, so there is nothing to flush.
func (idx *Index) Close() error {
	return nil
}

// squaredL2 computes the squared Euclidean distance between two vectors
// of equal length.
func squaredL2(a, b []float32) float32 {
	var sum float32
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
