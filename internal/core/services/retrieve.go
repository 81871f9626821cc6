package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/wrenchworks/wrench-cli/internal/core/domain"
	"github.com/wrenchworks/wrench-cli/internal/core/ports/driven"
	"github.com/wrenchworks/wrench-cli/internal/logger"
)

// DefaultTopK is the number of nearest chunks retrieved per query.
const DefaultTopK = 3

// Retriever finds grounding excerpts for a query.
type Retriever struct {
	embedder driven.EmbeddingService
	index    driven.VectorIndex
	metadata driven.VectorMetadataStore
	topK     int
}

// NewRetriever wires the retrieval dependencies.
func NewRetriever(
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
	metadata driven.VectorMetadataStore,
) *Retriever {
	return &Retriever{
		embedder: embedder,
		index:    index,
		metadata: metadata,
		topK:     DefaultTopK,
	}
}

// Retrieve embeds the query and assembles grounding context from the
// nearest chunks. An empty index or a failed query embedding yields
// empty context and no sources rather than an error; the caller falls
// back to a general-knowledge answer.
func (r *Retriever) Retrieve(ctx context.Context, query string) (string, []domain.Source, bool) {
	if r.index.Count() == 0 {
		logger.Debug("retrieval skipped: index empty")
		return "", nil, false
	}

	embedding, err := r.embedder.EmbedQuery(ctx, query)
	if err != nil {
		logger.Warn("query embedding failed: %v", err)
		return "", nil, false
	}

	hits, err := r.index.Search(ctx, embedding, r.topK)
	if err != nil {
		logger.Warn("index search failed: %v", err)
		return "", nil, false
	}
	if len(hits) == 0 {
		return "", nil, false
	}

	ids := make([]int64, len(hits))
	for i, hit := range hits {
		ids[i] = hit.VectorID
	}

	rows, err := r.metadata.Lookup(ctx, ids)
	if err != nil {
		logger.Warn("metadata lookup failed: %v", err)
		return "", nil, false
	}

	// Re-associate by vector id: lookup order is not guaranteed, and
	// ids without a metadata row are skipped.
	byID := make(map[int64]domain.VectorMetadata, len(rows))
	for _, row := range rows {
		byID[row.VectorID] = row
	}

	var sources []domain.Source
	var blocks []string
	for _, hit := range hits {
		row, ok := byID[hit.VectorID]
		if !ok {
			logger.Debug("vector %d has no metadata row, skipping", hit.VectorID)
			continue
		}
		sources = append(sources, domain.Source{
			Doc:     row.Filename,
			Excerpt: row.Snippet,
		})
		blocks = append(blocks, fmt.Sprintf("[From %s]\n%s", row.Filename, row.Snippet))
	}

	if len(sources) == 0 {
		return "", nil, false
	}

	logger.Debug("retrieved %d of %d requested chunks", len(sources), r.topK)
	return strings.Join(blocks, "\n\n"), sources, true
}
