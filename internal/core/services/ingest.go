package services

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/wrenchworks/wrench-cli/internal/adapters/driven/extract"
	"github.com/wrenchworks/wrench-cli/internal/chunker"
	"github.com/wrenchworks/wrench-cli/internal/core/domain"
	"github.com/wrenchworks/wrench-cli/internal/core/ports/driven"
	"github.com/wrenchworks/wrench-cli/internal/core/ports/driving"
	"github.com/wrenchworks/wrench-cli/internal/logger"
)

// Ensure IngestionPipeline implements the interface.
var _ driving.IngestService = (*IngestionPipeline)(nil)

// DefaultWorkers bounds concurrent embedding calls per document.
const DefaultWorkers = 4

// IngestionPipeline runs one document through extract, chunk, embed,
// index and correlate.
type IngestionPipeline struct {
	extractor driven.TextExtractor
	chunker   *chunker.Chunker
	embedder  driven.EmbeddingService
	index     driven.VectorIndex
	documents driven.DocumentStore
	metadata  driven.VectorMetadataStore
	workers   int
	limiter   *rate.Limiter
}

// PipelineOption configures the ingestion pipeline.
type PipelineOption func(*IngestionPipeline)

// WithWorkers sets the embedding fan-out bound.
func WithWorkers(n int) PipelineOption {
	return func(p *IngestionPipeline) {
		if n > 0 {
			p.workers = n
		}
	}
}

// WithRateLimit caps embedding requests per second. Zero disables the cap.
func WithRateLimit(perSecond float64) PipelineOption {
	return func(p *IngestionPipeline) {
		if perSecond > 0 {
			p.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// NewIngestionPipeline wires the pipeline dependencies.
func NewIngestionPipeline(
	extractor driven.TextExtractor,
	splitter *chunker.Chunker,
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
	documents driven.DocumentStore,
	metadata driven.VectorMetadataStore,
	opts ...PipelineOption,
) *IngestionPipeline {
	p := &IngestionPipeline{
		extractor: extractor,
		chunker:   splitter,
		embedder:  embedder,
		index:     index,
		documents: documents,
		metadata:  metadata,
		workers:   DefaultWorkers,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Ingest processes one file end to end. Per-chunk embedding failures
// drop the chunk; the document completes as long as at least one chunk
// survives. A failure after vectors were appended but before metadata
// was written tombstones the appended ids and marks the document error.
func (p *IngestionPipeline) Ingest(ctx context.Context, path string) (*domain.IngestReport, error) {
	jobID := uuid.NewString()
	filename := extract.SanitizeFilename(filepath.Base(path))

	if !extract.Supported(filename) {
		return nil, fmt.Errorf("%s: %w", filename, domain.ErrUnsupportedFileType)
	}

	logger.Info("[%s] ingesting %s", jobID, filename)

	text, err := p.extractor.Extract(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("extracting %s: %w", filename, err)
	}

	chunks := p.chunker.Split(text)
	if len(chunks) == 0 {
		return nil, fmt.Errorf("%s: %w", filename, domain.ErrEmptyDocument)
	}
	logger.Debug("[%s] split into %d chunks", jobID, len(chunks))

	// The document row exists only once there is something to embed.
	docID, err := p.documents.Create(ctx, filename)
	if err != nil {
		return nil, fmt.Errorf("recording document: %w", err)
	}

	report := &domain.IngestReport{
		DocumentID:  docID,
		Filename:    filename,
		ChunksTotal: len(chunks),
	}

	vectors, kept := p.embedChunks(ctx, jobID, chunks)
	if len(vectors) == 0 {
		p.finalize(ctx, jobID, docID, domain.StatusError, 0)
		report.Status = domain.StatusError
		return report, fmt.Errorf("%s: all %d chunks failed to embed", filename, len(chunks))
	}

	startID, err := p.index.Append(ctx, vectors)
	if err != nil {
		p.finalize(ctx, jobID, docID, domain.StatusError, 0)
		report.Status = domain.StatusError
		return report, fmt.Errorf("indexing %s: %w", filename, err)
	}

	rows := make([]domain.VectorMetadata, len(kept))
	for i, c := range kept {
		rows[i] = domain.VectorMetadata{
			VectorID:   startID + int64(i),
			DocumentID: docID,
			ChunkIndex: c.Index,
			Snippet:    c.Snippet(),
		}
	}

	if err := p.metadata.Insert(ctx, rows); err != nil {
		// The vectors are already durable in the index; tombstone them
		// so the inconsistency is recorded rather than silent.
		ids := make([]int64, len(rows))
		for i := range rows {
			ids[i] = rows[i].VectorID
		}
		if markErr := p.metadata.MarkOrphaned(ctx, ids, "metadata write failed"); markErr != nil {
			logger.Warn("[%s] tombstoning orphaned vectors: %v", jobID, markErr)
		}
		p.finalize(ctx, jobID, docID, domain.StatusError, 0)
		report.Status = domain.StatusError
		return report, fmt.Errorf("correlating %s: %w", filename, err)
	}

	if err := p.documents.Finalize(ctx, docID, domain.StatusCompleted, len(vectors)); err != nil {
		report.Status = domain.StatusError
		return report, fmt.Errorf("finalising %s: %w", filename, err)
	}

	report.ChunksStored = len(vectors)
	report.Status = domain.StatusCompleted
	logger.Info("[%s] ingested %s: %d/%d chunks stored",
		jobID, filename, report.ChunksStored, report.ChunksTotal)
	return report, nil
}

// embedChunks embeds all chunks with bounded fan-out. Failed chunks are
// dropped; the returned slices are parallel and hold only survivors, in
// document order.
func (p *IngestionPipeline) embedChunks(ctx context.Context, jobID string, chunks []string) ([][]float32, []domain.Chunk) {
	type result struct {
		vector []float32
		ok     bool
	}
	// Each goroutine writes its own slot, so no lock is needed.
	results := make([]result, len(chunks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, text := range chunks {
		g.Go(func() error {
			if p.limiter != nil {
				if err := p.limiter.Wait(gctx); err != nil {
					return nil //nolint:nilerr // cancelled; chunk is simply dropped
				}
			}

			vector, err := p.embedder.EmbedDocument(gctx, text)
			if err != nil {
				logger.Warn("[%s] embedding chunk %d failed: %v", jobID, i, err)
				return nil
			}

			results[i] = result{vector: vector, ok: true}
			return nil
		})
	}
	g.Wait() //nolint:errcheck // workers never return errors

	var vectors [][]float32
	var kept []domain.Chunk
	for i, r := range results {
		if !r.ok {
			continue
		}
		vectors = append(vectors, r.vector)
		kept = append(kept, domain.Chunk{Index: i, Text: chunks[i]})
	}

	if len(kept) < len(chunks) {
		logger.Warn("[%s] dropped %d of %d chunks", jobID, len(chunks)-len(kept), len(chunks))
	}
	return vectors, kept
}

// finalize marks a document terminal, logging rather than propagating
// failure since the caller is already on an error path.
func (p *IngestionPipeline) finalize(ctx context.Context, jobID string, docID int64, status domain.DocumentStatus, chunks int) {
	if err := p.documents.Finalize(ctx, docID, status, chunks); err != nil {
		logger.Warn("[%s] finalising document %d as %s: %v", jobID, docID, status, err)
	}
}
