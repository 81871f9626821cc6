package driving

import (
	"context"

	"github.com/wrenchworks/wrench-cli/internal/core/domain"
)

// IngestService runs the document ingestion pipeline.
type IngestService interface {
	// Ingest processes one file end to end: extract, chunk, embed,
	// index, correlate and finalise. The report describes the aggregate
	// outcome (chunks attempted vs stored).
	Ingest(ctx context.Context, path string) (*domain.IngestReport, error)
}
