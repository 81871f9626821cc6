package driving

import (
	"context"

	"github.com/wrenchworks/wrench-cli/internal/core/domain"
)

// StatusService reports system health.
type StatusService interface {
	// Status checks the metadata store and vector index.
	Status(ctx context.Context) (*domain.Health, error)
}
