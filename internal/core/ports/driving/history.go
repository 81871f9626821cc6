package driving

import (
	"context"

	"github.com/wrenchworks/wrench-cli/internal/core/domain"
)

// HistoryService exposes the query/answer log.
type HistoryService interface {
	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]domain.HistoryEntry, error)

	// Delete removes one entry; false when the id does not exist.
	Delete(ctx context.Context, id int64) (bool, error)

	// Clear removes all entries.
	Clear(ctx context.Context) error
}
