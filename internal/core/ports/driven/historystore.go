package driven

import (
	"context"

	"github.com/wrenchworks/wrench-cli/internal/core/domain"
)

// HistoryStore persists the append-only query/answer log.
type HistoryStore interface {
	// Append records an exchange and fills in the entry's id and
	// creation time.
	Append(ctx context.Context, entry *domain.HistoryEntry) error

	// Recent returns up to limit entries, newest first.
	Recent(ctx context.Context, limit int) ([]domain.HistoryEntry, error)

	// Delete removes a single entry. It returns false when no entry
	// with that id exists.
	Delete(ctx context.Context, id int64) (bool, error)

	// Clear removes all entries.
	Clear(ctx context.Context) error
}
