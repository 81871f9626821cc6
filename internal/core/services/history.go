package services

import (
	"context"

	"github.com/wrenchworks/wrench-cli/internal/core/domain"
	"github.com/wrenchworks/wrench-cli/internal/core/ports/driven"
	"github.com/wrenchworks/wrench-cli/internal/core/ports/driving"
)

// Ensure HistoryService implements the interface.
var _ driving.HistoryService = (*HistoryService)(nil)

// DefaultHistoryLimit caps a Recent listing when no limit is given.
const DefaultHistoryLimit = 20

// HistoryService exposes the query/answer log.
type HistoryService struct {
	store driven.HistoryStore
}

// NewHistoryService creates a history service.
func NewHistoryService(store driven.HistoryStore) *HistoryService {
	return &HistoryService{store: store}
}

// Recent returns up to limit entries, newest first.
func (s *HistoryService) Recent(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return s.store.Recent(ctx, limit)
}

// Delete removes one entry; false when the id does not exist.
func (s *HistoryService) Delete(ctx context.Context, id int64) (bool, error) {
	return s.store.Delete(ctx, id)
}

// Clear removes all entries.
func (s *HistoryService) Clear(ctx context.Context) error {
	return s.store.Clear(ctx)
}
