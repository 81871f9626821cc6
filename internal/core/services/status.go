package services

import (
	"context"
	"time"

	"github.com/wrenchworks/wrench-cli/internal/core/domain"
	"github.com/wrenchworks/wrench-cli/internal/core/ports/driven"
	"github.com/wrenchworks/wrench-cli/internal/core/ports/driving"
)

// Ensure StatusService implements the interface.
var _ driving.StatusService = (*StatusService)(nil)

// Pinger is the connectivity probe satisfied by the SQLite store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// StatusService reports system health.
type StatusService struct {
	db    Pinger
	index driven.VectorIndex
}

// NewStatusService creates a status service.
func NewStatusService(db Pinger, index driven.VectorIndex) *StatusService {
	return &StatusService{db: db, index: index}
}

// Status checks the metadata store and vector index. An empty index is
// healthy; only a failed snapshot load or an unreachable store degrades
// the aggregate verdict.
func (s *StatusService) Status(ctx context.Context) (*domain.Health, error) {
	health := &domain.Health{
		DB:        "ok",
		Index:     s.index.Health(),
		Vectors:   s.index.Count(),
		CheckedAt: time.Now().UTC(),
	}

	if err := s.db.Ping(ctx); err != nil {
		health.DB = "error"
	}

	health.OK = health.DB == "ok" && health.Index != domain.IndexError
	return health, nil
}
