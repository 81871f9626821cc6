package cli

import (
	"context"
	"time"

	"github.com/wrenchworks/wrench-cli/internal/core/domain"
)

// fakeChatService returns a canned answer.
type fakeChatService struct {
	answer *domain.Answer
	err    error
}

func (f *fakeChatService) Ask(_ context.Context, _ string) (*domain.Answer, error) {
	return f.answer, f.err
}

// fakeHistoryService serves a fixed entry list.
type fakeHistoryService struct {
	entries []domain.HistoryEntry
	cleared bool
}

func (f *fakeHistoryService) Recent(_ context.Context, limit int) ([]domain.HistoryEntry, error) {
	if limit > len(f.entries) {
		limit = len(f.entries)
	}
	return f.entries[:limit], nil
}

func (f *fakeHistoryService) Delete(_ context.Context, id int64) (bool, error) {
	for i, e := range f.entries {
		if e.ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeHistoryService) Clear(_ context.Context) error {
	f.entries = nil
	f.cleared = true
	return nil
}

// fakeDocumentService serves a fixed document list.
type fakeDocumentService struct {
	docs []domain.Document
}

func (f *fakeDocumentService) List(_ context.Context) ([]domain.Document, error) {
	return f.docs, nil
}

// fakeStatusService returns a canned health report.
type fakeStatusService struct {
	health *domain.Health
}

func (f *fakeStatusService) Status(_ context.Context) (*domain.Health, error) {
	return f.health, nil
}

// fakeIngestService returns a canned report.
type fakeIngestService struct {
	report *domain.IngestReport
	err    error
	paths  []string
}

func (f *fakeIngestService) Ingest(_ context.Context, path string) (*domain.IngestReport, error) {
	f.paths = append(f.paths, path)
	return f.report, f.err
}

// setupTestServices installs fakes for all services and returns a
// cleanup function restoring the previous state.
func setupTestServices() func() {
	prevChat := chatService
	prevHistory := historyService
	prevDocument := documentService
	prevStatus := statusService
	prevIngest := ingestService

	chatService = &fakeChatService{
		answer: &domain.Answer{
			Text: "Tighten the packing gland.",
			Sources: []domain.Source{
				{Doc: "pumps.txt", Excerpt: "packing gland torque"},
			},
			UsedDocuments: true,
		},
	}
	historyService = &fakeHistoryService{
		entries: []domain.HistoryEntry{
			{
				ID:        1,
				Query:     "why does the seal leak?",
				Answer:    "Worn packing.",
				Sources:   []domain.Source{{Doc: "pumps.txt"}},
				CreatedAt: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
			},
		},
	}
	documentService = &fakeDocumentService{
		docs: []domain.Document{
			{
				ID:         1,
				Filename:   "pumps.txt",
				Status:     domain.StatusCompleted,
				ChunkCount: 12,
				UploadedAt: time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
			},
		},
	}
	statusService = &fakeStatusService{
		health: &domain.Health{
			OK:      true,
			DB:      "ok",
			Index:   domain.IndexOK,
			Vectors: 12,
		},
	}
	ingestService = &fakeIngestService{
		report: &domain.IngestReport{
			DocumentID:   1,
			Filename:     "pumps.txt",
			ChunksTotal:  12,
			ChunksStored: 12,
			Status:       domain.StatusCompleted,
		},
	}

	return func() {
		chatService = prevChat
		historyService = prevHistory
		documentService = prevDocument
		statusService = prevStatus
		ingestService = prevIngest
	}
}
