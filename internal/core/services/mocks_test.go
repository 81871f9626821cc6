package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/wrenchworks/wrench-cli/internal/core/domain"
	"github.com/wrenchworks/wrench-cli/internal/core/ports/driven"
)

// mockExtractor returns fixed text per path.
type mockExtractor struct {
	text string
	err  error
}

func (m *mockExtractor) Extract(_ context.Context, _ string) (string, error) {
	return m.text, m.err
}

// mockEmbedder embeds each text to a fixed-dimension vector; texts in
// failOn produce errors.
type mockEmbedder struct {
	dims   int
	failOn map[string]bool

	mu      sync.Mutex
	queries []string
}

func newMockEmbedder(dims int) *mockEmbedder {
	return &mockEmbedder{dims: dims, failOn: map[string]bool{}}
}

func (m *mockEmbedder) EmbedDocument(_ context.Context, text string) ([]float32, error) {
	if m.failOn[text] {
		return nil, errors.New("embedding failed")
	}
	return make([]float32, m.dims), nil
}

func (m *mockEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	m.mu.Lock()
	m.queries = append(m.queries, text)
	m.mu.Unlock()
	if m.failOn[text] {
		return nil, errors.New("embedding failed")
	}
	return make([]float32, m.dims), nil
}

func (m *mockEmbedder) Dimensions() int              { return m.dims }
func (m *mockEmbedder) ModelName() string            { return "mock-embed" }
func (m *mockEmbedder) Ping(_ context.Context) error { return nil }
func (m *mockEmbedder) Close() error                 { return nil }

// mockIndex is an in-memory VectorIndex without persistence.
type mockIndex struct {
	mu        sync.Mutex
	vectors   [][]float32
	hits      []driven.VectorHit
	appendErr error
	searchErr error
}

func (m *mockIndex) Append(_ context.Context, vectors [][]float32) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.appendErr != nil {
		return 0, m.appendErr
	}
	start := int64(len(m.vectors))
	m.vectors = append(m.vectors, vectors...)
	return start, nil
}

func (m *mockIndex) Search(_ context.Context, _ []float32, k int) ([]driven.VectorHit, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if k > len(m.hits) {
		k = len(m.hits)
	}
	return m.hits[:k], nil
}

func (m *mockIndex) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.vectors)
}

func (m *mockIndex) Health() domain.IndexHealth {
	if m.Count() == 0 {
		return domain.IndexNotReady
	}
	return domain.IndexOK
}

func (m *mockIndex) Close() error { return nil }

// mockDocStore records documents in memory.
type mockDocStore struct {
	mu          sync.Mutex
	docs        map[int64]*domain.Document
	nextID      int64
	createErr   error
	finalizeErr error
}

func newMockDocStore() *mockDocStore {
	return &mockDocStore{docs: map[int64]*domain.Document{}}
}

func (m *mockDocStore) Create(_ context.Context, filename string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return 0, m.createErr
	}
	m.nextID++
	m.docs[m.nextID] = &domain.Document{
		ID:       m.nextID,
		Filename: filename,
		Status:   domain.StatusProcessing,
	}
	return m.nextID, nil
}

func (m *mockDocStore) Finalize(_ context.Context, id int64, status domain.DocumentStatus, chunks int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.finalizeErr != nil {
		return m.finalizeErr
	}
	doc, ok := m.docs[id]
	if !ok {
		return domain.ErrNotFound
	}
	doc.Status = status
	doc.ChunkCount = chunks
	return nil
}

func (m *mockDocStore) Get(_ context.Context, id int64) (*domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *doc
	return &copied, nil
}

func (m *mockDocStore) List(_ context.Context) ([]domain.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var docs []domain.Document
	for i := m.nextID; i >= 1; i-- {
		if doc, ok := m.docs[i]; ok {
			docs = append(docs, *doc)
		}
	}
	return docs, nil
}

// mockMetaStore records metadata rows and tombstones in memory.
type mockMetaStore struct {
	mu        sync.Mutex
	rows      map[int64]domain.VectorMetadata
	orphaned  []int64
	insertErr error
}

func newMockMetaStore() *mockMetaStore {
	return &mockMetaStore{rows: map[int64]domain.VectorMetadata{}}
}

func (m *mockMetaStore) Insert(_ context.Context, rows []domain.VectorMetadata) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	for _, row := range rows {
		if _, exists := m.rows[row.VectorID]; exists {
			return fmt.Errorf("duplicate vector id %d", row.VectorID)
		}
		m.rows[row.VectorID] = row
	}
	return nil
}

func (m *mockMetaStore) Lookup(_ context.Context, ids []int64) ([]domain.VectorMetadata, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []domain.VectorMetadata
	for _, id := range ids {
		if row, ok := m.rows[id]; ok {
			result = append(result, row)
		}
	}
	return result, nil
}

func (m *mockMetaStore) All(_ context.Context) ([]domain.VectorMetadata, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []domain.VectorMetadata
	for id := int64(0); id < int64(len(m.rows))+16; id++ {
		if row, ok := m.rows[id]; ok {
			result = append(result, row)
		}
	}
	return result, nil
}

func (m *mockMetaStore) MarkOrphaned(_ context.Context, ids []int64, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orphaned = append(m.orphaned, ids...)
	return nil
}

// mockGenerator returns a fixed completion.
type mockGenerator struct {
	answer  string
	err     error
	prompts []string
}

func (m *mockGenerator) Generate(_ context.Context, prompt string) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	return m.answer, nil
}

func (m *mockGenerator) ModelName() string            { return "mock-gen" }
func (m *mockGenerator) Ping(_ context.Context) error { return nil }
func (m *mockGenerator) Close() error                 { return nil }

// mockHistoryStore records entries in memory.
type mockHistoryStore struct {
	mu        sync.Mutex
	entries   []domain.HistoryEntry
	appendErr error
}

func (m *mockHistoryStore) Append(_ context.Context, entry *domain.HistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.appendErr != nil {
		return m.appendErr
	}
	entry.ID = int64(len(m.entries) + 1)
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockHistoryStore) Recent(_ context.Context, limit int) ([]domain.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []domain.HistoryEntry
	for i := len(m.entries) - 1; i >= 0 && len(result) < limit; i-- {
		result = append(result, m.entries[i])
	}
	return result, nil
}

func (m *mockHistoryStore) Delete(_ context.Context, id int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, e := range m.entries {
		if e.ID == id {
			m.entries = append(m.entries[:i], m.entries[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *mockHistoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = nil
	return nil
}
