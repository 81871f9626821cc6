package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrenchworks/wrench-cli/internal/core/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestNewStore_RunsMigrations(t *testing.T) {
	store := newTestStore(t)

	// Migrations are idempotent across reopens of the same directory.
	require.NoError(t, store.Ping(context.Background()))

	again, err := NewStore(filepath.Dir(store.Path()))
	require.NoError(t, err)
	defer again.Close()
	require.NoError(t, again.Ping(context.Background()))
}

func TestDocumentStore_CreateAndGet(t *testing.T) {
	store := newTestStore(t)
	docs := store.DocumentStore()
	ctx := context.Background()

	id, err := docs.Create(ctx, "pump-manual.pdf")
	require.NoError(t, err)
	require.Positive(t, id)

	doc, err := docs.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "pump-manual.pdf", doc.Filename)
	assert.Equal(t, domain.StatusProcessing, doc.Status)
	assert.Zero(t, doc.ChunkCount)
	assert.False(t, doc.UploadedAt.IsZero())
}

func TestDocumentStore_CreateEmptyFilename(t *testing.T) {
	store := newTestStore(t)

	_, err := store.DocumentStore().Create(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDocumentStore_Finalize(t *testing.T) {
	store := newTestStore(t)
	docs := store.DocumentStore()
	ctx := context.Background()

	id, err := docs.Create(ctx, "manual.txt")
	require.NoError(t, err)

	require.NoError(t, docs.Finalize(ctx, id, domain.StatusCompleted, 7))

	doc, err := docs.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, doc.Status)
	assert.Equal(t, 7, doc.ChunkCount)
}

func TestDocumentStore_FinalizeNonTerminalStatus(t *testing.T) {
	store := newTestStore(t)
	docs := store.DocumentStore()
	ctx := context.Background()

	id, err := docs.Create(ctx, "manual.txt")
	require.NoError(t, err)

	err = docs.Finalize(ctx, id, domain.StatusProcessing, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDocumentStore_FinalizeUnknownID(t *testing.T) {
	store := newTestStore(t)

	err := store.DocumentStore().Finalize(context.Background(), 999, domain.StatusError, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_GetNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.DocumentStore().Get(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDocumentStore_ListNewestFirst(t *testing.T) {
	store := newTestStore(t)
	docs := store.DocumentStore()
	ctx := context.Background()

	first, err := docs.Create(ctx, "a.txt")
	require.NoError(t, err)
	second, err := docs.Create(ctx, "b.txt")
	require.NoError(t, err)

	list, err := docs.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second, list[0].ID)
	assert.Equal(t, first, list[1].ID)
}

func TestVectorMetadataStore_InsertAndLookup(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	docID, err := store.DocumentStore().Create(ctx, "compressor.docx")
	require.NoError(t, err)

	meta := store.VectorMetadataStore()
	require.NoError(t, meta.Insert(ctx, []domain.VectorMetadata{
		{VectorID: 0, DocumentID: docID, ChunkIndex: 0, Snippet: "check oil level"},
		{VectorID: 1, DocumentID: docID, ChunkIndex: 1, Snippet: "replace air filter"},
	}))

	rows, err := meta.Lookup(ctx, []int64{1})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1), rows[0].VectorID)
	assert.Equal(t, docID, rows[0].DocumentID)
	assert.Equal(t, 1, rows[0].ChunkIndex)
	assert.Equal(t, "replace air filter", rows[0].Snippet)
	assert.Equal(t, "compressor.docx", rows[0].Filename)
}

func TestVectorMetadataStore_LookupMissingIDsAbsent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	docID, err := store.DocumentStore().Create(ctx, "boiler.txt")
	require.NoError(t, err)

	meta := store.VectorMetadataStore()
	require.NoError(t, meta.Insert(ctx, []domain.VectorMetadata{
		{VectorID: 3, DocumentID: docID, ChunkIndex: 0, Snippet: "bleed the radiator"},
	}))

	rows, err := meta.Lookup(ctx, []int64{3, 99})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(3), rows[0].VectorID)
}

func TestVectorMetadataStore_AllOrderedByVectorID(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	docID, err := store.DocumentStore().Create(ctx, "hvac.txt")
	require.NoError(t, err)

	meta := store.VectorMetadataStore()
	require.NoError(t, meta.Insert(ctx, []domain.VectorMetadata{
		{VectorID: 2, DocumentID: docID, ChunkIndex: 2, Snippet: "c"},
		{VectorID: 0, DocumentID: docID, ChunkIndex: 0, Snippet: "a"},
		{VectorID: 1, DocumentID: docID, ChunkIndex: 1, Snippet: "b"},
	}))

	rows, err := meta.All(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for i, row := range rows {
		assert.Equal(t, int64(i), row.VectorID)
	}
}

func TestVectorMetadataStore_InsertEmptyIsNoop(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.VectorMetadataStore().Insert(context.Background(), nil))
}

func TestVectorMetadataStore_DuplicateVectorIDFails(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	docID, err := store.DocumentStore().Create(ctx, "dup.txt")
	require.NoError(t, err)

	meta := store.VectorMetadataStore()
	require.NoError(t, meta.Insert(ctx, []domain.VectorMetadata{
		{VectorID: 0, DocumentID: docID, Snippet: "x"},
	}))

	err = meta.Insert(ctx, []domain.VectorMetadata{
		{VectorID: 0, DocumentID: docID, Snippet: "y"},
	})
	assert.Error(t, err)

	// Failed batch rolled back entirely.
	rows, lookupErr := meta.Lookup(ctx, []int64{0})
	require.NoError(t, lookupErr)
	require.Len(t, rows, 1)
	assert.Equal(t, "x", rows[0].Snippet)
}

func TestVectorMetadataStore_MarkOrphaned(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	meta := store.VectorMetadataStore()
	require.NoError(t, meta.MarkOrphaned(ctx, []int64{5, 6, 7}, "metadata write failed"))
	// Re-marking the same ids updates the reason instead of failing.
	require.NoError(t, meta.MarkOrphaned(ctx, []int64{6}, "retry failed"))

	concrete, ok := meta.(*vectorMetadataStore)
	require.True(t, ok)
	ids, err := concrete.Orphaned(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 6, 7}, ids)
}

func TestHistoryStore_AppendAndRecent(t *testing.T) {
	store := newTestStore(t)
	hist := store.HistoryStore()
	ctx := context.Background()

	entry := &domain.HistoryEntry{
		Query:  "how do I descale the boiler?",
		Answer: "Flush with descaling solution.",
		Sources: []domain.Source{
			{Doc: "boiler.txt", Excerpt: "descale annually"},
		},
		UsedDocuments: true,
	}
	require.NoError(t, hist.Append(ctx, entry))
	assert.Positive(t, entry.ID)
	assert.False(t, entry.CreatedAt.IsZero())

	entries, err := hist.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry.Query, entries[0].Query)
	assert.Equal(t, entry.Answer, entries[0].Answer)
	assert.True(t, entries[0].UsedDocuments)
	require.Len(t, entries[0].Sources, 1)
	assert.Equal(t, "boiler.txt", entries[0].Sources[0].Doc)
}

func TestHistoryStore_AppendInvalid(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	assert.ErrorIs(t, store.HistoryStore().Append(ctx, nil), domain.ErrInvalidInput)
	assert.ErrorIs(t, store.HistoryStore().Append(ctx, &domain.HistoryEntry{}), domain.ErrInvalidInput)
}

func TestHistoryStore_RecentNewestFirstWithLimit(t *testing.T) {
	store := newTestStore(t)
	hist := store.HistoryStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, hist.Append(ctx, &domain.HistoryEntry{
			Query:  "q",
			Answer: "a",
		}))
	}

	entries, err := hist.Recent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Greater(t, entries[0].ID, entries[1].ID)
	assert.Greater(t, entries[1].ID, entries[2].ID)
}

func TestHistoryStore_Delete(t *testing.T) {
	store := newTestStore(t)
	hist := store.HistoryStore()
	ctx := context.Background()

	entry := &domain.HistoryEntry{Query: "q", Answer: "a"}
	require.NoError(t, hist.Append(ctx, entry))

	deleted, err := hist.Delete(ctx, entry.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = hist.Delete(ctx, entry.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestHistoryStore_Clear(t *testing.T) {
	store := newTestStore(t)
	hist := store.HistoryStore()
	ctx := context.Background()

	require.NoError(t, hist.Append(ctx, &domain.HistoryEntry{Query: "q", Answer: "a"}))
	require.NoError(t, hist.Append(ctx, &domain.HistoryEntry{Query: "q2", Answer: "a2"}))

	require.NoError(t, hist.Clear(ctx))

	entries, err := hist.Recent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
