package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/wrenchworks/wrench-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/wrenchworks/wrench-cli/internal/core/domain"
	"github.com/wrenchworks/wrench-cli/internal/core/ports/driven"
)

// Store is a unified SQLite-based storage that provides access to the
// document, vector metadata and history store interfaces through
// wrapper types.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a new SQLite store at the specified data directory.
// If dataDir is empty, defaults to ~/.wrench/data/wrench.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".wrench", "data")
	}

	// Ensure directory exists
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "wrench.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{
		db:   db,
		path: dbPath,
	}

	// Run migrations
	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Ping verifies the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// DocumentStore returns a DocumentStore interface backed by this store.
func (s *Store) DocumentStore() driven.DocumentStore {
	return &documentStore{store: s}
}

// VectorMetadataStore returns a VectorMetadataStore interface backed by this store.
func (s *Store) VectorMetadataStore() driven.VectorMetadataStore {
	return &vectorMetadataStore{store: s}
}

// HistoryStore returns a HistoryStore interface backed by this store.
func (s *Store) HistoryStore() driven.HistoryStore {
	return &historyStore{store: s}
}

// migrate runs all pending migrations.
func (s *Store) migrate(fsys embed.FS) error {
	// Ensure schema_migrations table exists
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("creating schema_migrations table: %w", err)
	}

	// Get current version
	var currentVersion int
	row := s.db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations")
	if err := row.Scan(&currentVersion); err != nil {
		return fmt.Errorf("getting current version: %w", err)
	}

	// Find all up migrations
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		name := entry.Name()
		if strings.HasSuffix(name, ".up.sql") {
			upFiles = append(upFiles, name)
		}
	}
	sort.Strings(upFiles)

	for _, name := range upFiles {
		// Extract version number (e.g., "001_initial.up.sql" -> 1)
		var version int
		if _, err := fmt.Sscanf(name, "%d_", &version); err != nil {
			continue // Skip files that don't match pattern
		}

		if version <= currentVersion {
			continue // Already applied
		}

		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(string(content)); err != nil {
			return fmt.Errorf("executing migration %s: %w", name, err)
		}

		if _, err := s.db.Exec(
			"INSERT INTO schema_migrations (version) VALUES (?)", version); err != nil {
			return fmt.Errorf("recording migration %s: %w", name, err)
		}
	}

	return nil
}

// ==================== Document Store ====================

// documentStore implements driven.DocumentStore.
type documentStore struct {
	store *Store
}

var _ driven.DocumentStore = (*documentStore)(nil)

// Create records a new document in processing state.
func (s *documentStore) Create(ctx context.Context, filename string) (int64, error) {
	if filename == "" {
		return 0, domain.ErrInvalidInput
	}

	res, err := s.store.db.ExecContext(ctx, `
		INSERT INTO documents (filename, status) VALUES (?, ?)
	`, filename, string(domain.StatusProcessing))
	if err != nil {
		return 0, fmt.Errorf("creating document: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading document id: %w", err)
	}
	return id, nil
}

// Finalize sets the terminal status and chunk count.
func (s *documentStore) Finalize(ctx context.Context, id int64, status domain.DocumentStatus, chunkCount int) error {
	if !status.IsTerminal() {
		return fmt.Errorf("finalising document %d: %w: status %q is not terminal",
			id, domain.ErrInvalidInput, status)
	}

	res, err := s.store.db.ExecContext(ctx, `
		UPDATE documents SET status = ?, chunk_count = ? WHERE id = ?
	`, string(status), chunkCount, id)
	if err != nil {
		return fmt.Errorf("finalising document: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking finalise result: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Get retrieves a document by id.
func (s *documentStore) Get(ctx context.Context, id int64) (*domain.Document, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT id, filename, status, chunk_count, uploaded_at
		FROM documents WHERE id = ?
	`, id)

	var doc domain.Document
	var status string
	var uploadedAt sql.NullTime
	if err := row.Scan(&doc.ID, &doc.Filename, &status, &doc.ChunkCount, &uploadedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning document: %w", err)
	}

	doc.Status = domain.DocumentStatus(status)
	if uploadedAt.Valid {
		doc.UploadedAt = uploadedAt.Time
	}
	return &doc, nil
}

// List returns all documents, newest first.
func (s *documentStore) List(ctx context.Context) ([]domain.Document, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, filename, status, chunk_count, uploaded_at
		FROM documents ORDER BY uploaded_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document //nolint:prealloc // size unknown from query
	for rows.Next() {
		var doc domain.Document
		var status string
		var uploadedAt sql.NullTime
		if err := rows.Scan(&doc.ID, &doc.Filename, &status, &doc.ChunkCount, &uploadedAt); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		doc.Status = domain.DocumentStatus(status)
		if uploadedAt.Valid {
			doc.UploadedAt = uploadedAt.Time
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return docs, nil
}

// ==================== Vector Metadata Store ====================

// vectorMetadataStore implements driven.VectorMetadataStore.
type vectorMetadataStore struct {
	store *Store
}

var _ driven.VectorMetadataStore = (*vectorMetadataStore)(nil)

// Insert writes one row per vector id within a single transaction, in
// batch order so insertion order matches vector id order.
func (s *vectorMetadataStore) Insert(ctx context.Context, rows []domain.VectorMetadata) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO vector_metadata (vector_id, doc_id, chunk_index, text_snippet)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		if _, err := stmt.ExecContext(ctx,
			row.VectorID, row.DocumentID, row.ChunkIndex, row.Snippet); err != nil {
			return fmt.Errorf("inserting metadata for vector %d: %w", row.VectorID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Lookup returns rows for the given vector ids with filenames joined in.
func (s *vectorMetadataStore) Lookup(ctx context.Context, vectorIDs []int64) ([]domain.VectorMetadata, error) {
	if len(vectorIDs) == 0 {
		return nil, nil
	}

	placeholders := strings.Repeat("?,", len(vectorIDs))
	placeholders = placeholders[:len(placeholders)-1]

	args := make([]any, len(vectorIDs))
	for i, id := range vectorIDs {
		args[i] = id
	}

	//nolint:gosec // placeholders is built from "?" only
	query := fmt.Sprintf(`
		SELECT vm.vector_id, vm.doc_id, vm.chunk_index, vm.text_snippet, COALESCE(d.filename, '')
		FROM vector_metadata vm
		LEFT JOIN documents d ON vm.doc_id = d.id
		WHERE vm.vector_id IN (%s)
	`, placeholders)

	rows, err := s.store.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying vector metadata: %w", err)
	}
	defer rows.Close()

	return scanMetadataRows(rows)
}

// All returns every row ordered by vector id, for full index rebuild.
func (s *vectorMetadataStore) All(ctx context.Context) ([]domain.VectorMetadata, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT vm.vector_id, vm.doc_id, vm.chunk_index, vm.text_snippet, COALESCE(d.filename, '')
		FROM vector_metadata vm
		LEFT JOIN documents d ON vm.doc_id = d.id
		ORDER BY vm.vector_id
	`)
	if err != nil {
		return nil, fmt.Errorf("querying vector metadata: %w", err)
	}
	defer rows.Close()

	return scanMetadataRows(rows)
}

// MarkOrphaned tombstones vector ids left without metadata rows.
func (s *vectorMetadataStore) MarkOrphaned(ctx context.Context, vectorIDs []int64, reason string) error {
	if len(vectorIDs) == 0 {
		return nil
	}

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO orphaned_vectors (vector_id, reason) VALUES (?, ?)
		ON CONFLICT(vector_id) DO UPDATE SET reason = excluded.reason
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, id := range vectorIDs {
		if _, err := stmt.ExecContext(ctx, id, reason); err != nil {
			return fmt.Errorf("marking vector %d orphaned: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Orphaned returns all tombstoned vector ids, for reconciliation tooling.
func (s *vectorMetadataStore) Orphaned(ctx context.Context) ([]int64, error) {
	rows, err := s.store.db.QueryContext(ctx,
		"SELECT vector_id FROM orphaned_vectors ORDER BY vector_id")
	if err != nil {
		return nil, fmt.Errorf("querying orphaned vectors: %w", err)
	}
	defer rows.Close()

	var ids []int64 //nolint:prealloc // size unknown from query
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning orphaned vector: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating orphaned vectors: %w", err)
	}
	return ids, nil
}

// scanMetadataRows scans multiple metadata rows.
func scanMetadataRows(rows *sql.Rows) ([]domain.VectorMetadata, error) {
	var result []domain.VectorMetadata //nolint:prealloc // size unknown from query
	for rows.Next() {
		var m domain.VectorMetadata
		if err := rows.Scan(&m.VectorID, &m.DocumentID, &m.ChunkIndex, &m.Snippet, &m.Filename); err != nil {
			return nil, fmt.Errorf("scanning vector metadata: %w", err)
		}
		result = append(result, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating vector metadata: %w", err)
	}
	return result, nil
}

// ==================== History Store ====================

// historyStore implements driven.HistoryStore.
type historyStore struct {
	store *Store
}

var _ driven.HistoryStore = (*historyStore)(nil)

// Append records a query/answer exchange.
func (s *historyStore) Append(ctx context.Context, entry *domain.HistoryEntry) error {
	if entry == nil || entry.Query == "" {
		return domain.ErrInvalidInput
	}

	sourcesJSON, err := json.Marshal(entry.Sources)
	if err != nil {
		return fmt.Errorf("marshalling sources: %w", err)
	}

	res, err := s.store.db.ExecContext(ctx, `
		INSERT INTO history (query, answer, sources_json, used_documents)
		VALUES (?, ?, ?, ?)
	`, entry.Query, entry.Answer, string(sourcesJSON), entry.UsedDocuments)
	if err != nil {
		return fmt.Errorf("appending history: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("reading history id: %w", err)
	}
	entry.ID = id

	row := s.store.db.QueryRowContext(ctx,
		"SELECT created_at FROM history WHERE id = ?", id)
	var createdAt sql.NullTime
	if err := row.Scan(&createdAt); err == nil && createdAt.Valid {
		entry.CreatedAt = createdAt.Time
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *historyStore) Recent(ctx context.Context, limit int) ([]domain.HistoryEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, query, answer, sources_json, used_documents, created_at
		FROM history ORDER BY created_at DESC, id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []domain.HistoryEntry //nolint:prealloc // size unknown from query
	for rows.Next() {
		var entry domain.HistoryEntry
		var sourcesJSON sql.NullString
		var createdAt sql.NullTime
		if err := rows.Scan(&entry.ID, &entry.Query, &entry.Answer,
			&sourcesJSON, &entry.UsedDocuments, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning history entry: %w", err)
		}

		if sourcesJSON.Valid && sourcesJSON.String != "" {
			// Malformed provenance is not fatal to listing history.
			if err := json.Unmarshal([]byte(sourcesJSON.String), &entry.Sources); err != nil {
				entry.Sources = nil
			}
		}
		if createdAt.Valid {
			entry.CreatedAt = createdAt.Time
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}
	return entries, nil
}

// Delete removes a single entry, reporting whether it existed.
func (s *historyStore) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := s.store.db.ExecContext(ctx, "DELETE FROM history WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("deleting history entry: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking delete result: %w", err)
	}
	return affected > 0, nil
}

// Clear removes all entries.
func (s *historyStore) Clear(ctx context.Context) error {
	if _, err := s.store.db.ExecContext(ctx, "DELETE FROM history"); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}
