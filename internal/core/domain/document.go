package domain

import (
	"time"
	"unicode/utf8"
)

// DocumentStatus tracks a document through ingestion.
// The transition processing -> completed|error is terminal.
type DocumentStatus string

const (
	// StatusProcessing is set when the upload is first recorded.
	StatusProcessing DocumentStatus = "processing"

	// StatusCompleted means at least one chunk was embedded and indexed.
	StatusCompleted DocumentStatus = "completed"

	// StatusError means ingestion failed: no chunks embedded, the index
	// snapshot could not be persisted, or the metadata write failed.
	StatusError DocumentStatus = "error"
)

// IsTerminal reports whether the status is a final state.
func (s DocumentStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusError
}

// Valid reports whether the status is a known value.
func (s DocumentStatus) Valid() bool {
	switch s {
	case StatusProcessing, StatusCompleted, StatusError:
		return true
	}
	return false
}

// Document represents an ingested maintenance document.
// Created when an upload starts; status and chunk count are set exactly
// once at finalisation. Documents are never deleted by the core flows.
type Document struct {
	// ID is the store-assigned identifier.
	ID int64

	// Filename is the sanitised original file name.
	Filename string

	// Status is the ingestion state.
	Status DocumentStatus

	// ChunkCount is the number of chunks that were embedded and stored.
	ChunkCount int

	// UploadedAt is when the upload was recorded.
	UploadedAt time.Time
}

// Chunk is a bounded slice of a document's text, the unit of embedding.
// Chunks exist only during ingestion; once embedded they are persisted
// implicitly as a vector metadata row.
type Chunk struct {
	// DocumentID links to the parent Document.
	DocumentID int64

	// Index is the ordinal position within the document.
	Index int

	// Text is the trimmed window content.
	Text string
}

// SnippetLength is the maximum number of bytes of chunk text stored in a
// metadata row.
const SnippetLength = 200

// VectorMetadata correlates a vector id back to its originating document
// and chunk. Exactly one row exists per successfully appended vector id;
// rows are inserted in vector id order and never updated.
type VectorMetadata struct {
	// VectorID is the index position the embedding was appended at.
	VectorID int64

	// DocumentID links to the source document.
	DocumentID int64

	// ChunkIndex is the chunk's position within the document.
	ChunkIndex int

	// Snippet is the leading text of the chunk, at most SnippetLength bytes.
	Snippet string

	// Filename is the source document's filename, populated on lookup.
	Filename string
}

// Snippet truncates chunk text to the stored snippet length. The cut
// backs up to a rune boundary so the snippet is always valid UTF-8.
func (c Chunk) Snippet() string {
	if len(c.Text) <= SnippetLength {
		return c.Text
	}
	n := SnippetLength
	for n > 0 && !utf8.RuneStart(c.Text[n]) {
		n--
	}
	return c.Text[:n]
}

// IngestReport summarises the outcome of one document ingestion.
type IngestReport struct {
	// DocumentID is the recorded document, zero if ingestion failed
	// before the document row was created.
	DocumentID int64

	// Filename is the sanitised file name.
	Filename string

	// ChunksTotal is the number of chunks the splitter produced.
	ChunksTotal int

	// ChunksStored is the number of chunks embedded and indexed.
	ChunksStored int

	// Status is the final document status.
	Status DocumentStatus
}
