package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFileType indicates a file extension outside the
	// accepted set (.txt, .pdf, .docx).
	ErrUnsupportedFileType = errors.New("unsupported file type")

	// ErrFileTooLarge indicates an upload exceeding the size cap.
	ErrFileTooLarge = errors.New("file too large")

	// ErrEmptyDocument indicates extraction produced no chunkable text.
	ErrEmptyDocument = errors.New("no text could be extracted")

	// ErrInvalidChunking indicates a degenerate chunker configuration,
	// such as an overlap that equals or exceeds the chunk size.
	ErrInvalidChunking = errors.New("invalid chunking configuration")

	// ErrDimensionMismatch indicates an embedding whose length does not
	// match the index dimension. This is a configuration error, not a
	// retriable one.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrGenerationUnavailable indicates the generation service is not configured.
	ErrGenerationUnavailable = errors.New("generation service unavailable")

	// ErrIndexCorrupt indicates the persisted index snapshot could not be decoded.
	ErrIndexCorrupt = errors.New("index snapshot corrupt")
)
