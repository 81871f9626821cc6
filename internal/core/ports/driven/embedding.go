package driven

import "context"

// EmbeddingService generates fixed-dimension vector embeddings from text.
//
// Document and query embeddings are requested separately because hosted
// models accept a task type hint (retrieval_document vs retrieval_query)
// that changes the produced vector.
//
// Implementations may include:
//   - Gemini (text-embedding-004)
//   - Ollama (nomic-embed-text)
type EmbeddingService interface {
	// EmbedDocument generates an embedding for document content.
	EmbedDocument(ctx context.Context, text string) ([]float32, error)

	// EmbedQuery generates an embedding for a search query.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding vector size.
	// It must match the vector index configuration; a mismatch is a
	// configuration error, not a retriable one.
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
