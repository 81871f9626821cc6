// Package gemini provides an embedding service adapter using the Gemini API.
package gemini

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/wrenchworks/wrench-cli/internal/core/ports/driven"
)

// Ensure EmbeddingService implements the interface.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Default configuration values.
const (
	DefaultModel      = "text-embedding-004"
	DefaultDimensions = 768 // text-embedding-004 default
)

// Config holds configuration for the Gemini embedding service.
type Config struct {
	// APIKey is the Gemini API key.
	APIKey string

	// Model is the embedding model to use (default: text-embedding-004).
	Model string

	// Dimensions is the embedding vector size (model-dependent).
	Dimensions int
}

// EmbeddingService generates embeddings using the Gemini API.
// Two model handles are configured at construction, one per task type,
// so calls never mutate shared state and are safe for concurrent use.
type EmbeddingService struct {
	client     *genai.Client
	docModel   *genai.EmbeddingModel
	queryModel *genai.EmbeddingModel
	modelName  string
	dimensions int
}

// NewEmbeddingService creates a new Gemini embedding service.
func NewEmbeddingService(ctx context.Context, cfg Config) (*EmbeddingService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Dimensions == 0 {
		cfg.Dimensions = DefaultDimensions
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	docModel := client.EmbeddingModel(cfg.Model)
	docModel.TaskType = genai.TaskTypeRetrievalDocument

	queryModel := client.EmbeddingModel(cfg.Model)
	queryModel.TaskType = genai.TaskTypeRetrievalQuery

	return &EmbeddingService{
		client:     client,
		docModel:   docModel,
		queryModel: queryModel,
		modelName:  cfg.Model,
		dimensions: cfg.Dimensions,
	}, nil
}

// EmbedDocument generates an embedding for document content.
func (s *EmbeddingService) EmbedDocument(ctx context.Context, text string) ([]float32, error) {
	return s.embed(ctx, s.docModel, text)
}

// EmbedQuery generates an embedding for a search query.
func (s *EmbeddingService) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return s.embed(ctx, s.queryModel, text)
}

func (s *EmbeddingService) embed(ctx context.Context, model *genai.EmbeddingModel, text string) ([]float32, error) {
	resp, err := model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, fmt.Errorf("gemini embed: %w", err)
	}
	if resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		return nil, fmt.Errorf("gemini embed: empty embedding response")
	}

	values := resp.Embedding.Values
	if len(values) != s.dimensions {
		return nil, fmt.Errorf("gemini embed: got %d dimensions, expected %d",
			len(values), s.dimensions)
	}
	return values, nil
}

// Dimensions returns the embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.dimensions
}

// ModelName returns the name of the embedding model being used.
func (s *EmbeddingService) ModelName() string {
	return s.modelName
}

// Ping validates the service is reachable by embedding a trivial input.
// Gemini has no dedicated health endpoint.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	if _, err := s.EmbedQuery(ctx, "ping"); err != nil {
		return fmt.Errorf("gemini: ping failed: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (s *EmbeddingService) Close() error {
	return s.client.Close()
}
