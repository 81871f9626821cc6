// Package gemini provides a generation service adapter using the Gemini API.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/wrenchworks/wrench-cli/internal/core/ports/driven"
)

// Ensure GenerationService implements the interface.
var _ driven.GenerationService = (*GenerationService)(nil)

// DefaultModel is the generation model used when none is configured.
const DefaultModel = "gemini-2.5-flash"

// Config holds configuration for the Gemini generation service.
type Config struct {
	// APIKey is the Gemini API key.
	APIKey string

	// Model is the generation model to use (default: gemini-2.5-flash).
	Model string
}

// GenerationService produces completions using the Gemini API.
type GenerationService struct {
	client    *genai.Client
	model     *genai.GenerativeModel
	modelName string
}

// NewGenerationService creates a new Gemini generation service.
func NewGenerationService(ctx context.Context, cfg Config) (*GenerationService, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &GenerationService{
		client:    client,
		model:     client.GenerativeModel(cfg.Model),
		modelName: cfg.Model,
	}, nil
}

// Generate produces a completion for the prompt.
func (s *GenerationService) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("gemini generate: empty response")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return strings.TrimSpace(b.String()), nil
}

// ModelName returns the name of the model being used.
func (s *GenerationService) ModelName() string {
	return s.modelName
}

// Ping validates the service is reachable with a minimal generation.
// Gemini has no dedicated health endpoint.
func (s *GenerationService) Ping(ctx context.Context) error {
	s.model.SetMaxOutputTokens(1)
	defer func() { s.model.MaxOutputTokens = nil }()

	if _, err := s.model.GenerateContent(ctx, genai.Text("ping")); err != nil {
		return fmt.Errorf("gemini: ping failed: %w", err)
	}
	return nil
}

// Close releases the underlying client.
func (s *GenerationService) Close() error {
	return s.client.Close()
}
