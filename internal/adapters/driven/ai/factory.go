// Package ai provides factory functions for creating AI service adapters.
package ai

import (
	"context"
	"fmt"
	"time"

	geminiembed "github.com/wrenchworks/wrench-cli/internal/adapters/driven/embedding/gemini"
	ollamaembed "github.com/wrenchworks/wrench-cli/internal/adapters/driven/embedding/ollama"
	geminillm "github.com/wrenchworks/wrench-cli/internal/adapters/driven/llm/gemini"
	ollamallm "github.com/wrenchworks/wrench-cli/internal/adapters/driven/llm/ollama"
	"github.com/wrenchworks/wrench-cli/internal/core/domain"
	"github.com/wrenchworks/wrench-cli/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateEmbeddingService creates the embedding service for the configured
// provider. Dimensions follow the index settings.
func CreateEmbeddingService(ctx context.Context, settings domain.AISettings, dimensions int) (driven.EmbeddingService, error) {
	if !settings.IsConfigured() {
		return nil, fmt.Errorf("%w: provider %q not configured",
			domain.ErrEmbeddingUnavailable, settings.Provider)
	}

	switch settings.Provider {
	case domain.AIProviderGemini:
		return geminiembed.NewEmbeddingService(ctx, geminiembed.Config{
			APIKey:     settings.APIKey,
			Model:      settings.EmbeddingModel,
			Dimensions: dimensions,
		})

	case domain.AIProviderOllama:
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL:    settings.BaseURL,
			Model:      settings.EmbeddingModel,
			Dimensions: dimensions,
		}), nil

	default:
		return nil, fmt.Errorf("unsupported embedding provider: %s", settings.Provider)
	}
}

// CreateGenerationService creates the generation service for the
// configured provider.
func CreateGenerationService(ctx context.Context, settings domain.AISettings) (driven.GenerationService, error) {
	if !settings.IsConfigured() {
		return nil, fmt.Errorf("%w: provider %q not configured",
			domain.ErrGenerationUnavailable, settings.Provider)
	}

	switch settings.Provider {
	case domain.AIProviderGemini:
		return geminillm.NewGenerationService(ctx, geminillm.Config{
			APIKey: settings.APIKey,
			Model:  settings.GenerationModel,
		})

	case domain.AIProviderOllama:
		return ollamallm.NewGenerationService(ollamallm.Config{
			BaseURL: settings.BaseURL,
			Model:   settings.GenerationModel,
		}), nil

	default:
		return nil, fmt.Errorf("unsupported generation provider: %s", settings.Provider)
	}
}

// CreateAndValidateEmbeddingService creates an embedding service and
// validates connectivity with a bounded ping.
func CreateAndValidateEmbeddingService(ctx context.Context, settings domain.AISettings, dimensions int) (driven.EmbeddingService, error) {
	svc, err := CreateEmbeddingService(ctx, settings, dimensions)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := svc.Ping(pingCtx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w)",
			domain.ErrEmbeddingUnavailable, err)
	}
	return svc, nil
}

// CreateAndValidateGenerationService creates a generation service and
// validates connectivity with a bounded ping.
func CreateAndValidateGenerationService(ctx context.Context, settings domain.AISettings) (driven.GenerationService, error) {
	svc, err := CreateGenerationService(ctx, settings)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := svc.Ping(pingCtx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: service unreachable (%w)",
			domain.ErrGenerationUnavailable, err)
	}
	return svc, nil
}
