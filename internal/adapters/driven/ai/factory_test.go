package ai

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrenchworks/wrench-cli/internal/core/domain"
)

func TestCreateEmbeddingService_Ollama(t *testing.T) {
	svc, err := CreateEmbeddingService(context.Background(), domain.AISettings{
		Provider:       domain.AIProviderOllama,
		EmbeddingModel: "nomic-embed-text",
	}, 768)
	require.NoError(t, err)
	defer svc.Close()

	assert.Equal(t, "nomic-embed-text", svc.ModelName())
	assert.Equal(t, 768, svc.Dimensions())
}

func TestCreateEmbeddingService_GeminiWithoutKey(t *testing.T) {
	_, err := CreateEmbeddingService(context.Background(), domain.AISettings{
		Provider: domain.AIProviderGemini,
	}, 768)
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
}

func TestCreateEmbeddingService_UnknownProvider(t *testing.T) {
	_, err := CreateEmbeddingService(context.Background(), domain.AISettings{
		Provider: "openai",
	}, 768)
	assert.ErrorIs(t, err, domain.ErrEmbeddingUnavailable)
}

func TestCreateGenerationService_Ollama(t *testing.T) {
	svc, err := CreateGenerationService(context.Background(), domain.AISettings{
		Provider:        domain.AIProviderOllama,
		GenerationModel: "llama3.2",
	})
	require.NoError(t, err)
	defer svc.Close()

	assert.Equal(t, "llama3.2", svc.ModelName())
}

func TestCreateGenerationService_GeminiWithoutKey(t *testing.T) {
	_, err := CreateGenerationService(context.Background(), domain.AISettings{
		Provider: domain.AIProviderGemini,
	})
	assert.ErrorIs(t, err, domain.ErrGenerationUnavailable)
}
