package domain

// AIProvider identifies an embedding/generation backend.
type AIProvider string

// Available AI providers.
const (
	// AIProviderGemini uses the hosted Gemini API.
	AIProviderGemini AIProvider = "gemini"

	// AIProviderOllama uses a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"
)

// IsValid returns true if the provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderGemini, AIProviderOllama:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if the provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderGemini
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// AISettings holds provider configuration shared by the embedding and
// generation services.
type AISettings struct {
	// Provider is the backend to use.
	Provider AIProvider `toml:"provider"`

	// EmbeddingModel is the embedding model name.
	EmbeddingModel string `toml:"embedding_model"`

	// GenerationModel is the generation model name.
	GenerationModel string `toml:"generation_model"`

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string `toml:"base_url,omitempty"`

	// APIKey is the API key (for Gemini). Usually supplied via the
	// GEMINI_API_KEY environment variable instead of the config file.
	APIKey string `toml:"api_key,omitempty"`
}

// IsConfigured returns true if the provider is set up.
func (a AISettings) IsConfigured() bool {
	if !a.Provider.IsValid() {
		return false
	}
	if a.Provider.RequiresAPIKey() && a.APIKey == "" {
		return false
	}
	return true
}

// ChunkingSettings holds text splitting configuration.
type ChunkingSettings struct {
	// Size is the window length in bytes.
	Size int `toml:"size"`

	// Overlap is the number of bytes shared between adjacent windows.
	Overlap int `toml:"overlap"`
}

// IndexSettings holds vector index configuration.
type IndexSettings struct {
	// Dimensions is the embedding vector size.
	Dimensions int `toml:"dimensions"`
}

// IngestSettings holds ingestion pipeline configuration.
type IngestSettings struct {
	// Workers bounds concurrent embedding calls per document.
	Workers int `toml:"workers"`

	// RateLimit is the maximum embedding requests per second.
	// Zero disables rate limiting.
	RateLimit float64 `toml:"rate_limit"`
}

// AppSettings holds all application settings.
type AppSettings struct {
	// AI holds provider settings.
	AI AISettings `toml:"ai"`

	// Chunking holds text splitting settings.
	Chunking ChunkingSettings `toml:"chunking"`

	// Index holds vector index settings.
	Index IndexSettings `toml:"index"`

	// Ingest holds ingestion pipeline settings.
	Ingest IngestSettings `toml:"ingest"`
}

// DefaultAppSettings returns settings with sensible defaults.
// The provider defaults to Ollama so the tool works without an API key.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		AI: AISettings{
			Provider: AIProviderOllama,
		},
		Chunking: ChunkingSettings{
			Size:    800,
			Overlap: 200,
		},
		Index: IndexSettings{
			Dimensions: 768,
		},
		Ingest: IngestSettings{
			Workers:   4,
			RateLimit: 10,
		},
	}
}
