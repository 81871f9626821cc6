package driven

import "context"

// GenerationService produces answer text from an assembled prompt.
//
// Implementations may include:
//   - Gemini (gemini-2.5-flash)
//   - Ollama (local models)
type GenerationService interface {
	// Generate produces a completion for the prompt.
	Generate(ctx context.Context, prompt string) (string, error)

	// ModelName returns the name of the model being used.
	ModelName() string

	// Ping validates the service is reachable with a lightweight request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
