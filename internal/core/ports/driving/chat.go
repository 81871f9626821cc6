package driving

import (
	"context"

	"github.com/wrenchworks/wrench-cli/internal/core/domain"
)

// ChatService answers maintenance questions, grounding them in
// retrieved document excerpts when any are available.
type ChatService interface {
	// Ask retrieves grounding context for the query, generates an
	// answer and appends the exchange to the history log.
	Ask(ctx context.Context, query string) (*domain.Answer, error)
}
