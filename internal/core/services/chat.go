package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/wrenchworks/wrench-cli/internal/core/domain"
	"github.com/wrenchworks/wrench-cli/internal/core/ports/driven"
	"github.com/wrenchworks/wrench-cli/internal/core/ports/driving"
	"github.com/wrenchworks/wrench-cli/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// groundedPromptTemplate is used when document excerpts were retrieved.
const groundedPromptTemplate = `You are an expert in manufacturing equipment maintenance.

Answer the user query using ONLY the provided document excerpts.
Cite document names in parentheses after claims.
If insufficient information is provided, say you don't have enough information.

Context:
%s

Question: %s

Answer:`

// generalPromptTemplate is used when no excerpts are available.
const generalPromptTemplate = `You are an expert in manufacturing equipment maintenance.

No documents are uploaded yet.
Provide a general answer based on best practices.
Keep your response clear, concise, and safety-focused.

Question: %s

Answer:`

// fallbackAnswer is returned when generation fails entirely.
const fallbackAnswer = "I apologize, but I'm unable to generate a response at the moment. " +
	"Please ensure the AI provider is configured correctly."

// ChatService answers maintenance questions grounded in retrieved
// document excerpts.
type ChatService struct {
	retriever *Retriever
	generator driven.GenerationService
	history   driven.HistoryStore
}

// NewChatService wires the chat dependencies.
func NewChatService(
	retriever *Retriever,
	generator driven.GenerationService,
	history driven.HistoryStore,
) *ChatService {
	return &ChatService{
		retriever: retriever,
		generator: generator,
		history:   history,
	}
}

// Ask retrieves context, generates an answer and records the exchange.
// Generation failure degrades to a fixed fallback answer instead of an
// error; the exchange is still recorded.
func (s *ChatService) Ask(ctx context.Context, query string) (*domain.Answer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("query: %w", domain.ErrInvalidInput)
	}

	grounding, sources, usedDocuments := s.retriever.Retrieve(ctx, query)

	var prompt string
	if usedDocuments {
		prompt = fmt.Sprintf(groundedPromptTemplate, grounding, query)
	} else {
		prompt = fmt.Sprintf(generalPromptTemplate, query)
	}

	text, err := s.generator.Generate(ctx, prompt)
	if err != nil || text == "" {
		if err != nil {
			logger.Warn("generation failed: %v", err)
		}
		text = fallbackAnswer
	}

	if !usedDocuments {
		sources = []domain.Source{domain.GeneralKnowledgeSource}
	}

	answer := &domain.Answer{
		Text:          text,
		Sources:       sources,
		UsedDocuments: usedDocuments,
	}

	entry := &domain.HistoryEntry{
		Query:         query,
		Answer:        answer.Text,
		Sources:       answer.Sources,
		UsedDocuments: answer.UsedDocuments,
	}
	if err := s.history.Append(ctx, entry); err != nil {
		// The user already has their answer; losing the log line is
		// not worth failing the request.
		logger.Warn("recording history: %v", err)
	}

	return answer, nil
}
