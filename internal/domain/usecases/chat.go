package usecases

import (
	"context"
	"log"
	"strings"

	"portfoliochat/internal/domain/entities"
	"portfoliochat/internal/domain/ports"
)

// DefaultTopK is how many documents are retrieved as context per question.
const DefaultTopK = 4

// promptTemplate instructs the model to answer from the retrieved context
// only, and to admit ignorance instead of inventing an answer. Dates in the
// context are YYYY-MM-DD.
const promptTemplate = `Gebruik de volgende context om de vraag aan het einde te beantwoorden.
Als je het antwoord niet weet, zeg dan dat je het niet weet, probeer geen antwoord te verzinnen.
Het datumformaat in de context is YYYY-MM-DD.

Context:
{context}

Vraag: {question}
Antwoord:`

// ChatUseCase answers questions about the portfolio using retrieved
// documents as context. It holds no per-conversation state; the history
// belongs to the caller.
type ChatUseCase struct {
	embedder ports.EmbeddingService
	store    ports.VectorStore
	chat     ports.ChatService
	topK     int
}

// NewChatUseCase creates a ChatUseCase with injected dependencies.
func NewChatUseCase(embedder ports.EmbeddingService, store ports.VectorStore, chat ports.ChatService, topK int) *ChatUseCase {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &ChatUseCase{embedder: embedder, store: store, chat: chat, topK: topK}
}

// Answer retrieves context for the question, invokes the chat model with the
// prior turns, and appends the completed turn to history. On a chat provider
// failure the history is left untouched. An empty or unreachable index is
// not a hard failure: the model is invoked with an empty context block and
// is expected to say it does not know.
func (uc *ChatUseCase) Answer(ctx context.Context, question string, history *entities.ConversationHistory) (string, []entities.Document, error) {
	results, err := uc.retrieve(ctx, question)
	if err != nil {
		return "", nil, err
	}

	sources := make([]entities.Document, len(results))
	contextParts := make([]string, len(results))
	for i, r := range results {
		sources[i] = r.Document
		contextParts[i] = r.Document.Content
	}

	prompt := buildPrompt(question, contextParts)

	answer, err := uc.chat.Complete(ctx, prompt, history.Turns())
	if err != nil {
		return "", nil, &entities.ChatError{Provider: providerName(uc.chat), Err: err}
	}

	history.Append(question, answer)
	return answer, sources, nil
}

// retrieve embeds the question and searches the store. A search failure is
// degraded to an empty result set so the model can still answer.
func (uc *ChatUseCase) retrieve(ctx context.Context, question string) ([]entities.SearchResult, error) {
	embedding, err := uc.embedder.Embed(ctx, question)
	if err != nil {
		return nil, &entities.EmbeddingError{Provider: providerName(uc.embedder), Err: err}
	}

	results, err := uc.store.Search(ctx, embedding, uc.topK)
	if err != nil {
		log.Printf("[ERROR] retrieval failed, answering without context: %v", err)
		return nil, nil
	}
	return results, nil
}

// buildPrompt fills the template with the retrieved context, highest
// similarity first, and the question.
func buildPrompt(question string, contextParts []string) string {
	prompt := strings.Replace(promptTemplate, "{context}", strings.Join(contextParts, "\n\n"), 1)
	return strings.Replace(prompt, "{question}", question, 1)
}
