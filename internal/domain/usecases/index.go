package usecases

import (
	"context"
	"fmt"
	"log"

	"portfoliochat/internal/domain/entities"
	"portfoliochat/internal/domain/ports"
)

// IndexUseCase builds the retrieval index from portfolio records.
type IndexUseCase struct {
	embedder ports.EmbeddingService
	store    ports.VectorStore
}

// NewIndexUseCase creates an IndexUseCase with injected dependencies.
func NewIndexUseCase(embedder ports.EmbeddingService, store ports.VectorStore) *IndexUseCase {
	return &IndexUseCase{embedder: embedder, store: store}
}

// BuildIndex renders every record, embeds the resulting documents, and
// upserts (text, vector) pairs into the store. An embedding failure aborts
// the build; nothing is retried here. Re-running against an already
// populated store may duplicate entries, which is the store's business.
func (uc *IndexUseCase) BuildIndex(ctx context.Context, records []entities.PortfolioRecord) error {
	docs := RenderAll(records)
	if len(docs) == 0 {
		return nil
	}

	texts := make([]string, len(docs))
	for i, d := range docs {
		texts[i] = d.Content
	}

	vectors, err := uc.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return &entities.EmbeddingError{Provider: providerName(uc.embedder), Err: err}
	}
	if len(vectors) != len(docs) {
		return &entities.EmbeddingError{
			Provider: providerName(uc.embedder),
			Err:      fmt.Errorf("got %d vectors for %d documents", len(vectors), len(docs)),
		}
	}

	if err := uc.store.Upsert(ctx, docs, vectors); err != nil {
		return fmt.Errorf("storing documents: %w", err)
	}

	log.Printf("[INFO] indexed %d portfolio documents", len(docs))
	return nil
}

// providerName extracts an identifier for error reporting.
func providerName(v any) string {
	type named interface{ Name() string }
	if n, ok := v.(named); ok {
		return n.Name()
	}
	return fmt.Sprintf("%T", v)
}
