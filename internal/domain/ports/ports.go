// Package ports defines interfaces for external dependencies.
// Usecases depend on these abstractions; adapters implement them.
package ports

import (
	"context"

	"portfoliochat/internal/domain/entities"
)

// EmbeddingService generates vector embeddings for text.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// ChatService produces a completion for a prompt, given prior turns of the
// conversation as additional context.
type ChatService interface {
	Complete(ctx context.Context, prompt string, history []entities.ConversationTurn) (string, error)
}

// VectorStore persists document embeddings and supports similarity search.
type VectorStore interface {
	// Upsert saves documents with their embeddings. Documents and vectors
	// correspond by index.
	Upsert(ctx context.Context, docs []entities.Document, vectors [][]float32) error

	// Search finds the documents most similar to a query embedding,
	// ranked by descending similarity.
	Search(ctx context.Context, embedding []float32, topK int) ([]entities.SearchResult, error)

	// Count returns the number of stored documents.
	Count(ctx context.Context) (int, error)

	// Clear removes all data from the store.
	Clear(ctx context.Context) error

	// Close releases resources held by the store.
	Close() error
}

// PortfolioSource loads portfolio records from tabular input.
type PortfolioSource interface {
	Load(ctx context.Context) ([]entities.PortfolioRecord, error)
}

// FileWatcher monitors a file for changes.
type FileWatcher interface {
	// Watch starts monitoring the path and emits an event per change.
	Watch(ctx context.Context, path string) (<-chan FileEvent, error)

	// Stop stops the watcher.
	Stop() error
}

// FileEvent represents a file system change.
type FileEvent struct {
	Path string
}
