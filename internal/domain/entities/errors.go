package entities

import (
	"errors"
	"fmt"
)

// ErrIndexUnavailable means the persisted vector store is missing or
// unreadable. The server refuses to answer questions until it is rebuilt.
var ErrIndexUnavailable = errors.New("vector index unavailable")

// LoadError reports a missing, malformed, or incomplete portfolio CSV.
// The index build aborts on it; no partial index is written.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading portfolio %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// EmbeddingError wraps a failure of the embedding provider.
type EmbeddingError struct {
	Provider string
	Err      error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding provider %s: %v", e.Provider, e.Err)
}

func (e *EmbeddingError) Unwrap() error { return e.Err }

// ChatError wraps a failure of the chat completion provider. When the
// orchestrator returns it, the conversation history is untouched.
type ChatError struct {
	Provider string
	Err      error
}

func (e *ChatError) Error() string {
	return fmt.Sprintf("chat provider %s: %v", e.Provider, e.Err)
}

func (e *ChatError) Unwrap() error { return e.Err }
