// Package vectordb provides vector store adapters implementing
// ports.VectorStore.
package vectordb

import (
	"context"
	"math"
	"sort"
	"sync"

	"portfoliochat/internal/domain/entities"
)

// MemoryStore is an in-memory vector store. Useful for tests and for
// serving a small portfolio without a persistence step.
type MemoryStore struct {
	mu      sync.RWMutex
	docs    map[string]entities.Document
	vectors map[string][]float32
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs:    make(map[string]entities.Document),
		vectors: make(map[string][]float32),
	}
}

// Upsert saves documents with their embeddings.
func (s *MemoryStore) Upsert(ctx context.Context, docs []entities.Document, vectors [][]float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, doc := range docs {
		s.docs[doc.ID] = doc
		s.vectors[doc.ID] = vectors[i]
	}
	return nil
}

// Search ranks all stored documents by cosine similarity to the query.
func (s *MemoryStore) Search(ctx context.Context, embedding []float32, topK int) ([]entities.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]entities.SearchResult, 0, len(s.docs))
	for id, doc := range s.docs {
		results = append(results, entities.SearchResult{
			Document: doc,
			Score:    cosineSimilarity(embedding, s.vectors[id]),
		})
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// Count returns the number of stored documents.
func (s *MemoryStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs), nil
}

// Clear removes all data.
func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = make(map[string]entities.Document)
	s.vectors = make(map[string][]float32)
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error { return nil }

// cosineSimilarity calculates cosine similarity between two vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
