// Package app assembles adapters from configuration. Keeping the provider
// switches here means every front-end (indexer, server, terminal chat)
// builds the same pipeline instead of carrying its own copy.
package app

import (
	"context"
	"fmt"
	"time"

	"portfoliochat/internal/adapters/chat"
	"portfoliochat/internal/adapters/embedding"
	"portfoliochat/internal/adapters/vectordb"
	"portfoliochat/internal/config"
	"portfoliochat/internal/domain/ports"
)

// BuildEmbedder constructs the configured embedding provider.
func BuildEmbedder(cfg *config.AppConfig) (ports.EmbeddingService, error) {
	switch cfg.Embedder.Type {
	case "ollama", "":
		oc := cfg.Embedder.Ollama
		if oc == nil {
			oc = &config.OllamaConfig{}
		}
		return embedding.NewOllamaEmbedder(oc.URL, oc.Model)
	case "openai":
		ec := cfg.Embedder.OpenAI
		if ec == nil {
			return nil, fmt.Errorf("openai embedder selected but not configured")
		}
		return embedding.NewOpenAIEmbedder(embedding.OpenAIConfig{
			BaseURL:   ec.BaseURL,
			APIKeyEnv: ec.APIKeyEnv,
			Model:     ec.Model,
			Timeout:   time.Duration(ec.TimeoutSecs) * time.Second,
		})
	default:
		return nil, fmt.Errorf("unknown embedder type %q", cfg.Embedder.Type)
	}
}

// BuildChat constructs the configured chat provider.
func BuildChat(ctx context.Context, cfg *config.AppConfig) (ports.ChatService, error) {
	switch cfg.Chat.Type {
	case "ollama", "":
		oc := cfg.Chat.Ollama
		if oc == nil {
			oc = &config.OllamaConfig{}
		}
		return chat.NewOllamaChat(oc.URL, oc.Model)
	case "groq":
		gc := cfg.Chat.Groq
		if gc == nil {
			gc = &config.GroqConfig{}
		}
		return chat.NewGroqChat(chat.GroqConfig{
			BaseURL:   gc.BaseURL,
			APIKeyEnv: gc.APIKeyEnv,
			Model:     gc.Model,
			Timeout:   time.Duration(gc.TimeoutSecs) * time.Second,
		})
	case "gemini":
		model := ""
		if cfg.Chat.Gemini != nil {
			model = cfg.Chat.Gemini.Model
		}
		return chat.NewGeminiChat(ctx, model)
	default:
		return nil, fmt.Errorf("unknown chat type %q", cfg.Chat.Type)
	}
}

// BuildStore constructs the configured vector store. With forServing set,
// a missing persistent store is an error instead of being created empty.
func BuildStore(cfg *config.AppConfig, forServing bool) (ports.VectorStore, error) {
	switch cfg.VectorStore.Type {
	case "sqlite", "":
		path := "vectorstore"
		if cfg.VectorStore.SQLite != nil && cfg.VectorStore.SQLite.Path != "" {
			path = cfg.VectorStore.SQLite.Path
		}
		if forServing {
			return vectordb.OpenSQLiteStore(path)
		}
		return vectordb.NewSQLiteStore(path)
	case "memory":
		return vectordb.NewMemoryStore(), nil
	case "qdrant":
		qc := cfg.VectorStore.Qdrant
		if qc == nil {
			qc = &config.QdrantConfig{}
		}
		return vectordb.NewQdrantStore(qc.Addr, qc.Collection)
	default:
		return nil, fmt.Errorf("unknown vector store type %q", cfg.VectorStore.Type)
	}
}
