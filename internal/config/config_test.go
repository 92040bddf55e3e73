package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing config file should fall back to defaults: %v", err)
	}
	if cfg.Server.Addr != ":8000" {
		t.Errorf("unexpected default addr: %s", cfg.Server.Addr)
	}
	if cfg.Retrieval.TopK != 4 {
		t.Errorf("unexpected default top_k: %d", cfg.Retrieval.TopK)
	}
	if cfg.VectorStore.Type != "sqlite" || cfg.VectorStore.SQLite.Path != "vectorstore" {
		t.Errorf("unexpected default store: %+v", cfg.VectorStore)
	}
}

func TestLoad_ParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  addr: ":9000"
data:
  csv: "testdata/portfolio.csv"
  watch: true
retrieval:
  top_k: 10
embedder:
  type: openai
  openai:
    api_key_env: MY_KEY
chat:
  type: groq
  groq:
    model: llama3-8b-8192
vector_store:
  type: qdrant
  qdrant:
    addr: "localhost:6334"
    collection: portfolio
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Server.Addr != ":9000" || !cfg.Data.Watch || cfg.Retrieval.TopK != 10 {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Embedder.Type != "openai" || cfg.Embedder.OpenAI.APIKeyEnv != "MY_KEY" {
		t.Errorf("unexpected embedder config: %+v", cfg.Embedder)
	}
	if cfg.Chat.Groq.Model != "llama3-8b-8192" {
		t.Errorf("unexpected chat config: %+v", cfg.Chat)
	}
	if cfg.VectorStore.Qdrant.Collection != "portfolio" {
		t.Errorf("unexpected store config: %+v", cfg.VectorStore)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("server: [not: a: mapping"), 0o644)

	if _, err := Load(path); err == nil {
		t.Fatal("malformed YAML must fail")
	}
}
