package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"portfoliochat/internal/domain/entities"
)

func TestOllamaChat_Complete(t *testing.T) {
	var gotBody struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		json.NewEncoder(w).Encode(map[string]any{
			"model":   "test-model",
			"message": map[string]any{"role": "assistant", "content": "Het antwoord."},
			"done":    true,
		})
	}))
	defer server.Close()

	c, err := NewOllamaChat(server.URL, "test-model")
	if err != nil {
		t.Fatalf("constructor failed: %v", err)
	}

	history := []entities.ConversationTurn{{Question: "v1", Answer: "a1"}}
	answer, err := c.Complete(context.Background(), "de prompt", history)
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if answer != "Het antwoord." {
		t.Errorf("unexpected answer: %q", answer)
	}

	if len(gotBody.Messages) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(gotBody.Messages))
	}
	if gotBody.Messages[2].Content != "de prompt" || gotBody.Messages[2].Role != "user" {
		t.Errorf("prompt should be the final user message: %+v", gotBody.Messages)
	}
}

func TestOllamaChat_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"model not found"}`, http.StatusNotFound)
	}))
	defer server.Close()

	c, err := NewOllamaChat(server.URL, "missing-model")
	if err != nil {
		t.Fatalf("constructor failed: %v", err)
	}
	if _, err := c.Complete(context.Background(), "prompt", nil); err == nil {
		t.Fatal("server error must surface")
	}
}
