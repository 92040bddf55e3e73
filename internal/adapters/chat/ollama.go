// Package chat provides chat completion provider adapters implementing
// ports.ChatService.
package chat

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"

	"portfoliochat/internal/domain/entities"
)

// OllamaChat answers with a model served by a local Ollama instance.
// Temperature is pinned to 0 so answers stay grounded in the context.
type OllamaChat struct {
	client *api.Client
	model  string
}

// NewOllamaChat creates a chat adapter backed by the Ollama API.
func NewOllamaChat(baseURL, model string) (*OllamaChat, error) {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "mistral"
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama URL %q: %w", baseURL, err)
	}

	return &OllamaChat{
		client: api.NewClient(u, &http.Client{Timeout: 5 * time.Minute}),
		model:  model,
	}, nil
}

// Name identifies this provider in error reports.
func (c *OllamaChat) Name() string { return "ollama" }

// Complete sends the prior turns plus the prompt as a chat conversation and
// returns the model's text.
func (c *OllamaChat) Complete(ctx context.Context, prompt string, history []entities.ConversationTurn) (string, error) {
	messages := historyToMessages(history)
	messages = append(messages, api.Message{Role: "user", Content: prompt})

	stream := false
	req := &api.ChatRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   &stream,
		Options:  map[string]any{"temperature": 0.0},
	}

	var sb strings.Builder
	err := c.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		sb.WriteString(resp.Message.Content)
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("calling ollama chat: %w", err)
	}
	return sb.String(), nil
}

func historyToMessages(history []entities.ConversationTurn) []api.Message {
	messages := make([]api.Message, 0, 2*len(history)+1)
	for _, turn := range history {
		messages = append(messages,
			api.Message{Role: "user", Content: turn.Question},
			api.Message{Role: "assistant", Content: turn.Answer},
		)
	}
	return messages
}
