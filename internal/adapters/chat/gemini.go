package chat

import (
	"context"
	"fmt"
	"os"

	"google.golang.org/genai"

	"portfoliochat/internal/domain/entities"
)

// GeminiChat answers with a hosted Gemini model through the genai SDK.
type GeminiChat struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

// NewGeminiChat creates the Gemini chat adapter. The SDK reads its API key
// from the environment; an empty GEMINI_API_KEY fails fast here instead of
// on the first question.
func NewGeminiChat(ctx context.Context, model string) (*GeminiChat, error) {
	if os.Getenv("GEMINI_API_KEY") == "" && os.Getenv("GOOGLE_API_KEY") == "" {
		return nil, fmt.Errorf("missing API key in env GEMINI_API_KEY")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &GeminiChat{
		client: client,
		model:  model,
		config: &genai.GenerateContentConfig{Temperature: genai.Ptr[float32](0)},
	}, nil
}

// Name identifies this provider in error reports.
func (c *GeminiChat) Name() string { return "gemini" }

// Complete opens a chat seeded with the prior turns and sends the prompt.
func (c *GeminiChat) Complete(ctx context.Context, prompt string, history []entities.ConversationTurn) (string, error) {
	contents := make([]*genai.Content, 0, 2*len(history))
	for _, turn := range history {
		contents = append(contents,
			&genai.Content{Role: genai.RoleUser, Parts: []*genai.Part{{Text: turn.Question}}},
			&genai.Content{Role: genai.RoleModel, Parts: []*genai.Part{{Text: turn.Answer}}},
		)
	}

	session, err := c.client.Chats.Create(ctx, c.model, c.config, contents)
	if err != nil {
		return "", fmt.Errorf("creating gemini chat: %w", err)
	}

	resp, err := session.Send(ctx, &genai.Part{Text: prompt})
	if err != nil {
		return "", fmt.Errorf("calling gemini: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no completion returned")
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}
