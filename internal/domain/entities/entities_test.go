package entities

import (
	"errors"
	"testing"
)

func TestConversationHistory_AppendOrder(t *testing.T) {
	var h ConversationHistory
	h.Append("v1", "a1")
	h.Append("v2", "a2")

	turns := h.Turns()
	if len(turns) != 2 {
		t.Fatalf("expected 2 turns, got %d", len(turns))
	}
	if turns[0].Question != "v1" || turns[1].Question != "v2" {
		t.Error("turns must keep append order")
	}
}

func TestConversationHistory_TurnsIsCopy(t *testing.T) {
	var h ConversationHistory
	h.Append("v", "a")

	turns := h.Turns()
	turns[0].Answer = "mutated"

	if h.Turns()[0].Answer != "a" {
		t.Error("mutating the returned slice must not touch the history")
	}
}

func TestConversationHistory_Clear(t *testing.T) {
	var h ConversationHistory
	h.Append("v", "a")
	h.Clear()

	if h.Len() != 0 {
		t.Errorf("expected empty history after clear, got %d", h.Len())
	}
}

func TestErrorTypesUnwrap(t *testing.T) {
	cause := errors.New("boom")

	for _, err := range []error{
		&LoadError{Path: "portfolio.csv", Err: cause},
		&EmbeddingError{Provider: "ollama", Err: cause},
		&ChatError{Provider: "groq", Err: cause},
	} {
		if !errors.Is(err, cause) {
			t.Errorf("%T should unwrap to its cause", err)
		}
		if err.Error() == "" {
			t.Errorf("%T should describe itself", err)
		}
	}
}
