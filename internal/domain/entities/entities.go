// Package entities contains core business entities.
// Pure domain objects with no knowledge of providers or storage.
package entities

// PortfolioRecord is one row of the portfolio table. The identifier is
// assigned from row position at load time and stays stable across re-loads.
// Records are immutable after loading.
type PortfolioRecord struct {
	ID           int
	Address      string
	Type         string
	Value        string  // numeric text from the source, empty when missing
	VacancyRate  float64 // fraction in [0, 1]; 0 when missing
	AnnualIncome string  // numeric text from the source, empty when missing
	EndLease     string  // YYYY-MM-DD
}

// Document is the rendered natural-language paragraph for one record.
// Deterministic given the record; owned by the index after building.
type Document struct {
	ID       string
	RecordID int
	Content  string
}

// SearchResult is a retrieved document with its similarity score.
type SearchResult struct {
	Document Document
	Score    float64
}

// ConversationTurn is one answered question.
type ConversationTurn struct {
	Question string
	Answer   string
}

// ConversationHistory is an append-only sequence of turns scoped to one
// session. It imposes no truncation; length is the caller's business.
type ConversationHistory struct {
	turns []ConversationTurn
}

// Append records a completed turn.
func (h *ConversationHistory) Append(question, answer string) {
	h.turns = append(h.turns, ConversationTurn{Question: question, Answer: answer})
}

// Turns returns a copy of the recorded turns in order.
func (h *ConversationHistory) Turns() []ConversationTurn {
	out := make([]ConversationTurn, len(h.turns))
	copy(out, h.turns)
	return out
}

// Len returns the number of recorded turns.
func (h *ConversationHistory) Len() int { return len(h.turns) }

// Clear resets the session.
func (h *ConversationHistory) Clear() { h.turns = nil }
