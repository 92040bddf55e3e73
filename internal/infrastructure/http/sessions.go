package http

import (
	"sync"

	"portfoliochat/internal/domain/entities"
)

// session pairs a conversation history with a lock serializing requests
// within that session. Distinct sessions never share state.
type session struct {
	mu      sync.Mutex
	history entities.ConversationHistory
}

// sessionRegistry hands out per-session conversation state.
type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*session
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{sessions: make(map[string]*session)}
}

// get returns the session for id, creating it when unseen.
func (r *sessionRegistry) get(id string) *session {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		s = &session{}
		r.sessions[id] = s
	}
	return s
}

// clear resets one session's history.
func (r *sessionRegistry) clear(id string) {
	r.mu.Lock()
	s, ok := r.sessions[id]
	r.mu.Unlock()
	if !ok {
		return
	}
	s.mu.Lock()
	s.history.Clear()
	s.mu.Unlock()
}
